package fines

import "context"

// Store defines the operations on the fine catalog and members' fines.
type Store interface {
	CreateFine(ctx context.Context, f Fine) (Fine, error)
	UpdateFine(ctx context.Context, f Fine) error
	// DeleteFine removes a catalog fine together with every assignment of it.
	DeleteFine(ctx context.Context, id string) error
	GetFine(ctx context.Context, id string) (*Fine, error)
	ListFines(ctx context.Context) ([]Fine, error)

	Assign(ctx context.Context, userID, userName, fineID string, multiplier int) (UserFine, error)
	MarkPaid(ctx context.Context, userID, userFineID string, paid bool) error
	RemoveUserFine(ctx context.Context, userID, userFineID string) error
	ListUserFines(ctx context.Context, userID string) ([]UserFine, error)
	Totals(ctx context.Context) ([]Total, error)
}
