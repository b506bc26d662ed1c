package fines

import (
	"database/sql"
	"errors"
	"sync"
	"time"
)

var (
	// ErrFineNotFound is returned when a catalog fine or a user fine does not exist.
	ErrFineNotFound = errors.New("fine not found")
	// ErrFineExists is returned when a catalog fine with the same id already exists.
	ErrFineExists = errors.New("fine already exists")
	// ErrInvalidFine is returned for fines without a name or with a negative price.
	ErrInvalidFine = errors.New("invalid fine")
	// ErrInvalidMultiplier is returned for multipliers below one.
	ErrInvalidMultiplier = errors.New("invalid multiplier")
)

// Fine is an entry of the club's fine catalog.
type Fine struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	// Multiply allows the fine to be assigned several times at once.
	Multiply bool `json:"multiply"`
}

// UserFine is a fine assigned to a member. Prices are captured at assignment time.
type UserFine struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	FineID     string    `json:"fineId"`
	FineName   string    `json:"fineName"`
	BasePrice  int       `json:"basePrice"`
	Multiplier int       `json:"multiplier"`
	TotalPrice int       `json:"totalPrice"`
	AssignedAt time.Time `json:"assignedAt"`
	Paid       bool      `json:"paid"`
}

// Total sums a member's fines.
type Total struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Total    int    `json:"total"`
	Unpaid   int    `json:"unpaid"`
	Count    int    `json:"count"`
}

// store handles the fine catalog and assigned fines.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
