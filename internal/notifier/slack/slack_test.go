package slack

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/courtside/internal/americano"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/tournament"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", time.UTC, metrics)

	_, ts, err := notifier.sendMessage(slackapi.NewBlockMessage(), true)
	require.NoError(t, err)
	assert.Equal(t, "dry-run-ts", ts)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_NoTokenLogsOnly(t *testing.T) {
	metrics := metrics.NewMock()
	notifier := NewNotifier("", "C123", time.UTC, metrics)

	ts, err := notifier.SendReadyToPlay("Anna", "2025-09-25", false)
	require.NoError(t, err)
	assert.Equal(t, "dry-run-ts", ts)
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", time.UTC, metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, ts, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.Equal(t, "ts123", ts)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", time.UTC, metrics)

	_, _, err := notifier.sendMessage(slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestSendBookingNotification_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	notifier := NewNotifierWithAPI(api, "C123", time.UTC, metrics.NewMock())
	_, err := notifier.SendBookingNotification(bookingNotice(), false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendBookingNotification")
}

func bookingNotice() notifier.BookingNotice {
	return notifier.BookingNotice{
		Booker:      "Anna",
		Date:        "2025-09-25",
		Hour:        18,
		SwitchIndex: 1,
		Players: []americano.Player{
			{UID: "u1", Name: "Anna"},
			{UID: "u2", Name: "Bo"},
		},
	}
}

func TestFormatBookingNotification(t *testing.T) {
	client := NewNotifierWithAPI(nil, "C123", time.UTC, metrics.NewMock())
	msg := client.formatBookingNotification(bookingNotice())
	require.Len(t, msg.Blocks.BlockSet, 4, "Expected 4 blocks")

	// 1. Header Block
	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "First block should be a HeaderBlock")
	assert.Equal(t, "🏸 Court booked! 🏸", header.Text.Text)

	// 2. Details Section
	details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok, "Second block should be a SectionBlock")
	assert.Equal(t, "Anna booked court 2\nTime: Thu 25 Sep at 18:00", details.Text.Text)

	// 3. Players Section
	players, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok, "Third block should be a SectionBlock")
	assert.Equal(t, "Players:\n• Anna\n• Bo", players.Text.Text)

	// 4. Context Section
	contextBlock, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
	require.True(t, ok, "Fourth block should be a ContextBlock")
	require.Len(t, contextBlock.ContextElements.Elements, 1)
	count, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "2 players available", count.Text)
}

func TestFormatBookingNotification_NoPlayers(t *testing.T) {
	client := NewNotifierWithAPI(nil, "C123", time.UTC, metrics.NewMock())
	notice := bookingNotice()
	notice.Players = nil

	msg := client.formatBookingNotification(notice)
	assert.Len(t, msg.Blocks.BlockSet, 2)
}

func TestFormatScoreboard(t *testing.T) {
	client := NewNotifierWithAPI(nil, "C123", time.UTC, metrics.NewMock())

	t.Run("lists players in order", func(t *testing.T) {
		stats := []tournament.Stat{
			{PlayerID: "u1", PlayerName: "Anna", GamesPlayed: 3, GamesWon: 2, GamesLost: 1, TotalPoints: 70},
			{PlayerID: "u2", PlayerName: "Bo", GamesPlayed: 3, GamesWon: 2, GamesLost: 1, TotalPoints: 65},
			{PlayerID: "u3", PlayerName: "Cy", GamesPlayed: 3, GamesWon: 1, GamesLost: 2, TotalPoints: 50},
			{PlayerID: "u4", PlayerName: "Di", GamesPlayed: 3, GamesWon: 1, GamesLost: 2, TotalPoints: 41},
		}
		msg := client.formatScoreboard("2025-09-25__18__0", stats)
		require.Len(t, msg.Blocks.BlockSet, 3)

		header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		require.True(t, ok)
		assert.Equal(t, "🏆 Americano Thu 25 Sep 18:00 🏆", header.Text.Text)

		body, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		expected := "🥇 Anna: 70 pts (W/L 2/1)\n" +
			"🥈 Bo: 65 pts (W/L 2/1)\n" +
			"🥉 Cy: 50 pts (W/L 1/2)\n" +
			"4. Di: 41 pts (W/L 1/2)"
		assert.Equal(t, expected, body.Text.Text)
	})

	t.Run("empty scoreboard", func(t *testing.T) {
		msg := client.formatScoreboard("not-an-id", nil)
		require.Len(t, msg.Blocks.BlockSet, 2)

		header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		require.True(t, ok)
		assert.Equal(t, "🏆 Americano scoreboard 🏆", header.Text.Text)

		body, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "No games finalized yet.", body.Text.Text)
	})
}
