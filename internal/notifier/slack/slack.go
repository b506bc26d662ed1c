package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/tournament"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	loc       *time.Location
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier. Without a token every message is only logged.
func NewNotifier(token, channelID string, loc *time.Location, metrics metrics.Metrics) *Notifier {
	var api slackClient
	if token != "" {
		api = slack.New(token)
	} else {
		log.Warn("No Slack token configured, notifications will only be logged")
	}
	return NewNotifierWithAPI(api, channelID, loc, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, loc *time.Location, metrics metrics.Metrics) *Notifier {
	if loc == nil {
		loc = time.Local
	}
	return &Notifier{
		api:       api,
		channelID: channelID,
		loc:       loc,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun || s.api == nil {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendBookingNotification(notice notifier.BookingNotice, dryRun bool) (string, error) {
	_, ts, err := s.sendMessage(s.formatBookingNotification(notice), dryRun)
	return ts, err
}

func (s *Notifier) SendScoreboard(tournamentID string, stats []tournament.Stat, dryRun bool) (string, error) {
	_, ts, err := s.sendMessage(s.formatScoreboard(tournamentID, stats), dryRun)
	return ts, err
}

func (s *Notifier) SendReadyToPlay(playerName, date string, dryRun bool) (string, error) {
	text := fmt.Sprintf("🏸 %s is ready to play %s", playerName, s.formatDate(date))
	msg := slack.NewBlockMessage(slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil))
	_, ts, err := s.sendMessage(msg, dryRun)
	return ts, err
}

// formatBookingNotification creates the Slack message for a new court booking using Block Kit.
func (s *Notifier) formatBookingNotification(notice notifier.BookingNotice) slack.Message {
	blocks := make([]slack.Block, 0, 4)

	headerText := slack.NewTextBlockObject("plain_text", "🏸 Court booked! 🏸", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s booked court %d\nTime: %s at %02d:00", notice.Booker, notice.SwitchIndex+1, s.formatDate(notice.Date), notice.Hour)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	var playerNames []string
	for _, p := range notice.Players {
		if p.Name != "" {
			playerNames = append(playerNames, fmt.Sprintf("• %s", p.Name))
		}
	}
	if len(playerNames) > 0 {
		playersText := "Players:\n" + strings.Join(playerNames, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playersText, true, false), nil, nil))

		countText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("%d players available", len(playerNames)), true, false)
		blocks = append(blocks, slack.NewContextBlock("", countText))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatScoreboard creates the standings message for a tournament.
func (s *Notifier) formatScoreboard(tournamentID string, stats []tournament.Stat) slack.Message {
	blocks := make([]slack.Block, 0, 3)

	title := "🏆 Americano scoreboard 🏆"
	if date, hour, _, err := tournament.ParseID(tournamentID); err == nil {
		title = fmt.Sprintf("🏆 Americano %s %02d:00 🏆", s.formatDate(date), hour)
	}
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", title, true, false)))

	if len(stats) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No games finalized yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	var lines []string
	for i, st := range stats {
		var rank string
		switch i {
		case 0:
			rank = "🥇"
		case 1:
			rank = "🥈"
		case 2:
			rank = "🥉"
		default:
			rank = fmt.Sprintf("%d.", i+1)
		}
		lines = append(lines, fmt.Sprintf("%s %s: %d pts (W/L %d/%d)", rank, st.PlayerName, st.TotalPoints, st.GamesWon, st.GamesLost))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))

	footer := slack.NewTextBlockObject("plain_text", fmt.Sprintf("Tournament %s", tournamentID), false, false)
	blocks = append(blocks, slack.NewContextBlock("", footer))

	return slack.NewBlockMessage(blocks...)
}

// formatDate renders "2006-01-02" as e.g. "Thu 25 Sep". Unparseable dates are returned as is.
func (s *Notifier) formatDate(date string) string {
	t, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return date
	}
	return t.Format("Mon 02 Jan")
}
