package reminder

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"wastenot/domain"
	"wastenot/entities"
	"wastenot/internal/utils/mailing"
	"wastenot/pkg/appstate"
	"wastenot/pkg/expiry"
	"wastenot/pkg/item"
)

const reminderSubject = "WasteNot: items expiring soon"

type (
	ReminderService interface {
		Summary(ctx context.Context) (domain.ReminderSummary, error)
		SendDailyReminder(ctx context.Context) (domain.ReminderResult, error)
	}

	reminderService struct {
		state  *appstate.State
		mailer mailing.Mailer
		now    func() time.Time
	}
)

// NewReminderService builds the service. A nil mailer disables delivery.
func NewReminderService(state *appstate.State, mailer mailing.Mailer) ReminderService {
	return &reminderService{
		state:  state,
		mailer: mailer,
		now:    time.Now,
	}
}

// Summary lists items that have not expired yet and expire within the
// preferred number of days, soonest first.
func (s *reminderService) Summary(ctx context.Context) (domain.ReminderSummary, error) {
	if err := s.state.Reload(ctx); err != nil {
		return domain.ReminderSummary{}, err
	}
	snap := s.state.Snapshot()
	now := s.now()
	days := snap.Preferences.Clone().Int(entities.PrefReminderDays, int(expiry.SoonWindowDays))
	return BuildSummary(snap.Items, days, now), nil
}

func BuildSummary(items []entities.Item, days int, now time.Time) domain.ReminderSummary {
	var due []entities.Item
	expired := 0
	for _, it := range items {
		if expiry.IsExpired(it.ExpiryDate.Time, now) {
			expired++
			continue
		}
		if expiry.DaysUntil(it.ExpiryDate.Time, now) <= float64(days) {
			due = append(due, it)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].ExpiryDate.Before(due[j].ExpiryDate.Time)
	})

	return domain.ReminderSummary{
		GeneratedAt:  now,
		ReminderDays: days,
		Expiring:     item.ToItemResponses(due, now),
		ExpiredCount: expired,
	}
}

func (s *reminderService) SendDailyReminder(ctx context.Context) (domain.ReminderResult, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return domain.ReminderResult{}, err
	}
	res := domain.ReminderResult{Summary: summary}

	snap := s.state.Snapshot()
	switch {
	case s.mailer == nil:
		res.Reason = "mail delivery is not configured"
	case snap.User == nil || snap.User.Email == "":
		res.Reason = "no signed in user"
	case !snap.Preferences.Clone().Bool(entities.PrefNotificationEmail):
		res.Reason = "email notifications are off"
	case len(summary.Expiring) == 0:
		res.Reason = "nothing expires soon"
	}
	if res.Reason != "" {
		log.Infof("reminder skipped: %s", res.Reason)
		return res, nil
	}

	if err := s.mailer.SendMail(snap.User.Email, reminderSubject, RenderSummary(summary)); err != nil {
		return res, fmt.Errorf("send reminder: %w", err)
	}
	res.Sent = true
	res.To = snap.User.Email
	log.Infof("reminder sent to %s with %d items", res.To, len(summary.Expiring))
	return res, nil
}

// RenderSummary formats the summary as the HTML mail body.
func RenderSummary(summary domain.ReminderSummary) string {
	var sb strings.Builder
	sb.WriteString("<h2>Items expiring soon</h2>\n")
	sb.WriteString(fmt.Sprintf("<p>%s</p>\n", summary.GeneratedAt.Format("2006-01-02")))

	if len(summary.Expiring) == 0 {
		sb.WriteString(fmt.Sprintf("<p>Nothing expires in the next %d days.</p>\n", summary.ReminderDays))
	} else {
		sb.WriteString("<ul>\n")
		for _, it := range summary.Expiring {
			name := html.EscapeString(strings.TrimSpace(it.Name))
			days := int(it.DaysUntilExpiry)
			switch days {
			case 0:
				sb.WriteString(fmt.Sprintf("<li>%s expires today</li>\n", name))
			case 1:
				sb.WriteString(fmt.Sprintf("<li>%s expires tomorrow</li>\n", name))
			default:
				sb.WriteString(fmt.Sprintf("<li>%s expires in %d days</li>\n", name, days))
			}
		}
		sb.WriteString("</ul>\n")
	}

	if summary.ExpiredCount > 0 {
		sb.WriteString(fmt.Sprintf("<p>%d items have already expired.</p>\n", summary.ExpiredCount))
	}
	return sb.String()
}
