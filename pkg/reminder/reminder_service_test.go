package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastenot/entities"
	"wastenot/pkg/appstate"
	"wastenot/pkg/store"
)

var testNow = time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendMail(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

func newItem(name string, expiresIn time.Duration) entities.Item {
	return entities.Item{
		ID:         "item_" + name,
		Name:       name,
		Category:   "misc",
		ExpiryDate: entities.NewDate(testNow.Add(expiresIn)),
		AddedDate:  entities.NewDate(testNow.Add(-time.Hour)),
	}
}

func newTestService(t *testing.T, mailer *fakeMailer, prefs entities.Preferences, user *entities.User) *reminderService {
	t.Helper()
	state := appstate.New(store.NewMemoryStore())
	require.NoError(t, state.Update(context.Background(), func(snap *appstate.Snapshot) ([]string, error) {
		snap.Items = []entities.Item{
			newItem("Yogurt", 50*time.Hour),
			newItem("Milk", 12*time.Hour),
			newItem("Rice", 30*24*time.Hour),
			newItem("Fish", -time.Hour),
			newItem("Bread<b>", 5*24*time.Hour),
		}
		snap.Preferences = prefs
		snap.User = user
		return []string{store.KeyItems, store.KeyPreferences, store.KeyUser}, nil
	}))

	var s *reminderService
	if mailer == nil {
		s = NewReminderService(state, nil).(*reminderService)
	} else {
		s = NewReminderService(state, mailer).(*reminderService)
	}
	s.now = func() time.Time { return testNow }
	return s
}

var demoUser = &entities.User{ID: "user_1", Name: "Demo User", Email: "demo@wastenot.com"}

func TestSummary_UsesDefaultWindow(t *testing.T) {
	s := newTestService(t, nil, entities.Preferences{}, nil)

	summary, err := s.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.ReminderDays)
	assert.Equal(t, 1, summary.ExpiredCount)
	require.Len(t, summary.Expiring, 2)
	assert.Equal(t, "Milk", summary.Expiring[0].Name)
	assert.Equal(t, "Yogurt", summary.Expiring[1].Name)
}

func TestSummary_PreferredWindow(t *testing.T) {
	s := newTestService(t, nil, entities.Preferences{entities.PrefReminderDays: float64(7)}, nil)

	summary, err := s.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, summary.ReminderDays)
	assert.Len(t, summary.Expiring, 3)
}

func TestSendDailyReminder(t *testing.T) {
	mailer := &fakeMailer{}
	prefs := entities.Preferences{
		entities.PrefNotificationEmail: true,
		entities.PrefReminderDays:      float64(7),
	}
	s := newTestService(t, mailer, prefs, demoUser)

	res, err := s.SendDailyReminder(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Sent)
	assert.Equal(t, "demo@wastenot.com", res.To)

	require.Len(t, mailer.sent, 1)
	body := mailer.sent[0].body
	assert.Equal(t, reminderSubject, mailer.sent[0].subject)
	assert.Contains(t, body, "<li>Milk expires today</li>")
	assert.Contains(t, body, "<li>Yogurt expires in 2 days</li>")
	assert.Contains(t, body, "Bread&lt;b&gt;")
	assert.Contains(t, body, "1 items have already expired")
}

func TestSendDailyReminder_Skips(t *testing.T) {
	on := entities.Preferences{entities.PrefNotificationEmail: true}

	cases := []struct {
		name   string
		mailer *fakeMailer
		prefs  entities.Preferences
		user   *entities.User
		reason string
	}{
		{"no mailer", nil, on, demoUser, "mail delivery is not configured"},
		{"no user", &fakeMailer{}, on, nil, "no signed in user"},
		{"notifications off", &fakeMailer{}, entities.Preferences{}, demoUser, "email notifications are off"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestService(t, tc.mailer, tc.prefs, tc.user)

			res, err := s.SendDailyReminder(context.Background())
			require.NoError(t, err)
			assert.False(t, res.Sent)
			assert.Equal(t, tc.reason, res.Reason)
			if tc.mailer != nil {
				assert.Empty(t, tc.mailer.sent)
			}
		})
	}
}

func TestSendDailyReminder_MailError(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	s := newTestService(t, mailer, entities.Preferences{entities.PrefNotificationEmail: true}, demoUser)

	_, err := s.SendDailyReminder(context.Background())
	assert.ErrorContains(t, err, "smtp down")
}
