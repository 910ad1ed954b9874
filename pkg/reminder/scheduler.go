package reminder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/robfig/cron/v3"
)

const defaultJobTimeout = 30 * time.Second

// Scheduler sends the expiry reminder once a day at a fixed wall-clock time.
// A run that is still going when the next one fires is skipped.
type Scheduler struct {
	cron    *cron.Cron
	service ReminderService
	timeout time.Duration
	entry   cron.EntryID
}

func NewScheduler(service ReminderService, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	logger := cronLogger{}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithSeconds(),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		service: service,
		timeout: defaultJobTimeout,
	}
}

// Schedule registers the reminder at an "HH:MM" time. Calling it again moves
// the reminder.
func (s *Scheduler) Schedule(at string) error {
	spec, err := dailySpec(at)
	if err != nil {
		return err
	}
	if s.entry != 0 {
		s.cron.Remove(s.entry)
	}
	id, err := s.cron.AddFunc(spec, s.run)
	if err != nil {
		return fmt.Errorf("schedule reminder: %w", err)
	}
	s.entry = id
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for a running reminder to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Next reports when the reminder runs next; zero before Start.
func (s *Scheduler) Next() time.Time {
	if s.entry == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.entry).Next
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	res, err := s.service.SendDailyReminder(ctx)
	switch {
	case err != nil:
		log.Errorf("reminder: %v", err)
	case res.Sent:
		log.Infof("reminder sent to %s (%d expiring)", res.To, len(res.Summary.Expiring))
	default:
		log.Infof("reminder skipped: %s", res.Reason)
	}
}

// dailySpec turns "HH:MM" into a seconds-first cron spec.
func dailySpec(at string) (string, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(at))
	if err != nil {
		return "", fmt.Errorf("invalid reminder time %q, expected HH:MM", at)
	}
	return fmt.Sprintf("0 %d %d * * *", t.Minute(), t.Hour()), nil
}

// cronLogger routes cron's own messages to the application log.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debugw("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Errorw(fmt.Sprintf("cron: %s: %v", msg, err), keysAndValues...)
}
