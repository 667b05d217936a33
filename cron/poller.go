package cron

import (
	"context"
	"fmt"
	"time"

	reminderRepo "medivault/database/repository/reminder"
	"medivault/models"
	"medivault/services/notification"
	"medivault/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DueReminderPoller is the process-wide background loop driving the reminder
// pipeline: scan for due reminders, dispatch each, record the outcome. Ticks
// never overlap; a tick that outlives the interval causes the next firing to
// be skipped, so a due reminder is never dispatched twice concurrently.
type DueReminderPoller struct {
	Reminders reminderRepo.ReminderRepository
	Notifier  notification.NotificationService

	// Interval between ticks. Defaults to one minute.
	Interval time.Duration
	// StaleAfter bounds the transient-retry window: a pending reminder this
	// far past its scheduled time is skipped instead of dispatched.
	// Defaults to 24 hours.
	StaleAfter time.Duration

	runner *cron.Cron
}

// NewDueReminderPoller wires a poller with its store and dispatcher.
func NewDueReminderPoller(reminders reminderRepo.ReminderRepository, notifier notification.NotificationService, interval, staleAfter time.Duration) *DueReminderPoller {
	if interval <= 0 {
		interval = time.Minute
	}
	if staleAfter <= 0 {
		staleAfter = 24 * time.Hour
	}
	return &DueReminderPoller{
		Reminders:  reminders,
		Notifier:   notifier,
		Interval:   interval,
		StaleAfter: staleAfter,
	}
}

// Start launches the background loop.
func (p *DueReminderPoller) Start() error {
	logger := utils.GetLogger()

	cronLogger := cron.PrintfLogger(zap.NewStdLog(logger))
	p.runner = cron.New(
		cron.WithChain(cron.SkipIfStillRunning(cronLogger), cron.Recover(cronLogger)),
	)

	spec := fmt.Sprintf("@every %s", p.Interval)
	_, err := p.runner.AddFunc(spec, func() {
		if err := p.Tick(context.Background()); err != nil {
			logger.Error("Reminder tick aborted", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("poller: failed to schedule tick: %w", err)
	}

	p.runner.Start()
	logger.Sugar().Infof("Reminder poller started (interval %s)", p.Interval)
	return nil
}

// Stop halts the loop and waits for an in-flight tick to finish.
func (p *DueReminderPoller) Stop() {
	if p.runner == nil {
		return
	}
	ctx := p.runner.Stop()
	<-ctx.Done()
	utils.GetLogger().Info("Reminder poller stopped")
}

// Tick runs one scan-and-dispatch pass. Due reminders are processed in
// ascending scheduledTime order; each reminder's status write is a single
// atomic operation, so an aborted tick leaves nothing half-updated and the
// next interval simply picks up where this one stopped.
func (p *DueReminderPoller) Tick(ctx context.Context) error {
	logger := utils.GetLogger()
	now := time.Now()

	due, err := p.Reminders.ListDue(now)
	if err != nil {
		return fmt.Errorf("poller: due scan failed: %w", err)
	}
	if len(due) == 0 {
		return nil
	}
	logger.Debug("Dispatching due reminders", zap.Int("count", len(due)))

	for _, rem := range due {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		// Bounded retry window: give up on reminders that have been failing
		// transiently for too long instead of carrying them forever.
		if now.Sub(rem.ScheduledTime) > p.StaleAfter {
			if err := p.markStatus(rem.ID, models.ReminderStatusSkipped, nil); err != nil {
				return err
			}
			logger.Info("Skipped stale reminder",
				zap.String("reminderId", rem.ID),
				zap.Time("scheduledTime", rem.ScheduledTime))
			continue
		}

		result, err := p.Notifier.DispatchReminder(ctx, rem)
		if err != nil {
			// Storage failure mid-dispatch; leave the reminder pending and
			// retry the whole tick at the next interval.
			return fmt.Errorf("poller: %w", err)
		}

		switch result {
		case notification.ResultDelivered:
			sentAt := time.Now()
			if err := p.markStatus(rem.ID, models.ReminderStatusSent, &sentAt); err != nil {
				return err
			}
		case notification.ResultSkipped:
			if err := p.markStatus(rem.ID, models.ReminderStatusSkipped, nil); err != nil {
				return err
			}
		case notification.ResultRetry:
			// Stays pending; reconsidered on the next tick.
		}
	}
	return nil
}

func (p *DueReminderPoller) markStatus(id, status string, sentAt *time.Time) error {
	err := p.Reminders.SetStatus(id, status, sentAt)
	if err == nil {
		return nil
	}
	if err == reminderRepo.ErrNotPending {
		// The pending set was regenerated underneath us; the row is gone or
		// already terminal. Nothing to record.
		utils.GetLogger().Debug("Reminder no longer pending", zap.String("reminderId", id))
		return nil
	}
	return fmt.Errorf("poller: failed to mark reminder %s %s: %w", id, status, err)
}
