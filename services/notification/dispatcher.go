package notification

import (
	"context"
	"fmt"

	"medivault/models"
	"medivault/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DispatchReminder resolves the reminder owner's destinations, renders the
// message and attempts delivery on every available channel concurrently.
// Channel failures are classified, never propagated: the returned error is
// non-nil only for storage failures, which make the outcome unknowable.
//
// Aggregation: any success means delivered; all permanent means skipped;
// otherwise the reminder should stay pending for the next tick. A push
// destination that fails permanently is deleted so it is never retried.
func (s *DefaultNotificationService) DispatchReminder(ctx context.Context, rem models.Reminder) (DispatchResult, error) {
	logger := utils.GetLogger()

	user, err := s.Users.GetByID(rem.UserID)
	if err != nil {
		return ResultRetry, fmt.Errorf("dispatch reminder %s: %w", rem.ID, err)
	}
	med, err := s.Medications.GetByID(rem.MedicationID)
	if err != nil {
		return ResultRetry, fmt.Errorf("dispatch reminder %s: %w", rem.ID, err)
	}

	msg := RenderReminderMessage(*med, rem, user.Language)

	type attempt func(context.Context) Outcome
	var attempts []attempt

	if s.Push != nil {
		for _, sub := range user.Subscriptions {
			sub := sub
			attempts = append(attempts, func(ctx context.Context) Outcome {
				outcome := s.Push.Send(ctx, sub, msg)
				if outcome == OutcomePermanent {
					// Never retried; concurrent removals of the same
					// endpoint are idempotent at the repo level.
					if err := s.Users.RemovePushSubscription(user.ID, sub.Endpoint); err != nil {
						logger.Error("Failed to remove dead push subscription",
							zap.String("userId", user.ID),
							zap.String("subscriptionId", sub.ID),
							zap.Error(err))
					}
				}
				return outcome
			})
		}
	}
	if s.Email != nil && user.Email != "" && user.EmailReminders {
		attempts = append(attempts, func(ctx context.Context) Outcome {
			return s.Email.Send(ctx, user.Email, msg)
		})
	}

	if len(attempts) == 0 {
		logger.Info("Reminder has no destinations, skipping",
			zap.String("reminderId", rem.ID),
			zap.String("userId", user.ID))
		return ResultSkipped, nil
	}

	outcomes := make([]Outcome, len(attempts))
	g, gctx := errgroup.WithContext(ctx)
	for i, run := range attempts {
		i, run := i, run
		g.Go(func() error {
			outcomes[i] = run(gctx)
			return nil
		})
	}
	_ = g.Wait()

	anySuccess := false
	anyTransient := false
	for _, o := range outcomes {
		switch o {
		case OutcomeSuccess:
			anySuccess = true
		case OutcomeTransient:
			anyTransient = true
		}
	}

	switch {
	case anySuccess:
		return ResultDelivered, nil
	case anyTransient:
		return ResultRetry, nil
	default:
		return ResultSkipped, nil
	}
}
