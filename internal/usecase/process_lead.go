package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/xavierca1/lead-relay/internal/entity"
	"github.com/xavierca1/lead-relay/internal/infra/queue"
)

// ProcessLeadUseCase coordinates the ledger, validator and notifier for one
// inbound lead and classifies the result. Ledger and Events are optional: a
// nil ledger is the supported degraded mode (no dedup, no durability, still
// validates and delivers), a nil Events drops the side channel.
type ProcessLeadUseCase struct {
	Ledger   entity.LedgerInterface
	Notifier entity.NotifierInterface
	Events   queue.LeadEventPublisherInterface
	Log      *log.Logger
}

func NewProcessLeadUseCase(
	ledger entity.LedgerInterface,
	notifier entity.NotifierInterface,
	events queue.LeadEventPublisherInterface,
	logger *log.Logger,
) *ProcessLeadUseCase {
	return &ProcessLeadUseCase{
		Ledger:   ledger,
		Notifier: notifier,
		Events:   events,
		Log:      logger,
	}
}

// Execute runs the pipeline in strict order: duplicate lookup, validation,
// ledger append, delivery, delivery-state recording. Ledger failures are
// best-effort throughout and never block delivery; notifier failures become
// the DeliveryFailed outcome.
//
// The lookup-then-append sequence is a check-then-act race between concurrent
// requests for the same email. The append's internal re-check narrows the
// window but does not close it: duplicate prevention is best-effort, not
// linearizable, and no in-process lock would change that across process
// instances.
func (uc *ProcessLeadUseCase) Execute(ctx context.Context, lead *entity.Lead) Outcome {
	if uc.Ledger != nil {
		existing, err := uc.Ledger.Lookup(ctx, lead.Email)
		if err != nil {
			uc.Log.Warn("ledger lookup failed, treating as new lead", "email", lead.Email, "err", err)
		} else if existing != nil {
			return DuplicateOutcome(existing.Delivered())
		}
	}

	fieldErrors := ValidateLead(lead)
	valid := len(fieldErrors) == 0

	// The attempt is recorded even when invalid (validated: no), so bad
	// submissions stay auditable instead of vanishing.
	if uc.Ledger != nil {
		appended, err := uc.Ledger.Append(ctx, lead, valid)
		switch {
		case errors.Is(err, entity.ErrLeadAlreadyExists), err == nil && !appended:
			return DuplicateOutcome(false)
		case err != nil:
			uc.Log.Warn("ledger append failed, continuing without durability", "email", lead.Email, "err", err)
		}
	}

	if !valid {
		return InvalidOutcome(fieldErrors)
	}

	body := FormatLeadEmail(lead, time.Now())
	if err := uc.Notifier.Send(body, lead); err != nil {
		uc.Log.Error("lead delivery failed", "email", lead.Email, "err", err)
		return DeliveryFailedOutcome(err)
	}

	if uc.Ledger != nil {
		if err := uc.Ledger.MarkDelivered(ctx, lead.Email); err != nil {
			// A lost sent flag only affects future duplicate messaging,
			// not delivery correctness.
			uc.Log.Warn("failed to mark lead as delivered", "email", lead.Email, "err", err)
		}
	}

	if uc.Events != nil {
		payload := queue.LeadEventPayload{
			Email:      lead.Email,
			FirstName:  lead.FirstName,
			LastName:   lead.LastName,
			Phone:      lead.Phone,
			Platform:   lead.Platform,
			Campaign:   lead.Campaign,
			AcceptedAt: time.Now().UTC(),
			Origin:     "WEBHOOK_MANYCHAT",
		}
		if err := uc.Events.PublishLeadAccepted(ctx, payload); err != nil {
			uc.Log.Warn("lead event publish failed", "email", lead.Email, "err", err)
		}
	}

	uc.Log.Info("lead accepted and sent", "email", lead.Email, "name", lead.FullName())
	return AcceptedOutcome()
}
