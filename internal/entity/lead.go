package entity

import (
	"context"
	"errors"
)

// Lead is the canonical record flowing through the pipeline. Optional fields
// use the empty string as "absent": the normalizer only fills them when the
// source payload carried a non-blank value, and both the email formatter and
// the ledger row builder rely on that distinction.
type Lead struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Interest  string `json:"interest,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Platform  string `json:"platform,omitempty"`
	Campaign  string `json:"campaign,omitempty"`

	// Unknown holds payload keys the normalizer did not recognize. The
	// validator rejects the lead when any are present (strict schema).
	Unknown []string `json:"-"`
}

func (l *Lead) FullName() string {
	return l.FirstName + " " + l.LastName
}

// LedgerRecord is the persisted form of a Lead plus processing state. A record
// for a given email is created at most once; SentToCRM flips from "no" to
// "yes" only after a confirmed send and never reverses.
type LedgerRecord struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Validated string `json:"validated"`   // "yes" | "no"
	SentToCRM string `json:"sent_to_crm"` // "yes" | "no"
}

func (r *LedgerRecord) Delivered() bool {
	return r.SentToCRM == "yes"
}

// ErrLeadAlreadyExists signals that Append found an existing row for the same
// email (unique-key violation or the pre-insert re-check caught one).
var ErrLeadAlreadyExists = errors.New("lead with this email already exists")

type LedgerInterface interface {
	// Lookup returns nil, nil when no row exists for the email.
	Lookup(ctx context.Context, email string) (*LedgerRecord, error)

	// Append creates a new row. Returns false when a row for the email
	// already exists (the caller lost the check-then-act race).
	Append(ctx context.Context, lead *Lead, validated bool) (bool, error)

	// MarkDelivered flips sent_to_crm to "yes". No-op when no row matches.
	MarkDelivered(ctx context.Context, email string) error
}
