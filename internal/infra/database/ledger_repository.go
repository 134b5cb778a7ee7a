package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/xavierca1/lead-relay/internal/entity"
	"github.com/xavierca1/lead-relay/internal/infra/http/middleware"
)

// LedgerRepository persists lead records in a single append-structured table
// keyed by email. Rows are created once, mutated only by MarkDelivered and
// never deleted.
type LedgerRepository struct {
	DB *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{DB: db}
}

func (r *LedgerRepository) Lookup(ctx context.Context, email string) (*entity.LedgerRecord, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, validated, sent_to_crm
		FROM lead_ledger
		WHERE email = $1
	`

	var rec entity.LedgerRecord
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&rec.ID,
		&rec.FirstName,
		&rec.LastName,
		&rec.Email,
		&rec.Phone,
		&rec.Validated,
		&rec.SentToCRM,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		middleware.RecordLedgerError("lookup")
		return nil, err
	}

	return &rec, nil
}

func (r *LedgerRepository) Append(ctx context.Context, lead *entity.Lead, validated bool) (bool, error) {
	// Light compare-and-append: re-check right before writing so two requests
	// for the same email racing past the caller's lookup usually collapse to
	// one row. Best-effort, not linearizable; the unique key on email is the
	// final arbiter.
	existing, err := r.Lookup(ctx, lead.Email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	query := `
		INSERT INTO lead_ledger (id, first_name, last_name, email, phone, validated, sent_to_crm, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, 'no', NOW())
	`

	_, err = r.DB.ExecContext(ctx, query,
		uuid.New().String(),
		lead.FirstName,
		lead.LastName,
		lead.Email,
		lead.Phone,
		yesNo(validated),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return false, entity.ErrLeadAlreadyExists
		}
		middleware.RecordLedgerError("append")
		return false, err
	}

	return true, nil
}

func (r *LedgerRepository) MarkDelivered(ctx context.Context, email string) error {
	query := `
		UPDATE lead_ledger
		SET sent_to_crm = 'yes'
		WHERE email = $1
	`

	// Zero rows matched is a no-op, not an error.
	if _, err := r.DB.ExecContext(ctx, query, email); err != nil {
		middleware.RecordLedgerError("mark_delivered")
		return err
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
