package repository

import (
	"context"
	"errors"
	"log/slog"

	"ticketapp/internal/infra"
	"ticketapp/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InventoryLedger is the only writer of event_inventory. Reserve and Release
// are each one conditional UPDATE, so linearizability comes from the database
// row lock rather than any in-process coordination.
type InventoryLedger struct {
	db db.DBTX
}

func NewInventoryLedger(db db.DBTX) *InventoryLedger {
	return &InventoryLedger{db: db}
}

func (l *InventoryLedger) CreateCounter(ctx context.Context, dbtx db.DBTX, eventID uuid.UUID, total int) error {
	const query = `
		INSERT INTO event_inventory (event_id, total, consumed)
		VALUES ($1, $2, 0)`

	if _, err := dbtx.Exec(ctx, query, eventID, total); err != nil {
		return infra.WrapRepoErr("failed to create inventory counter", err)
	}
	return nil
}

func (l *InventoryLedger) Reserve(ctx context.Context, eventID uuid.UUID, qty int) error {
	const query = `
		UPDATE event_inventory
		SET consumed = consumed + $2
		WHERE event_id = $1 AND consumed + $2 <= total`

	tag, err := l.db.Exec(ctx, query, eventID, qty)
	if err != nil {
		return infra.WrapRepoErr("failed to reserve inventory", err, infra.KindUnavailable)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// No row moved: either the counter is missing or the guard failed.
	var exists bool
	err = l.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM event_inventory WHERE event_id = $1)`, eventID).Scan(&exists)
	if err != nil {
		return infra.WrapRepoErr("failed to check inventory counter", err, infra.KindUnavailable)
	}
	if !exists {
		return infra.WrapRepoErr("inventory counter not found", nil, infra.KindNotFound)
	}
	return infra.WrapRepoErr("insufficient capacity", nil, infra.KindConflict)
}

func (l *InventoryLedger) Release(ctx context.Context, eventID uuid.UUID, qty int) error {
	// The CTE captures the pre-update value so a clamped release is
	// observable without a second round trip.
	const query = `
		WITH prev AS (
			SELECT consumed FROM event_inventory WHERE event_id = $1 FOR UPDATE
		)
		UPDATE event_inventory i
		SET consumed = GREATEST(prev.consumed - $2, 0)
		FROM prev
		WHERE i.event_id = $1
		RETURNING prev.consumed`

	var before int
	err := l.db.QueryRow(ctx, query, eventID, qty).Scan(&before)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return infra.WrapRepoErr("inventory counter not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to release inventory", err, infra.KindUnavailable)
	}

	if before < qty {
		// Accounting anomaly: released more than was consumed. The clamp to
		// zero already happened; surface it for investigation.
		slog.Error("inventory release clamped at zero",
			"event_id", eventID, "requested", qty, "consumed_before", before)
	}
	return nil
}
