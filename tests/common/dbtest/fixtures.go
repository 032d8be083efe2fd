//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables so each subtest starts from a clean slate
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}
	return nil
}

// ExpireHold rewinds a booking's hold expiry so the reaper picks it up on
// its next pass without the test having to wait out the real TTL.
func ExpireHold(t *testing.T, db DBLike, bookingID uuid.UUID) {
	t.Helper()

	ctx := context.Background()
	tag, err := db.Exec(ctx,
		"UPDATE bookings SET hold_expiry = now() - interval '1 minute' WHERE id = $1 AND status = 'HOLD'",
		bookingID)
	require.NoError(t, err)
	require.Equal(t, int64(1), tag.RowsAffected(), "booking is not an active hold")
}

func BookingStatus(t *testing.T, db DBLike, bookingID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(),
		"SELECT status FROM bookings WHERE id = $1", bookingID).Scan(&status)
	require.NoError(t, err)
	return status
}

func InventoryConsumed(t *testing.T, db DBLike, eventID uuid.UUID) int32 {
	t.Helper()

	var consumed int32
	err := db.QueryRow(context.Background(),
		"SELECT consumed FROM event_inventory WHERE event_id = $1", eventID).Scan(&consumed)
	require.NoError(t, err)
	return consumed
}

func TicketCount(t *testing.T, db DBLike, bookingID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM tickets WHERE booking_id = $1", bookingID).Scan(&count)
	require.NoError(t, err)
	return count
}
