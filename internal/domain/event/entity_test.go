//go:build unit

package event_test

import (
	"testing"

	"ticketapp/internal/domain/event"
	"ticketapp/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewEventBuilder().BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, "Test Concert", actual.Title())
		assert.Equal(t, []string{"GENERAL", "VIP"}, actual.TicketTypes())
		assert.Equal(t, 100, actual.TotalTickets())
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*builder.EventBuilder)
			errIs  error
		}{
			{
				name:   "empty title",
				mutate: func(b *builder.EventBuilder) { b.WithTitle("   ") },
				errIs:  event.ErrEmptyTitle,
			},
			{
				name:   "zero capacity",
				mutate: func(b *builder.EventBuilder) { b.WithTotalTickets(0) },
				errIs:  event.ErrInvalidCapacity,
			},
			{
				name:   "no ticket types",
				mutate: func(b *builder.EventBuilder) { b.WithTicketTypes() },
				errIs:  event.ErrNoTicketTypes,
			},
			{
				name:   "blank ticket types only",
				mutate: func(b *builder.EventBuilder) { b.WithTicketTypes("", "  ") },
				errIs:  event.ErrNoTicketTypes,
			},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				actual, err := builder.NewEventBuilder().With(c.mutate).BuildDomain()
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			})
		}
	})

	t.Run("blank ticket type labels are dropped", func(t *testing.T) {
		actual, err := builder.NewEventBuilder().WithTicketTypes(" GENERAL ", "", "VIP").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, []string{"GENERAL", "VIP"}, actual.TicketTypes())
	})
}

func TestValidateTicketType(t *testing.T) {
	e, err := builder.NewEventBuilder().BuildDomain()
	require.NoError(t, err)

	assert.NoError(t, e.ValidateTicketType("GENERAL"))
	assert.NoError(t, e.ValidateTicketType("VIP"))
	assert.ErrorIs(t, e.ValidateTicketType("BACKSTAGE"), event.ErrUnknownTicketType)
	assert.ErrorIs(t, e.ValidateTicketType("general"), event.ErrUnknownTicketType)
}
