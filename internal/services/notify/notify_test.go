package notify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/folio/internal/models"
)

func TestQueue_DrainEmptiesQueue(t *testing.T) {
	c := NewCenter(0)
	q := c.For("1")

	q.Error("Load portfolio", "Error loading portfolio data")
	q.Success("Buy stock", "Stock purchased successfully!")

	pending := q.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, models.NotificationError, pending[0].Level)
	assert.Equal(t, "Load portfolio", pending[0].Action)
	assert.False(t, pending[0].At.IsZero())

	drained := q.Drain()
	assert.Len(t, drained, 2)
	assert.Empty(t, q.Drain())
}

func TestQueue_LimitDropsOldest(t *testing.T) {
	c := NewCenter(3)
	q := c.For("1")

	for i := 0; i < 5; i++ {
		q.Error("action", fmt.Sprintf("msg-%d", i))
	}

	items := q.Drain()
	require.Len(t, items, 3)
	assert.Equal(t, "msg-2", items[0].Message)
	assert.Equal(t, "msg-4", items[2].Message)
}

func TestCenter_QueuesArePerUser(t *testing.T) {
	c := NewCenter(0)
	c.For("1").Error("a", "for one")

	assert.Empty(t, c.For("2").Pending())
	assert.Same(t, c.For("1"), c.For("1"))

	c.Forget("1")
	assert.Empty(t, c.For("1").Pending())
}
