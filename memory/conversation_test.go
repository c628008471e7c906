package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tunecrew/tunecrew/core"
)

func TestConversation_AppendOnly(t *testing.T) {
	c := NewConversation()
	assert.Equal(t, 0, c.Len())

	prev := 0
	for i := 0; i < 5; i++ {
		c.Append(core.NewUserMessage(fmt.Sprintf("msg %d", i)))
		assert.Greater(t, c.Len(), prev)
		prev = c.Len()
	}

	snap := c.Snapshot()
	require.Len(t, snap, 5)
	assert.Equal(t, "msg 0", snap[0].Content)
	assert.Equal(t, "msg 4", snap[4].Content)
}

func TestConversation_SnapshotIsDetached(t *testing.T) {
	c := NewConversation()
	c.Append(core.NewUserMessage("original"))

	snap := c.Snapshot()
	snap[0].Content = "mutated"

	assert.Equal(t, "original", c.Snapshot()[0].Content)
}

func TestConversation_Last(t *testing.T) {
	c := NewConversation()
	_, ok := c.Last()
	assert.False(t, ok)

	c.Append(core.NewUserMessage("first"))
	c.Append(core.NewAssistantMessage("second"))
	last, ok := c.Last()
	require.True(t, ok)
	assert.Equal(t, core.RoleAssistant, last.Role)
	assert.Equal(t, "second", last.Content)
}

func TestConversation_ConcurrentAppendsAreAtomic(t *testing.T) {
	c := NewConversation()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Append(core.NewUserMessage("x"))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1000, c.Len())
}
