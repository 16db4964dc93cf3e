package tokenmart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenterEvictsOldestOnOverflow(t *testing.T) {
	c := NewCenter(3)
	c.Info("one")
	c.Info("two")
	c.Info("three")
	c.Info("four")

	got := c.Active()
	require.Len(t, got, 3)
	assert.Equal(t, "two", got[0].Message)
	assert.Equal(t, "four", got[2].Message)
}

func TestCenterSeverityDurations(t *testing.T) {
	assert.Equal(t, 3*time.Second, SeverityInfo.TTL())
	assert.Equal(t, 3*time.Second, SeveritySuccess.TTL())
	assert.Equal(t, 3500*time.Millisecond, SeverityWarning.TTL())
	assert.Equal(t, 4*time.Second, SeverityError.TTL())
}

func TestCenterPrunesExpired(t *testing.T) {
	now := time.Now()
	c := NewCenter(3)
	c.now = func() time.Time { return now }

	c.Success("done")
	c.Error("broken")

	// Success expires after 3s, error after 4s.
	now = now.Add(3500 * time.Millisecond)
	got := c.Active()
	require.Len(t, got, 1)
	assert.Equal(t, "broken", got[0].Message)

	now = now.Add(time.Second)
	assert.Empty(t, c.Active())
}

func TestCenterDismissAndClear(t *testing.T) {
	c := NewCenter(0)
	c.Info("a")
	c.Warning("b")

	got := c.Active()
	require.Len(t, got, 2)
	c.Dismiss(got[0].ID)

	got = c.Active()
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Message)

	c.Clear()
	assert.Empty(t, c.Active())
}

func TestCenterAssignsIDs(t *testing.T) {
	c := NewCenter(2)
	c.Info("a")
	c.Info("b")

	got := c.Active()
	require.Len(t, got, 2)
	assert.NotEmpty(t, got[0].ID)
	assert.NotEqual(t, got[0].ID, got[1].ID)
}
