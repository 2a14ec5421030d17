package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCache(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewCache()
	c.now = func() time.Time { return now }

	c.set("featured_fr", []int{1}, time.Minute)
	c.set("featured_en", []int{2}, time.Minute)
	c.set("periods", []int{3}, time.Hour)

	v, ok := c.get("featured_fr")
	assert.True(t, ok)
	assert.Equal(t, []int{1}, v)

	c.invalidate("featured_")
	_, ok = c.get("featured_fr")
	assert.False(t, ok)
	_, ok = c.get("featured_en")
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.get("periods")
	assert.True(t, ok)

	now = now.Add(2 * time.Hour)
	_, ok = c.get("periods")
	assert.False(t, ok)

	c.set("other", 1, time.Minute)
	assert.Len(t, c.entries, 1, "expired entries are swept on write")
}
