package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSecretIsStablePerDay(t *testing.T) {
	secrets := []string{"crane", "slate", "trace", "boxed", "mommy"}
	morning := time.Date(2026, 3, 14, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, Secret(morning, "salt", secrets), Secret(evening, "salt", secrets))
	assert.Contains(t, secrets, Secret(morning, "salt", secrets))
	assert.Equal(t, "2026-03-14", DateKey(morning))
}

func TestWordIndexBounds(t *testing.T) {
	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		idx := WordIndex(day.AddDate(0, 0, i), "s", 7)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 7)
	}
	assert.Equal(t, 0, WordIndex(day, "s", 0))
	assert.Equal(t, "", Secret(day, "s", nil))
}
