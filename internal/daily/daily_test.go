package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	ts := time.Date(2026, 3, 2, 5, 0, 0, 0, loc) // 2026-03-01 19:00 UTC
	assert.Equal(t, "2026-03-01", DateKey(ts))
}

func TestWordIndexDeterministic(t *testing.T) {
	day := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	later := day.Add(10 * time.Hour)

	a := WordIndex(day, "salt", 1000)
	assert.Equal(t, a, WordIndex(later, "salt", 1000), "same day must give same index")
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 1000)

	// Different salts or days spread across the range.
	seen := map[int]bool{}
	for i := 0; i < 30; i++ {
		seen[WordIndex(day.AddDate(0, 0, i), "salt", 1000)] = true
	}
	assert.Greater(t, len(seen), 20)
}

func TestWordIndexEdgeCases(t *testing.T) {
	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Zero(t, WordIndex(day, "salt", 0))
	assert.Zero(t, WordIndex(day, "salt", 1))

	long := string(make([]byte, 200))
	idx := WordIndex(day, long, 10)
	assert.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, 10)
}
