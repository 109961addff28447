package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	t.Run("AcceptedLayouts", func(t *testing.T) {
		cases := map[string]string{
			"2026-06-01":                "2026-06-01",
			"2026-06-01T14:30:00":       "2026-06-01",
			"2026-06-01T14:30:00Z":      "2026-06-01",
			"2026-06-01T14:30:00+01:00": "2026-06-01",
			"2026-06-01 09:00:00":       "2026-06-01",
		}
		for raw, want := range cases {
			got, err := NormalizeDate(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, want, got, raw)
		}
	})

	t.Run("RejectedInput", func(t *testing.T) {
		for _, raw := range []string{"", "01/06/2026", "June 1st", "2026-13-40"} {
			_, err := NormalizeDate(raw)
			assert.Error(t, err, raw)
		}
	})
}

func TestTruncateDay(t *testing.T) {
	assert.Equal(t, "2026-06-01", TruncateDay("2026-06-01T23:59:59"))
	// Malformed legacy values pass through unchanged so they never collide
	// with a real day key.
	assert.Equal(t, "garbage", TruncateDay("garbage"))
}
