package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsTracking(t *testing.T) {
	stats := NewStats()

	stats.TrackBookingSubmission()
	stats.TrackBookingSubmission()
	stats.TrackMessageSuccess("nadia")
	stats.TrackMessageSuccess("nadia")
	stats.TrackMessageSuccess("ahmed")
	stats.TrackMessageFailure("ahmed")

	snap := stats.Snapshot()
	assert.Equal(t, 2, snap.TotalBookings)
	assert.Equal(t, 3, snap.TotalMessagesSent)
	assert.Equal(t, 1, snap.TotalMessagesFailed)
	require.NotNil(t, snap.LastSentAt)

	assert.Equal(t, 2, snap.MessagesPerAdmin["nadia"].Sent)
	assert.Equal(t, 1, snap.MessagesPerAdmin["ahmed"].Sent)
	assert.Equal(t, 1, snap.MessagesPerAdmin["ahmed"].Failed)
}

func TestSnapshotIsACopy(t *testing.T) {
	stats := NewStats()
	stats.TrackMessageSuccess("nadia")

	snap := stats.Snapshot()
	snap.MessagesPerAdmin["nadia"] = AdminCounter{Sent: 99}

	assert.Equal(t, 1, stats.Snapshot().MessagesPerAdmin["nadia"].Sent)
}

func TestEmptySnapshot(t *testing.T) {
	snap := NewStats().Snapshot()
	assert.Zero(t, snap.TotalBookings)
	assert.Nil(t, snap.LastSentAt)
	assert.NotNil(t, snap.MessagesPerAdmin)
}
