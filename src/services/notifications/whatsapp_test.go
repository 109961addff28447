package notifications

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/hamzaRio/MarrakechTours/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strPtr(s string) *string { return &s }

func sampleBooking() models.Booking {
	return models.Booking{
		ID:         primitive.NewObjectID(),
		Name:       "Fatima Zahra",
		Phone:      "+212600000000",
		ActivityID: primitive.NewObjectID(),
		Date:       "2026-06-01",
		People:     3,
		Status:     models.StatusPending,
	}
}

func TestFormatBookingMessage(t *testing.T) {
	booking := sampleBooking()
	booking.Notes = strPtr("Vegetarian dinner please")

	msg := FormatBookingMessage(booking, "Agafay Combo")
	assert.Contains(t, msg, "*New Booking Received*")
	assert.Contains(t, msg, "Name: Fatima Zahra")
	assert.Contains(t, msg, "Phone: +212600000000")
	assert.Contains(t, msg, "Activity: Agafay Combo")
	assert.Contains(t, msg, "Date: 2026-06-01")
	assert.Contains(t, msg, "People: 3")
	assert.Contains(t, msg, "Notes: Vegetarian dinner please")
}

func TestFormatBookingMessageWithoutNotes(t *testing.T) {
	msg := FormatBookingMessage(sampleBooking(), "Agafay Combo")
	assert.Contains(t, msg, "Notes: No notes provided.")
}

func TestParseRecipients(t *testing.T) {
	t.Run("NamedEntries", func(t *testing.T) {
		got := parseRecipients("nadia:whatsapp:+212654497354, ahmed:whatsapp:+212600623630")
		require.Len(t, got, 2)
		assert.Equal(t, "nadia", got[0].Name)
		assert.Equal(t, "whatsapp:+212654497354", got[0].Phone)
		assert.Equal(t, "ahmed", got[1].Name)
	})

	t.Run("EmptyAndMalformedEntriesSkipped", func(t *testing.T) {
		got := parseRecipients("nadia:whatsapp:+212654497354,,noseparator")
		require.Len(t, got, 1)
		assert.Equal(t, "nadia", got[0].Name)
	})

	t.Run("EmptyEnv", func(t *testing.T) {
		assert.Empty(t, parseRecipients(""))
	})
}

func TestSendBookingNotificationWithoutCredentials(t *testing.T) {
	stats := NewStats()
	n := &Notifier{stats: stats}

	err := n.SendBookingNotification(context.Background(), sampleBooking(), "Agafay Combo")
	require.NoError(t, err)

	snap := stats.Snapshot()
	assert.Equal(t, 1, snap.TotalBookings)
	assert.Zero(t, snap.TotalMessagesSent)
}

func TestSendBookingNotificationFanOut(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		require.NoError(t, r.ParseForm())
		assert.NotEmpty(t, r.FormValue("To"))
		assert.NotEmpty(t, r.FormValue("Body"))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	stats := NewStats()
	n := &Notifier{
		accountSID: "ACtest",
		authToken:  "token",
		fromPhone:  "whatsapp:+14155238886",
		recipients: []Recipient{
			{Name: "nadia", Phone: "whatsapp:+212654497354"},
			{Name: "ahmed", Phone: "whatsapp:+212600623630"},
		},
		stats:   stats,
		client:  server.Client(),
		baseURL: server.URL,
	}

	err := n.SendBookingNotification(context.Background(), sampleBooking(), "Agafay Combo")
	require.NoError(t, err)

	// Two admins plus the client confirmation.
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))

	snap := stats.Snapshot()
	assert.Equal(t, 2, snap.TotalMessagesSent)
	assert.Zero(t, snap.TotalMessagesFailed)
}

func TestSendBookingNotificationTracksFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid number"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	stats := NewStats()
	n := &Notifier{
		accountSID: "ACtest",
		authToken:  "token",
		fromPhone:  "whatsapp:+14155238886",
		recipients: []Recipient{{Name: "nadia", Phone: "whatsapp:+212654497354"}},
		stats:      stats,
		client:     server.Client(),
		baseURL:    server.URL,
	}

	err := n.SendBookingNotification(context.Background(), sampleBooking(), "Agafay Combo")
	require.NoError(t, err)

	snap := stats.Snapshot()
	assert.Zero(t, snap.TotalMessagesSent)
	assert.Equal(t, 1, snap.TotalMessagesFailed)
	assert.Equal(t, 1, snap.MessagesPerAdmin["nadia"].Failed)
}
