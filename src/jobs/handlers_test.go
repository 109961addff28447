package jobs

import (
	"context"
	"testing"

	"github.com/hamzaRio/MarrakechTours/src/models"
	"github.com/hamzaRio/MarrakechTours/src/repositories"
	"github.com/hamzaRio/MarrakechTours/src/services/crm"
	"github.com/hamzaRio/MarrakechTours/src/services/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedBooking(t *testing.T, repo repositories.BookingRepository) *models.Booking {
	t.Helper()

	booking := &models.Booking{
		Name:       "Fatima Zahra",
		Phone:      "+212600000000",
		ActivityID: primitive.NewObjectID(),
		Date:       "2026-06-01",
		People:     3,
		Status:     models.StatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), booking))
	return booking
}

func newHandlers(repo repositories.BookingRepository) (*Handlers, *notifications.Stats) {
	stats := notifications.NewStats()
	notifier := notifications.NewNotifierFromEnv(stats)
	return NewHandlers(repo, notifier, crm.NewStatusTracker()), stats
}

func TestTaskPayloadRoundTrip(t *testing.T) {
	task, err := NewNotifyBookingTask("64f1a2b3c4d5e6f7a8b9c0d1", "Agafay Combo")
	require.NoError(t, err)
	assert.Equal(t, TypeNotifyBooking, task.Type())

	crmTask, err := NewCRMSyncTask("64f1a2b3c4d5e6f7a8b9c0d1", "Agafay Combo")
	require.NoError(t, err)
	assert.Equal(t, TypeCRMSync, crmTask.Type())
	assert.JSONEq(t, `{"bookingId":"64f1a2b3c4d5e6f7a8b9c0d1","activityTitle":"Agafay Combo"}`, string(crmTask.Payload()))
}

func TestHandleNotifyBooking(t *testing.T) {
	t.Setenv("TWILIO_ACCOUNT_SID", "")
	t.Setenv("TWILIO_AUTH_TOKEN", "")

	repo := repositories.NewMemoryBookingRepository()
	booking := seedBooking(t, repo)
	handlers, stats := newHandlers(repo)

	task, err := NewNotifyBookingTask(booking.ID.Hex(), "Agafay Combo")
	require.NoError(t, err)

	// Without Twilio credentials the handler logs and succeeds, so the task
	// is not retried forever in development.
	require.NoError(t, handlers.HandleNotifyBooking(context.Background(), task))
	assert.Equal(t, 1, stats.Snapshot().TotalBookings)
}

func TestHandleNotifyBookingMissingBooking(t *testing.T) {
	handlers, _ := newHandlers(repositories.NewMemoryBookingRepository())

	task, err := NewNotifyBookingTask(primitive.NewObjectID().Hex(), "Agafay Combo")
	require.NoError(t, err)
	assert.Error(t, handlers.HandleNotifyBooking(context.Background(), task))
}

func TestHandleCRMSyncWithoutProvider(t *testing.T) {
	t.Setenv("HUBSPOT_API_KEY", "")
	t.Setenv("ZOHO_ACCESS_TOKEN", "")

	repo := repositories.NewMemoryBookingRepository()
	booking := seedBooking(t, repo)
	handlers, _ := newHandlers(repo)

	task, err := NewCRMSyncTask(booking.ID.Hex(), "Agafay Combo")
	require.NoError(t, err)

	// No provider configured: the sync is skipped without error and the
	// booking keeps no CRM reference.
	require.NoError(t, handlers.HandleCRMSync(context.Background(), task))

	stored, err := repo.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.CRMReference)
}

func TestHandlersRejectGarbagePayloads(t *testing.T) {
	handlers, _ := newHandlers(repositories.NewMemoryBookingRepository())

	task, err := NewNotifyBookingTask("not-an-object-id", "Agafay Combo")
	require.NoError(t, err)
	assert.Error(t, handlers.HandleNotifyBooking(context.Background(), task))
}
