package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hamzaRio/MarrakechTours/src/models"
	"github.com/hamzaRio/MarrakechTours/src/repositories"
	"github.com/hamzaRio/MarrakechTours/src/services/crm"
	"github.com/hamzaRio/MarrakechTours/src/services/notifications"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handlers executes booking side effects. They run either inside the
// asynq worker or inline in a goroutine when Redis is down; failures are
// logged and never surface to the client who booked.
type Handlers struct {
	bookings repositories.BookingRepository
	notifier *notifications.Notifier
	tracker  *crm.StatusTracker
}

func NewHandlers(bookings repositories.BookingRepository, notifier *notifications.Notifier, tracker *crm.StatusTracker) *Handlers {
	return &Handlers{bookings: bookings, notifier: notifier, tracker: tracker}
}

// HandleNotifyBooking sends the WhatsApp fan-out for one booking.
func (h *Handlers) HandleNotifyBooking(ctx context.Context, t *asynq.Task) error {
	payload, booking, err := h.loadBooking(ctx, t)
	if err != nil {
		return err
	}

	if err := h.notifier.SendBookingNotification(ctx, *booking, payload.ActivityTitle); err != nil {
		return fmt.Errorf("notify booking %s: %w", payload.BookingID, err)
	}
	return nil
}

// HandleCRMSync upserts the booking contact in the configured CRM and
// writes the CRM id back onto the booking.
func (h *Handlers) HandleCRMSync(ctx context.Context, t *asynq.Task) error {
	payload, booking, err := h.loadBooking(ctx, t)
	if err != nil {
		return err
	}

	result := crm.SyncBookingWithCRM(ctx, h.tracker, *booking, payload.ActivityTitle)
	if !result.Success {
		log.Printf("⚠️ CRM sync skipped for booking %s: %s", payload.BookingID, result.Message)
		return nil
	}

	log.Printf("✅ CRM sync done for booking %s: %s", payload.BookingID, result.Message)
	if result.CRMID != "" {
		if err := h.bookings.SetCRMReference(ctx, booking.ID, result.CRMID); err != nil {
			log.Printf("⚠️ Failed to store CRM reference on booking %s: %v", payload.BookingID, err)
		}
	}
	return nil
}

func (h *Handlers) loadBooking(ctx context.Context, t *asynq.Task) (*BookingPayload, *models.Booking, error) {
	var payload BookingPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return nil, nil, fmt.Errorf("unmarshal %s payload: %w", t.Type(), err)
	}

	id, err := primitive.ObjectIDFromHex(payload.BookingID)
	if err != nil {
		return nil, nil, fmt.Errorf("bad booking id %q: %w", payload.BookingID, err)
	}

	booking, err := h.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("load booking %s: %w", payload.BookingID, err)
	}
	return &payload, booking, nil
}
