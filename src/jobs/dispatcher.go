package jobs

import (
	"context"
	"log"
	"time"

	"github.com/hamzaRio/MarrakechTours/src/database"
	"github.com/hamzaRio/MarrakechTours/src/models"

	"github.com/hibiken/asynq"
)

// Dispatcher turns an admitted booking into queued side-effect tasks.
// When the asynq client is unavailable (no Redis) it falls back to
// running the handlers in a goroutine so notifications still go out.
type Dispatcher struct {
	handlers *Handlers
}

func NewDispatcher(handlers *Handlers) *Dispatcher {
	return &Dispatcher{handlers: handlers}
}

// BookingCreated enqueues the WhatsApp notification and CRM sync for a
// freshly admitted booking. It returns immediately; the booking response
// never waits on Twilio or HubSpot.
func (d *Dispatcher) BookingCreated(booking models.Booking, activityTitle string) {
	d.dispatch(booking, activityTitle, TypeNotifyBooking, TypeCRMSync)
}

// NotifyBooking re-sends the WhatsApp notification for one booking, used
// by the admin resend endpoint.
func (d *Dispatcher) NotifyBooking(booking models.Booking, activityTitle string) {
	d.dispatch(booking, activityTitle, TypeNotifyBooking)
}

// SyncBookingCRM re-runs the CRM sync for one booking, used by the admin
// sync endpoint.
func (d *Dispatcher) SyncBookingCRM(booking models.Booking, activityTitle string) {
	d.dispatch(booking, activityTitle, TypeCRMSync)
}

func (d *Dispatcher) dispatch(booking models.Booking, activityTitle string, taskTypes ...string) {
	bookingID := booking.ID.Hex()

	tasks := make([]*asynq.Task, 0, len(taskTypes))
	for _, taskType := range taskTypes {
		var task *asynq.Task
		var err error
		switch taskType {
		case TypeNotifyBooking:
			task, err = NewNotifyBookingTask(bookingID, activityTitle)
		case TypeCRMSync:
			task, err = NewCRMSyncTask(bookingID, activityTitle)
		}
		if err != nil {
			log.Printf("❌ Failed to build %s task: %v", taskType, err)
			return
		}
		tasks = append(tasks, task)
	}

	if database.AsynqClient == nil {
		go d.runInline(tasks...)
		return
	}

	for _, task := range tasks {
		if _, err := database.AsynqClient.Enqueue(task, asynq.MaxRetry(3), asynq.Timeout(2*time.Minute)); err != nil {
			log.Printf("❌ Failed to enqueue %s task: %v", task.Type(), err)
		}
	}
}

func (d *Dispatcher) runInline(tasks ...*asynq.Task) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, task := range tasks {
		var err error
		switch task.Type() {
		case TypeNotifyBooking:
			err = d.handlers.HandleNotifyBooking(ctx, task)
		case TypeCRMSync:
			err = d.handlers.HandleCRMSync(ctx, task)
		}
		if err != nil {
			log.Printf("❌ Inline %s failed: %v", task.Type(), err)
		}
	}
}
