package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TypeNotifyBooking = "booking:notify"
	TypeCRMSync       = "booking:crm-sync"
)

// BookingPayload identifies the booking a task works on. The handler
// re-reads the booking from the repository, so a task enqueued before a
// quick admin edit still sees current data.
type BookingPayload struct {
	BookingID     string `json:"bookingId"`
	ActivityTitle string `json:"activityTitle"`
}

func NewNotifyBookingTask(bookingID, activityTitle string) (*asynq.Task, error) {
	payload, err := json.Marshal(BookingPayload{BookingID: bookingID, ActivityTitle: activityTitle})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotifyBooking, payload), nil
}

func NewCRMSyncTask(bookingID, activityTitle string) (*asynq.Task, error) {
	payload, err := json.Marshal(BookingPayload{BookingID: bookingID, ActivityTitle: activityTitle})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCRMSync, payload), nil
}
