package jobs

import (
	"log"

	"github.com/hamzaRio/MarrakechTours/src/database"

	"github.com/hibiken/asynq"
)

// StartWorker runs the asynq server that drains booking side-effect
// tasks. It blocks, so call it from its own goroutine. Without Redis it
// logs and returns; the dispatcher handles tasks inline in that mode.
func StartWorker(handlers *Handlers) {
	if database.RedisClient == nil || database.RedisURI == "" {
		log.Println("⚠️ Redis not available. Asynq worker not started; side effects run inline.")
		return
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: database.RedisURI, Password: database.RedisClient.Options().Password},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeNotifyBooking, handlers.HandleNotifyBooking)
	mux.HandleFunc(TypeCRMSync, handlers.HandleCRMSync)

	log.Println("✅ Asynq worker started")
	if err := srv.Run(mux); err != nil {
		log.Println("❌ Asynq worker stopped:", err)
	}
}
