// asynq_client.go wires the task queue that carries booking side effects
// (WhatsApp notifications, CRM sync). It shares the Redis connection
// settings resolved by InitRedis.
package database

import (
	"log"

	"github.com/hibiken/asynq"
)

// AsynqClient enqueues booking side-effect tasks. It stays nil when Redis
// is unreachable; the jobs dispatcher then runs handlers inline instead of
// going through the queue.
var AsynqClient *asynq.Client

func InitAsynq() {
	if RedisClient == nil || RedisURI == "" {
		log.Println("⚠️ Redis not available. Booking side effects will run inline instead of through the queue.")
		return
	}

	AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     RedisURI,
		Password: RedisClient.Options().Password,
	})
	log.Println("✅ Asynq client ready for the booking side-effect queue")
}
