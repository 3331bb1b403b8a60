package database

import (
	"log"

	"github.com/hibiken/asynq"
)

// NewAsynqClient builds the task-queue client used for background email
// delivery. The caller is responsible for Close.
func NewAsynqClient(addr, password string) *asynq.Client {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     addr,
		Password: password,
	})
	log.Println("✅ Asynq client ready")
	return client
}
