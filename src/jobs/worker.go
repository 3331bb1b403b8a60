// Package jobs runs the asynq background worker in-process with the API.
package jobs

import (
	"log"

	"Backend-GnaasCMS/src/config"
	"Backend-GnaasCMS/src/services/email"

	"github.com/hibiken/asynq"
)

// StartWorker spins up the asynq server and blocks until it stops. main runs
// this on its own goroutine when Redis is configured.
func StartWorker(cfg *config.Config, sender email.MailSender) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"emails":  3,
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(email.TypeDeliver, email.HandleDeliver(sender))

	log.Println("🚀 Background worker started")
	if err := srv.Run(mux); err != nil {
		log.Println("❌ Background worker stopped:", err)
	}
}
