package email

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
)

// TypeDeliver is the asynq task type for outbound mail.
const TypeDeliver = "email:deliver"

// DeliverPayload is the queued form of one email.
type DeliverPayload struct {
	ToEmail string `json:"toEmail"`
	ToName  string `json:"toName"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Notifier hands an email off for background delivery. Callers treat it as
// fire-and-forget: an enqueue failure is logged, never returned to the user.
type Notifier interface {
	Send(toEmail, toName, subject, html string)
}

// NewNotifier returns an asynq-backed Notifier, or a logging no-op when the
// queue is not configured.
func NewNotifier(client *asynq.Client) Notifier {
	if client == nil {
		return nopNotifier{}
	}
	return &asynqNotifier{client: client}
}

type asynqNotifier struct {
	client *asynq.Client
}

func (n *asynqNotifier) Send(toEmail, toName, subject, html string) {
	payload, err := json.Marshal(DeliverPayload{
		ToEmail: toEmail,
		ToName:  toName,
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		log.Println("❌ Failed to marshal email payload:", err)
		return
	}
	task := asynq.NewTask(TypeDeliver, payload, asynq.MaxRetry(3), asynq.Queue("emails"))
	if _, err := n.client.Enqueue(task); err != nil {
		log.Println("❌ Failed to enqueue email to", toEmail+":", err)
		return
	}
	log.Println("📨 Queued email to", toEmail)
}

type nopNotifier struct{}

func (nopNotifier) Send(toEmail, _, subject, _ string) {
	log.Printf("⚠️  Email queue not configured, dropping %q to %s", subject, toEmail)
}

// HandleDeliver is the asynq handler that actually sends the mail.
func HandleDeliver(sender MailSender) asynq.HandlerFunc {
	return func(_ context.Context, t *asynq.Task) error {
		var p DeliverPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("decode email payload: %w", err)
		}
		if err := sender.Send(p.ToEmail, p.ToName, p.Subject, p.HTML); err != nil {
			return err
		}
		log.Println("✅ Sent email to", p.ToEmail)
		return nil
	}
}
