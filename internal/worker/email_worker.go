package worker

// email_worker.go
// Processes email jobs from QueueEmail and delivers them via SMTP.

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/SmekensRuben/HotelSuite/internal/infra"
	"github.com/SmekensRuben/HotelSuite/internal/metrics"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailWorker sends plain-text mails through the SMTP mailer.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		metrics.JobsProcessed.WithLabelValues("email", "invalid").Inc()
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		metrics.JobsProcessed.WithLabelValues("email", "invalid").Inc()
		return
	}

	if err := w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		metrics.JobsProcessed.WithLabelValues("email", "failed").Inc()
		return
	}
	metrics.JobsProcessed.WithLabelValues("email", "ok").Inc()
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: mail sent")
}
