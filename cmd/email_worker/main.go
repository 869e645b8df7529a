package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/plantify/config"
	"github.com/oksasatya/plantify/pkg/helpers"
	"github.com/oksasatya/plantify/pkg/mailer"
	mailtpl "github.com/oksasatya/plantify/pkg/mailer/templates"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env, cfg.LogLevel)
	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, 16)
	if err != nil {
		log.Fatalf("amqp consumer: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	mg, err := mailer.NewMailgun(mailer.MailgunConfig{
		Domain: cfg.MailgunDomain,
		APIKey: cfg.MailgunAPIKey,
		Sender: cfg.MailgunSender,
		Region: cfg.MailgunRegion,
	})
	if err != nil {
		log.Fatalf("mailgun: %v", err)
	}
	opts := []mailtpl.Option{mailtpl.WithAppName(cfg.AppName), mailtpl.WithSupportURL(cfg.SupportURL)}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			handle(ctx, logger, mg, msg, opts)
		}
		close(done)
	}()

	logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("email worker listening")
	<-stop
	logger.Info("shutting down...")
	cancel()
	consumer.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// handle acks delivered jobs, drops jobs that can never be sent and requeues
// transport failures.
func handle(ctx context.Context, logger *logrus.Logger, s mailer.Sender, msg amqp.Delivery, opts []mailtpl.Option) {
	var job mailer.EmailJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		logger.WithError(err).Warn("bad email job")
		_ = msg.Nack(false, false)
		return
	}
	entry := logger.WithFields(logrus.Fields{"template": job.Template, "redelivered": msg.Redelivered})

	if !msg.Timestamp.IsZero() {
		opts = append(opts[:len(opts):len(opts)], mailtpl.WithTime(msg.Timestamp))
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := mailer.Deliver(c, s, job, opts...); err != nil {
		if errors.Is(err, mailer.ErrPermanent) {
			entry.WithError(err).Error("dropping email job")
			_ = msg.Nack(false, false)
			return
		}
		entry.WithError(err).Warn("send failed, requeueing")
		backoff(ctx, msg.Redelivered)
		_ = msg.Nack(false, true)
		return
	}
	entry.Info("email sent")
	_ = msg.Ack(false)
}

// requeueDelay holds a failed job before it goes back on the queue so a
// Mailgun outage does not turn into a resend loop.
var requeueDelay = 5 * time.Second

// backoff waits requeueDelay, six times longer for jobs that already came
// back once. Shutdown cuts the wait short.
func backoff(ctx context.Context, redelivered bool) {
	d := requeueDelay
	if redelivered {
		d *= 6
	}
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
