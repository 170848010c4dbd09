package mail

import (
	"context"
	"log"
	"time"

	"github.com/karansingh008/Tourizio/domain"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/gomail.v2"
)

// SMTPMailer delivers mail over SMTP. Dispatch goes through a circuit breaker
// so a dead SMTP server fails fast instead of stalling every request.
type SMTPMailer struct {
	host     string
	port     int
	email    string
	password string
	cb       *gobreaker.CircuitBreaker
	tracer   trace.Tracer
}

func NewSMTPMailer(host string, port int, email, password string, tracer trace.Tracer) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		email:    email,
		password: password,
		cb:       CircuitBreaker("smtpMailer"),
		tracer:   tracer,
	}
}

func (mailer *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	_, span := mailer.tracer.Start(ctx, "SMTPMailer.Send")
	defer span.End()

	_, err := mailer.cb.Execute(func() (interface{}, error) {
		message := gomail.NewMessage()
		message.SetHeader("From", mailer.email)
		message.SetHeader("To", to)
		message.SetHeader("Subject", subject)
		message.SetBody("text/html", htmlBody)

		client := gomail.NewDialer(mailer.host, mailer.port, mailer.email, mailer.password)
		if sendErr := client.DialAndSend(message); sendErr != nil {
			log.Printf("failed to send mail to %s: %s", to, sendErr)
			return nil, sendErr
		}
		return nil, nil
	})
	if err != nil {
		span.SetStatus(codes.Error, "Error sending mail")
		return err
	}

	return nil
}

// ConsoleMailer logs instead of delivering. This is the default mode; nothing
// in the system may assume a message actually reached an inbox.
type ConsoleMailer struct{}

func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{}
}

func (mailer *ConsoleMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	log.Println("---------------------------------------------------")
	log.Printf("[MOCK EMAIL] To: %s", to)
	log.Printf("Subject: %s", subject)
	log.Printf("Body: %s", htmlBody)
	log.Println("---------------------------------------------------")
	return nil
}

func CircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			Interval:    0,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 2
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.Printf("Circuit Breaker '%s' changed from '%s' to '%s'\n", name, from, to)
			},
		},
	)
}

var _ domain.MailDispatcher = (*SMTPMailer)(nil)
var _ domain.MailDispatcher = (*ConsoleMailer)(nil)
