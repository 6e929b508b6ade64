package service

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"

	"mediawatch.dev/backend/internal/app/appconfig"
	"mediawatch.dev/backend/internal/core/letter"
	"mediawatch.dev/backend/internal/model"
)

const mailDeliveryAttempts = 3

var ErrMailDisabled = errors.New("complaint delivery is not configured")

// Mail delivers complaint letters to outlets.
type Mail struct {
	client   *mail.Client
	fromAddr string
	fromName string
}

func NewMail(client *mail.Client, conf *appconfig.Config) *Mail {
	return &Mail{
		client:   client,
		fromAddr: conf.MailFromAddress,
		fromName: conf.MailFromName,
	}
}

func (s *Mail) Enabled() bool {
	return s.client != nil
}

// ComplaintMessage builds the mail carrying complaint to the outlet. The
// complaint must carry its Incident, the incident its Outlet.
func (s *Mail) ComplaintMessage(complaint *model.Complaint, complainant *model.Account) (*mail.Msg, error) {
	incident := complaint.Incident
	msg := mail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromAddr); err != nil {
		return nil, errors.Wrap(err, "invalid from address")
	}
	if err := msg.To(incident.Outlet.ComplaintEmail.String); err != nil {
		return nil, errors.Wrap(err, "invalid outlet complaint address")
	}
	if err := msg.ReplyTo(complainant.Email); err != nil {
		return nil, errors.Wrap(err, "invalid reply-to address")
	}
	msg.Subject(letter.Subject(incident))
	msg.SetGenHeader(mail.Header("X-Sent-Via"), s.fromName)
	msg.SetGenHeader(mail.Header("X-Reply-To-User"), complainant.Email)
	msg.SetMessageID()
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextPlain, complaint.LetterContent)
	return msg, nil
}

// SendComplaint delivers complaint, retrying transient failures.
func (s *Mail) SendComplaint(ctx context.Context, complaint *model.Complaint, complainant *model.Account) error {
	if !s.Enabled() {
		return ErrMailDisabled
	}

	msg, err := s.ComplaintMessage(complaint, complainant)
	if err != nil {
		return err
	}

	return retry.Do(
		func() error {
			return s.client.DialAndSendWithContext(ctx, msg)
		},
		retry.Context(ctx),
		retry.Attempts(mailDeliveryAttempts),
		retry.Delay(2*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().
				Str("evt.name", "complaint.dispatch.mail.retry").
				Str("complaintId", complaint.ComplaintID).
				Err(err).
				Uint("attempt", n+1).
				Msg("mail delivery failed, retrying")
		}),
	)
}
