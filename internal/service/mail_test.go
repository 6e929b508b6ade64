package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
	"gopkg.in/guregu/null.v3"

	"mediawatch.dev/backend/internal/app/appconfig"
	"mediawatch.dev/backend/internal/model"
)

func testMail() *Mail {
	return NewMail(nil, &appconfig.Config{ConfigSpec: appconfig.ConfigSpec{
		MailFromAddress: "noreply@mediawatch.dev",
		MailFromName:    "MediaWatch",
	}})
}

func testComplaint() (*model.Complaint, *model.Account) {
	complaint := &model.Complaint{
		ComplaintID:   "c0ffee00-0000-4000-8000-000000000000",
		LetterContent: "Dear Editor,\n\nThe government is not a household.",
		Incident: &model.Incident{
			Date:        time.Date(2024, time.May, 17, 0, 0, 0, 0, time.UTC),
			ProgramName: null.StringFrom("Newsnight"),
			Outlet: &model.Outlet{
				Name:           "BBC Two",
				ComplaintEmail: null.StringFrom("complaints@example.org"),
			},
		},
	}
	return complaint, &model.Account{Email: "viewer@example.com"}
}

func TestComplaintMessage(t *testing.T) {
	complaint, account := testComplaint()

	msg, err := testMail().ComplaintMessage(complaint, account)
	require.NoError(t, err)

	require.Len(t, msg.GetToString(), 1)
	assert.Contains(t, msg.GetToString()[0], "complaints@example.org")
	require.Len(t, msg.GetFromString(), 1)
	assert.Contains(t, msg.GetFromString()[0], "MediaWatch")
	assert.Contains(t, msg.GetFromString()[0], "noreply@mediawatch.dev")
	assert.Equal(t, []string{"Complaint: Newsnight - 2024-05-17"}, msg.GetGenHeader(mail.HeaderSubject))
	assert.Equal(t, []string{"MediaWatch"}, msg.GetGenHeader(mail.Header("X-Sent-Via")))
	assert.Equal(t, []string{"viewer@example.com"}, msg.GetGenHeader(mail.Header("X-Reply-To-User")))
	require.Len(t, msg.GetGenHeader(mail.HeaderReplyTo), 1)
	assert.Contains(t, msg.GetGenHeader(mail.HeaderReplyTo)[0], "viewer@example.com")

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "The government is not a household.")
}

func TestComplaintMessageRejectsBadAddress(t *testing.T) {
	complaint, account := testComplaint()
	complaint.Incident.Outlet.ComplaintEmail = null.StringFrom("not an address")

	_, err := testMail().ComplaintMessage(complaint, account)
	assert.Error(t, err)
}

func TestSendComplaintDisabled(t *testing.T) {
	complaint, account := testComplaint()

	err := testMail().SendComplaint(context.Background(), complaint, account)
	assert.ErrorIs(t, err, ErrMailDisabled)
}
