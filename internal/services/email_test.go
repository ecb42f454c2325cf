package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communitypulse/internal/domain"
)

// fakeMailer records the last Send call.
type fakeMailer struct {
	to      string
	subject string
	html    string
	text    string
	err     error
}

func (f *fakeMailer) Send(to, subject, html, text string) error {
	if f.err != nil {
		return f.err
	}
	f.to = to
	f.subject = subject
	f.html = html
	f.text = text
	return nil
}

// fakeRenderer returns canned content keyed by template name.
type fakeRenderer struct {
	lastTemplate string
	err          error
}

func (f *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	if f.err != nil {
		return "", "", "", f.err
	}
	f.lastTemplate = templateName
	return "subject:" + templateName, "<p>html</p>", "text", nil
}

func TestEmailService_SendEventStatusUpdate(t *testing.T) {
	mailer := &fakeMailer{}
	renderer := &fakeRenderer{}
	svc := NewEmailService(mailer, renderer)

	err := svc.SendEventStatusUpdate(context.Background(), &domain.EventStatusEmailData{
		Email: "org@example.com", Title: "Fair", Status: "approved",
	})
	require.NoError(t, err)
	assert.Equal(t, "event_status", renderer.lastTemplate)
	assert.Equal(t, "org@example.com", mailer.to)
	assert.Equal(t, "subject:event_status", mailer.subject)
}

func TestEmailService_SendEventReminder(t *testing.T) {
	mailer := &fakeMailer{}
	renderer := &fakeRenderer{}
	svc := NewEmailService(mailer, renderer)

	err := svc.SendEventReminder(context.Background(), &domain.EventReminderEmailData{
		Email: "org@example.com", Title: "Fair", Date: "2026-09-15", Time: "10:00", Location: "Park",
	})
	require.NoError(t, err)
	assert.Equal(t, "event_reminder", renderer.lastTemplate)
	assert.Equal(t, "org@example.com", mailer.to)
}

func TestEmailService_NilData(t *testing.T) {
	svc := NewEmailService(&fakeMailer{}, &fakeRenderer{})

	assert.Error(t, svc.SendEventStatusUpdate(context.Background(), nil))
	assert.Error(t, svc.SendEventReminder(context.Background(), nil))
}

func TestEmailService_PropagatesFailures(t *testing.T) {
	t.Run("render failure", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{}, &fakeRenderer{err: errors.New("template missing")})
		assert.Error(t, svc.SendEventStatusUpdate(context.Background(), &domain.EventStatusEmailData{Email: "a@b.co"}))
	})

	t.Run("send failure", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{err: errors.New("smtp down")}, &fakeRenderer{})
		assert.Error(t, svc.SendEventReminder(context.Background(), &domain.EventReminderEmailData{Email: "a@b.co"}))
	})
}
