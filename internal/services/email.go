package services

import (
	"context"
	"fmt"

	"communitypulse/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendEventStatusUpdate sends the moderation status email using the
// "event_status" template.
func (s *emailService) SendEventStatusUpdate(ctx context.Context, data *domain.EventStatusEmailData) error {
	if data == nil {
		return fmt.Errorf("event status data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("event_status", data)
	if err != nil {
		return fmt.Errorf("failed to render event_status template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send status email: %w", err)
	}
	return nil
}

// SendEventReminder sends the day-before reminder email using the
// "event_reminder" template.
func (s *emailService) SendEventReminder(ctx context.Context, data *domain.EventReminderEmailData) error {
	if data == nil {
		return fmt.Errorf("event reminder data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("event_reminder", data)
	if err != nil {
		return fmt.Errorf("failed to render event_reminder template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}
	return nil
}
