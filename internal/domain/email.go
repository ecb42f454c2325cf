package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventStatusEmailData holds data for the moderation status email sent to
// an organizer when an event's status field is set by an administrator.
type EventStatusEmailData struct {
	Email  string
	Title  string
	Status string
}

// EventReminderEmailData holds data for the day-before reminder email.
type EventReminderEmailData struct {
	Email    string
	Title    string
	Date     string
	Time     string
	Location string
}

// EmailService defines the contract for sending domain-level emails.
// Delivery is best-effort: callers log failures and never roll back state.
type EmailService interface {
	SendEventStatusUpdate(ctx context.Context, data *EventStatusEmailData) error
	SendEventReminder(ctx context.Context, data *EventReminderEmailData) error
}
