package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"communitypulse/internal/domain"
)

// ReminderService is the daily scan that reminds organizers of approved
// events happening the next calendar day. It only reads and dispatches
// notifications; it never mutates event or user state.
type ReminderService struct {
	eventRepo    domain.EventRepository
	userRepo     domain.UserRepository
	emailService domain.EmailService
	logger       *slog.Logger
}

func NewReminderService(eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
) *ReminderService {
	return &ReminderService{
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		emailService: emailService,
		logger:       logger,
	}
}

// Run scans approved events dated tomorrow (relative to now, local calendar
// arithmetic only) and emails each organizer. Per-event failures are logged
// and do not stop the scan. A store failure abandons the run.
func (s *ReminderService) Run(ctx context.Context, now time.Time) error {
	tomorrow := now.AddDate(0, 0, 1).Format(dateLayout)

	events, err := s.eventRepo.ListApprovedByDate(ctx, tomorrow)
	if err != nil {
		return fmt.Errorf("list approved events for %s: %w", tomorrow, err)
	}

	sent := 0
	for _, event := range events {
		if event.UserID == "" {
			continue
		}
		organizer, err := s.userRepo.GetByID(ctx, event.UserID)
		if err != nil {
			if !errors.Is(err, domain.ErrUserNotFound) {
				s.logger.Error("organizer lookup failed", "event_id", event.ID, "user_id", event.UserID, "err", err)
			}
			continue
		}
		if organizer.Email == "" {
			continue
		}
		data := &domain.EventReminderEmailData{
			Email:    organizer.Email,
			Title:    event.Title,
			Date:     event.Date,
			Time:     event.Time,
			Location: event.Location,
		}
		if err := s.emailService.SendEventReminder(ctx, data); err != nil {
			s.logger.Error("reminder failed", "event_id", event.ID, "to", organizer.Email, "err", err)
			continue
		}
		sent++
	}
	s.logger.Info("reminder scan finished", "date", tomorrow, "matched", len(events), "sent", sent)
	return nil
}
