package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"communitypulse/internal/domain"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type eventService struct {
	eventRepo      domain.EventRepository
	interestRepo   domain.InterestRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	geocoder       domain.Geocoder
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewEventService returns the EventService that owns event creation, the
// moderation status transitions, and the notification they trigger.
// geocoder may be nil to disable coordinate resolution.
func NewEventService(eventRepo domain.EventRepository,
	interestRepo domain.InterestRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	geocoder domain.Geocoder,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		interestRepo:   interestRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		geocoder:       geocoder,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var missing []string
	for field, value := range map[string]string{
		"title":       event.Title,
		"category":    event.Category,
		"date":        event.Date,
		"time":        event.Time,
		"location":    event.Location,
		"description": event.Description,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	if _, err := time.Parse(dateLayout, event.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	if _, err := time.Parse(timeLayout, event.Time); err != nil {
		return fmt.Errorf("%w: time must be HH:MM", domain.ErrInvalidInput)
	}

	event.ID = uuid.NewString()
	event.Status = domain.StatusPending
	event.Interests = []*domain.Interest{}
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt

	// Coordinate resolution is best-effort; a geocoding failure never
	// blocks event creation.
	if s.geocoder != nil {
		coords, err := s.geocoder.Geocode(ctx, event.Location)
		if err != nil {
			s.logger.Warn("geocoding failed", "location", event.Location, "err", err)
		} else if coords != nil {
			event.Latitude = &coords.Latitude
			event.Longitude = &coords.Longitude
		}
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	interests, err := s.interestRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list interests: %w", err)
	}
	if interests == nil {
		interests = []*domain.Interest{}
	}
	event.Interests = interests
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, status string, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	filter := domain.EventStatus(status)
	if status != "" && !filter.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	events, total, err := s.eventRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

// PatchEvent merges the supplied fields into the event and persists it.
// If the patch carries a status value, a notification to the organizer is
// attempted afterwards, whether or not the value differs from the stored
// one. Delivery failure is logged and never fails the request: the state
// change is authoritative, the notification best-effort.
func (s *eventService) PatchEvent(ctx context.Context, eventID, callerID string, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, *patch.Status)
	}
	if patch.Date != nil {
		if _, err := time.Parse(dateLayout, *patch.Date); err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}
	if patch.Time != nil {
		if _, err := time.Parse(timeLayout, *patch.Time); err != nil {
			return nil, fmt.Errorf("%w: time must be HH:MM", domain.ErrInvalidInput)
		}
	}

	updated, err := s.eventRepo.Update(ctx, eventID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}

	if patch.Status != nil {
		s.notifyStatusChange(ctx, updated)
	}
	return updated, nil
}

func (s *eventService) notifyStatusChange(ctx context.Context, event *domain.Event) {
	if event.UserID == "" {
		return
	}
	organizer, err := s.userRepo.GetByID(ctx, event.UserID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Error("organizer lookup failed", "event_id", event.ID, "user_id", event.UserID, "err", err)
		}
		return
	}
	if organizer.Email == "" {
		return
	}
	data := &domain.EventStatusEmailData{
		Email:  organizer.Email,
		Title:  event.Title,
		Status: string(event.Status),
	}
	if err := s.emailService.SendEventStatusUpdate(ctx, data); err != nil {
		s.logger.Error("status notification failed", "event_id", event.ID, "to", organizer.Email, "err", err)
	}
}

// DeleteEvent removes the event regardless of status or accumulated
// interests. Deleting an id that does not exist is not an error.
func (s *eventService) DeleteEvent(ctx context.Context, eventID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) requireAdmin(ctx context.Context, callerID string) error {
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrForbidden
		}
		return fmt.Errorf("get caller: %w", err)
	}
	if !caller.IsAdmin {
		return domain.ErrForbidden
	}
	return nil
}
