package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"communitypulse/internal/domain"
)

type interestService struct {
	interestRepo   domain.InterestRepository
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewInterestService returns the InterestService that attaches interest
// submissions to events.
func NewInterestService(interestRepo domain.InterestRepository, eventRepo domain.EventRepository, timeout time.Duration) domain.InterestService {
	return &interestService{
		interestRepo:   interestRepo,
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

// RegisterInterest appends an interest to the event's sequence. There is no
// de-duplication: the same person may register any number of times.
func (s *interestService) RegisterInterest(ctx context.Context, eventID string, interest *domain.Interest) (*domain.Interest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	var missing []string
	if strings.TrimSpace(interest.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(interest.Email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required fields: %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	if interest.People < 1 {
		return nil, fmt.Errorf("%w: people must be at least 1", domain.ErrInvalidInput)
	}

	interest.ID = uuid.NewString()
	interest.EventID = eventID
	interest.CreatedAt = time.Now()
	if err := s.interestRepo.Create(ctx, interest); err != nil {
		return nil, fmt.Errorf("create interest: %w", err)
	}
	return interest, nil
}
