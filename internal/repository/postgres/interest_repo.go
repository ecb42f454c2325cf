package postgres

import (
	"context"
	"database/sql"

	"communitypulse/internal/domain"
)

type interestRepository struct {
	DB *sql.DB
}

func NewInterestRepository(db *sql.DB) domain.InterestRepository {
	return &interestRepository{
		DB: db,
	}
}

func (r *interestRepository) Create(ctx context.Context, i *domain.Interest) error {
	query := `
		INSERT INTO interests (id, event_id, name, email, phone, people, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	var phone any
	if i.Phone != "" {
		phone = i.Phone
	}
	_, err := r.DB.ExecContext(ctx, query, i.ID, i.EventID, i.Name, i.Email, phone, i.People, i.CreatedAt)
	return err
}

func (r *interestRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Interest, error) {
	// position is a serial column, so ordering by it preserves submission order
	// even when two interests share a created_at timestamp.
	query := `
		SELECT id, event_id, name, email, phone, people, created_at
		FROM interests
		WHERE event_id = $1
		ORDER BY position ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	interests := make([]*domain.Interest, 0)
	for rows.Next() {
		i := &domain.Interest{}
		var phoneNull sql.NullString
		if err := rows.Scan(&i.ID, &i.EventID, &i.Name, &i.Email, &phoneNull, &i.People, &i.CreatedAt); err != nil {
			return nil, err
		}
		if phoneNull.Valid {
			i.Phone = phoneNull.String
		}
		interests = append(interests, i)
	}
	return interests, rows.Err()
}
