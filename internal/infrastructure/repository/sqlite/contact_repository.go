package sqlite

import (
	"context"
	"fmt"

	"github.com/mrops-br/entity-storefront/internal/domain"
)

// ContactRepository persists contact messages and newsletter subscriptions
type ContactRepository struct {
	db *DB
}

func NewContactRepository(db *DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) SaveMessage(ctx context.Context, msg *domain.ContactMessage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_messages (id, name, email, phone, subject, message, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.Name, msg.Email, msg.Phone, msg.Subject, msg.Message,
		string(msg.Status), msg.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting contact message: %w", err)
	}
	return nil
}

// Subscribe adds the email to the newsletter. An existing subscription
// returns domain.ErrAlreadySubscribed.
func (r *ContactRepository) Subscribe(ctx context.Context, sub *domain.Subscription) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO newsletter_subscriptions (email, active, subscribed_at) VALUES (?, ?, ?)
		 ON CONFLICT(email) DO NOTHING`,
		sub.Email, sub.Active, sub.SubscribedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting subscription: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking subscription insert: %w", err)
	}
	if n == 0 {
		return domain.ErrAlreadySubscribed
	}
	return nil
}
