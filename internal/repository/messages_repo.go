package repository

import (
	"context"
	"database/sql"

	"github.com/bistrohq/bistro-backend/internal/domain"
)

// MessagesRepository persists contact form submissions.
type MessagesRepository struct {
	db *sql.DB
}

// NewMessagesRepository creates a new contact messages repository.
func NewMessagesRepository(db *sql.DB) *MessagesRepository {
	return &MessagesRepository{db: db}
}

// Insert stores a contact message.
func (r *MessagesRepository) Insert(ctx context.Context, msg *domain.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.Name, msg.Email, msg.Message, msg.CreatedAt,
	)
	return err
}
