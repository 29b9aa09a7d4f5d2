package postgres

import (
	"time"

	"github.com/riftlabs/fantasy-esports/internal/domain/message"
)

type messageTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	SenderID    string     `db:"sender_user_id"`
	RecipientID string     `db:"recipient_user_id"`
	Body        string     `db:"body"`
	SentAt      time.Time  `db:"sent_at"`
	ReadAt      *time.Time `db:"read_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type messageInsertModel struct {
	PublicID    string    `db:"public_id"`
	SenderID    string    `db:"sender_user_id"`
	RecipientID string    `db:"recipient_user_id"`
	Body        string    `db:"body"`
	SentAt      time.Time `db:"sent_at"`
}

func messageFromRow(row messageTableModel) message.Message {
	item := message.Message{
		ID:          row.PublicID,
		SenderID:    row.SenderID,
		RecipientID: row.RecipientID,
		Body:        row.Body,
		SentAt:      row.SentAt,
	}
	if row.ReadAt != nil {
		item.ReadAt = *row.ReadAt
	}
	return item
}

type friendRequestTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	SenderID    string     `db:"sender_user_id"`
	RecipientID string     `db:"recipient_user_id"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ResolvedAt  *time.Time `db:"resolved_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type friendRequestInsertModel struct {
	PublicID    string `db:"public_id"`
	SenderID    string `db:"sender_user_id"`
	RecipientID string `db:"recipient_user_id"`
	Status      string `db:"status"`
}

func friendRequestFromRow(row friendRequestTableModel) message.FriendRequest {
	item := message.FriendRequest{
		ID:          row.PublicID,
		SenderID:    row.SenderID,
		RecipientID: row.RecipientID,
		Status:      message.RequestStatus(row.Status),
		CreatedAt:   row.CreatedAt,
	}
	if row.ResolvedAt != nil {
		item.ResolvedAt = *row.ResolvedAt
	}
	return item
}
