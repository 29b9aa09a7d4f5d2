package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riftlabs/fantasy-esports/internal/domain/message"
	qb "github.com/riftlabs/fantasy-esports/internal/platform/querybuilder"
)

type MessageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

var _ message.Repository = (*MessageRepository)(nil)

func (r *MessageRepository) GetByID(ctx context.Context, id string) (message.Message, bool, error) {
	query, args, err := messageBaseSelectBuilder().
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return message.Message{}, false, fmt.Errorf("build get message query: %w", err)
	}

	var row messageTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return message.Message{}, false, nil
		}
		return message.Message{}, false, fmt.Errorf("get message: %w", err)
	}

	return messageFromRow(row), true, nil
}

func (r *MessageRepository) ListConversation(ctx context.Context, userA, userB string) ([]message.Message, error) {
	query, args, err := messageBaseSelectBuilder().
		Where(
			qb.Expr("((sender_user_id = ? AND recipient_user_id = ?) OR (sender_user_id = ? AND recipient_user_id = ?))",
				userA, userB, userB, userA),
			qb.IsNull("deleted_at"),
		).
		OrderBy("sent_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list conversation query: %w", err)
	}

	return r.selectMessages(ctx, query, args)
}

func (r *MessageRepository) ListInbox(ctx context.Context, userID string) ([]message.Message, error) {
	query, args, err := messageBaseSelectBuilder().
		Where(
			qb.Eq("recipient_user_id", userID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("sent_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list inbox query: %w", err)
	}

	return r.selectMessages(ctx, query, args)
}

func (r *MessageRepository) selectMessages(ctx context.Context, query string, args []any) ([]message.Message, error) {
	var rows []messageTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	out := make([]message.Message, 0, len(rows))
	for _, row := range rows {
		out = append(out, messageFromRow(row))
	}
	return out, nil
}

func (r *MessageRepository) Create(ctx context.Context, item message.Message) error {
	insertModel := messageInsertModel{
		PublicID:    item.ID,
		SenderID:    item.SenderID,
		RecipientID: item.RecipientID,
		Body:        item.Body,
		SentAt:      item.SentAt,
	}
	query, args, err := qb.InsertModel("messages", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create message query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create message: %w", err)
	}

	return nil
}

func (r *MessageRepository) Update(ctx context.Context, item message.Message) error {
	builder := qb.Update("messages")
	if item.ReadAt.IsZero() {
		builder = builder.SetExpr("read_at", "NULL")
	} else {
		builder = builder.Set("read_at", item.ReadAt)
	}

	query, args, err := builder.
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update message query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update message: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update message: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update message: not found")
	}

	return nil
}

func messageBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("messages")
}
