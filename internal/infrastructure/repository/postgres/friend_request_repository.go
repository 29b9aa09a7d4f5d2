package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riftlabs/fantasy-esports/internal/domain/message"
	qb "github.com/riftlabs/fantasy-esports/internal/platform/querybuilder"
)

type FriendRequestRepository struct {
	db *sqlx.DB
}

func NewFriendRequestRepository(db *sqlx.DB) *FriendRequestRepository {
	return &FriendRequestRepository{db: db}
}

var _ message.FriendRequestRepository = (*FriendRequestRepository)(nil)

func (r *FriendRequestRepository) GetByID(ctx context.Context, id string) (message.FriendRequest, bool, error) {
	query, args, err := friendRequestBaseSelectBuilder().
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return message.FriendRequest{}, false, fmt.Errorf("build get friend request query: %w", err)
	}

	var row friendRequestTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return message.FriendRequest{}, false, nil
		}
		return message.FriendRequest{}, false, fmt.Errorf("get friend request: %w", err)
	}

	return friendRequestFromRow(row), true, nil
}

func (r *FriendRequestRepository) GetOpenBetween(ctx context.Context, senderID, recipientID string) (message.FriendRequest, bool, error) {
	query, args, err := friendRequestBaseSelectBuilder().
		Where(
			qb.Expr("((sender_user_id = ? AND recipient_user_id = ?) OR (sender_user_id = ? AND recipient_user_id = ?))",
				senderID, recipientID, recipientID, senderID),
			qb.EqLiteral("status", string(message.RequestPending)),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return message.FriendRequest{}, false, fmt.Errorf("build get open friend request query: %w", err)
	}

	var row friendRequestTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return message.FriendRequest{}, false, nil
		}
		return message.FriendRequest{}, false, fmt.Errorf("get open friend request: %w", err)
	}

	return friendRequestFromRow(row), true, nil
}

func (r *FriendRequestRepository) ListByRecipient(ctx context.Context, recipientID string) ([]message.FriendRequest, error) {
	query, args, err := friendRequestBaseSelectBuilder().
		Where(
			qb.Eq("recipient_user_id", recipientID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list friend requests query: %w", err)
	}

	var rows []friendRequestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list friend requests: %w", err)
	}

	out := make([]message.FriendRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, friendRequestFromRow(row))
	}
	return out, nil
}

func (r *FriendRequestRepository) Create(ctx context.Context, item message.FriendRequest) error {
	insertModel := friendRequestInsertModel{
		PublicID:    item.ID,
		SenderID:    item.SenderID,
		RecipientID: item.RecipientID,
		Status:      string(item.Status),
	}
	query, args, err := qb.InsertModel("friend_requests", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create friend request query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create friend request: %w", err)
	}

	return nil
}

func (r *FriendRequestRepository) Update(ctx context.Context, item message.FriendRequest) error {
	builder := qb.Update("friend_requests").
		Set("status", string(item.Status))
	if !item.ResolvedAt.IsZero() {
		builder = builder.Set("resolved_at", item.ResolvedAt)
	}

	query, args, err := builder.
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update friend request query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update friend request: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update friend request: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update friend request: not found")
	}

	return nil
}

func friendRequestBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("friend_requests")
}
