package message

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Message, bool, error)
	ListConversation(ctx context.Context, userA, userB string) ([]Message, error)
	ListInbox(ctx context.Context, userID string) ([]Message, error)
	Create(ctx context.Context, item Message) error
	Update(ctx context.Context, item Message) error
}

type FriendRequestRepository interface {
	GetByID(ctx context.Context, id string) (FriendRequest, bool, error)
	GetOpenBetween(ctx context.Context, senderID, recipientID string) (FriendRequest, bool, error)
	ListByRecipient(ctx context.Context, recipientID string) ([]FriendRequest, error)
	Create(ctx context.Context, item FriendRequest) error
	Update(ctx context.Context, item FriendRequest) error
}
