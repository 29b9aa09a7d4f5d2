package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riftlabs/fantasy-esports/internal/domain/message"
)

type MessageRepository struct {
	mu    sync.RWMutex
	items map[string]message.Message
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{items: make(map[string]message.Message)}
}

func (r *MessageRepository) GetByID(_ context.Context, id string) (message.Message, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return message.Message{}, false, nil
	}
	return item, true, nil
}

func (r *MessageRepository) ListConversation(_ context.Context, userA, userB string) ([]message.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]message.Message, 0)
	for _, item := range r.items {
		between := (item.SenderID == userA && item.RecipientID == userB) ||
			(item.SenderID == userB && item.RecipientID == userA)
		if between {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.Before(out[j].SentAt) })
	return out, nil
}

func (r *MessageRepository) ListInbox(_ context.Context, userID string) ([]message.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]message.Message, 0)
	for _, item := range r.items {
		if item.RecipientID == userID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.Before(out[j].SentAt) })
	return out, nil
}

func (r *MessageRepository) Create(_ context.Context, item message.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *MessageRepository) Update(_ context.Context, item message.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

type FriendRequestRepository struct {
	mu    sync.RWMutex
	items map[string]message.FriendRequest
}

func NewFriendRequestRepository() *FriendRequestRepository {
	return &FriendRequestRepository{items: make(map[string]message.FriendRequest)}
}

func (r *FriendRequestRepository) GetByID(_ context.Context, id string) (message.FriendRequest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return message.FriendRequest{}, false, nil
	}
	return item, true, nil
}

func (r *FriendRequestRepository) GetOpenBetween(_ context.Context, senderID, recipientID string) (message.FriendRequest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.Status != message.RequestPending {
			continue
		}
		if item.SenderID == senderID && item.RecipientID == recipientID {
			return item, true, nil
		}
	}
	return message.FriendRequest{}, false, nil
}

func (r *FriendRequestRepository) ListByRecipient(_ context.Context, recipientID string) ([]message.FriendRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]message.FriendRequest, 0)
	for _, item := range r.items {
		if item.RecipientID == recipientID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *FriendRequestRepository) Create(_ context.Context, item message.FriendRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *FriendRequestRepository) Update(_ context.Context, item message.FriendRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}
