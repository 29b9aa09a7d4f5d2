package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/riftlabs/fantasy-esports/internal/domain/message"
	"github.com/riftlabs/fantasy-esports/internal/domain/user"
	idgen "github.com/riftlabs/fantasy-esports/internal/platform/id"
)

// SendMessageInput is the incoming payload for a direct message.
type SendMessageInput struct {
	SenderID    string
	RecipientID string
	Body        string
}

type MessageService struct {
	messageRepo message.Repository
	requestRepo message.FriendRequestRepository
	userRepo    user.Repository
	idGen       idgen.Generator
	logger      *slog.Logger
	now         func() time.Time
}

func NewMessageService(
	messageRepo message.Repository,
	requestRepo message.FriendRequestRepository,
	userRepo user.Repository,
	idGen idgen.Generator,
	logger *slog.Logger,
) *MessageService {
	if logger == nil {
		logger = slog.Default()
	}

	return &MessageService{
		messageRepo: messageRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *MessageService) Send(ctx context.Context, input SendMessageInput) (message.Message, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MessageService.Send")
	defer span.End()

	input.SenderID = strings.TrimSpace(input.SenderID)
	input.RecipientID = strings.TrimSpace(input.RecipientID)
	input.Body = strings.TrimSpace(input.Body)

	if input.RecipientID == "" {
		return message.Message{}, fmt.Errorf("%w: recipient id is required", ErrInvalidInput)
	}
	if err := s.ensureUser(ctx, input.RecipientID); err != nil {
		return message.Message{}, err
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return message.Message{}, fmt.Errorf("generate message id: %w", err)
	}

	item := message.Message{
		ID:          id,
		SenderID:    input.SenderID,
		RecipientID: input.RecipientID,
		Body:        input.Body,
		SentAt:      s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return message.Message{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.messageRepo.Create(ctx, item); err != nil {
		return message.Message{}, fmt.Errorf("create message: %w", err)
	}

	s.logger.InfoContext(ctx, "message sent",
		slog.String("messageID", item.ID),
		slog.String("recipientID", item.RecipientID),
	)
	return item, nil
}

// ListConversation returns both directions of a two-user thread, oldest
// first.
func (s *MessageService) ListConversation(ctx context.Context, actorID, otherID string) ([]message.Message, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MessageService.ListConversation")
	defer span.End()

	otherID = strings.TrimSpace(otherID)
	if otherID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.messageRepo.ListConversation(ctx, strings.TrimSpace(actorID), otherID)
	if err != nil {
		return nil, fmt.Errorf("list conversation: %w", err)
	}
	return items, nil
}

func (s *MessageService) ListInbox(ctx context.Context, actorID string) ([]message.Message, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MessageService.ListInbox")
	defer span.End()

	items, err := s.messageRepo.ListInbox(ctx, strings.TrimSpace(actorID))
	if err != nil {
		return nil, fmt.Errorf("list inbox: %w", err)
	}
	return items, nil
}

// MarkRead stamps a received message as read. Recipient only.
func (s *MessageService) MarkRead(ctx context.Context, messageID, actorID string) (message.Message, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MessageService.MarkRead")
	defer span.End()

	messageID = strings.TrimSpace(messageID)
	if messageID == "" {
		return message.Message{}, fmt.Errorf("%w: message id is required", ErrInvalidInput)
	}

	item, exists, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return message.Message{}, fmt.Errorf("get message: %w", err)
	}
	if !exists {
		return message.Message{}, fmt.Errorf("%w: message %s", ErrNotFound, messageID)
	}
	if item.RecipientID != strings.TrimSpace(actorID) {
		return message.Message{}, fmt.Errorf("%w: only the recipient can mark a message read", ErrForbidden)
	}

	if item.ReadAt.IsZero() {
		item.ReadAt = s.now().UTC()
		if err := s.messageRepo.Update(ctx, item); err != nil {
			return message.Message{}, fmt.Errorf("update message: %w", err)
		}
	}
	return item, nil
}

func (s *MessageService) SendFriendRequest(ctx context.Context, senderID, recipientID string) (message.FriendRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MessageService.SendFriendRequest")
	defer span.End()

	senderID = strings.TrimSpace(senderID)
	recipientID = strings.TrimSpace(recipientID)

	if recipientID == "" {
		return message.FriendRequest{}, fmt.Errorf("%w: recipient id is required", ErrInvalidInput)
	}
	if senderID == recipientID {
		return message.FriendRequest{}, fmt.Errorf("%w: %s", ErrInvalidInput, message.ErrSelfMessage)
	}
	if err := s.ensureUser(ctx, recipientID); err != nil {
		return message.FriendRequest{}, err
	}

	_, open, err := s.requestRepo.GetOpenBetween(ctx, senderID, recipientID)
	if err != nil {
		return message.FriendRequest{}, fmt.Errorf("get open friend request: %w", err)
	}
	if open {
		return message.FriendRequest{}, fmt.Errorf("%w: %s", ErrInvalidInput, message.ErrDuplicateRequest)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return message.FriendRequest{}, fmt.Errorf("generate friend request id: %w", err)
	}

	item := message.FriendRequest{
		ID:          id,
		SenderID:    senderID,
		RecipientID: recipientID,
		Status:      message.RequestPending,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.requestRepo.Create(ctx, item); err != nil {
		return message.FriendRequest{}, fmt.Errorf("create friend request: %w", err)
	}

	s.logger.InfoContext(ctx, "friend request sent",
		slog.String("requestID", item.ID),
		slog.String("recipientID", item.RecipientID),
	)
	return item, nil
}

// RespondFriendRequest accepts or declines a pending request. Recipient
// only.
func (s *MessageService) RespondFriendRequest(ctx context.Context, requestID, actorID string, accept bool) (message.FriendRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MessageService.RespondFriendRequest")
	defer span.End()

	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return message.FriendRequest{}, fmt.Errorf("%w: request id is required", ErrInvalidInput)
	}

	item, exists, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return message.FriendRequest{}, fmt.Errorf("get friend request: %w", err)
	}
	if !exists {
		return message.FriendRequest{}, fmt.Errorf("%w: friend request %s", ErrNotFound, requestID)
	}
	if item.RecipientID != strings.TrimSpace(actorID) {
		return message.FriendRequest{}, fmt.Errorf("%w: only the recipient can respond", ErrForbidden)
	}

	now := s.now().UTC()
	if accept {
		err = item.Accept(now)
	} else {
		err = item.Decline(now)
	}
	if err != nil {
		return message.FriendRequest{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.requestRepo.Update(ctx, item); err != nil {
		return message.FriendRequest{}, fmt.Errorf("update friend request: %w", err)
	}
	return item, nil
}

func (s *MessageService) ListFriendRequests(ctx context.Context, actorID string) ([]message.FriendRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MessageService.ListFriendRequests")
	defer span.End()

	items, err := s.requestRepo.ListByRecipient(ctx, strings.TrimSpace(actorID))
	if err != nil {
		return nil, fmt.Errorf("list friend requests: %w", err)
	}
	return items, nil
}

func (s *MessageService) ensureUser(ctx context.Context, userID string) error {
	_, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	return nil
}
