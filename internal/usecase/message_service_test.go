package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/riftlabs/fantasy-esports/internal/domain/message"
	"github.com/riftlabs/fantasy-esports/internal/domain/user"
)

func messageFixtures(t *testing.T) (*fixtures, *MessageService) {
	t.Helper()

	f := newFixtures()
	now := time.Now().UTC()
	for _, id := range []string{"alice", "bob"} {
		profile := user.Profile{ID: id, Email: id + "@example.com", Username: id + "user", DisplayName: id, CreatedAt: now, UpdatedAt: now}
		if err := f.userRepo.Create(context.Background(), profile); err != nil {
			t.Fatalf("seed user %s: %v", id, err)
		}
	}

	service := NewMessageService(f.messageRepo, f.requestRepo, f.userRepo, &seqIDGenerator{prefix: "m"}, f.logger)
	return f, service
}

func TestMessageService_SendAndConversation(t *testing.T) {
	t.Parallel()

	_, service := messageFixtures(t)

	sent, err := service.Send(context.Background(), SendMessageInput{
		SenderID: "alice", RecipientID: "bob", Body: "gl hf this week",
	})
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if sent.SentAt.IsZero() {
		t.Fatalf("sent message missing timestamp")
	}

	if _, err := service.Send(context.Background(), SendMessageInput{
		SenderID: "bob", RecipientID: "alice", Body: "you too",
	}); err != nil {
		t.Fatalf("Send error: %v", err)
	}

	thread, err := service.ListConversation(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("ListConversation error: %v", err)
	}
	if len(thread) != 2 {
		t.Fatalf("unexpected thread length: got=%d want=2", len(thread))
	}
	if thread[0].Body != "gl hf this week" {
		t.Fatalf("thread not oldest-first: %+v", thread)
	}

	inbox, err := service.ListInbox(context.Background(), "bob")
	if err != nil {
		t.Fatalf("ListInbox error: %v", err)
	}
	if len(inbox) != 1 || inbox[0].SenderID != "alice" {
		t.Fatalf("unexpected inbox: %+v", inbox)
	}
}

func TestMessageService_SendValidation(t *testing.T) {
	t.Parallel()

	_, service := messageFixtures(t)

	tests := []struct {
		name      string
		input     SendMessageInput
		targetErr error
	}{
		{name: "missing recipient", input: SendMessageInput{SenderID: "alice", Body: "hi"}, targetErr: ErrInvalidInput},
		{name: "unknown recipient", input: SendMessageInput{SenderID: "alice", RecipientID: "ghost", Body: "hi"}, targetErr: ErrNotFound},
		{name: "self message", input: SendMessageInput{SenderID: "alice", RecipientID: "alice", Body: "hi"}, targetErr: ErrInvalidInput},
		{name: "empty body", input: SendMessageInput{SenderID: "alice", RecipientID: "bob", Body: "   "}, targetErr: ErrInvalidInput},
		{name: "oversized body", input: SendMessageInput{SenderID: "alice", RecipientID: "bob", Body: strings.Repeat("a", 2001)}, targetErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.Send(context.Background(), tt.input); !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected %v, got %v", tt.targetErr, err)
			}
		})
	}
}

func TestMessageService_MarkRead(t *testing.T) {
	t.Parallel()

	_, service := messageFixtures(t)

	sent, err := service.Send(context.Background(), SendMessageInput{
		SenderID: "alice", RecipientID: "bob", Body: "trade offer incoming",
	})
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}

	if _, err := service.MarkRead(context.Background(), sent.ID, "alice"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for sender, got %v", err)
	}

	read, err := service.MarkRead(context.Background(), sent.ID, "bob")
	if err != nil {
		t.Fatalf("MarkRead error: %v", err)
	}
	if read.ReadAt.IsZero() {
		t.Fatalf("message not stamped read")
	}

	again, err := service.MarkRead(context.Background(), sent.ID, "bob")
	if err != nil {
		t.Fatalf("MarkRead error: %v", err)
	}
	if !again.ReadAt.Equal(read.ReadAt) {
		t.Fatalf("read timestamp changed on second mark")
	}
}

func TestMessageService_FriendRequests(t *testing.T) {
	t.Parallel()

	_, service := messageFixtures(t)

	request, err := service.SendFriendRequest(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("SendFriendRequest error: %v", err)
	}
	if request.Status != message.RequestPending {
		t.Fatalf("unexpected status: %s", request.Status)
	}

	if _, err := service.SendFriendRequest(context.Background(), "alice", "bob"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate request, got %v", err)
	}
	if _, err := service.SendFriendRequest(context.Background(), "alice", "alice"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for self request, got %v", err)
	}
	if _, err := service.SendFriendRequest(context.Background(), "alice", "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	pending, err := service.ListFriendRequests(context.Background(), "bob")
	if err != nil {
		t.Fatalf("ListFriendRequests error: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("unexpected pending count: got=%d want=1", len(pending))
	}

	if _, err := service.RespondFriendRequest(context.Background(), request.ID, "alice", true); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for sender response, got %v", err)
	}

	accepted, err := service.RespondFriendRequest(context.Background(), request.ID, "bob", true)
	if err != nil {
		t.Fatalf("RespondFriendRequest error: %v", err)
	}
	if accepted.Status != message.RequestAccepted {
		t.Fatalf("unexpected status: %s", accepted.Status)
	}

	if _, err := service.RespondFriendRequest(context.Background(), request.ID, "bob", false); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for resolved request, got %v", err)
	}

	// A resolved request no longer blocks a new one.
	if _, err := service.SendFriendRequest(context.Background(), "alice", "bob"); err != nil {
		t.Fatalf("SendFriendRequest error: %v", err)
	}
}
