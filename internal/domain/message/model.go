package message

import (
	"errors"
	"time"
)

const maxBodyLength = 2000

var (
	ErrEmptyBody        = errors.New("message body is empty")
	ErrBodyTooLong      = errors.New("message body is too long")
	ErrSelfMessage      = errors.New("cannot message yourself")
	ErrRequestNotOpen   = errors.New("friend request is no longer open")
	ErrDuplicateRequest = errors.New("friend request already open")
)

// Message is a direct message between two users.
type Message struct {
	ID          string
	SenderID    string
	RecipientID string
	Body        string
	SentAt      time.Time
	ReadAt      time.Time
}

func (m Message) Validate() error {
	if m.SenderID == m.RecipientID {
		return ErrSelfMessage
	}
	if m.Body == "" {
		return ErrEmptyBody
	}
	if len(m.Body) > maxBodyLength {
		return ErrBodyTooLong
	}
	return nil
}

// RequestStatus tracks a friend request's lifecycle.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestDeclined RequestStatus = "declined"
)

// FriendRequest links two users once accepted.
type FriendRequest struct {
	ID          string
	SenderID    string
	RecipientID string
	Status      RequestStatus
	CreatedAt   time.Time
	ResolvedAt  time.Time
}

func (f *FriendRequest) Accept(now time.Time) error {
	if f.Status != RequestPending {
		return ErrRequestNotOpen
	}
	f.Status = RequestAccepted
	f.ResolvedAt = now
	return nil
}

func (f *FriendRequest) Decline(now time.Time) error {
	if f.Status != RequestPending {
		return ErrRequestNotOpen
	}
	f.Status = RequestDeclined
	f.ResolvedAt = now
	return nil
}
