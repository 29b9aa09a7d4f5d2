package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riftlabs/fantasy-esports/internal/usecase"
)

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SendMessage")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req sendMessageRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.messageService.Send(ctx, usecase.SendMessageInput{
		SenderID:    principal.UserID,
		RecipientID: req.RecipientID,
		Body:        req.Body,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "send message failed", "user_id", principal.UserID, "recipient_id", req.RecipientID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, messageToDTO(ctx, item))
}

func (h *Handler) ListInbox(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListInbox")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	messages, err := h.messageService.ListInbox(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list inbox failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]messageDTO, 0, len(messages))
	for _, item := range messages {
		items = append(items, messageToDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListConversation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListConversation")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	otherID := strings.TrimSpace(r.PathValue("userID"))

	messages, err := h.messageService.ListConversation(ctx, principal.UserID, otherID)
	if err != nil {
		h.logger.WarnContext(ctx, "list conversation failed", "user_id", principal.UserID, "other_id", otherID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]messageDTO, 0, len(messages))
	for _, item := range messages {
		items = append(items, messageToDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MarkMessageRead")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	messageID := strings.TrimSpace(r.PathValue("messageID"))

	item, err := h.messageService.MarkRead(ctx, messageID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "mark message read failed", "user_id", principal.UserID, "message_id", messageID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, messageToDTO(ctx, item))
}

func (h *Handler) SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SendFriendRequest")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req sendFriendRequestRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.messageService.SendFriendRequest(ctx, principal.UserID, req.RecipientID)
	if err != nil {
		h.logger.WarnContext(ctx, "send friend request failed", "user_id", principal.UserID, "recipient_id", req.RecipientID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, friendRequestToDTO(ctx, item))
}

func (h *Handler) ListFriendRequests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFriendRequests")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	requests, err := h.messageService.ListFriendRequests(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list friend requests failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]friendRequestDTO, 0, len(requests))
	for _, item := range requests {
		items = append(items, friendRequestToDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AcceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AcceptFriendRequest")
	defer span.End()

	h.respondFriendRequest(ctx, w, r, true)
}

func (h *Handler) DeclineFriendRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeclineFriendRequest")
	defer span.End()

	h.respondFriendRequest(ctx, w, r, false)
}

func (h *Handler) respondFriendRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, accept bool) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	requestID := strings.TrimSpace(r.PathValue("requestID"))

	item, err := h.messageService.RespondFriendRequest(ctx, requestID, principal.UserID, accept)
	if err != nil {
		h.logger.WarnContext(ctx, "respond friend request failed", "user_id", principal.UserID, "request_id", requestID, "accept", accept, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, friendRequestToDTO(ctx, item))
}
