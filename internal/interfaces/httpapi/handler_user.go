package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riftlabs/fantasy-esports/internal/usecase"
)

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterUser")
	defer span.End()

	var req registerUserRequest
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

	profile, err := h.userService.Register(ctx, usecase.RegisterUserInput{
		Email:       req.Email,
		Username:    req.Username,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "register user failed", "email", req.Email, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, userToDTO(ctx, profile))
}

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyProfile")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	profile, err := h.userService.GetProfile(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get my profile failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(ctx, profile))
}
