// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tdasolutions/sitecms/internal/auth"
	"github.com/tdasolutions/sitecms/internal/middleware"
	"github.com/tdasolutions/sitecms/internal/model"
	"github.com/tdasolutions/sitecms/internal/store"
)

// userRequest is the create/update payload for a user. Password is optional
// on update; when empty the existing hash is kept.
type userRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	IsActive  *bool  `json:"isActive"`
}

// UserResponse is the API shape of a user. The password hash never leaves
// the server.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func userToResponse(u model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName.String,
		LastName:  u.LastName.String,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ListUsers returns all users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.ListUsers(r.Context())
	if err != nil {
		slog.Error("listing users", "error", err)
		WriteInternalError(w, r)
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, userToResponse(u))
	}
	WriteJSON(w, http.StatusOK, responses)
}

// CreateUser creates a user account.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, r, "error.validation", nil)
		return
	}

	fieldErrors := map[string]string{}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		fieldErrors["email"] = "a valid email is required"
	}
	if len(req.Password) < 8 {
		fieldErrors["password"] = "must be at least 8 characters"
	}
	if !model.IsValidRole(req.Role) {
		fieldErrors["role"] = "must be one of: " + strings.Join(model.ValidRoles(), ", ")
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, r, fieldErrors)
		return
	}

	if _, err := h.queries.GetUserByEmail(r.Context(), req.Email); err == nil {
		WriteValidationError(w, r, map[string]string{"email": "already in use"})
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("hashing password", "error", err)
		WriteInternalError(w, r)
		return
	}

	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    nullString(req.FirstName),
		LastName:     nullString(req.LastName),
		Role:         req.Role,
	})
	if err != nil {
		slog.Error("creating user", "error", err)
		WriteInternalError(w, r)
		return
	}

	h.audit.Record(r, auditEntry(middleware.GetUserID(r), model.AuditActionCreate, model.AuditEntityUser,
		user.ID, nil, userToResponse(user)))

	WriteJSON(w, http.StatusCreated, userToResponse(user))
}

// UpdateUser applies a full update to a user. Accounts are deactivated via
// isActive; there is no hard delete.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	old, err := h.queries.GetUserByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			WriteNotFound(w, r)
			return
		}
		slog.Error("loading user", "error", err)
		WriteInternalError(w, r)
		return
	}

	var req userRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, r, "error.validation", nil)
		return
	}

	fieldErrors := map[string]string{}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		fieldErrors["email"] = "a valid email is required"
	}
	if req.Password != "" && len(req.Password) < 8 {
		fieldErrors["password"] = "must be at least 8 characters"
	}
	if !model.IsValidRole(req.Role) {
		fieldErrors["role"] = "must be one of: " + strings.Join(model.ValidRoles(), ", ")
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, r, fieldErrors)
		return
	}

	isActive := old.IsActive
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	// An admin cannot lock themselves out mid-session.
	actorID := middleware.GetUserID(r)
	if id == actorID && (!isActive || req.Role != model.RoleAdmin) {
		WriteValidationError(w, r, map[string]string{"id": "cannot deactivate or demote your own account"})
		return
	}

	passwordHash := ""
	if req.Password != "" {
		passwordHash, err = auth.HashPassword(req.Password)
		if err != nil {
			slog.Error("hashing password", "error", err)
			WriteInternalError(w, r)
			return
		}
	}

	user, err := h.queries.UpdateUser(r.Context(), store.UpdateUserParams{
		ID:           id,
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    nullString(req.FirstName),
		LastName:     nullString(req.LastName),
		Role:         req.Role,
		IsActive:     isActive,
	})
	if err != nil {
		slog.Error("updating user", "error", err)
		WriteInternalError(w, r)
		return
	}

	h.audit.Record(r, auditEntry(actorID, model.AuditActionUpdate, model.AuditEntityUser,
		user.ID, userToResponse(old), userToResponse(user)))

	WriteJSON(w, http.StatusOK, userToResponse(user))
}

// DeactivateUser soft-deletes a user by clearing the active flag. The row
// and its audit history stay intact.
func (h *Handler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	actorID := middleware.GetUserID(r)
	if id == actorID {
		WriteValidationError(w, r, map[string]string{"id": "cannot deactivate your own account"})
		return
	}

	old, err := h.queries.GetUserByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			WriteNotFound(w, r)
			return
		}
		slog.Error("loading user", "error", err)
		WriteInternalError(w, r)
		return
	}

	user, err := h.queries.UpdateUser(r.Context(), store.UpdateUserParams{
		ID:        id,
		Email:     old.Email,
		FirstName: old.FirstName,
		LastName:  old.LastName,
		Role:      old.Role,
		IsActive:  false,
	})
	if err != nil {
		slog.Error("deactivating user", "error", err)
		WriteInternalError(w, r)
		return
	}

	h.audit.Record(r, auditEntry(actorID, model.AuditActionDelete, model.AuditEntityUser,
		id, userToResponse(old), userToResponse(user)))

	WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}
