// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tdasolutions/sitecms/internal/i18n"
	"github.com/tdasolutions/sitecms/internal/mailer"
	"github.com/tdasolutions/sitecms/internal/middleware"
	"github.com/tdasolutions/sitecms/internal/model"
	"github.com/tdasolutions/sitecms/internal/store"
)

// unspecified is the Arabic placeholder for optional fields left empty.
const unspecified = "غير محدد"

// contactRequest is the public contact-form payload.
type contactRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ProjectType string `json:"projectType"`
	Details     string `json:"details"`
}

// contactResponse is the admin-facing contact row.
type contactResponse struct {
	ID          string    `json:"id"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	ProjectType string    `json:"projectType,omitempty"`
	Details     string    `json:"details"`
	CreatedAt   time.Time `json:"createdAt"`
}

func contactToResponse(c model.Contact) contactResponse {
	return contactResponse{
		ID:          c.ID,
		FullName:    c.FullName,
		Email:       c.Email,
		Phone:       c.Phone.String,
		ProjectType: c.ProjectType.String,
		Details:     c.Details,
		CreatedAt:   c.CreatedAt,
	}
}

// CreateContact handles the public contact form. The contact row and the
// generic submission envelope are both stored; the email notification is
// best-effort and never affects the response.
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	lang := i18n.MatchLanguage(r.Header.Get("Accept-Language"))

	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": i18n.T(lang, "contact.invalid"),
		})
		return
	}

	fieldErrors := map[string]string{}
	if strings.TrimSpace(req.FullName) == "" {
		fieldErrors["fullName"] = "required"
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		fieldErrors["email"] = "a valid email is required"
	}
	if strings.TrimSpace(req.Details) == "" {
		fieldErrors["details"] = "required"
	}
	if len(fieldErrors) > 0 {
		WriteJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": i18n.T(lang, "contact.invalid"),
			"errors":  fieldErrors,
		})
		return
	}

	contact, err := h.queries.CreateContact(r.Context(), store.CreateContactParams{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       nullString(req.Phone),
		ProjectType: nullString(req.ProjectType),
		Details:     req.Details,
	})
	if err != nil {
		slog.Error("storing contact", "error", err)
		WriteJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": i18n.T(lang, "contact.failed"),
		})
		return
	}

	// The envelope row feeds the unified submissions view in the admin.
	payload, _ := json.Marshal(req)
	if _, err := h.queries.CreateFormSubmission(r.Context(), model.FormTypeContact, string(payload)); err != nil {
		slog.Error("storing form submission", "error", err, "contact_id", contact.ID)
	}

	go h.notifyContact(contact.ID, req)

	WriteJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   i18n.T(lang, "contact.received"),
		"contactId": contact.ID,
	})
}

// notifyContact delivers the notification email off the request path.
func (h *Handler) notifyContact(contactID string, req contactRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	phone := req.Phone
	if phone == "" {
		phone = unspecified
	}
	service := req.ProjectType
	if service == "" {
		service = unspecified
	}

	sent := h.mailer.SendContactNotification(ctx, mailer.ContactData{
		Name:    req.FullName,
		Email:   req.Email,
		Phone:   phone,
		Service: service,
		Message: req.Details,
	})
	if sent {
		slog.Info("contact notification sent", "contact_id", contactID)
	} else {
		slog.Error("contact notification not sent", "contact_id", contactID)
	}
}

// ListContacts returns all contact submissions, newest first.
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.queries.ListContacts(r.Context())
	if err != nil {
		slog.Error("listing contacts", "error", err)
		WriteInternalError(w, r)
		return
	}

	responses := make([]contactResponse, 0, len(contacts))
	for _, c := range contacts {
		responses = append(responses, contactToResponse(c))
	}
	WriteJSON(w, http.StatusOK, responses)
}

// submissionResponse is the admin-facing form submission row.
type submissionResponse struct {
	ID        string          `json:"id"`
	FormType  string          `json:"formType"`
	Data      json.RawMessage `json:"data"`
	IsRead    bool            `json:"isRead"`
	CreatedAt time.Time       `json:"createdAt"`
}

func submissionToResponse(s model.FormSubmission) submissionResponse {
	return submissionResponse{
		ID:        s.ID,
		FormType:  s.FormType,
		Data:      json.RawMessage(s.Data),
		IsRead:    s.IsRead,
		CreatedAt: s.CreatedAt,
	}
}

// ListFormSubmissions returns all form submissions, newest first.
func (h *Handler) ListFormSubmissions(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.queries.ListFormSubmissions(r.Context())
	if err != nil {
		slog.Error("listing form submissions", "error", err)
		WriteInternalError(w, r)
		return
	}

	responses := make([]submissionResponse, 0, len(submissions))
	for _, s := range submissions {
		responses = append(responses, submissionToResponse(s))
	}
	WriteJSON(w, http.StatusOK, responses)
}

// markReadRequest optionally overrides the read flag; default is read.
type markReadRequest struct {
	IsRead *bool `json:"isRead"`
}

// MarkFormSubmissionRead flips the read flag on a submission.
func (h *Handler) MarkFormSubmissionRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	isRead := true
	var req markReadRequest
	if err := decodeJSON(w, r, &req); err == nil && req.IsRead != nil {
		isRead = *req.IsRead
	}

	if err := h.queries.MarkFormSubmissionRead(r.Context(), id, isRead); err != nil {
		if isNotFound(err) {
			WriteNotFound(w, r)
			return
		}
		slog.Error("marking submission read", "error", err, "id", id)
		WriteInternalError(w, r)
		return
	}

	submission, err := h.queries.GetFormSubmissionByID(r.Context(), id)
	if err != nil {
		slog.Error("reloading submission", "error", err, "id", id)
		WriteInternalError(w, r)
		return
	}

	h.audit.Record(r, auditEntry(middleware.GetUserID(r), model.AuditActionUpdate,
		"form_submission", id, nil, map[string]bool{"isRead": isRead}))

	WriteJSON(w, http.StatusOK, submissionToResponse(submission))
}
