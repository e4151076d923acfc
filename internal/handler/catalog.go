// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tdasolutions/sitecms/internal/middleware"
	"github.com/tdasolutions/sitecms/internal/model"
	"github.com/tdasolutions/sitecms/internal/store"
)

// serviceRequest is the create/update payload for a service.
type serviceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	SortOrder   int64  `json:"sortOrder"`
	IsActive    *bool  `json:"isActive"`
	IsFeatured  bool   `json:"isFeatured"`
}

// ServiceResponse is the API shape of a service.
type ServiceResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon,omitempty"`
	SortOrder   int64     `json:"sortOrder"`
	IsActive    bool      `json:"isActive"`
	IsFeatured  bool      `json:"isFeatured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func serviceToResponse(s model.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Icon:        s.Icon.String,
		SortOrder:   s.SortOrder,
		IsActive:    s.IsActive,
		IsFeatured:  s.IsFeatured,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (req *serviceRequest) validate() map[string]string {
	fieldErrors := map[string]string{}
	if strings.TrimSpace(req.Title) == "" {
		fieldErrors["title"] = "required"
	}
	if strings.TrimSpace(req.Description) == "" {
		fieldErrors["description"] = "required"
	}
	return fieldErrors
}

func (req *serviceRequest) toParams() store.ServiceParams {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return store.ServiceParams{
		Title:       req.Title,
		Description: req.Description,
		Icon:        nullString(req.Icon),
		SortOrder:   req.SortOrder,
		IsActive:    isActive,
		IsFeatured:  req.IsFeatured,
	}
}

// ListServices returns all services for the admin view.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	h.listServices(w, r, false)
}

// ListActiveServices returns active services for the public site.
func (h *Handler) ListActiveServices(w http.ResponseWriter, r *http.Request) {
	h.listServices(w, r, true)
}

func (h *Handler) listServices(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	services, err := h.queries.ListServices(r.Context(), activeOnly)
	if err != nil {
		slog.Error("listing services", "error", err)
		WriteInternalError(w, r)
		return
	}
	responses := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		responses = append(responses, serviceToResponse(s))
	}
	WriteJSON(w, http.StatusOK, responses)
}

// CreateService creates a service.
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req serviceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, r, "error.validation", nil)
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		WriteValidationError(w, r, fieldErrors)
		return
	}

	service, err := h.queries.CreateService(r.Context(), req.toParams())
	if err != nil {
		slog.Error("creating service", "error", err)
		WriteInternalError(w, r)
		return
	}

	h.audit.Record(r, auditEntry(middleware.GetUserID(r), model.AuditActionCreate, model.AuditEntityService,
		service.ID, nil, serviceToResponse(service)))

	WriteJSON(w, http.StatusCreated, serviceToResponse(service))
}

// UpdateService applies a full update to a service.
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	old, err := h.queries.GetServiceByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			WriteNotFound(w, r)
			return
		}
		slog.Error("loading service", "error", err)
		WriteInternalError(w, r)
		return
	}

	var req serviceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, r, "error.validation", nil)
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		WriteValidationError(w, r, fieldErrors)
		return
	}

	service, err := h.queries.UpdateService(r.Context(), id, req.toParams())
	if err != nil {
		slog.Error("updating service", "error", err)
		WriteInternalError(w, r)
		return
	}

	h.audit.Record(r, auditEntry(middleware.GetUserID(r), model.AuditActionUpdate, model.AuditEntityService,
		service.ID, serviceToResponse(old), serviceToResponse(service)))

	WriteJSON(w, http.StatusOK, serviceToResponse(service))
}

// projectRequest is the create/update payload for a project.
type projectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	ProjectURL  string `json:"projectUrl"`
	SortOrder   int64  `json:"sortOrder"`
	IsActive    *bool  `json:"isActive"`
	IsFeatured  bool   `json:"isFeatured"`
}

// ProjectResponse is the API shape of a project.
type ProjectResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	ProjectURL  string    `json:"projectUrl,omitempty"`
	SortOrder   int64     `json:"sortOrder"`
	IsActive    bool      `json:"isActive"`
	IsFeatured  bool      `json:"isFeatured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func projectToResponse(p model.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL.String,
		ProjectURL:  p.ProjectURL.String,
		SortOrder:   p.SortOrder,
		IsActive:    p.IsActive,
		IsFeatured:  p.IsFeatured,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (req *projectRequest) validate() map[string]string {
	fieldErrors := map[string]string{}
	if strings.TrimSpace(req.Title) == "" {
		fieldErrors["title"] = "required"
	}
	if strings.TrimSpace(req.Description) == "" {
		fieldErrors["description"] = "required"
	}
	return fieldErrors
}

func (req *projectRequest) toParams() store.ProjectParams {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return store.ProjectParams{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    nullString(req.ImageURL),
		ProjectURL:  nullString(req.ProjectURL),
		SortOrder:   req.SortOrder,
		IsActive:    isActive,
		IsFeatured:  req.IsFeatured,
	}
}

// ListProjects returns all projects for the admin view.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	h.listProjects(w, r, false)
}

// ListActiveProjects returns active projects for the public site.
func (h *Handler) ListActiveProjects(w http.ResponseWriter, r *http.Request) {
	h.listProjects(w, r, true)
}

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	projects, err := h.queries.ListProjects(r.Context(), activeOnly)
	if err != nil {
		slog.Error("listing projects", "error", err)
		WriteInternalError(w, r)
		return
	}
	responses := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, projectToResponse(p))
	}
	WriteJSON(w, http.StatusOK, responses)
}

// CreateProject creates a project.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, r, "error.validation", nil)
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		WriteValidationError(w, r, fieldErrors)
		return
	}

	project, err := h.queries.CreateProject(r.Context(), req.toParams())
	if err != nil {
		slog.Error("creating project", "error", err)
		WriteInternalError(w, r)
		return
	}

	h.audit.Record(r, auditEntry(middleware.GetUserID(r), model.AuditActionCreate, model.AuditEntityProject,
		project.ID, nil, projectToResponse(project)))

	WriteJSON(w, http.StatusCreated, projectToResponse(project))
}

// UpdateProject applies a full update to a project.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	old, err := h.queries.GetProjectByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			WriteNotFound(w, r)
			return
		}
		slog.Error("loading project", "error", err)
		WriteInternalError(w, r)
		return
	}

	var req projectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, r, "error.validation", nil)
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		WriteValidationError(w, r, fieldErrors)
		return
	}

	project, err := h.queries.UpdateProject(r.Context(), id, req.toParams())
	if err != nil {
		slog.Error("updating project", "error", err)
		WriteInternalError(w, r)
		return
	}

	h.audit.Record(r, auditEntry(middleware.GetUserID(r), model.AuditActionUpdate, model.AuditEntityProject,
		project.ID, projectToResponse(old), projectToResponse(project)))

	WriteJSON(w, http.StatusOK, projectToResponse(project))
}

// teamMemberRequest is the create/update payload for a team member.
type teamMemberRequest struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Bio       string `json:"bio"`
	PhotoURL  string `json:"photoUrl"`
	SortOrder int64  `json:"sortOrder"`
	IsActive  *bool  `json:"isActive"`
}

// TeamMemberResponse is the API shape of a team member.
type TeamMemberResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Bio       string    `json:"bio,omitempty"`
	PhotoURL  string    `json:"photoUrl,omitempty"`
	SortOrder int64     `json:"sortOrder"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func teamMemberToResponse(m model.TeamMember) TeamMemberResponse {
	return TeamMemberResponse{
		ID:        m.ID,
		Name:      m.Name,
		Role:      m.Role,
		Bio:       m.Bio.String,
		PhotoURL:  m.PhotoURL.String,
		SortOrder: m.SortOrder,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (req *teamMemberRequest) validate() map[string]string {
	fieldErrors := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fieldErrors["name"] = "required"
	}
	if strings.TrimSpace(req.Role) == "" {
		fieldErrors["role"] = "required"
	}
	return fieldErrors
}

func (req *teamMemberRequest) toParams() store.TeamMemberParams {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return store.TeamMemberParams{
		Name:      req.Name,
		Role:      req.Role,
		Bio:       nullString(req.Bio),
		PhotoURL:  nullString(req.PhotoURL),
		SortOrder: req.SortOrder,
		IsActive:  isActive,
	}
}

// ListTeamMembers returns all team members for the admin view.
func (h *Handler) ListTeamMembers(w http.ResponseWriter, r *http.Request) {
	h.listTeamMembers(w, r, false)
}

// ListActiveTeamMembers returns active team members for the public site.
func (h *Handler) ListActiveTeamMembers(w http.ResponseWriter, r *http.Request) {
	h.listTeamMembers(w, r, true)
}

func (h *Handler) listTeamMembers(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	members, err := h.queries.ListTeamMembers(r.Context(), activeOnly)
	if err != nil {
		slog.Error("listing team members", "error", err)
		WriteInternalError(w, r)
		return
	}
	responses := make([]TeamMemberResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, teamMemberToResponse(m))
	}
	WriteJSON(w, http.StatusOK, responses)
}

// CreateTeamMember creates a team member.
func (h *Handler) CreateTeamMember(w http.ResponseWriter, r *http.Request) {
	var req teamMemberRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, r, "error.validation", nil)
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		WriteValidationError(w, r, fieldErrors)
		return
	}

	member, err := h.queries.CreateTeamMember(r.Context(), req.toParams())
	if err != nil {
		slog.Error("creating team member", "error", err)
		WriteInternalError(w, r)
		return
	}

	h.audit.Record(r, auditEntry(middleware.GetUserID(r), model.AuditActionCreate, model.AuditEntityTeamMember,
		member.ID, nil, teamMemberToResponse(member)))

	WriteJSON(w, http.StatusCreated, teamMemberToResponse(member))
}

// UpdateTeamMember applies a full update to a team member.
func (h *Handler) UpdateTeamMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	old, err := h.queries.GetTeamMemberByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			WriteNotFound(w, r)
			return
		}
		slog.Error("loading team member", "error", err)
		WriteInternalError(w, r)
		return
	}

	var req teamMemberRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, r, "error.validation", nil)
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		WriteValidationError(w, r, fieldErrors)
		return
	}

	member, err := h.queries.UpdateTeamMember(r.Context(), id, req.toParams())
	if err != nil {
		slog.Error("updating team member", "error", err)
		WriteInternalError(w, r)
		return
	}

	h.audit.Record(r, auditEntry(middleware.GetUserID(r), model.AuditActionUpdate, model.AuditEntityTeamMember,
		member.ID, teamMemberToResponse(old), teamMemberToResponse(member)))

	WriteJSON(w, http.StatusOK, teamMemberToResponse(member))
}
