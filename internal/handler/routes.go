// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"github.com/go-chi/chi/v5"

	"github.com/tdasolutions/sitecms/internal/middleware"
)

// Routes builds the API router. Public endpoints come first; everything
// under /admin requires authentication, with role gates per subtree.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	// Public surface
	r.Get("/health", h.Health)
	r.Post("/contacts", h.CreateContact)
	r.Get("/pages/{slug}", h.GetPublishedPage)
	r.Get("/website-elements", h.ListActiveElements)
	r.Get("/services", h.ListActiveServices)
	r.Get("/projects", h.ListActiveProjects)
	r.Get("/team-members", h.ListActiveTeamMembers)

	// Authentication
	r.Post("/auth/login", h.Login)
	r.Post("/auth/logout", h.Logout)
	r.Post("/admin/setup", h.Setup)

	authenticate := middleware.Authenticate(h.db, []byte(h.cfg.JWTSecret))

	r.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/auth/user", h.CurrentUser)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticate)

		// Editor surface
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireEditor())

			r.Get("/contacts", h.ListContacts)
			r.Get("/form-submissions", h.ListFormSubmissions)
			r.Put("/form-submissions/{id}/read", h.MarkFormSubmissionRead)

			r.Get("/pages", h.ListPages)
			r.Post("/pages", h.CreatePage)
			r.Get("/pages/{id}", h.GetPage)
			r.Put("/pages/{id}", h.UpdatePage)

			r.Get("/website-elements", h.ListElements)
			r.Put("/website-elements/{key}", h.UpsertElement)

			r.Get("/services", h.ListServices)
			r.Post("/services", h.CreateService)
			r.Put("/services/{id}", h.UpdateService)

			r.Get("/projects", h.ListProjects)
			r.Post("/projects", h.CreateProject)
			r.Put("/projects/{id}", h.UpdateProject)

			r.Get("/team-members", h.ListTeamMembers)
			r.Post("/team-members", h.CreateTeamMember)
			r.Put("/team-members/{id}", h.UpdateTeamMember)
		})

		// Admin-only surface
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin())

			r.Delete("/pages/{id}", h.DeletePage)

			r.Get("/users", h.ListUsers)
			r.Post("/users", h.CreateUser)
			r.Put("/users/{id}", h.UpdateUser)
			r.Delete("/users/{id}", h.DeactivateUser)

			r.Get("/settings", h.ListSettings)
			r.Put("/settings/{key}", h.UpdateSetting)

			r.Get("/email-settings", h.GetEmailSettings)
			r.Put("/email-settings", h.UpdateEmailSettings)
			r.Post("/test-email", h.TestEmail)

			r.Get("/audit-logs", h.ListAuditLogs)

			r.Post("/init-pages", h.InitPages)
			r.Post("/init-cms", h.InitCMS)
		})
	})

	return r
}
