// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/tdasolutions/sitecms/internal/model"
)

const serviceColumns = `id, title, description, icon, sort_order, is_active, is_featured, created_at, updated_at`

func scanService(row interface{ Scan(...any) error }) (model.Service, error) {
	var s model.Service
	err := row.Scan(&s.ID, &s.Title, &s.Description, &s.Icon, &s.SortOrder,
		&s.IsActive, &s.IsFeatured, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// GetServiceByID returns a service by ID.
func (q *Queries) GetServiceByID(ctx context.Context, id string) (model.Service, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = ?`, id)
	return scanService(row)
}

// ListServices returns services ordered by sort index. When activeOnly is
// set, inactive rows are filtered out (public site listing).
func (q *Queries) ListServices(ctx context.Context, activeOnly bool) ([]model.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services ORDER BY sort_order, title`
	if activeOnly {
		query = `SELECT ` + serviceColumns + ` FROM services WHERE is_active = 1 ORDER BY sort_order, title`
	}
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var services []model.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

// ServiceParams holds fields for creating or updating a service.
type ServiceParams struct {
	Title       string
	Description string
	Icon        sql.NullString
	SortOrder   int64
	IsActive    bool
	IsFeatured  bool
}

// CreateService inserts a new service and returns the created row.
func (q *Queries) CreateService(ctx context.Context, arg ServiceParams) (model.Service, error) {
	now := time.Now().UTC()
	s := model.Service{
		ID:          uuid.NewString(),
		Title:       arg.Title,
		Description: arg.Description,
		Icon:        arg.Icon,
		SortOrder:   arg.SortOrder,
		IsActive:    arg.IsActive,
		IsFeatured:  arg.IsFeatured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO services (`+serviceColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Title, s.Description, s.Icon, s.SortOrder, s.IsActive, s.IsFeatured, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return model.Service{}, err
	}
	return s, nil
}

// UpdateService applies an update to a service and returns the updated row.
func (q *Queries) UpdateService(ctx context.Context, id string, arg ServiceParams) (model.Service, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE services SET title = ?, description = ?, icon = ?, sort_order = ?, is_active = ?, is_featured = ?, updated_at = ? WHERE id = ?`,
		arg.Title, arg.Description, arg.Icon, arg.SortOrder, arg.IsActive, arg.IsFeatured, time.Now().UTC(), id)
	if err != nil {
		return model.Service{}, err
	}
	return q.GetServiceByID(ctx, id)
}

const projectColumns = `id, title, description, image_url, project_url, sort_order, is_active, is_featured, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (model.Project, error) {
	var p model.Project
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.ProjectURL,
		&p.SortOrder, &p.IsActive, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// GetProjectByID returns a project by ID.
func (q *Queries) GetProjectByID(ctx context.Context, id string) (model.Project, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	return scanProject(row)
}

// ListProjects returns projects ordered by sort index.
func (q *Queries) ListProjects(ctx context.Context, activeOnly bool) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY sort_order, title`
	if activeOnly {
		query = `SELECT ` + projectColumns + ` FROM projects WHERE is_active = 1 ORDER BY sort_order, title`
	}
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var projects []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ProjectParams holds fields for creating or updating a project.
type ProjectParams struct {
	Title       string
	Description string
	ImageURL    sql.NullString
	ProjectURL  sql.NullString
	SortOrder   int64
	IsActive    bool
	IsFeatured  bool
}

// CreateProject inserts a new project and returns the created row.
func (q *Queries) CreateProject(ctx context.Context, arg ProjectParams) (model.Project, error) {
	now := time.Now().UTC()
	p := model.Project{
		ID:          uuid.NewString(),
		Title:       arg.Title,
		Description: arg.Description,
		ImageURL:    arg.ImageURL,
		ProjectURL:  arg.ProjectURL,
		SortOrder:   arg.SortOrder,
		IsActive:    arg.IsActive,
		IsFeatured:  arg.IsFeatured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Description, p.ImageURL, p.ProjectURL, p.SortOrder, p.IsActive, p.IsFeatured, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return model.Project{}, err
	}
	return p, nil
}

// UpdateProject applies an update to a project and returns the updated row.
func (q *Queries) UpdateProject(ctx context.Context, id string, arg ProjectParams) (model.Project, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE projects SET title = ?, description = ?, image_url = ?, project_url = ?, sort_order = ?, is_active = ?, is_featured = ?, updated_at = ? WHERE id = ?`,
		arg.Title, arg.Description, arg.ImageURL, arg.ProjectURL, arg.SortOrder, arg.IsActive, arg.IsFeatured, time.Now().UTC(), id)
	if err != nil {
		return model.Project{}, err
	}
	return q.GetProjectByID(ctx, id)
}

const teamMemberColumns = `id, name, role, bio, photo_url, sort_order, is_active, created_at, updated_at`

func scanTeamMember(row interface{ Scan(...any) error }) (model.TeamMember, error) {
	var m model.TeamMember
	err := row.Scan(&m.ID, &m.Name, &m.Role, &m.Bio, &m.PhotoURL,
		&m.SortOrder, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// GetTeamMemberByID returns a team member by ID.
func (q *Queries) GetTeamMemberByID(ctx context.Context, id string) (model.TeamMember, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+teamMemberColumns+` FROM team_members WHERE id = ?`, id)
	return scanTeamMember(row)
}

// ListTeamMembers returns team members ordered by sort index.
func (q *Queries) ListTeamMembers(ctx context.Context, activeOnly bool) ([]model.TeamMember, error) {
	query := `SELECT ` + teamMemberColumns + ` FROM team_members ORDER BY sort_order, name`
	if activeOnly {
		query = `SELECT ` + teamMemberColumns + ` FROM team_members WHERE is_active = 1 ORDER BY sort_order, name`
	}
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var members []model.TeamMember
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// TeamMemberParams holds fields for creating or updating a team member.
type TeamMemberParams struct {
	Name      string
	Role      string
	Bio       sql.NullString
	PhotoURL  sql.NullString
	SortOrder int64
	IsActive  bool
}

// CreateTeamMember inserts a new team member and returns the created row.
func (q *Queries) CreateTeamMember(ctx context.Context, arg TeamMemberParams) (model.TeamMember, error) {
	now := time.Now().UTC()
	m := model.TeamMember{
		ID:        uuid.NewString(),
		Name:      arg.Name,
		Role:      arg.Role,
		Bio:       arg.Bio,
		PhotoURL:  arg.PhotoURL,
		SortOrder: arg.SortOrder,
		IsActive:  arg.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO team_members (`+teamMemberColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Role, m.Bio, m.PhotoURL, m.SortOrder, m.IsActive, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return model.TeamMember{}, err
	}
	return m, nil
}

// UpdateTeamMember applies an update to a team member and returns the updated row.
func (q *Queries) UpdateTeamMember(ctx context.Context, id string, arg TeamMemberParams) (model.TeamMember, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE team_members SET name = ?, role = ?, bio = ?, photo_url = ?, sort_order = ?, is_active = ?, updated_at = ? WHERE id = ?`,
		arg.Name, arg.Role, arg.Bio, arg.PhotoURL, arg.SortOrder, arg.IsActive, time.Now().UTC(), id)
	if err != nil {
		return model.TeamMember{}, err
	}
	return q.GetTeamMemberByID(ctx, id)
}
