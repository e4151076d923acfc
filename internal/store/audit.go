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

const auditColumns = `id, user_id, action, entity_type, entity_id, old_data, new_data, ip_address, user_agent, created_at`

// CreateAuditLogParams holds parameters for CreateAuditLog.
type CreateAuditLogParams struct {
	UserID     sql.NullString
	Action     string
	EntityType string
	EntityID   sql.NullString
	OldData    sql.NullString
	NewData    sql.NullString
	IPAddress  sql.NullString
	UserAgent  sql.NullString
}

// CreateAuditLog appends an audit record.
func (q *Queries) CreateAuditLog(ctx context.Context, arg CreateAuditLogParams) (model.AuditLog, error) {
	a := model.AuditLog{
		ID:         uuid.NewString(),
		UserID:     arg.UserID,
		Action:     arg.Action,
		EntityType: arg.EntityType,
		EntityID:   arg.EntityID,
		OldData:    arg.OldData,
		NewData:    arg.NewData,
		IPAddress:  arg.IPAddress,
		UserAgent:  arg.UserAgent,
		CreatedAt:  time.Now().UTC(),
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO audit_log (`+auditColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Action, a.EntityType, a.EntityID, a.OldData, a.NewData,
		a.IPAddress, a.UserAgent, a.CreatedAt)
	if err != nil {
		return model.AuditLog{}, err
	}
	return a, nil
}

// ListAuditLogs returns the most recent audit records, newest first.
func (q *Queries) ListAuditLogs(ctx context.Context, limit int64) ([]model.AuditLog, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+auditColumns+` FROM audit_log ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var logs []model.AuditLog
	for rows.Next() {
		var a model.AuditLog
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.EntityType, &a.EntityID,
			&a.OldData, &a.NewData, &a.IPAddress, &a.UserAgent, &a.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, a)
	}
	return logs, rows.Err()
}

// PurgeAuditLogsBefore deletes audit records created before the cutoff.
// Returns the number of rows removed.
func (q *Queries) PurgeAuditLogsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM audit_log WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountAuditLogs returns the total number of audit records.
func (q *Queries) CountAuditLogs(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_log`).Scan(&count)
	return count, err
}
