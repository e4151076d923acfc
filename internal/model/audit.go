package model

import (
	"database/sql"
	"time"
)

// Audit actions.
const (
	AuditActionLogin  = "login"
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)

// Audit entity types.
const (
	AuditEntityUser          = "user"
	AuditEntityPage          = "page"
	AuditEntityService       = "service"
	AuditEntityProject       = "project"
	AuditEntityTeamMember    = "team_member"
	AuditEntityElement       = "website_element"
	AuditEntitySetting       = "site_setting"
	AuditEntityEmailSettings = "email_settings"
)

// AuditLog is an append-only record of who changed what and when.
// OldData/NewData carry JSON snapshots of the entity around the mutation.
type AuditLog struct {
	ID         string
	UserID     sql.NullString
	Action     string
	EntityType string
	EntityID   sql.NullString
	OldData    sql.NullString
	NewData    sql.NullString
	IPAddress  sql.NullString
	UserAgent  sql.NullString
	CreatedAt  time.Time
}
