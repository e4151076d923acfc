// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tdasolutions/sitecms/internal/auth"
	"github.com/tdasolutions/sitecms/internal/model"
)

// Default admin credentials
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
)

// Seed creates the default admin account when no admin exists yet.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	count, err := queries.CountUsersByRole(ctx, model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("checking for admin user: %w", err)
	}
	if count > 0 {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"email", user.Email,
		"password", DefaultAdminPassword,
	)
	return nil
}

// SeedEmailSettings bootstraps the active email configuration from
// environment values on first boot. An existing active row wins.
func SeedEmailSettings(ctx context.Context, db *sql.DB, arg EmailSettingsParams) error {
	queries := New(db)

	_, err := queries.GetActiveEmailSettings(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking email settings: %w", err)
	}

	if arg.Provider == "" {
		arg.Provider = model.EmailProviderSMTP
	}
	if _, err := queries.SaveEmailSettings(ctx, arg); err != nil {
		return fmt.Errorf("seeding email settings: %w", err)
	}
	slog.Info("seeded email settings", "host", arg.SMTPHost, "port", arg.SMTPPort)
	return nil
}

// defaultPages is the initial page set for a fresh site. Content is the
// block-based JSON the editor consumes.
var defaultPages = []CreatePageParams{
	{
		Title:       "الرئيسية",
		Slug:        "home",
		Content:     `{"blocks":[{"type":"hero","title":"حلول تقنية متكاملة","subtitle":"نساعدك على بناء حضورك الرقمي"}]}`,
		IsPublished: true,
	},
	{
		Title:       "من نحن",
		Slug:        "about",
		Content:     `{"blocks":[{"type":"text","content":"شركة متخصصة في تطوير الحلول الرقمية."}]}`,
		IsPublished: true,
	},
	{
		Title:       "خدماتنا",
		Slug:        "services",
		Content:     `{"blocks":[{"type":"text","content":"نقدم خدمات تطوير المواقع والتطبيقات والهوية البصرية."}]}`,
		IsPublished: true,
	},
	{
		Title:       "تواصل معنا",
		Slug:        "contact",
		Content:     `{"blocks":[{"type":"contact-form","title":"تواصل معنا"}]}`,
		IsPublished: true,
	},
}

// SeedPages creates the default page set. Existing pages win: when any page
// exists the seed is a no-op. The set is created in one transaction so the
// site never ends up with a partial default layout. Returns the number of
// pages created.
func SeedPages(ctx context.Context, db *sql.DB, createdBy string) (int, error) {
	queries := New(db)

	count, err := queries.CountPages(ctx)
	if err != nil {
		return 0, fmt.Errorf("checking pages: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting page seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	txQueries := queries.WithTx(tx)
	created := 0
	for _, p := range defaultPages {
		p.CreatedBy = createdBy
		if _, err := txQueries.CreatePage(ctx, p); err != nil {
			return 0, fmt.Errorf("seeding page %q: %w", p.Slug, err)
		}
		created++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing page seed: %w", err)
	}
	return created, nil
}

// defaultElements is the initial editable element set for the public site.
var defaultElements = []UpsertElementParams{
	{ElementKey: "site.tagline", ElementType: model.ElementTypeText, Value: "حلول تقنية متكاملة", Category: "general", IsActive: true},
	{ElementKey: "footer.copyright", ElementType: model.ElementTypeText, Value: "جميع الحقوق محفوظة", Category: "footer", IsActive: true},
	{ElementKey: "contact.phone", ElementType: model.ElementTypeText, Value: "+966500000000", Category: "contact", IsActive: true},
	{ElementKey: "contact.email", ElementType: model.ElementTypeText, Value: "info@example.com", Category: "contact", IsActive: true},
	{ElementKey: "social.twitter", ElementType: model.ElementTypeLink, Value: "https://twitter.com", Category: "social", IsActive: true},
}

// defaultSettings is the initial typed settings map.
var defaultSettings = []struct {
	Key   string
	Value string
	Type  string
}{
	{model.SettingKeySiteName, "TDA Solutions", model.SettingTypeString},
	{model.SettingKeyDefaultLanguage, "ar", model.SettingTypeString},
	{"maintenance_mode", "false", model.SettingTypeBool},
	{"items_per_page", "20", model.SettingTypeNumber},
}

// SeedCMSDefaults creates the default website elements and site settings.
// Each key is seeded only when missing, so reruns never overwrite edits.
// Returns the number of elements and settings created.
func SeedCMSDefaults(ctx context.Context, db *sql.DB) (int, int, error) {
	queries := New(db)

	elements := 0
	for _, e := range defaultElements {
		_, err := queries.GetElementByKey(ctx, e.ElementKey)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return elements, 0, fmt.Errorf("checking element %q: %w", e.ElementKey, err)
		}
		if _, err := queries.UpsertElement(ctx, e); err != nil {
			return elements, 0, fmt.Errorf("seeding element %q: %w", e.ElementKey, err)
		}
		elements++
	}

	settings := 0
	for _, s := range defaultSettings {
		_, err := queries.GetSetting(ctx, s.Key)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return elements, settings, fmt.Errorf("checking setting %q: %w", s.Key, err)
		}
		if _, err := queries.UpsertSetting(ctx, s.Key, s.Value, s.Type); err != nil {
			return elements, settings, fmt.Errorf("seeding setting %q: %w", s.Key, err)
		}
		settings++
	}

	return elements, settings, nil
}
