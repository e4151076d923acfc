// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Setting value types.
const (
	SettingTypeString = "string"
	SettingTypeNumber = "number"
	SettingTypeBool   = "boolean"
	SettingTypeJSON   = "json"
)

// Well-known setting keys.
const (
	SettingKeySiteName        = "site_name"
	SettingKeySiteDescription = "site_description"
	SettingKeyContactEmail    = "contact_email"
	SettingKeyDefaultLanguage = "default_language"
)

// ValidSettingTypes returns all valid setting value types.
func ValidSettingTypes() []string {
	return []string{SettingTypeString, SettingTypeNumber, SettingTypeBool, SettingTypeJSON}
}

// IsValidSettingType checks if a setting type is valid.
func IsValidSettingType(t string) bool {
	for _, v := range ValidSettingTypes() {
		if v == t {
			return true
		}
	}
	return false
}

// SiteSetting is a site-wide configuration item stored as a type-tagged
// string and coerced back to its declared type on read.
type SiteSetting struct {
	ID        string
	Key       string
	Value     string
	Type      string
	UpdatedAt time.Time
}

// TypedValue coerces the stored string value to the setting's declared type.
func (s *SiteSetting) TypedValue() (any, error) {
	switch s.Type {
	case SettingTypeNumber:
		if n, err := strconv.ParseInt(s.Value, 10, 64); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(s.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("setting %q: parsing number %q: %w", s.Key, s.Value, err)
		}
		return f, nil
	case SettingTypeBool:
		b, err := strconv.ParseBool(s.Value)
		if err != nil {
			return nil, fmt.Errorf("setting %q: parsing boolean %q: %w", s.Key, s.Value, err)
		}
		return b, nil
	case SettingTypeJSON:
		var v any
		if err := json.Unmarshal([]byte(s.Value), &v); err != nil {
			return nil, fmt.Errorf("setting %q: parsing JSON: %w", s.Key, err)
		}
		return v, nil
	default:
		return s.Value, nil
	}
}

// EncodeSettingValue serializes a typed value to its string representation
// for storage. The declared type drives the encoding.
func EncodeSettingValue(value any, settingType string) (string, error) {
	switch settingType {
	case SettingTypeNumber:
		switch n := value.(type) {
		case float64:
			// JSON numbers decode as float64; keep integers clean
			if n == float64(int64(n)) {
				return strconv.FormatInt(int64(n), 10), nil
			}
			return strconv.FormatFloat(n, 'f', -1, 64), nil
		case int64:
			return strconv.FormatInt(n, 10), nil
		case int:
			return strconv.Itoa(n), nil
		case string:
			if _, err := strconv.ParseFloat(n, 64); err != nil {
				return "", fmt.Errorf("value %q is not a number", n)
			}
			return n, nil
		default:
			return "", fmt.Errorf("value of type %T is not a number", value)
		}
	case SettingTypeBool:
		switch b := value.(type) {
		case bool:
			return strconv.FormatBool(b), nil
		case string:
			parsed, err := strconv.ParseBool(b)
			if err != nil {
				return "", fmt.Errorf("value %q is not a boolean", b)
			}
			return strconv.FormatBool(parsed), nil
		default:
			return "", fmt.Errorf("value of type %T is not a boolean", value)
		}
	case SettingTypeJSON:
		encoded, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("encoding JSON value: %w", err)
		}
		return string(encoded), nil
	case SettingTypeString:
		if s, ok := value.(string); ok {
			return s, nil
		}
		return fmt.Sprintf("%v", value), nil
	default:
		return "", fmt.Errorf("unknown setting type %q", settingType)
	}
}
