// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides Arabic-first localization for user-visible API
// messages. Arabic is the default; English is served when Accept-Language
// prefers it.
package i18n

import (
	"golang.org/x/text/language"
)

// DefaultLanguage is the site's primary language.
const DefaultLanguage = "ar"

// SupportedLanguages lists the languages API messages exist in.
var SupportedLanguages = []string{"ar", "en"}

var matcher = language.NewMatcher([]language.Tag{
	language.Arabic, // first tag is the fallback
	language.English,
})

// messages maps language -> key -> text.
var messages = map[string]map[string]string{
	"ar": {
		"contact.received":        "تم استلام طلبكم بنجاح وسيتم التواصل معكم قريباً",
		"contact.invalid":         "خطأ في البيانات المرسلة",
		"contact.failed":          "حدث خطأ في معالجة طلبكم، يرجى المحاولة مرة أخرى",
		"auth.invalid_creds":      "بيانات الدخول غير صحيحة",
		"auth.required":           "يجب تسجيل الدخول",
		"auth.forbidden":          "لا تملك الصلاحية الكافية",
		"auth.locked":             "تم قفل الحساب مؤقتاً بسبب محاولات فاشلة متكررة",
		"error.not_found":         "العنصر المطلوب غير موجود",
		"error.internal":          "حدث خطأ غير متوقع، يرجى المحاولة لاحقاً",
		"error.validation":        "البيانات المرسلة غير صالحة",
		"setup.admin_exists":      "يوجد حساب مدير بالفعل",
	},
	"en": {
		"contact.received":        "Your request has been received; we will contact you shortly",
		"contact.invalid":         "The submitted data is invalid",
		"contact.failed":          "An error occurred while processing your request, please try again",
		"auth.invalid_creds":      "Invalid credentials",
		"auth.required":           "Authentication required",
		"auth.forbidden":          "Insufficient permissions",
		"auth.locked":             "Account temporarily locked after repeated failed attempts",
		"error.not_found":         "The requested item was not found",
		"error.internal":          "An unexpected error occurred, please try again later",
		"error.validation":        "The submitted data is invalid",
		"setup.admin_exists":      "An admin account already exists",
	},
}

// T returns the translation for key in lang, falling back to Arabic, then
// to the key itself.
func T(lang, key string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := messages[DefaultLanguage][key]; ok {
		return s
	}
	return key
}

// MatchLanguage resolves an Accept-Language header value to a supported
// language code. An empty or unmatchable header yields Arabic.
func MatchLanguage(acceptLanguage string) string {
	if acceptLanguage == "" {
		return DefaultLanguage
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}
	_, index, _ := matcher.Match(tags...)
	return SupportedLanguages[index]
}
