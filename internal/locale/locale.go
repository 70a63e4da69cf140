// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package locale holds the user-visible strings of the console in Turkish and
// English, and picks one set from a language preference.
package locale

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/jeranaias/opsdesk/internal/gemini"
)

// Supported tags. The first entry is the default.
var supported = []language.Tag{
	language.Turkish,
	language.English,
}

var matcher = language.NewMatcher(supported)

// Match returns the supported tag closest to the given preferences.
// Each preference may be a BCP 47 tag ("en-US") or an Accept-Language list.
// Unparseable or empty preferences yield Turkish.
func Match(prefs ...string) language.Tag {
	var tags []language.Tag
	for _, p := range prefs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		// POSIX locale names such as tr_TR.UTF-8
		if i := strings.IndexByte(p, '.'); i > 0 {
			p = p[:i]
		}
		p = strings.ReplaceAll(p, "_", "-")
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return supported[0]
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return supported[0]
	}
	return supported[idx]
}

// Catalog is the full set of strings for one language.
type Catalog struct {
	Tag language.Tag

	// Fallback answers
	Unavailable string
	Failure     string

	// Shell
	Title       string
	TabChat     string
	TabReports  string
	TabSettings string
	DarkTheme   string
	LightTheme  string
	QuitHint    string
	Reloaded    string

	// Chat page
	ChatTitle   string
	Placeholder string
	SendHint    string
	Thinking    string
	CancelHint  string
	You         string
	Assistant   string
	EmptyChat   string

	// Reports page
	ReportsTitle  string
	ReportColumns [4]string
	ReportRows    [][4]string

	// Settings page
	SettingsTitle string
	Username      string
	Email         string
	Theme         string
	ThemeOptions  [3]string
	Notifications string
	Save          string
	Saved         string
	InvalidEmail  string
	SettingsHelp  string
}

// Fallbacks returns the fallback answers for the completion client.
func (c *Catalog) Fallbacks() gemini.Fallbacks {
	return gemini.Fallbacks{Unavailable: c.Unavailable, Failure: c.Failure}
}

// Language returns the base language code, e.g. "tr".
func (c *Catalog) Language() string {
	base, _ := c.Tag.Base()
	return base.String()
}

// For returns the catalog for a tag previously returned by Match.
func For(tag language.Tag) *Catalog {
	if tag == language.English {
		return english
	}
	return turkish
}

// Lookup matches prefs and returns the catalog.
func Lookup(prefs ...string) *Catalog {
	return For(Match(prefs...))
}

var turkish = &Catalog{
	Tag: language.Turkish,

	Unavailable: "Üzgünüm, şu anda yanıt veremiyorum.",
	Failure:     "Üzgünüm, bir hata oluştu.",

	Title:       "Şirket Yönetim Sistemi",
	TabChat:     "Yapay Zekaya Sor",
	TabReports:  "Raporlar",
	TabSettings: "Ayarlar",
	DarkTheme:   "🌙 Koyu Tema",
	LightTheme:  "☀️ Açık Tema",
	QuitHint:    "⏻ ctrl+q çıkış",
	Reloaded:    "Yapılandırma yeniden yüklendi",

	ChatTitle:   "Yapay Zeka Asistanı",
	Placeholder: "Mesajınızı yazın...",
	SendHint:    "enter gönder",
	Thinking:    "Yanıt bekleniyor...",
	CancelHint:  "esc iptal",
	You:         "Siz",
	Assistant:   "Asistan",
	EmptyChat:   "Henüz mesaj yok. Bir soru sorarak başlayın.",

	ReportsTitle:  "Raporlar",
	ReportColumns: [4]string{"Rapor Adı", "Oluşturma Tarihi", "Boyut", "Durum"},
	ReportRows: [][4]string{
		{"Aylık Analiz", "2024-04-02", "2.5 MB", "Tamamlandı"},
		{"Haftalık Özet", "2024-04-01", "1.2 MB", "Tamamlandı"},
		{"Günlük Rapor", "2024-04-02", "0.8 MB", "İşleniyor"},
	},

	SettingsTitle: "Ayarlar",
	Username:      "Kullanıcı Adı",
	Email:         "E-posta",
	Theme:         "Tema",
	ThemeOptions:  [3]string{"Açık", "Koyu", "Sistem"},
	Notifications: "Bildirimleri etkinleştir",
	Save:          "Kaydet",
	Saved:         "Ayarlar uygulandı",
	InvalidEmail:  "Geçersiz e-posta adresi",
	SettingsHelp:  "↑/↓ alan • ←/→ tema • space işaretle • enter kaydet",
}

var english = &Catalog{
	Tag: language.English,

	Unavailable: "Sorry, I can't respond right now.",
	Failure:     "Sorry, an error occurred.",

	Title:       "Company Management System",
	TabChat:     "Ask the AI",
	TabReports:  "Reports",
	TabSettings: "Settings",
	DarkTheme:   "🌙 Dark theme",
	LightTheme:  "☀️ Light theme",
	QuitHint:    "⏻ ctrl+q quit",
	Reloaded:    "Configuration reloaded",

	ChatTitle:   "AI Assistant",
	Placeholder: "Type your message...",
	SendHint:    "enter send",
	Thinking:    "Waiting for response...",
	CancelHint:  "esc cancel",
	You:         "You",
	Assistant:   "Assistant",
	EmptyChat:   "No messages yet. Ask a question to start.",

	ReportsTitle:  "Reports",
	ReportColumns: [4]string{"Report name", "Created", "Size", "Status"},
	ReportRows: [][4]string{
		{"Monthly Analysis", "2024-04-02", "2.5 MB", "Completed"},
		{"Weekly Summary", "2024-04-01", "1.2 MB", "Completed"},
		{"Daily Report", "2024-04-02", "0.8 MB", "Processing"},
	},

	SettingsTitle: "Settings",
	Username:      "Username",
	Email:         "Email",
	Theme:         "Theme",
	ThemeOptions:  [3]string{"Light", "Dark", "System"},
	Notifications: "Enable notifications",
	Save:          "Save",
	Saved:         "Settings applied",
	InvalidEmail:  "Invalid email address",
	SettingsHelp:  "↑/↓ field • ←/→ theme • space toggle • enter save",
}
