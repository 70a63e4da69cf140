// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		prefs []string
		want  language.Tag
	}{
		{nil, language.Turkish},
		{[]string{""}, language.Turkish},
		{[]string{"tr"}, language.Turkish},
		{[]string{"en"}, language.English},
		{[]string{"en-US"}, language.English},
		{[]string{"en_GB.UTF-8"}, language.English},
		{[]string{"tr_TR.UTF-8"}, language.Turkish},
		{[]string{"de-DE"}, language.Turkish},
		{[]string{"!!"}, language.Turkish},
		{[]string{"fr", "en"}, language.English},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Match(tt.prefs...), "prefs %v", tt.prefs)
	}
}

func TestLookup(t *testing.T) {
	tr := Lookup("tr")
	assert.Equal(t, "tr", tr.Language())
	assert.Equal(t, "Üzgünüm, şu anda yanıt veremiyorum.", tr.Fallbacks().Unavailable)
	assert.Equal(t, "Üzgünüm, bir hata oluştu.", tr.Fallbacks().Failure)

	en := Lookup("en")
	assert.Equal(t, "en", en.Language())
	assert.Equal(t, "Sorry, I can't respond right now.", en.Fallbacks().Unavailable)
	assert.Equal(t, "Sorry, an error occurred.", en.Fallbacks().Failure)
}

func TestCatalogsComplete(t *testing.T) {
	for _, c := range []*Catalog{turkish, english} {
		assert.Len(t, c.ReportRows, 3, c.Language())
		assert.NotEmpty(t, c.Title)
		assert.NotEmpty(t, c.Placeholder)
		for _, col := range c.ReportColumns {
			assert.NotEmpty(t, col)
		}
	}
	assert.Equal(t, [4]string{"Günlük Rapor", "2024-04-02", "0.8 MB", "İşleniyor"}, turkish.ReportRows[2])
}
