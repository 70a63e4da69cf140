// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

// Fallbacks are the texts shown in place of a completion when a call fails.
type Fallbacks struct {
	// Unavailable is used when the service answered without a completion.
	Unavailable string
	// Failure is used for every other error.
	Failure string
}

// DefaultFallbacks are the Turkish texts.
var DefaultFallbacks = Fallbacks{
	Unavailable: "Üzgünüm, şu anda yanıt veremiyorum.",
	Failure:     "Üzgünüm, bir hata oluştu.",
}

// For returns the fallback text for a failed outcome.
// OutcomeOK has no fallback and returns "".
func (f Fallbacks) For(o Outcome) string {
	switch o {
	case OutcomeServiceUnavailable:
		return f.Unavailable
	case OutcomeTransportFailure:
		return f.Failure
	default:
		return ""
	}
}
