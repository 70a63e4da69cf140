// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the remote completion client for the Gemini
// generative-language API.
//
// One prompt becomes one generateContent call. The first text part of the
// first candidate is returned verbatim. There are no retries and no streaming.
//
// # Key Types
//
//   - Client: HTTP client for the generateContent endpoint
//   - APIError: non-200 status or a response without candidates
//   - TransportError: request, network, body or JSON decoding failure
//   - Outcome: the two-valued failure classification used by callers
//
// # Usage
//
//	client := gemini.NewClient(apiKey).WithModel("gemini-1.5-flash")
//	text, err := client.Generate(ctx, "Hello")
//	switch gemini.Classify(err) {
//	case gemini.OutcomeServiceUnavailable:
//	case gemini.OutcomeTransportFailure:
//	}
//
// # Security
//
// The API key travels in the key query parameter. It is never logged: log
// lines carry the endpoint without the query and a SHA-256 fingerprint.
package gemini
