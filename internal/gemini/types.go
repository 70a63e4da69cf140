// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

// Part is one piece of content. Only text parts are used.
type Part struct {
	Text string `json:"text"`
}

// Content is an ordered list of parts.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerateRequest is the body of a generateContent call.
type GenerateRequest struct {
	Contents []Content `json:"contents"`
}

// NewGenerateRequest wraps a prompt as a single content part.
func NewGenerateRequest(prompt string) GenerateRequest {
	return GenerateRequest{
		Contents: []Content{{Parts: []Part{{Text: prompt}}}},
	}
}

// Candidate is one alternative completion.
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// GenerateResponse is the success body of a generateContent call.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// FirstText returns the first text part of the first candidate.
// ok is false when there is no candidate or the candidate has no parts.
func (r *GenerateResponse) FirstText() (text string, ok bool) {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return "", false
	}
	return r.Candidates[0].Content.Parts[0].Text, true
}

// apiErrorResponse represents an error response from the API.
type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
