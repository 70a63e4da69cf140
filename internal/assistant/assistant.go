// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package assistant runs a chat turn: it records the user message, asks the
// completion client, formats the answer and records the assistant message.
//
// A remote failure never reaches the caller as an error. It becomes one of two
// fallback answers, so every accepted user message gets exactly one reply.
//
// Turns can run synchronously with Submit, or in three steps (Begin, Turn.Run,
// Complete) so that the network call happens off the UI goroutine.
package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/opsdesk/internal/format"
	"github.com/jeranaias/opsdesk/internal/gemini"
	"github.com/jeranaias/opsdesk/internal/model"
)

// previewLen bounds the prompt text written to debug logs.
const previewLen = 40

var (
	// ErrEmptyInput is returned by Begin for blank text. Nothing is recorded.
	ErrEmptyInput = errors.New("empty input")

	// ErrBusy is returned by Begin while another turn is in flight.
	ErrBusy = errors.New("a request is already in flight")

	// ErrStaleReply is returned by Complete for a reply that does not belong to
	// the turn in flight.
	ErrStaleReply = errors.New("reply does not match the turn in flight")
)

// Completer produces a completion for a single prompt.
// *gemini.Client satisfies it.
type Completer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Controller owns a conversation and the client used to answer it.
type Controller struct {
	mu        sync.Mutex
	conv      *model.Conversation
	client    Completer
	fallbacks gemini.Fallbacks
	logger    *zap.Logger
	inFlight  *Turn
}

// New creates a controller. A nil conversation starts a new one.
func New(conv *model.Conversation, client Completer, fallbacks gemini.Fallbacks, logger *zap.Logger) *Controller {
	if conv == nil {
		conv = model.NewConversation()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		conv:      conv,
		client:    client,
		fallbacks: fallbacks,
		logger:    logger.Named("assistant"),
	}
}

// Conversation returns the conversation being recorded.
func (c *Controller) Conversation() *model.Conversation {
	return c.conv
}

// SetClient replaces the completion client. Turns already started keep the
// client they were started with.
func (c *Controller) SetClient(client Completer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.client = client
}

// SetFallbacks replaces the fallback answers.
func (c *Controller) SetFallbacks(f gemini.Fallbacks) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fallbacks = f
}

// Busy reports whether a turn is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight != nil
}

// Submit runs a whole turn synchronously.
//
// Blank text is ignored and reports false. Otherwise the user message and the
// assistant answer (or fallback) are both appended before Submit returns true.
// The only error is ErrBusy.
func (c *Controller) Submit(ctx context.Context, text string) (bool, error) {
	turn, err := c.Begin(text)
	if errors.Is(err, ErrEmptyInput) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if _, err := c.Complete(turn.Run(ctx)); err != nil {
		return true, err
	}
	return true, nil
}

// Begin records the user message and returns the turn to run.
// Surrounding whitespace is trimmed before the text is stored or sent.
func (c *Controller) Begin(text string) (*Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight != nil {
		return nil, ErrBusy
	}

	msg := model.NewUserMessage(text)
	c.conv.Append(msg)

	turn := &Turn{
		id:        msg.ID(),
		prompt:    norm.NFC.String(text),
		client:    c.client,
		fallbacks: c.fallbacks,
		logger:    c.logger,
	}
	c.inFlight = turn

	c.logger.Debug("turn started",
		zap.String("conversation", c.conv.ID()),
		zap.String("turn", turn.id),
		zap.String("preview", msg.Preview(previewLen)),
	)
	return turn, nil
}

// Complete records the assistant message for the turn in flight.
func (c *Controller) Complete(reply Reply) (*model.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight == nil || c.inFlight.id != reply.TurnID {
		return nil, ErrStaleReply
	}
	c.inFlight = nil

	msg := model.NewAssistantMessage(reply.Text)
	c.conv.Append(msg)
	return msg, nil
}

// =============================================================================
// TURN
// =============================================================================

// Turn is one accepted user message waiting for its answer.
type Turn struct {
	id        string
	prompt    string
	client    Completer
	fallbacks gemini.Fallbacks
	logger    *zap.Logger
}

// ID returns the ID of the user message that started the turn.
func (t *Turn) ID() string { return t.id }

// Prompt returns the text sent to the client.
func (t *Turn) Prompt() string { return t.prompt }

// Reply is the result of running a turn.
type Reply struct {
	TurnID  string
	Raw     string // completion or fallback, unformatted
	Text    string // formatted fragment stored in the conversation
	Outcome gemini.Outcome
	Err     error
	Elapsed time.Duration
}

// Run calls the client and formats the result. It does not touch the
// conversation and is safe to call from any goroutine. A failed call, a
// cancelled context included, yields the matching fallback.
func (t *Turn) Run(ctx context.Context) Reply {
	start := time.Now()
	reply := Reply{TurnID: t.id}

	var err error
	if t.client == nil {
		err = &gemini.TransportError{Op: "configure", Err: gemini.ErrNotConfigured}
	} else {
		reply.Raw, err = t.client.Generate(ctx, t.prompt)
	}

	reply.Elapsed = time.Since(start)
	reply.Outcome = gemini.Classify(err)
	if err != nil {
		reply.Err = err
		reply.Raw = t.fallbacks.For(reply.Outcome)
		t.logger.Warn("completion failed",
			zap.String("turn", t.id),
			zap.String("outcome", reply.Outcome.String()),
			zap.Duration("elapsed", reply.Elapsed),
			zap.Error(err),
		)
	} else {
		t.logger.Debug("completion received",
			zap.String("turn", t.id),
			zap.Int("len", len(reply.Raw)),
			zap.Duration("elapsed", reply.Elapsed),
		)
	}

	reply.Text = format.Format(reply.Raw)
	return reply
}
