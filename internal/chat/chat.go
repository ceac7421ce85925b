// Package chat forwards user messages to a hosted generative model.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

var (
	// ErrDisabled is returned when no model is configured.
	ErrDisabled = errors.New("chat is disabled")
	// ErrEmptyMessage is returned for blank messages.
	ErrEmptyMessage = errors.New("message is required")
	// ErrMessageTooLong is returned when a message exceeds the configured limit.
	ErrMessageTooLong = errors.New("message is too long")
)

const defaultMaxChars = 4000

// Generator produces a model reply for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service validates messages and forwards them to a Generator.
type Service struct {
	gen      Generator
	maxChars int
	logger   *zap.Logger
}

// NewService returns a Service. A nil gen disables the service.
func NewService(gen Generator, maxChars int, logger *zap.Logger) *Service {
	if maxChars <= 0 {
		maxChars = defaultMaxChars
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gen: gen, maxChars: maxChars, logger: logger}
}

// Enabled reports whether a model is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.gen != nil
}

// Reply sends message to the model unchanged, apart from surrounding
// whitespace, and returns its text.
func (s *Service) Reply(ctx context.Context, message string) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	if utf8.RuneCountInString(message) > s.maxChars {
		return "", ErrMessageTooLong
	}

	reply, err := s.gen.Generate(ctx, message)
	if err != nil {
		s.logger.Warn("chat generation failed", zap.Error(err))
		return "", fmt.Errorf("generate reply: %w", err)
	}

	s.logger.Debug("chat reply generated",
		zap.Int("prompt_chars", utf8.RuneCountInString(message)),
		zap.Int("reply_chars", utf8.RuneCountInString(reply)),
	)
	return reply, nil
}
