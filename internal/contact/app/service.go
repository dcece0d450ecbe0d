package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dwikikusuma/storefront/internal/contact/domain"
)

const (
	SuccessMessage = "Thank you for contacting us. Your message has been submitted."

	logMsgSubmitted = "contact message submitted"
)

var ErrInvalidInput = errors.New("invalid input")

type Submission struct {
	ID      string
	Message string
}

type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// Submit validates the form and records it in the log. A failed validation
// returns an error wrapping both ErrInvalidInput and domain.ValidationErrors.
func (s *Service) Submit(ctx context.Context, msg domain.Message) (Submission, error) {
	msg.FullName = strings.TrimSpace(msg.FullName)
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Body = strings.TrimSpace(msg.Body)

	if errs := msg.Validate(); errs != nil {
		return Submission{}, fmt.Errorf("%w: %w", ErrInvalidInput, errs)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Submission{}, fmt.Errorf("generate submission id: %w", err)
	}

	s.logger.InfoContext(ctx, logMsgSubmitted,
		slog.String("submission_id", id.String()),
		slog.String("full_name", msg.FullName),
		slog.String("email", msg.Email),
		slog.String("subject", msg.Subject),
		slog.Int("body_length", len(msg.Body)),
	)

	return Submission{ID: id.String(), Message: SuccessMessage}, nil
}
