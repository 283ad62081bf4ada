package inquiry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ayush2735/claynest-web-craft/internal/domain"
	"github.com/ayush2735/claynest-web-craft/internal/validation"
	"go.uber.org/zap"
)

const (
	MsgSent          = "Message sent successfully! We'll get back to you soon."
	MsgSendFailed    = "Failed to send message. Please try again."
	MsgMissingFields = "Please fill in all required fields"
	MsgStatusUpdated = "Inquiry status updated"
)

var (
	ErrSubmit        = errors.New("failed to store inquiry")
	ErrInvalidStatus = errors.New("invalid inquiry status")
)

type Store interface {
	CreateInquiry(ctx context.Context, in *domain.Inquiry) error
	ListInquiries(ctx context.Context, status domain.InquiryStatus) ([]*domain.Inquiry, error)
	UpdateInquiryStatus(ctx context.Context, id string, status domain.InquiryStatus) error
}

// Form is the public contact form.
type Form struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	CompanyName string `json:"company_name"`
	Message     string `json:"message" validate:"required"`
}

type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) Submit(ctx context.Context, f Form) (*domain.Inquiry, error) {
	in := &domain.Inquiry{
		Name:        strings.TrimSpace(f.Name),
		Email:       strings.TrimSpace(f.Email),
		Phone:       strings.TrimSpace(f.Phone),
		CompanyName: strings.TrimSpace(f.CompanyName),
		Message:     strings.TrimSpace(f.Message),
	}
	trimmed := Form{Name: in.Name, Email: in.Email, Phone: in.Phone, CompanyName: in.CompanyName, Message: in.Message}
	if err := validation.Struct(trimmed, MsgMissingFields); err != nil {
		return nil, err
	}

	if err := s.store.CreateInquiry(ctx, in); err != nil {
		s.logger.Error("inquiry submission failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	s.logger.Info("inquiry received", zap.String("inquiry_id", in.ID))
	return in, nil
}

// List returns inquiries newest first. "" and "all" disable the status filter.
func (s *Service) List(ctx context.Context, status string) ([]*domain.Inquiry, error) {
	filter, err := parseStatus(status, true)
	if err != nil {
		return nil, err
	}
	return s.store.ListInquiries(ctx, filter)
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	st, err := parseStatus(status, false)
	if err != nil {
		return err
	}
	if err := s.store.UpdateInquiryStatus(ctx, id, st); err != nil {
		return err
	}
	s.logger.Info("inquiry status updated", zap.String("inquiry_id", id), zap.String("status", status))
	return nil
}

func parseStatus(status string, allowAll bool) (domain.InquiryStatus, error) {
	if allowAll && (status == "" || status == "all") {
		return "", nil
	}
	st := domain.InquiryStatus(status)
	if !st.Valid() {
		return "", validation.New(fmt.Sprintf("Unknown inquiry status %q", status), ErrInvalidStatus)
	}
	return st, nil
}

// Message returns the text shown to the visitor for the outcome of Submit.
func Message(err error) string {
	if err == nil {
		return MsgSent
	}
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return MsgSendFailed
}
