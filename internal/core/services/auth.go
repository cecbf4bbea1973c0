package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driving"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// AuthService manages registration, login and logout.
type AuthService struct {
	api      driven.MarketplaceAPI
	sessions *SessionManager
	metrics  driven.MetricsRecorder
}

// NewAuthService creates a new auth service.
func NewAuthService(api driven.MarketplaceAPI, sessions *SessionManager, metrics driven.MetricsRecorder) *AuthService {
	return &AuthService{
		api:      api,
		sessions: sessions,
		metrics:  metricsOrNop(metrics),
	}
}

// Register starts a sign-up. Field problems are reported locally.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (string, error) {
	if errs := validateRegistration(reg); len(errs) > 0 {
		return "", &domain.ValidationError{Fields: errs}
	}
	msg, err := s.api.Register(ctx, reg)
	s.metrics.ObserveRequest("register", err)
	if err != nil {
		return "", err
	}
	return msg, nil
}

// VerifyOTP completes a sign-up and starts a session.
func (s *AuthService) VerifyOTP(ctx context.Context, v domain.OTPVerification) (domain.Session, error) {
	if strings.TrimSpace(v.OTP) == "" {
		return domain.Session{}, &domain.ValidationError{Fields: domain.FieldErrors{"otp": "OTP is required"}}
	}
	result, err := s.api.VerifyOTP(ctx, v)
	s.metrics.ObserveRequest("verify_otp", err)
	if err != nil {
		return domain.Session{}, err
	}
	return s.sessions.Start(ctx, *result)
}

// ResendOTP requests a new OTP.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	err := s.api.ResendOTP(ctx, email)
	s.metrics.ObserveRequest("resend_otp", err)
	return err
}

// Login starts a session.
func (s *AuthService) Login(ctx context.Context, email, pin string) (domain.Session, error) {
	errs := domain.FieldErrors{}
	if strings.TrimSpace(email) == "" {
		errs[domain.FieldEmail] = msgEmailRequired
	}
	if pin == "" {
		errs["pin"] = "PIN is required"
	}
	if len(errs) > 0 {
		return domain.Session{}, &domain.ValidationError{Fields: errs}
	}

	result, err := s.api.Login(ctx, email, pin)
	s.metrics.ObserveRequest("login", err)
	if err != nil {
		return domain.Session{}, err
	}
	return s.sessions.Start(ctx, *result)
}

// Logout clears the session.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.End(ctx)
}

// Current returns the cached session.
func (s *AuthService) Current(ctx context.Context) (domain.Session, error) {
	return s.sessions.Current(ctx)
}

func validateRegistration(reg domain.Registration) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if blank(reg.Name) {
		errs[domain.FieldName] = msgNameRequired
	}
	switch {
	case blank(reg.Email):
		errs[domain.FieldEmail] = msgEmailRequired
	case !emailPattern.MatchString(reg.Email):
		errs[domain.FieldEmail] = msgEmailInvalid
	}
	switch {
	case blank(reg.MobileNo):
		errs[domain.FieldMobileNo] = msgMobileRequired
	case !mobilePattern.MatchString(reg.MobileNo):
		errs[domain.FieldMobileNo] = msgMobileInvalid
	}
	switch {
	case reg.Pin == "":
		errs["pin"] = "PIN is required"
	case reg.Pin != reg.ConfirmPin:
		errs["confirmPin"] = "PINs do not match"
	}
	return errs
}
