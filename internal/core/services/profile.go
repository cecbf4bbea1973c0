package services

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driving"
)

// Ensure ProfileService implements the interface.
var _ driving.ProfileService = (*ProfileService)(nil)

// ProfileService manages the current user's profile.
type ProfileService struct {
	api      driven.MarketplaceAPI
	sessions *SessionManager
	metrics  driven.MetricsRecorder
}

// NewProfileService creates a new profile service.
func NewProfileService(api driven.MarketplaceAPI, sessions *SessionManager, metrics driven.MetricsRecorder) *ProfileService {
	return &ProfileService{
		api:      api,
		sessions: sessions,
		metrics:  metricsOrNop(metrics),
	}
}

// Get fetches the current user.
func (s *ProfileService) Get(ctx context.Context) (*domain.User, error) {
	user, err := s.api.GetProfile(ctx)
	s.metrics.ObserveRequest("get_profile", err)
	if err != nil {
		return nil, s.sessions.Guard(ctx, err)
	}
	return user, nil
}

// UpdateBasic changes name, email or mobile number.
func (s *ProfileService) UpdateBasic(ctx context.Context, update domain.BasicProfileUpdate) error {
	errs := domain.FieldErrors{}
	if update.Email != "" && !emailPattern.MatchString(update.Email) {
		errs[domain.FieldEmail] = msgEmailInvalid
	}
	if update.MobileNo != "" && !mobilePattern.MatchString(update.MobileNo) {
		errs[domain.FieldMobileNo] = msgMobileInvalid
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Fields: errs}
	}
	if update == (domain.BasicProfileUpdate{}) {
		return fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}

	err := s.api.UpdateProfile(ctx, update)
	s.metrics.ObserveRequest("update_profile", err)
	return s.sessions.Guard(ctx, err)
}

// UploadAvatar replaces the profile photo.
func (s *ProfileService) UploadAvatar(ctx context.Context, filename string, image io.Reader) error {
	if filename == "" || image == nil {
		return fmt.Errorf("%w: avatar image is required", domain.ErrInvalidInput)
	}
	err := s.api.UploadAvatar(ctx, filename, image)
	s.metrics.ObserveRequest("upload_avatar", err)
	return s.sessions.Guard(ctx, err)
}

// AvatarURL returns the photo URL of the current user with a fresh
// cache-busting token, so a replaced photo is never served from cache.
func (s *ProfileService) AvatarURL(ctx context.Context) (string, error) {
	session, err := s.sessions.Current(ctx)
	if err != nil {
		return "", err
	}
	return s.api.AvatarURL(session.UserID, uuid.NewString()), nil
}
