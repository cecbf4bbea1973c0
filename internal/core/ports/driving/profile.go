package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

// ProfileService manages the current user's profile.
type ProfileService interface {
	// Get fetches the current user.
	Get(ctx context.Context) (*domain.User, error)

	// UpdateBasic changes name, email or mobile number.
	UpdateBasic(ctx context.Context, update domain.BasicProfileUpdate) error

	// UploadAvatar replaces the profile photo.
	UploadAvatar(ctx context.Context, filename string, image io.Reader) error

	// AvatarURL returns a cache-busted photo URL for the current user.
	AvatarURL(ctx context.Context) (string, error)
}
