package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

// MarketplaceAPI is the remote REST backend.
// Failures are returned as *domain.RequestError.
type MarketplaceAPI interface {
	// Register starts a sign-up and triggers the OTP flow.
	// Returns the backend message on success.
	Register(ctx context.Context, reg domain.Registration) (string, error)

	// VerifyOTP completes a sign-up and returns a new session.
	VerifyOTP(ctx context.Context, v domain.OTPVerification) (*domain.LoginResult, error)

	// ResendOTP asks the backend to send a new OTP to email.
	ResendOTP(ctx context.Context, email string) error

	// Login exchanges credentials for a session.
	Login(ctx context.Context, email, pin string) (*domain.LoginResult, error)

	// GetProfile returns the current user and, for professionals, their record.
	GetProfile(ctx context.Context) (*domain.User, error)

	// UpdateProfile changes basic user fields.
	UpdateProfile(ctx context.Context, update domain.BasicProfileUpdate) error

	// SubmitProfession publishes a new professional profile.
	SubmitProfession(ctx context.Context, sub domain.ProfessionSubmission) error

	// UpdateProfession edits the existing professional profile.
	UpdateProfession(ctx context.Context, sub domain.ProfessionSubmission) error

	// ListProfessionals returns the professionals offering a service.
	ListProfessionals(ctx context.Context, q domain.ProfessionalQuery) ([]domain.ProfessionalRecord, error)

	// UploadAvatar replaces the profile photo.
	UploadAvatar(ctx context.Context, filename string, image io.Reader) error

	// AvatarURL builds the photo URL for a user. It makes no call.
	AvatarURL(userID, cacheBust string) string
}

// ProfessionalCounter is the per-service count primitive used by the directory.
type ProfessionalCounter interface {
	// CountProfessionals returns how many professionals offer serviceName.
	CountProfessionals(ctx context.Context, serviceName string) (int, error)
}
