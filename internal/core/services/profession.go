package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driving"
	"github.com/custodia-labs/karigar-cli/internal/logger"
)

// Ensure ProfessionService implements the interface.
var _ driving.ProfessionService = (*ProfessionService)(nil)

// ProfessionService opens and submits profession registration and edit sessions.
type ProfessionService struct {
	api      driven.MarketplaceAPI
	taxonomy *domain.Taxonomy
	sessions *SessionManager
	metrics  driven.MetricsRecorder
}

// NewProfessionService creates a new profession service.
func NewProfessionService(
	api driven.MarketplaceAPI,
	taxonomy *domain.Taxonomy,
	sessions *SessionManager,
	metrics driven.MetricsRecorder,
) *ProfessionService {
	return &ProfessionService{
		api:      api,
		taxonomy: taxonomy,
		sessions: sessions,
		metrics:  metricsOrNop(metrics),
	}
}

// Begin opens a form session for the current user. Professionals get an
// edit session populated from their record; everyone else a blank one
// pre-filled with their account details.
func (s *ProfessionService) Begin(ctx context.Context) (driving.ProfessionFormSession, error) {
	user, err := s.api.GetProfile(ctx)
	s.metrics.ObserveRequest("get_profile", err)
	if err != nil {
		return nil, s.sessions.Guard(ctx, err)
	}

	if user.IsProfession && user.Profession != nil {
		return NewFormSession(s.taxonomy, user.Profession), nil
	}

	session := NewFormSession(s.taxonomy, nil)
	session.form.Name = user.Name
	session.form.Email = user.Email
	session.form.MobileNo = user.MobileNo
	return session, nil
}

// NewSession opens a form session without contacting the backend.
func (s *ProfessionService) NewSession(existing *domain.ProfessionalRecord) driving.ProfessionFormSession {
	return NewFormSession(s.taxonomy, existing)
}

// Submit validates and sends the form. Invalid forms never reach the network.
func (s *ProfessionService) Submit(ctx context.Context, session driving.ProfessionFormSession) error {
	if session == nil {
		return fmt.Errorf("%w: no form session", domain.ErrInvalidInput)
	}
	if errs := session.Validate(); len(errs) > 0 {
		return &domain.ValidationError{Fields: errs}
	}

	sub := domain.NewProfessionSubmission(session.Form())

	var err error
	op := "submit_profession"
	if session.Editing() {
		op = "update_profession"
		err = s.api.UpdateProfession(ctx, sub)
	} else {
		err = s.api.SubmitProfession(ctx, sub)
	}
	s.metrics.ObserveRequest(op, err)
	if err != nil {
		return s.sessions.Guard(ctx, err)
	}

	logger.Info("%s: %s / %s", op, sub.ServiceCategory, sub.Designation)
	if !session.Editing() {
		if err := s.sessions.SetProfession(ctx, true); err != nil {
			logger.Warn("failed to mark session as professional: %v", err)
		}
	}
	return nil
}
