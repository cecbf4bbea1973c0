package rest

import (
	"context"
	"net/http"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

// SubmitProfession publishes a new professional profile.
func (c *Client) SubmitProfession(ctx context.Context, sub domain.ProfessionSubmission) error {
	_, err := c.do(ctx, request{
		op:     "submit profession",
		method: http.MethodPost,
		path:   "/professions",
		body:   sub,
		auth:   true,
	}, nil)
	return err
}

// UpdateProfession edits the current user's professional profile.
func (c *Client) UpdateProfession(ctx context.Context, sub domain.ProfessionSubmission) error {
	_, err := c.do(ctx, request{
		op:     "update profession",
		method: http.MethodPut,
		path:   "/professions/me",
		body:   sub,
		auth:   true,
	}, nil)
	return err
}

// ListProfessionals returns the professionals offering a service.
// Browsing does not require a session.
func (c *Client) ListProfessionals(ctx context.Context, q domain.ProfessionalQuery) ([]domain.ProfessionalRecord, error) {
	records := []domain.ProfessionalRecord{}
	if _, err := c.do(ctx, request{
		op:     "list professionals",
		method: http.MethodGet,
		path:   "/professionals",
		query:  q,
	}, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CountProfessionals returns how many professionals offer serviceName.
func (c *Client) CountProfessionals(ctx context.Context, serviceName string) (int, error) {
	records, err := c.ListProfessionals(ctx, domain.ProfessionalQuery{ServiceName: serviceName})
	if err != nil {
		return 0, err
	}
	return len(records), nil
}
