package rest

import (
	"context"
	"net/http"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

type resendRequest struct {
	Email string `json:"email"`
}

type loginRequest struct {
	Email string `json:"email"`
	Pin   string `json:"pin"`
}

// Register starts a sign-up and triggers the OTP flow.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (string, error) {
	return c.do(ctx, request{
		op:     "register",
		method: http.MethodPost,
		path:   "/auth/register",
		body:   reg,
	}, nil)
}

// VerifyOTP completes a sign-up.
func (c *Client) VerifyOTP(ctx context.Context, v domain.OTPVerification) (*domain.LoginResult, error) {
	var result domain.LoginResult
	if _, err := c.do(ctx, request{
		op:     "verify otp",
		method: http.MethodPost,
		path:   "/auth/verify-otp",
		body:   v,
	}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ResendOTP asks the backend to send a new OTP.
func (c *Client) ResendOTP(ctx context.Context, email string) error {
	_, err := c.do(ctx, request{
		op:     "resend otp",
		method: http.MethodPost,
		path:   "/auth/resend-otp",
		body:   resendRequest{Email: email},
	}, nil)
	return err
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, pin string) (*domain.LoginResult, error) {
	var result domain.LoginResult
	if _, err := c.do(ctx, request{
		op:     "login",
		method: http.MethodPost,
		path:   "/auth/login",
		body:   loginRequest{Email: email, Pin: pin},
	}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
