package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

// avatarField is the multipart field carrying the image.
const avatarField = "avatar"

// GetProfile returns the current user.
func (c *Client) GetProfile(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if _, err := c.do(ctx, request{
		op:     "get profile",
		method: http.MethodGet,
		path:   "/users/me",
		auth:   true,
	}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes basic user fields.
func (c *Client) UpdateProfile(ctx context.Context, update domain.BasicProfileUpdate) error {
	_, err := c.do(ctx, request{
		op:     "update profile",
		method: http.MethodPatch,
		path:   "/users/me",
		body:   update,
		auth:   true,
	}, nil)
	return err
}

// UploadAvatar replaces the profile photo.
func (c *Client) UploadAvatar(ctx context.Context, filename string, image io.Reader) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(avatarField, filename)
	if err != nil {
		return fmt.Errorf("upload avatar: create form file: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return fmt.Errorf("upload avatar: read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("upload avatar: close form: %w", err)
	}

	_, err = c.do(ctx, request{
		op:          "upload avatar",
		method:      http.MethodPost,
		path:        "/users/me/avatar",
		raw:         &buf,
		contentType: mw.FormDataContentType(),
		auth:        true,
	}, nil)
	return err
}

// AvatarURL builds the photo URL of a user. cacheBust is appended so a
// replaced photo is fetched again.
func (c *Client) AvatarURL(userID, cacheBust string) string {
	u := c.baseURL + "/users/" + url.PathEscape(userID) + "/avatar"
	if cacheBust != "" {
		u += "?" + url.Values{"v": {cacheBust}}.Encode()
	}
	return u
}
