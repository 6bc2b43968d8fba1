package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/dealyield/internal/config"
	"github.com/mamadbah2/dealyield/internal/domain/models"
)

// ErrUnauthorized is returned when the session service rejects the token.
var ErrUnauthorized = errors.New("unauthorized")

// Client resolves bearer tokens into platform sessions.
type Client interface {
	CurrentSession(ctx context.Context, token string) (models.Session, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a session client using the provided configuration values.
func NewClient(cfg config.AuthConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout)

	return &APIClient{httpClient: restyClient}
}

// apiError represents the session service error payload.
type apiError struct {
	Error string `json:"error"`
}

// CurrentSession asks the session service who owns token.
func (c *APIClient) CurrentSession(ctx context.Context, token string) (models.Session, error) {
	if token == "" {
		return models.Session{}, ErrUnauthorized
	}

	result := new(models.Session)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(result).
		SetError(apiErr).
		Get("/sessions/current")
	if err != nil {
		return models.Session{}, fmt.Errorf("resolve session: %w", err)
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return models.Session{}, ErrUnauthorized
	case code >= http.StatusBadRequest:
		return models.Session{}, fmt.Errorf("auth api error: code=%d, message=%s", code, apiErr.Error)
	}

	if result.UserID == "" || result.CompanyID == "" {
		return models.Session{}, fmt.Errorf("%w: incomplete session", ErrUnauthorized)
	}

	return *result, nil
}
