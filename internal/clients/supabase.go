// Package clients holds thin wrappers around external services, each guarded
// by a circuit breaker.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/wandile0157/smartdoc-ai-backend/internal/config"
)

var (
	// ErrUnauthorized signals an invalid or expired access token.
	ErrUnauthorized = errors.New("invalid authentication credentials")

	// ErrCircuitOpen signals the breaker has tripped; callers should treat
	// the dependency as down without retrying immediately.
	ErrCircuitOpen = errors.New("supabase circuit open")
)

// User is the subset of the Supabase auth user consumed by this service.
type User struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	Metadata  map[string]any `json:"user_metadata"`
	CreatedAt string         `json:"created_at"`
}

// Supabase talks to a Supabase project over its REST surface: the auth
// endpoint for token verification and PostgREST for table access. All calls
// go through a shared circuit breaker.
type Supabase struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
}

// NewSupabase builds a client from config. Both URL and key are required;
// callers decide what an unconfigured project means for them.
func NewSupabase(cfg config.SupabaseConfig, cb *gobreaker.CircuitBreaker) (*Supabase, error) {
	rawURL := strings.TrimSpace(cfg.URL)
	key := strings.TrimSpace(cfg.Key)
	if rawURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}
	if key == "" {
		return nil, fmt.Errorf("SUPABASE_KEY is required")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing SUPABASE_URL: %w", err)
	}

	return &Supabase{
		baseURL:    u,
		apiKey:     key,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cb:         cb,
	}, nil
}

// VerifyToken resolves a user access token against the Supabase auth
// endpoint. Returns ErrUnauthorized for a rejected token.
func (s *Supabase) VerifyToken(ctx context.Context, token string) (*User, error) {
	out, err := s.execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint("/auth/v1/user"), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("apikey", s.apiKey)

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("verifying token: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, ErrUnauthorized
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("auth endpoint returned %d", resp.StatusCode)
		}

		var user User
		if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
			return nil, fmt.Errorf("decoding auth response: %w", err)
		}
		return &user, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*User), nil
}

// Insert posts one row into table via PostgREST and returns the inserted
// representation.
func (s *Supabase) Insert(ctx context.Context, table string, row any) ([]byte, error) {
	out, err := s.execute(func() (any, error) {
		body, err := json.Marshal(row)
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			s.endpoint("/rest/v1/"+table), bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		s.setRESTHeaders(req)
		req.Header.Set("Prefer", "return=representation")

		return s.doJSON(req, http.StatusCreated)
	})
	if err != nil {
		return nil, err
	}
	return out.([]byte), nil
}

// Select queries table via PostgREST with the given query parameters.
func (s *Supabase) Select(ctx context.Context, table string, query url.Values) ([]byte, error) {
	out, err := s.execute(func() (any, error) {
		u := s.endpoint("/rest/v1/" + table)
		if len(query) > 0 {
			u += "?" + query.Encode()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		s.setRESTHeaders(req)

		return s.doJSON(req, http.StatusOK)
	})
	if err != nil {
		return nil, err
	}
	return out.([]byte), nil
}

// execute routes a call through the circuit breaker, mapping the breaker's
// open-state error to ErrCircuitOpen. ErrUnauthorized does not count as a
// dependency failure; an invalid token says nothing about Supabase's health.
func (s *Supabase) execute(fn func() (any, error)) (any, error) {
	out, err := s.cb.Execute(func() (any, error) {
		v, err := fn()
		if errors.Is(err, ErrUnauthorized) {
			return authRejection{}, nil
		}
		return v, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrCircuitOpen
		}
		return nil, err
	}
	if _, rejected := out.(authRejection); rejected {
		return nil, ErrUnauthorized
	}
	return out, nil
}

// authRejection smuggles a token rejection through the breaker as a success.
type authRejection struct{}

func (s *Supabase) endpoint(path string) string {
	u := *s.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	return u.String()
}

func (s *Supabase) setRESTHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
}

func (s *Supabase) doJSON(req *http.Request, wantStatus int) ([]byte, error) {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != wantStatus {
		return nil, fmt.Errorf("%s %s returned %d: %s",
			req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
