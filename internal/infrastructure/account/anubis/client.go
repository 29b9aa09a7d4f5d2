// Package anubis verifies access tokens against the Anubis account
// service. Verified principals are cached briefly so hot endpoints do
// not introspect the same token on every request.
package anubis

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riftlabs/fantasy-esports/internal/domain/user"
	"github.com/riftlabs/fantasy-esports/internal/platform/resilience"
	"github.com/riftlabs/fantasy-esports/internal/usecase"
)

var errAnubisTransient = errors.New("anubis transient failure")

type Client struct {
	httpClient    *http.Client
	introspectURL string
	cache         *principalCache
	breaker       *resilience.CircuitBreaker
	logger        *slog.Logger
}

type ClientConfig struct {
	BaseURL        string
	IntrospectPath string
	CacheTTL       time.Duration
	CacheEntries   int
	Breaker        resilience.CircuitBreakerConfig
}

func NewClient(httpClient *http.Client, cfg ClientConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.CacheEntries < 1 {
		cfg.CacheEntries = 10_000
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.Breaker)

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(cfg.BaseURL, cfg.IntrospectPath),
		cache:         newPrincipalCache(cfg.CacheTTL, cfg.CacheEntries),
		breaker:       resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		logger:        logger,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	cacheKey := hashToken(token)
	if principal, ok := c.cache.Get(cacheKey); ok {
		return principal, nil
	}

	if err := c.breaker.Allow(); err != nil {
		return user.Principal{}, fmt.Errorf("%w: account service circuit open", usecase.ErrDependencyUnavailable)
	}

	principal, err := c.introspect(ctx, token)
	if err != nil {
		if errors.Is(err, errAnubisTransient) {
			c.breaker.RecordFailure()
			return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		c.breaker.RecordSuccess()
		return user.Principal{}, err
	}

	c.breaker.RecordSuccess()
	c.cache.Set(cacheKey, principal)
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, fmt.Errorf("create introspect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: request introspection: %v", errAnubisTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: read introspect response: %v", errAnubisTransient, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "anubis introspection non-200", "status_code", resp.StatusCode)
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			return user.Principal{}, fmt.Errorf("%w: introspection status %d", errAnubisTransient, resp.StatusCode)
		}
		return user.Principal{}, fmt.Errorf("anubis introspection failed with status %d", resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("unmarshal introspect response: %w", err)
	}

	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, fmt.Errorf("invalid introspect response: user_id is empty")
	}

	return user.Principal{
		UserID: decoded.UserID,
		Email:  decoded.Email,
	}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return baseURL + path
}
