// Package prostats talks to the ProStats HTTP API, the upstream feed of
// professional League of Legends game stat lines.
package prostats

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riftlabs/fantasy-esports/internal/domain/player"
	basecache "github.com/riftlabs/fantasy-esports/internal/platform/cache"
	"github.com/riftlabs/fantasy-esports/internal/platform/logging"
	"github.com/riftlabs/fantasy-esports/internal/platform/resilience"
	"github.com/riftlabs/fantasy-esports/internal/usecase"
)

const defaultBaseURL = "https://api.prostats.gg/v1"

var apiTokenParamRegex = regexp.MustCompile(`api_token=[^&\s"']+`)
var errProStatsTransient = crerr.New("prostats transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	RequestDelay   time.Duration
	CacheTTL       time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	requestDelay   time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	responses      *basecache.Store
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	var responses *basecache.Store
	if cfg.CacheTTL > 0 {
		responses = basecache.NewStore(cfg.CacheTTL)
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		requestDelay:   cfg.RequestDelay,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		responses:      responses,
	}
}

var _ usecase.StatsProvider = (*Client)(nil)

type gameLineEnvelope struct {
	Data []gameLinePayload `json:"data"`
}

type gameLinePayload struct {
	PlayerID    string `json:"player_id"`
	Week        int    `json:"week"`
	Kills       int    `json:"kills"`
	Deaths      int    `json:"deaths"`
	Assists     int    `json:"assists"`
	CreepScore  int    `json:"creep_score"`
	VisionScore int    `json:"vision_score"`
	DragonKills int    `json:"dragon_kills"`
	BaronKills  int    `json:"baron_kills"`
	TowerKills  int    `json:"tower_kills"`
}

// FetchGameLines returns stat lines for one pro league, optionally limited to
// weeks at or after sinceWeek. Responses are cached per league+week window
// when a cache TTL is configured.
func (c *Client) FetchGameLines(ctx context.Context, proLeague string, sinceWeek int) ([]usecase.ExternalGameLine, error) {
	code := strings.ToUpper(strings.TrimSpace(proLeague))
	if code == "" {
		return nil, fmt.Errorf("pro league code is required")
	}

	path := "/leagues/" + url.PathEscape(code) + "/gamelines"
	query := map[string]string{}
	if sinceWeek > 0 {
		query["since_week"] = strconv.Itoa(sinceWeek)
	}

	if c.responses == nil {
		return c.fetchGameLines(ctx, path, query)
	}

	cacheKey := code + ":" + strconv.Itoa(sinceWeek)
	out, err := c.responses.GetOrLoad(ctx, cacheKey, func(ctx context.Context) (any, error) {
		return c.fetchGameLines(ctx, path, query)
	})
	if err != nil {
		return nil, err
	}

	lines, ok := out.([]usecase.ExternalGameLine)
	if !ok {
		return nil, fmt.Errorf("unexpected cached payload type %T", out)
	}
	return append([]usecase.ExternalGameLine(nil), lines...), nil
}

func (c *Client) fetchGameLines(ctx context.Context, path string, query map[string]string) ([]usecase.ExternalGameLine, error) {
	var envelope gameLineEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch game lines: %w", err)
	}

	lines := make([]usecase.ExternalGameLine, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		playerID := strings.TrimSpace(item.PlayerID)
		if playerID == "" || item.Week <= 0 {
			continue
		}
		lines = append(lines, mapGameLine(playerID, item))
	}
	return lines, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "prostats circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: stats provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	values.Set("api_token", c.token)

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isProStatsCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	if c.requestDelay > 0 {
		if err := sleepCtx(ctx, c.requestDelay); err != nil {
			return nil, err
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errProStatsTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errProStatsTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errProStatsTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		if err := sleepCtx(ctx, time.Duration(attempt+1)*time.Second); err != nil {
			return nil, err
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "prostats request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func mapGameLine(playerID string, item gameLinePayload) usecase.ExternalGameLine {
	return usecase.ExternalGameLine{
		PlayerID: playerID,
		Week:     item.Week,
		Stats: player.GameStats{
			Kills:       item.Kills,
			Deaths:      item.Deaths,
			Assists:     item.Assists,
			CreepScore:  item.CreepScore,
			VisionScore: item.VisionScore,
			DragonKills: item.DragonKills,
			BaronKills:  item.BaronKills,
			TowerKills:  item.TowerKills,
		},
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	value = apiTokenParamRegex.ReplaceAllString(value, "api_token=REDACTED")
	return value
}

func isProStatsCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errProStatsTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Has("api_token") {
		query.Set("api_token", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
