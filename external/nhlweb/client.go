package nhlweb

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/slapshotlabs/scoresync/internal/platform/logging"
	"github.com/slapshotlabs/scoresync/internal/platform/resilience"
	"github.com/slapshotlabs/scoresync/internal/usecase"
)

const (
	defaultBaseURL  = "https://api-web.nhle.com"
	defaultTimeout  = 30 * time.Second
	scoreDateLayout = "2006-01-02"
)

var errNHLWebTransient = crerr.New("nhlweb transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the public NHL web API. Each fetch issues exactly one
// request: the daily sync owns its own cadence, so a failed day surfaces
// immediately instead of being retried here.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
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
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// ScoreURL returns the request URL for one day without fetching it, so the
// caller can record it on audit rows even when the fetch never happens.
func (c *Client) ScoreURL(date time.Time) string {
	return c.baseURL + "/v1/score/" + date.Format(scoreDateLayout)
}

func (c *Client) FetchScoresByDate(ctx context.Context, date time.Time) (usecase.ExternalScoreDay, error) {
	if date.IsZero() {
		return usecase.ExternalScoreDay{}, fmt.Errorf("date is required")
	}

	var payload ScoreResponse
	if err := c.doJSON(ctx, c.ScoreURL(date), &payload); err != nil {
		return usecase.ExternalScoreDay{}, fmt.Errorf("fetch score date=%s: %w", date.Format(scoreDateLayout), err)
	}

	return mapScoreResponse(payload), nil
}

func (c *Client) doJSON(ctx context.Context, fullURL string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "nhlweb circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: score provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errNHLWebTransient) {
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
		return fmt.Errorf("%w: decode score payload: %v", usecase.ErrProviderInvalidResponse, err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if stderrors.Is(err, context.Canceled) {
			return nil, err
		}
		classified := classifyTransportError(err)
		c.logger.WarnContext(ctx, "nhlweb request failed", "url", fullURL, "error", err)
		return nil, crerr.Mark(fmt.Errorf("%w: send request: %v", classified, err), errNHLWebTransient)
	}

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
	_ = resp.Body.Close()
	if readErr != nil {
		c.logger.WarnContext(ctx, "nhlweb response read failed", "url", fullURL, "error", readErr)
		return nil, crerr.Mark(fmt.Errorf("%w: read response body: %v", usecase.ErrProviderNetwork, readErr), errNHLWebTransient)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := fmt.Errorf("%w: provider status=%d body=%s", usecase.ErrProviderInvalidResponse, resp.StatusCode, abbreviateBody(raw))
		c.logger.WarnContext(ctx, "nhlweb request rejected", "url", fullURL, "status", resp.StatusCode)
		if isTransientStatus(resp.StatusCode) {
			return nil, crerr.Mark(statusErr, errNHLWebTransient)
		}
		return nil, statusErr
	}

	return raw, nil
}

func classifyTransportError(err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return usecase.ErrProviderTimeout
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return usecase.ErrProviderTimeout
	}
	return usecase.ErrProviderNetwork
}

func isTransientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
