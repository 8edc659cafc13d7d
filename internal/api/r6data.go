package api

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"siege-tracker/internal/config"
	"siege-tracker/internal/domain"
	"siege-tracker/internal/payload"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const userAgent = "siege-tracker/1.0"

type R6DataClient struct {
	baseURL     string
	timeout     time.Duration
	client      *fasthttp.Client
	logger      zerolog.Logger
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

type RateLimitInfo struct {
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`

	// seconds until reset
	Reset int `json:"reset"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewR6DataClient(cfg *config.Config, logger zerolog.Logger) *R6DataClient {
	return &R6DataClient{
		baseURL: cfg.R6DataBaseURL,
		timeout: cfg.UpstreamTimeout,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         cfg.UpstreamTimeout,
			WriteTimeout:        cfg.UpstreamTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger,
	}
}

func (c *R6DataClient) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *R6DataClient) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	seen := false
	if limit := string(resp.Header.Peek("X-Ratelimit-Limit")); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			c.rateLimit.Limit = val
			seen = true
		}
	}
	if remaining := string(resp.Header.Peek("X-Ratelimit-Remaining")); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			c.rateLimit.Remaining = val
			seen = true
		}
	}
	if reset := string(resp.Header.Peek("X-Ratelimit-Reset")); reset != "" {
		if val, err := strconv.Atoi(reset); err == nil {
			c.rateLimit.Reset = val
			seen = true
		}
	}
	if seen {
		c.rateLimit.UpdatedAt = time.Now()
	}
}

// GetStats fetches the `type=stats` payload holding every board profile of the account.
func (c *R6DataClient) GetStats(ctx context.Context, name string, platform domain.ResolvedPlatform) (payload.Node, error) {
	return c.doRequest(ctx, []queryArg{
		{"type", "stats"},
		{"nameOnPlatform", name},
		{"platformType", platform.PlatformType},
		{"platform_families", platform.PlatformFamily},
	})
}

// GetSeasonalStats fetches the `type=seasonalStats` payload with the rank history.
func (c *R6DataClient) GetSeasonalStats(ctx context.Context, name string, platform domain.ResolvedPlatform) (payload.Node, error) {
	return c.doRequest(ctx, []queryArg{
		{"type", "seasonalStats"},
		{"nameOnPlatform", name},
		{"platformType", platform.PlatformType},
	})
}

type queryArg struct {
	key, value string
}

// doRequest performs one GET against the stats endpoint. Every failure is a
// KindUpstream *domain.Error; Status is set only when the upstream answered.
func (c *R6DataClient) doRequest(ctx context.Context, args []queryArg) (payload.Node, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL)
	query := req.URI().QueryArgs()
	for _, a := range args {
		query.Add(a.key, a.value)
	}
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.Header.SetUserAgent(userAgent)

	uri := req.URI().String()
	c.logger.Debug().Str("url", uri).Msg("requesting r6data")

	deadline, _ := ctx.Deadline()
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		c.logger.Warn().Err(err).Str("url", uri).Msg("r6data request failed")
		return payload.Node{}, domain.Upstream(0, err)
	}

	c.updateRateLimit(resp)

	status := resp.StatusCode()
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		c.logger.Warn().
			Int("status", status).
			Str("url", uri).
			Str("body", truncate(resp.Body(), 256)).
			Msg("r6data returned non-success status")
		return payload.Node{}, domain.Upstream(status, fmt.Errorf("API error: %d", status))
	}

	node, err := payload.Decode(resp.Body())
	if err != nil {
		return payload.Node{}, domain.Upstream(0, err)
	}
	return node, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
