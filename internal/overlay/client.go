package overlay

import (
	"context"
	"fmt"
	"time"

	"siege-tracker/internal/domain"
	"siege-tracker/internal/names"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BackendClient talks to the tracker's HTTP API.
type BackendClient struct {
	baseURL string
	timeout time.Duration
	client  *fasthttp.Client
	logger  zerolog.Logger
}

func NewBackendClient(cfg *Config, logger zerolog.Logger) *BackendClient {
	return &BackendClient{
		baseURL: cfg.BackendURL,
		timeout: cfg.Timeout,
		client: &fasthttp.Client{
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// ResolveMatch posts the slotted names to /api/match with one platform for
// everybody.
func (c *BackendClient) ResolveMatch(ctx context.Context, slots []names.Slot, platform string) (*domain.MatchResult, error) {
	players := make([]domain.PlayerRequest, len(slots))
	for i, s := range slots {
		team := s.Team
		players[i] = domain.PlayerRequest{Name: s.Name, Platform: platform, Team: &team}
	}

	body, err := json.Marshal(domain.MatchRequest{Players: players})
	if err != nil {
		return nil, fmt.Errorf("failed to encode match request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/api/match")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	c.logger.Debug().Int("players", len(players)).Str("url", req.URI().String()).Msg("posting match")

	deadline, _ := ctx.Deadline()
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}

	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(resp.Body(), &apiErr); err != nil || apiErr.Error == "" {
			return nil, fmt.Errorf("backend returned status %d", status)
		}
		return nil, fmt.Errorf("backend returned status %d: %s", status, apiErr.Error)
	}

	var result domain.MatchResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode match response: %w", err)
	}
	return &result, nil
}
