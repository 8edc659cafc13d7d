package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"siege-tracker/internal/api"
	"siege-tracker/internal/constants"
	"siege-tracker/internal/domain"
	"siege-tracker/internal/service"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBodyBytes = 1 << 20

const (
	msgUnsupportedPlatform = "Unsupported platform. Use pc, psn or xbox in the URL."
	msgUpstream            = "Failed to fetch player stats from upstream API."
	msgInternal            = "Internal server error."
	msgEmptyPlayers        = "Body must contain a non-empty players array."
	msgTooManyPlayers      = "Maximum 10 players per match request."
)

// Suggester answers name searches from the lookup history.
type Suggester interface {
	SearchSuggestions(ctx context.Context, query string) ([]domain.Lookup, error)
}

// RateLimitReporter exposes the last rate limit seen from the stats API.
type RateLimitReporter interface {
	GetRateLimitInfo() api.RateLimitInfo
}

type TrackerServer struct {
	playerSvc *service.PlayerService
	matchSvc  *service.MatchService
	suggester Suggester
	limits    RateLimitReporter
	logger    zerolog.Logger
}

func NewTrackerServer(
	playerSvc *service.PlayerService,
	matchSvc *service.MatchService,
	suggester Suggester,
	limits RateLimitReporter,
	logger zerolog.Logger,
) *TrackerServer {
	return &TrackerServer{
		playerSvc: playerSvc,
		matchSvc:  matchSvc,
		suggester: suggester,
		limits:    limits,
		logger:    logger,
	}
}

// Routes mounts the HTTP API on r.
func (s *TrackerServer) Routes(r *mux.Router) {
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/hello", s.Hello).Methods(http.MethodGet)
	apiRouter.HandleFunc("/player/{platform}/{name}", s.GetPlayer).Methods(http.MethodGet)
	apiRouter.HandleFunc("/match", s.ResolveMatch).Methods(http.MethodPost)
	apiRouter.HandleFunc("/search", s.SearchSuggestions).Methods(http.MethodGet)
}

type helloResponse struct {
	Message  string             `json:"message"`
	Upstream *api.RateLimitInfo `json:"upstream,omitempty"`
}

func (s *TrackerServer) Hello(w http.ResponseWriter, r *http.Request) {
	resp := helloResponse{Message: "backend is alive!"}
	if s.limits != nil {
		info := s.limits.GetRateLimitInfo()
		resp.Upstream = &info
	}
	s.respondJSON(w, r, http.StatusOK, resp)
}

func (s *TrackerServer) GetPlayer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	platform, name := vars["platform"], vars["name"]

	start := time.Now()
	result, err := s.playerSvc.GetPlayer(r.Context(), platform, name)
	if err != nil {
		switch domain.KindOf(err) {
		case domain.KindUnsupportedPlatform:
			s.respondError(w, r, http.StatusBadRequest, msgUnsupportedPlatform, 0, err)
		case domain.KindInvalidInput:
			s.respondError(w, r, http.StatusBadRequest, err.Error(), 0, err)
		case domain.KindUpstream:
			s.respondError(w, r, http.StatusBadGateway, msgUpstream, upstreamStatus(err), err)
		default:
			s.respondError(w, r, http.StatusInternalServerError, msgInternal, 0, err)
		}
		return
	}

	s.requestLogger(r).Info().
		Str("name", name).
		Str("platform", platform).
		Bool("ranked", result.Ranked != nil).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("player resolved")

	s.respondJSON(w, r, http.StatusOK, result)
}

func (s *TrackerServer) ResolveMatch(w http.ResponseWriter, r *http.Request) {
	var req domain.MatchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, msgEmptyPlayers, 0, err)
		return
	}
	if len(req.Players) == 0 {
		s.respondError(w, r, http.StatusBadRequest, msgEmptyPlayers, 0, nil)
		return
	}
	if len(req.Players) > constants.MaxMatchPlayers {
		s.respondError(w, r, http.StatusBadRequest, msgTooManyPlayers, 0, nil)
		return
	}

	result, err := s.matchSvc.Resolve(r.Context(), req.Players)
	if err != nil {
		if domain.KindOf(err) == domain.KindInvalidInput {
			s.respondError(w, r, http.StatusBadRequest, err.Error(), 0, err)
			return
		}
		s.respondError(w, r, http.StatusInternalServerError, msgInternal, 0, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, result)
}

type suggestionsResponse struct {
	Suggestions []domain.Lookup `json:"suggestions"`
}

func (s *TrackerServer) SearchSuggestions(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	suggestions, err := s.suggester.SearchSuggestions(r.Context(), query)
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, msgInternal, 0, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, suggestionsResponse{Suggestions: suggestions})
}

// upstreamStatus is the status the stats API answered with, or 502 when it
// never answered (transport failure, timeout, unreadable body).
func upstreamStatus(err error) int {
	if status := domain.UpstreamStatus(err); status != 0 {
		return status
	}
	return http.StatusBadGateway
}

type errorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status,omitempty"`
}

func (s *TrackerServer) respondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.requestLogger(r).Error().Err(err).Msg("failed to encode response")
	}
}

func (s *TrackerServer) respondError(w http.ResponseWriter, r *http.Request, status int, message string, detailStatus int, err error) {
	event := s.requestLogger(r).Warn()
	if status >= http.StatusInternalServerError {
		event = s.requestLogger(r).Error()
	}
	event.Err(err).Int("status", status).Str("path", r.URL.Path).Msg(message)

	s.respondJSON(w, r, status, errorResponse{Error: message, Status: detailStatus})
}

// requestLogger prefers the request-scoped logger set by the RequestID middleware.
func (s *TrackerServer) requestLogger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.logger
}
