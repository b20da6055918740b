package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/KirkDiggler/similarium/internal/models"
	"github.com/KirkDiggler/similarium/internal/notifier"
	"github.com/KirkDiggler/similarium/internal/services/game"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// maskedWord stands in for the secret while its game is running
const maskedWord = "?????"

var (
	// ErrNilGameService is returned when no game service is given
	ErrNilGameService = errors.New("game service cannot be nil")

	errBadBody = errors.New("request body must be JSON")
)

// Config holds configuration for the HTTP handler
type Config struct {
	// GameService runs the game
	GameService game.Service

	// Sink receives the events of every operation; events are dropped when nil
	Sink notifier.Sink

	// SummaryLimit caps the guess lists of a summary
	SummaryLimit int

	// Logger is used for request and error logs
	Logger *zerolog.Logger
}

// Handler exposes the game over HTTP
type Handler struct {
	games        game.Service
	sink         notifier.Sink
	summaryLimit int
	logger       zerolog.Logger
}

// New creates a new HTTP handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil || cfg.GameService == nil {
		return nil, ErrNilGameService
	}

	sink := cfg.Sink
	if sink == nil {
		sink = notifier.Multi()
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "http").Logger()
	}

	return &Handler{
		games:        cfg.GameService,
		sink:         sink,
		summaryLimit: cfg.SummaryLimit,
		logger:       logger,
	}, nil
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Router creates and configures the HTTP router
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/channels/{channelID}/games", func(r chi.Router) {
			r.Post("/", h.StartGame)
			r.Delete("/active", h.EndGame)
		})

		r.Get("/games", h.ListGames)
		r.Route("/games/{gameID}", func(r chi.Router) {
			r.Get("/", h.GetGame)
			r.Post("/guesses", h.SubmitGuess)
		})
	})

	return r
}

// requestLogger logs one line per request
func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		h.logger.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeSuccess(w, map[string]string{"status": "ok"})
}

type startGameRequest struct {
	Scheduled bool `json:"scheduled"`
}

// StartGame handles POST /api/v1/channels/{channelID}/games
func (h *Handler) StartGame(w http.ResponseWriter, r *http.Request) {
	var req startGameRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, http.StatusBadRequest, errBadBody)
			return
		}
	}

	output, err := h.games.StartGame(r.Context(), &game.StartGameInput{
		ChannelID: chi.URLParam(r, "channelID"),
		Scheduled: req.Scheduled,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.publish(r, output.Events)

	status := http.StatusCreated
	if output.Skipped {
		status = http.StatusOK
	}

	resp := map[string]interface{}{
		"game":    newGameView(output.Game),
		"skipped": output.Skipped,
	}
	if output.Previous != nil {
		resp["previous"] = newGameView(output.Previous)
	}
	h.writeJSON(w, status, APIResponse{Success: true, Data: resp})
}

// EndGame handles DELETE /api/v1/channels/{channelID}/games/active
func (h *Handler) EndGame(w http.ResponseWriter, r *http.Request) {
	output, err := h.games.EndGame(r.Context(), &game.EndGameInput{
		ChannelID: chi.URLParam(r, "channelID"),
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.publish(r, output.Events)

	h.writeSuccess(w, map[string]interface{}{
		"game": newGameView(output.Game),
	})
}

type submitGuessRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

// SubmitGuess handles POST /api/v1/games/{gameID}/guesses
func (h *Handler) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	var req submitGuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, errBadBody)
		return
	}

	gameID := chi.URLParam(r, "gameID")

	output, err := h.games.Submit(r.Context(), &game.SubmitInput{
		GameID: gameID,
		UserID: req.UserID,
		Text:   req.Text,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	events := output.Events

	// Taunts are decided after every accepted guess
	taunt, err := h.games.EvaluateTaunt(r.Context(), &game.EvaluateTauntInput{
		GameID: gameID,
	})
	if err != nil {
		h.logger.Warn().Err(err).Str("game_id", gameID).Msg("failed to evaluate taunt")
	} else if taunt.Taunted {
		events = append(events, taunt.Event)
	}

	h.publish(r, events)

	status := http.StatusOK
	if output.IsNew {
		status = http.StatusCreated
	}

	h.writeJSON(w, status, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"guess":  newGuessView(output.Guess, false),
			"is_new": output.IsNew,
			"events": events,
		},
	})
}

// GetGame handles GET /api/v1/games/{gameID}
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	limit := h.summaryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.writeError(w, http.StatusBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	output, err := h.games.GetGameSummary(r.Context(), &game.GetGameSummaryInput{
		GameID: chi.URLParam(r, "gameID"),
		Limit:  limit,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeSuccess(w, newSummaryView(output))
}

// ListGames handles GET /api/v1/games?status=active
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	// Only running games are indexed
	if status := r.URL.Query().Get("status"); status != "" && status != string(models.GameStatusActive) {
		h.writeError(w, http.StatusBadRequest, errors.New("status must be active"))
		return
	}

	output, err := h.games.ListActiveGames(r.Context(), &game.ListActiveGamesInput{})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	views := make([]*gameView, 0, len(output.Games))
	for _, g := range output.Games {
		views = append(views, newGameView(g))
	}

	h.writeSuccess(w, map[string]interface{}{
		"games": views,
	})
}

// publish hands events to the sink; delivery problems never fail a request
func (h *Handler) publish(r *http.Request, events []*models.Event) {
	if len(events) == 0 {
		return
	}
	if err := h.sink.Publish(r.Context(), events); err != nil {
		h.logger.Error().Err(err).Int("events", len(events)).Msg("failed to publish events")
	}
}

// statusFor maps game service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, game.ErrAlreadyWon),
		errors.Is(err, game.ErrGameNotActive),
		errors.Is(err, game.ErrStorageConflict):
		return http.StatusConflict
	case errors.Is(err, game.ErrTransientOracle):
		return http.StatusServiceUnavailable
	case errors.Is(err, game.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrEmptyGuess),
		errors.Is(err, game.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		h.writeError(w, status, errors.New("internal error"))
		return
	}

	// Wrapped oracle failures only expose the game level message
	if errors.Is(err, game.ErrTransientOracle) {
		h.logger.Warn().Err(err).Str("path", r.URL.Path).Msg("oracle unavailable")
		err = game.ErrTransientOracle
	}
	h.writeError(w, status, err)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

// writeSuccess writes a successful JSON response
func (h *Handler) writeSuccess(w http.ResponseWriter, data interface{}) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

// writeError writes an error JSON response
func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, APIResponse{
		Success: false,
		Error:   err.Error(),
	})
}
