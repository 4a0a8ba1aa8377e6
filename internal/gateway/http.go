// Package gateway exposes the action surface over HTTP for local development
// and integration tests. Identity comes from the X-User-ID header; production
// traffic goes through the Nakama adapter instead.
package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/debchamps/hearts-pro-mobile-sub001/internal/app"
	"github.com/debchamps/hearts-pro-mobile-sub001/internal/domain"
)

// Router builds the HTTP mux over the engine.
func Router(svc *app.Service, log *zap.Logger) chi.Router {
	g := &handlers{svc: svc, log: log}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Route("/v1/matches", func(r chi.Router) {
		r.Post("/", g.createMatch)
		r.Post("/find", g.findMatch)
		r.Route("/{matchID}", func(r chi.Router) {
			r.Get("/", g.snapshot)
			r.Get("/events", g.subscribe)
			r.Post("/join", g.joinMatch)
			r.Post("/pass", g.submitPass)
			r.Post("/bid", g.submitBid)
			r.Post("/move", g.submitMove)
			r.Post("/timeout", g.timeoutMove)
			r.Post("/end", g.endMatch)
		})
	})
	return r
}

type handlers struct {
	svc *app.Service
	log *zap.Logger
}

type openedResponse struct {
	MatchID string    `json:"match_id"`
	Seat    int       `json:"seat"`
	Delta   app.Delta `json:"delta"`
}

type actionRequest struct {
	GameType         domain.GameType `json:"game_type,omitempty"`
	DisplayName      string          `json:"display_name,omitempty"`
	ExpectedRevision int64           `json:"expected_revision"`
	CardIDs          []int           `json:"card_ids,omitempty"`
	CardID           int             `json:"card_id,omitempty"`
	Bid              int             `json:"bid,omitempty"`
}

func (g *handlers) decode(w http.ResponseWriter, r *http.Request, req *actionRequest) bool {
	if r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (g *handlers) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get("X-User-ID")
	if id == "" {
		http.Error(w, "missing X-User-ID", http.StatusUnauthorized)
		return "", false
	}
	return id, true
}

func (g *handlers) respond(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		g.log.Warn("encode response", zap.Error(err))
	}
}

// fail maps the error taxonomy onto HTTP status codes.
func (g *handlers) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrMatchNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrRevisionConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidPhase), errors.Is(err, domain.ErrOutOfTurn), errors.Is(err, domain.ErrMatchFull):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidCardSelection), errors.Is(err, domain.ErrInvalidBid), errors.Is(err, domain.ErrUnknownGameType):
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}

func (g *handlers) actingSeat(w http.ResponseWriter, r *http.Request, matchID string) (int, bool) {
	userID, ok := g.userID(w, r)
	if !ok {
		return -1, false
	}
	delta, err := g.svc.Snapshot(r.Context(), matchID)
	if err != nil {
		g.fail(w, err)
		return -1, false
	}
	seat := delta.State.SeatOf(userID)
	if seat < 0 {
		http.Error(w, "caller is not seated in this match", http.StatusForbidden)
		return -1, false
	}
	return seat, true
}

func (g *handlers) createMatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := g.userID(w, r)
	if !ok {
		return
	}
	var req actionRequest
	if !g.decode(w, r, &req) {
		return
	}
	delta, err := g.svc.CreateMatch(r.Context(), req.GameType, userID, req.DisplayName)
	if err != nil {
		g.fail(w, err)
		return
	}
	g.respond(w, openedResponse{MatchID: delta.MatchID, Seat: 0, Delta: delta})
}

func (g *handlers) findMatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := g.userID(w, r)
	if !ok {
		return
	}
	var req actionRequest
	if !g.decode(w, r, &req) {
		return
	}
	delta, seat, err := g.svc.FindMatch(r.Context(), req.GameType, userID, req.DisplayName)
	if err != nil {
		g.fail(w, err)
		return
	}
	g.respond(w, openedResponse{MatchID: delta.MatchID, Seat: seat, Delta: delta})
}

func (g *handlers) joinMatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := g.userID(w, r)
	if !ok {
		return
	}
	var req actionRequest
	if !g.decode(w, r, &req) {
		return
	}
	matchID := chi.URLParam(r, "matchID")
	delta, err := g.svc.JoinMatch(r.Context(), matchID, req.ExpectedRevision, userID, req.DisplayName)
	if err != nil {
		g.fail(w, err)
		return
	}
	g.respond(w, openedResponse{MatchID: delta.MatchID, Seat: 2, Delta: delta})
}

func (g *handlers) submitPass(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")
	var req actionRequest
	if !g.decode(w, r, &req) {
		return
	}
	seat, ok := g.actingSeat(w, r, matchID)
	if !ok {
		return
	}
	delta, err := g.svc.SubmitPass(r.Context(), matchID, req.ExpectedRevision, seat, req.CardIDs)
	if err != nil {
		g.fail(w, err)
		return
	}
	g.respond(w, delta)
}

func (g *handlers) submitBid(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")
	var req actionRequest
	if !g.decode(w, r, &req) {
		return
	}
	seat, ok := g.actingSeat(w, r, matchID)
	if !ok {
		return
	}
	delta, err := g.svc.SubmitBid(r.Context(), matchID, req.ExpectedRevision, seat, req.Bid)
	if err != nil {
		g.fail(w, err)
		return
	}
	g.respond(w, delta)
}

func (g *handlers) submitMove(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")
	var req actionRequest
	if !g.decode(w, r, &req) {
		return
	}
	seat, ok := g.actingSeat(w, r, matchID)
	if !ok {
		return
	}
	delta, err := g.svc.SubmitMove(r.Context(), matchID, req.ExpectedRevision, seat, req.CardID)
	if err != nil {
		g.fail(w, err)
		return
	}
	g.respond(w, delta)
}

func (g *handlers) timeoutMove(w http.ResponseWriter, r *http.Request) {
	delta, err := g.svc.TimeoutMove(r.Context(), chi.URLParam(r, "matchID"))
	if err != nil {
		g.fail(w, err)
		return
	}
	g.respond(w, delta)
}

func (g *handlers) snapshot(w http.ResponseWriter, r *http.Request) {
	delta, err := g.svc.Snapshot(r.Context(), chi.URLParam(r, "matchID"))
	if err != nil {
		g.fail(w, err)
		return
	}
	g.respond(w, delta)
}

func (g *handlers) subscribe(w http.ResponseWriter, r *http.Request) {
	since, _ := strconv.ParseInt(r.URL.Query().Get("since"), 10, 64)
	page, err := g.svc.Subscribe(r.Context(), chi.URLParam(r, "matchID"), since)
	if err != nil {
		g.fail(w, err)
		return
	}
	g.respond(w, page)
}

func (g *handlers) endMatch(w http.ResponseWriter, r *http.Request) {
	result, err := g.svc.EndMatch(r.Context(), chi.URLParam(r, "matchID"))
	if err != nil {
		g.fail(w, err)
		return
	}
	g.respond(w, result)
}
