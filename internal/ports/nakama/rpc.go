package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/debchamps/hearts-pro-mobile-sub001/internal/app"
	"github.com/debchamps/hearts-pro-mobile-sub001/internal/domain"
)

// rpcHandler is the Nakama RPC signature.
type rpcHandler func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error)

// registerRPCs binds the action surface. Every state-changing action takes
// the caller's expected revision; queries do not.
func registerRPCs(initializer runtime.Initializer, svc *app.Service) error {
	rpcs := map[string]rpcHandler{
		"heartspro_create_match": rpcCreateMatch(svc),
		"heartspro_find_match":   rpcFindMatch(svc),
		"heartspro_join_match":   rpcJoinMatch(svc),
		"heartspro_submit_pass":  rpcSubmitPass(svc),
		"heartspro_submit_bid":   rpcSubmitBid(svc),
		"heartspro_submit_move":  rpcSubmitMove(svc),
		"heartspro_timeout_move": rpcTimeoutMove(svc),
		"heartspro_get_snapshot": rpcGetSnapshot(svc),
		"heartspro_subscribe":    rpcSubscribe(svc),
		"heartspro_end_match":    rpcEndMatch(svc),
	}
	for name, handler := range rpcs {
		if err := initializer.RegisterRpc(name, handler); err != nil {
			return err
		}
	}
	return nil
}

func callerID(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if !ok || userID == "" {
		return "", runtime.NewError("no user id in context", 16) // UNAUTHENTICATED
	}
	return userID, nil
}

// rpcError maps the engine's error taxonomy onto gRPC status codes the
// Nakama client surfaces.
func rpcError(err error) error {
	switch {
	case errors.Is(err, domain.ErrMatchNotFound):
		return runtime.NewError(err.Error(), 5) // NOT_FOUND
	case errors.Is(err, domain.ErrRevisionConflict):
		return runtime.NewError(err.Error(), 10) // ABORTED
	case errors.Is(err, domain.ErrInvalidPhase), errors.Is(err, domain.ErrOutOfTurn), errors.Is(err, domain.ErrMatchFull):
		return runtime.NewError(err.Error(), 9) // FAILED_PRECONDITION
	case errors.Is(err, domain.ErrInvalidCardSelection), errors.Is(err, domain.ErrInvalidBid), errors.Is(err, domain.ErrUnknownGameType):
		return runtime.NewError(err.Error(), 3) // INVALID_ARGUMENT
	default:
		return runtime.NewError(err.Error(), 13) // INTERNAL
	}
}

func respond(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", runtime.NewError("failed to marshal response", 13)
	}
	return string(b), nil
}

type createMatchRequest struct {
	GameType    domain.GameType `json:"game_type"`
	DisplayName string          `json:"display_name"`
}

type matchOpenedResponse struct {
	MatchID string    `json:"match_id"`
	Seat    int       `json:"seat"`
	Delta   app.Delta `json:"delta"`
}

func rpcCreateMatch(svc *app.Service) rpcHandler {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		userID, err := callerID(ctx)
		if err != nil {
			return "", err
		}
		var req createMatchRequest
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("invalid payload", 3)
		}
		delta, err := svc.CreateMatch(ctx, req.GameType, userID, req.DisplayName)
		if err != nil {
			return "", rpcError(err)
		}
		return respond(matchOpenedResponse{MatchID: delta.MatchID, Seat: 0, Delta: delta})
	}
}

func rpcFindMatch(svc *app.Service) rpcHandler {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		userID, err := callerID(ctx)
		if err != nil {
			return "", err
		}
		var req createMatchRequest
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("invalid payload", 3)
		}
		delta, seat, err := svc.FindMatch(ctx, req.GameType, userID, req.DisplayName)
		if err != nil {
			return "", rpcError(err)
		}
		return respond(matchOpenedResponse{MatchID: delta.MatchID, Seat: seat, Delta: delta})
	}
}

type joinMatchRequest struct {
	MatchID          string `json:"match_id"`
	ExpectedRevision int64  `json:"expected_revision"`
	DisplayName      string `json:"display_name"`
}

func rpcJoinMatch(svc *app.Service) rpcHandler {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		userID, err := callerID(ctx)
		if err != nil {
			return "", err
		}
		var req joinMatchRequest
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("invalid payload", 3)
		}
		delta, err := svc.JoinMatch(ctx, req.MatchID, req.ExpectedRevision, userID, req.DisplayName)
		if err != nil {
			return "", rpcError(err)
		}
		return respond(matchOpenedResponse{MatchID: delta.MatchID, Seat: 2, Delta: delta})
	}
}

// actingSeat resolves the caller's fixed seat in the match.
func actingSeat(ctx context.Context, svc *app.Service, matchID, userID string) (int, error) {
	delta, err := svc.Snapshot(ctx, matchID)
	if err != nil {
		return -1, err
	}
	seat := delta.State.SeatOf(userID)
	if seat < 0 {
		return -1, domain.ErrOutOfTurn
	}
	return seat, nil
}

type submitPassRequest struct {
	MatchID          string `json:"match_id"`
	ExpectedRevision int64  `json:"expected_revision"`
	CardIDs          []int  `json:"card_ids"`
}

func rpcSubmitPass(svc *app.Service) rpcHandler {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		userID, err := callerID(ctx)
		if err != nil {
			return "", err
		}
		var req submitPassRequest
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("invalid payload", 3)
		}
		seat, err := actingSeat(ctx, svc, req.MatchID, userID)
		if err != nil {
			return "", rpcError(err)
		}
		delta, err := svc.SubmitPass(ctx, req.MatchID, req.ExpectedRevision, seat, req.CardIDs)
		if err != nil {
			return "", rpcError(err)
		}
		return respond(delta)
	}
}

type submitBidRequest struct {
	MatchID          string `json:"match_id"`
	ExpectedRevision int64  `json:"expected_revision"`
	Bid              int    `json:"bid"`
}

func rpcSubmitBid(svc *app.Service) rpcHandler {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		userID, err := callerID(ctx)
		if err != nil {
			return "", err
		}
		var req submitBidRequest
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("invalid payload", 3)
		}
		seat, err := actingSeat(ctx, svc, req.MatchID, userID)
		if err != nil {
			return "", rpcError(err)
		}
		delta, err := svc.SubmitBid(ctx, req.MatchID, req.ExpectedRevision, seat, req.Bid)
		if err != nil {
			return "", rpcError(err)
		}
		return respond(delta)
	}
}

type submitMoveRequest struct {
	MatchID          string `json:"match_id"`
	ExpectedRevision int64  `json:"expected_revision"`
	CardID           int    `json:"card_id"`
}

func rpcSubmitMove(svc *app.Service) rpcHandler {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		userID, err := callerID(ctx)
		if err != nil {
			return "", err
		}
		var req submitMoveRequest
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("invalid payload", 3)
		}
		seat, err := actingSeat(ctx, svc, req.MatchID, userID)
		if err != nil {
			return "", rpcError(err)
		}
		delta, err := svc.SubmitMove(ctx, req.MatchID, req.ExpectedRevision, seat, req.CardID)
		if err != nil {
			return "", rpcError(err)
		}
		return respond(delta)
	}
}

type matchRequest struct {
	MatchID string `json:"match_id"`
}

func rpcTimeoutMove(svc *app.Service) rpcHandler {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		var req matchRequest
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("invalid payload", 3)
		}
		delta, err := svc.TimeoutMove(ctx, req.MatchID)
		if err != nil {
			return "", rpcError(err)
		}
		return respond(delta)
	}
}

func rpcGetSnapshot(svc *app.Service) rpcHandler {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		var req matchRequest
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("invalid payload", 3)
		}
		delta, err := svc.Snapshot(ctx, req.MatchID)
		if err != nil {
			return "", rpcError(err)
		}
		return respond(delta)
	}
}

type subscribeRequest struct {
	MatchID      string `json:"match_id"`
	SinceEventID int64  `json:"since_event_id"`
}

func rpcSubscribe(svc *app.Service) rpcHandler {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		var req subscribeRequest
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("invalid payload", 3)
		}
		page, err := svc.Subscribe(ctx, req.MatchID, req.SinceEventID)
		if err != nil {
			return "", rpcError(err)
		}
		return respond(page)
	}
}

func rpcEndMatch(svc *app.Service) rpcHandler {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		var req matchRequest
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("invalid payload", 3)
		}
		result, err := svc.EndMatch(ctx, req.MatchID)
		if err != nil {
			return "", rpcError(err)
		}
		return respond(result)
	}
}
