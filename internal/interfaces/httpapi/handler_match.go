package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fulbito-app/fulbito/internal/domain/match"
	"github.com/fulbito-app/fulbito/internal/domain/rating"
	"github.com/fulbito-app/fulbito/internal/domain/team"
	"github.com/fulbito-app/fulbito/internal/usecase"
)

type balanceRequest struct {
	PlayerIDs []string `json:"playerIds" validate:"omitempty,dive,required"`
	Format    string   `json:"format" validate:"required"`
}

func (h *Handler) BalanceTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BalanceTeams")
	defer span.End()

	var req balanceRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.balanceService.Balance(ctx, usecase.BalanceInput{
		PlayerIDs: req.PlayerIDs,
		Format:    team.Format(req.Format),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "balance teams failed", "format", req.Format, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, balanceResultToDTO(result))
}

type createMatchRequest struct {
	PlayerIDs   []string `json:"playerIds" validate:"omitempty,dive,required"`
	Format      string   `json:"format" validate:"required"`
	ScheduledAt string   `json:"scheduledAt" validate:"required"`
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req createMatchRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: scheduledAt must be RFC3339: %v", usecase.ErrInvalidInput, err))
		return
	}

	created, result, err := h.balanceService.CreateMatch(ctx, usecase.CreateMatchInput{
		PlayerIDs:   req.PlayerIDs,
		Format:      team.Format(req.Format),
		ScheduledAt: scheduledAt,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "format", req.Format, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, map[string]any{
		"match":   matchToDTO(created),
		"balance": balanceResultToDTO(result),
	})
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	matches, err := h.evaluationService.ListMatches(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	m, err := h.evaluationService.GetMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

func (h *Handler) BeginEvaluation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BeginEvaluation")
	defer span.End()

	matchID := r.PathValue("matchID")
	result, err := h.evaluationService.Begin(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "begin evaluation failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	players := make([]playerDTO, 0, len(result.Players))
	for _, p := range result.Players {
		players = append(players, playerToDTO(p, false))
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"match":   matchToDTO(result.Match),
		"players": players,
	})
}

type evaluationRecordRequest struct {
	PlayerID      string   `json:"playerId" validate:"required"`
	GeneralRating *int     `json:"generalRating" validate:"omitempty,min=1,max=10"`
	Tags          []string `json:"tags" validate:"omitempty,dive,required"`
	Comment       string   `json:"comment" validate:"max=500"`
}

type submitEvaluationRequest struct {
	TeamAScore  int                       `json:"teamAScore" validate:"min=0"`
	TeamBScore  int                       `json:"teamBScore" validate:"min=0"`
	EvaluatorID string                    `json:"evaluatorId" validate:"max=100"`
	Records     []evaluationRecordRequest `json:"records" validate:"omitempty,dive"`
}

func (h *Handler) SubmitEvaluation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitEvaluation")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req submitEvaluationRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	records := make([]match.EvaluationRecord, 0, len(req.Records))
	for _, record := range req.Records {
		records = append(records, match.EvaluationRecord{
			PlayerID:      record.PlayerID,
			GeneralRating: record.GeneralRating,
			Tags:          tagsFromRequest(record.Tags),
			Comment:       record.Comment,
			EvaluatorID:   req.EvaluatorID,
		})
	}

	evaluated, err := h.evaluationService.Submit(ctx, usecase.SubmitInput{
		MatchID:     matchID,
		TeamAScore:  req.TeamAScore,
		TeamBScore:  req.TeamBScore,
		EvaluatorID: req.EvaluatorID,
		Records:     records,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit evaluation failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(evaluated))
}

func (h *Handler) CancelEvaluation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelEvaluation")
	defer span.End()

	matchID := r.PathValue("matchID")
	m, err := h.evaluationService.Cancel(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "cancel evaluation failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

func tagsFromRequest(items []string) []rating.Tag {
	if len(items) == 0 {
		return nil
	}
	out := make([]rating.Tag, 0, len(items))
	for _, item := range items {
		out = append(out, rating.Tag(item))
	}
	return out
}
