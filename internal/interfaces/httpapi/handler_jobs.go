package httpapi

import (
	"net/http"

	"github.com/fulbito-app/fulbito/internal/domain/match"
)

type evaluationReminderJobRequest struct {
	MatchID string `json:"match_id" validate:"required"`
}

// RunEvaluationReminderJob is the queue callback fired after a match's
// kickoff. It is idempotent: a match that was already evaluated or cancelled
// just acknowledges the delivery.
func (h *Handler) RunEvaluationReminderJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunEvaluationReminderJob")
	defer span.End()

	var req evaluationReminderJobRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	m, err := h.evaluationService.GetMatch(ctx, req.MatchID)
	if err != nil {
		h.logger.WarnContext(ctx, "evaluation reminder lookup failed", "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	pending := m.Status != match.StatusEvaluated
	if pending {
		h.logger.InfoContext(ctx, "match evaluation pending", "match_id", m.ID, "status", m.Status, "scheduled_at", m.ScheduledAt)
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"matchId": m.ID,
		"status":  m.Status,
		"pending": pending,
	})
}

// RunRecomputeOVRJob refreshes every cached OVR, e.g. after a weight table
// deploy.
func (h *Handler) RunRecomputeOVRJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecomputeOVRJob")
	defer span.End()

	result, err := h.rosterService.RecomputeOVRs(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "recompute ovr job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{
		"total":   result.Total,
		"updated": result.Updated,
		"failed":  result.Failed,
	})
}
