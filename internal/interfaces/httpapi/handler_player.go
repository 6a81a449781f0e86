package httpapi

import (
	"net/http"

	"github.com/fulbito-app/fulbito/internal/domain/player"
	"github.com/fulbito-app/fulbito/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.rosterService.ListPlayers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p, false))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	p, err := h.rosterService.GetPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(p, true))
}

type createPlayerRequest struct {
	Name          string               `json:"name" validate:"required,max=100"`
	Position      string               `json:"position" validate:"required"`
	GeneralRating *int                 `json:"generalRating" validate:"omitempty,min=1,max=10"`
	Attributes    *attributeProfileDTO `json:"attributes"`
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req createPlayerRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.CreatePlayerInput{
		Name:          req.Name,
		Position:      player.Position(req.Position),
		InitialRating: req.GeneralRating,
	}
	if req.Attributes != nil {
		input.Attributes = &player.AttributeProfile{
			Pace:      req.Attributes.Pace,
			Shooting:  req.Attributes.Shooting,
			Passing:   req.Attributes.Passing,
			Dribbling: req.Attributes.Dribbling,
			Defending: req.Attributes.Defending,
			Physical:  req.Attributes.Physical,
		}
	}

	created, err := h.rosterService.CreatePlayer(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(created, false))
}

type leaderboardRowDTO struct {
	PlayerID      string `json:"playerId"`
	Name          string `json:"name"`
	Position      string `json:"position"`
	OVR           int    `json:"ovr"`
	OVRDelta      int    `json:"ovrDelta"`
	MatchesPlayed int    `json:"matchesPlayed"`
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Leaderboard")
	defer span.End()

	rows, err := h.rosterService.Leaderboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, leaderboardRowDTO{
			PlayerID:      row.PlayerID,
			Name:          row.Name,
			Position:      string(row.Position),
			OVR:           row.OVR,
			OVRDelta:      row.OVRDelta,
			MatchesPlayed: row.MatchesPlayed,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
