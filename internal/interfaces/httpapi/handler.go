package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/fulbito-app/fulbito/internal/domain/match"
	"github.com/fulbito-app/fulbito/internal/domain/player"
	"github.com/fulbito-app/fulbito/internal/domain/team"
	"github.com/fulbito-app/fulbito/internal/platform/logging"
	"github.com/fulbito-app/fulbito/internal/usecase"
)

type Handler struct {
	rosterService     *usecase.RosterService
	balanceService    *usecase.BalanceService
	evaluationService *usecase.EvaluationService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	rosterService *usecase.RosterService,
	balanceService *usecase.BalanceService,
	evaluationService *usecase.EvaluationService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Handler{
		rosterService:     rosterService,
		balanceService:    balanceService,
		evaluationService: evaluationService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, body io.Reader, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, target)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type attributeProfileDTO struct {
	Pace      int `json:"pace"`
	Shooting  int `json:"shooting"`
	Passing   int `json:"passing"`
	Dribbling int `json:"dribbling"`
	Defending int `json:"defending"`
	Physical  int `json:"physical"`
}

type playerDTO struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Position    string              `json:"position"`
	Role        string              `json:"role"`
	Attributes  attributeProfileDTO `json:"attributes"`
	OVR         int                 `json:"ovr"`
	OriginalOVR *int                `json:"originalOvr,omitempty"`
	Matches     []historyEntryDTO   `json:"matches,omitempty"`
}

type historyEntryDTO struct {
	MatchID       string `json:"matchId"`
	PlayedAt      string `json:"playedAt"`
	ScoredFor     int    `json:"scoredFor"`
	ScoredAgainst int    `json:"scoredAgainst"`
}

type sideDTO struct {
	Name      string   `json:"name"`
	PlayerIDs []string `json:"playerIds"`
	OVR       int      `json:"ovr"`
	Score     *int     `json:"score,omitempty"`
}

type matchDTO struct {
	ID          string  `json:"id"`
	ScheduledAt string  `json:"scheduledAt"`
	Format      string  `json:"format"`
	Status      string  `json:"status"`
	TeamA       sideDTO `json:"teamA"`
	TeamB       sideDTO `json:"teamB"`
	EvaluatedBy string  `json:"evaluatedBy,omitempty"`
	SubmittedAt string  `json:"submittedAt,omitempty"`
}

type balancedTeamDTO struct {
	Name    string      `json:"name"`
	Players []playerDTO `json:"players"`
	OVR     int         `json:"ovr"`
}

type balanceResultDTO struct {
	TeamA         balancedTeamDTO `json:"teamA"`
	TeamB         balancedTeamDTO `json:"teamB"`
	OVRDifference int             `json:"ovrDifference"`
	Unassigned    []playerDTO     `json:"unassigned,omitempty"`
}

func attributesToDTO(attrs player.AttributeProfile) attributeProfileDTO {
	return attributeProfileDTO{
		Pace:      attrs.Pace,
		Shooting:  attrs.Shooting,
		Passing:   attrs.Passing,
		Dribbling: attrs.Dribbling,
		Defending: attrs.Defending,
		Physical:  attrs.Physical,
	}
}

func playerToDTO(p player.Player, withHistory bool) playerDTO {
	out := playerDTO{
		ID:          p.ID,
		Name:        p.Name,
		Position:    string(p.Position),
		Role:        string(p.Position.Role()),
		Attributes:  attributesToDTO(p.Attributes),
		OVR:         p.OVR,
		OriginalOVR: p.OriginalOVR,
	}
	if withHistory && len(p.History) > 0 {
		out.Matches = make([]historyEntryDTO, 0, len(p.History))
		for _, entry := range p.History {
			out.Matches = append(out.Matches, historyEntryDTO{
				MatchID:       entry.MatchID,
				PlayedAt:      entry.PlayedAt.UTC().Format(time.RFC3339),
				ScoredFor:     entry.ScoredFor,
				ScoredAgainst: entry.ScoredAgainst,
			})
		}
	}
	return out
}

func sideToDTO(s match.Side) sideDTO {
	return sideDTO{
		Name:      s.Name,
		PlayerIDs: append([]string(nil), s.PlayerIDs...),
		OVR:       s.OVR,
		Score:     s.Score,
	}
}

func matchToDTO(m match.Match) matchDTO {
	out := matchDTO{
		ID:          m.ID,
		ScheduledAt: m.ScheduledAt.UTC().Format(time.RFC3339),
		Format:      string(m.Format),
		Status:      m.Status,
		TeamA:       sideToDTO(m.TeamA),
		TeamB:       sideToDTO(m.TeamB),
	}
	if m.Evaluation != nil {
		out.EvaluatedBy = m.Evaluation.EvaluatorID
		out.SubmittedAt = m.Evaluation.SubmittedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func teamToBalancedDTO(t team.Team) balancedTeamDTO {
	players := make([]playerDTO, 0, len(t.Players))
	for _, p := range t.Players {
		players = append(players, playerToDTO(p, false))
	}
	return balancedTeamDTO{Name: t.Name, Players: players, OVR: t.OVR}
}

func balanceResultToDTO(result team.Result) balanceResultDTO {
	out := balanceResultDTO{
		TeamA:         teamToBalancedDTO(result.TeamA),
		TeamB:         teamToBalancedDTO(result.TeamB),
		OVRDifference: result.OVRDifference,
	}
	for _, p := range result.Unassigned {
		out.Unassigned = append(out.Unassigned, playerToDTO(p, false))
	}
	return out
}
