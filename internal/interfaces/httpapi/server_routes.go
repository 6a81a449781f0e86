package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("POST /v1/players", handler.CreatePlayer)
	mux.HandleFunc("GET /v1/players/leaderboard", handler.Leaderboard)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)

	mux.HandleFunc("POST /v1/teams/balance", handler.BalanceTeams)

	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("POST /v1/matches", handler.CreateMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("POST /v1/matches/{matchID}/evaluation/begin", handler.BeginEvaluation)
	mux.HandleFunc("POST /v1/matches/{matchID}/evaluation", handler.SubmitEvaluation)
	mux.HandleFunc("POST /v1/matches/{matchID}/evaluation/cancel", handler.CancelEvaluation)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/evaluation-reminder", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunEvaluationReminderJob)))
	mux.Handle("POST /v1/internal/jobs/recompute-ovr", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecomputeOVRJob)))
}
