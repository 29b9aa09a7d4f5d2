package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/users/register", handler.RegisterUser)
	mux.HandleFunc("GET /v1/regions/{region}/players", handler.ListPlayersByRegion)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}", handler.GetLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.ListLeagueStandings)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/teams", handler.ListTeamsByLeague)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedUserRoutes(mux, handler, verifier)
	registerAuthorizedLeagueRoutes(mux, handler, verifier)
	registerAuthorizedRosterRoutes(mux, handler, verifier)
	registerAuthorizedTradeRoutes(mux, handler, verifier)
	registerAuthorizedMessageRoutes(mux, handler, verifier)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/refresh-stats", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunStatsRefreshJob)))
}

func registerAuthorizedUserRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/users/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMyProfile)))
}

func registerAuthorizedLeagueRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/leagues", RequireAuth(verifier, http.HandlerFunc(handler.CreateLeague)))
	mux.Handle("POST /v1/leagues/{leagueID}/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinLeague)))
	mux.Handle("POST /v1/leagues/{leagueID}/schedule", RequireAuth(verifier, http.HandlerFunc(handler.GenerateSchedule)))
	mux.Handle("POST /v1/leagues/{leagueID}/weeks/{week}/scores", RequireAuth(verifier, http.HandlerFunc(handler.CalculateWeekScores)))
}

func registerAuthorizedRosterRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams/{teamID}/players", RequireAuth(verifier, http.HandlerFunc(handler.AddPlayerToTeam)))
	mux.Handle("DELETE /v1/teams/{teamID}/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.RemovePlayerFromTeam)))
}

func registerAuthorizedTradeRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/trades", RequireAuth(verifier, http.HandlerFunc(handler.ProposeTrade)))
	mux.Handle("GET /v1/teams/{teamID}/trades", RequireAuth(verifier, http.HandlerFunc(handler.ListTradesForTeam)))
	mux.Handle("POST /v1/trades/{tradeID}/accept", RequireAuth(verifier, http.HandlerFunc(handler.AcceptTrade)))
	mux.Handle("POST /v1/trades/{tradeID}/reject", RequireAuth(verifier, http.HandlerFunc(handler.RejectTrade)))
	mux.Handle("POST /v1/trades/{tradeID}/cancel", RequireAuth(verifier, http.HandlerFunc(handler.CancelTrade)))
}

func registerAuthorizedMessageRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/messages", RequireAuth(verifier, http.HandlerFunc(handler.SendMessage)))
	mux.Handle("GET /v1/messages", RequireAuth(verifier, http.HandlerFunc(handler.ListInbox)))
	mux.Handle("GET /v1/messages/with/{userID}", RequireAuth(verifier, http.HandlerFunc(handler.ListConversation)))
	mux.Handle("POST /v1/messages/{messageID}/read", RequireAuth(verifier, http.HandlerFunc(handler.MarkMessageRead)))
	mux.Handle("POST /v1/friends/requests", RequireAuth(verifier, http.HandlerFunc(handler.SendFriendRequest)))
	mux.Handle("GET /v1/friends/requests", RequireAuth(verifier, http.HandlerFunc(handler.ListFriendRequests)))
	mux.Handle("POST /v1/friends/requests/{requestID}/accept", RequireAuth(verifier, http.HandlerFunc(handler.AcceptFriendRequest)))
	mux.Handle("POST /v1/friends/requests/{requestID}/decline", RequireAuth(verifier, http.HandlerFunc(handler.DeclineFriendRequest)))
}
