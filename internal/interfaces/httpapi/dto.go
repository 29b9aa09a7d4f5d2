package httpapi

import (
	"context"
	"time"

	"github.com/riftlabs/fantasy-esports/internal/domain/league"
	"github.com/riftlabs/fantasy-esports/internal/domain/message"
	"github.com/riftlabs/fantasy-esports/internal/domain/player"
	"github.com/riftlabs/fantasy-esports/internal/domain/roster"
	"github.com/riftlabs/fantasy-esports/internal/domain/trade"
	"github.com/riftlabs/fantasy-esports/internal/domain/user"
	"github.com/riftlabs/fantasy-esports/internal/usecase"
)

type registerUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Username    string `json:"username" validate:"required,min=3,max=40"`
	DisplayName string `json:"display_name" validate:"omitempty,max=100"`
}

type createLeagueRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Region   string `json:"region" validate:"required"`
	MaxTeams int    `json:"max_teams" validate:"required,gte=2"`
}

type joinLeagueRequest struct {
	TeamName string `json:"team_name" validate:"required,max=100"`
}

type generateScheduleRequest struct {
	Weeks int `json:"weeks" validate:"omitempty,min=1"`
}

type rosterMoveRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Slot     string `json:"slot" validate:"omitempty,oneof=TOP JUNGLE MID ADC SUPPORT FLEX BENCH"`
}

type proposeTradeRequest struct {
	ProposingTeamID    string   `json:"proposing_team_id" validate:"required"`
	ReceivingTeamID    string   `json:"receiving_team_id" validate:"required"`
	OfferedPlayerIDs   []string `json:"offered_player_ids" validate:"omitempty,dive,required"`
	RequestedPlayerIDs []string `json:"requested_player_ids" validate:"omitempty,dive,required"`
}

type sendMessageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Body        string `json:"body" validate:"required,max=2000"`
}

type sendFriendRequestRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
}

type userDTO struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type seasonTotalsDTO struct {
	Kills         int     `json:"kills"`
	Deaths        int     `json:"deaths"`
	Assists       int     `json:"assists"`
	CreepScore    int     `json:"creep_score"`
	VisionScore   int     `json:"vision_score"`
	DragonKills   int     `json:"dragon_kills"`
	BaronKills    int     `json:"baron_kills"`
	TowerKills    int     `json:"tower_kills"`
	GamesPlayed   int     `json:"games_played"`
	FantasyPoints float64 `json:"fantasy_points"`
}

type playerDTO struct {
	ID           string          `json:"id"`
	Handle       string          `json:"handle"`
	RealName     string          `json:"real_name,omitempty"`
	ProTeam      string          `json:"pro_team"`
	ProLeague    string          `json:"pro_league"`
	Role         string          `json:"role"`
	Totals       seasonTotalsDTO `json:"totals"`
	PointsByWeek map[int]float64 `json:"points_by_week,omitempty"`
}

type matchupDTO struct {
	ID         string  `json:"id"`
	Week       int     `json:"week"`
	HomeTeamID string  `json:"home_team_id"`
	AwayTeamID string  `json:"away_team_id"`
	HomeScore  float64 `json:"home_score"`
	AwayScore  float64 `json:"away_score"`
	Completed  bool    `json:"completed"`
}

type matchResultDTO struct {
	Matchup      matchupDTO `json:"matchup"`
	WinnerTeamID string     `json:"winner_team_id,omitempty"`
	LoserTeamID  string     `json:"loser_team_id,omitempty"`
}

type leagueDTO struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	CommissionerID string       `json:"commissioner_id"`
	Region         string       `json:"region"`
	MaxTeams       int          `json:"max_teams"`
	TeamIDs        []string     `json:"team_ids"`
	Schedule       []matchupDTO `json:"schedule,omitempty"`
	CurrentWeek    int          `json:"current_week"`
	Status         string       `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

type standingDTO struct {
	Rank        int     `json:"rank"`
	TeamID      string  `json:"team_id"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	TotalPoints float64 `json:"total_points"`
}

type teamDTO struct {
	ID          string            `json:"id"`
	LeagueID    string            `json:"league_id"`
	OwnerID     string            `json:"owner_id"`
	Name        string            `json:"name"`
	Starters    map[string]string `json:"starters"`
	Bench       []string          `json:"bench"`
	Wins        int               `json:"wins"`
	Losses      int               `json:"losses"`
	TotalPoints float64           `json:"total_points"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type rosterMoveDTO struct {
	Team         teamDTO `json:"team"`
	AssignedSlot string  `json:"assigned_slot"`
}

type tradeDTO struct {
	ID                 string     `json:"id"`
	LeagueID           string     `json:"league_id"`
	ProposingTeamID    string     `json:"proposing_team_id"`
	ReceivingTeamID    string     `json:"receiving_team_id"`
	OfferedPlayerIDs   []string   `json:"offered_player_ids"`
	RequestedPlayerIDs []string   `json:"requested_player_ids"`
	Status             string     `json:"status"`
	CreatedAt          time.Time  `json:"created_at"`
	ResolvedAt         *time.Time `json:"resolved_at,omitempty"`
}

type messageDTO struct {
	ID          string     `json:"id"`
	SenderID    string     `json:"sender_id"`
	RecipientID string     `json:"recipient_id"`
	Body        string     `json:"body"`
	SentAt      time.Time  `json:"sent_at"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
}

type friendRequestDTO struct {
	ID          string     `json:"id"`
	SenderID    string     `json:"sender_id"`
	RecipientID string     `json:"recipient_id"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

type refreshResultDTO struct {
	Leagues        int   `json:"leagues"`
	LinesFetched   int   `json:"lines_fetched"`
	PlayersUpdated int   `json:"players_updated"`
	Skipped        bool  `json:"skipped"`
	DurationMs     int64 `json:"duration_ms"`
}

func userToDTO(ctx context.Context, item user.Profile) userDTO {
	_, span := startSpan(ctx, "httpapi.userToDTO")
	defer span.End()

	return userDTO{
		ID:          item.ID,
		Email:       item.Email,
		Username:    item.Username,
		DisplayName: item.DisplayName,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func playerToDTO(ctx context.Context, item player.Player) playerDTO {
	_, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	return playerDTO{
		ID:        item.ID,
		Handle:    item.Handle,
		RealName:  item.RealName,
		ProTeam:   item.ProTeam,
		ProLeague: item.ProLeague,
		Role:      string(item.Role),
		Totals: seasonTotalsDTO{
			Kills:         item.Totals.Kills,
			Deaths:        item.Totals.Deaths,
			Assists:       item.Totals.Assists,
			CreepScore:    item.Totals.CreepScore,
			VisionScore:   item.Totals.VisionScore,
			DragonKills:   item.Totals.DragonKills,
			BaronKills:    item.Totals.BaronKills,
			TowerKills:    item.Totals.TowerKills,
			GamesPlayed:   item.Totals.GamesPlayed,
			FantasyPoints: item.Totals.FantasyPoints,
		},
		PointsByWeek: item.PointsByWeek,
	}
}

func matchupToDTO(item league.Matchup) matchupDTO {
	return matchupDTO{
		ID:         item.ID,
		Week:       item.Week,
		HomeTeamID: item.HomeTeamID,
		AwayTeamID: item.AwayTeamID,
		HomeScore:  item.HomeScore,
		AwayScore:  item.AwayScore,
		Completed:  item.Completed,
	}
}

func matchResultToDTO(item league.MatchResult) matchResultDTO {
	return matchResultDTO{
		Matchup:      matchupToDTO(item.Matchup),
		WinnerTeamID: item.WinnerID,
		LoserTeamID:  item.LoserID,
	}
}

func leagueToDTO(ctx context.Context, item league.League) leagueDTO {
	_, span := startSpan(ctx, "httpapi.leagueToDTO")
	defer span.End()

	schedule := make([]matchupDTO, 0, len(item.Schedule))
	for _, matchup := range item.Schedule {
		schedule = append(schedule, matchupToDTO(matchup))
	}

	return leagueDTO{
		ID:             item.ID,
		Name:           item.Name,
		CommissionerID: item.CommissionerID,
		Region:         item.Region,
		MaxTeams:       item.MaxTeams,
		TeamIDs:        item.TeamIDs,
		Schedule:       schedule,
		CurrentWeek:    item.CurrentWeek,
		Status:         string(item.Status),
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

func standingToDTO(item league.Standing) standingDTO {
	return standingDTO{
		Rank:        item.Rank,
		TeamID:      item.TeamID,
		Wins:        item.Wins,
		Losses:      item.Losses,
		TotalPoints: item.TotalPoints,
	}
}

func teamToDTO(ctx context.Context, item roster.Team) teamDTO {
	_, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	starters := make(map[string]string, len(item.Starters))
	for slot, playerID := range item.Starters {
		starters[string(slot)] = playerID
	}
	bench := item.Bench
	if bench == nil {
		bench = []string{}
	}

	return teamDTO{
		ID:          item.ID,
		LeagueID:    item.LeagueID,
		OwnerID:     item.OwnerID,
		Name:        item.Name,
		Starters:    starters,
		Bench:       bench,
		Wins:        item.Wins,
		Losses:      item.Losses,
		TotalPoints: item.TotalPoints,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func tradeToDTO(ctx context.Context, item trade.Trade) tradeDTO {
	_, span := startSpan(ctx, "httpapi.tradeToDTO")
	defer span.End()

	return tradeDTO{
		ID:                 item.ID,
		LeagueID:           item.LeagueID,
		ProposingTeamID:    item.ProposingTeamID,
		ReceivingTeamID:    item.ReceivingTeamID,
		OfferedPlayerIDs:   item.OfferedPlayerIDs,
		RequestedPlayerIDs: item.RequestedPlayerIDs,
		Status:             string(item.Status),
		CreatedAt:          item.CreatedAt,
		ResolvedAt:         optionalTime(item.ResolvedAt),
	}
}

func messageToDTO(ctx context.Context, item message.Message) messageDTO {
	_, span := startSpan(ctx, "httpapi.messageToDTO")
	defer span.End()

	return messageDTO{
		ID:          item.ID,
		SenderID:    item.SenderID,
		RecipientID: item.RecipientID,
		Body:        item.Body,
		SentAt:      item.SentAt,
		ReadAt:      optionalTime(item.ReadAt),
	}
}

func friendRequestToDTO(ctx context.Context, item message.FriendRequest) friendRequestDTO {
	_, span := startSpan(ctx, "httpapi.friendRequestToDTO")
	defer span.End()

	return friendRequestDTO{
		ID:          item.ID,
		SenderID:    item.SenderID,
		RecipientID: item.RecipientID,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt,
		ResolvedAt:  optionalTime(item.ResolvedAt),
	}
}

func refreshResultToDTO(item usecase.RefreshResult) refreshResultDTO {
	return refreshResultDTO{
		Leagues:        item.Leagues,
		LinesFetched:   item.LinesFetched,
		PlayersUpdated: item.PlayersUpdated,
		Skipped:        item.Skipped,
		DurationMs:     item.DurationMs,
	}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
