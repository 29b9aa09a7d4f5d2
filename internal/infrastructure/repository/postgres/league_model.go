package postgres

import (
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/lib/pq"
	"github.com/riftlabs/fantasy-esports/internal/domain/league"
)

type leagueTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	Name           string         `db:"name"`
	CommissionerID string         `db:"commissioner_user_id"`
	Region         string         `db:"region"`
	MaxTeams       int            `db:"max_teams"`
	TeamIDs        pq.StringArray `db:"team_ids"`
	Schedule       []byte         `db:"schedule"`
	CurrentWeek    int            `db:"current_week"`
	Status         string         `db:"status"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      *time.Time     `db:"deleted_at"`
}

type leagueInsertModel struct {
	PublicID       string         `db:"public_id"`
	Name           string         `db:"name"`
	CommissionerID string         `db:"commissioner_user_id"`
	Region         string         `db:"region"`
	MaxTeams       int            `db:"max_teams"`
	TeamIDs        pq.StringArray `db:"team_ids"`
	Schedule       []byte         `db:"schedule"`
	CurrentWeek    int            `db:"current_week"`
	Status         string         `db:"status"`
}

type scheduleEntry struct {
	ID         string  `json:"id"`
	Week       int     `json:"week"`
	HomeTeamID string  `json:"home_team_id"`
	AwayTeamID string  `json:"away_team_id"`
	HomeScore  float64 `json:"home_score"`
	AwayScore  float64 `json:"away_score"`
	Completed  bool    `json:"completed"`
}

func encodeSchedule(schedule []league.Matchup) ([]byte, error) {
	entries := make([]scheduleEntry, 0, len(schedule))
	for _, matchup := range schedule {
		entries = append(entries, scheduleEntry{
			ID:         matchup.ID,
			Week:       matchup.Week,
			HomeTeamID: matchup.HomeTeamID,
			AwayTeamID: matchup.AwayTeamID,
			HomeScore:  matchup.HomeScore,
			AwayScore:  matchup.AwayScore,
			Completed:  matchup.Completed,
		})
	}
	encoded, err := sonic.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("marshal schedule: %w", err)
	}
	return encoded, nil
}

func decodeSchedule(raw []byte) ([]league.Matchup, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var entries []scheduleEntry
	if err := sonic.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal schedule: %w", err)
	}
	schedule := make([]league.Matchup, 0, len(entries))
	for _, entry := range entries {
		schedule = append(schedule, league.Matchup{
			ID:         entry.ID,
			Week:       entry.Week,
			HomeTeamID: entry.HomeTeamID,
			AwayTeamID: entry.AwayTeamID,
			HomeScore:  entry.HomeScore,
			AwayScore:  entry.AwayScore,
			Completed:  entry.Completed,
		})
	}
	return schedule, nil
}

func leagueInsertFromDomain(item league.League) (leagueInsertModel, error) {
	schedule, err := encodeSchedule(item.Schedule)
	if err != nil {
		return leagueInsertModel{}, err
	}

	return leagueInsertModel{
		PublicID:       item.ID,
		Name:           item.Name,
		CommissionerID: item.CommissionerID,
		Region:         item.Region,
		MaxTeams:       item.MaxTeams,
		TeamIDs:        pq.StringArray(item.TeamIDs),
		Schedule:       schedule,
		CurrentWeek:    item.CurrentWeek,
		Status:         string(item.Status),
	}, nil
}

func leagueFromRow(row leagueTableModel) (league.League, error) {
	schedule, err := decodeSchedule(row.Schedule)
	if err != nil {
		return league.League{}, err
	}

	return league.League{
		ID:             row.PublicID,
		Name:           row.Name,
		CommissionerID: row.CommissionerID,
		Region:         row.Region,
		MaxTeams:       row.MaxTeams,
		TeamIDs:        append([]string(nil), row.TeamIDs...),
		Schedule:       schedule,
		CurrentWeek:    row.CurrentWeek,
		Status:         league.Status(row.Status),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}
