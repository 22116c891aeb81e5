package models

import "time"

// Standing is the ledger row of one competitor in one sport.
type Standing struct {
	ID           int       `json:"id" db:"id"`
	SportID      int       `json:"sport_id" db:"sport_id"`
	TeamID       int       `json:"team_id" db:"team_id"`
	Played       int       `json:"played" db:"played"`
	Win          int       `json:"win" db:"win"`
	Draw         int       `json:"draw" db:"draw"`
	Loss         int       `json:"loss" db:"loss"`
	GameWin      int       `json:"game_win" db:"game_win"`
	GameLoss     int       `json:"game_loss" db:"game_loss"`
	SetWin       int       `json:"set_win" db:"set_win"`
	SetLoss      int       `json:"set_loss" db:"set_loss"`
	ScoreFor     int       `json:"score_for" db:"score_for"`
	ScoreAgainst int       `json:"score_against" db:"score_against"`
	Points       int       `json:"pts" db:"pts"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// StandingRow is a ranked ledger row enriched with competitor data for display.
type StandingRow struct {
	Standing
	Rank       int     `json:"rank" db:"-"`
	TeamName   string  `json:"team_name" db:"team_name"`
	LogoKey    *string `json:"-" db:"logo_key"`
	LogoURL    *string `json:"logo_url,omitempty" db:"-"`
	SetDiff    int     `json:"set_diff" db:"set_diff"`
	ScoreDiff  int     `json:"score_diff" db:"score_diff"`
	TotalMatch int     `json:"total_match" db:"total_match"`
}

// StandingsTable is the public standings view of one sport and mode.
type StandingsTable struct {
	Sport       *Sport         `json:"sport"`
	Mode        CompetitorKind `json:"mode"`
	Rows        []*StandingRow `json:"rows"`
	GeneratedAt time.Time      `json:"generated_at"`
}
