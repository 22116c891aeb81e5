package models

import "time"

// CompetitorKind is fixed when a match is scheduled and stored as matches.match_mode.
type CompetitorKind string

const (
	KindTeam       CompetitorKind = "team"
	KindIndividual CompetitorKind = "individual"
)

func (k CompetitorKind) Valid() bool {
	return k == KindTeam || k == KindIndividual
}

type MatchStatus string

const (
	MatchStatusScheduled  MatchStatus = "scheduled"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusFinished   MatchStatus = "finished"
)

// Side identifies one of the two slots of a match.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

func (s Side) Opponent() Side {
	if s == SideHome {
		return SideAway
	}
	return SideHome
}

type Match struct {
	ID           int            `json:"id" db:"id"`
	SportID      int            `json:"sport_id" db:"sport_id"`
	Mode         CompetitorKind `json:"match_mode" db:"match_mode"`
	HomeTeamID   *int           `json:"home_team_id,omitempty" db:"home_team_id"`
	AwayTeamID   *int           `json:"away_team_id,omitempty" db:"away_team_id"`
	StartTime    *time.Time     `json:"start_time,omitempty" db:"start_time"`
	Venue        *string        `json:"venue,omitempty" db:"venue"`
	Status       MatchStatus    `json:"status" db:"status"`
	IsFinished   bool           `json:"is_finished" db:"is_finished"`
	WinnerTeamID *int           `json:"winner_team_id,omitempty" db:"winner_team_id"`
	HomeScore    int            `json:"home_score" db:"home_score"`
	AwayScore    int            `json:"away_score" db:"away_score"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`

	// Participants заполняется для индивидуального режима (по порядку слотов).
	Participants []int        `json:"participants,omitempty" db:"-"`
	Games        []*MatchGame `json:"games,omitempty" db:"-"`
}

// MatchGame is one row of the append-only set log.
type MatchGame struct {
	ID         int       `json:"id" db:"id"`
	MatchID    int       `json:"match_id" db:"match_id"`
	Seq        int       `json:"seq" db:"seq"`
	HomeScore  int       `json:"home_score" db:"home_score"`
	AwayScore  int       `json:"away_score" db:"away_score"`
	WinnerSide Side      `json:"winner_side" db:"winner_side"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
