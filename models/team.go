package models

import "time"

// Team is a competitor. Individual athletes are stored as single-member teams
// with IsIndividual set.
type Team struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	SportID      int       `json:"sport_id" db:"sport_id"`
	IsIndividual bool      `json:"is_individual" db:"is_individual"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}

// Kind reports which match mode this competitor may play in.
func (t *Team) Kind() CompetitorKind {
	if t.IsIndividual {
		return KindIndividual
	}
	return KindTeam
}
