package models

// ScoringSystem определяет, как вид спорта ведёт турнирную таблицу.
type ScoringSystem string

const (
	// ScoringPadel: матчи до двух выигранных сетов, ранжирование по победам и разнице сетов.
	ScoringPadel ScoringSystem = "padel"
	// ScoringClassic: один итоговый счёт, 3 очка за победу и 1 за ничью.
	ScoringClassic ScoringSystem = "classic"
)

func (s ScoringSystem) Valid() bool {
	return s == ScoringPadel || s == ScoringClassic
}

// Sport представляет вид спорта.
type Sport struct {
	ID            int           `json:"id" db:"id"`
	Name          string        `json:"name" db:"name"`
	ScoringSystem ScoringSystem `json:"scoring_system" db:"scoring_system"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}
