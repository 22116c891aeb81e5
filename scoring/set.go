package scoring

import (
	"errors"
	"fmt"

	"github.com/Dosada05/sporter/models"
)

const (
	// SetsToWin is the number of sets that decides a best-of-three match.
	SetsToWin = 2
	// MaxSets caps the set log of one match.
	MaxSets = 3

	maxGamesPerSet = 7
)

var (
	ErrNegativeScore   = errors.New("score must not be negative")
	ErrTiedSet         = errors.New("set score must not be tied")
	ErrScoreOutOfRange = errors.New("set score exceeds 7 games")
	ErrInvalidSetScore = errors.New("set score is not a valid padel set result")
	ErrMatchFinished   = errors.New("match is already finished")
	ErrSetLimitReached = errors.New("match already has three sets")
)

// SetScore is a single submitted set result.
type SetScore struct {
	Home int
	Away int
}

// Winner returns the side that won the set. Call Validate first.
func (s SetScore) Winner() models.Side {
	if s.Home > s.Away {
		return models.SideHome
	}
	return models.SideAway
}

// Validate checks a set result against padel set rules:
// 6-4 (margin of exactly two at six games), or 7 games won 7-5 or 7-6.
func (s SetScore) Validate() error {
	if s.Home < 0 || s.Away < 0 {
		return ErrNegativeScore
	}
	if s.Home == s.Away {
		return ErrTiedSet
	}

	hi, lo := s.Home, s.Away
	if lo > hi {
		hi, lo = lo, hi
	}
	diff := hi - lo

	switch {
	case hi > maxGamesPerSet:
		return ErrScoreOutOfRange
	case hi == 6 && diff == 2:
		return nil
	case hi == 7 && (diff == 1 || diff == 2):
		return nil
	default:
		return fmt.Errorf("%w: %d-%d", ErrInvalidSetScore, s.Home, s.Away)
	}
}
