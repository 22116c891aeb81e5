package scoring

import (
	"fmt"

	"github.com/Dosada05/sporter/models"
)

type Phase int

const (
	Scheduled Phase = iota
	InProgress
	Finished
)

func (p Phase) String() string {
	switch p {
	case Scheduled:
		return "scheduled"
	case InProgress:
		return "in_progress"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// MatchStatus maps the phase to the value persisted in matches.status.
func (p Phase) MatchStatus() models.MatchStatus {
	switch p {
	case InProgress:
		return models.MatchStatusInProgress
	case Finished:
		return models.MatchStatusFinished
	default:
		return models.MatchStatusScheduled
	}
}

// State is the best-of-three scoring state of one match, rebuilt from its set log.
// The zero value is a scheduled match with no sets.
type State struct {
	HomeWins int
	AwayWins int
	Sets     []SetScore
}

// Replay rebuilds the state from persisted set rows ordered by sequence.
func Replay(games []*models.MatchGame) (State, error) {
	var st State
	for _, g := range games {
		next, err := st.Apply(SetScore{Home: g.HomeScore, Away: g.AwayScore})
		if err != nil {
			return State{}, fmt.Errorf("set %d of match %d: %w", g.Seq, g.MatchID, err)
		}
		st = next
	}
	return st, nil
}

func (s State) SetsPlayed() int {
	return len(s.Sets)
}

func (s State) Phase() Phase {
	switch {
	case s.HomeWins >= SetsToWin || s.AwayWins >= SetsToWin:
		return Finished
	case len(s.Sets) > 0:
		return InProgress
	default:
		return Scheduled
	}
}

// Winner reports the side that took the match. ok is false until the match is finished.
func (s State) Winner() (side models.Side, ok bool) {
	switch {
	case s.HomeWins >= SetsToWin:
		return models.SideHome, true
	case s.AwayWins >= SetsToWin:
		return models.SideAway, true
	}
	return "", false
}

// NextSeq is the sequence number the next accepted set gets.
func (s State) NextSeq() int {
	return len(s.Sets) + 1
}

// Apply is the single transition function. It returns the new state and leaves
// the receiver untouched, so a rejected set never changes anything.
func (s State) Apply(set SetScore) (State, error) {
	if s.Phase() == Finished {
		return s, ErrMatchFinished
	}
	if len(s.Sets) >= MaxSets {
		return s, ErrSetLimitReached
	}
	if err := set.Validate(); err != nil {
		return s, err
	}

	next := State{
		HomeWins: s.HomeWins,
		AwayWins: s.AwayWins,
		Sets:     make([]SetScore, len(s.Sets), len(s.Sets)+1),
	}
	copy(next.Sets, s.Sets)
	next.Sets = append(next.Sets, set)

	if set.Winner() == models.SideHome {
		next.HomeWins++
	} else {
		next.AwayWins++
	}
	return next, nil
}
