package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/sporter/models"
	"github.com/Dosada05/sporter/repositories"
	"github.com/Dosada05/sporter/scoring"
)

const (
	pointsForWin  = 3
	pointsForDraw = 1
)

// ledger applies match events to standings rows. Every method must run inside
// the transaction that holds the match row lock.
type ledger struct {
	standingRepo repositories.StandingRepository
}

func (l ledger) ensure(ctx context.Context, tx repositories.SQLExecutor, sportID int, teamIDs ...int) error {
	for _, teamID := range teamIDs {
		if err := l.standingRepo.Ensure(ctx, tx, sportID, teamID); err != nil {
			return handleRepositoryError(err, fmt.Sprintf("ensure standing sport=%d team=%d", sportID, teamID))
		}
	}
	return nil
}

func (l ledger) increment(ctx context.Context, tx repositories.SQLExecutor, sportID, teamID int, d repositories.StandingDelta) error {
	if err := l.standingRepo.Increment(ctx, tx, sportID, teamID, d); err != nil {
		return handleRepositoryError(err, fmt.Sprintf("update standing sport=%d team=%d", sportID, teamID))
	}
	return nil
}

// applySet credits one padel set to both sides. Legacy game counters move with the score counters.
func (l ledger) applySet(ctx context.Context, tx repositories.SQLExecutor, sportID int, sides competitorPair, set scoring.SetScore) error {
	home := repositories.StandingDelta{
		GameWin: set.Home, GameLoss: set.Away,
		ScoreFor: set.Home, ScoreAgainst: set.Away,
	}
	away := repositories.StandingDelta{
		GameWin: set.Away, GameLoss: set.Home,
		ScoreFor: set.Away, ScoreAgainst: set.Home,
	}
	if set.Winner() == models.SideHome {
		home.SetWin, away.SetLoss = 1, 1
	} else {
		away.SetWin, home.SetLoss = 1, 1
	}

	if err := l.increment(ctx, tx, sportID, sides.Home, home); err != nil {
		return err
	}
	return l.increment(ctx, tx, sportID, sides.Away, away)
}

// applyMatchResult closes a decided match: winner played+win+3 points, loser played+loss.
func (l ledger) applyMatchResult(ctx context.Context, tx repositories.SQLExecutor, sportID int, winnerID, loserID int) error {
	if err := l.increment(ctx, tx, sportID, winnerID, repositories.StandingDelta{Played: 1, Win: 1, Points: pointsForWin}); err != nil {
		return err
	}
	return l.increment(ctx, tx, sportID, loserID, repositories.StandingDelta{Played: 1, Loss: 1})
}

// applyClassicResult records a final score for sports without sets. Draws give a point each.
func (l ledger) applyClassicResult(ctx context.Context, tx repositories.SQLExecutor, sportID int, sides competitorPair, homeScore, awayScore int) error {
	home := repositories.StandingDelta{Played: 1, ScoreFor: homeScore, ScoreAgainst: awayScore, GameWin: homeScore, GameLoss: awayScore}
	away := repositories.StandingDelta{Played: 1, ScoreFor: awayScore, ScoreAgainst: homeScore, GameWin: awayScore, GameLoss: homeScore}

	switch {
	case homeScore > awayScore:
		home.Win, home.Points = 1, pointsForWin
		away.Loss = 1
	case awayScore > homeScore:
		away.Win, away.Points = 1, pointsForWin
		home.Loss = 1
	default:
		home.Draw, home.Points = 1, pointsForDraw
		away.Draw, away.Points = 1, pointsForDraw
	}

	if err := l.increment(ctx, tx, sportID, sides.Home, home); err != nil {
		return err
	}
	return l.increment(ctx, tx, sportID, sides.Away, away)
}

// competitorPair is the resolved pair of standings keys for one match.
type competitorPair struct {
	Home int
	Away int
}

func (p competitorPair) of(side models.Side) int {
	if side == models.SideHome {
		return p.Home
	}
	return p.Away
}
