package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/sporter/models"
	"github.com/Dosada05/sporter/repositories"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	// GetStats aggregates counters over the sports the actor manages.
	GetStats(ctx context.Context, actor models.Identity) (models.DashboardStats, error)
}

type dashboardService struct {
	access         AccessService
	matchRepo      repositories.MatchRepository
	ticketTypeRepo repositories.TicketTypeRepository
	teamRepo       repositories.TeamRepository
	standingRepo   repositories.StandingRepository
}

func NewDashboardService(
	access AccessService,
	matchRepo repositories.MatchRepository,
	ticketTypeRepo repositories.TicketTypeRepository,
	teamRepo repositories.TeamRepository,
	standingRepo repositories.StandingRepository,
) DashboardService {
	return &dashboardService{
		access:         access,
		matchRepo:      matchRepo,
		ticketTypeRepo: ticketTypeRepo,
		teamRepo:       teamRepo,
		standingRepo:   standingRepo,
	}
}

func (s *dashboardService) GetStats(ctx context.Context, actor models.Identity) (models.DashboardStats, error) {
	sportIDs, err := s.access.AllowedSports(ctx, actor)
	if err != nil {
		return models.DashboardStats{}, err
	}
	stats := models.DashboardStats{SportIDs: sportIDs}
	if len(sportIDs) == 0 {
		stats.SportIDs = []int{}
		return stats, nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, finished, err := s.matchRepo.CountBySports(gCtx, sportIDs)
		if err != nil {
			return fmt.Errorf("count matches: %w", err)
		}
		stats.MatchesTotal, stats.MatchesFinished = total, finished
		return nil
	})
	g.Go(func() error {
		types, sold, err := s.ticketTypeRepo.CountBySports(gCtx, sportIDs)
		if err != nil {
			return fmt.Errorf("count ticket types: %w", err)
		}
		stats.TicketTypesTotal, stats.TicketsSold = types, sold
		return nil
	})
	g.Go(func() error {
		n, err := s.teamRepo.CountBySports(gCtx, sportIDs)
		if err != nil {
			return fmt.Errorf("count competitors: %w", err)
		}
		stats.CompetitorsTotal = n
		return nil
	})
	g.Go(func() error {
		n, err := s.standingRepo.CountBySports(gCtx, sportIDs)
		if err != nil {
			return fmt.Errorf("count standings: %w", err)
		}
		stats.StandingRows = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, err
	}
	return stats, nil
}
