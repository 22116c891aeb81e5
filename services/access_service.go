package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/sporter/models"
	"github.com/Dosada05/sporter/repositories"
)

// AccessService decides whether a back-office user may manage a sport.
// Admins manage every sport; subadmins only the sports assigned in user_sports.
type AccessService interface {
	AuthorizeSport(ctx context.Context, actor models.Identity, sportID int) error
	AllowedSports(ctx context.Context, actor models.Identity) ([]int, error)
}

type accessService struct {
	userRepo  repositories.UserRepository
	sportRepo repositories.SportRepository
}

func NewAccessService(userRepo repositories.UserRepository, sportRepo repositories.SportRepository) AccessService {
	return &accessService{userRepo: userRepo, sportRepo: sportRepo}
}

func (s *accessService) AuthorizeSport(ctx context.Context, actor models.Identity, sportID int) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleSubadmin:
		ok, err := s.userRepo.HasSport(ctx, actor.UserID, sportID)
		if err != nil {
			return fmt.Errorf("check sport access user=%d sport=%d: %w", actor.UserID, sportID, err)
		}
		if !ok {
			return ErrSportAccessDenied
		}
		return nil
	default:
		return ErrRoleNotAllowed
	}
}

func (s *accessService) AllowedSports(ctx context.Context, actor models.Identity) ([]int, error) {
	switch actor.Role {
	case models.RoleAdmin:
		sports, err := s.sportRepo.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list sports: %w", err)
		}
		ids := make([]int, 0, len(sports))
		for _, sp := range sports {
			ids = append(ids, sp.ID)
		}
		return ids, nil
	case models.RoleSubadmin:
		ids, err := s.userRepo.ListSportIDs(ctx, actor.UserID)
		if err != nil {
			return nil, fmt.Errorf("list sports of user %d: %w", actor.UserID, err)
		}
		return ids, nil
	default:
		return nil, ErrRoleNotAllowed
	}
}
