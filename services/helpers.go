package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/sporter/metrics"
	"github.com/Dosada05/sporter/models"
	"github.com/Dosada05/sporter/repositories"
	"github.com/Dosada05/sporter/scoring"
	"github.com/Dosada05/sporter/storage"
)

// --- Общие хелперы ---

func intPtr(i int) *int { return &i }

// handleRepositoryError translates repository sentinels into service errors.
// Unknown errors are wrapped with op and surface as internal failures.
func handleRepositoryError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrSportNotFound):
		return ErrSportNotFound
	case errors.Is(err, repositories.ErrTeamNotFound),
		errors.Is(err, repositories.ErrMatchTeamInvalid),
		errors.Is(err, repositories.ErrMatchParticipantInvalid),
		errors.Is(err, repositories.ErrStandingTeamInvalid):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrMatchSportInvalid),
		errors.Is(err, repositories.ErrStandingSportInvalid):
		return ErrSportNotFound
	case errors.Is(err, repositories.ErrMatchGameConflict):
		return ErrConcurrentSetUpdate
	case errors.Is(err, repositories.ErrTicketTypeNotFound):
		return ErrTicketTypeNotFound
	case errors.Is(err, repositories.ErrTicketQuotaExceeded):
		return ErrInsufficientQuota
	case errors.Is(err, repositories.ErrOrderNotFound):
		return ErrOrderNotFound
	case errors.Is(err, repositories.ErrTicketNotFound):
		return ErrTicketNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// mapScoringError converts state machine errors into user-facing service errors.
func mapScoringError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, scoring.ErrTiedSet):
		return ErrTiedSetScore
	case errors.Is(err, scoring.ErrNegativeScore):
		return ErrNegativeSetScore
	case errors.Is(err, scoring.ErrScoreOutOfRange):
		return ErrSetScoreOutOfRange
	case errors.Is(err, scoring.ErrInvalidSetScore):
		return ErrInvalidSetScore
	case errors.Is(err, scoring.ErrMatchFinished):
		return ErrMatchFinished
	case errors.Is(err, scoring.ErrSetLimitReached):
		return ErrMatchSetLimit
	default:
		return err
	}
}

func parseCompetitorKind(mode string) (models.CompetitorKind, error) {
	kind := models.CompetitorKind(strings.ToLower(strings.TrimSpace(mode)))
	if !kind.Valid() {
		return "", ErrInvalidMatchMode
	}
	return kind, nil
}

func populateSportLogoURL(sport *models.Sport, uploader storage.FileUploader) {
	if sport != nil && sport.LogoKey != nil && *sport.LogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*sport.LogoKey)
		if url != "" {
			sport.LogoURL = &url
		}
	}
}

func populateStandingLogoURLs(rows []*models.StandingRow, uploader storage.FileUploader) {
	if uploader == nil {
		return
	}
	for _, row := range rows {
		if row == nil || row.LogoKey == nil || *row.LogoKey == "" {
			continue
		}
		url := uploader.GetPublicURL(*row.LogoKey)
		if url != "" {
			row.LogoURL = &url
		}
	}
}

// outcomeOf labels a failed operation for metrics: caller mistakes are rejections,
// everything else is a failure.
func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrValidationFailed),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrForbiddenOperation):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeFailed
	}
}
