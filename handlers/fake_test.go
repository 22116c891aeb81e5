package handlers

import (
	"context"
	"io"

	"github.com/Dosada05/sporter/models"
	"github.com/Dosada05/sporter/services"
	"github.com/Dosada05/sporter/storage"
)

// ------------------------
// Fake Match Service
// ------------------------

type fakeMatchService struct {
	ScheduleMatchFn       func(ctx context.Context, actor models.Identity, input services.ScheduleMatchInput) (*models.Match, error)
	GetMatchFn            func(ctx context.Context, actor models.Identity, matchID int) (*models.Match, error)
	SubmitSetFn           func(ctx context.Context, actor models.Identity, matchID int, mode models.CompetitorKind, home, away int) (*services.SetResult, error)
	SubmitLegacyScoreFn   func(ctx context.Context, actor models.Identity, matchID int, home, away int) (*services.SetResult, error)
	RecordClassicResultFn func(ctx context.Context, actor models.Identity, matchID int, home, away int) (*services.ClassicResult, error)
}

func (f *fakeMatchService) ScheduleMatch(ctx context.Context, actor models.Identity, input services.ScheduleMatchInput) (*models.Match, error) {
	return f.ScheduleMatchFn(ctx, actor, input)
}

func (f *fakeMatchService) GetMatch(ctx context.Context, actor models.Identity, matchID int) (*models.Match, error) {
	return f.GetMatchFn(ctx, actor, matchID)
}

func (f *fakeMatchService) SubmitSet(ctx context.Context, actor models.Identity, matchID int, mode models.CompetitorKind, home, away int) (*services.SetResult, error) {
	return f.SubmitSetFn(ctx, actor, matchID, mode, home, away)
}

func (f *fakeMatchService) SubmitLegacyScore(ctx context.Context, actor models.Identity, matchID int, home, away int) (*services.SetResult, error) {
	return f.SubmitLegacyScoreFn(ctx, actor, matchID, home, away)
}

func (f *fakeMatchService) RecordClassicResult(ctx context.Context, actor models.Identity, matchID int, home, away int) (*services.ClassicResult, error) {
	return f.RecordClassicResultFn(ctx, actor, matchID, home, away)
}

// ------------------------
// Fake Standing Service
// ------------------------

type fakeStandingService struct {
	ListStandingsFn   func(ctx context.Context, sportID int, mode string) (*models.StandingsTable, error)
	SyncStandingsFn   func(ctx context.Context, actor models.Identity, sportID int, mode string) (int, error)
	PublishSnapshotFn func(ctx context.Context, sportID int, mode string) (*storage.UploadResult, error)
}

func (f *fakeStandingService) EnsureStandingsRow(ctx context.Context, sportID, teamID int) error {
	return nil
}

func (f *fakeStandingService) ListStandings(ctx context.Context, sportID int, mode string) (*models.StandingsTable, error) {
	return f.ListStandingsFn(ctx, sportID, mode)
}

func (f *fakeStandingService) SyncStandings(ctx context.Context, actor models.Identity, sportID int, mode string) (int, error) {
	return f.SyncStandingsFn(ctx, actor, sportID, mode)
}

func (f *fakeStandingService) PublishSnapshot(ctx context.Context, sportID int, mode string) (*storage.UploadResult, error) {
	return f.PublishSnapshotFn(ctx, sportID, mode)
}

// ------------------------
// Fake Purchase Service
// ------------------------

type fakePurchaseService struct {
	BuyTicketFn         func(ctx context.Context, userID, ticketTypeID, quantity int) (*models.Order, error)
	SaveTicketHoldersFn func(ctx context.Context, userID, orderID int, holders []models.TicketHolder) (int, error)
	GetOrderFn          func(ctx context.Context, userID, orderID int) (*models.Order, error)
}

func (f *fakePurchaseService) BuyTicket(ctx context.Context, userID, ticketTypeID, quantity int) (*models.Order, error) {
	return f.BuyTicketFn(ctx, userID, ticketTypeID, quantity)
}

func (f *fakePurchaseService) SaveTicketHolders(ctx context.Context, userID, orderID int, holders []models.TicketHolder) (int, error) {
	return f.SaveTicketHoldersFn(ctx, userID, orderID, holders)
}

func (f *fakePurchaseService) GetOrder(ctx context.Context, userID, orderID int) (*models.Order, error) {
	return f.GetOrderFn(ctx, userID, orderID)
}

// ------------------------
// Fake Sport / Team Services
// ------------------------

type fakeSportService struct {
	GetAllSportsFn    func(ctx context.Context) ([]models.Sport, error)
	GetSportByIDFn    func(ctx context.Context, id int) (*models.Sport, error)
	UploadSportLogoFn func(ctx context.Context, sportID int, file io.Reader, contentType string) (*models.Sport, error)
}

func (f *fakeSportService) GetAllSports(ctx context.Context) ([]models.Sport, error) {
	return f.GetAllSportsFn(ctx)
}

func (f *fakeSportService) GetSportByID(ctx context.Context, id int) (*models.Sport, error) {
	return f.GetSportByIDFn(ctx, id)
}

func (f *fakeSportService) UploadSportLogo(ctx context.Context, sportID int, file io.Reader, contentType string) (*models.Sport, error) {
	return f.UploadSportLogoFn(ctx, sportID, file, contentType)
}

type fakeTeamService struct {
	ListTeamsFn      func(ctx context.Context, sportID int, mode string) ([]models.Team, error)
	GetTeamByIDFn    func(ctx context.Context, teamID int) (*models.Team, error)
	UploadTeamLogoFn func(ctx context.Context, actor models.Identity, teamID int, file io.Reader, contentType string) (*models.Team, error)
}

func (f *fakeTeamService) ListTeams(ctx context.Context, sportID int, mode string) ([]models.Team, error) {
	return f.ListTeamsFn(ctx, sportID, mode)
}

func (f *fakeTeamService) GetTeamByID(ctx context.Context, teamID int) (*models.Team, error) {
	return f.GetTeamByIDFn(ctx, teamID)
}

func (f *fakeTeamService) UploadTeamLogo(ctx context.Context, actor models.Identity, teamID int, file io.Reader, contentType string) (*models.Team, error) {
	return f.UploadTeamLogoFn(ctx, actor, teamID, file, contentType)
}
