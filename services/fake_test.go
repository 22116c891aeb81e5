package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/Dosada05/sporter/live"
	"github.com/Dosada05/sporter/models"
	"github.com/Dosada05/sporter/repositories"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ------------------------
// Fake Transactor
// ------------------------

// fakeTransactor runs fn directly with a nil executor; the fake repositories ignore it.
type fakeTransactor struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(tx repositories.SQLExecutor) error) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return fn(nil)
}

// ------------------------
// Fake Match Repo
// ------------------------

type fakeMatchRepo struct {
	mu           sync.Mutex
	trace        []string
	nextID       int
	matches      map[int]*models.Match
	participants map[int][]int
	games        map[int][]*models.MatchGame

	InsertGameFn func(ctx context.Context, game *models.MatchGame) error
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{
		nextID:       1,
		matches:      map[int]*models.Match{},
		participants: map[int][]int{},
		games:        map[int][]*models.MatchGame{},
	}
}

func (f *fakeMatchRepo) record(op string) {
	f.trace = append(f.trace, op)
}

func (f *fakeMatchRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *fakeMatchRepo) put(m *models.Match) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m.ID == 0 {
		m.ID = f.nextID
	}
	if m.ID >= f.nextID {
		f.nextID = m.ID + 1
	}
	if m.Status == "" {
		m.Status = models.MatchStatusScheduled
	}
	cp := *m
	f.matches[m.ID] = &cp
	if len(m.Participants) > 0 {
		f.participants[m.ID] = append([]int(nil), m.Participants...)
	}
}

func (f *fakeMatchRepo) get(id int) *models.Match {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.matches[id]
	if !ok {
		return nil
	}
	cp := *m
	return &cp
}

func (f *fakeMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	f.mu.Lock()
	f.record("Create")
	match.ID = f.nextID
	f.mu.Unlock()
	f.put(match)
	return nil
}

func (f *fakeMatchRepo) AddParticipants(ctx context.Context, exec repositories.SQLExecutor, matchID int, teamIDs []int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("AddParticipants")
	f.participants[matchID] = append([]int(nil), teamIDs...)
	return nil
}

func (f *fakeMatchRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	f.mu.Lock()
	f.record("GetByID")
	f.mu.Unlock()
	m := f.get(id)
	if m == nil {
		return nil, repositories.ErrMatchNotFound
	}
	return m, nil
}

func (f *fakeMatchRepo) GetForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	f.mu.Lock()
	f.record("GetForUpdate")
	f.mu.Unlock()
	m := f.get(id)
	if m == nil {
		return nil, repositories.ErrMatchNotFound
	}
	return m, nil
}

func (f *fakeMatchRepo) ListParticipants(ctx context.Context, exec repositories.SQLExecutor, matchID int) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.participants[matchID]...), nil
}

func (f *fakeMatchRepo) ListGames(ctx context.Context, exec repositories.SQLExecutor, matchID int) ([]*models.MatchGame, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.MatchGame, 0, len(f.games[matchID]))
	for _, g := range f.games[matchID] {
		cp := *g
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeMatchRepo) InsertGame(ctx context.Context, exec repositories.SQLExecutor, game *models.MatchGame) error {
	if f.InsertGameFn != nil {
		if err := f.InsertGameFn(ctx, game); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("InsertGame")
	for _, g := range f.games[game.MatchID] {
		if g.Seq == game.Seq {
			return repositories.ErrMatchGameConflict
		}
	}
	cp := *game
	cp.ID = len(f.games[game.MatchID]) + 1
	game.ID = cp.ID
	f.games[game.MatchID] = append(f.games[game.MatchID], &cp)
	return nil
}

func (f *fakeMatchRepo) UpdateProgress(ctx context.Context, exec repositories.SQLExecutor, matchID int, status models.MatchStatus, homeScore, awayScore int, winnerTeamID *int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateProgress")
	m, ok := f.matches[matchID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.Status = status
	m.IsFinished = status == models.MatchStatusFinished
	m.HomeScore, m.AwayScore = homeScore, awayScore
	m.WinnerTeamID = winnerTeamID
	return nil
}

func (f *fakeMatchRepo) ListCompetitorIDs(ctx context.Context, exec repositories.SQLExecutor, sportID int, mode models.CompetitorKind) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[int]bool{}
	var ids []int
	add := func(id int) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for id, m := range f.matches {
		if m.SportID != sportID || m.Mode != mode {
			continue
		}
		if m.HomeTeamID != nil {
			add(*m.HomeTeamID)
		}
		if m.AwayTeamID != nil {
			add(*m.AwayTeamID)
		}
		for _, p := range f.participants[id] {
			add(p)
		}
	}
	return ids, nil
}

func (f *fakeMatchRepo) CountBySports(ctx context.Context, sportIDs []int) (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total, finished int
	for _, m := range f.matches {
		if containsInt(sportIDs, m.SportID) {
			total++
			if m.IsFinished {
				finished++
			}
		}
	}
	return total, finished, nil
}

// ------------------------
// Fake Standing Repo
// ------------------------

type standingKey struct{ sportID, teamID int }

type fakeStandingRepo struct {
	mu   sync.Mutex
	rows map[standingKey]*models.Standing

	IncrementFn func(ctx context.Context, sportID, teamID int, delta repositories.StandingDelta) error
	ListFn      func(ctx context.Context, sportID int, mode models.CompetitorKind, system models.ScoringSystem) ([]*models.StandingRow, error)
}

func newFakeStandingRepo() *fakeStandingRepo {
	return &fakeStandingRepo{rows: map[standingKey]*models.Standing{}}
}

func (f *fakeStandingRepo) row(sportID, teamID int) models.Standing {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rows[standingKey{sportID, teamID}]; ok {
		return *r
	}
	return models.Standing{}
}

func (f *fakeStandingRepo) Ensure(ctx context.Context, exec repositories.SQLExecutor, sportID, teamID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := standingKey{sportID, teamID}
	if _, ok := f.rows[k]; !ok {
		f.rows[k] = &models.Standing{ID: len(f.rows) + 1, SportID: sportID, TeamID: teamID}
	}
	return nil
}

func (f *fakeStandingRepo) Get(ctx context.Context, exec repositories.SQLExecutor, sportID, teamID int) (*models.Standing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[standingKey{sportID, teamID}]
	if !ok {
		return nil, repositories.ErrStandingNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStandingRepo) Increment(ctx context.Context, exec repositories.SQLExecutor, sportID, teamID int, d repositories.StandingDelta) error {
	if f.IncrementFn != nil {
		if err := f.IncrementFn(ctx, sportID, teamID, d); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[standingKey{sportID, teamID}]
	if !ok {
		return repositories.ErrStandingNotFound
	}
	r.Played += d.Played
	r.Win += d.Win
	r.Draw += d.Draw
	r.Loss += d.Loss
	r.GameWin += d.GameWin
	r.GameLoss += d.GameLoss
	r.SetWin += d.SetWin
	r.SetLoss += d.SetLoss
	r.ScoreFor += d.ScoreFor
	r.ScoreAgainst += d.ScoreAgainst
	r.Points += d.Points
	return nil
}

func (f *fakeStandingRepo) List(ctx context.Context, exec repositories.SQLExecutor, sportID int, mode models.CompetitorKind, system models.ScoringSystem) ([]*models.StandingRow, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, sportID, mode, system)
	}
	return []*models.StandingRow{}, nil
}

func (f *fakeStandingRepo) CountBySports(ctx context.Context, sportIDs []int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for k := range f.rows {
		if containsInt(sportIDs, k.sportID) {
			n++
		}
	}
	return n, nil
}

// ------------------------
// Fake Team / Sport / User Repos
// ------------------------

type fakeTeamRepo struct {
	teams map[int]*models.Team
}

func (f *fakeTeamRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTeamRepo) ListBySport(ctx context.Context, sportID int, kind models.CompetitorKind) ([]models.Team, error) {
	out := make([]models.Team, 0)
	for _, t := range f.teams {
		if t.SportID != sportID || (kind != "" && t.Kind() != kind) {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTeamRepo) UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error {
	t, ok := f.teams[teamID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.LogoKey = logoKey
	return nil
}

func (f *fakeTeamRepo) CountBySports(ctx context.Context, sportIDs []int) (int, error) {
	n := 0
	for _, t := range f.teams {
		if containsInt(sportIDs, t.SportID) {
			n++
		}
	}
	return n, nil
}

type fakeSportRepo struct {
	sports map[int]*models.Sport
}

func (f *fakeSportRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Sport, error) {
	s, ok := f.sports[id]
	if !ok {
		return nil, repositories.ErrSportNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSportRepo) GetAll(ctx context.Context) ([]models.Sport, error) {
	out := make([]models.Sport, 0, len(f.sports))
	for _, s := range f.sports {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSportRepo) UpdateLogoKey(ctx context.Context, sportID int, logoKey *string) error {
	s, ok := f.sports[sportID]
	if !ok {
		return repositories.ErrSportNotFound
	}
	s.LogoKey = logoKey
	return nil
}

type fakeUserRepo struct {
	sports map[int][]int
}

func (f *fakeUserRepo) ListSportIDs(ctx context.Context, userID int) ([]int, error) {
	return append([]int{}, f.sports[userID]...), nil
}

func (f *fakeUserRepo) HasSport(ctx context.Context, userID, sportID int) (bool, error) {
	return containsInt(f.sports[userID], sportID), nil
}

// ------------------------
// Fake Ticket / Order Repos
// ------------------------

type fakeTicketTypeRepo struct {
	mu     sync.Mutex
	types  map[int]*models.TicketType
	orders *fakeOrderRepo
}

func (f *fakeTicketTypeRepo) get(id int) (*models.TicketType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.types[id]
	if !ok {
		return nil, repositories.ErrTicketTypeNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTicketTypeRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.TicketType, error) {
	return f.get(id)
}

func (f *fakeTicketTypeRepo) GetForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.TicketType, error) {
	return f.get(id)
}

func (f *fakeTicketTypeRepo) IncrementSold(ctx context.Context, exec repositories.SQLExecutor, id int, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.types[id]
	if !ok {
		return repositories.ErrTicketTypeNotFound
	}
	if t.Sold+quantity > t.Quota {
		return repositories.ErrTicketQuotaExceeded
	}
	t.Sold += quantity
	return nil
}

func (f *fakeTicketTypeRepo) SumUserQuantity(ctx context.Context, exec repositories.SQLExecutor, userID, ticketTypeID int) (int, error) {
	f.orders.mu.Lock()
	defer f.orders.mu.Unlock()
	sum := 0
	for _, item := range f.orders.items {
		o := f.orders.orders[item.OrderID]
		if o.UserID == userID && o.Status != models.OrderStatusCancelled && item.TicketTypeID == ticketTypeID {
			sum += item.Quantity
		}
	}
	return sum, nil
}

func (f *fakeTicketTypeRepo) CountBySports(ctx context.Context, sportIDs []int) (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var types, sold int
	for _, t := range f.types {
		if t.SportID != nil && containsInt(sportIDs, *t.SportID) {
			types++
			sold += t.Sold
		}
	}
	return types, sold, nil
}

type fakeOrderRepo struct {
	mu      sync.Mutex
	orders  map[int]*models.Order
	items   map[int]*models.OrderItem
	tickets map[int]*models.Ticket
	codes   map[string]bool

	CreateTicketFn func(ctx context.Context, ticket *models.Ticket) error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:  map[int]*models.Order{},
		items:   map[int]*models.OrderItem{},
		tickets: map[int]*models.Ticket{},
		codes:   map[string]bool{},
	}
}

func (f *fakeOrderRepo) Create(ctx context.Context, exec repositories.SQLExecutor, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order.ID = len(f.orders) + 1
	cp := *order
	f.orders[order.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) CreateItem(ctx context.Context, exec repositories.SQLExecutor, item *models.OrderItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item.ID = len(f.items) + 1
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) CreateTicket(ctx context.Context, exec repositories.SQLExecutor, ticket *models.Ticket) error {
	if f.CreateTicketFn != nil {
		if err := f.CreateTicketFn(ctx, ticket); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.codes[ticket.TicketCode] {
		return repositories.ErrTicketCodeConflict
	}
	f.codes[ticket.TicketCode] = true
	ticket.ID = len(f.tickets) + 1
	cp := *ticket
	f.tickets[ticket.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) GetForUser(ctx context.Context, exec repositories.SQLExecutor, orderID, userID int) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok || o.UserID != userID {
		return nil, repositories.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) ListItems(ctx context.Context, exec repositories.SQLExecutor, orderID int) ([]*models.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.OrderItem
	for id := 1; id <= len(f.items); id++ {
		if it := f.items[id]; it != nil && it.OrderID == orderID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListTickets(ctx context.Context, exec repositories.SQLExecutor, orderID int) ([]*models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Ticket
	for id := 1; id <= len(f.tickets); id++ {
		t := f.tickets[id]
		if t == nil {
			continue
		}
		if it := f.items[t.OrderItemID]; it != nil && it.OrderID == orderID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateHolderName(ctx context.Context, exec repositories.SQLExecutor, orderID, ticketID int, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[ticketID]
	if !ok {
		return repositories.ErrTicketNotFound
	}
	if it := f.items[t.OrderItemID]; it == nil || it.OrderID != orderID {
		return repositories.ErrTicketNotFound
	}
	n := name
	t.HolderName = &n
	return nil
}

// ------------------------
// Fake Publisher / Recorder
// ------------------------

type fakePublisher struct {
	mu       sync.Mutex
	messages []live.Message
}

func (f *fakePublisher) BroadcastToRoom(roomID string, message interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := message.(live.Message); ok {
		f.messages = append(f.messages, msg)
	}
}

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.messages))
	for _, m := range f.messages {
		out = append(out, m.Type)
	}
	return out
}

type fakeRecorder struct {
	mu        sync.Mutex
	sets      map[string]int
	finished  int
	results   map[string]int
	purchases map[string]int
	sold      int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{sets: map[string]int{}, results: map[string]int{}, purchases: map[string]int{}}
}

func (f *fakeRecorder) SetSubmitted(mode string, outcome string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets[outcome]++
}

func (f *fakeRecorder) MatchFinished(mode string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finished++
}

func (f *fakeRecorder) ResultRecorded(outcome string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[outcome]++
}

func (f *fakeRecorder) TicketPurchase(outcome string, quantity int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purchases[outcome]++
	f.sold += quantity
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
