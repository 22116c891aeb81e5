package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/sporter/middleware"
	"github.com/Dosada05/sporter/models"
	"github.com/Dosada05/sporter/services"
	"github.com/Dosada05/sporter/storage"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

func intPtr(v int) *int { return &v }

// newTestRouter собирает минимальный роутер с аутентификацией, как в routes.SetupRoutes.
func newTestRouter(mh *MatchHandler, sh *StandingHandler, oh *OrderHandler) chi.Router {
	r := chi.NewRouter()
	r.Get("/standings", sh.ListStandings)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(testSecret))
		r.Post("/tickets/purchase", oh.BuyTicket)
		r.Get("/orders/{orderID}", oh.GetOrder)
		r.Post("/orders/{orderID}/holders", oh.SaveTicketHolders)
		r.Post("/subadmin/standings/sync", sh.SyncStandings)
		r.Post("/subadmin/matches", mh.ScheduleMatch)
		r.Get("/subadmin/matches/{matchID}", mh.GetMatch)
		r.Post("/subadmin/matches/{matchID}/score", mh.SubmitTeamScore)
		r.Post("/subadmin/matches/{matchID}/individual-score", mh.SubmitIndividualScore)
		r.Post("/subadmin/matches/{matchID}/submit-score", mh.SubmitLegacyScore)
		r.Post("/subadmin/matches/{matchID}/result", mh.RecordResult)
		r.Post("/admin/standings/publish", sh.PublishSnapshot)
	})
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path, body string, role models.UserRole, userID int) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		token, err := middleware.SignToken(testSecret, userID, role, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

// ------------------------
// MatchHandler
// ------------------------

func TestMatchHandler_SubmitTeamScore(t *testing.T) {
	var gotActor models.Identity
	var gotMode models.CompetitorKind
	ms := &fakeMatchService{
		SubmitSetFn: func(ctx context.Context, actor models.Identity, matchID int, mode models.CompetitorKind, home, away int) (*services.SetResult, error) {
			gotActor = actor
			gotMode = mode
			assert.Equal(t, 100, matchID)
			assert.Equal(t, 7, home)
			assert.Equal(t, 6, away)
			return &services.SetResult{MatchID: 100, Seq: 3, Finished: true, HomeWin: 2, AwayWin: 1, WinnerID: intPtr(10)}, nil
		},
	}
	router := newTestRouter(NewMatchHandler(ms), NewStandingHandler(&fakeStandingService{}), NewOrderHandler(&fakePurchaseService{}))

	rr := doRequest(t, router, http.MethodPost, "/subadmin/matches/100/score", `{"home_score":7,"away_score":6}`, models.RoleSubadmin, 2)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body := decodeBody(t, rr)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["finished"])
	assert.EqualValues(t, 2, body["homeWin"])
	assert.EqualValues(t, 1, body["awayWin"])
	assert.EqualValues(t, 10, body["winnerId"])
	assert.Equal(t, models.Identity{UserID: 2, Role: models.RoleSubadmin}, gotActor)
	assert.Equal(t, models.KindTeam, gotMode)
}

func TestMatchHandler_SubmitIndividualScore_UnfinishedHasNoWinner(t *testing.T) {
	ms := &fakeMatchService{
		SubmitSetFn: func(ctx context.Context, actor models.Identity, matchID int, mode models.CompetitorKind, home, away int) (*services.SetResult, error) {
			assert.Equal(t, models.KindIndividual, mode)
			return &services.SetResult{MatchID: matchID, Seq: 1, HomeWin: 1}, nil
		},
	}
	router := newTestRouter(NewMatchHandler(ms), NewStandingHandler(&fakeStandingService{}), NewOrderHandler(&fakePurchaseService{}))

	rr := doRequest(t, router, http.MethodPost, "/subadmin/matches/101/individual-score", `{"home_score":6,"away_score":4}`, models.RoleAdmin, 1)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, false, body["finished"])
	_, hasWinner := body["winnerId"]
	assert.False(t, hasWinner)
}

func TestMatchHandler_SubmitScore_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		role       models.UserRole
		serviceErr error
		wantStatus int
		wantMsg    string
	}{
		{name: "no token", path: "/subadmin/matches/100/score", body: `{"home_score":6,"away_score":2}`, wantStatus: http.StatusUnauthorized},
		{name: "bad id", path: "/subadmin/matches/abc/score", body: `{"home_score":6,"away_score":2}`, role: models.RoleAdmin, wantStatus: http.StatusBadRequest},
		{name: "missing away score", path: "/subadmin/matches/100/score", body: `{"home_score":6}`, role: models.RoleAdmin, wantStatus: http.StatusBadRequest},
		{name: "unknown field", path: "/subadmin/matches/100/score", body: `{"home":6,"away":2}`, role: models.RoleAdmin, wantStatus: http.StatusBadRequest},
		{name: "invalid set", path: "/subadmin/matches/100/score", body: `{"home_score":6,"away_score":5}`, role: models.RoleAdmin, serviceErr: services.ErrInvalidSetScore, wantStatus: http.StatusBadRequest, wantMsg: services.ErrInvalidSetScore.Error()},
		{name: "finished", path: "/subadmin/matches/100/score", body: `{"home_score":6,"away_score":2}`, role: models.RoleAdmin, serviceErr: services.ErrMatchFinished, wantStatus: http.StatusBadRequest, wantMsg: services.ErrMatchFinished.Error()},
		{name: "not found", path: "/subadmin/matches/100/score", body: `{"home_score":6,"away_score":2}`, role: models.RoleAdmin, serviceErr: services.ErrMatchNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden sport", path: "/subadmin/matches/100/score", body: `{"home_score":6,"away_score":2}`, role: models.RoleSubadmin, serviceErr: services.ErrSportAccessDenied, wantStatus: http.StatusForbidden},
		{name: "unexpected", path: "/subadmin/matches/100/score", body: `{"home_score":6,"away_score":2}`, role: models.RoleAdmin, serviceErr: errors.New("connection reset"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			ms := &fakeMatchService{
				SubmitSetFn: func(ctx context.Context, actor models.Identity, matchID int, mode models.CompetitorKind, home, away int) (*services.SetResult, error) {
					called = true
					return nil, tt.serviceErr
				},
			}
			router := newTestRouter(NewMatchHandler(ms), NewStandingHandler(&fakeStandingService{}), NewOrderHandler(&fakePurchaseService{}))

			rr := doRequest(t, router, http.MethodPost, tt.path, tt.body, tt.role, 1)

			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			body := decodeBody(t, rr)
			assert.Equal(t, false, body["success"])
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, body["message"])
			}
			assert.Equal(t, tt.serviceErr != nil, called)
		})
	}
}

func TestMatchHandler_SubmitLegacyScore(t *testing.T) {
	ms := &fakeMatchService{
		SubmitLegacyScoreFn: func(ctx context.Context, actor models.Identity, matchID int, home, away int) (*services.SetResult, error) {
			return &services.SetResult{MatchID: matchID, Seq: 2, Finished: true, HomeWin: 0, AwayWin: 2, WinnerID: intPtr(21)}, nil
		},
	}
	router := newTestRouter(NewMatchHandler(ms), NewStandingHandler(&fakeStandingService{}), NewOrderHandler(&fakePurchaseService{}))

	rr := doRequest(t, router, http.MethodPost, "/subadmin/matches/101/submit-score", `{"home_score":5,"away_score":7}`, models.RoleAdmin, 1)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.EqualValues(t, 21, body["winnerId"])
	assert.EqualValues(t, 2, body["seq"])
}

func TestMatchHandler_RecordResult(t *testing.T) {
	ms := &fakeMatchService{
		RecordClassicResultFn: func(ctx context.Context, actor models.Identity, matchID int, home, away int) (*services.ClassicResult, error) {
			return &services.ClassicResult{MatchID: matchID, HomeScore: home, AwayScore: away, Draw: true}, nil
		},
	}
	router := newTestRouter(NewMatchHandler(ms), NewStandingHandler(&fakeStandingService{}), NewOrderHandler(&fakePurchaseService{}))

	rr := doRequest(t, router, http.MethodPost, "/subadmin/matches/102/result", `{"home_score":1,"away_score":1}`, models.RoleAdmin, 1)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	result, ok := body["result"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, result["draw"])
	assert.EqualValues(t, 102, result["matchId"])
}

func TestMatchHandler_ScheduleMatch(t *testing.T) {
	ms := &fakeMatchService{
		ScheduleMatchFn: func(ctx context.Context, actor models.Identity, input services.ScheduleMatchInput) (*models.Match, error) {
			assert.Equal(t, 1, input.SportID)
			assert.Equal(t, "team", input.Mode)
			require.NotNil(t, input.HomeTeamID)
			return &models.Match{ID: 500, SportID: input.SportID}, nil
		},
	}
	router := newTestRouter(NewMatchHandler(ms), NewStandingHandler(&fakeStandingService{}), NewOrderHandler(&fakePurchaseService{}))

	rr := doRequest(t, router, http.MethodPost, "/subadmin/matches", `{"sport_id":1,"match_mode":"team","home_team_id":10,"away_team_id":11}`, models.RoleAdmin, 1)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	body := decodeBody(t, rr)
	assert.Equal(t, true, body["success"])
}

func TestMatchHandler_GetMatch_NotFound(t *testing.T) {
	ms := &fakeMatchService{
		GetMatchFn: func(ctx context.Context, actor models.Identity, matchID int) (*models.Match, error) {
			return nil, services.ErrMatchNotFound
		},
	}
	router := newTestRouter(NewMatchHandler(ms), NewStandingHandler(&fakeStandingService{}), NewOrderHandler(&fakePurchaseService{}))

	rr := doRequest(t, router, http.MethodGet, "/subadmin/matches/999", "", models.RoleAdmin, 1)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, services.ErrMatchNotFound.Error(), decodeBody(t, rr)["message"])
}

// ------------------------
// StandingHandler
// ------------------------

func TestStandingHandler_ListStandings(t *testing.T) {
	var gotMode string
	ss := &fakeStandingService{
		ListStandingsFn: func(ctx context.Context, sportID int, mode string) (*models.StandingsTable, error) {
			gotMode = mode
			return &models.StandingsTable{
				Mode: models.CompetitorKind(mode),
				Rows: []*models.StandingRow{{Standing: models.Standing{TeamID: 10, Points: 3}, Rank: 1}},
			}, nil
		},
	}
	router := newTestRouter(NewMatchHandler(&fakeMatchService{}), NewStandingHandler(ss), NewOrderHandler(&fakePurchaseService{}))

	rr := doRequest(t, router, http.MethodGet, "/standings?sport_id=1", "", "", 0)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "team", gotMode)
	body := decodeBody(t, rr)
	rows, ok := body["rows"].([]interface{})
	require.True(t, ok)
	assert.Len(t, rows, 1)
}

func TestStandingHandler_ListStandings_Errors(t *testing.T) {
	ss := &fakeStandingService{
		ListStandingsFn: func(ctx context.Context, sportID int, mode string) (*models.StandingsTable, error) {
			return nil, services.ErrSportNotFound
		},
	}
	router := newTestRouter(NewMatchHandler(&fakeMatchService{}), NewStandingHandler(ss), NewOrderHandler(&fakePurchaseService{}))

	rr := doRequest(t, router, http.MethodGet, "/standings", "", "", 0)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, router, http.MethodGet, "/standings?sport_id=-4", "", "", 0)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, router, http.MethodGet, "/standings?sport_id=77&mode=individual", "", "", 0)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStandingHandler_SyncStandings(t *testing.T) {
	ss := &fakeStandingService{
		SyncStandingsFn: func(ctx context.Context, actor models.Identity, sportID int, mode string) (int, error) {
			assert.Equal(t, "individual", mode)
			return 4, nil
		},
	}
	router := newTestRouter(NewMatchHandler(&fakeMatchService{}), NewStandingHandler(ss), NewOrderHandler(&fakePurchaseService{}))

	rr := doRequest(t, router, http.MethodPost, "/subadmin/standings/sync", `{"sport_id":1,"mode":"individual"}`, models.RoleSubadmin, 2)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.EqualValues(t, 4, decodeBody(t, rr)["competitors"])

	rr = doRequest(t, router, http.MethodPost, "/subadmin/standings/sync", `{"mode":"team"}`, models.RoleSubadmin, 2)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStandingHandler_PublishSnapshot(t *testing.T) {
	t.Run("uploaded", func(t *testing.T) {
		ss := &fakeStandingService{
			PublishSnapshotFn: func(ctx context.Context, sportID int, mode string) (*storage.UploadResult, error) {
				return &storage.UploadResult{Key: "standings/1/team.json", Location: "https://cdn.example.com/standings/1/team.json"}, nil
			},
		}
		router := newTestRouter(NewMatchHandler(&fakeMatchService{}), NewStandingHandler(ss), NewOrderHandler(&fakePurchaseService{}))

		rr := doRequest(t, router, http.MethodPost, "/admin/standings/publish", `{"sport_id":1}`, models.RoleAdmin, 1)

		require.Equal(t, http.StatusOK, rr.Code)
		body := decodeBody(t, rr)
		assert.Equal(t, "standings/1/team.json", body["key"])
		assert.Equal(t, "https://cdn.example.com/standings/1/team.json", body["url"])
	})

	t.Run("storage disabled", func(t *testing.T) {
		ss := &fakeStandingService{
			PublishSnapshotFn: func(ctx context.Context, sportID int, mode string) (*storage.UploadResult, error) {
				return nil, fmt.Errorf("publish standings: %w", storage.ErrStorageDisabled)
			},
		}
		router := newTestRouter(NewMatchHandler(&fakeMatchService{}), NewStandingHandler(ss), NewOrderHandler(&fakePurchaseService{}))

		rr := doRequest(t, router, http.MethodPost, "/admin/standings/publish", `{"sport_id":1}`, models.RoleAdmin, 1)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

// ------------------------
// OrderHandler
// ------------------------

func TestOrderHandler_BuyTicket(t *testing.T) {
	var gotQuantity int
	ps := &fakePurchaseService{
		BuyTicketFn: func(ctx context.Context, userID, ticketTypeID, quantity int) (*models.Order, error) {
			gotQuantity = quantity
			assert.Equal(t, 3, userID)
			assert.Equal(t, 7, ticketTypeID)
			return &models.Order{ID: 42, UserID: userID, Status: models.OrderStatusPaid}, nil
		},
	}
	router := newTestRouter(NewMatchHandler(&fakeMatchService{}), NewStandingHandler(&fakeStandingService{}), NewOrderHandler(ps))

	t.Run("explicit quantity", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodPost, "/tickets/purchase", `{"ticket_type_id":7,"quantity":3}`, models.RoleUser, 3)

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		assert.Equal(t, "/orders/42", rr.Header().Get("Location"))
		assert.Equal(t, 3, gotQuantity)
		assert.Equal(t, true, decodeBody(t, rr)["success"])
	})

	t.Run("quantity defaults to one", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodPost, "/tickets/purchase", `{"ticket_type_id":7}`, models.RoleUser, 3)

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, 1, gotQuantity)
	})
}

func TestOrderHandler_BuyTicket_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		role       models.UserRole
		serviceErr error
		wantStatus int
	}{
		{name: "anonymous", body: `{"ticket_type_id":1}`, wantStatus: http.StatusUnauthorized},
		{name: "missing ticket type", body: `{"quantity":1}`, role: models.RoleUser, wantStatus: http.StatusBadRequest},
		{name: "empty body", body: "", role: models.RoleUser, wantStatus: http.StatusBadRequest},
		{name: "sold out", body: `{"ticket_type_id":1,"quantity":2}`, role: models.RoleUser, serviceErr: services.ErrInsufficientQuota, wantStatus: http.StatusBadRequest},
		{name: "per user limit", body: `{"ticket_type_id":1,"quantity":2}`, role: models.RoleUser, serviceErr: services.ErrPerUserLimit, wantStatus: http.StatusBadRequest},
		{name: "sales closed", body: `{"ticket_type_id":1}`, role: models.RoleUser, serviceErr: services.ErrTicketSalesClosed, wantStatus: http.StatusBadRequest},
		{name: "zero quantity", body: `{"ticket_type_id":1,"quantity":0}`, role: models.RoleUser, serviceErr: services.ErrInvalidQuantity, wantStatus: http.StatusBadRequest},
		{name: "unknown type", body: `{"ticket_type_id":99}`, role: models.RoleUser, serviceErr: services.ErrTicketTypeNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := &fakePurchaseService{
				BuyTicketFn: func(ctx context.Context, userID, ticketTypeID, quantity int) (*models.Order, error) {
					if tt.serviceErr == nil {
						t.Fatalf("service must not be called")
					}
					return nil, tt.serviceErr
				},
			}
			router := newTestRouter(NewMatchHandler(&fakeMatchService{}), NewStandingHandler(&fakeStandingService{}), NewOrderHandler(ps))

			rr := doRequest(t, router, http.MethodPost, "/tickets/purchase", tt.body, tt.role, 3)

			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			assert.Empty(t, rr.Header().Get("Location"))
		})
	}
}

func TestOrderHandler_GetOrder(t *testing.T) {
	ps := &fakePurchaseService{
		GetOrderFn: func(ctx context.Context, userID, orderID int) (*models.Order, error) {
			if orderID != 42 {
				return nil, services.ErrOrderNotFound
			}
			return &models.Order{
				ID:      42,
				UserID:  userID,
				Status:  models.OrderStatusPaid,
				Tickets: []*models.Ticket{{ID: 1, OrderItemID: 7, TicketCode: "TCKT-0123456789ABCDEF"}},
			}, nil
		},
	}
	router := newTestRouter(NewMatchHandler(&fakeMatchService{}), NewStandingHandler(&fakeStandingService{}), NewOrderHandler(ps))

	rr := doRequest(t, router, http.MethodGet, "/orders/42", "", models.RoleUser, 3)
	require.Equal(t, http.StatusOK, rr.Code)
	order, ok := decodeBody(t, rr)["order"].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, order["tickets"], 1)

	rr = doRequest(t, router, http.MethodGet, "/orders/43", "", models.RoleUser, 3)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestOrderHandler_SaveTicketHolders(t *testing.T) {
	var got []models.TicketHolder
	ps := &fakePurchaseService{
		SaveTicketHoldersFn: func(ctx context.Context, userID, orderID int, holders []models.TicketHolder) (int, error) {
			got = holders
			return 2, nil
		},
	}
	router := newTestRouter(NewMatchHandler(&fakeMatchService{}), NewStandingHandler(&fakeStandingService{}), NewOrderHandler(ps))

	rr := doRequest(t, router, http.MethodPost, "/orders/42/holders",
		`{"names":[{"ticket_id":1,"name":"Budi"},{"ticket_id":2,"name":"Sari"}]}`, models.RoleUser, 3)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.EqualValues(t, 2, decodeBody(t, rr)["named"])
	require.Len(t, got, 2)
	assert.Equal(t, "Sari", got[1].Name)
}

// ------------------------
// HealthHandler
// ------------------------

type fakePinger struct{ err error }

func (p fakePinger) PingContext(ctx context.Context) error { return p.err }

func TestHealthHandler_Healthz(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHealthHandler(fakePinger{}).Healthz(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	NewHealthHandler(fakePinger{err: errors.New("down")}).Healthz(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
