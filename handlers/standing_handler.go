package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/sporter/services"
)

type StandingHandler struct {
	standingService services.StandingService
}

func NewStandingHandler(ss services.StandingService) *StandingHandler {
	return &StandingHandler{standingService: ss}
}

type standingsScopeInput struct {
	SportID int    `json:"sport_id"`
	Mode    string `json:"mode"`
}

func (in standingsScopeInput) validate() error {
	if in.SportID <= 0 {
		return errors.New("sport_id must be a positive number")
	}
	return nil
}

func modeOrDefault(mode string) string {
	if mode == "" {
		return "team"
	}
	return mode
}

// ListStandings godoc
// @Summary Турнирная таблица вида спорта
// @Tags standings
// @Produce json
// @Param sport_id query int true "Sport ID"
// @Param mode query string false "team | individual" default(team)
// @Success 200 {object} models.StandingsTable
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /standings [get]
func (h *StandingHandler) ListStandings(w http.ResponseWriter, r *http.Request) {
	sportID, err := getIntQuery(r, "sport_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	table, err := h.standingService.ListStandings(r.Context(), sportID, modeOrDefault(r.URL.Query().Get("mode")))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, table, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SyncStandings godoc
// @Summary Создать недостающие строки таблицы по расписанию матчей
// @Tags standings
// @Accept json
// @Produce json
// @Param input body standingsScopeInput true "Вид спорта и режим"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Security BearerAuth
// @Router /subadmin/standings/sync [post]
func (h *StandingHandler) SyncStandings(w http.ResponseWriter, r *http.Request) {
	actor, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	var input standingsScopeInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := input.validate(); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	seeded, err := h.standingService.SyncStandings(r.Context(), actor, input.SportID, modeOrDefault(input.Mode))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true, "competitors": seeded}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PublishSnapshot godoc
// @Summary Опубликовать таблицу в объектное хранилище
// @Tags standings
// @Accept json
// @Produce json
// @Param input body standingsScopeInput true "Вид спорта и режим"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{} "Хранилище не настроено"
// @Security BearerAuth
// @Router /admin/standings/publish [post]
func (h *StandingHandler) PublishSnapshot(w http.ResponseWriter, r *http.Request) {
	var input standingsScopeInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := input.validate(); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	res, err := h.standingService.PublishSnapshot(r.Context(), input.SportID, modeOrDefault(input.Mode))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true, "key": res.Key, "url": res.Location}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
