package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/sporter/models"
	"github.com/Dosada05/sporter/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

type scoreInput struct {
	HomeScore *int `json:"home_score"`
	AwayScore *int `json:"away_score"`
}

func (in scoreInput) validate() error {
	if in.HomeScore == nil || in.AwayScore == nil {
		return errors.New("home_score and away_score are required")
	}
	return nil
}

func setResultResponse(res *services.SetResult) jsonResponse {
	resp := jsonResponse{
		"success":  true,
		"matchId":  res.MatchID,
		"seq":      res.Seq,
		"finished": res.Finished,
		"homeWin":  res.HomeWin,
		"awayWin":  res.AwayWin,
	}
	if res.WinnerID != nil {
		resp["winnerId"] = *res.WinnerID
	}
	return resp
}

// SubmitTeamScore godoc
// @Summary Записать сет падел-матча (командный режим)
// @Tags matches
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param input body scoreInput true "Счёт сета"
// @Success 200 {object} map[string]interface{} "success, finished, homeWin, awayWin, winnerId"
// @Failure 400 {object} map[string]interface{} "Недопустимый счёт / матч завершён / неверный режим"
// @Failure 401 {object} map[string]interface{} "Неавторизован"
// @Failure 403 {object} map[string]interface{} "Нет доступа к виду спорта"
// @Failure 404 {object} map[string]interface{} "Матч не найден"
// @Security BearerAuth
// @Router /subadmin/matches/{matchID}/score [post]
func (h *MatchHandler) SubmitTeamScore(w http.ResponseWriter, r *http.Request) {
	h.submitSet(w, r, models.KindTeam)
}

// SubmitIndividualScore godoc
// @Summary Записать сет падел-матча (индивидуальный режим)
// @Tags matches
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param input body scoreInput true "Счёт сета"
// @Success 200 {object} map[string]interface{} "success, finished, homeWin, awayWin, winnerId"
// @Failure 400 {object} map[string]interface{} "Недопустимый счёт / матч завершён / неверный режим"
// @Failure 403 {object} map[string]interface{} "Нет доступа к виду спорта"
// @Failure 404 {object} map[string]interface{} "Матч не найден"
// @Security BearerAuth
// @Router /subadmin/matches/{matchID}/individual-score [post]
func (h *MatchHandler) SubmitIndividualScore(w http.ResponseWriter, r *http.Request) {
	h.submitSet(w, r, models.KindIndividual)
}

func (h *MatchHandler) submitSet(w http.ResponseWriter, r *http.Request, mode models.CompetitorKind) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actor, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	var input scoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := input.validate(); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	res, err := h.matchService.SubmitSet(r.Context(), actor, matchID, mode, *input.HomeScore, *input.AwayScore)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, setResultResponse(res), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SubmitLegacyScore godoc
// @Summary Записать сет (режим берётся из матча)
// @Tags matches
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param input body scoreInput true "Счёт сета"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Security BearerAuth
// @Router /subadmin/matches/{matchID}/submit-score [post]
func (h *MatchHandler) SubmitLegacyScore(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actor, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	var input scoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := input.validate(); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	res, err := h.matchService.SubmitLegacyScore(r.Context(), actor, matchID, *input.HomeScore, *input.AwayScore)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, setResultResponse(res), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordResult godoc
// @Summary Записать итоговый счёт матча (классические виды спорта)
// @Tags matches
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param input body scoreInput true "Итоговый счёт"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Security BearerAuth
// @Router /subadmin/matches/{matchID}/result [post]
func (h *MatchHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actor, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	var input scoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := input.validate(); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	res, err := h.matchService.RecordClassicResult(r.Context(), actor, matchID, *input.HomeScore, *input.AwayScore)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true, "result": res}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ScheduleMatch godoc
// @Summary Создать матч
// @Tags matches
// @Accept json
// @Produce json
// @Param input body services.ScheduleMatchInput true "Данные матча"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Security BearerAuth
// @Router /subadmin/matches [post]
func (h *MatchHandler) ScheduleMatch(w http.ResponseWriter, r *http.Request) {
	actor, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	var input services.ScheduleMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.ScheduleMatch(r.Context(), actor, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"success": true, "match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetMatch godoc
// @Summary Матч со списком сетов
// @Tags matches
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Security BearerAuth
// @Router /subadmin/matches/{matchID} [get]
func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actor, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	match, err := h.matchService.GetMatch(r.Context(), actor, matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
