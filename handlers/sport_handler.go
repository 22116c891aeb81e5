package handlers

import (
	"net/http"

	"github.com/Dosada05/sporter/services"
)

type SportHandler struct {
	sportService services.SportService
}

func NewSportHandler(ss services.SportService) *SportHandler {
	return &SportHandler{
		sportService: ss,
	}
}

// GetAllSports godoc
// @Summary Список видов спорта
// @Tags sports
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /sports [get]
func (h *SportHandler) GetAllSports(w http.ResponseWriter, r *http.Request) {
	sports, err := h.sportService.GetAllSports(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"sports": sports}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetSportByID godoc
// @Summary Вид спорта
// @Tags sports
// @Produce json
// @Param sportID path int true "Sport ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /sports/{sportID} [get]
func (h *SportHandler) GetSportByID(w http.ResponseWriter, r *http.Request) {
	sportID, err := getIDFromURL(r, "sportID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sport, err := h.sportService.GetSportByID(r.Context(), sportID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"sport": sport}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadSportLogo godoc
// @Summary Загрузить логотип вида спорта
// @Tags sports
// @Accept multipart/form-data
// @Produce json
// @Param sportID path int true "Sport ID"
// @Param logo formData file true "PNG, JPEG или WebP"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{} "Хранилище не настроено"
// @Security BearerAuth
// @Router /admin/sports/{sportID}/logo [post]
func (h *SportHandler) UploadSportLogo(w http.ResponseWriter, r *http.Request) {
	sportID, err := getIDFromURL(r, "sportID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	file, contentType, err := readLogoFile(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	sport, err := h.sportService.UploadSportLogo(r.Context(), sportID, file, contentType)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"sport": sport}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
