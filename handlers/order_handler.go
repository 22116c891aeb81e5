package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Dosada05/sporter/models"
	"github.com/Dosada05/sporter/services"
)

type OrderHandler struct {
	purchaseService services.PurchaseService
}

func NewOrderHandler(ps services.PurchaseService) *OrderHandler {
	return &OrderHandler{purchaseService: ps}
}

type purchaseInput struct {
	TicketTypeID int  `json:"ticket_type_id"`
	Quantity     *int `json:"quantity"`
}

type holdersInput struct {
	Names []models.TicketHolder `json:"names"`
}

// BuyTicket godoc
// @Summary Купить билеты
// @Tags tickets
// @Accept json
// @Produce json
// @Param input body purchaseInput true "Тип билета и количество (по умолчанию 1)"
// @Success 201 {object} map[string]interface{} "Заказ создан, Location указывает на заказ"
// @Failure 400 {object} map[string]interface{} "Нет мест / лимит на пользователя / продажи закрыты"
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "Тип билета не найден"
// @Security BearerAuth
// @Router /tickets/purchase [post]
func (h *OrderHandler) BuyTicket(w http.ResponseWriter, r *http.Request) {
	actor, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	var input purchaseInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.TicketTypeID <= 0 {
		badRequestResponse(w, r, errors.New("ticket_type_id must be a positive number"))
		return
	}
	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}

	order, err := h.purchaseService.BuyTicket(r.Context(), actor.UserID, input.TicketTypeID, quantity)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	headers := http.Header{}
	headers.Set("Location", fmt.Sprintf("/orders/%d", order.ID))
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"success": true, "order": order}, headers); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetOrder godoc
// @Summary Детали заказа с билетами
// @Tags tickets
// @Produce json
// @Param orderID path int true "Order ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Security BearerAuth
// @Router /orders/{orderID} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := getIDFromURL(r, "orderID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actor, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	order, err := h.purchaseService.GetOrder(r.Context(), actor.UserID, orderID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"order": order}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SaveTicketHolders godoc
// @Summary Указать имена владельцев билетов
// @Tags tickets
// @Accept json
// @Produce json
// @Param orderID path int true "Order ID"
// @Param input body holdersInput true "Имена по ticket_id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Security BearerAuth
// @Router /orders/{orderID}/holders [post]
func (h *OrderHandler) SaveTicketHolders(w http.ResponseWriter, r *http.Request) {
	orderID, err := getIDFromURL(r, "orderID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actor, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	var input holdersInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	named, err := h.purchaseService.SaveTicketHolders(r.Context(), actor.UserID, orderID, input.Names)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true, "named": named}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
