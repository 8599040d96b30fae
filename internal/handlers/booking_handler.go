package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agendahub/agenda-api/internal/httperr"
	"github.com/agendahub/agenda-api/internal/httpresp"
	"github.com/agendahub/agenda-api/internal/middleware"
	ucBooking "github.com/agendahub/agenda-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC    *ucBooking.CreateBooking
	setStatusUC *ucBooking.SetBookingStatus
	deleteUC    *ucBooking.DeleteBooking
	listUC      *ucBooking.ListBookings
	log         *zap.Logger
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	setStatusUC *ucBooking.SetBookingStatus,
	deleteUC *ucBooking.DeleteBooking,
	listUC *ucBooking.ListBookings,
	log *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		createUC:    createUC,
		setStatusUC: setStatusUC,
		deleteUC:    deleteUC,
		listUC:      listUC,
		log:         log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ClientID  uint   `json:"client_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Status    string `json:"status"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// mensagens dos desfechos de formulário (sempre HTTP 200 + flag)
var businessMessages = map[string]string{
	"missing_fields":       "Todos os campos são obrigatórios",
	"invalid_date_or_time": "Data ou hora inválida",
	"invalid_status":       "Status inválido",
	"client_not_found":     "Cliente não encontrado",
	"service_not_found":    "Serviço não encontrado",
}

func (h *BookingHandler) failBusiness(c *gin.Context, code string) bool {
	if msg, ok := businessMessages[code]; ok {
		httpresp.Fail(c, msg)
		return true
	}
	return false
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	bookings, err := h.listUC.Execute(c.Request.Context(), accountID)
	if err != nil {
		h.log.Error("list bookings failed", zap.Error(err))
		httperr.Internal(c, "failed_to_list_bookings", httperr.GenericFailure)
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresp.Fail(c, "Todos os campos são obrigatórios")
		return
	}

	_, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		AccountID: accountID,
		ClientID:  req.ClientID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    req.Status,
	})

	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok && h.failBusiness(c, code) {
			return
		}
		h.log.Error("create booking failed", zap.Error(err))
		httperr.Internal(c, "failed_to_create_booking", httperr.GenericFailure)
		return
	}

	httpresp.Success(c, "Agendamento realizado com sucesso!")
}

// ======================================================
// UPDATE STATUS
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	bookingID, ok := h.paramID(c)
	if !ok {
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresp.Fail(c, "Status inválido")
		return
	}

	_, err := h.setStatusUC.Execute(c.Request.Context(), bookingID, accountID, req.Status)
	if err != nil {
		if httperr.IsBusiness(err, "booking_not_found") {
			httperr.NotFound(c, "booking_not_found", "Agendamento não encontrado")
			return
		}
		if code, ok := httperr.BusinessCode(err); ok && h.failBusiness(c, code) {
			return
		}
		h.log.Error("update booking status failed", zap.Error(err))
		httperr.Internal(c, "failed_to_update_booking", httperr.GenericFailure)
		return
	}

	httpresp.Success(c, "Status do agendamento atualizado com sucesso!")
}

// ======================================================
// DELETE
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	bookingID, ok := h.paramID(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), bookingID, accountID); err != nil {
		if httperr.IsBusiness(err, "booking_not_found") {
			httperr.NotFound(c, "booking_not_found", "Agendamento não encontrado")
			return
		}
		h.log.Error("delete booking failed", zap.Error(err))
		httperr.Internal(c, "failed_to_delete_booking", httperr.GenericFailure)
		return
	}

	httpresp.Success(c, "Agendamento excluído com sucesso!")
}

// ======================================================
// HELPERS
// ======================================================

func (h *BookingHandler) paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido")
		return 0, false
	}
	return uint(id), true
}
