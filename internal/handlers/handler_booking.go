package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/builder_crm/internal/core/ports/services"
	"github.com/SscSPs/builder_crm/internal/dto"
	"github.com/SscSPs/builder_crm/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bookingHandler handles bookings, their payments and settlements.
type bookingHandler struct {
	bookingService portssvc.BookingSvcFacade
	paymentService portssvc.PaymentSvcFacade
	financeService portssvc.FinanceSvc
}

func newBookingHandler(bs portssvc.BookingSvcFacade, ps portssvc.PaymentSvcFacade, fs portssvc.FinanceSvc) *bookingHandler {
	return &bookingHandler{bookingService: bs, paymentService: ps, financeService: fs}
}

// registerBookingRoutes registers booking and payment routes.
func registerBookingRoutes(rg *gin.RouterGroup, bs portssvc.BookingSvcFacade, ps portssvc.PaymentSvcFacade, fs portssvc.FinanceSvc) {
	h := newBookingHandler(bs, ps, fs)

	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.createBooking)
		bookings.GET("", h.listBookings)
		bookings.GET("/summary", h.bookingSummaries)
		bookings.GET("/:bookingID", h.getBooking)
		bookings.GET("/:bookingID/settlement", h.settlement)
		bookings.POST("/:bookingID/cancel", h.cancelBooking)
		bookings.GET("/:bookingID/payments", h.listBookingPayments)
	}

	payments := rg.Group("/payments")
	{
		payments.POST("", h.recordPayment)
		payments.GET("", h.listPayments)
	}
}

// createBooking godoc
// @Summary Book a unit
// @Description Marks the unit Sold and records the booking in one step.
// @Tags bookings
// @Accept  json
// @Produce  json
// @Param   booking body dto.CreateBookingRequest true "Booking details"
// @Success 201 {object} domain.Booking
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Lead or unit not found"
// @Failure 409 {object} ErrorResponse "Unit already sold"
// @Security BearerAuth
// @Router /bookings [post]
func (h *bookingHandler) createBooking(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, err, "create booking")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Unit booked",
		slog.String("booking_id", booking.BookingID), slog.String("unit_id", booking.UnitID))
	c.JSON(http.StatusCreated, booking)
}

// listBookings godoc
// @Summary List bookings
// @Tags bookings
// @Produce  json
// @Success 200 {array} domain.Booking
// @Security BearerAuth
// @Router /bookings [get]
func (h *bookingHandler) listBookings(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	bookings, err := h.bookingService.ListBookings(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "list bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// bookingSummaries godoc
// @Summary Booking summaries
// @Description Every booking with lead, unit and settlement figures.
// @Tags bookings
// @Produce  json
// @Success 200 {array} domain.BookingSummary
// @Security BearerAuth
// @Router /bookings/summary [get]
func (h *bookingHandler) bookingSummaries(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	summaries, err := h.financeService.BookingSummaries(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "summarize bookings")
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// getBooking godoc
// @Summary Get a booking
// @Tags bookings
// @Produce  json
// @Param   bookingID path string true "Booking ID"
// @Success 200 {object} domain.Booking
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /bookings/{bookingID} [get]
func (h *bookingHandler) getBooking(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	booking, err := h.bookingService.GetBooking(c.Request.Context(), identity, c.Param("bookingID"))
	if err != nil {
		respondError(c, err, "get booking")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// settlement godoc
// @Summary Booking settlement
// @Description Selling price, amount received and amount due of one booking.
// @Tags bookings
// @Produce  json
// @Param   bookingID path string true "Booking ID"
// @Success 200 {object} domain.BookingSettlement
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /bookings/{bookingID}/settlement [get]
func (h *bookingHandler) settlement(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	settlement, err := h.financeService.BookingSettlement(c.Request.Context(), identity, c.Param("bookingID"))
	if err != nil {
		respondError(c, err, "compute settlement")
		return
	}
	c.JSON(http.StatusOK, settlement)
}

// cancelBooking godoc
// @Summary Cancel a booking
// @Description Cancels the booking and makes its unit Available again.
// @Tags bookings
// @Produce  json
// @Param   bookingID path string true "Booking ID"
// @Success 200 {object} domain.Booking
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already cancelled"
// @Security BearerAuth
// @Router /bookings/{bookingID}/cancel [post]
func (h *bookingHandler) cancelBooking(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	booking, err := h.bookingService.CancelBooking(c.Request.Context(), identity, c.Param("bookingID"))
	if err != nil {
		respondError(c, err, "cancel booking")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// listBookingPayments godoc
// @Summary List payments of a booking
// @Tags payments
// @Produce  json
// @Param   bookingID path string true "Booking ID"
// @Success 200 {array} domain.Payment
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /bookings/{bookingID}/payments [get]
func (h *bookingHandler) listBookingPayments(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	payments, err := h.paymentService.ListPaymentsByBooking(c.Request.Context(), identity, c.Param("bookingID"))
	if err != nil {
		respondError(c, err, "list payments")
		return
	}
	c.JSON(http.StatusOK, payments)
}

// recordPayment godoc
// @Summary Record a payment
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} domain.Payment
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Booking not found"
// @Security BearerAuth
// @Router /payments [post]
func (h *bookingHandler) recordPayment(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, err, "record payment")
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// listPayments godoc
// @Summary List payments
// @Tags payments
// @Produce  json
// @Success 200 {array} domain.Payment
// @Security BearerAuth
// @Router /payments [get]
func (h *bookingHandler) listPayments(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	payments, err := h.paymentService.ListPayments(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "list payments")
		return
	}
	c.JSON(http.StatusOK, payments)
}
