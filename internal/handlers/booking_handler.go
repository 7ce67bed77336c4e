package handlers

import (
	"net/http"

	"github.com/Varun5711/wecare/internal/logger"
	"github.com/Varun5711/wecare/internal/middleware"
	"github.com/Varun5711/wecare/internal/models"
	"github.com/Varun5711/wecare/internal/service"
	"github.com/go-chi/chi/v5"
)

type BookingHandler struct {
	bookings *service.BookingService
	log      *logger.Logger
}

func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{
		bookings: bookings,
		log:      logger.New("booking-handler"),
	}
}

func (h *BookingHandler) Doctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.bookings.Doctors(r.Context(), r.URL.Query().Get("speciality"))
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, dataResponse{Data: doctors})
}

func (h *BookingHandler) TimeSlots(w http.ResponseWriter, r *http.Request) {
	days, err := h.bookings.TimeSlots(r.Context(), chi.URLParam(r, "doctorId"))
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, dataResponse{Data: days})
}

func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req models.BookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	appt, err := h.bookings.Book(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusCreated, models.BookingResponse{Message: "Appointment booked successfully", Data: appt})
}

func (h *BookingHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	appts, err := h.bookings.Appointments(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, dataResponse{Data: appts})
}
