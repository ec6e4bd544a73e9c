package reservation_api

import (
	"errors"
	"fmt"
	"net/http"

	"ms-booths/internal/auth"
	"ms-booths/internal/logger"
	"ms-booths/internal/reservation"
	"ms-booths/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	ReservationService *reservation.ReservationService
	Logger             *logger.Logger
}

func NewHandler(service *reservation.ReservationService, log *logger.Logger) *Handler {
	return &Handler{ReservationService: service, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/booths", func(r chi.Router) {
		r.Get("/available", h.ListAvailable)
		r.Get("/my-booth", h.MyBooth)
		r.Get("/my-booth/pass", h.BoothPass)
		r.Post("/{id}/book", h.BookBooth)
	})
}

func (h *Handler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	booths, err := h.ReservationService.Available()
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListAvailable: %v", err))
		utils.Message(w, http.StatusInternalServerError, "Failed to fetch available booths")
		return
	}
	utils.JSON(w, http.StatusOK, booths)
}

func (h *Handler) MyBooth(w http.ResponseWriter, r *http.Request) {
	enterpriseID := auth.EnterpriseID(r.Context())
	if enterpriseID == "" {
		utils.Message(w, http.StatusUnauthorized, "Enterprise ID is required")
		return
	}

	booth, err := h.ReservationService.MyBooth(enterpriseID)
	if err != nil {
		if errors.Is(err, reservation.ErrNoReservation) {
			utils.Message(w, http.StatusNotFound, "No booth reservation found for this enterprise")
			return
		}
		h.Logger.Error("API", fmt.Sprintf("MyBooth: enterprise=%s: %v", enterpriseID, err))
		utils.Message(w, http.StatusInternalServerError, "Failed to fetch enterprise booth")
		return
	}
	utils.JSON(w, http.StatusOK, booth)
}

func (h *Handler) BookBooth(w http.ResponseWriter, r *http.Request) {
	boothID := chi.URLParam(r, "id")

	enterpriseID := auth.EnterpriseID(r.Context())
	if enterpriseID == "" {
		utils.Message(w, http.StatusUnauthorized, "Enterprise ID is required")
		return
	}

	booth, err := h.ReservationService.Book(enterpriseID, boothID)
	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrAlreadyHasBooth):
			utils.Message(w, http.StatusBadRequest, "Enterprise already has a booth reservation")
		case errors.Is(err, reservation.ErrBoothNotFound):
			utils.Message(w, http.StatusNotFound, "Booth not found")
		case errors.Is(err, reservation.ErrBoothReserved):
			utils.Message(w, http.StatusBadRequest, "Booth is already reserved")
		case errors.Is(err, reservation.ErrBookingInProgress):
			utils.Message(w, http.StatusBadRequest, "Booth is already reserved")
		default:
			h.Logger.Error("API", fmt.Sprintf("BookBooth: booth=%s enterprise=%s: %v", boothID, enterpriseID, err))
			utils.Message(w, http.StatusInternalServerError, "Failed to book booth")
		}
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Booth reservation request submitted successfully",
		"booth":   booth,
	})
}

func (h *Handler) BoothPass(w http.ResponseWriter, r *http.Request) {
	enterpriseID := auth.EnterpriseID(r.Context())
	if enterpriseID == "" {
		utils.Message(w, http.StatusUnauthorized, "Enterprise ID is required")
		return
	}

	png, err := h.ReservationService.Pass(enterpriseID)
	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrNoReservation):
			utils.Message(w, http.StatusNotFound, "No booth reservation found for this enterprise")
		case errors.Is(err, reservation.ErrNotAccepted):
			utils.Message(w, http.StatusBadRequest, "Reservation has not been accepted yet")
		default:
			h.Logger.Error("API", fmt.Sprintf("BoothPass: enterprise=%s: %v", enterpriseID, err))
			utils.Message(w, http.StatusInternalServerError, "Failed to generate booth pass")
		}
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.Logger.Error("API", fmt.Sprintf("BoothPass: failed to write response: %v", err))
	}
}
