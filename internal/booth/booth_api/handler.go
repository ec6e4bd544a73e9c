package booth_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"ms-booths/internal/booth"
	"ms-booths/internal/logger"
	"ms-booths/internal/models"
	"ms-booths/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	BoothService *booth.BoothService
	Logger       *logger.Logger
}

func NewHandler(service *booth.BoothService, log *logger.Logger) *Handler {
	return &Handler{BoothService: service, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/booths", func(r chi.Router) {
		r.Get("/", h.ListBooths)
		r.Post("/", h.CreateBooth)
		r.Patch("/bulk-update", h.BulkUpdate)
		r.Get("/{id}", h.GetBooth)
		r.Patch("/{id}", h.UpdateBooth)
		r.Delete("/{id}", h.DeleteBooth)
		r.Patch("/{id}/status", h.UpdateStatus)
	})
}

func (h *Handler) ListBooths(w http.ResponseWriter, r *http.Request) {
	booths, err := h.BoothService.List()
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListBooths: %v", err))
		utils.Message(w, http.StatusInternalServerError, "Failed to fetch booths")
		return
	}
	utils.JSON(w, http.StatusOK, booths)
}

func (h *Handler) GetBooth(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b, err := h.BoothService.Get(id)
	if err != nil {
		if errors.Is(err, booth.ErrNotFound) {
			utils.Message(w, http.StatusNotFound, "Booth not found")
			return
		}
		h.Logger.Error("API", fmt.Sprintf("GetBooth: id=%s: %v", id, err))
		utils.Message(w, http.StatusInternalServerError, "Failed to fetch booth")
		return
	}
	utils.JSON(w, http.StatusOK, b)
}

func (h *Handler) CreateBooth(w http.ResponseWriter, r *http.Request) {
	var req models.BoothCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b, err := h.BoothService.Create(req)
	if err != nil {
		switch {
		case errors.Is(err, booth.ErrMissingFields):
			utils.Message(w, http.StatusBadRequest,
				"Missing required fields: name, description, number, dimensions, priceWithoutAddons, finalPrice")
		case errors.Is(err, booth.ErrNumberExists):
			utils.Message(w, http.StatusBadRequest, "Booth number already exists")
		default:
			h.Logger.Error("API", fmt.Sprintf("CreateBooth: %v", err))
			utils.Message(w, http.StatusInternalServerError, "Failed to create booth")
		}
		return
	}

	h.Logger.Info("API", fmt.Sprintf("CreateBooth: created booth #%d (%s)", b.Number, b.ID))
	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Booth created successfully",
		"booth":   b,
	})
}

func (h *Handler) UpdateBooth(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.BoothUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b, err := h.BoothService.Update(id, req)
	if err != nil {
		switch {
		case errors.Is(err, booth.ErrNotFound):
			utils.Message(w, http.StatusNotFound, "Booth not found")
		case errors.Is(err, booth.ErrNumberExists):
			utils.Message(w, http.StatusBadRequest, "Booth number already exists")
		case errors.Is(err, booth.ErrInvalidStatus):
			utils.Message(w, http.StatusBadRequest, "Invalid status. Must be 'Accepted', 'Rejected', or 'Pending'")
		case errors.Is(err, booth.ErrCategoryNotFound):
			utils.Message(w, http.StatusNotFound, "Category not found")
		default:
			h.Logger.Error("API", fmt.Sprintf("UpdateBooth: id=%s: %v", id, err))
			utils.Message(w, http.StatusInternalServerError, "Failed to update booth")
		}
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Booth updated successfully",
		"booth":   b,
	})
}

func (h *Handler) DeleteBooth(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.BoothService.Delete(id); err != nil {
		if errors.Is(err, booth.ErrNotFound) {
			utils.Message(w, http.StatusNotFound, "Booth not found")
			return
		}
		h.Logger.Error("API", fmt.Sprintf("DeleteBooth: id=%s: %v", id, err))
		utils.Message(w, http.StatusInternalServerError, "Failed to delete booth")
		return
	}

	h.Logger.Info("API", fmt.Sprintf("DeleteBooth: deleted %s", id))
	utils.Message(w, http.StatusOK, "Booth deleted successfully")
}

func (h *Handler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req models.BulkCategoryUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	count, err := h.BoothService.BulkSetCategory(req)
	if err != nil {
		switch {
		case errors.Is(err, booth.ErrEmptyBoothIDs):
			utils.Message(w, http.StatusBadRequest, "Invalid or empty boothIds array")
		case errors.Is(err, booth.ErrCategoryNotFound):
			utils.Message(w, http.StatusNotFound, "Category not found")
		default:
			h.Logger.Error("API", fmt.Sprintf("BulkUpdate: %v", err))
			utils.Message(w, http.StatusInternalServerError, "Failed to update booths")
		}
		return
	}

	plural := ""
	if count != 1 {
		plural = "s"
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Successfully updated %d booth%s", count, plural),
		"count":   count,
	})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b, err := h.BoothService.UpdateStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, booth.ErrInvalidStatus):
			utils.Message(w, http.StatusBadRequest, "Invalid status. Must be 'Accepted', 'Rejected', or 'Pending'")
		case errors.Is(err, booth.ErrNotFound):
			utils.Message(w, http.StatusNotFound, "Booth not found")
		case errors.Is(err, booth.ErrTransitionNotAllowed):
			utils.Message(w, http.StatusBadRequest,
				fmt.Sprintf("Status transition to '%s' is not allowed", req.Status))
		default:
			h.Logger.Error("API", fmt.Sprintf("UpdateStatus: id=%s: %v", id, err))
			utils.Message(w, http.StatusInternalServerError, "Failed to update booth status")
		}
		return
	}

	h.Logger.LogBooth("STATUS", id, fmt.Sprintf("status set to %s", b.Status))
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Booth %s successfully", strings.ToLower(string(b.Status))),
		"booth":   b,
	})
}
