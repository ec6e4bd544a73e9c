package category_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ms-booths/internal/category"
	"ms-booths/internal/logger"
	"ms-booths/internal/models"
	"ms-booths/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	CategoryService *category.CategoryService
	Logger          *logger.Logger
}

func NewHandler(service *category.CategoryService, log *logger.Logger) *Handler {
	return &Handler{CategoryService: service, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
		r.Get("/{id}", h.GetCategory)
		r.Patch("/{id}", h.UpdateCategory)
		r.Delete("/{id}", h.DeleteCategory)
	})
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.CategoryService.List()
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListCategories: %v", err))
		utils.Message(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	utils.JSON(w, http.StatusOK, categories)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	cat, err := h.CategoryService.Get(id)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			utils.Message(w, http.StatusNotFound, "Category not found")
			return
		}
		h.Logger.Error("API", fmt.Sprintf("GetCategory: id=%s: %v", id, err))
		utils.Message(w, http.StatusInternalServerError, "Failed to fetch category")
		return
	}
	utils.JSON(w, http.StatusOK, cat)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cat, err := h.CategoryService.Create(req)
	if err != nil {
		switch {
		case errors.Is(err, category.ErrMissingFields):
			utils.Message(w, http.StatusBadRequest, "Missing required fields")
		case errors.Is(err, category.ErrNameExists):
			utils.Message(w, http.StatusBadRequest, "Category with this name already exists")
		default:
			h.Logger.Error("API", fmt.Sprintf("CreateCategory: %v", err))
			utils.Message(w, http.StatusInternalServerError, "Failed to create category")
		}
		return
	}

	h.Logger.Info("API", fmt.Sprintf("CreateCategory: created %s (%s)", cat.Name, cat.ID))
	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Category created successfully",
		"category": cat,
	})
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.CategoryUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cat, err := h.CategoryService.Update(id, req)
	if err != nil {
		switch {
		case errors.Is(err, category.ErrNotFound):
			utils.Message(w, http.StatusNotFound, "Category not found")
		case errors.Is(err, category.ErrNameExists):
			utils.Message(w, http.StatusBadRequest, "Category name already exists")
		default:
			h.Logger.Error("API", fmt.Sprintf("UpdateCategory: id=%s: %v", id, err))
			utils.Message(w, http.StatusInternalServerError, "Failed to update category")
		}
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Category updated successfully",
		"category": cat,
	})
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.CategoryService.Delete(id)
	if err != nil {
		var inUse *category.InUseError
		switch {
		case errors.Is(err, category.ErrNotFound):
			utils.Message(w, http.StatusNotFound, "Category not found")
		case errors.As(err, &inUse):
			utils.Message(w, http.StatusBadRequest,
				fmt.Sprintf("Cannot delete category. %d booth(s) are assigned to this category.", inUse.Count))
		default:
			h.Logger.Error("API", fmt.Sprintf("DeleteCategory: id=%s: %v", id, err))
			utils.Message(w, http.StatusInternalServerError, "Failed to delete category")
		}
		return
	}

	h.Logger.Info("API", fmt.Sprintf("DeleteCategory: deleted %s", id))
	utils.Message(w, http.StatusOK, "Category deleted successfully")
}
