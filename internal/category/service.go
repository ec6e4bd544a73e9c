package category

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ms-booths/internal/logger"
	"ms-booths/internal/models"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("category not found")
	ErrNameExists    = errors.New("category with this name already exists")
	ErrMissingFields = errors.New("missing required fields")
)

// InUseError reports a delete attempt on a category that booths still reference.
type InUseError struct {
	Count int
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("cannot delete category: %d booth(s) are assigned to this category", e.Count)
}

type DBLayer interface {
	ListCategories() ([]models.Category, error)
	GetCategoryByID(id string) (*models.Category, error)
	GetCategoryByName(name string) (*models.Category, error)
	GetBoothRefs(categoryID string) ([]models.BoothRef, error)
	CountBooths(categoryID string) (int, error)
	CreateCategory(category *models.Category) error
	UpdateCategory(category *models.Category) error
	DeleteCategory(id string) error
}

type EventPublisher interface {
	PublishCategoryChanged(action string, category models.Category) error
}

type CategoryService struct {
	DB     DBLayer
	Events EventPublisher
	Logger *logger.Logger
}

func NewCategoryService(db DBLayer, events EventPublisher, log *logger.Logger) *CategoryService {
	return &CategoryService{DB: db, Events: events, Logger: log}
}

func (s *CategoryService) List() ([]models.Category, error) {
	return s.DB.ListCategories()
}

// Get returns the category with the booths currently referencing it.
func (s *CategoryService) Get(id string) (*models.Category, error) {
	category, err := s.DB.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	refs, err := s.DB.GetBoothRefs(id)
	if err != nil {
		return nil, err
	}
	category.Booths = refs
	return category, nil
}

func (s *CategoryService) Create(req models.CategoryCreate) (*models.Category, error) {
	if req.Name == "" || req.Description == "" || req.Dimensions == nil || req.PriceWithoutAddons == nil {
		return nil, ErrMissingFields
	}

	existing, err := s.DB.GetCategoryByName(req.Name)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrNameExists
	}

	addons := req.Addons
	if addons == nil {
		addons = []models.Addon{}
	}

	category := &models.Category{
		ID:                 uuid.NewString(),
		Name:               req.Name,
		Description:        req.Description,
		Dimensions:         *req.Dimensions,
		PriceWithoutAddons: *req.PriceWithoutAddons,
		Addons:             addons,
		Image:              req.Image,
		CreatedAt:          time.Now(),
	}

	if err := s.DB.CreateCategory(category); err != nil {
		return nil, err
	}

	if err := s.Events.PublishCategoryChanged("created", *category); err != nil {
		s.Logger.Warn("KAFKA", fmt.Sprintf("Failed to publish category created event: %v", err))
	}

	return category, nil
}

// Update applies the fields present in req. Empty strings are treated as
// "not sent" for name and description; prices go through pointer presence so
// an explicit 0 is applied.
func (s *CategoryService) Update(id string, req models.CategoryUpdate) (*models.Category, error) {
	category, err := s.DB.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != "" && *req.Name != category.Name {
		existing, err := s.DB.GetCategoryByName(*req.Name)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrNameExists
		}
		category.Name = *req.Name
	}
	if req.Description != nil && *req.Description != "" {
		category.Description = *req.Description
	}
	if req.Dimensions != nil {
		category.Dimensions = *req.Dimensions
	}
	if req.PriceWithoutAddons != nil {
		category.PriceWithoutAddons = *req.PriceWithoutAddons
	}
	if req.Addons != nil {
		category.Addons = *req.Addons
	}
	if req.Image.Set {
		category.Image = req.Image.Value
	}

	if err := s.DB.UpdateCategory(category); err != nil {
		return nil, err
	}

	if err := s.Events.PublishCategoryChanged("updated", *category); err != nil {
		s.Logger.Warn("KAFKA", fmt.Sprintf("Failed to publish category updated event: %v", err))
	}

	return s.DB.GetCategoryByID(id)
}

// Delete removes the category unless any booth still references it.
func (s *CategoryService) Delete(id string) error {
	category, err := s.DB.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	count, err := s.DB.CountBooths(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &InUseError{Count: count}
	}

	if err := s.DB.DeleteCategory(id); err != nil {
		return err
	}

	if err := s.Events.PublishCategoryChanged("deleted", *category); err != nil {
		s.Logger.Warn("KAFKA", fmt.Sprintf("Failed to publish category deleted event: %v", err))
	}

	return nil
}
