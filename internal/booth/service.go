package booth

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
	ErrNotFound             = errors.New("booth not found")
	ErrNumberExists         = errors.New("booth number already exists")
	ErrMissingFields        = errors.New("missing required fields")
	ErrInvalidStatus        = errors.New("invalid booth status")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrEmptyBoothIDs        = errors.New("invalid or empty boothIds array")
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
)

type DBLayer interface {
	ListBooths() ([]models.Booth, error)
	GetBoothByID(id string) (*models.Booth, error)
	GetBoothByNumber(number int) (*models.Booth, error)
	CreateBooth(booth *models.Booth) error
	UpdateBooth(booth *models.Booth) error
	DeleteBooth(id string) error
	BulkSetCategory(boothIDs []string, categoryID *string) (int64, error)
	CategoryExists(id string) (bool, error)
}

type EventPublisher interface {
	PublishBoothStatusChanged(booth models.Booth) error
}

type BoothService struct {
	DB     DBLayer
	Events EventPublisher
	Rules  TransitionRules
	Logger *logger.Logger
}

func NewBoothService(db DBLayer, events EventPublisher, rules TransitionRules, log *logger.Logger) *BoothService {
	return &BoothService{DB: db, Events: events, Rules: rules, Logger: log}
}

func (s *BoothService) List() ([]models.Booth, error) {
	return s.DB.ListBooths()
}

func (s *BoothService) Get(id string) (*models.Booth, error) {
	booth, err := s.DB.GetBoothByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return booth, nil
}

func (s *BoothService) Create(req models.BoothCreate) (*models.Booth, error) {
	if req.Name == "" || req.Description == "" || req.Number == nil ||
		req.Dimensions == nil || req.PriceWithoutAddons == nil || req.FinalPrice == nil {
		return nil, ErrMissingFields
	}

	existing, err := s.DB.GetBoothByNumber(*req.Number)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrNumberExists
	}

	addons := req.Addons
	if addons == nil {
		addons = []models.Addon{}
	}

	now := time.Now()
	booth := &models.Booth{
		ID:                 uuid.NewString(),
		Name:               req.Name,
		Description:        req.Description,
		Number:             *req.Number,
		Dimensions:         *req.Dimensions,
		PriceWithoutAddons: *req.PriceWithoutAddons,
		FinalPrice:         *req.FinalPrice,
		Status:             models.StatusPending,
		Addons:             addons,
		Image:              req.Image,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.DB.CreateBooth(booth); err != nil {
		return nil, err
	}
	return booth, nil
}

// Update applies the fields present in req. Name and description skip empty
// strings; number and the price fields use pointer presence so 0 is a real
// value; image and categoryId accept an explicit null to clear.
func (s *BoothService) Update(id string, req models.BoothUpdate) (*models.Booth, error) {
	booth, err := s.DB.GetBoothByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Number != nil && *req.Number != booth.Number {
		existing, err := s.DB.GetBoothByNumber(*req.Number)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrNumberExists
		}
		booth.Number = *req.Number
	}
	if req.Name != nil && *req.Name != "" {
		booth.Name = *req.Name
	}
	if req.Description != nil && *req.Description != "" {
		booth.Description = *req.Description
	}
	if req.Dimensions != nil {
		booth.Dimensions = *req.Dimensions
	}
	if req.PriceWithoutAddons != nil {
		booth.PriceWithoutAddons = *req.PriceWithoutAddons
	}
	if req.FinalPrice != nil {
		booth.FinalPrice = *req.FinalPrice
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		booth.Status = *req.Status
	}
	if req.Addons != nil {
		booth.Addons = *req.Addons
	}
	if req.Image.Set {
		booth.Image = req.Image.Value
	}
	if req.CategoryID.Set {
		if req.CategoryID.Value != nil {
			exists, err := s.DB.CategoryExists(*req.CategoryID.Value)
			if err != nil {
				return nil, err
			}
			if !exists {
				return nil, ErrCategoryNotFound
			}
		}
		booth.CategoryID = req.CategoryID.Value
	}
	booth.UpdatedAt = time.Now()

	if err := s.DB.UpdateBooth(booth); err != nil {
		return nil, err
	}
	return s.DB.GetBoothByID(id)
}

func (s *BoothService) Delete(id string) error {
	if _, err := s.DB.GetBoothByID(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.DB.DeleteBooth(id)
}

// BulkSetCategory assigns categoryId (or null) to every listed booth. Booth
// ids that do not exist are skipped silently; the returned count reflects the
// rows actually touched.
func (s *BoothService) BulkSetCategory(req models.BulkCategoryUpdate) (int64, error) {
	if len(req.BoothIDs) == 0 {
		return 0, ErrEmptyBoothIDs
	}

	var categoryID *string
	if req.CategoryID.Set && req.CategoryID.Value != nil {
		exists, err := s.DB.CategoryExists(*req.CategoryID.Value)
		if err != nil {
			return 0, err
		}
		if !exists {
			return 0, ErrCategoryNotFound
		}
		categoryID = req.CategoryID.Value
	}

	return s.DB.BulkSetCategory(req.BoothIDs, categoryID)
}

// UpdateStatus drives the reservation workflow. Moving to Accepted stamps
// reservationAcceptedAt; the stamp is never cleared by later transitions.
func (s *BoothService) UpdateStatus(id string, status models.BoothStatus) (*models.Booth, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	booth, err := s.DB.GetBoothByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !s.Rules.Allowed(booth.Status, status) {
		return nil, ErrTransitionNotAllowed
	}

	booth.Status = status
	if status == models.StatusAccepted {
		now := time.Now()
		booth.ReservationAcceptedAt = &now
	}
	booth.UpdatedAt = time.Now()

	if err := s.DB.UpdateBooth(booth); err != nil {
		return nil, err
	}

	updated, err := s.DB.GetBoothByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.Events.PublishBoothStatusChanged(*updated); err != nil {
		s.Logger.Warn("KAFKA", fmt.Sprintf("Failed to publish status event for booth %s: %v", id, err))
	}

	return updated, nil
}
