package reservation

import (
	"database/sql"
	"errors"
	"fmt"

	"ms-booths/internal/logger"
	"ms-booths/internal/models"
)

var (
	ErrNoReservation     = errors.New("no booth reservation found for this enterprise")
	ErrAlreadyHasBooth   = errors.New("enterprise already has a booth reservation")
	ErrBoothNotFound     = errors.New("booth not found")
	ErrBoothReserved     = errors.New("booth is already reserved")
	ErrBookingInProgress = errors.New("another booking for this booth or enterprise is in progress")
	ErrNotAccepted       = errors.New("reservation has not been accepted")
)

type BoothStore interface {
	ListAvailableBooths() ([]models.Booth, error)
	GetBoothByEnterprise(enterpriseID string) (*models.Booth, error)
	GetBoothByID(id string) (*models.Booth, error)
	ReserveBooth(boothID, enterpriseID string) (bool, error)
}

type BookingLock interface {
	LockBooking(enterpriseID, boothID string) (bool, error)
	UnlockBooking(enterpriseID, boothID string) error
}

type EventPublisher interface {
	PublishBoothReserved(booth models.Booth) error
}

type PassGenerator interface {
	Generate(booth models.Booth) ([]byte, error)
}

// ReservationService implements the enterprise-facing booking workflow on top
// of the booth store.
type ReservationService struct {
	DB     BoothStore
	Locks  BookingLock
	Events EventPublisher
	Passes PassGenerator
	Logger *logger.Logger
}

func NewReservationService(db BoothStore, locks BookingLock, events EventPublisher, passes PassGenerator, log *logger.Logger) *ReservationService {
	return &ReservationService{DB: db, Locks: locks, Events: events, Passes: passes, Logger: log}
}

// Available lists booths an enterprise may book: unassigned booths plus
// booths whose previous reservation was rejected.
func (s *ReservationService) Available() ([]models.Booth, error) {
	return s.DB.ListAvailableBooths()
}

func (s *ReservationService) MyBooth(enterpriseID string) (*models.Booth, error) {
	booth, err := s.DB.GetBoothByEnterprise(enterpriseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoReservation
		}
		return nil, err
	}
	return booth, nil
}

// Book reserves the booth for the enterprise. The pre-checks mirror the
// admin-visible rules; the reserve itself is a conditional update so a lost
// race surfaces as ErrBoothReserved rather than a double booking.
func (s *ReservationService) Book(enterpriseID, boothID string) (*models.Booth, error) {
	ok, err := s.Locks.LockBooking(enterpriseID, boothID)
	if err != nil {
		return nil, fmt.Errorf("booking lock error: %w", err)
	}
	if !ok {
		return nil, ErrBookingInProgress
	}
	defer func() {
		if err := s.Locks.UnlockBooking(enterpriseID, boothID); err != nil {
			s.Logger.Warn("REDIS", fmt.Sprintf("Failed to release booking lock for booth %s: %v", boothID, err))
		}
	}()

	existing, err := s.DB.GetBoothByEnterprise(enterpriseID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyHasBooth
	}

	booth, err := s.DB.GetBoothByID(boothID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBoothNotFound
		}
		return nil, err
	}

	if booth.EnterpriseID != nil && booth.Status != models.StatusRejected {
		return nil, ErrBoothReserved
	}

	reserved, err := s.DB.ReserveBooth(boothID, enterpriseID)
	if err != nil {
		return nil, err
	}
	if !reserved {
		// Lost the race against a concurrent booking.
		return nil, ErrBoothReserved
	}

	updated, err := s.DB.GetBoothByEnterprise(enterpriseID)
	if err != nil {
		return nil, err
	}

	if err := s.Events.PublishBoothReserved(*updated); err != nil {
		s.Logger.Warn("KAFKA", fmt.Sprintf("Failed to publish reserved event for booth %s: %v", boothID, err))
	}

	s.Logger.LogBooth("BOOK", boothID, fmt.Sprintf("reserved by enterprise %s", enterpriseID))
	return updated, nil
}

// Pass returns the QR booth pass PNG for an accepted reservation.
func (s *ReservationService) Pass(enterpriseID string) ([]byte, error) {
	booth, err := s.MyBooth(enterpriseID)
	if err != nil {
		return nil, err
	}
	if booth.Status != models.StatusAccepted {
		return nil, ErrNotAccepted
	}
	return s.Passes.Generate(*booth)
}
