package booth_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"ms-booths/internal/booth"
	"ms-booths/internal/logger"
	"ms-booths/internal/models"
)

// MockBoothDB is an in-memory implementation of the booth DBLayer.
type MockBoothDB struct {
	booths        map[string]*models.Booth
	categories    map[string]bool
	shouldFailOn  string
	errorToReturn error
}

func NewMockBoothDB() *MockBoothDB {
	return &MockBoothDB{
		booths:     make(map[string]*models.Booth),
		categories: make(map[string]bool),
	}
}

func (m *MockBoothDB) ListBooths() ([]models.Booth, error) {
	if m.shouldFailOn == "ListBooths" {
		return nil, m.errorToReturn
	}
	var out []models.Booth
	for _, b := range m.booths {
		out = append(out, *b)
	}
	return out, nil
}

func (m *MockBoothDB) GetBoothByID(id string) (*models.Booth, error) {
	if m.shouldFailOn == "GetBoothByID" {
		return nil, m.errorToReturn
	}
	b, ok := m.booths[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *b
	return &copied, nil
}

func (m *MockBoothDB) GetBoothByNumber(number int) (*models.Booth, error) {
	for _, b := range m.booths {
		if b.Number == number {
			copied := *b
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockBoothDB) CreateBooth(b *models.Booth) error {
	if m.shouldFailOn == "CreateBooth" {
		return m.errorToReturn
	}
	copied := *b
	m.booths[b.ID] = &copied
	return nil
}

func (m *MockBoothDB) UpdateBooth(b *models.Booth) error {
	if m.shouldFailOn == "UpdateBooth" {
		return m.errorToReturn
	}
	if _, ok := m.booths[b.ID]; !ok {
		return errors.New("booth not found")
	}
	copied := *b
	m.booths[b.ID] = &copied
	return nil
}

func (m *MockBoothDB) DeleteBooth(id string) error {
	delete(m.booths, id)
	return nil
}

func (m *MockBoothDB) BulkSetCategory(boothIDs []string, categoryID *string) (int64, error) {
	var count int64
	for _, id := range boothIDs {
		if b, ok := m.booths[id]; ok {
			b.CategoryID = categoryID
			count++
		}
	}
	return count, nil
}

func (m *MockBoothDB) CategoryExists(id string) (bool, error) {
	return m.categories[id], nil
}

type noopPublisher struct{}

func (noopPublisher) PublishBoothStatusChanged(booth models.Booth) error { return nil }

func newService(db *MockBoothDB) *booth.BoothService {
	return booth.NewBoothService(db, noopPublisher{}, booth.DefaultRules(), logger.NewLogger())
}

func strPtr(s string) *string                            { return &s }
func intPtr(n int) *int                                  { return &n }
func floatPtr(f float64) *float64                        { return &f }
func statusPtr(s models.BoothStatus) *models.BoothStatus { return &s }

func createReq(number int) models.BoothCreate {
	return models.BoothCreate{
		Name:               "Innovation Hub",
		Description:        "A test booth",
		Number:             intPtr(number),
		Dimensions:         &models.Dimensions{Width: 3, Height: 3},
		PriceWithoutAddons: floatPtr(1000),
		FinalPrice:         floatPtr(1200),
	}
}

func TestCreateBooth(t *testing.T) {
	svc := newService(NewMockBoothDB())

	created, err := svc.Create(createReq(1))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Error("Expected generated id")
	}
	if created.Status != models.StatusPending {
		t.Errorf("Expected new booth to be Pending, got %s", created.Status)
	}
	if created.Addons == nil || len(created.Addons) != 0 {
		t.Errorf("Expected empty addons default, got %+v", created.Addons)
	}
}

func TestCreateBoothMissingFields(t *testing.T) {
	svc := newService(NewMockBoothDB())

	req := createReq(1)
	req.FinalPrice = nil
	if _, err := svc.Create(req); !errors.Is(err, booth.ErrMissingFields) {
		t.Errorf("Expected ErrMissingFields, got %v", err)
	}
}

func TestCreateBoothDuplicateNumber(t *testing.T) {
	svc := newService(NewMockBoothDB())

	if _, err := svc.Create(createReq(1)); err != nil {
		t.Fatalf("First create failed: %v", err)
	}
	if _, err := svc.Create(createReq(1)); !errors.Is(err, booth.ErrNumberExists) {
		t.Errorf("Expected ErrNumberExists, got %v", err)
	}
}

func TestUpdateBoothPartial(t *testing.T) {
	db := NewMockBoothDB()
	svc := newService(db)

	created, err := svc.Create(createReq(1))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.Update(created.ID, models.BoothUpdate{
		Name:       strPtr(""),
		FinalPrice: floatPtr(0),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "Innovation Hub" {
		t.Errorf("Empty name should be skipped, got %s", updated.Name)
	}
	if updated.FinalPrice != 0 {
		t.Errorf("Expected final price 0, got %v", updated.FinalPrice)
	}
	if updated.Number != 1 {
		t.Errorf("Number should be untouched, got %d", updated.Number)
	}
}

func TestUpdateBoothNumberConflict(t *testing.T) {
	svc := newService(NewMockBoothDB())

	a, err := svc.Create(createReq(1))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(createReq(2)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.Update(a.ID, models.BoothUpdate{Number: intPtr(2)}); !errors.Is(err, booth.ErrNumberExists) {
		t.Errorf("Expected ErrNumberExists, got %v", err)
	}

	// Re-sending the current number is not a conflict.
	if _, err := svc.Update(a.ID, models.BoothUpdate{Number: intPtr(1)}); err != nil {
		t.Errorf("Updating with own number should succeed, got %v", err)
	}
}

func TestUpdateBoothCategory(t *testing.T) {
	db := NewMockBoothDB()
	db.categories["cat-1"] = true
	svc := newService(db)

	created, err := svc.Create(createReq(1))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = svc.Update(created.ID, models.BoothUpdate{
		CategoryID: models.OptionalString{Set: true, Value: strPtr("missing")},
	})
	if !errors.Is(err, booth.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}

	updated, err := svc.Update(created.ID, models.BoothUpdate{
		CategoryID: models.OptionalString{Set: true, Value: strPtr("cat-1")},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.CategoryID == nil || *updated.CategoryID != "cat-1" {
		t.Errorf("Expected category cat-1, got %v", updated.CategoryID)
	}

	// Explicit null clears the assignment.
	updated, err = svc.Update(created.ID, models.BoothUpdate{
		CategoryID: models.OptionalString{Set: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.CategoryID != nil {
		t.Errorf("Expected cleared category, got %v", *updated.CategoryID)
	}
}

func TestUpdateBoothInvalidStatus(t *testing.T) {
	svc := newService(NewMockBoothDB())

	created, err := svc.Create(createReq(1))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = svc.Update(created.ID, models.BoothUpdate{Status: statusPtr("Booked")})
	if !errors.Is(err, booth.ErrInvalidStatus) {
		t.Errorf("Expected ErrInvalidStatus, got %v", err)
	}
}

func TestBulkSetCategory(t *testing.T) {
	db := NewMockBoothDB()
	db.categories["cat-1"] = true
	svc := newService(db)

	a, err := svc.Create(createReq(1))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	b, err := svc.Create(createReq(2))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	count, err := svc.BulkSetCategory(models.BulkCategoryUpdate{
		BoothIDs:   []string{a.ID, b.ID, "missing"},
		CategoryID: models.OptionalString{Set: true, Value: strPtr("cat-1")},
	})
	if err != nil {
		t.Fatalf("BulkSetCategory failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 updated booths, got %d", count)
	}

	_, err = svc.BulkSetCategory(models.BulkCategoryUpdate{
		BoothIDs:   []string{a.ID},
		CategoryID: models.OptionalString{Set: true, Value: strPtr("missing")},
	})
	if !errors.Is(err, booth.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}

	_, err = svc.BulkSetCategory(models.BulkCategoryUpdate{BoothIDs: []string{}})
	if !errors.Is(err, booth.ErrEmptyBoothIDs) {
		t.Errorf("Expected ErrEmptyBoothIDs, got %v", err)
	}

	// Omitted categoryId clears the assignment.
	count, err = svc.BulkSetCategory(models.BulkCategoryUpdate{BoothIDs: []string{a.ID}})
	if err != nil {
		t.Fatalf("BulkSetCategory failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 updated booth, got %d", count)
	}
	cleared, err := svc.Get(a.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if cleared.CategoryID != nil {
		t.Errorf("Expected cleared category, got %v", *cleared.CategoryID)
	}
}

func TestUpdateStatusStampsAcceptedAt(t *testing.T) {
	svc := newService(NewMockBoothDB())

	created, err := svc.Create(createReq(1))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	before := time.Now()
	updated, err := svc.UpdateStatus(created.ID, models.StatusAccepted)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != models.StatusAccepted {
		t.Errorf("Expected Accepted, got %s", updated.Status)
	}
	if updated.ReservationAcceptedAt == nil {
		t.Fatal("Expected reservationAcceptedAt to be stamped")
	}
	if updated.ReservationAcceptedAt.Before(before.Add(-time.Second)) {
		t.Errorf("Stamp too old: %v", updated.ReservationAcceptedAt)
	}

	// Later transitions keep the stamp.
	updated, err = svc.UpdateStatus(created.ID, models.StatusRejected)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.ReservationAcceptedAt == nil {
		t.Error("Expected reservationAcceptedAt to survive rejection")
	}
}

func TestUpdateStatusInvalid(t *testing.T) {
	svc := newService(NewMockBoothDB())

	created, err := svc.Create(createReq(1))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.UpdateStatus(created.ID, "Booked"); !errors.Is(err, booth.ErrInvalidStatus) {
		t.Errorf("Expected ErrInvalidStatus, got %v", err)
	}
	if _, err := svc.UpdateStatus("missing", models.StatusAccepted); !errors.Is(err, booth.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUpdateStatusStrictRules(t *testing.T) {
	db := NewMockBoothDB()
	svc := booth.NewBoothService(db, noopPublisher{}, booth.StrictRules(), logger.NewLogger())

	created, err := svc.Create(createReq(1))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.UpdateStatus(created.ID, models.StatusAccepted); err != nil {
		t.Fatalf("Pending to Accepted should be allowed: %v", err)
	}
	if _, err := svc.UpdateStatus(created.ID, models.StatusPending); !errors.Is(err, booth.ErrTransitionNotAllowed) {
		t.Errorf("Accepted to Pending should be blocked, got %v", err)
	}
	if _, err := svc.UpdateStatus(created.ID, models.StatusRejected); err != nil {
		t.Fatalf("Accepted to Rejected should be allowed: %v", err)
	}
	if _, err := svc.UpdateStatus(created.ID, models.StatusPending); err != nil {
		t.Fatalf("Rejected to Pending should be allowed: %v", err)
	}
}

func TestDeleteBooth(t *testing.T) {
	svc := newService(NewMockBoothDB())

	created, err := svc.Create(createReq(1))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(created.ID); !errors.Is(err, booth.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
