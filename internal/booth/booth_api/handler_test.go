package booth_api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ms-booths/internal/booth"
	"ms-booths/internal/logger"
	"ms-booths/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBoothDB struct {
	booths     map[string]*models.Booth
	categories map[string]bool
}

func newMockBoothDB() *mockBoothDB {
	return &mockBoothDB{
		booths:     make(map[string]*models.Booth),
		categories: make(map[string]bool),
	}
}

func (m *mockBoothDB) ListBooths() ([]models.Booth, error) {
	var out []models.Booth
	for _, b := range m.booths {
		out = append(out, *b)
	}
	return out, nil
}

func (m *mockBoothDB) GetBoothByID(id string) (*models.Booth, error) {
	b, ok := m.booths[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *b
	return &copied, nil
}

func (m *mockBoothDB) GetBoothByNumber(number int) (*models.Booth, error) {
	for _, b := range m.booths {
		if b.Number == number {
			copied := *b
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockBoothDB) CreateBooth(b *models.Booth) error {
	copied := *b
	m.booths[b.ID] = &copied
	return nil
}

func (m *mockBoothDB) UpdateBooth(b *models.Booth) error {
	copied := *b
	m.booths[b.ID] = &copied
	return nil
}

func (m *mockBoothDB) DeleteBooth(id string) error {
	delete(m.booths, id)
	return nil
}

func (m *mockBoothDB) BulkSetCategory(boothIDs []string, categoryID *string) (int64, error) {
	var count int64
	for _, id := range boothIDs {
		if b, ok := m.booths[id]; ok {
			b.CategoryID = categoryID
			count++
		}
	}
	return count, nil
}

func (m *mockBoothDB) CategoryExists(id string) (bool, error) {
	return m.categories[id], nil
}

type mockPublisher struct{}

func (mockPublisher) PublishBoothStatusChanged(booth models.Booth) error { return nil }

func setupHandler(db *mockBoothDB) *chi.Mux {
	log := logger.NewLogger()
	service := booth.NewBoothService(db, mockPublisher{}, booth.DefaultRules(), log)
	handler := NewHandler(service, log)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func seedBooth(db *mockBoothDB, number int) *models.Booth {
	b := &models.Booth{
		ID:                 uuid.NewString(),
		Name:               "Innovation Hub",
		Description:        "A test booth",
		Number:             number,
		Dimensions:         models.Dimensions{Width: 3, Height: 3},
		PriceWithoutAddons: 1000,
		FinalPrice:         1200,
		Status:             models.StatusPending,
		Addons:             []models.Addon{},
	}
	db.booths[b.ID] = b
	return b
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateBoothEndpoint(t *testing.T) {
	db := newMockBoothDB()
	r := setupHandler(db)

	w := doJSON(t, r, http.MethodPost, "/booths", map[string]interface{}{
		"name":               "Innovation Hub",
		"description":        "Corner booth near the entrance",
		"number":             1,
		"dimensions":         map[string]float64{"width": 3, "height": 3},
		"priceWithoutAddons": 1000,
		"finalPrice":         1200,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Booth created successfully", body["message"])
	require.NotNil(t, body["booth"])
	assert.Len(t, db.booths, 1)
}

func TestCreateBoothEndpointMissingFields(t *testing.T) {
	r := setupHandler(newMockBoothDB())

	w := doJSON(t, r, http.MethodPost, "/booths", map[string]interface{}{
		"name": "Innovation Hub",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t,
		"Missing required fields: name, description, number, dimensions, priceWithoutAddons, finalPrice",
		body["message"])
}

func TestCreateBoothEndpointDuplicateNumber(t *testing.T) {
	db := newMockBoothDB()
	r := setupHandler(db)
	seedBooth(db, 1)

	w := doJSON(t, r, http.MethodPost, "/booths", map[string]interface{}{
		"name":               "Another",
		"description":        "Duplicate number",
		"number":             1,
		"dimensions":         map[string]float64{"width": 3, "height": 3},
		"priceWithoutAddons": 1000,
		"finalPrice":         1200,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Booth number already exists", body["message"])
}

func TestGetBoothEndpoint(t *testing.T) {
	db := newMockBoothDB()
	r := setupHandler(db)
	b := seedBooth(db, 1)

	w := doJSON(t, r, http.MethodGet, "/booths/"+b.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/booths/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Booth not found", body["message"])
}

func TestUpdateBoothEndpointNullCategory(t *testing.T) {
	db := newMockBoothDB()
	r := setupHandler(db)
	b := seedBooth(db, 1)
	catID := "cat-1"
	db.categories[catID] = true
	b.CategoryID = &catID

	// Explicit null clears; an omitted field would not.
	req := httptest.NewRequest(http.MethodPatch, "/booths/"+b.ID,
		bytes.NewReader([]byte(`{"categoryId": null}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, db.booths[b.ID].CategoryID)

	req = httptest.NewRequest(http.MethodPatch, "/booths/"+b.ID,
		bytes.NewReader([]byte(`{"name": "Renamed"}`)))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Renamed", db.booths[b.ID].Name)
	assert.Nil(t, db.booths[b.ID].CategoryID)
}

func TestBulkUpdateEndpoint(t *testing.T) {
	db := newMockBoothDB()
	r := setupHandler(db)
	a := seedBooth(db, 1)
	b := seedBooth(db, 2)
	db.categories["cat-1"] = true

	w := doJSON(t, r, http.MethodPatch, "/booths/bulk-update", map[string]interface{}{
		"boothIds":   []string{a.ID, b.ID},
		"categoryId": "cat-1",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Successfully updated 2 booths", body["message"])
	assert.Equal(t, float64(2), body["count"])

	w = doJSON(t, r, http.MethodPatch, "/booths/bulk-update", map[string]interface{}{
		"boothIds":   []string{a.ID},
		"categoryId": "cat-1",
	})
	body = decodeBody(t, w)
	assert.Equal(t, "Successfully updated 1 booth", body["message"])

	w = doJSON(t, r, http.MethodPatch, "/booths/bulk-update", map[string]interface{}{
		"boothIds": []string{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, "Invalid or empty boothIds array", body["message"])

	w = doJSON(t, r, http.MethodPatch, "/booths/bulk-update", map[string]interface{}{
		"boothIds":   []string{a.ID},
		"categoryId": "missing",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	db := newMockBoothDB()
	r := setupHandler(db)
	b := seedBooth(db, 1)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/booths/%s/status", b.ID),
		map[string]string{"status": "Accepted"})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Booth accepted successfully", body["message"])
	assert.Equal(t, models.StatusAccepted, db.booths[b.ID].Status)
	assert.NotNil(t, db.booths[b.ID].ReservationAcceptedAt)

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/booths/%s/status", b.ID),
		map[string]string{"status": "Booked"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, "Invalid status. Must be 'Accepted', 'Rejected', or 'Pending'", body["message"])

	w = doJSON(t, r, http.MethodPatch, "/booths/missing/status",
		map[string]string{"status": "Accepted"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteBoothEndpoint(t *testing.T) {
	db := newMockBoothDB()
	r := setupHandler(db)
	b := seedBooth(db, 1)

	w := doJSON(t, r, http.MethodDelete, "/booths/"+b.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Booth deleted successfully", body["message"])
	assert.Empty(t, db.booths)

	w = doJSON(t, r, http.MethodDelete, "/booths/"+b.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
