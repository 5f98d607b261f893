// Package handlers tests for the rotation control endpoints.
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/retailqa/scanbench/backend/internal/catalog"
	"github.com/retailqa/scanbench/backend/internal/models"
	"github.com/retailqa/scanbench/backend/internal/rotation"
)

// seedFolder creates a folder with a couple of encodable items and returns
// its ID.
func seedFolder(t *testing.T, repo *catalog.Repository) models.UUID {
	t.Helper()
	folder := &models.Folder{Name: "Rotation"}
	if err := repo.CreateFolder(folder); err != nil {
		t.Fatalf("Failed to create folder: %v", err)
	}
	for _, gtin := range []string{"4810099003310", "4006381333931"} {
		item := &models.Item{
			FolderID:    folder.ID,
			Kind:        models.KindDataMatrix,
			SourceValue: gtin,
			Active:      true,
		}
		if err := repo.CreateItem(item); err != nil {
			t.Fatalf("Failed to create item: %v", err)
		}
	}
	return folder.ID
}

func decodeStatus(t *testing.T, w *httptest.ResponseRecorder) rotation.Status {
	t.Helper()
	var st rotation.Status
	if err := json.NewDecoder(w.Body).Decode(&st); err != nil {
		t.Fatalf("Failed to decode status: %v", err)
	}
	return st
}

func TestRotationHandler_StartAndStatus(t *testing.T) {
	repo, engine := setupHandlers(t)
	handler := NewRotationHandler(engine, repo)
	folderID := seedFolder(t, repo)

	req := postJSON(t, "/api/rotation/start", map[string]string{"folder_id": folderID.String()})
	w := httptest.NewRecorder()
	handler.Start(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	st := decodeStatus(t, w)
	if st.State != rotation.StateRunning {
		t.Errorf("Expected running state, got '%s'", st.State)
	}
	if st.ItemCount != 2 {
		t.Errorf("Expected 2 items in session, got %d", st.ItemCount)
	}
	if st.Current == nil || st.Current.Primary.Payload != "0104810099003310" {
		t.Errorf("Expected first item displayed, got %+v", st.Current)
	}
}

func TestRotationHandler_Start_EmptyFolder(t *testing.T) {
	repo, engine := setupHandlers(t)
	handler := NewRotationHandler(engine, repo)

	folder := &models.Folder{Name: "Empty"}
	if err := repo.CreateFolder(folder); err != nil {
		t.Fatalf("Failed to create folder: %v", err)
	}

	req := postJSON(t, "/api/rotation/start", map[string]string{"folder_id": folder.ID.String()})
	w := httptest.NewRecorder()
	handler.Start(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
	if engine.Status().State != rotation.StateIdle {
		t.Error("Engine should stay idle after a rejected start")
	}
}

func TestRotationHandler_NextPrev(t *testing.T) {
	repo, engine := setupHandlers(t)
	handler := NewRotationHandler(engine, repo)
	folderID := seedFolder(t, repo)

	items, err := repo.ActiveItems(folderID)
	if err != nil {
		t.Fatalf("ActiveItems() returned error: %v", err)
	}
	if err := engine.Start(items); err != nil {
		t.Fatalf("Start() returned error: %v", err)
	}

	w := httptest.NewRecorder()
	handler.Next(w, postJSON(t, "/api/rotation/next", struct{}{}))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var entry rotation.HistoryEntry
	if err := json.NewDecoder(w.Body).Decode(&entry); err != nil {
		t.Fatalf("Failed to decode entry: %v", err)
	}
	if entry.Primary.Payload != "0104006381333931" {
		t.Errorf("Expected second item payload, got '%s'", entry.Primary.Payload)
	}

	w = httptest.NewRecorder()
	handler.Prev(w, postJSON(t, "/api/rotation/prev", struct{}{}))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if err := json.NewDecoder(w.Body).Decode(&entry); err != nil {
		t.Fatalf("Failed to decode entry: %v", err)
	}
	if entry.Primary.Payload != "0104810099003310" {
		t.Errorf("Expected first item payload after prev, got '%s'", entry.Primary.Payload)
	}
}

func TestRotationHandler_NextWithoutSession(t *testing.T) {
	repo, engine := setupHandlers(t)
	handler := NewRotationHandler(engine, repo)

	w := httptest.NewRecorder()
	handler.Next(w, postJSON(t, "/api/rotation/next", struct{}{}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestRotationHandler_SetInterval(t *testing.T) {
	repo, engine := setupHandlers(t)
	handler := NewRotationHandler(engine, repo)

	w := httptest.NewRecorder()
	handler.SetInterval(w, postJSON(t, "/api/rotation/interval", map[string]string{"seconds": "42"}))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if st := decodeStatus(t, w); st.IntervalSeconds != 42 {
		t.Errorf("Expected interval 42s, got %v", st.IntervalSeconds)
	}
}

func TestRotationHandler_SetInterval_InvalidIgnored(t *testing.T) {
	repo, engine := setupHandlers(t)
	handler := NewRotationHandler(engine, repo)
	before := engine.Status().IntervalSeconds

	for _, seconds := range []string{"abc", "-5", "0", "NaN is not here"} {
		w := httptest.NewRecorder()
		handler.SetInterval(w, postJSON(t, "/api/rotation/interval", map[string]string{"seconds": seconds}))

		if w.Code != http.StatusOK {
			t.Errorf("seconds=%q: expected status 200, got %d", seconds, w.Code)
		}
		if st := decodeStatus(t, w); st.IntervalSeconds != before {
			t.Errorf("seconds=%q: interval changed to %v", seconds, st.IntervalSeconds)
		}
	}
}

func TestRotationHandler_SetComposite(t *testing.T) {
	repo, engine := setupHandlers(t)
	handler := NewRotationHandler(engine, repo)

	w := httptest.NewRecorder()
	handler.SetComposite(w, postJSON(t, "/api/rotation/composite", map[string]string{"mode": "dm_plus_ean"}))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if st := decodeStatus(t, w); st.Composite != rotation.CompositeDMPlusEAN {
		t.Errorf("Expected composite mode dm_plus_ean, got '%s'", st.Composite)
	}
}

func TestRotationHandler_SetComposite_Unknown(t *testing.T) {
	repo, engine := setupHandlers(t)
	handler := NewRotationHandler(engine, repo)

	w := httptest.NewRecorder()
	handler.SetComposite(w, postJSON(t, "/api/rotation/composite", map[string]string{"mode": "triple_scan"}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestRotationHandler_Demo(t *testing.T) {
	repo, engine := setupHandlers(t)
	handler := NewRotationHandler(engine, repo)

	w := httptest.NewRecorder()
	handler.Demo(w, postJSON(t, "/api/rotation/demo", struct{}{}))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var entry rotation.HistoryEntry
	if err := json.NewDecoder(w.Body).Decode(&entry); err != nil {
		t.Fatalf("Failed to decode entry: %v", err)
	}
	if entry.SourceIndex != -1 {
		t.Errorf("Demo entries should not reference a session item, got index %d", entry.SourceIndex)
	}
	if entry.Primary.Payload == "" {
		t.Error("Expected non-empty demo payload")
	}
}

func TestRotationHandler_StopIsIdempotent(t *testing.T) {
	repo, engine := setupHandlers(t)
	handler := NewRotationHandler(engine, repo)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.Stop(w, postJSON(t, "/api/rotation/stop", struct{}{}))
		if w.Code != http.StatusOK {
			t.Fatalf("Stop call %d: expected status 200, got %d", i, w.Code)
		}
		if st := decodeStatus(t, w); st.State != rotation.StateIdle {
			t.Errorf("Stop call %d: expected idle state, got '%s'", i, st.State)
		}
	}
}
