package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestExportHandler_Export_Success(t *testing.T) {
	store := testStore(t)
	handler := NewExportHandler(store)
	p := testProject(t, store, "Birthday Párty")

	for _, name := range []string{"a.png", "b.png", "c.png"} {
		if _, err := store.AddImage(context.Background(), p.ID, name, pngBytes(t, 120, 90)); err != nil {
			t.Fatalf("failed to add image: %v", err)
		}
	}

	req := httptest.NewRequest("POST", "/api/v1/projects/"+p.ID+"/export", nil)
	req = requestWithChiParams(req, map[string]string{"id": p.ID})
	recorder := httptest.NewRecorder()

	handler.Export(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)
	assertContentType(t, recorder, "application/pdf")

	if !bytes.HasPrefix(recorder.Body.Bytes(), []byte("%PDF-")) {
		t.Error("expected response body to start with a PDF header")
	}

	disposition := recorder.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "attachment") {
		t.Errorf("expected attachment disposition, got '%s'", disposition)
	}
	if !strings.Contains(disposition, "birthday-party.pdf") {
		t.Errorf("expected normalized filename in disposition, got '%s'", disposition)
	}
}

func TestExportHandler_Export_EmptyProject(t *testing.T) {
	store := testStore(t)
	handler := NewExportHandler(store)
	p := testProject(t, store, "Nothing Here")

	req := httptest.NewRequest("POST", "/api/v1/projects/"+p.ID+"/export", nil)
	req = requestWithChiParams(req, map[string]string{"id": p.ID})
	recorder := httptest.NewRecorder()

	handler.Export(recorder, req)

	assertStatusCode(t, recorder, http.StatusUnprocessableEntity)
	assertJSONError(t, recorder, "project has no images to export")
}

func TestExportHandler_Export_ProjectNotFound(t *testing.T) {
	store := testStore(t)
	handler := NewExportHandler(store)

	req := httptest.NewRequest("POST", "/api/v1/projects/missing/export", nil)
	req = requestWithChiParams(req, map[string]string{"id": "missing"})
	recorder := httptest.NewRecorder()

	handler.Export(recorder, req)

	assertStatusCode(t, recorder, http.StatusNotFound)
}
