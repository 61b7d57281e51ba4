package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/memoprint/memoprint/internal/project"
)

func TestProjectsHandler_Create_Success(t *testing.T) {
	store := testStore(t)
	handler := NewProjectsHandler(store)

	req := jsonRequest(t, "POST", "/api/v1/projects", map[string]string{
		"name":        "Family Cards",
		"template_id": "a4-compact",
	})
	recorder := httptest.NewRecorder()

	handler.Create(recorder, req)

	assertStatusCode(t, recorder, http.StatusCreated)
	assertContentType(t, recorder, "application/json")

	var resp projectResponse
	parseJSONResponse(t, recorder, &resp)

	if resp.ID == "" {
		t.Error("expected a generated project id")
	}
	if resp.Name != "Family Cards" {
		t.Errorf("expected name 'Family Cards', got '%s'", resp.Name)
	}
	if resp.TemplateID != "a4-compact" {
		t.Errorf("expected template 'a4-compact', got '%s'", resp.TemplateID)
	}
	if len(resp.Images) != 0 {
		t.Errorf("expected no images, got %d", len(resp.Images))
	}
}

func TestProjectsHandler_Create_DefaultsTemplate(t *testing.T) {
	store := testStore(t)
	handler := NewProjectsHandler(store)

	req := jsonRequest(t, "POST", "/api/v1/projects", map[string]string{
		"name": "Plain",
	})
	recorder := httptest.NewRecorder()

	handler.Create(recorder, req)

	assertStatusCode(t, recorder, http.StatusCreated)

	var resp projectResponse
	parseJSONResponse(t, recorder, &resp)

	if resp.TemplateID != "a4-classic" {
		t.Errorf("expected default template 'a4-classic', got '%s'", resp.TemplateID)
	}
}

func TestProjectsHandler_Create_Invalid(t *testing.T) {
	store := testStore(t)
	handler := NewProjectsHandler(store)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing name", map[string]string{"template_id": "a4-classic"}},
		{"unknown template", map[string]string{"name": "x", "template_id": "letter-huge"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := jsonRequest(t, "POST", "/api/v1/projects", tt.body)
			recorder := httptest.NewRecorder()

			handler.Create(recorder, req)

			assertStatusCode(t, recorder, http.StatusBadRequest)
		})
	}
}

func TestProjectsHandler_List_Success(t *testing.T) {
	store := testStore(t)
	handler := NewProjectsHandler(store)

	first := testProject(t, store, "First")
	testProject(t, store, "Second")
	if err := store.TouchOpened(context.Background(), first.ID); err != nil {
		t.Fatalf("failed to touch project: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/v1/projects", nil)
	recorder := httptest.NewRecorder()

	handler.List(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var resp struct {
		Projects   []project.Summary `json:"projects"`
		LastOpened string            `json:"last_opened"`
	}
	parseJSONResponse(t, recorder, &resp)

	if len(resp.Projects) != 2 {
		t.Errorf("expected 2 projects, got %d", len(resp.Projects))
	}
	if resp.LastOpened != first.ID {
		t.Errorf("expected last_opened '%s', got '%s'", first.ID, resp.LastOpened)
	}
}

func TestProjectsHandler_Get_MarksLastOpened(t *testing.T) {
	store := testStore(t)
	handler := NewProjectsHandler(store)
	p := testProject(t, store, "Opened")

	req := httptest.NewRequest("GET", "/api/v1/projects/"+p.ID, nil)
	req = requestWithChiParams(req, map[string]string{"id": p.ID})
	recorder := httptest.NewRecorder()

	handler.Get(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var resp projectResponse
	parseJSONResponse(t, recorder, &resp)
	if resp.ID != p.ID {
		t.Errorf("expected project '%s', got '%s'", p.ID, resp.ID)
	}

	lastOpened, err := store.LastOpened(context.Background())
	if err != nil {
		t.Fatalf("failed to read last opened: %v", err)
	}
	if lastOpened != p.ID {
		t.Errorf("expected last opened '%s', got '%s'", p.ID, lastOpened)
	}
}

func TestProjectsHandler_Get_NotFound(t *testing.T) {
	store := testStore(t)
	handler := NewProjectsHandler(store)

	req := httptest.NewRequest("GET", "/api/v1/projects/missing", nil)
	req = requestWithChiParams(req, map[string]string{"id": "missing"})
	recorder := httptest.NewRecorder()

	handler.Get(recorder, req)

	assertStatusCode(t, recorder, http.StatusNotFound)
	assertJSONError(t, recorder, "project not found")
}

func TestProjectsHandler_Update_Success(t *testing.T) {
	store := testStore(t)
	handler := NewProjectsHandler(store)
	p := testProject(t, store, "Before")

	req := jsonRequest(t, "PUT", "/api/v1/projects/"+p.ID, map[string]string{
		"name":        "After",
		"template_id": "a5-mini",
	})
	req = requestWithChiParams(req, map[string]string{"id": p.ID})
	recorder := httptest.NewRecorder()

	handler.Update(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var resp projectResponse
	parseJSONResponse(t, recorder, &resp)
	if resp.Name != "After" {
		t.Errorf("expected name 'After', got '%s'", resp.Name)
	}
	if resp.TemplateID != "a5-mini" {
		t.Errorf("expected template 'a5-mini', got '%s'", resp.TemplateID)
	}
}

func TestProjectsHandler_Update_UnknownTemplate(t *testing.T) {
	store := testStore(t)
	handler := NewProjectsHandler(store)
	p := testProject(t, store, "Keep")

	req := jsonRequest(t, "PUT", "/api/v1/projects/"+p.ID, map[string]string{
		"template_id": "bogus",
	})
	req = requestWithChiParams(req, map[string]string{"id": p.ID})
	recorder := httptest.NewRecorder()

	handler.Update(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadRequest)
}

func TestProjectsHandler_Delete_Success(t *testing.T) {
	store := testStore(t)
	handler := NewProjectsHandler(store)
	p := testProject(t, store, "Doomed")

	req := httptest.NewRequest("DELETE", "/api/v1/projects/"+p.ID, nil)
	req = requestWithChiParams(req, map[string]string{"id": p.ID})
	recorder := httptest.NewRecorder()

	handler.Delete(recorder, req)

	assertStatusCode(t, recorder, http.StatusNoContent)

	if _, err := store.GetProject(context.Background(), p.ID); err == nil {
		t.Error("expected project to be gone")
	}
}
