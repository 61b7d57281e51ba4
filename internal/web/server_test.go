package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/memoprint/memoprint/internal/project/fsstore"
)

// TestRoutes walks a project through the whole API surface to make sure
// the router wiring matches the handlers.
func TestRoutes(t *testing.T) {
	store, err := fsstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	server := NewServer(store, "127.0.0.1", 0)
	ts := httptest.NewServer(server.Router())
	defer ts.Close()

	// Health first.
	resp, err := http.Get(ts.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected health 200, got %d", resp.StatusCode)
	}

	// Templates are served without any project.
	resp, err = http.Get(ts.URL + "/api/v1/templates")
	if err != nil {
		t.Fatalf("templates request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected templates 200, got %d", resp.StatusCode)
	}

	// Create a project and read it back through the router.
	body, _ := json.Marshal(map[string]string{"name": "Routed"})
	resp, err = http.Post(ts.URL+"/api/v1/projects", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected create 201, got %d", resp.StatusCode)
	}
	if created.ID == "" {
		t.Fatal("expected a project id")
	}

	resp, err = http.Get(ts.URL + "/api/v1/projects/" + created.ID)
	if err != nil {
		t.Fatalf("get request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected get 200, got %d", resp.StatusCode)
	}

	// Exporting an empty project reports the terminal no-images case.
	resp, err = http.Post(ts.URL+"/api/v1/projects/"+created.ID+"/export", "application/json", nil)
	if err != nil {
		t.Fatalf("export request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("expected export 422, got %d", resp.StatusCode)
	}
}
