package handlers

import (
	"net/http"

	"github.com/memoprint/memoprint/internal/layout"
)

// Templates returns the closed set of selectable layout templates.
func Templates(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"templates": layout.Templates,
		"default":   layout.DefaultTemplateID,
	})
}
