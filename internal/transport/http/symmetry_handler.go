package http

import (
	"net/http"

	"github.com/go-chi/render"

	"hklcompare/internal/symmetry"
	api "hklcompare/pkg/contracts/api/v1"
)

// SymmetryHandler lists the registered Laue classes.
type SymmetryHandler struct {
	defaultLabel string
}

// NewSymmetryHandler creates a symmetry handler reporting defaultLabel as
// the configured default.
func NewSymmetryHandler(defaultLabel string) *SymmetryHandler {
	return &SymmetryHandler{defaultLabel: defaultLabel}
}

// List handles GET /api/v1/symmetry
func (h *SymmetryHandler) List(w http.ResponseWriter, r *http.Request) {
	labels := symmetry.Labels()
	out := api.SymmetryList{Classes: make([]api.SymmetryClass, 0, len(labels)), Default: h.defaultLabel}
	for _, label := range labels {
		out.Classes = append(out.Classes, api.SymmetryClass{
			Label: label,
			Order: symmetry.MustLookup(label).Order(),
		})
	}
	render.JSON(w, r, out)
}
