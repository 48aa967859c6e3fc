package httpapi

import (
	"encoding/json"
	"net/http"

	gocommand "github.com/goliatone/go-command"

	"github.com/intrakit/intraboard/components/layout/commands"
)

// Handlers exposes HTTP endpoints backed by shared commands.
type Handlers struct {
	Move       gocommand.Commander[commands.MovePlacementInput]
	Resize     gocommand.Commander[commands.ResizePlacementInput]
	Visibility gocommand.Commander[commands.ToggleVisibilityInput]
	Add        gocommand.Commander[commands.AddPlacementInput]
	Reset      gocommand.Commander[commands.ResetLayoutInput]
}

func (h *Handlers) HandleMovePlacement(w http.ResponseWriter, r *http.Request) {
	var payload commands.MovePlacementInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Move.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleResizePlacement(w http.ResponseWriter, r *http.Request) {
	var payload commands.ResizePlacementInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Resize.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleToggleVisibility(w http.ResponseWriter, r *http.Request, placementID string) {
	input := commands.ToggleVisibilityInput{ID: placementID}
	if err := h.Visibility.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleAddPlacement(w http.ResponseWriter, r *http.Request) {
	var payload commands.AddPlacementInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Add.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleResetLayout(w http.ResponseWriter, r *http.Request) {
	if err := h.Reset.Execute(r.Context(), commands.ResetLayoutInput{}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
