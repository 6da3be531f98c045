package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	console "github.com/goliatone/go-admin-console/components/console"
	"github.com/goliatone/go-admin-console/components/console/commands"
	"github.com/goliatone/go-admin-console/components/console/queries"
)

// Handlers exposes HTTP endpoints backed by shared commands. Bulk commands
// are bound per screen, keyed by entity kind.
type Handlers struct {
	Load     gocommand.Commander[commands.LoadScreenMessage]
	Bulk     map[console.EntityKind]gocommand.Commander[commands.BulkActionMessage]
	SetRange gocommand.Commander[commands.SetRangeMessage]
	Refresh  gocommand.Commander[commands.RefreshStatsMessage]
	Snapshot gocommand.Querier[queries.SnapshotInput, console.TableSnapshot]
	Metrics  gocommand.Querier[struct{}, queries.DashboardMetrics]
}

func (h *Handlers) HandleLoadScreen(w http.ResponseWriter, r *http.Request) {
	var payload commands.LoadScreenMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Load.Execute(r.Context(), payload); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleSnapshot(w http.ResponseWriter, r *http.Request, kind string) {
	snap, err := h.Snapshot.Query(r.Context(), queries.SnapshotInput{Kind: console.EntityKind(kind)})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (h *Handlers) HandleBulkAction(w http.ResponseWriter, r *http.Request, kind string) {
	cmd, ok := h.Bulk[console.EntityKind(kind)]
	if !ok {
		http.Error(w, "unknown screen "+kind, http.StatusNotFound)
		return
	}
	var payload commands.BulkActionMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := cmd.Execute(r.Context(), payload); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleSetRange(w http.ResponseWriter, r *http.Request) {
	var payload commands.SetRangeMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.SetRange.Execute(r.Context(), payload); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleRefreshStats(w http.ResponseWriter, r *http.Request) {
	if err := h.Refresh.Execute(r.Context(), commands.RefreshStatsMessage{}); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handlers) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.Metrics.Query(r.Context(), struct{}{})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, metrics)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondError maps domain failures onto HTTP statuses. Validation errors
// carry their field map so forms can render inline messages.
func respondError(w http.ResponseWriter, err error) {
	var validation *console.ValidationError
	if errors.As(err, &validation) {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": validation.Fields,
		})
		return
	}
	switch {
	case errors.Is(err, console.ErrExchangeInUse):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, commands.ErrBulkNotConfirmed):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
