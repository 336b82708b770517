package httptransport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"bonushunt/internal/app/wallet"
	"bonushunt/internal/store"

	"github.com/go-chi/chi/v5"
)

// AdminStore is the repository slice behind the admin surface.
type AdminStore interface {
	Ping(ctx context.Context) error
	ListRedemptions(ctx context.Context, limit, offset int) ([]store.Redemption, error)
	UpdateRedemptionStatus(ctx context.Context, id, status string) error
	ListLedgerEntries(ctx context.Context, f store.LedgerFilter, limit, offset int) ([]store.LedgerEntry, error)
}

type AdminHandlers struct {
	store     AdminStore
	walletSvc *wallet.Service
}

func NewAdminHandlers(st AdminStore, walletSvc *wallet.Service) *AdminHandlers {
	return &AdminHandlers{store: st, walletSvc: walletSvc}
}

func (h *AdminHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.store.Ping(r.Context()); err != nil {
			WriteJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "db": "down"})
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "db": "up"})
	}
}

// SetPoints serves the chat bot's balance-overwrite endpoint.
func (h *AdminHandlers) SetPoints() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string   `json:"username"`
			Points   *float64 `json:"points"`
		}
		if err := decodeJSONBody(w, r, &body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if body.Username == "" || body.Points == nil {
			WriteHTTPError(w, http.StatusBadRequest, "Username and points are required")
			return
		}

		res, err := h.walletSvc.SetPoints(r.Context(), body.Username, *body.Points)
		if err != nil {
			switch {
			case errors.Is(err, wallet.ErrInvalidValue):
				WriteHTTPError(w, http.StatusBadRequest, "Invalid points value")
			case errors.Is(err, wallet.ErrInvalidRequest):
				WriteHTTPError(w, http.StatusBadRequest, "Username and points are required")
			case errors.Is(err, wallet.ErrNotFound):
				WriteHTTPError(w, http.StatusNotFound, "User not found")
			default:
				WriteHTTPError(w, http.StatusInternalServerError, "Failed to update points in database")
			}
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{
			"success":        true,
			"message":        fmt.Sprintf("Successfully set %s's points to %d", res.Username, res.NewPoints),
			"previousPoints": res.PreviousPoints,
			"newPoints":      res.NewPoints,
		})
	}
}

func (h *AdminHandlers) Redemptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		items, err := h.store.ListRedemptions(r.Context(), limit, offset)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"items": items, "limit": limit, "offset": offset})
	}
}

func (h *AdminHandlers) RedemptionStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "redemption_id")
		var body struct {
			Status string `json:"status"`
		}
		if err := decodeJSONBody(w, r, &body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if body.Status != store.RedemptionFulfilled && body.Status != store.RedemptionCancelled {
			WriteHTTPError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		if err := h.store.UpdateRedemptionStatus(r.Context(), id, body.Status); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				WriteHTTPError(w, http.StatusNotFound, "Redemption not found")
				return
			}
			WriteHTTPError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

func (h *AdminHandlers) Ledger() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		f := store.LedgerFilter{
			UserID: r.URL.Query().Get("user_id"),
			Type:   r.URL.Query().Get("type"),
		}
		if v := r.URL.Query().Get("from"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				f.From = &t
			}
		}
		if v := r.URL.Query().Get("to"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				f.To = &t
			}
		}
		items, err := h.store.ListLedgerEntries(r.Context(), f, limit, offset)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"items": items, "limit": limit, "offset": offset})
	}
}
