package httptransport

import (
	"errors"
	"net/http"

	appsite "bonushunt/internal/app/site"

	"github.com/go-chi/chi/v5"
)

type PublicHandlers struct {
	siteSvc *appsite.Service
}

func NewPublicHandlers(siteSvc *appsite.Service) *PublicHandlers {
	return &PublicHandlers{siteSvc: siteSvc}
}

func (h *PublicHandlers) StoreItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.siteSvc.StoreItems(r.Context())
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func (h *PublicHandlers) Raffles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		resp, err := h.siteSvc.Raffles(r.Context(), r.URL.Query().Get("status"), limit, offset)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func (h *PublicHandlers) RaffleDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raffleID := chi.URLParam(r, "raffle_id")
		limit, offset := ParsePagination(r)
		resp, err := h.siteSvc.RaffleDetail(r.Context(), raffleID, limit, offset)
		if err != nil {
			switch {
			case errors.Is(err, appsite.ErrInvalidRequest):
				WriteHTTPError(w, http.StatusBadRequest, "Raffle ID required")
			case errors.Is(err, appsite.ErrNotFound):
				WriteHTTPError(w, http.StatusNotFound, "Raffle not found")
			default:
				WriteHTTPError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func (h *PublicHandlers) Leaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		resp, err := h.siteSvc.Leaderboard(r.Context(), limit, offset)
		if err != nil {
			if errors.Is(err, appsite.ErrInvalidRequest) {
				WriteHTTPError(w, http.StatusBadRequest, "Invalid pagination")
				return
			}
			WriteHTTPError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func (h *PublicHandlers) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident := IdentityFromContext(r.Context())
		resp, err := h.siteSvc.Profile(r.Context(), ident)
		if err != nil {
			switch {
			case errors.Is(err, appsite.ErrNotAuthenticated):
				WriteHTTPError(w, http.StatusUnauthorized, "Not authenticated")
			case errors.Is(err, appsite.ErrNotFound):
				WriteHTTPError(w, http.StatusNotFound, "User not found")
			default:
				WriteHTTPError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}
