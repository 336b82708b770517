package httptransport

import (
	"errors"
	"net/http"

	"bonushunt/internal/app/wallet"
)

type WalletHandlers struct {
	walletSvc *wallet.Service
}

func NewWalletHandlers(walletSvc *wallet.Service) *WalletHandlers {
	return &WalletHandlers{walletSvc: walletSvc}
}

func (h *WalletHandlers) Purchase() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ItemID string `json:"itemId"`
		}
		if err := decodeJSONBody(w, r, &body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if body.ItemID == "" {
			WriteHTTPError(w, http.StatusBadRequest, "Item ID required")
			return
		}

		ident := IdentityFromContext(r.Context())
		res, err := h.walletSvc.Purchase(r.Context(), ident, body.ItemID)
		if err != nil {
			status, msg := purchaseErrorResponse(err)
			WriteHTTPError(w, status, msg)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{
			"success":    true,
			"newBalance": res.NewBalance,
			"message":    "Purchase successful!",
		})
	}
}

func (h *WalletHandlers) EnterRaffle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			RaffleID string `json:"raffleId"`
		}
		if err := decodeJSONBody(w, r, &body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}

		ident := IdentityFromContext(r.Context())
		err := h.walletSvc.EnterRaffle(r.Context(), ident, body.RaffleID)
		if err != nil {
			status, msg := raffleErrorResponse(err)
			WriteHTTPError(w, status, msg)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// Error phrasing matches what the site's frontend already displays.
func purchaseErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, wallet.ErrNotAuthenticated):
		return http.StatusUnauthorized, "Not authenticated"
	case errors.Is(err, wallet.ErrInvalidRequest):
		return http.StatusBadRequest, "Item ID required"
	case errors.Is(err, wallet.ErrNotFound):
		return http.StatusNotFound, "Item not found"
	case errors.Is(err, wallet.ErrUnavailable):
		return http.StatusBadRequest, "Item not available"
	case errors.Is(err, wallet.ErrOutOfStock):
		return http.StatusBadRequest, "Item out of stock"
	case errors.Is(err, wallet.ErrInsufficientPoints):
		return http.StatusBadRequest, "Insufficient points"
	case errors.Is(err, wallet.ErrTransactionFailed):
		return http.StatusInternalServerError, "Failed to complete purchase"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func raffleErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, wallet.ErrNotAuthenticated):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, wallet.ErrInvalidRequest):
		return http.StatusBadRequest, "Raffle ID required"
	case errors.Is(err, wallet.ErrNotFound):
		return http.StatusNotFound, "Raffle not found"
	case errors.Is(err, wallet.ErrRaffleNotActive):
		return http.StatusBadRequest, "Raffle is not active"
	case errors.Is(err, wallet.ErrAlreadyEntered):
		return http.StatusBadRequest, "You have already entered this raffle"
	case errors.Is(err, wallet.ErrInsufficientPoints):
		return http.StatusBadRequest, "Not enough points"
	case errors.Is(err, wallet.ErrTransactionFailed):
		return http.StatusInternalServerError, "Failed to enter raffle"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
