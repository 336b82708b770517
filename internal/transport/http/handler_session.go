package httptransport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	appsession "bonushunt/internal/app/session"
)

type SessionHandlers struct {
	sessionSvc *appsession.Service
}

func NewSessionHandlers(sessionSvc *appsession.Service) *SessionHandlers {
	return &SessionHandlers{sessionSvc: sessionSvc}
}

// Session serves GET /api/auth/session, polled by the nav widget.
func (h *SessionHandlers) Session() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident := IdentityFromContext(r.Context())
		resp, err := h.sessionSvc.Snapshot(r.Context(), ident)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
