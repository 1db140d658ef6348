package interfaces

import (
	"errors"
	"net/http"

	"github.com/apex/log"

	"github.com/sebuszqo/BeBetterWeb/internal/auth"
	refErrors "github.com/sebuszqo/BeBetterWeb/internal/reference/errors"
)

type StatusHandler struct {
	cache        ReferenceCacheInterface
	respondJSON  respondJSONFunc
	respondError respondErrorFunc
}

func NewStatusHandler(
	cache ReferenceCacheInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *StatusHandler {
	if cache == nil || respondJSON == nil || respondError == nil {
		panic("Cache and response functions must not be nil")
	}
	return &StatusHandler{
		cache:        cache,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Reference cache status retrieved successfully.",
		"cache":   h.cache.Status(),
	})
}

// ForceRefresh answers 200 even when one collection failed to load; the
// failures are listed under "warnings" and the previous data stays served.
func (h *StatusHandler) ForceRefresh(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	err := h.cache.Refresh(r.Context())
	if errors.Is(err, refErrors.ErrNotInitialized) {
		h.respondError(w, http.StatusServiceUnavailable, "Reference cache is not initialized")
		return
	}

	payload := map[string]interface{}{
		"status":  "success",
		"message": "Reference cache refreshed.",
		"cache":   h.cache.Status(),
	}
	if err != nil {
		payload["message"] = "Reference cache partially refreshed."
		payload["warnings"] = refErrors.FetchErrors(err)
	}

	log.WithFields(log.Fields{"user_id": userID, "partial": err != nil}).Info("Forced reference cache refresh")
	h.respondJSON(w, http.StatusOK, payload)
}
