package interfaces

import (
	"net/http"

	"github.com/apex/log"
)

type TagHandler struct {
	cache        ReferenceCacheInterface
	respondJSON  respondJSONFunc
	respondError respondErrorFunc
}

func NewTagHandler(
	cache ReferenceCacheInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *TagHandler {
	if cache == nil || respondJSON == nil || respondError == nil {
		panic("Cache and response functions must not be nil")
	}
	return &TagHandler{
		cache:        cache,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *TagHandler) GetTags(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Tags retrieved successfully.",
		"tags":    h.cache.Tags(),
	})
}

func (h *TagHandler) GetTag(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	tag, ok := h.cache.TagByID(id)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Tag not found")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Tag retrieved successfully.",
		"tag":     tag,
	})
}

func (h *TagHandler) LookupTags(w http.ResponseWriter, r *http.Request) {
	ids, strict, err := parseLookupIDs(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	payload := map[string]interface{}{
		"status":  "success",
		"message": "Tags retrieved successfully.",
	}
	if strict {
		tags, missing := h.cache.ResolveTags(ids)
		if missing == nil {
			missing = []string{}
		}
		payload["tags"] = tags
		payload["missing"] = missing
		if len(missing) > 0 {
			log.WithField("missing", len(missing)).Debug("Tag lookup with unknown ids")
		}
	} else {
		payload["tags"] = h.cache.TagsByIDs(ids)
	}
	h.respondJSON(w, http.StatusOK, payload)
}
