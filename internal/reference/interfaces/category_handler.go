package interfaces

import (
	"net/http"

	"github.com/apex/log"
)

type CategoryHandler struct {
	cache        ReferenceCacheInterface
	respondJSON  respondJSONFunc
	respondError respondErrorFunc
}

func NewCategoryHandler(
	cache ReferenceCacheInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *CategoryHandler {
	if cache == nil || respondJSON == nil || respondError == nil {
		panic("Cache and response functions must not be nil")
	}
	return &CategoryHandler{
		cache:        cache,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"message":    "Categories retrieved successfully.",
		"categories": h.cache.Categories(),
	})
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	category, ok := h.cache.CategoryByID(id)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Category not found")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "success",
		"message":  "Category retrieved successfully.",
		"category": category,
	})
}

func (h *CategoryHandler) LookupCategories(w http.ResponseWriter, r *http.Request) {
	ids, strict, err := parseLookupIDs(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	payload := map[string]interface{}{
		"status":  "success",
		"message": "Categories retrieved successfully.",
	}
	if strict {
		categories, missing := h.cache.ResolveCategories(ids)
		if missing == nil {
			missing = []string{}
		}
		payload["categories"] = categories
		payload["missing"] = missing
		if len(missing) > 0 {
			log.WithField("missing", len(missing)).Debug("Category lookup with unknown ids")
		}
	} else {
		payload["categories"] = h.cache.CategoriesByIDs(ids)
	}
	h.respondJSON(w, http.StatusOK, payload)
}
