package interfaces

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/sebuszqo/BeBetterWeb/internal/reference/application"
	"github.com/sebuszqo/BeBetterWeb/internal/reference/domain"
	refErrors "github.com/sebuszqo/BeBetterWeb/internal/reference/errors"
)

const MaxLookupIDs = 100

type ReferenceCacheInterface interface {
	Categories() []domain.Category
	CategoryByID(id string) (domain.Category, bool)
	CategoriesByIDs(ids []string) []domain.Category
	ResolveCategories(ids []string) ([]domain.Category, []string)
	Tags() []domain.Tag
	TagByID(id string) (domain.Tag, bool)
	TagsByIDs(ids []string) []domain.Tag
	ResolveTags(ids []string) ([]domain.Tag, []string)
	Refresh(ctx context.Context) error
	Status() application.Status
}

type respondJSONFunc func(w http.ResponseWriter, status int, payload interface{})
type respondErrorFunc func(w http.ResponseWriter, status int, message string, errors ...[]string)

// parseLookupIDs reads ?ids=a,b,c and ?strict=true.
func parseLookupIDs(r *http.Request) ([]string, bool, error) {
	var ids []string
	for _, raw := range r.URL.Query()["ids"] {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return nil, false, refErrors.ErrMissingIDs
	}
	if len(ids) > MaxLookupIDs {
		return nil, false, refErrors.NewTooManyIDsError(MaxLookupIDs)
	}

	strict := false
	if raw := r.URL.Query().Get("strict"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, false, refErrors.NewValidationError("Query parameter 'strict' must be a boolean")
		}
		strict = parsed
	}
	return ids, strict, nil
}
