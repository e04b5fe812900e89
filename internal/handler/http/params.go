package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// idParam reads the {id} path segment as a positive integer.
func idParam(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, validator.ValidationErrors{{
			Field:   "id",
			Message: "id must be a positive integer",
		}}
	}
	return id, nil
}
