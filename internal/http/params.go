package http

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurpe/siteops-admin/internal/model"
	"github.com/nurpe/siteops-admin/internal/service"
)

const maxPage = math.MaxInt32

// listParams reads pagination, sorting, search and the given filter keys from
// the query string. Filters ending in _id must be UUIDs; enum filters are upper-cased.
func (h *Handler) listParams(c *gin.Context, filterKeys ...string) (model.ListParams, error) {
	params := model.ListParams{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", h.pagination.DefaultSize),
		Sort:     strings.TrimSpace(c.Query("sort")),
		Order:    strings.ToLower(strings.TrimSpace(c.Query("order"))),
		Search:   strings.TrimSpace(c.Query("search")),
		Filters:  map[string]string{},
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Page > maxPage {
		params.Page = maxPage
	}
	if params.PageSize < 1 {
		params.PageSize = h.pagination.DefaultSize
	}
	if params.PageSize > h.pagination.MaxSize {
		params.PageSize = h.pagination.MaxSize
	}

	for _, key := range filterKeys {
		value := strings.TrimSpace(c.Query(key))
		if value == "" {
			continue
		}
		switch {
		case strings.HasSuffix(key, "_id"):
			id, err := uuid.Parse(value)
			if err != nil {
				return model.ListParams{}, fmt.Errorf("%w: %s must be a UUID", service.ErrInvalidInput, key)
			}
			value = id.String()
		case key == "status", key == "priority", key == "role":
			value = strings.ToUpper(value)
		}
		params.Filters[key] = value
	}
	return params, nil
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", service.ErrInvalidInput, raw)
}

// parseOptionalDate treats nil and blank strings as "no date".
func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	parsed, err := parseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
