// internal/api/handler/api/notices.go
package api

import (
	"net/http"
	"strconv"

	"github.com/stockml/stockml/internal/api/response"
	"github.com/stockml/stockml/internal/notice"
)

// NoticesHandler exposes the retained notification feed.
type NoticesHandler struct {
	feed *notice.MemoryFeed
}

// NewNoticesHandler creates a new notices handler.
func NewNoticesHandler(feed *notice.MemoryFeed) *NoticesHandler {
	return &NoticesHandler{feed: feed}
}

// List handles GET /api/v1/notices?limit=
func (h *NoticesHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	notices := h.feed.Recent(limit)
	response.JSON(w, http.StatusOK, map[string]any{
		"notices": notices,
		"count":   len(notices),
	})
}
