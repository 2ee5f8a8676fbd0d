package service

import "math"

// maxPageSize bounds how many rows a single list call may return.
const (
	defaultPageSize = 100
	maxPageSize     = 100
)

// PageInfo describes one page of a listing.
type PageInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// normalizePage applies defaults and rejects out-of-range values.
// Page numbering starts at 1.
func normalizePage(page, limit int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = defaultPageSize
	}
	if page < 1 || limit < 1 || limit > maxPageSize {
		return 0, 0, ErrInvalidInput
	}
	return page, limit, nil
}

func offsetOf(page, limit int) int {
	return (page - 1) * limit
}

// newPageInfo computes page metadata. An empty result still counts as
// one page, so total_pages is never below 1.
func newPageInfo(page, limit int, total int64) PageInfo {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	if totalPages < 1 {
		totalPages = 1
	}
	return PageInfo{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}
