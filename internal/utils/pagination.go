package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/openmapcollab/mapping-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page    int
	PerPage int
}

// PaginationInfo describes a result page's position within the full
// result set.
type PaginationInfo struct {
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
	NextNum *int  `json:"next_num"`
	Page    int   `json:"page"`
	Pages   int   `json:"pages"`
	PrevNum *int  `json:"prev_num"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

// GetPagination computes pagination metadata for a page of results.
// A page beyond the last valid page still yields consistent flags; the
// caller decides whether that is an error or an empty-results response.
func GetPagination(page, perPage int, total int64) PaginationInfo {
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	hasNext := int64(page)*int64(perPage) < total
	hasPrev := page > 1

	info := PaginationInfo{
		HasNext: hasNext,
		HasPrev: hasPrev,
		Page:    page,
		Pages:   pages,
		PerPage: perPage,
		Total:   total,
	}
	if hasNext {
		next := page + 1
		info.NextNum = &next
	}
	if hasPrev {
		prev := page - 1
		info.PrevNum = &prev
	}
	return info
}

// GetPaginationParams extracts and validates pagination parameters from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPage)))
	perPage, _ := strconv.Atoi(c.DefaultQuery("results_per_page", strconv.Itoa(constants.DefaultPageSize)))

	if page < constants.MinPage {
		page = constants.MinPage
	}
	if perPage < 1 || perPage > constants.MaxPageSize {
		perPage = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:    page,
		PerPage: perPage,
	}
}
