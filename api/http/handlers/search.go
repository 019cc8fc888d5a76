package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jobpulse/backend/api/http/presenter"
	"github.com/jobpulse/backend/pkg/search"
)

type SearchHandler struct {
	uc search.UseCase
}

func NewSearchHandler(uc search.UseCase) *SearchHandler { return &SearchHandler{uc: uc} }

// Search runs a free-text job search with blended relevance ranking and
// cursor pagination.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	q := search.Query{
		Term:      strings.TrimSpace(c.Query("q")),
		Location:  c.Query("location"),
		Type:      c.Query("type"),
		Skills:    parseCSV(c, "skills"),
		SalaryMin: parseInt(c, "salary_min"),
		SalaryMax: parseInt(c, "salary_max"),
		Level:     c.Query("level"),
		Sort:      c.Query("sort"),
		Cursor:    parseInt64(c, "cursor"),
		PageSize:  parsePageSize(c),
	}
	res, err := h.uc.Search(c.Context(), q)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "search failed")
	}
	return presenter.JSON(c, http.StatusOK, res)
}

func parsePageSize(c *fiber.Ctx) int {
	if v := strings.TrimSpace(c.Query("page_size")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 0 // use case applies the default
}
