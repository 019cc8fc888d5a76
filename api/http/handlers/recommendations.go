package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/jobpulse/backend/api/http/presenter"
	"github.com/jobpulse/backend/pkg/recommend"
)

type RecommendationHandler struct {
	uc recommend.UseCase
}

func NewRecommendationHandler(uc recommend.UseCase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

// Jobs returns job recommendations for the caller. An unknown profile yields
// an empty list, not an error.
func (h *RecommendationHandler) Jobs(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return presenter.Unauthorized(c, "could not identify user")
	}
	limit := parseLimit(c, recommend.DefaultLimit, 50)
	items, err := h.uc.JobsForCandidate(c.Context(), uid, limit)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to build recommendations")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"items": items})
}

// Candidates returns candidate recommendations for one posting.
func (h *RecommendationHandler) Candidates(c *fiber.Ctx) error {
	id, err := parseJobID(c)
	if err != nil {
		return presenter.BadRequest(c, err.Error())
	}
	limit := parseLimit(c, recommend.DefaultLimit, 50)
	items, err := h.uc.CandidatesForJob(c.Context(), id, limit)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to build recommendations")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"items": items})
}
