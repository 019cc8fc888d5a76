package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jobpulse/backend/api/http/presenter"
	"github.com/jobpulse/backend/pkg/application"
	"github.com/jobpulse/backend/pkg/candidate"
	"github.com/jobpulse/backend/pkg/job"
)

type JobHandler struct {
	uc  job.UseCase
	log *slog.Logger
}

func NewJobHandler(uc job.UseCase, log *slog.Logger) *JobHandler {
	if log == nil {
		log = slog.Default()
	}
	return &JobHandler{uc: uc, log: log}
}

func parseJobID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid job id")
	}
	return id, nil
}

func callerID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, _ := c.Locals("userId").(string)
	return uuid.Parse(userIDStr)
}

// Get returns one posting and tracks the view. The increment is atomic at
// the storage layer; a failure to track is logged, never surfaced, so a
// counter hiccup cannot break the detail page.
func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := parseJobID(c)
	if err != nil {
		return presenter.BadRequest(c, err.Error())
	}
	p, err := h.uc.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return presenter.NotFound(c, "job not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to load job")
	}
	if err := h.uc.TrackView(c.Context(), id); err != nil {
		h.log.Warn("view tracking failed", "jobId", id, "err", err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// Apply records the caller's application to a posting.
func (h *JobHandler) Apply(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return presenter.Unauthorized(c, "could not identify user")
	}
	id, err := parseJobID(c)
	if err != nil {
		return presenter.BadRequest(c, err.Error())
	}
	app, err := h.uc.Apply(c.Context(), uid, id)
	if err != nil {
		switch {
		case errors.Is(err, job.ErrNotFound):
			return presenter.NotFound(c, "job not found")
		case errors.Is(err, application.ErrAlreadyApplied):
			return presenter.Error(c, http.StatusConflict, "already applied to this job")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to apply")
		}
	}
	return presenter.JSON(c, http.StatusCreated, app)
}

// Match computes the caller's match against one posting.
func (h *JobHandler) Match(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return presenter.Unauthorized(c, "could not identify user")
	}
	id, err := parseJobID(c)
	if err != nil {
		return presenter.BadRequest(c, err.Error())
	}
	res, err := h.uc.Match(c.Context(), uid, id)
	if err != nil {
		switch {
		case errors.Is(err, job.ErrNotFound):
			return presenter.NotFound(c, "job not found")
		case errors.Is(err, candidate.ErrNotFound):
			return presenter.NotFound(c, "candidate profile not found")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to compute match")
		}
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// EmployerStats returns the cached per-employer aggregate.
func (h *JobHandler) EmployerStats(c *fiber.Ctx) error {
	employerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.BadRequest(c, "invalid employer id")
	}
	stats, err := h.uc.EmployerStats(c.Context(), employerID)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load stats")
	}
	return presenter.JSON(c, http.StatusOK, stats)
}
