package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/codearena-go-api/internal/dto"
	"github.com/noah-isme/codearena-go-api/internal/service"
	"github.com/noah-isme/codearena-go-api/internal/utils"
)

// ProblemHandler exposes the catalog read endpoints.
type ProblemHandler struct {
	service service.ProblemService
	logger  zerolog.Logger
}

// NewProblemHandler constructs the handler.
func NewProblemHandler(service service.ProblemService, logger zerolog.Logger) *ProblemHandler {
	return &ProblemHandler{
		service: service,
		logger:  logger.With().Str("component", "problem_handler").Logger(),
	}
}

// Register wires the handler endpoints into the router group.
func (h *ProblemHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("/refresh", h.refresh)
	router.Get("/:id", h.detail)
}

func (h *ProblemHandler) list(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	filter := dto.ProblemFilter{
		Search:     c.Query("search"),
		Difficulty: c.Query("difficulty"),
		Limit:      limit,
	}
	if tags := c.Query("tags"); tags != "" {
		filter.Tags = splitAndTrim(tags)
	}

	response, err := h.service.List(c.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("problem list failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "problems retrieved", response)
}

func (h *ProblemHandler) refresh(c *fiber.Ctx) error {
	response := h.service.Refresh(c.Context())
	return utils.SendSuccess(c, "catalog refreshed", response)
}

func (h *ProblemHandler) detail(c *fiber.Ctx) error {
	response, err := h.service.Detail(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrProblemNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "problem not found")
		}
		h.logger.Warn().Err(err).Str("problem_id", c.Params("id")).Msg("problem detail failed")
		return utils.SendError(c, fiber.StatusBadGateway, "problem detail unavailable")
	}

	return utils.SendSuccess(c, "problem retrieved", response)
}
