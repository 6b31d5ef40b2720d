package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/codearena-go-api/internal/service"
	"github.com/noah-isme/codearena-go-api/internal/utils"
)

// StatsHandler exposes the leaderboard and profile endpoints.
type StatsHandler struct {
	service service.StatsService
	logger  zerolog.Logger
}

// NewStatsHandler constructs the handler.
func NewStatsHandler(service service.StatsService, logger zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		logger:  logger.With().Str("component", "stats_handler").Logger(),
	}
}

// RegisterLeaderboard wires the public leaderboard endpoint.
func (h *StatsHandler) RegisterLeaderboard(router fiber.Router) {
	router.Get("", h.leaderboard)
}

// RegisterProfile wires the authenticated profile endpoint.
func (h *StatsHandler) RegisterProfile(router fiber.Router) {
	router.Get("", h.profile)
}

func (h *StatsHandler) leaderboard(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	response, err := h.service.Leaderboard(c.Context(), c.Query("timeframe"), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("leaderboard query failed")
		return utils.SendError(c, fiber.StatusServiceUnavailable, "service unavailable")
	}

	return utils.SendSuccess(c, "leaderboard retrieved", response)
}

func (h *StatsHandler) profile(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	response, err := h.service.Profile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		}
		h.logger.Error().Err(err).Msg("profile query failed")
		return utils.SendError(c, fiber.StatusServiceUnavailable, "service unavailable")
	}

	return utils.SendSuccess(c, "profile retrieved", response)
}
