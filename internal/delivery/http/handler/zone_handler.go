package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/pkg/errors"
	"github.com/parking-microservice/internal/pkg/utils"
	"github.com/parking-microservice/internal/pkg/validator"
	"github.com/parking-microservice/internal/usecase"
	"github.com/parking-microservice/internal/usecase/dto"
)

// ZoneHandler - обработчик классификации координат
type ZoneHandler struct {
	zoneUC *usecase.ZoneUseCase
	logger *zap.Logger
}

// NewZoneHandler - создание нового ZoneHandler
func NewZoneHandler(zoneUC *usecase.ZoneUseCase, logger *zap.Logger) *ZoneHandler {
	return &ZoneHandler{
		zoneUC: zoneUC,
		logger: logger,
	}
}

// Classify - GET /api/v1/zones/classify?lat=&lng=&fallback_radius=
// Определяет парковочную зону для координаты: вхождение, ближайшая зона в
// радиусе или none.
func (h *ZoneHandler) Classify(c *fiber.Ctx) error {
	var req dto.ClassifyRequest

	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}
	req.Lat = lat
	req.Lng = lng

	if raw := c.Query("fallback_radius"); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest)
		}
		req.FallbackRadiusMeters = &radius
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.zoneUC.Classify(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// CheckIn - POST /api/v1/zones/checkin
// Классификация координаты чек-ина "я припарковался"; радиус поиска выводится
// из GPS-точности.
func (h *ZoneHandler) CheckIn(c *fiber.Ctx) error {
	var req dto.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.zoneUC.CheckIn(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
