package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/pkg/errors"
	"github.com/parking-microservice/internal/pkg/utils"
	"github.com/parking-microservice/internal/pkg/validator"
	"github.com/parking-microservice/internal/usecase"
	"github.com/parking-microservice/internal/usecase/dto"
)

// RecommendationHandler - обработчик рекомендаций парковки
type RecommendationHandler struct {
	recommendationUC *usecase.RecommendationUseCase
	logger           *zap.Logger
}

// NewRecommendationHandler - создание нового RecommendationHandler
func NewRecommendationHandler(recommendationUC *usecase.RecommendationUseCase, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationUC: recommendationUC,
		logger:           logger,
	}
}

// Recommend - POST /api/v1/recommendations
// Ранжированный список парковочных зон рядом с точкой назначения: платные в
// приоритете, резидентные как дополнение.
func (h *RecommendationHandler) Recommend(c *fiber.Ctx) error {
	var req dto.RecommendationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.recommendationUC.Recommend(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Paid) + len(result.Residential),
	})
}
