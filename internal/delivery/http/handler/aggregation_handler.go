package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/geogrid-service/internal/pkg/errors"
	"github.com/geogrid-service/internal/pkg/utils"
	"github.com/geogrid-service/internal/pkg/validator"
	"github.com/geogrid-service/internal/usecase"
	"github.com/geogrid-service/internal/usecase/dto"
)

// AggregationHandler - обработчик сборки geohash-агрегаций и сессий карты
type AggregationHandler struct {
	aggregationUC *usecase.AggregationUseCase
	logger        *zap.Logger
}

// NewAggregationHandler - создание нового AggregationHandler
func NewAggregationHandler(aggregationUC *usecase.AggregationUseCase, logger *zap.Logger) *AggregationHandler {
	return &AggregationHandler{
		aggregationUC: aggregationUC,
		logger:        logger,
	}
}

// BuildGeohash godoc
// @Summary Сборка geohash-агрегаций
// @Description Обновляет viewport и зум сессии карты, поддерживает map collar и возвращает упорядоченный список агрегаций (filter, geohash_grid, geo_centroid) вместе с телом поискового запроса.
// @Tags Aggregations
// @Accept json
// @Produce json
// @Param request body dto.BuildAggregationRequest true "Состояние карты и параметры агрегации"
// @Success 200 {object} utils.SuccessResponse{data=dto.BuildAggregationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/aggregations/geohash [post]
func (h *AggregationHandler) BuildGeohash(c *fiber.Ctx) error {
	start := time.Now()

	var req dto.BuildAggregationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.aggregationUC.Build(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:    len(result.Aggregations),
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}

// GetSession godoc
// @Summary Состояние сессии карты
// @Description Возвращает сохранённые viewport, зум и map collar сессии
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии (UUID)"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func (h *AggregationHandler) GetSession(c *fiber.Ctx) error {
	result, err := h.aggregationUC.GetSession(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// ResetSession godoc
// @Summary Сброс сессии карты
// @Description Удаляет состояние сессии; следующая сборка пересчитает map collar
// @Tags Sessions
// @Param id path string true "ID сессии (UUID)"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [delete]
func (h *AggregationHandler) ResetSession(c *fiber.Ctx) error {
	if err := h.aggregationUC.ResetSession(c.Context(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetPrecision godoc
// @Summary Точность geohash для зума
// @Description Без параметра zoom возвращает таблицу для всех зумов 0..21
// @Tags Geohash
// @Produce json
// @Param zoom query int false "Уровень зума (0-21)"
// @Success 200 {object} utils.SuccessResponse{data=dto.PrecisionLevel}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/geohash/precision [get]
func (h *AggregationHandler) GetPrecision(c *fiber.Ctx) error {
	var req dto.PrecisionRequest
	if raw := c.Query("zoom"); raw != "" {
		zoom, err := strconv.Atoi(raw)
		if err != nil {
			return utils.SendError(c, errors.ErrInvalidZoom)
		}
		req.Zoom = &zoom
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidZoom)
	}

	if req.Zoom == nil {
		return utils.SendSuccess(c, h.aggregationUC.PrecisionTable(), nil)
	}
	return utils.SendSuccess(c, h.aggregationUC.Precision(*req.Zoom), nil)
}
