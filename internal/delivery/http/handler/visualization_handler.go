package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/geogrid-service/internal/pkg/errors"
	"github.com/geogrid-service/internal/pkg/utils"
	"github.com/geogrid-service/internal/pkg/validator"
	"github.com/geogrid-service/internal/usecase"
	"github.com/geogrid-service/internal/usecase/dto"
)

// VisualizationHandler - обработчик сохранённых визуализаций
type VisualizationHandler struct {
	visualizationUC *usecase.VisualizationUseCase
	logger          *zap.Logger
}

// NewVisualizationHandler - создание нового VisualizationHandler
func NewVisualizationHandler(visualizationUC *usecase.VisualizationUseCase, logger *zap.Logger) *VisualizationHandler {
	return &VisualizationHandler{
		visualizationUC: visualizationUC,
		logger:          logger,
	}
}

// Create godoc
// @Summary Сохранение визуализации
// @Description Сохраняет поле и параметры geohash-агрегации. Не заданные флаги включены, precision по умолчанию 2.
// @Tags Visualizations
// @Accept json
// @Produce json
// @Param request body dto.CreateVisualizationRequest true "Параметры визуализации"
// @Success 201 {object} utils.SuccessResponse{data=domain.Visualization}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/visualizations [post]
func (h *VisualizationHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateVisualizationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	vis, err := h.visualizationUC.CreateVisualization(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, vis)
}

// List godoc
// @Summary Список визуализаций
// @Tags Visualizations
// @Produce json
// @Param limit query int false "Размер страницы" default(20)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} utils.SuccessResponse{data=dto.VisualizationListResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/visualizations [get]
func (h *VisualizationHandler) List(c *fiber.Ctx) error {
	req := dto.ListVisualizationsRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.visualizationUC.ListVisualizations(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// Get godoc
// @Summary Визуализация по ID
// @Tags Visualizations
// @Produce json
// @Param id path string true "ID визуализации (UUID)"
// @Success 200 {object} utils.SuccessResponse{data=domain.Visualization}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/visualizations/{id} [get]
func (h *VisualizationHandler) Get(c *fiber.Ctx) error {
	vis, err := h.visualizationUC.GetVisualizationByRawID(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, vis, nil)
}

// Delete godoc
// @Summary Удаление визуализации
// @Tags Visualizations
// @Param id path string true "ID визуализации (UUID)"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/visualizations/{id} [delete]
func (h *VisualizationHandler) Delete(c *fiber.Ctx) error {
	if err := h.visualizationUC.DeleteVisualization(c.Context(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
