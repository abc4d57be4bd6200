package controllers

import (
	"net/http"

	"inventory-system/internal/services"
	"inventory-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type DropdownController struct {
	dropdownService services.DropdownServiceInterface
	logger          *zap.Logger
}

func NewDropdownController(dropdownService services.DropdownServiceInterface, logger *zap.Logger) *DropdownController {
	return &DropdownController{dropdownService: dropdownService, logger: logger}
}

func (c *DropdownController) GetList(ctx echo.Context) error {
	items, err := c.dropdownService.List(ctx.Request().Context(), ctx.Param("name"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, items, "Список успешно получен", http.StatusOK)
}

// GetAll - все списки одним ответом, клиент кладет их в сессию после входа.
func (c *DropdownController) GetAll(ctx echo.Context) error {
	lists, err := c.dropdownService.All(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, lists, "Списки успешно получены", http.StatusOK)
}
