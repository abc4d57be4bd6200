package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"inventory-system/internal/services"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
	"inventory-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ResourceController - HTTP-обработчики CRUD для одной сущности.
type ResourceController[T types.Entity] struct {
	service  services.ResourceServiceInterface[T]
	basePath string
	logger   *zap.Logger
}

// NewResourceController: basePath нужен для заголовка Location, например "/api/equipment".
func NewResourceController[T types.Entity](
	service services.ResourceServiceInterface[T],
	basePath string,
	logger *zap.Logger,
) *ResourceController[T] {
	return &ResourceController[T]{service: service, basePath: basePath, logger: logger}
}

// bindJSON читает тело запроса. Ошибка формата даты получает отдельный текст.
func bindJSON(ctx echo.Context, dst interface{}) error {
	if err := json.NewDecoder(ctx.Request().Body).Decode(dst); err != nil {
		message := "Неверный формат данных в теле запроса"
		if errors.Is(err, types.ErrDateFormat) {
			message = "Дата должна быть в формате ДД.ММ.ГГГГ"
		}
		return apperrors.NewHttpError(http.StatusBadRequest, message, err, nil)
	}
	return nil
}

func (c *ResourceController[T]) List(ctx echo.Context) error {
	q := utils.ParseListQuery(ctx.QueryParams())

	items, err := c.service.List(ctx.Request().Context(), q)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, items, "Список успешно получен", http.StatusOK)
}

// ByParent - список, отфильтрованный по родителю из пути, например /by-equipment/:id.
func (c *ResourceController[T]) ByParent(column string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		parentID, err := utils.ParseID(ctx, "id")
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		q := utils.ParseListQuery(ctx.QueryParams())
		q.Filter[column] = parentID

		items, err := c.service.List(ctx.Request().Context(), q)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		return utils.SuccessResponse(ctx, items, "Список успешно получен", http.StatusOK)
	}
}

func (c *ResourceController[T]) Get(ctx echo.Context) error {
	id, err := utils.ParseID(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	item, err := c.service.Get(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, item, "Запись найдена", http.StatusOK)
}

func (c *ResourceController[T]) Create(ctx echo.Context) error {
	var item T
	if err := bindJSON(ctx, &item); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	created, err := c.service.Create(ctx.Request().Context(), &item)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("%s/%d", c.basePath, (*created).GetID()))
	return utils.SuccessResponse(ctx, created, "Запись успешно создана", http.StatusCreated)
}

func (c *ResourceController[T]) Update(ctx echo.Context) error {
	id, err := utils.ParseID(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var item T
	if err := bindJSON(ctx, &item); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.service.Update(ctx.Request().Context(), id, &item); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (c *ResourceController[T]) Delete(ctx echo.Context) error {
	id, err := utils.ParseID(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.service.Delete(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CheckRelations отвечает {"has_relations": bool}; клиент спрашивает перед удалением.
func (c *ResourceController[T]) CheckRelations(ctx echo.Context) error {
	id, err := utils.ParseID(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	related, err := c.service.CheckRelations(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, map[string]bool{"has_relations": related}, "Проверка связей выполнена", http.StatusOK)
}
