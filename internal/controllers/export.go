package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	"inventory-system/internal/services"
	"inventory-system/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
	now           func() time.Time
}

func NewExportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ExportController {
	return &ExportController{reportService: reportService, logger: logger, now: time.Now}
}

var registerHeaders = []string{
	"№", "Наименование", "Инвентарный номер", "Аудитория", "Ответственный", "Стоимость", "Статус", "Комментарий",
}

func registerRow(n int, item entities.EquipmentRegisterItem) []interface{} {
	var cost interface{} = ""
	if item.Cost.Valid {
		cost = item.Cost.Float64
	}
	return []interface{}{
		n, item.Name, item.InventoryNumber, item.RoomName.String, item.ResponsibleName(),
		cost, item.StatusName.String, item.Comment.String,
	}
}

// ExportEquipment отдает реестр оборудования в xlsx с теми же search/filter/sortBy/sortOrder, что и список.
func (c *ExportController) ExportEquipment(ctx echo.Context) error {
	q := utils.ParseListQuery(ctx.QueryParams())

	data, err := c.reportService.EquipmentRegister(ctx.Request().Context(), q)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	c.logger.Debug("Выгрузка реестра оборудования", zap.Int("rows", len(data)))

	f, err := buildRegisterWorkbook(data)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer f.Close()

	fileName := fmt.Sprintf("equipment_%s.xlsx", c.now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}

func buildRegisterWorkbook(data []entities.EquipmentRegisterItem) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Оборудование"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &registerHeaders); err != nil {
		return nil, err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", "H1", style); err != nil {
		return nil, err
	}

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := registerRow(i+1, item)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	f.SetColWidth(sheet, "B", "B", 35)
	f.SetColWidth(sheet, "C", "E", 20)
	f.SetColWidth(sheet, "H", "H", 50)
	return f, nil
}
