package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
	"inventory-system/pkg/middleware"
)

func runAuthRouter(api *echo.Group, authController *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	auth := api.Group("/auth")
	auth.POST("/login", authController.Login)
	auth.POST("/logout", authController.Logout, authMW.Auth)
}

func runDropdownRouter(secureGroup *echo.Group, dropdownController *controllers.DropdownController, authMW *middleware.AuthMiddleware) {
	dropdowns := secureGroup.Group("/dropdown", authMW.RequireRead())
	dropdowns.GET("", dropdownController.GetAll)
	dropdowns.GET("/:name", dropdownController.GetList)
}

func runExportRouter(secureGroup *echo.Group, exportController *controllers.ExportController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/equipment/export", exportController.ExportEquipment, authMW.RequireRead())
}
