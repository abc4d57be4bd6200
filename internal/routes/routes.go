package routes

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/controllers"
	"inventory-system/internal/listeners"
	"inventory-system/internal/repositories"
	"inventory-system/internal/services"
	"inventory-system/pkg/config"
	"inventory-system/pkg/customvalidator"
	"inventory-system/pkg/eventbus"
	"inventory-system/pkg/middleware"
	"inventory-system/pkg/service"
)

// InitRouter собирает сервисы поверх repos и регистрирует все маршруты /api.
func InitRouter(
	e *echo.Echo,
	repos Repositories,
	jwtSvc service.JWTService,
	bus *eventbus.Bus,
	cfg *config.Config,
	logger *zap.Logger,
) {
	logger.Info("InitRouter: Начало создания маршрутов")

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	validate := customvalidator.New()
	var clock services.Clock = time.Now

	// --- 1. СЕРВИСЫ ---
	authService := services.NewAuthService(repos.Users, repos.Cache, jwtSvc, cfg.Auth.SessionCacheTTL, logger.Named("auth"))
	dropdownService := services.NewDropdownService(repos.Dropdowns, logger)
	reportService := services.NewReportService(repos.Reports, logger)
	authMW := middleware.NewAuthMiddleware(authService, logger.Named("auth"))

	// --- 2. ПОДПИСЧИКИ ---
	listeners.NewHistoryListener(
		repos.Tx,
		repos.EquipmentRoomHistory,
		repos.EquipmentResponsibleHistory,
		repos.ConsumableResponsibleHistory,
		logger.Named("history"),
	).Register(bus)

	// --- 3. РОУТЕРЫ ---
	api := e.Group("/api")
	runAuthRouter(api, controllers.NewAuthController(authService, logger), authMW)

	secureGroup := api.Group("", authMW.Auth)
	runDropdownRouter(secureGroup, controllers.NewDropdownController(dropdownService, logger), authMW)
	runExportRouter(secureGroup, controllers.NewExportController(reportService, logger), authMW)

	w := resourceWiring{group: secureGroup, authMW: authMW, lookup: repos.Lookup, validate: validate, logger: logger}

	runResourceRouter(w, "equipmenttype", repos.EquipmentTypes, services.EquipmentTypeResource())
	runResourceRouter(w, "direction", repos.Directions, services.DirectionResource())
	runResourceRouter(w, "status", repos.Statuses, services.StatusResource())
	runResourceRouter(w, "developer", repos.Developers, services.DeveloperResource())
	runResourceRouter(w, "consumabletype", repos.ConsumableTypes, services.ConsumableTypeResource())
	runResourceRouter(w, "room", repos.Rooms, services.RoomResource())
	runResourceRouter(w, "model", repos.Models, services.ModelResource())
	runResourceRouter(w, "software", repos.Software, services.SoftwareResource())
	runResourceRouter(w, "equipment", repos.Equipment, services.EquipmentResource(bus))
	runResourceRouter(w, "users", repos.UserRecords, services.UserResource(authService))

	runResourceRouter(w, "consumable", repos.Consumables, services.ConsumableResource(bus))
	runResourceRouter(w, "consumablecharacteristic", repos.ConsumableCharacteristics,
		services.ConsumableCharacteristicResource())
	runResourceRouter(w, "consumablecharacteristicvalue", repos.ConsumableCharacteristicValues,
		services.ConsumableCharacteristicValueResource(), parentRoute{"consumable", "consumable_id"})

	runResourceRouter(w, "equipmentsoftware", repos.EquipmentSoftware,
		services.EquipmentSoftwareResource(), parentRoute{"equipment", "equipment_id"})
	runResourceRouter(w, "consumableequipment", repos.ConsumableEquipment,
		services.ConsumableEquipmentResource(repos.Lookup, clock), parentRoute{"equipment", "equipment_id"})

	runResourceRouter(w, "equipmentroomhistory", repos.EquipmentRoomHistory,
		services.EquipmentRoomHistoryResource(clock), parentRoute{"equipment", "equipment_id"})
	runResourceRouter(w, "equipmentresponsiblehistory", repos.EquipmentResponsibleHistory,
		services.EquipmentResponsibleHistoryResource(clock), parentRoute{"equipment", "equipment_id"})
	runResourceRouter(w, "consumableresponsiblehistory", repos.ConsumableResponsibleHistory,
		services.ConsumableResponsibleHistoryResource(clock), parentRoute{"consumable", "consumable_id"})

	runResourceRouter(w, "inventory", repos.Inventories, services.InventoryResource())
	runResourceRouter(w, "inventorycheck", repos.InventoryChecks,
		services.InventoryCheckResource(clock), parentRoute{"inventory", "inventory_id"})
	runResourceRouter(w, "networksettings", repos.NetworkSettings, services.NetworkSettingsResource())

	logger.Info("INIT_ROUTER: Создание маршрутов завершено")
}

// resourceWiring - общее для всех ресурсов при регистрации маршрутов.
type resourceWiring struct {
	group    *echo.Group
	authMW   *middleware.AuthMiddleware
	lookup   repositories.LookupRepositoryInterface
	validate *validator.Validate
	logger   *zap.Logger
}
