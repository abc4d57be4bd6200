package routes

import (
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Repositories - все хранилища, из которых собирается API.
// В main это PostgreSQL и Redis, в тестах - реализации в памяти.
type Repositories struct {
	Tx        repositories.TxManagerInterface
	Lookup    repositories.LookupRepositoryInterface
	Users     repositories.UserRepositoryInterface
	Cache     repositories.CacheRepositoryInterface
	Dropdowns repositories.DropdownRepositoryInterface
	Reports   repositories.ReportRepositoryInterface

	EquipmentTypes                 repositories.ResourceRepositoryInterface[entities.EquipmentType]
	Directions                     repositories.ResourceRepositoryInterface[entities.Direction]
	Statuses                       repositories.ResourceRepositoryInterface[entities.Status]
	Developers                     repositories.ResourceRepositoryInterface[entities.Developer]
	ConsumableTypes                repositories.ResourceRepositoryInterface[entities.ConsumableType]
	Rooms                          repositories.ResourceRepositoryInterface[entities.Room]
	Models                         repositories.ResourceRepositoryInterface[entities.Model]
	Software                       repositories.ResourceRepositoryInterface[entities.Software]
	Equipment                      repositories.ResourceRepositoryInterface[entities.Equipment]
	UserRecords                    repositories.ResourceRepositoryInterface[entities.User]
	Consumables                    repositories.ResourceRepositoryInterface[entities.Consumable]
	ConsumableCharacteristics      repositories.ResourceRepositoryInterface[entities.ConsumableCharacteristic]
	ConsumableCharacteristicValues repositories.ResourceRepositoryInterface[entities.ConsumableCharacteristicValue]
	EquipmentSoftware              repositories.ResourceRepositoryInterface[entities.EquipmentSoftware]
	ConsumableEquipment            repositories.ResourceRepositoryInterface[entities.ConsumableEquipment]
	EquipmentRoomHistory           repositories.ResourceRepositoryInterface[entities.EquipmentRoomHistory]
	EquipmentResponsibleHistory    repositories.ResourceRepositoryInterface[entities.EquipmentResponsibleHistory]
	ConsumableResponsibleHistory   repositories.ResourceRepositoryInterface[entities.ConsumableResponsibleHistory]
	Inventories                    repositories.ResourceRepositoryInterface[entities.Inventory]
	InventoryChecks                repositories.ResourceRepositoryInterface[entities.InventoryCheck]
	NetworkSettings                repositories.ResourceRepositoryInterface[entities.NetworkSettings]
}

// NewPostgresRepositories создает хранилища поверх пула соединений и клиента Redis.
func NewPostgresRepositories(dbConn *pgxpool.Pool, redisClient *redis.Client, logger *zap.Logger) Repositories {
	return Repositories{
		Tx:        repositories.NewTxManager(dbConn),
		Lookup:    repositories.NewLookupRepository(dbConn),
		Users:     repositories.NewUserRepository(dbConn, logger),
		Cache:     repositories.NewRedisCacheRepository(redisClient),
		Dropdowns: repositories.NewDropdownRepository(dbConn),
		Reports:   repositories.NewReportRepository(dbConn),

		EquipmentTypes:                 repositories.NewResourceRepository(dbConn, repositories.EquipmentTypeTable),
		Directions:                     repositories.NewResourceRepository(dbConn, repositories.DirectionTable),
		Statuses:                       repositories.NewResourceRepository(dbConn, repositories.StatusTable),
		Developers:                     repositories.NewResourceRepository(dbConn, repositories.DeveloperTable),
		ConsumableTypes:                repositories.NewResourceRepository(dbConn, repositories.ConsumableTypeTable),
		Rooms:                          repositories.NewResourceRepository(dbConn, repositories.RoomTable),
		Models:                         repositories.NewResourceRepository(dbConn, repositories.ModelTable),
		Software:                       repositories.NewResourceRepository(dbConn, repositories.SoftwareTable),
		Equipment:                      repositories.NewResourceRepository(dbConn, repositories.EquipmentTable),
		UserRecords:                    repositories.NewResourceRepository(dbConn, repositories.UsersTable),
		Consumables:                    repositories.NewResourceRepository(dbConn, repositories.ConsumableTable),
		ConsumableCharacteristics:      repositories.NewResourceRepository(dbConn, repositories.ConsumableCharacteristicTable),
		ConsumableCharacteristicValues: repositories.NewResourceRepository(dbConn, repositories.ConsumableCharacteristicValueTable),
		EquipmentSoftware:              repositories.NewResourceRepository(dbConn, repositories.EquipmentSoftwareTable),
		ConsumableEquipment:            repositories.NewResourceRepository(dbConn, repositories.ConsumableEquipmentTable),
		EquipmentRoomHistory:           repositories.NewResourceRepository(dbConn, repositories.EquipmentRoomHistoryTable),
		EquipmentResponsibleHistory:    repositories.NewResourceRepository(dbConn, repositories.EquipmentResponsibleHistoryTable),
		ConsumableResponsibleHistory:   repositories.NewResourceRepository(dbConn, repositories.ConsumableResponsibleHistoryTable),
		Inventories:                    repositories.NewResourceRepository(dbConn, repositories.InventoryTable),
		InventoryChecks:                repositories.NewResourceRepository(dbConn, repositories.InventoryCheckTable),
		NetworkSettings:                repositories.NewResourceRepository(dbConn, repositories.NetworkSettingsTable),
	}
}
