package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"inventory-system/internal/entities"
	"inventory-system/internal/events"
	"inventory-system/internal/repositories"
	"inventory-system/internal/repositories/repotest"
	"inventory-system/pkg/customvalidator"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/eventbus"
	"inventory-system/pkg/types"
	"inventory-system/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type recordingPublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event eventbus.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

type recordingEvicter struct {
	ids []uint64
}

func (e *recordingEvicter) EvictSession(_ context.Context, userID uint64) {
	e.ids = append(e.ids, userID)
}

func newService[T types.Entity](
	table repositories.Table[T], lookup *repotest.Lookup, resource Resource[T],
) (*ResourceService[T], *repotest.MemoryRepository[T]) {
	repo := repotest.NewMemoryRepository(table)
	return NewResourceService[T](repo, lookup, customvalidator.New(), resource, zap.NewNop()), repo
}

func validationMessage(t *testing.T, err error) string {
	t.Helper()
	var vErr *apperrors.ValidationError
	require.True(t, errors.As(err, &vErr), "ожидалась ошибка валидации, получено: %v", err)
	return vErr.Message
}

func TestResourceService_CreateCatalog(t *testing.T) {
	svc, repo := newService(repositories.EquipmentTypeTable, repotest.NewLookup(), EquipmentTypeResource())

	created, err := svc.Create(context.Background(), &entities.EquipmentType{Name: "Принтер"})

	require.NoError(t, err)
	assert.Equal(t, uint64(1), created.ID)
	assert.Len(t, repo.All(), 1)
}

func TestResourceService_CreateRequiresName(t *testing.T) {
	svc, repo := newService(repositories.EquipmentTypeTable, repotest.NewLookup(), EquipmentTypeResource())

	_, err := svc.Create(context.Background(), &entities.EquipmentType{})

	assert.Equal(t, "Наименование типа оборудования обязательно для заполнения", validationMessage(t, err))
	assert.Empty(t, repo.All())
}

func TestResourceService_UniqueNameExcludesOwnRow(t *testing.T) {
	lookup := repotest.NewLookup().Add("equipment_types", map[string]interface{}{"id": 5, "name": "ПК"})
	svc, repo := newService(repositories.EquipmentTypeTable, lookup, EquipmentTypeResource())
	repo.Put(entities.EquipmentType{BaseEntity: types.BaseEntity{ID: 5}, Name: "ПК"})

	_, err := svc.Create(context.Background(), &entities.EquipmentType{Name: "ПК"})
	assert.Equal(t, "Наименование типа оборудования должно быть уникальным", validationMessage(t, err))

	err = svc.Update(context.Background(), 5, &entities.EquipmentType{BaseEntity: types.BaseEntity{ID: 5}, Name: "ПК"})
	assert.NoError(t, err)
}

func TestResourceService_DeveloperUniqueIgnoresCase(t *testing.T) {
	lookup := repotest.NewLookup().Add("developers", map[string]interface{}{"id": 1, "name": "Microsoft"})
	svc, _ := newService(repositories.DeveloperTable, lookup, DeveloperResource())

	_, err := svc.Create(context.Background(), &entities.Developer{Name: "MICROSOFT"})

	assert.Equal(t, "Разработчик с таким наименованием уже существует", validationMessage(t, err))
}

func TestResourceService_MissingReferenceWritesNothing(t *testing.T) {
	svc, repo := newService(repositories.ModelTable, repotest.NewLookup(), ModelResource())

	_, err := svc.Create(context.Background(), &entities.Model{Name: "LaserJet", EquipmentTypeID: 9})

	assert.Equal(t, "Указанный тип оборудования не существует", validationMessage(t, err))
	assert.Empty(t, repo.All())
}

func TestResourceService_ReferenceMessageCarriesID(t *testing.T) {
	lookup := repotest.NewLookup().Add("equipment", map[string]interface{}{"id": 1})
	svc, _ := newService(repositories.EquipmentSoftwareTable, lookup, EquipmentSoftwareResource())

	_, err := svc.Create(context.Background(), &entities.EquipmentSoftware{EquipmentID: 1, SoftwareID: 42})

	assert.Equal(t, "Программное обеспечение с ID 42 не существует", validationMessage(t, err))
}

func TestResourceService_GetNotFound(t *testing.T) {
	svc, _ := newService(repositories.ModelTable, repotest.NewLookup(), ModelResource())

	_, err := svc.Get(context.Background(), 7)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, "Модель с ID 7 не найдена", err.Error())
}

func TestResourceService_UpdateIDMismatch(t *testing.T) {
	svc, repo := newService(repositories.StatusTable, repotest.NewLookup(), StatusResource())
	repo.Put(entities.Status{BaseEntity: types.BaseEntity{ID: 1}, Name: "В работе"})

	err := svc.Update(context.Background(), 1, &entities.Status{BaseEntity: types.BaseEntity{ID: 2}, Name: "Списано"})

	assert.Equal(t, "ID в пути и в теле запроса не совпадают", validationMessage(t, err))
}

func TestResourceService_UpdateMissingRow(t *testing.T) {
	svc, _ := newService(repositories.StatusTable, repotest.NewLookup(), StatusResource())

	err := svc.Update(context.Background(), 3, &entities.Status{BaseEntity: types.BaseEntity{ID: 3}, Name: "Списано"})

	assert.Equal(t, "Статус с ID 3 не найден", err.Error())
}

func TestResourceService_DeleteBlockedByRelations(t *testing.T) {
	lookup := repotest.NewLookup().Add("models", map[string]interface{}{"id": 10, "equipment_type_id": 1})
	svc, repo := newService(repositories.EquipmentTypeTable, lookup, EquipmentTypeResource())
	repo.Put(entities.EquipmentType{BaseEntity: types.BaseEntity{ID: 1}, Name: "ПК"})
	repo.Put(entities.EquipmentType{BaseEntity: types.BaseEntity{ID: 2}, Name: "Принтер"})

	related, err := svc.CheckRelations(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, related)

	err = svc.Delete(context.Background(), 1)
	assert.Equal(t, defaultRelationsMessage, validationMessage(t, err))

	require.NoError(t, svc.Delete(context.Background(), 2))
	assert.Len(t, repo.All(), 1)

	err = svc.Delete(context.Background(), 2)
	assert.Equal(t, "Тип оборудования с ID 2 не найден", err.Error())
}

func TestUserResource_PasswordLifecycle(t *testing.T) {
	evicter := &recordingEvicter{}
	svc, repo := newService(repositories.UsersTable, repotest.NewLookup(), UserResource(evicter))
	user := &entities.User{
		Username: "ivanov", Password: "s3cret", Role: "teacher", LastName: "Иванов", FirstName: "Иван",
	}

	created, err := svc.Create(context.Background(), user)
	require.NoError(t, err)
	assert.Empty(t, created.Password)

	stored := repo.All()[0]
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret")))

	update := stored
	update.Password = ""
	update.Role = "employee"
	require.NoError(t, svc.Update(context.Background(), stored.ID, &update))

	after := repo.All()[0]
	assert.Equal(t, stored.Password, after.Password)
	assert.Equal(t, "employee", after.Role)
	assert.Equal(t, []uint64{stored.ID}, evicter.ids)
}

func TestUserResource_PasswordRequiredOnCreate(t *testing.T) {
	svc, _ := newService(repositories.UsersTable, repotest.NewLookup(), UserResource(nil))

	_, err := svc.Create(context.Background(), &entities.User{
		Username: "petrov", Role: "employee", LastName: "Петров", FirstName: "Пётр",
	})

	assert.Equal(t, "Пароль обязателен для заполнения", validationMessage(t, err))
}

func TestUserResource_Messages(t *testing.T) {
	lookup := repotest.NewLookup().Add("users", map[string]interface{}{"id": 1, "username": "ivanov", "email": "Ivanov@Mail.ru"})
	svc, _ := newService(repositories.UsersTable, lookup, UserResource(nil))
	base := entities.User{Username: "petrov", Password: "x", Role: "employee", LastName: "Петров", FirstName: "Пётр"}

	cases := []struct {
		name   string
		mutate func(u *entities.User)
		want   string
	}{
		{"логин", func(u *entities.User) { u.Username = "петров" }, "Логин может содержать только буквы, цифры и символ подчеркивания"},
		{"роль", func(u *entities.User) { u.Role = "root" }, "Роль должна быть: employee, teacher или administrator"},
		{"email", func(u *entities.User) { u.Email = null.StringFrom("not-an-email") }, "Некорректный формат email"},
		{"телефон", func(u *entities.User) { u.Phone = null.StringFrom("8 (900) abc") }, "Телефон может содержать только цифры, пробелы, тире, плюс и скобки"},
		{"занятый логин", func(u *entities.User) { u.Username = "ivanov" }, "Пользователь с таким логином уже существует"},
		{"занятый email", func(u *entities.User) { u.Email = null.StringFrom("ivanov@mail.RU") }, "Пользователь с таким email уже существует"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := base
			tc.mutate(&u)
			_, err := svc.Create(context.Background(), &u)
			assert.Equal(t, tc.want, validationMessage(t, err))
		})
	}
}

func TestUserResource_BlankEmailStoredAsNull(t *testing.T) {
	svc, repo := newService(repositories.UsersTable, repotest.NewLookup(), UserResource(nil))

	for _, username := range []string{"petrov", "sidorov"} {
		_, err := svc.Create(context.Background(), &entities.User{
			Username: username, Password: "x", Role: "employee", LastName: "Тестов", FirstName: "Тест",
			Email: null.StringFrom(""),
		})
		require.NoError(t, err)
	}

	users := repo.All()
	require.Len(t, users, 2)
	for _, u := range users {
		assert.False(t, u.Email.Valid, u.Username)
	}
}

func TestUserResource_DeleteEvictsAndRespectsRelations(t *testing.T) {
	evicter := &recordingEvicter{}
	lookup := repotest.NewLookup().Add("equipment", map[string]interface{}{"id": 3, "temp_responsible_user_id": 2})
	svc, repo := newService(repositories.UsersTable, lookup, UserResource(evicter))
	repo.Put(entities.User{BaseEntity: types.BaseEntity{ID: 1}, Username: "a"})
	repo.Put(entities.User{BaseEntity: types.BaseEntity{ID: 2}, Username: "b"})

	err := svc.Delete(context.Background(), 2)
	assert.Equal(t, "Невозможно удалить пользователя, так как он связан с другими записями в системе", validationMessage(t, err))

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, []uint64{1}, evicter.ids)
}

func TestConsumableEquipment_StockAndDefaults(t *testing.T) {
	lookup := repotest.NewLookup().
		Add("consumables", map[string]interface{}{"id": 1}).
		Add("equipment", map[string]interface{}{"id": 2}).
		Add("users", map[string]interface{}{"id": 7}).
		SetInt("consumables", "quantity", 1, 3)
	svc, _ := newService(repositories.ConsumableEquipmentTable, lookup, ConsumableEquipmentResource(lookup, fixedClock))
	ctx := utils.WithPrincipal(context.Background(), 7, "teacher")

	_, err := svc.Create(ctx, &entities.ConsumableEquipment{ConsumableID: 1, EquipmentID: 2, QuantityUsed: 5})
	assert.Equal(t, "Недостаточно расходного материала. Доступно: 3, требуется: 5", validationMessage(t, err))

	_, err = svc.Create(ctx, &entities.ConsumableEquipment{ConsumableID: 1, EquipmentID: 2, QuantityUsed: 0})
	assert.Equal(t, "Количество использованных единиц должно быть положительным числом", validationMessage(t, err))

	created, err := svc.Create(ctx, &entities.ConsumableEquipment{ConsumableID: 1, EquipmentID: 2, QuantityUsed: 3})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, created.AttachedAt.Time)
	assert.Equal(t, null.Uint64From(7), created.AttachedByUserID)
}

func TestConsumableEquipment_UnknownConsumable(t *testing.T) {
	lookup := repotest.NewLookup()
	svc, _ := newService(repositories.ConsumableEquipmentTable, lookup, ConsumableEquipmentResource(lookup, fixedClock))

	_, err := svc.Create(context.Background(), &entities.ConsumableEquipment{ConsumableID: 4, EquipmentID: 2, QuantityUsed: 1})

	assert.Equal(t, "Расходный материал с ID 4 не найден", validationMessage(t, err))
}

func TestEquipmentResource_PublishesMoves(t *testing.T) {
	publisher := &recordingPublisher{}
	lookup := repotest.NewLookup().
		Add("rooms", map[string]interface{}{"id": 1}).
		Add("rooms", map[string]interface{}{"id": 2}).
		Add("users", map[string]interface{}{"id": 5})
	svc, repo := newService(repositories.EquipmentTable, lookup, EquipmentResource(publisher))
	ctx := utils.WithPrincipal(context.Background(), 5, "administrator")

	created, err := svc.Create(ctx, &entities.Equipment{Name: "Проектор", InventoryNumber: 1001, RoomID: null.Uint64From(1)})
	require.NoError(t, err)
	assert.Empty(t, publisher.events)

	moved := *created
	moved.RoomID = null.Uint64From(2)
	moved.Comment = null.StringFrom("перенесен")
	require.NoError(t, svc.Update(ctx, created.ID, &moved))

	same := repo.All()[0]
	same.Comment = null.StringFrom("без переноса")
	require.NoError(t, svc.Update(ctx, created.ID, &same))

	require.Len(t, publisher.events, 1)
	assert.Equal(t, events.EquipmentChangedEvent{
		EquipmentID: created.ID,
		RoomID:      null.Uint64From(2),
		ActorID:     5,
	}, publisher.events[0])
}

func TestEquipmentResource_Validation(t *testing.T) {
	svc, _ := newService(repositories.EquipmentTable, repotest.NewLookup(), EquipmentResource(nil))

	_, err := svc.Create(context.Background(), &entities.Equipment{Name: "ПК", InventoryNumber: 0})
	assert.Equal(t, "Инвентарный номер должен быть положительным числом", validationMessage(t, err))

	_, err = svc.Create(context.Background(), &entities.Equipment{Name: "ПК", InventoryNumber: 1, Cost: null.Float64From(-10)})
	assert.Equal(t, "Стоимость не может быть отрицательной", validationMessage(t, err))

	_, err = svc.Create(context.Background(), &entities.Equipment{Name: "ПК", InventoryNumber: 1, Cost: null.Float64From(1e11)})
	assert.Equal(t, "Стоимость не может превышать 9 999 999 999,99", validationMessage(t, err))

	_, err = svc.Create(context.Background(), &entities.Equipment{Name: "ПК", InventoryNumber: 1, RoomID: null.Uint64From(9)})
	assert.Equal(t, "Аудитория с ID 9 не найдена", validationMessage(t, err))

	_, err = svc.Create(context.Background(), &entities.Equipment{Name: "ПК", InventoryNumber: 1, Photo: []byte("plain text, not an image")})
	assert.Equal(t, "Недопустимый формат фотографии: text/plain; charset=utf-8", validationMessage(t, err))
}

func TestInventoryResource_Dates(t *testing.T) {
	svc, _ := newService(repositories.InventoryTable, repotest.NewLookup(), InventoryResource())
	ctx := utils.WithPrincipal(context.Background(), 3, "teacher")

	_, err := svc.Create(ctx, &entities.Inventory{
		Name:      "Годовая",
		StartDate: types.NewDate(2024, time.December, 31),
		EndDate:   types.NewDate(2024, time.January, 1),
	})
	assert.Equal(t, "Дата начала не может быть позже даты окончания", validationMessage(t, err))

	lookup := repotest.NewLookup().Add("users", map[string]interface{}{"id": 3})
	svc, _ = newService(repositories.InventoryTable, lookup, InventoryResource())
	created, err := svc.Create(ctx, &entities.Inventory{
		Name:      "Годовая",
		StartDate: types.NewDate(2024, time.January, 1),
		EndDate:   types.NewDate(2024, time.January, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, null.Uint64From(3), created.CreatedByUserID)
}

func TestNetworkSettingsResource_Messages(t *testing.T) {
	lookup := repotest.NewLookup().
		Add("equipment", map[string]interface{}{"id": 1}).
		Add("network_settings", map[string]interface{}{"id": 8, "ip_address": "10.0.0.5"})
	svc, _ := newService(repositories.NetworkSettingsTable, lookup, NetworkSettingsResource())

	_, err := svc.Create(context.Background(), &entities.NetworkSettings{EquipmentID: 1, IPAddress: "10.0.0.256", SubnetMask: "255.255.255.0"})
	assert.Equal(t, "Неверный формат IP адреса. Используйте формат: XXX.XXX.XXX.XXX, где XXX от 0 до 255", validationMessage(t, err))

	_, err = svc.Create(context.Background(), &entities.NetworkSettings{
		EquipmentID: 1, IPAddress: "10.0.0.6", SubnetMask: "255.255.255.0", MACAddress: null.StringFrom("00:11:22:33:44"),
	})
	assert.Equal(t, "Неверный формат MAC адреса. Используйте формат: XX:XX:XX:XX:XX:XX или XX-XX-XX-XX-XX-XX", validationMessage(t, err))

	_, err = svc.Create(context.Background(), &entities.NetworkSettings{EquipmentID: 1, IPAddress: "10.0.0.5", SubnetMask: "255.255.255.0"})
	assert.Equal(t, "IP адрес должен быть уникальным", validationMessage(t, err))
}
