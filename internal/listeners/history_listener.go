package listeners

import (
	"context"
	"fmt"
	"time"

	"inventory-system/internal/entities"
	"inventory-system/internal/events"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/eventbus"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const autoHistoryComment = "Изменено при редактировании карточки"

// HistoryListener дописывает журналы перемещений и смены ответственных.
type HistoryListener struct {
	txManager             repositories.TxManagerInterface
	roomHistory           repositories.ResourceRepositoryInterface[entities.EquipmentRoomHistory]
	responsibleHistory    repositories.ResourceRepositoryInterface[entities.EquipmentResponsibleHistory]
	consumableResponsible repositories.ResourceRepositoryInterface[entities.ConsumableResponsibleHistory]
	now                   func() time.Time
	logger                *zap.Logger
}

func NewHistoryListener(
	txManager repositories.TxManagerInterface,
	roomHistory repositories.ResourceRepositoryInterface[entities.EquipmentRoomHistory],
	responsibleHistory repositories.ResourceRepositoryInterface[entities.EquipmentResponsibleHistory],
	consumableResponsible repositories.ResourceRepositoryInterface[entities.ConsumableResponsibleHistory],
	logger *zap.Logger,
) *HistoryListener {
	return &HistoryListener{
		txManager:             txManager,
		roomHistory:           roomHistory,
		responsibleHistory:    responsibleHistory,
		consumableResponsible: consumableResponsible,
		now:                   time.Now,
		logger:                logger,
	}
}

func (l *HistoryListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.EquipmentChangedName, l.handleEquipmentChanged)
	bus.Subscribe(events.ConsumableResponsibleChangedName, l.handleConsumableResponsibleChanged)
	l.logger.Info("HistoryListener подписан на события изменения оборудования и расходников")
}

func actor(id uint64) null.Uint64 {
	if id == 0 {
		return null.Uint64{}
	}
	return null.Uint64From(id)
}

// handleEquipmentChanged пишет обе записи в одной транзакции.
func (l *HistoryListener) handleEquipmentChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.EquipmentChangedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события %T", event)
	}
	at := null.TimeFrom(l.now())

	return l.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if e.RoomID.Valid {
			row := &entities.EquipmentRoomHistory{
				EquipmentID:   e.EquipmentID,
				RoomID:        e.RoomID.Uint64,
				MovedAt:       at,
				MovedByUserID: actor(e.ActorID),
				Comment:       null.StringFrom(autoHistoryComment),
			}
			if err := l.roomHistory.WithTx(tx).Create(ctx, row); err != nil {
				return fmt.Errorf("запись истории перемещений: %w", err)
			}
		}
		if e.ResponsibleUserID.Valid {
			row := &entities.EquipmentResponsibleHistory{
				EquipmentID:       e.EquipmentID,
				ResponsibleUserID: e.ResponsibleUserID.Uint64,
				AssignedAt:        at,
				AssignedByUserID:  actor(e.ActorID),
				Comment:           null.StringFrom(autoHistoryComment),
			}
			if err := l.responsibleHistory.WithTx(tx).Create(ctx, row); err != nil {
				return fmt.Errorf("запись истории ответственных: %w", err)
			}
		}
		l.logger.Debug("журнал оборудования дополнен", zap.Uint64("equipment_id", e.EquipmentID))
		return nil
	})
}

func (l *HistoryListener) handleConsumableResponsibleChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.ConsumableResponsibleChangedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события %T", event)
	}
	row := &entities.ConsumableResponsibleHistory{
		ConsumableID:      e.ConsumableID,
		ResponsibleUserID: e.ResponsibleUserID,
		AssignedAt:        null.TimeFrom(l.now()),
		AssignedByUserID:  actor(e.ActorID),
		Comment:           null.StringFrom(autoHistoryComment),
	}
	if err := l.consumableResponsible.Create(ctx, row); err != nil {
		return fmt.Errorf("запись истории ответственных за расходник: %w", err)
	}
	return nil
}
