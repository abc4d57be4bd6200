package services

import (
	"context"
	"errors"
	"testing"

	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDropdownRepo struct {
	tables []string
	failOn string
}

func (r *fakeDropdownRepo) Items(_ context.Context, source repositories.DropdownSource) ([]types.DropdownItem, error) {
	r.tables = append(r.tables, source.Table)
	if source.Table == r.failOn {
		return nil, errors.New("relation does not exist")
	}
	return []types.DropdownItem{{ID: 1, DisplayText: source.Table}}, nil
}

func (r *fakeDropdownRepo) Users(_ context.Context) ([]types.DropdownItem, error) {
	r.tables = append(r.tables, "users")
	return []types.DropdownItem{{ID: 7, DisplayText: "И.И. Иванов"}}, nil
}

func TestDropdownService_Names(t *testing.T) {
	svc := NewDropdownService(&fakeDropdownRepo{}, zap.NewNop())

	names := svc.Names()

	assert.Len(t, names, 13)
	assert.Equal(t, "consumable-characteristics", names[0])
	assert.Contains(t, names, "users")
	assert.IsIncreasing(t, names)
}

func TestDropdownService_List(t *testing.T) {
	repo := &fakeDropdownRepo{}
	svc := NewDropdownService(repo, zap.NewNop())

	rooms, err := svc.List(context.Background(), "rooms")
	require.NoError(t, err)
	assert.Equal(t, []types.DropdownItem{{ID: 1, DisplayText: "rooms"}}, rooms)

	users, err := svc.List(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, "И.И. Иванов", users[0].DisplayText)

	_, err = svc.List(context.Background(), "roles")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, `Список "roles" не найден`, err.Error())
}

func TestDropdownService_All(t *testing.T) {
	repo := &fakeDropdownRepo{}
	svc := NewDropdownService(repo, zap.NewNop())

	all, err := svc.All(context.Background())

	require.NoError(t, err)
	assert.Len(t, all, 13)
	assert.Len(t, repo.tables, 13)
	assert.Equal(t, "equipment_types", all["equipment-types"][0].DisplayText)
}

func TestDropdownService_AllStopsOnError(t *testing.T) {
	svc := NewDropdownService(&fakeDropdownRepo{failOn: "statuses"}, zap.NewNop())

	_, err := svc.All(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "statuses")
}
