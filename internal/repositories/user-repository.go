package repositories

import (
	"context"
	"errors"
	"fmt"

	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// UsersTable - CRUD над пользователями. Колонка token сюда не входит:
// ее меняют только вход и выход.
var UsersTable = Table[entities.User]{
	Name: "users",
	Columns: []string{
		"username", "password", "role", "email", "last_name", "first_name", "middle_name", "phone", "address",
	},
	Fields: func(u *entities.User) []interface{} {
		return []interface{}{
			&u.ID, &u.Username, &u.Password, &u.Role, &u.Email, &u.LastName, &u.FirstName, &u.MiddleName, &u.Phone, &u.Address,
		}
	},
	SearchColumns: []string{"last_name", "first_name", "username", "email"},
	SortColumns: map[string]string{
		"id": "id", "username": "username", "lastname": "last_name", "firstname": "first_name", "role": "role",
	},
	FilterColumns: []string{"role"},
}

const userSelectFields = "id, username, password, role, token, email, last_name, first_name, middle_name, phone, address"

// UserRepositoryInterface - операции, нужные для входа и проверки сессии.
type UserRepositoryInterface interface {
	FindUserByUsername(ctx context.Context, username string) (*entities.User, error)
	FindUserByID(ctx context.Context, id uint64) (*entities.User, error)
	SetToken(ctx context.Context, id uint64, token null.String) error
}

type UserRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Password, &user.Role, &user.Token, &user.Email,
		&user.LastName, &user.FirstName, &user.MiddleName, &user.Phone, &user.Address,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	query, args, err := psql.Select(userSelectFields).From("users").Where(sq.Eq{"username": username}).ToSql()
	if err != nil {
		return nil, err
	}
	user, err := scanUser(r.storage.QueryRow(ctx, query, args...))
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		r.logger.Error("ошибка поиска пользователя по логину", zap.String("username", username), zap.Error(err))
		return nil, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}
	return user, err
}

func (r *UserRepository) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	query, args, err := psql.Select(userSelectFields).From("users").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	user, err := scanUser(r.storage.QueryRow(ctx, query, args...))
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("ошибка поиска пользователя %d: %w", id, err)
	}
	return user, err
}

// SetToken сохраняет идентификатор текущей сессии; null - выход.
func (r *UserRepository) SetToken(ctx context.Context, id uint64, token null.String) error {
	query, args, err := psql.Update("users").Set("token", token).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка сохранения сессии пользователя %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
