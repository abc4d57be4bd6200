// Файл: internal/services/auth.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"inventory-system/internal/authz"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/service"
	"inventory-system/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgCredentialsRequired = "Логин и пароль обязательны для заполнения"
	msgInvalidCredentials  = "Неверный логин или пароль"
	sessionCacheKey        = "auth:session:%d"
)

// LoginResult - ответ на успешный вход.
type LoginResult struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

// Principal - пользователь, от имени которого выполняется запрос.
type Principal struct {
	UserID uint64
	Role   string
}

// cachedSession - то, что лежит в Redis по ключу auth:session:<id>.
type cachedSession struct {
	SessionID string `json:"sid"`
	Role      string `json:"role"`
}

type AuthServiceInterface interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, userID uint64) error
	ResolveSession(ctx context.Context, token string) (*Principal, error)
	EvictSession(ctx context.Context, userID uint64)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	cacheTTL   time.Duration
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

func unauthorized(message string) error {
	return apperrors.NewHttpError(http.StatusUnauthorized, message, apperrors.ErrInvalidCredentials, nil)
}

// Login проверяет пароль и открывает новую сессию.
// Новый идентификатор сессии затирает старый, поэтому прежний токен перестает работать.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, unauthorized(msgCredentialsRequired)
	}
	logger := s.logger.With(zap.String("username", username))

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Попытка входа с неизвестным логином")
			return nil, unauthorized(msgInvalidCredentials)
		}
		return nil, err
	}
	if err := utils.ComparePasswords(user.Password, password); err != nil {
		logger.Warn("Неверный пароль")
		return nil, unauthorized(msgInvalidCredentials)
	}

	sessionID := uuid.NewString()
	if err := s.userRepo.SetToken(ctx, user.ID, null.StringFrom(sessionID)); err != nil {
		return nil, fmt.Errorf("не удалось сохранить сессию: %w", err)
	}
	s.storeSession(ctx, user.ID, &cachedSession{SessionID: sessionID, Role: user.Role})

	token, err := s.jwtService.GenerateToken(user.ID, user.Role, sessionID)
	if err != nil {
		return nil, fmt.Errorf("не удалось подписать токен: %w", err)
	}

	logger.Info("Пользователь вошел в систему", zap.Uint64("user_id", user.ID), zap.String("role", user.Role))
	return &LoginResult{Token: token, Role: user.Role, FullName: user.FullName()}, nil
}

func (s *AuthService) Logout(ctx context.Context, userID uint64) error {
	if err := s.userRepo.SetToken(ctx, userID, null.String{}); err != nil {
		return err
	}
	s.storeSession(ctx, userID, &cachedSession{})
	s.logger.Info("Пользователь вышел из системы", zap.Uint64("user_id", userID))
	return nil
}

// ResolveSession: подпись и срок токена, затем совпадение sid с текущей сессией пользователя.
// Любая неудача - ErrUnauthorized, без уточнения причины.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, apperrors.ErrUnauthorized
	}
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	session, err := s.currentSession(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if session.SessionID == "" || session.SessionID != claims.SessionID {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, apperrors.ErrSessionRevoked)
	}
	if _, ok := authz.ParseRole(session.Role); !ok {
		return nil, apperrors.ErrUnauthorized
	}
	return &Principal{UserID: claims.UserID, Role: session.Role}, nil
}

// currentSession читает sid и роль из кеша, при промахе - из БД.
// Промах заполняется только через SetNX: запрос, прочитавший БД до нового входа,
// не перетрет сессию, которую уже записали Login, Logout или EvictSession.
// Недоступный Redis не мешает работе, только замедляет ее.
func (s *AuthService) currentSession(ctx context.Context, userID uint64) (*cachedSession, error) {
	key := fmt.Sprintf(sessionCacheKey, userID)

	if raw, err := s.cacheRepo.Get(ctx, key); err == nil {
		var session cachedSession
		if jsonErr := json.Unmarshal([]byte(raw), &session); jsonErr == nil {
			return &session, nil
		}
	} else if !errors.Is(err, repositories.ErrCacheMiss) {
		s.logger.Warn("Кеш сессий недоступен", zap.Error(err))
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	session := sessionOf(user)

	if payload, err := json.Marshal(session); err == nil {
		if _, err := s.cacheRepo.SetNX(ctx, key, payload, s.cacheTTL); err != nil {
			s.logger.Warn("Не удалось закешировать сессию", zap.Uint64("user_id", userID), zap.Error(err))
		}
	}
	return session, nil
}

func sessionOf(user *entities.User) *cachedSession {
	session := &cachedSession{Role: user.Role}
	if user.Token.Valid {
		session.SessionID = user.Token.String
	}
	return session
}

// storeSession безусловно записывает сессию в кеш. Если записать не вышло, ключ удаляется,
// чтобы следующий запрос пошел в БД.
func (s *AuthService) storeSession(ctx context.Context, userID uint64, session *cachedSession) {
	key := fmt.Sprintf(sessionCacheKey, userID)
	payload, err := json.Marshal(session)
	if err == nil {
		err = s.cacheRepo.Set(ctx, key, payload, s.cacheTTL)
	}
	if err == nil {
		return
	}
	s.logger.Warn("Не удалось записать сессию в кеш", zap.Uint64("user_id", userID), zap.Error(err))
	if err := s.cacheRepo.Del(ctx, key); err != nil {
		s.logger.Warn("Не удалось сбросить кеш сессии", zap.Uint64("user_id", userID), zap.Error(err))
	}
}

// EvictSession перечитывает сессию пользователя из БД и кладет ее в кеш.
// Для удаленного пользователя кладется пустая сессия, которую ResolveSession отвергает.
func (s *AuthService) EvictSession(ctx context.Context, userID uint64) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	switch {
	case err == nil:
		s.storeSession(ctx, userID, sessionOf(user))
	case errors.Is(err, apperrors.ErrNotFound):
		s.storeSession(ctx, userID, &cachedSession{})
	default:
		s.logger.Warn("Не удалось перечитать сессию", zap.Uint64("user_id", userID), zap.Error(err))
		if err := s.cacheRepo.Del(ctx, fmt.Sprintf(sessionCacheKey, userID)); err != nil {
			s.logger.Warn("Не удалось сбросить кеш сессии", zap.Uint64("user_id", userID), zap.Error(err))
		}
	}
}
