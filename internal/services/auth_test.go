package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"inventory-system/internal/entities"
	"inventory-system/internal/repositories/repotest"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/service"
	"inventory-system/pkg/types"
	"inventory-system/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type AuthServiceSuite struct {
	suite.Suite
	users *repotest.UserRepository
	cache *repotest.MemoryCache
	jwt   service.JWTService
	svc   *AuthService
}

func (s *AuthServiceSuite) SetupTest() {
	hash, err := utils.HashPassword("correct horse")
	s.Require().NoError(err)

	s.users = repotest.NewUserRepository()
	s.users.Put(entities.User{
		BaseEntity: types.BaseEntity{ID: 1}, Username: "ivanov", Password: hash, Role: "teacher",
		LastName: "Иванов", FirstName: "Иван", MiddleName: null.StringFrom("Иванович"),
	})
	s.cache = repotest.NewMemoryCache()
	s.jwt = service.NewJWTService("test-secret", time.Hour, zap.NewNop())
	s.svc = NewAuthService(s.users, s.cache, s.jwt, time.Minute, zap.NewNop())
}

func httpCode(err error) int {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return 0
}

func (s *AuthServiceSuite) TestLogin_Success() {
	result, err := s.svc.Login(context.Background(), " ivanov ", "correct horse")

	s.Require().NoError(err)
	s.Equal("teacher", result.Role)
	s.Equal("Иванов Иван Иванович", result.FullName)
	stored, err := s.users.FindByID(context.Background(), 1)
	s.Require().NoError(err)
	s.True(stored.Token.Valid)

	principal, err := s.svc.ResolveSession(context.Background(), result.Token)
	s.Require().NoError(err)
	s.Equal(&Principal{UserID: 1, Role: "teacher"}, principal)
}

func (s *AuthServiceSuite) TestLogin_EmptyFields() {
	_, err := s.svc.Login(context.Background(), "", "x")

	s.Equal(http.StatusUnauthorized, httpCode(err))
	s.Contains(err.Error(), "Логин и пароль обязательны для заполнения")
}

func (s *AuthServiceSuite) TestLogin_WrongPasswordAndUnknownUserLookTheSame() {
	_, errPassword := s.svc.Login(context.Background(), "ivanov", "wrong")
	_, errUser := s.svc.Login(context.Background(), "nobody", "wrong")

	s.Equal(http.StatusUnauthorized, httpCode(errPassword))
	s.Equal(errPassword.Error(), errUser.Error())
	s.Contains(errPassword.Error(), "Неверный логин или пароль")
}

func (s *AuthServiceSuite) TestNewLoginRevokesPreviousToken() {
	first, err := s.svc.Login(context.Background(), "ivanov", "correct horse")
	s.Require().NoError(err)
	_, err = s.svc.ResolveSession(context.Background(), first.Token)
	s.Require().NoError(err)

	second, err := s.svc.Login(context.Background(), "ivanov", "correct horse")
	s.Require().NoError(err)

	_, err = s.svc.ResolveSession(context.Background(), first.Token)
	s.True(errors.Is(err, apperrors.ErrUnauthorized))
	_, err = s.svc.ResolveSession(context.Background(), second.Token)
	s.NoError(err)
}

func (s *AuthServiceSuite) TestLogoutRevokesToken() {
	result, err := s.svc.Login(context.Background(), "ivanov", "correct horse")
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Logout(context.Background(), 1))

	_, err = s.svc.ResolveSession(context.Background(), result.Token)
	s.True(errors.Is(err, apperrors.ErrUnauthorized))
}

func (s *AuthServiceSuite) TestResolveSession_UsesCache() {
	result, err := s.svc.Login(context.Background(), "ivanov", "correct horse")
	s.Require().NoError(err)

	// вход сам кладет сессию в кеш
	for i := 0; i < 3; i++ {
		_, err := s.svc.ResolveSession(context.Background(), result.Token)
		s.Require().NoError(err)
	}
	s.Equal(0, s.users.Lookups)

	s.Require().NoError(s.cache.Del(context.Background(), "auth:session:1"))
	for i := 0; i < 3; i++ {
		_, err := s.svc.ResolveSession(context.Background(), result.Token)
		s.Require().NoError(err)
	}
	s.Equal(1, s.users.Lookups)
}

func (s *AuthServiceSuite) TestResolveSession_RoleChangeAppliesAfterEviction() {
	result, err := s.svc.Login(context.Background(), "ivanov", "correct horse")
	s.Require().NoError(err)
	_, err = s.svc.ResolveSession(context.Background(), result.Token)
	s.Require().NoError(err)

	stored, err := s.users.FindByID(context.Background(), 1)
	s.Require().NoError(err)
	stored.Role = "employee"
	s.Require().NoError(s.users.Update(context.Background(), 1, stored))
	s.svc.EvictSession(context.Background(), 1)

	principal, err := s.svc.ResolveSession(context.Background(), result.Token)
	s.Require().NoError(err)
	s.Equal("employee", principal.Role)
}

func (s *AuthServiceSuite) TestResolveSession_WorksWithoutRedis() {
	result, err := s.svc.Login(context.Background(), "ivanov", "correct horse")
	s.Require().NoError(err)
	s.cache.Down = true

	principal, err := s.svc.ResolveSession(context.Background(), result.Token)

	s.Require().NoError(err)
	s.Equal(uint64(1), principal.UserID)
}

func (s *AuthServiceSuite) TestResolveSession_RejectsGarbage() {
	for _, token := range []string{"", "abc", "a.b.c"} {
		_, err := s.svc.ResolveSession(context.Background(), token)
		s.True(errors.Is(err, apperrors.ErrUnauthorized), token)
	}

	foreign := service.NewJWTService("other-secret", time.Hour, zap.NewNop())
	forged, err := foreign.GenerateToken(1, "administrator", "whatever")
	s.Require().NoError(err)
	_, err = s.svc.ResolveSession(context.Background(), forged)
	s.True(errors.Is(err, apperrors.ErrUnauthorized))
}

func (s *AuthServiceSuite) TestResolveSession_DeletedUser() {
	result, err := s.svc.Login(context.Background(), "ivanov", "correct horse")
	s.Require().NoError(err)

	s.Require().NoError(s.users.Delete(context.Background(), 1))
	s.svc.EvictSession(context.Background(), 1)

	_, err = s.svc.ResolveSession(context.Background(), result.Token)
	s.True(errors.Is(err, apperrors.ErrUnauthorized))
}

// stallingUsers останавливает FindUserByID, пока тест не отпустит release.
type stallingUsers struct {
	*repotest.UserRepository
	reached chan struct{}
	release chan struct{}
}

func (u *stallingUsers) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	user, err := u.UserRepository.FindUserByID(ctx, id)
	close(u.reached)
	<-u.release
	return user, err
}

func (s *AuthServiceSuite) TestLoginDuringCacheFillKeepsNewSession() {
	ctx := context.Background()
	first, err := s.svc.Login(ctx, "ivanov", "correct horse")
	s.Require().NoError(err)
	s.Require().NoError(s.cache.Del(ctx, "auth:session:1"))

	stalled := &stallingUsers{UserRepository: s.users, reached: make(chan struct{}), release: make(chan struct{})}
	slow := NewAuthService(stalled, s.cache, s.jwt, time.Minute, zap.NewNop())

	oldResult := make(chan error, 1)
	go func() {
		_, err := slow.ResolveSession(ctx, first.Token)
		oldResult <- err
	}()

	// старый запрос уже прочитал sid из БД, в это время происходит новый вход
	<-stalled.reached
	second, err := s.svc.Login(ctx, "ivanov", "correct horse")
	s.Require().NoError(err)
	close(stalled.release)
	s.Require().NoError(<-oldResult)

	_, err = s.svc.ResolveSession(ctx, first.Token)
	s.True(errors.Is(err, apperrors.ErrUnauthorized))
	_, err = s.svc.ResolveSession(ctx, second.Token)
	s.NoError(err)
}

func (s *AuthServiceSuite) TestLogoutDuringCacheFillKeepsTokenRevoked() {
	ctx := context.Background()
	result, err := s.svc.Login(ctx, "ivanov", "correct horse")
	s.Require().NoError(err)
	s.Require().NoError(s.cache.Del(ctx, "auth:session:1"))

	stalled := &stallingUsers{UserRepository: s.users, reached: make(chan struct{}), release: make(chan struct{})}
	slow := NewAuthService(stalled, s.cache, s.jwt, time.Minute, zap.NewNop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = slow.ResolveSession(ctx, result.Token)
	}()

	<-stalled.reached
	s.Require().NoError(s.svc.Logout(ctx, 1))
	close(stalled.release)
	<-done

	_, err = s.svc.ResolveSession(ctx, result.Token)
	s.True(errors.Is(err, apperrors.ErrUnauthorized))
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func TestCachedSessionRoundTrip(t *testing.T) {
	u := &entities.User{Role: "administrator", Token: null.StringFrom("sid-1")}
	assert.Equal(t, &cachedSession{SessionID: "sid-1", Role: "administrator"}, sessionOf(u))

	u.Token = null.String{}
	require.Empty(t, sessionOf(u).SessionID)
}
