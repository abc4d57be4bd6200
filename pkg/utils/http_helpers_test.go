package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	apperrors "inventory-system/pkg/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseListQuery(t *testing.T) {
	values, err := url.ParseQuery("search=Мон&sortBy=InventoryNumber&sortOrder=DESC&filter[room_id]=4&filter[comment]=abc&limit=5000&offset=10")
	require.NoError(t, err)

	q := ParseListQuery(values)

	assert.Equal(t, "Мон", q.Search)
	assert.Equal(t, "InventoryNumber", q.SortBy)
	assert.Equal(t, "desc", q.SortOrder)
	assert.Equal(t, int64(4), q.Filter["room_id"])
	assert.Equal(t, "abc", q.Filter["comment"])
	assert.Equal(t, uint64(MaxLimit), q.Limit)
	assert.Equal(t, uint64(10), q.Offset)
}

func TestParseListQuery_Defaults(t *testing.T) {
	q := ParseListQuery(url.Values{"sortOrder": {"sideways"}})

	assert.Equal(t, "asc", q.SortOrder)
	assert.Empty(t, q.Search)
	assert.Zero(t, q.Limit)
	assert.Empty(t, q.Filter)
}

func errorStatus(t *testing.T, err error) (int, HTTPResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, ErrorResponse(c, err, zap.NewNop()))

	var body HTTPResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestErrorResponse_Mapping(t *testing.T) {
	code, body := errorStatus(t, apperrors.NewValidationError("Инвентарный номер должен быть уникальным"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Инвентарный номер должен быть уникальным", body.Message)
	assert.False(t, body.Status)

	code, body = errorStatus(t, fmt.Errorf("сервис: %w", apperrors.NewNotFoundError("Модель с ID %d не найдена", 7)))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Модель с ID 7 не найдена", body.Message)

	code, _ = errorStatus(t, apperrors.ErrTokenExpired)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = errorStatus(t, errors.New("pq: connection refused at 10.0.0.5"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Внутренняя ошибка сервера", body.Message)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)
	assert.NoError(t, ComparePasswords(hash, "s3cret!"))
	assert.Error(t, ComparePasswords(hash, "wrong"))
}
