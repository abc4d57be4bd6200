package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	type payload struct {
		ArrivalDate Date `json:"arrival_date"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"arrival_date":"05.03.2024"}`), &p))
	assert.Equal(t, NewDate(2024, time.March, 5), p.ArrivalDate)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"arrival_date":"05.03.2024"}`, string(out))
}

func TestDate_RejectsIsoFormat(t *testing.T) {
	var d Date
	err := json.Unmarshal([]byte(`"2024-03-05"`), &d)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ДД.ММ.ГГГГ")
}

func TestDate_EmptyIsNull(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2023, time.December, 31, 15, 4, 0, 0, time.Local)))
	assert.Equal(t, "31.12.2023", d.String())

	require.NoError(t, d.Scan("2022-01-02"))
	assert.Equal(t, "02.01.2022", d.String())

	assert.Error(t, d.Scan(42))
}

func TestListQuery_Descending(t *testing.T) {
	assert.True(t, ListQuery{SortOrder: "DESC"}.Descending())
	assert.False(t, ListQuery{SortOrder: "asc"}.Descending())
	assert.False(t, ListQuery{}.Descending())
}
