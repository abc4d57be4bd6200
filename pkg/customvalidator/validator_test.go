package customvalidator

import (
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type networkForm struct {
	IP      string      `validate:"required,ipv4_octets"`
	Gateway null.String `validate:"omitempty,ipv4_octets"`
	Mac     null.String `validate:"omitempty,mac"`
}

type moneyForm struct {
	Cost null.Float64 `validate:"omitempty,money"`
}

type refForm struct {
	RoomID null.Uint64 `validate:"required,gte=1"`
}

func TestIsDottedIPv4(t *testing.T) {
	cases := map[string]bool{
		"192.168.0.1":     true,
		"0.0.0.0":         true,
		"255.255.255.255": true,
		"256.1.1.1":       false,
		"10.0.0":          false,
		"a.b.c.d":         false,
		"1.2.3.4.5":       false,
		"":                false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsDottedIPv4(in), in)
	}
}

func TestNetworkRules(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(networkForm{IP: "10.1.1.1"}))
	assert.NoError(t, v.Struct(networkForm{IP: "10.1.1.1", Gateway: null.StringFrom("10.1.1.254"), Mac: null.StringFrom("AA-bb-01-02-03-04")}))
	assert.Error(t, v.Struct(networkForm{IP: "10.1.1.300"}))
	assert.Error(t, v.Struct(networkForm{IP: "10.1.1.1", Mac: null.StringFrom("AA:BB:CC:DD:EE")}))
	assert.Error(t, v.Struct(networkForm{IP: "10.1.1.1", Gateway: null.StringFrom("gateway")}))
}

func TestMoneyRule(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(moneyForm{}))
	assert.NoError(t, v.Struct(moneyForm{Cost: null.Float64From(1999.99)}))
	assert.NoError(t, v.Struct(moneyForm{Cost: null.Float64From(0)}))
	assert.Error(t, v.Struct(moneyForm{Cost: null.Float64From(-1)}))
	assert.Error(t, v.Struct(moneyForm{Cost: null.Float64From(10.555)}))
}

func TestNullUint64Required(t *testing.T) {
	v := New()

	assert.Error(t, v.Struct(refForm{}))
	assert.Error(t, v.Struct(refForm{RoomID: null.Uint64From(0)}))
	assert.NoError(t, v.Struct(refForm{RoomID: null.Uint64From(7)}))
}

func TestFirstMessage(t *testing.T) {
	v := New()
	err := v.Struct(networkForm{IP: "1.2.3"})
	require.Error(t, err)

	msg := FirstMessage(err, map[string]string{
		"IP.ipv4_octets": "Неверный формат IP адреса",
	})
	assert.Equal(t, "Неверный формат IP адреса", msg)

	msg = FirstMessage(err, nil)
	assert.Equal(t, "Ошибка валидации: Поле 'IP' не прошло проверку 'ipv4_octets'", msg)
}
