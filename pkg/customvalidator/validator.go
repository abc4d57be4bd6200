// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
)

var (
	octetsRegex        = regexp.MustCompile(`^(\d{1,3})\.(\d{1,3})\.(\d{1,3})\.(\d{1,3})$`)
	macRegex           = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}([0-9A-Fa-f]{2})$`)
	versionRegex       = regexp.MustCompile(`^[a-zA-Z0-9.\-\s]+$`)
	usernameRegex      = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	phoneRegex         = regexp.MustCompile(`^[\d\s\-\+\(\)]+$`)
	developerNameRegex = regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ0-9\s\.,\-]+$`)
)

// New возвращает валидатор со всеми нашими правилами.
func New() *validator.Validate {
	v := validator.New()
	if err := RegisterCustomValidations(v); err != nil {
		panic("ошибка регистрации валидаторов: " + err.Error())
	}
	return v
}

// RegisterCustomValidations "собирает" все кастомные правила
// и регистрирует их в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	registerNullTypes(v)

	rules := map[string]validator.Func{
		"ipv4_octets":    isDottedIPv4,
		"mac":            isMacAddress,
		"sw_version":     isSoftwareVersion,
		"username":       isUsername,
		"phone_chars":    isPhone,
		"developer_name": isDeveloperName,
		"money":          isMoney,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("правило %s: %w", tag, err)
		}
	}
	return nil
}

// registerNullTypes учит валидатор "смотреть внутрь" null-типов.
// nil на выходе заставляет сработать omitempty/required.
func registerNullTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.String); ok && val.Valid {
			return val.String
		}
		return nil
	}, null.String{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Uint64); ok && val.Valid {
			return val.Uint64
		}
		return nil
	}, null.Uint64{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Float64); ok && val.Valid {
			return val.Float64
		}
		return nil
	}, null.Float64{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Time); ok && val.Valid {
			return val.Time
		}
		return nil
	}, null.Time{})
}

// IsDottedIPv4 - четыре октета 0..255 через точку.
func IsDottedIPv4(s string) bool {
	m := octetsRegex.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	for _, part := range m[1:] {
		n, err := strconv.Atoi(part)
		if err != nil || n > 255 {
			return false
		}
	}
	return true
}

func isDottedIPv4(fl validator.FieldLevel) bool {
	return IsDottedIPv4(fl.Field().String())
}

func isMacAddress(fl validator.FieldLevel) bool {
	return macRegex.MatchString(fl.Field().String())
}

func isSoftwareVersion(fl validator.FieldLevel) bool {
	return versionRegex.MatchString(fl.Field().String())
}

func isUsername(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}

func isPhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

func isDeveloperName(fl validator.FieldLevel) bool {
	return developerNameRegex.MatchString(fl.Field().String())
}

// isMoney: неотрицательная сумма, не больше двух знаков после запятой.
func isMoney(fl validator.FieldLevel) bool {
	var f float64
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		f = fl.Field().Float()
	case reflect.Int, reflect.Int32, reflect.Int64:
		f = float64(fl.Field().Int())
	default:
		return false
	}
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	cents := f * 100
	return math.Abs(cents-math.Round(cents)) < 1e-6
}

// FirstMessage превращает первую ошибку валидатора в одно сообщение.
// Ключи messages: "Поле.тег" или просто "Поле".
func FirstMessage(err error, messages map[string]string) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}
	fe := validationErrors[0]
	if msg, ok := messages[fe.StructField()+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := messages[fe.StructField()]; ok {
		return msg
	}
	return fmt.Sprintf("Ошибка валидации: Поле '%s' не прошло проверку '%s'", fe.Field(), fe.Tag())
}
