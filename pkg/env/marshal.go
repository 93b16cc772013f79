package env

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var ErrNotStructPointer = errors.New("env: expected a pointer to a struct")

var durationType = reflect.TypeOf(time.Duration(0))

// MarshalEnv renders the non-zero `env` tagged fields of the struct c points
// to as .env lines, in field order.
func MarshalEnv(c any) (string, error) {
	rv := reflect.ValueOf(c)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return "", ErrNotStructPointer
	}
	v := rv.Elem()
	t := v.Type()

	var sb strings.Builder
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		// "KEY,required,notEmpty" or "KEY"
		key, _, _ := strings.Cut(field.Tag.Get("env"), ",")
		if key == "" {
			continue
		}

		val := v.Field(i)
		if val.IsZero() {
			continue
		}

		fmt.Fprintf(&sb, "%s=%s\n", key, quote(formatValue(val)))
	}

	return sb.String(), nil
}

func formatValue(v reflect.Value) string {
	if v.Type() == durationType {
		return time.Duration(v.Int()).String()
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// quote wraps values godotenv would otherwise cut at whitespace or '#'.
func quote(s string) string {
	if !strings.ContainsAny(s, " \t#\"'\n") {
		return s
	}
	return strconv.Quote(s)
}
