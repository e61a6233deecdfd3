package binder

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// decode copies values into the fields of v tagged with tag.
func decode(v any, tag string, lookup func(name string) []string, failure error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rt.NumField() {
		sf := rt.Field(i)
		name := tagName(sf, tag)
		if name == "" || !sf.IsExported() {
			continue
		}
		vals := lookup(name)
		if len(vals) == 0 {
			continue
		}
		if err := setValue(rv.Field(i), vals); err != nil {
			return errors.Join(failure, fmt.Errorf("%s: %w", name, err))
		}
	}
	return nil
}

func tagName(sf reflect.StructField, tag string) string {
	t, ok := sf.Tag.Lookup(tag)
	if !ok || t == "-" {
		return ""
	}
	name, _, _ := strings.Cut(t, ",")
	return name
}

func setValue(field reflect.Value, vals []string) error {
	switch field.Kind() {
	case reflect.Pointer:
		elem := reflect.New(field.Type().Elem())
		if err := setValue(elem.Elem(), vals); err != nil {
			return err
		}
		field.Set(elem)
		return nil
	case reflect.Slice:
		out := reflect.MakeSlice(field.Type(), 0, len(vals))
		for _, s := range vals {
			elem := reflect.New(field.Type().Elem()).Elem()
			if err := setScalar(elem, s); err != nil {
				return err
			}
			out = reflect.Append(out, elem)
		}
		field.Set(out)
		return nil
	default:
		return setScalar(field, vals[0])
	}
}

func setScalar(field reflect.Value, raw string) error {
	s := strings.TrimSpace(raw)
	switch field.Kind() {
	case reflect.String:
		field.SetString(s)
	case reflect.Bool:
		b, err := parseBool(s)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer %q", s)
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}

// parseBool accepts HTML checkbox values on top of strconv.ParseBool.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", s)
	}
	return b, nil
}
