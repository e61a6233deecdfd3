// Package output renders command results as a table, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"
)

// Format names an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = fmt.Errorf("output: unknown format, want one of %s, %s, %s", FormatTable, FormatJSON, FormatYAML)

// ParseFormat validates s. An empty string means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Formatter writes data to w.
type Formatter interface {
	Write(w io.Writer, data any) error
}

// New returns the Formatter for f.
func New(f Format) Formatter {
	switch f {
	case FormatJSON:
		return jsonFormatter{}
	case FormatYAML:
		return yamlFormatter{}
	default:
		return tableFormatter{}
	}
}

type jsonFormatter struct{}

func (jsonFormatter) Write(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

type yamlFormatter struct{}

func (yamlFormatter) Write(w io.Writer, data any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}

// tableFormatter prints slices of structs as rows and single structs as
// key/value pairs. Column names come from the `table` tag, falling back to
// the upper-cased field name; `table:"-"` hides a field.
type tableFormatter struct{}

func (tableFormatter) Write(w io.Writer, data any) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			fmt.Fprintln(tw, "-")
			return tw.Flush()
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			fmt.Fprintln(tw, "No resources found.")
			break
		}
		elemType := v.Type().Elem()
		for elemType.Kind() == reflect.Pointer {
			elemType = elemType.Elem()
		}
		if elemType.Kind() != reflect.Struct {
			for i := range v.Len() {
				fmt.Fprintln(tw, cell(v.Index(i)))
			}
			break
		}
		cols := columns(elemType)
		headers := make([]string, len(cols))
		for i, c := range cols {
			headers[i] = c.name
		}
		fmt.Fprintln(tw, strings.Join(headers, "\t"))
		for i := range v.Len() {
			row := indirect(v.Index(i))
			vals := make([]string, len(cols))
			for j, c := range cols {
				if row.IsValid() {
					vals[j] = cell(row.Field(c.index))
				}
			}
			fmt.Fprintln(tw, strings.Join(vals, "\t"))
		}
	case reflect.Struct:
		for _, c := range columns(v.Type()) {
			fmt.Fprintf(tw, "%s:\t%s\n", c.name, cell(v.Field(c.index)))
		}
	default:
		fmt.Fprintln(tw, cell(v))
	}
	return tw.Flush()
}

type column struct {
	name  string
	index int
}

func columns(t reflect.Type) []column {
	cols := make([]column, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Tag.Get("table")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToUpper(f.Name)
		}
		cols = append(cols, column{name: name, index: i})
	}
	return cols
}

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func cell(v reflect.Value) string {
	v = indirect(v)
	if !v.IsValid() {
		return "-"
	}
	switch x := v.Interface().(type) {
	case time.Time:
		if x.IsZero() {
			return "-"
		}
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	}
	switch v.Kind() {
	case reflect.Slice:
		parts := make([]string, v.Len())
		for i := range v.Len() {
			parts[i] = cell(v.Index(i))
		}
		return strings.Join(parts, ", ")
	case reflect.String:
		if v.String() == "" {
			return "-"
		}
	}
	return fmt.Sprint(v.Interface())
}
