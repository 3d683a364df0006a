package schema

import (
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"sync"
	"time"
)

var ErrNotStruct = errors.New("schema: model is not a struct")

// EntityMeta describes how a struct type maps onto a table.
type EntityMeta struct {
	Type      reflect.Type
	Name      string
	TableName string
	Fields    []*FieldMeta
	ColumnMap map[string]*FieldMeta
	Primary   *FieldMeta
}

// FieldMeta describes one mapped struct field.
type FieldMeta struct {
	Name   string
	Column string
	Index  []int
	Type   reflect.Type
	Tag    *ParsedTag
}

var metaCache sync.Map // reflect.Type -> *EntityMeta

// Introspect returns the cached mapping for model, a struct or a pointer
// to one. Unexported fields and fields tagged db:"-" are ignored;
// embedded structs contribute their fields.
func Introspect(model any) (*EntityMeta, error) {
	if model == nil {
		return nil, ErrNotStruct
	}
	t, ok := model.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(model)
	}
	for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t.Kind())
	}

	if cached, ok := metaCache.Load(t); ok {
		return cached.(*EntityMeta), nil
	}

	meta := buildMeta(t)
	actual, _ := metaCache.LoadOrStore(t, meta)
	return actual.(*EntityMeta), nil
}

func buildMeta(t reflect.Type) *EntityMeta {
	meta := &EntityMeta{
		Type:      t,
		Name:      t.Name(),
		TableName: TableName(reflect.New(t).Interface()),
		ColumnMap: make(map[string]*FieldMeta, t.NumField()),
	}
	collectFields(meta, t, nil)
	return meta
}

func collectFields(meta *EntityMeta, t reflect.Type, parent []int) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		index := append(append([]int(nil), parent...), i)

		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			collectFields(meta, f.Type, index)
			continue
		}
		if !f.IsExported() {
			continue
		}

		tag := ParseTag(f.Name, f.Tag)
		if tag.Skip {
			continue
		}
		if _, dup := meta.ColumnMap[tag.ColumnName]; dup {
			continue
		}

		fm := &FieldMeta{Name: f.Name, Column: tag.ColumnName, Index: index, Type: f.Type, Tag: tag}
		meta.Fields = append(meta.Fields, fm)
		meta.ColumnMap[fm.Column] = fm
		if tag.Primary && meta.Primary == nil {
			meta.Primary = fm
		}
	}
}

// Value reads the field from a struct value.
func (f *FieldMeta) Value(v reflect.Value) any {
	return v.FieldByIndex(f.Index).Interface()
}

// IsZero reports whether the field holds its zero value.
func (f *FieldMeta) IsZero(v reflect.Value) bool {
	return v.FieldByIndex(f.Index).IsZero()
}

// Indirect dereferences model down to its struct value.
func Indirect(model any) (reflect.Value, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: nil pointer", ErrNotStruct)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNotStruct, v.Kind())
	}
	return v, nil
}

// ScanRow assigns values to the fields of dest, a pointer to struct, by
// column name. Unmapped columns are skipped.
func (m *EntityMeta) ScanRow(dest any, columns []string, values []any) error {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("%w: scan target must be a non-nil pointer", ErrNotStruct)
	}
	v = v.Elem()

	for i, col := range columns {
		fm := m.ColumnMap[col]
		if fm == nil {
			continue
		}
		if err := assign(v.FieldByIndex(fm.Index), values[i]); err != nil {
			return fmt.Errorf("column %s: %w", col, err)
		}
	}
	return nil
}

var scannerType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()

// assign stores a driver value into field, converting between the numeric,
// string, []byte and time representations drivers return.
func assign(field reflect.Value, value any) error {
	if value == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}
	if field.CanAddr() && field.Addr().Type().Implements(scannerType) {
		return field.Addr().Interface().(sql.Scanner).Scan(value)
	}
	if field.Kind() == reflect.Pointer {
		elem := reflect.New(field.Type().Elem())
		if err := assign(elem.Elem(), value); err != nil {
			return err
		}
		field.Set(elem)
		return nil
	}

	src := reflect.ValueOf(value)
	if b, ok := value.([]byte); ok && field.Kind() != reflect.Slice {
		return assignString(field, string(b))
	}
	if s, ok := value.(string); ok && field.Kind() != reflect.String {
		return assignString(field, s)
	}
	if src.Type().AssignableTo(field.Type()) {
		field.Set(src)
		return nil
	}
	if field.Kind() == reflect.String {
		field.SetString(fmt.Sprint(value))
		return nil
	}
	if src.Type().ConvertibleTo(field.Type()) && src.Kind() != reflect.String {
		field.Set(src.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

func assignString(field reflect.Value, s string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.Uint8 {
			return fmt.Errorf("cannot assign string to %s", field.Type())
		}
		field.SetBytes([]byte(s))
	case reflect.Struct:
		if field.Type() != reflect.TypeOf(time.Time{}) {
			return fmt.Errorf("cannot assign string to %s", field.Type())
		}
		ts, err := parseTime(s)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(ts))
	default:
		return fmt.Errorf("cannot assign string to %s", field.Type())
	}
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}
