package query

import (
	"fmt"
	"reflect"

	"github.com/Konsultn-Engineering/bookworm/ids"
	"github.com/Konsultn-Engineering/bookworm/schema"
)

// InsertModel locks the builder to INSERT into the table of the models and
// adds one row per model. Fields tagged auto are left to the database.
// Zero fields tagged with a generator receive a new id, written back when
// the model is passed by pointer. All models must share one type.
func (b *Builder) InsertModel(models ...any) *Builder {
	if len(models) == 0 {
		return b
	}
	meta, err := schema.Introspect(models[0])
	if err != nil {
		b.addError(err)
		return b
	}

	fields := make([]*schema.FieldMeta, 0, len(meta.Fields))
	for _, f := range meta.Fields {
		if !f.Tag.Auto {
			fields = append(fields, f)
		}
	}

	b.Insert(meta.TableName)
	b.FieldNames(columnsOf(fields)...)

	for _, m := range models {
		v, err := schema.Indirect(m)
		if err != nil {
			b.addError(err)
			continue
		}
		if v.Type() != meta.Type {
			b.addError(fmt.Errorf("query: InsertModel mixes %s and %s", meta.Type, v.Type()))
			continue
		}

		row := make([]any, len(fields))
		for i, f := range fields {
			if f.Tag.Generator != "" && f.IsZero(v) {
				id, err := generate(v, f)
				if err != nil {
					b.addError(err)
				}
				row[i] = id
				continue
			}
			row[i] = f.Value(v)
		}
		b.Values(row)
	}
	return b
}

// SetModel locks the builder to UPDATE on the model's table and assigns
// every column except the primary key and auto fields. A non-zero primary
// key becomes a WHERE condition.
func (b *Builder) SetModel(model any) *Builder {
	meta, err := schema.Introspect(model)
	if err != nil {
		b.addError(err)
		return b
	}
	v, err := schema.Indirect(model)
	if err != nil {
		b.addError(err)
		return b
	}

	b.Update(meta.TableName)
	for _, f := range meta.Fields {
		if f == meta.Primary || f.Tag.Auto {
			continue
		}
		b.Set(f.Column, f.Value(v))
	}
	if pk := meta.Primary; pk != nil && !pk.IsZero(v) {
		b.Where(pk.Column, "=", pk.Value(v))
	}
	return b
}

func columnsOf(fields []*schema.FieldMeta) []string {
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.Column
	}
	return cols
}

func generate(v reflect.Value, f *schema.FieldMeta) (string, error) {
	if f.Type.Kind() != reflect.String {
		return "", fmt.Errorf("query: generator %s needs a string field, %s is %s", f.Tag.Generator, f.Name, f.Type)
	}
	id, err := ids.Generate(f.Tag.Generator)
	if err != nil {
		return "", fmt.Errorf("query: generate %s: %w", f.Name, err)
	}
	if field := v.FieldByIndex(f.Index); field.CanSet() {
		field.SetString(id)
	}
	return id, nil
}
