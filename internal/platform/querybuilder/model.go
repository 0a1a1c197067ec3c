package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// UpsertModel builds an INSERT ... ON CONFLICT (keys) DO UPDATE for a struct
// with db tags. Columns tagged db:",insertonly" (for example created_at) are
// written on insert but never overwritten.
func UpsertModel(table string, model any, keys ...string) (string, []any, error) {
	cols, vals, insertOnly, err := columnsAndValuesFromModel(model)
	if err != nil {
		return "", nil, err
	}
	if len(keys) == 0 {
		return "", nil, fmt.Errorf("upsert %s: conflict keys are required", table)
	}

	skip := make(map[string]struct{}, len(keys)+len(insertOnly))
	for _, key := range keys {
		skip[key] = struct{}{}
	}
	for _, col := range insertOnly {
		skip[col] = struct{}{}
	}
	updates := make([]string, 0, len(cols))
	for _, col := range cols {
		if _, ok := skip[col]; !ok {
			updates = append(updates, col)
		}
	}

	builder := InsertInto(table).Columns(cols...).Values(vals...).OnConflict(keys...)
	if len(updates) == 0 {
		builder.DoNothing()
	} else {
		builder.DoUpdate(updates...)
	}
	return builder.ToSQL()
}

// Columns lists the db columns of a model type, in field order.
func Columns(model any) []string {
	cols, _, _, err := columnsAndValuesFromModel(model)
	if err != nil {
		return nil
	}
	return cols
}

func columnsAndValuesFromModel(model any) ([]string, []any, []string, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	var insertOnly []string
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		parts := strings.Split(strings.TrimSpace(field.Tag.Get("db")), ",")
		col := strings.TrimSpace(parts[0])
		if col == "" || col == "-" {
			continue
		}
		for _, opt := range parts[1:] {
			if strings.TrimSpace(opt) == "insertonly" {
				insertOnly = append(insertOnly, col)
			}
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, insertOnly, nil
}
