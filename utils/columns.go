package utils

import "reflect"

// ColumnList returns the "db" tag of every field of T, in declaration order.
// An optional prefix qualifies the columns with a table alias.
func ColumnList[T any](prefix ...string) []string {
	var model T
	modelType := reflect.TypeOf(model)

	columns := make([]string, 0, modelType.NumField())
	for i := 0; i < modelType.NumField(); i++ {
		tag := modelType.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		if len(prefix) > 0 {
			tag = prefix[0] + "." + tag
		}
		columns = append(columns, tag)
	}
	return columns
}
