package repositories

import (
	"strings"

	"github.com/Masterminds/squirrel"
)

func NewQueryBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func columnsAsSql(columns []string) string {
	return strings.Join(columns, ", ")
}
