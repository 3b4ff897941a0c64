package database

import (
	"fmt"
	"strings"
)

// noteColumn pairs an external (client facing, camelCase) note field with
// its storage column. Flag columns hold 0/1.
type noteColumn struct {
	Field  string
	Column string
	Flag   bool
}

var noteColumns = []noteColumn{
	{Field: "id", Column: "id"},
	{Field: "userId", Column: "user_id"},
	{Field: "title", Column: "title"},
	{Field: "content", Column: "content"},
	{Field: "fontFamily", Column: "font_family"},
	{Field: "fontSize", Column: "font_size"},
	{Field: "color", Column: "color"},
	{Field: "isBold", Column: "is_bold", Flag: true},
	{Field: "isItalic", Column: "is_italic", Flag: true},
	{Field: "isUnderline", Column: "is_underline", Flag: true},
	{Field: "isPinned", Column: "is_pinned", Flag: true},
	{Field: "createdAt", Column: "created_at"},
	{Field: "updatedAt", Column: "updated_at"},
}

// columnByField indexes noteColumns by external field name. It is built in
// its initializer so the package-level SELECT lists can use it.
var columnByField = indexColumns(noteColumns)

func indexColumns(cols []noteColumn) map[string]noteColumn {
	m := make(map[string]noteColumn, len(cols))
	for _, c := range cols {
		m[c.Field] = c
	}
	return m
}

// selectList renders the storage columns of the given fields, in order.
// Raw expressions may be mixed in with a "=" prefix.
func selectList(fields ...string) string {
	cols := make([]string, 0, len(fields))
	for _, f := range fields {
		if expr, ok := strings.CutPrefix(f, "="); ok {
			cols = append(cols, expr)
			continue
		}
		c, ok := columnByField[f]
		if !ok {
			panic(fmt.Sprintf("database: unknown note field %q", f))
		}
		cols = append(cols, c.Column)
	}
	return strings.Join(cols, ", ")
}

// encodeValue converts a field value to its storage representation.
func encodeValue(c noteColumn, v any) any {
	if c.Flag {
		if b, ok := v.(bool); ok {
			return boolToInt(b)
		}
	}
	return v
}

func boolToInt(b bool) int16 {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int16) bool {
	return i != 0
}
