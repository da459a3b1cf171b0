package querybuilder

import (
	"strconv"
	"strings"
)

// Condition renders one predicate of a WHERE clause with $n placeholders.
type Condition interface {
	render(w *writer)
}

// writer accumulates SQL text and positional arguments.
type writer struct {
	sql  strings.Builder
	args []any
}

func (w *writer) bind(value any) {
	w.args = append(w.args, value)
	w.sql.WriteString("$")
	w.sql.WriteString(strconv.Itoa(len(w.args)))
}

// expr copies text, turning each ? into the next placeholder.
func (w *writer) expr(text string, values []any) {
	next := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '?' && next < len(values) {
			w.bind(values[next])
			next++
			continue
		}
		w.sql.WriteByte(text[i])
	}
}

func (w *writer) where(conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.sql.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.sql.WriteString(" AND ")
		}
		c.render(w)
	}
}

type eq struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eq{column: column, value: value}
}

func (c eq) render(w *writer) {
	w.sql.WriteString(c.column)
	w.sql.WriteString(" = ")
	w.bind(c.value)
}

type in struct {
	column string
	values []any
}

// In matches nothing when values is empty.
func In(column string, values []any) Condition {
	return in{column: column, values: values}
}

// InStrings is In for string keys.
func InStrings(column string, values []string) Condition {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return in{column: column, values: out}
}

func (c in) render(w *writer) {
	if len(c.values) == 0 {
		w.sql.WriteString("1=0")
		return
	}
	w.sql.WriteString(c.column)
	w.sql.WriteString(" IN (")
	for i, v := range c.values {
		if i > 0 {
			w.sql.WriteString(", ")
		}
		w.bind(v)
	}
	w.sql.WriteString(")")
}

type isNull struct {
	column string
}

func IsNull(column string) Condition {
	return isNull{column: column}
}

func (c isNull) render(w *writer) {
	w.sql.WriteString(c.column)
	w.sql.WriteString(" IS NULL")
}

type rawExpr struct {
	text string
	args []any
}

// Expr is a free-form predicate; each ? binds the next argument.
func Expr(text string, args ...any) Condition {
	return rawExpr{text: text, args: args}
}

func (c rawExpr) render(w *writer) {
	w.expr(c.text, c.args)
}
