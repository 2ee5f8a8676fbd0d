package repository

import "strings"

// condition é um pedaço de WHERE já parametrizado. As condições de uma
// listagem são sempre combinadas com AND.
type condition struct {
	expr string
	arg  interface{}
}

func eq(column string, value interface{}) condition {
	return condition{expr: column + " = ?", arg: value}
}

func contains(column, value string) condition {
	return condition{expr: column + " ILIKE ?", arg: "%" + value + "%"}
}

func gte(column string, value interface{}) condition {
	return condition{expr: column + " >= ?", arg: value}
}

func lte(column string, value interface{}) condition {
	return condition{expr: column + " <= ?", arg: value}
}

// appendWhere anexa as condições à consulta base. Sem condições, a consulta
// volta inalterada (listagem sem filtro).
func appendWhere(baseQuery string, args []interface{}, conds []condition) (string, []interface{}) {
	if len(conds) == 0 {
		return baseQuery, args
	}
	exprs := make([]string, len(conds))
	for i, cond := range conds {
		exprs[i] = cond.expr
		args = append(args, cond.arg)
	}
	return baseQuery + " WHERE " + strings.Join(exprs, " AND "), args
}
