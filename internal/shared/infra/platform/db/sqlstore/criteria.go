package sqlstore

import (
	"fmt"
	"reflect"

	sq "github.com/Masterminds/squirrel"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	sharedQuery "github.com/davicafu/hexadmin/internal/shared/infra/platform/query"
)

// ToSqlizer traduce Criteria a una condición squirrel. fields es la lista
// blanca campo -> columna; un campo desconocido devuelve ErrInvalidField.
// Un criterio vacío devuelve nil: no hay WHERE.
func ToSqlizer(c sharedDomain.Criteria, fields map[string]string) (sq.Sqlizer, error) {
	return toSqlizer(c, fields, likeEscapeClause)
}

// ToClickHouseSqlizer es ToSqlizer sin cláusula ESCAPE: ClickHouse no la
// acepta y ya usa la barra invertida como escape en LIKE.
func ToClickHouseSqlizer(c sharedDomain.Criteria, fields map[string]string) (sq.Sqlizer, error) {
	return toSqlizer(c, fields, "")
}

func toSqlizer(c sharedDomain.Criteria, fields map[string]string, escape string) (sq.Sqlizer, error) {
	switch crit := c.(type) {
	case nil:
		return nil, nil
	case sharedDomain.CompositeCriteria:
		return compositeToSqlizer(crit, fields, escape)
	case *sharedDomain.CompositeCriteria:
		if crit == nil {
			return nil, nil
		}
		return compositeToSqlizer(*crit, fields, escape)
	case sharedDomain.Criterion:
		return criterionToSqlizer(crit, fields, escape)
	default:
		// Criterios propios de un dominio: se combinan con AND.
		var parts []sharedDomain.Criteria
		for _, cond := range c.ToConditions() {
			parts = append(parts, cond)
		}
		return compositeToSqlizer(sharedDomain.And(parts...), fields, escape)
	}
}

func compositeToSqlizer(c sharedDomain.CompositeCriteria, fields map[string]string, escape string) (sq.Sqlizer, error) {
	var parts []sq.Sqlizer
	for _, child := range c.Criterias {
		s, err := toSqlizer(child, fields, escape)
		if err != nil {
			return nil, err
		}
		if s != nil {
			parts = append(parts, s)
		}
	}

	switch len(parts) {
	case 0:
		// squirrel renderiza un Or vacío como (1=0); aquí vacío significa "sin filtro".
		return nil, nil
	case 1:
		return parts[0], nil
	}
	if c.Operator == sharedDomain.OpOr {
		return sq.Or(parts), nil
	}
	return sq.And(parts), nil
}

func criterionToSqlizer(c sharedDomain.Criterion, fields map[string]string, escape string) (sq.Sqlizer, error) {
	col, ok := fields[c.Field]
	if !ok {
		return nil, fmt.Errorf("%w: %s", sharedDomain.ErrInvalidField, c.Field)
	}

	switch c.Op {
	case sharedDomain.OpEq:
		if c.Value == nil {
			return sq.Expr(col + " IS NULL"), nil
		}
		return sq.Expr(col+" = ?", c.Value), nil
	case sharedDomain.OpNeq:
		if c.Value == nil {
			return sq.Expr(col + " IS NOT NULL"), nil
		}
		return sq.Expr(col+" <> ?", c.Value), nil
	case sharedDomain.OpGt, sharedDomain.OpGte, sharedDomain.OpLt, sharedDomain.OpLte:
		return sq.Expr(fmt.Sprintf("%s %s ?", col, c.Op), c.Value), nil
	case sharedDomain.OpLike:
		return sq.Expr(col+" LIKE ?"+escape, c.Value), nil
	case sharedDomain.OpILike:
		// SQLite no tiene ILIKE; LOWER funciona igual en ambos dialectos.
		return sq.Expr("LOWER("+col+") LIKE LOWER(?)"+escape, c.Value), nil
	case sharedDomain.OpIn:
		return sq.Eq{col: toList(c.Value)}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported operator %q on %s", sharedDomain.ErrInvalidField, c.Op, c.Field)
	}
}

var likeEscapeClause = " ESCAPE '" + string(sharedDomain.LikeEscape) + "'"

func toList(v interface{}) []interface{} {
	rv := reflect.ValueOf(v)
	if v == nil || rv.Kind() != reflect.Slice {
		return []interface{}{v}
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// OrderClauses traduce los órdenes a "col ASC|DESC" validando contra la lista blanca.
// Siempre añade la clave primaria al final para que el orden sea estable entre páginas.
func OrderClauses(sorts []sharedQuery.Sort, fields map[string]string, key string) ([]string, error) {
	clauses := make([]string, 0, len(sorts)+1)
	hasKey := false
	for _, s := range sorts {
		col, ok := fields[s.Field]
		if !ok {
			return nil, fmt.Errorf("%w: %s", sharedDomain.ErrInvalidField, s.Field)
		}
		if col == key {
			hasKey = true
		}
		clauses = append(clauses, col+" "+s.Direction())
	}
	if key != "" && !hasKey {
		clauses = append(clauses, key+" ASC")
	}
	return clauses, nil
}
