// Package mongostore traduce Criteria a filtros bson y expone Collection,
// el equivalente documental de sqlstore.Table.
package mongostore

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
)

// ToFilter traduce Criteria a un filtro de MongoDB respetando AND/OR.
// fields mapea campo neutral -> clave del documento; un campo desconocido es ErrInvalidField.
func ToFilter(c sharedDomain.Criteria, fields map[string]string) (bson.D, error) {
	switch crit := c.(type) {
	case nil:
		return bson.D{}, nil
	case sharedDomain.CompositeCriteria:
		return compositeToFilter(crit, fields)
	case sharedDomain.Criterion:
		e, err := criterionToElem(crit, fields)
		if err != nil {
			return nil, err
		}
		return bson.D{e}, nil
	default:
		var parts []sharedDomain.Criteria
		for _, cond := range c.ToConditions() {
			parts = append(parts, cond)
		}
		return compositeToFilter(sharedDomain.And(parts...), fields)
	}
}

func compositeToFilter(c sharedDomain.CompositeCriteria, fields map[string]string) (bson.D, error) {
	var parts bson.A
	for _, child := range c.Criterias {
		f, err := ToFilter(child, fields)
		if err != nil {
			return nil, err
		}
		if len(f) > 0 {
			parts = append(parts, f)
		}
	}

	switch len(parts) {
	case 0:
		return bson.D{}, nil
	case 1:
		return parts[0].(bson.D), nil
	}
	op := "$and"
	if c.Operator == sharedDomain.OpOr {
		op = "$or"
	}
	return bson.D{{Key: op, Value: parts}}, nil
}

func criterionToElem(c sharedDomain.Criterion, fields map[string]string) (bson.E, error) {
	key, ok := fields[c.Field]
	if !ok {
		return bson.E{}, fmt.Errorf("%w: %s", sharedDomain.ErrInvalidField, c.Field)
	}

	// Mapeo de operadores genéricos a operadores de MongoDB
	switch c.Op {
	case sharedDomain.OpEq:
		return bson.E{Key: key, Value: bson.M{"$eq": c.Value}}, nil
	case sharedDomain.OpNeq:
		return bson.E{Key: key, Value: bson.M{"$ne": c.Value}}, nil
	case sharedDomain.OpGt:
		return bson.E{Key: key, Value: bson.M{"$gt": c.Value}}, nil
	case sharedDomain.OpGte:
		return bson.E{Key: key, Value: bson.M{"$gte": c.Value}}, nil
	case sharedDomain.OpLt:
		return bson.E{Key: key, Value: bson.M{"$lt": c.Value}}, nil
	case sharedDomain.OpLte:
		return bson.E{Key: key, Value: bson.M{"$lte": c.Value}}, nil
	case sharedDomain.OpLike, sharedDomain.OpILike:
		pattern, ok := c.Value.(string)
		if !ok {
			return bson.E{}, fmt.Errorf("%w: %s expects a string pattern", sharedDomain.ErrInvalidField, c.Field)
		}
		regex := bson.M{"$regex": likeToRegex(pattern)}
		// Para ILIKE, añadimos la opción 'i' de insensibilidad a mayúsculas
		if c.Op == sharedDomain.OpILike {
			regex["$options"] = "i"
		}
		return bson.E{Key: key, Value: regex}, nil
	case sharedDomain.OpIn:
		return bson.E{Key: key, Value: bson.M{"$in": toArray(c.Value)}}, nil
	default:
		return bson.E{}, fmt.Errorf("%w: unsupported operator %q on %s", sharedDomain.ErrInvalidField, c.Op, c.Field)
	}
}

// likeToRegex convierte un patrón LIKE (% y _) en una regex anclada.
// Un carácter precedido de LikeEscape se toma literal.
func likeToRegex(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	escaped := false
	for _, r := range pattern {
		if escaped {
			b.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
			continue
		}
		switch r {
		case sharedDomain.LikeEscape:
			escaped = true
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return b.String()
}

func toArray(v interface{}) bson.A {
	rv := reflect.ValueOf(v)
	if v == nil || rv.Kind() != reflect.Slice {
		return bson.A{v}
	}
	out := make(bson.A, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
