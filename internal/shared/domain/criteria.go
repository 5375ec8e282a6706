package domain

import "strings"

// ---------------- Operadores ----------------

type Operator string

const (
	OpEq    Operator = "="
	OpNeq   Operator = "<>"
	OpGt    Operator = ">"
	OpGte   Operator = ">="
	OpLt    Operator = "<"
	OpLte   Operator = "<="
	OpLike  Operator = "LIKE"
	OpILike Operator = "ILIKE"
	OpIn    Operator = "IN"
)

type LogicalOperator string

const (
	OpAnd LogicalOperator = "AND"
	OpOr  LogicalOperator = "OR"
)

// ---------------- Criterion ----------------

// Criterion describe una condición neutral de filtrado
type Criterion struct {
	Field string
	Op    Operator
	Value interface{}
}

// ToConditions permite usar un Criterion suelto como Criteria.
func (c Criterion) ToConditions() []Criterion {
	return []Criterion{c}
}

// ---------------- Criteria interface ----------------

// Criteria permite transformar filtros a condiciones neutrales.
// Los adapters que soportan OR deben recorrer CompositeCriteria en lugar de
// aplanar con ToConditions, que siempre combina con AND.
type Criteria interface {
	ToConditions() []Criterion
}

// ---------------- Composite Criteria ----------------

type CompositeCriteria struct {
	Operator  LogicalOperator
	Criterias []Criteria
}

func (c CompositeCriteria) ToConditions() []Criterion {
	var all []Criterion
	for _, crit := range c.Criterias {
		if crit == nil {
			continue
		}
		all = append(all, crit.ToConditions()...)
	}
	return all
}

// IsEmpty indica si el compuesto no aporta ninguna condición.
func (c CompositeCriteria) IsEmpty() bool {
	return len(c.ToConditions()) == 0
}

// ---------------- Helpers ----------------

// And crea un CompositeCriteria con operador AND
func And(criterias ...Criteria) CompositeCriteria {
	return CompositeCriteria{Operator: OpAnd, Criterias: criterias}
}

// Or crea un CompositeCriteria con operador OR
func Or(criterias ...Criteria) CompositeCriteria {
	return CompositeCriteria{Operator: OpOr, Criterias: criterias}
}

// Eq filtra por igualdad exacta.
func Eq(field string, value interface{}) Criterion {
	return Criterion{Field: field, Op: OpEq, Value: value}
}

// In filtra por pertenencia a una lista.
func In(field string, values ...interface{}) Criterion {
	return Criterion{Field: field, Op: OpIn, Value: values}
}

// Contains filtra por subcadena literal sin distinguir mayúsculas.
func Contains(field, term string) Criterion {
	return Criterion{Field: field, Op: OpILike, Value: "%" + EscapeLike(term) + "%"}
}

// LikeEscape es el carácter de escape de los patrones LIKE.
const LikeEscape = '\\'

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike neutraliza los comodines de LIKE en un término de usuario.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// Search construye la búsqueda libre "q": OR de Contains sobre los campos dados.
// Con término vacío no filtra nada.
func Search(term string, fields ...string) Criteria {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return And()
	}
	var crits []Criteria
	for _, f := range fields {
		crits = append(crits, Contains(f, term))
	}
	return Or(crits...)
}
