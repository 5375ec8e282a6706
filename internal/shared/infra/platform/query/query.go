package query

import "strings"

// ---------- Tipos de ordenamiento ----------

// Sort indica campo y dirección.
type Sort struct {
	Field string // ej. "created_at", "name", "updated_at"
	Desc  bool
}

// Asc y Desc son atajos para construir órdenes.
func Asc(field string) Sort  { return Sort{Field: field} }
func Desc(field string) Sort { return Sort{Field: field, Desc: true} }

// ParseSort interpreta "campo" o "-campo" (descendente) separados por comas.
// Si no hay nada válido devuelve los fallbacks.
func ParseSort(raw string, fallback ...Sort) []Sort {
	var sorts []Sort
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == "-" {
			continue
		}
		if strings.HasPrefix(part, "-") {
			sorts = append(sorts, Desc(part[1:]))
			continue
		}
		sorts = append(sorts, Asc(part))
	}
	if len(sorts) == 0 {
		return fallback
	}
	return sorts
}

// Direction devuelve el sufijo SQL de la dirección.
func (s Sort) Direction() string {
	if s.Desc {
		return "DESC"
	}
	return "ASC"
}
