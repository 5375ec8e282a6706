// Package pagination centraliza la paginación offset de cualquier entidad:
// cálculo de página, conteo y forma del resultado. Los filtros, includes y
// órdenes se reenvían tal cual al store, que es quien los entiende.
package pagination

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/davicafu/hexadmin/internal/shared/infra/platform/query"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

var ErrNilHandle = errors.New("pagination: nil entity handle")

// ---------- Contrato con el llamador ----------

// Request es la petición de una página. F es el tipo de filtro propio del store.
type Request[F any] struct {
	Page    int
	Limit   int
	Filter  F
	Include []string
	OrderBy []query.Sort
}

// Meta describe la posición de la página dentro del resultado completo.
type Meta struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Result es la página devuelta: nunca nil en Data.
type Result[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// ---------- Contrato con el store ----------

// FindArgs agrupa lo que necesita una lectura acotada y ordenada.
type FindArgs[F any] struct {
	Filter  F
	Include []string
	OrderBy []query.Sort
	Skip    int
	Take    int
}

// Handle es la capacidad de lectura de un tipo de entidad.
type Handle[T any, F any] interface {
	Count(ctx context.Context, filter F) (int, error)
	FindMany(ctx context.Context, args FindArgs[F]) ([]T, error)
}

// ---------- Normalización ----------

// Normalize aplica los valores por defecto a page/limit no positivos.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return page, limit
}

// ParseRequest construye una Request a partir de los query params crudos.
// Valores vacíos o no numéricos caen en los valores por defecto.
func ParseRequest[F any](rawPage, rawLimit string, filter F) Request[F] {
	page, limit := Normalize(atoi(rawPage), atoi(rawLimit))
	return Request[F]{Page: page, Limit: limit, Filter: filter}
}

func atoi(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// NewMeta deriva los contadores de página. limit debe venir normalizado.
func NewMeta(total, page, limit int) Meta {
	if total < 0 {
		total = 0
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Meta{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// ---------- Motor ----------

// Paginate lanza Count y FindMany en paralelo y arma el resultado.
// Si cualquiera falla se cancela el otro y se devuelve el error sin resultado parcial.
func Paginate[T any, F any](ctx context.Context, h Handle[T, F], req Request[F]) (*Result[T], error) {
	if h == nil {
		return nil, ErrNilHandle
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, limit := Normalize(req.Page, req.Limit)
	args := FindArgs[F]{
		Filter:  req.Filter,
		Include: req.Include,
		OrderBy: req.OrderBy,
		Skip:    skipFor(page, limit),
		Take:    limit,
	}

	var (
		total int
		data  []T
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := h.Count(gctx, req.Filter)
		if err != nil {
			return err
		}
		total = n
		return nil
	})
	g.Go(func() error {
		items, err := h.FindMany(gctx, args)
		if err != nil {
			return err
		}
		data = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(data) > limit {
		data = data[:limit]
	}
	if data == nil {
		data = []T{}
	}

	return &Result[T]{Data: data, Meta: NewMeta(total, page, limit)}, nil
}

func skipFor(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// Map transforma los elementos de una página conservando la meta.
func Map[T any, U any](res *Result[T], fn func(T) U) *Result[U] {
	out := make([]U, 0, len(res.Data))
	for _, item := range res.Data {
		out = append(out, fn(item))
	}
	return &Result[U]{Data: out, Meta: res.Meta}
}
