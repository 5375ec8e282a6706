package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
	sharedQuery "github.com/davicafu/hexadmin/internal/shared/infra/platform/query"
)

// ---------------- Entidades de prueba ----------------

type owner struct {
	ID   uuid.UUID
	Name string
}

type gadget struct {
	ID        uuid.UUID
	Name      string
	Category  string
	OwnerID   *uuid.UUID
	CreatedAt time.Time
	Owner     *owner
}

var testSchema = Schema{SQLite: []string{
	`CREATE TABLE owners (id TEXT PRIMARY KEY, name TEXT NOT NULL)`,
	`CREATE TABLE gadgets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		category TEXT NOT NULL,
		owner_id TEXT NULL,
		created_at DATETIME NOT NULL
	)`,
}}

func newOwnerTable(db *DB) *Table[*owner] {
	return NewTable(db, Mapper[*owner]{
		Entity:  "owner",
		Table:   "owners",
		Columns: []string{"id", "name"},
		Scan: func(row Scanner) (*owner, error) {
			var o owner
			return &o, row.Scan(&o.ID, &o.Name)
		},
		Values: func(o *owner) map[string]interface{} {
			return map[string]interface{}{"id": o.ID, "name": o.Name}
		},
		KeyOf: func(o *owner) interface{} { return o.ID },
	})
}

func newGadgetTable(db *DB, owners *Table[*owner]) *Table[*gadget] {
	return NewTable(db, Mapper[*gadget]{
		Entity:       "gadget",
		Table:        "gadgets",
		Columns:      []string{"id", "name", "category", "owner_id", "created_at"},
		Fields:       map[string]string{"owner": "owner_id"},
		DefaultOrder: []sharedQuery.Sort{sharedQuery.Asc("name")},
		Includes: map[string]Loader[*gadget]{
			"owner": BelongsTo(owners,
				func(g *gadget) (uuid.UUID, bool) {
					if g.OwnerID == nil {
						return uuid.Nil, false
					}
					return *g.OwnerID, true
				},
				func(o *owner) uuid.UUID { return o.ID },
				func(g *gadget, o *owner) { g.Owner = o },
			),
		},
		Scan: func(row Scanner) (*gadget, error) {
			var (
				g       gadget
				ownerID *uuid.UUID
			)
			if err := row.Scan(&g.ID, &g.Name, &g.Category, &ownerID, &g.CreatedAt); err != nil {
				return nil, err
			}
			g.OwnerID = ownerID
			return &g, nil
		},
		Values: func(g *gadget) map[string]interface{} {
			return map[string]interface{}{
				"id": g.ID, "name": g.Name, "category": g.Category,
				"owner_id": g.OwnerID, "created_at": g.CreatedAt,
			}
		},
		KeyOf: func(g *gadget) interface{} { return g.ID },
	})
}

type fixture struct {
	db      *DB
	owners  *Table[*owner]
	gadgets *Table[*gadget]
	outbox  *OutboxRepo
}

// newFixture crea 25 gadgets "Gadget 01".."Gadget 25"; los impares son categoría "a".
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := OpenInMemory(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.ExecSchema(ctx, OutboxSchema))
	require.NoError(t, db.ExecSchema(ctx, testSchema))

	f := &fixture{db: db, owners: newOwnerTable(db), outbox: NewOutboxRepo(db)}
	f.gadgets = newGadgetTable(db, f.owners)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 25; i++ {
		category := "b"
		if i%2 == 1 {
			category = "a"
		}
		g := &gadget{
			ID:        uuid.New(),
			Name:      fmt.Sprintf("Gadget %02d", i),
			Category:  category,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, f.gadgets.Insert(ctx, g, nil))
	}
	return f
}

// ---------------- Paginación sobre SQL ----------------

func TestTable_PaginateFirstPage(t *testing.T) {
	f := newFixture(t)

	res, err := pagination.Paginate[*gadget, sharedDomain.Criteria](context.Background(), f.gadgets,
		pagination.Request[sharedDomain.Criteria]{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Len(t, res.Data, 10)
	assert.Equal(t, pagination.Meta{Total: 25, Page: 1, Limit: 10, TotalPages: 3, HasNext: true}, res.Meta)
	assert.Equal(t, "Gadget 01", res.Data[0].Name)
	assert.Equal(t, "Gadget 10", res.Data[9].Name)
}

func TestTable_PaginateLastPageAndPastTheEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	last, err := pagination.Paginate[*gadget, sharedDomain.Criteria](ctx, f.gadgets,
		pagination.Request[sharedDomain.Criteria]{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, last.Data, 5)
	assert.Equal(t, "Gadget 21", last.Data[0].Name)

	past, err := pagination.Paginate[*gadget, sharedDomain.Criteria](ctx, f.gadgets,
		pagination.Request[sharedDomain.Criteria]{Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, past.Data)
	assert.NotNil(t, past.Data)
	assert.False(t, past.Meta.HasNext)
}

func TestTable_OrderByDescending(t *testing.T) {
	f := newFixture(t)

	items, err := f.gadgets.FindMany(context.Background(), pagination.FindArgs[sharedDomain.Criteria]{
		OrderBy: []sharedQuery.Sort{sharedQuery.Desc("created_at")},
		Take:    3,
	})

	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Gadget 25", items[0].Name)
	assert.Equal(t, "Gadget 23", items[2].Name)
}

// ---------------- Filtros ----------------

func TestTable_SearchIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)

	n, err := f.gadgets.Count(context.Background(), sharedDomain.Search("GADGET 1", "name", "category"))

	require.NoError(t, err)
	assert.Equal(t, 10, n) // Gadget 10..19
}

func TestTable_SearchTreatsWildcardsLiterally(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, name := range []string{"100% cotton", `back\slash`} {
		require.NoError(t, f.gadgets.Insert(ctx, &gadget{
			ID: uuid.New(), Name: name, Category: "c", CreatedAt: time.Now().UTC(),
		}, nil))
	}

	n, err := f.gadgets.Count(ctx, sharedDomain.Search("_", "name"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = f.gadgets.Count(ctx, sharedDomain.Search(`\`, "name"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	res, err := pagination.Paginate[*gadget, sharedDomain.Criteria](ctx, f.gadgets,
		pagination.Request[sharedDomain.Criteria]{Filter: sharedDomain.Search("%", "name")})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Meta.Total)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "100% cotton", res.Data[0].Name)
}

func TestTable_EmptySearchMatchesEverything(t *testing.T) {
	f := newFixture(t)

	n, err := f.gadgets.Count(context.Background(), sharedDomain.Search("  ", "name"))

	require.NoError(t, err)
	assert.Equal(t, 25, n)
}

func TestTable_AndOrCombination(t *testing.T) {
	f := newFixture(t)

	crit := sharedDomain.And(
		sharedDomain.Eq("category", "a"),
		sharedDomain.Or(
			sharedDomain.Eq("name", "Gadget 01"),
			sharedDomain.Eq("name", "Gadget 02"),
		),
	)
	items, err := f.gadgets.FindMany(context.Background(), pagination.FindArgs[sharedDomain.Criteria]{Filter: crit})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Gadget 01", items[0].Name)
}

func TestTable_InFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	n, err := f.gadgets.Count(ctx, sharedDomain.In("name", "Gadget 03", "Gadget 04", "nope"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = f.gadgets.Count(ctx, sharedDomain.In("name"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTable_NullFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	withoutOwner, err := f.gadgets.Count(ctx, sharedDomain.Eq("owner", nil))
	require.NoError(t, err)
	assert.Equal(t, 25, withoutOwner)

	withOwner, err := f.gadgets.Count(ctx, sharedDomain.Criterion{Field: "owner", Op: sharedDomain.OpNeq, Value: nil})
	require.NoError(t, err)
	assert.Equal(t, 0, withOwner)
}

func TestTable_UnknownFieldsAreRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.gadgets.Count(ctx, sharedDomain.Eq("password", "x"))
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidField)

	_, err = f.gadgets.FindMany(ctx, pagination.FindArgs[sharedDomain.Criteria]{
		OrderBy: []sharedQuery.Sort{sharedQuery.Asc("name; DROP TABLE gadgets")},
	})
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidField)

	_, err = f.gadgets.FindMany(ctx, pagination.FindArgs[sharedDomain.Criteria]{Include: []string{"religion"}})
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidField)
}

func TestTable_StoreFailurePropagatesThroughPaginate(t *testing.T) {
	f := newFixture(t)

	res, err := pagination.Paginate[*gadget, sharedDomain.Criteria](context.Background(), f.gadgets,
		pagination.Request[sharedDomain.Criteria]{Filter: sharedDomain.Eq("nope", 1)})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidField)
}

// ---------------- Includes ----------------

func TestTable_IncludeLoadsBelongsTo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o := &owner{ID: uuid.New(), Name: "Rina"}
	require.NoError(t, f.owners.Insert(ctx, o, nil))

	g, err := f.gadgets.FindOne(ctx, sharedDomain.Eq("name", "Gadget 05"))
	require.NoError(t, err)
	g.OwnerID = &o.ID
	require.NoError(t, f.gadgets.Update(ctx, g, nil))

	withOwner, err := f.gadgets.Get(ctx, g.ID, "owner")
	require.NoError(t, err)
	require.NotNil(t, withOwner.Owner)
	assert.Equal(t, "Rina", withOwner.Owner.Name)

	withoutInclude, err := f.gadgets.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Nil(t, withoutInclude.Owner)

	page, err := f.gadgets.FindMany(ctx, pagination.FindArgs[sharedDomain.Criteria]{Include: []string{"owner"}, Take: 10})
	require.NoError(t, err)
	attached := 0
	for _, it := range page {
		if it.Owner != nil {
			attached++
		}
	}
	assert.Equal(t, 1, attached)
}

// ---------------- Escritura ----------------

func TestTable_GetNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.gadgets.Get(context.Background(), uuid.New())

	assert.ErrorIs(t, err, sharedDomain.ErrNotFound)
	assert.EqualError(t, err, "gadget not found")
}

func TestTable_DuplicateInsertIsMapped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	evt := sharedDomain.NewOutboxEvent("gadget", uuid.NewString(), "gadget.created", map[string]string{"name": "Gadget 01"})

	err := f.gadgets.Insert(ctx, &gadget{ID: uuid.New(), Name: "Gadget 01", Category: "a", CreatedAt: time.Now().UTC()}, &evt)

	var dup *sharedDomain.DuplicateError
	require.True(t, errors.As(err, &dup), "got %v", err)
	assert.Equal(t, "name", dup.Field)
	assert.ErrorIs(t, err, sharedDomain.ErrAlreadyExists)
	assert.EqualError(t, err, "name can't be duplicated")

	// La transacción se deshizo: no queda evento huérfano.
	pending, err := f.outbox.FetchPendingOutbox(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestTable_UpdateAndDeleteMissingRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.gadgets.Update(ctx, &gadget{ID: uuid.New(), Name: "ghost", Category: "a", CreatedAt: time.Now().UTC()}, nil)
	assert.ErrorIs(t, err, sharedDomain.ErrNotFound)

	err = f.gadgets.Delete(ctx, uuid.New(), nil)
	assert.ErrorIs(t, err, sharedDomain.ErrNotFound)
}

func TestTable_WritesOutboxInSameTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g := &gadget{ID: uuid.New(), Name: "Gadget 99", Category: "z", CreatedAt: time.Now().UTC()}
	created := sharedDomain.NewOutboxEvent("gadget", g.ID.String(), "gadget.created", g)
	require.NoError(t, f.gadgets.Insert(ctx, g, &created))

	deleted := sharedDomain.NewOutboxEvent("gadget", g.ID.String(), "gadget.deleted", map[string]string{"id": g.ID.String()})
	require.NoError(t, f.gadgets.Delete(ctx, g.ID, &deleted))

	pending, err := f.outbox.FetchPendingOutbox(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, created.ID, pending[0].ID)
	assert.Equal(t, "gadget.created", pending[0].EventType)
	assert.Equal(t, g.ID.String(), pending[0].AggregateID)
	payload, ok := pending[0].Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Gadget 99", payload["Name"])

	require.NoError(t, f.outbox.MarkOutboxProcessed(ctx, created.ID))
	pending, err = f.outbox.FetchPendingOutbox(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "gadget.deleted", pending[0].EventType)

	assert.Error(t, f.outbox.MarkOutboxProcessed(ctx, uuid.New()))
}

func TestTable_UpsertInsertsThenOverwrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	g := &gadget{ID: uuid.New(), Name: "Upserted", Category: "a", CreatedAt: created}

	require.NoError(t, f.gadgets.Upsert(ctx, g, nil))

	g.Category = "b"
	g.CreatedAt = time.Now().UTC()
	require.NoError(t, f.gadgets.Upsert(ctx, g, nil))

	got, err := f.gadgets.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Category)
	assert.True(t, got.CreatedAt.Equal(created), "created_at se conserva")
}
