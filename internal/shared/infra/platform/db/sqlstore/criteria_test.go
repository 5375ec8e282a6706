package sqlstore

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	sharedQuery "github.com/davicafu/hexadmin/internal/shared/infra/platform/query"
)

var productFields = map[string]string{
	"id": "id", "name": "name", "description": "description", "user_id": "user_id",
}

// statusCriteria imita un criterio propio de dominio.
type statusCriteria struct{ status string }

func (c statusCriteria) ToConditions() []sharedDomain.Criterion {
	return []sharedDomain.Criterion{{Field: "name", Op: sharedDomain.OpEq, Value: c.status}}
}

func TestToSqlizer(t *testing.T) {
	cases := []struct {
		name     string
		criteria sharedDomain.Criteria
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:     "búsqueda libre",
			criteria: sharedDomain.Search("phone", "name", "description"),
			wantSQL:  "(LOWER(name) LIKE LOWER(?) ESCAPE '\\' OR LOWER(description) LIKE LOWER(?) ESCAPE '\\')",
			wantArgs: []interface{}{"%phone%", "%phone%"},
		},
		{
			name:     "comodines escapados",
			criteria: sharedDomain.Search(`50%_off\`, "name"),
			wantSQL:  "LOWER(name) LIKE LOWER(?) ESCAPE '\\'",
			wantArgs: []interface{}{`%50\%\_off\\%`},
		},
		{
			name: "and anidado con or",
			criteria: sharedDomain.And(
				sharedDomain.Eq("user_id", "u1"),
				sharedDomain.Search("x", "name"),
			),
			wantSQL:  "(user_id = ? AND LOWER(name) LIKE LOWER(?) ESCAPE '\\')",
			wantArgs: []interface{}{"u1", "%x%"},
		},
		{
			name:     "and con hijos vacíos se simplifica",
			criteria: sharedDomain.And(sharedDomain.Search(""), nil, sharedDomain.Eq("id", 7)),
			wantSQL:  "id = ?",
			wantArgs: []interface{}{7},
		},
		{
			name:     "criterio de dominio",
			criteria: statusCriteria{status: "draft"},
			wantSQL:  "name = ?",
			wantArgs: []interface{}{"draft"},
		},
		{
			name:     "in",
			criteria: sharedDomain.In("id", 1, 2, 3),
			wantSQL:  "id IN (?,?,?)",
			wantArgs: []interface{}{1, 2, 3},
		},
		{
			name:     "comparaciones",
			criteria: sharedDomain.And(sharedDomain.Criterion{Field: "id", Op: sharedDomain.OpGte, Value: 10}, sharedDomain.Criterion{Field: "id", Op: sharedDomain.OpLt, Value: 20}),
			wantSQL:  "(id >= ? AND id < ?)",
			wantArgs: []interface{}{10, 20},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := ToSqlizer(tc.criteria, productFields)
			require.NoError(t, err)
			require.NotNil(t, s)

			sql, args, err := s.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tc.wantSQL, sql)
			assert.Equal(t, tc.wantArgs, args)
		})
	}
}

func TestToSqlizer_EmptyMeansNoFilter(t *testing.T) {
	for _, c := range []sharedDomain.Criteria{nil, sharedDomain.And(), sharedDomain.Or(), sharedDomain.Search("", "name")} {
		s, err := ToSqlizer(c, productFields)
		assert.NoError(t, err)
		assert.Nil(t, s)
	}
}

func TestToSqlizer_RejectsUnknownFieldAndOperator(t *testing.T) {
	_, err := ToSqlizer(sharedDomain.Or(sharedDomain.Eq("name", "a"), sharedDomain.Eq("password", "b")), productFields)
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidField)
	assert.Contains(t, err.Error(), "password")

	_, err = ToSqlizer(sharedDomain.Criterion{Field: "name", Op: "REGEXP", Value: "x"}, productFields)
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidField)
}

func TestOrderClauses(t *testing.T) {
	clauses, err := OrderClauses([]sharedQuery.Sort{sharedQuery.Desc("name")}, productFields, "id")
	require.NoError(t, err)
	assert.Equal(t, []string{"name DESC", "id ASC"}, clauses)

	clauses, err = OrderClauses([]sharedQuery.Sort{sharedQuery.Desc("id")}, productFields, "id")
	require.NoError(t, err)
	assert.Equal(t, []string{"id DESC"}, clauses)

	_, err = OrderClauses([]sharedQuery.Sort{sharedQuery.Asc("1; --")}, productFields, "id")
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidField)
}

func TestMapError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Detail: "Key (email)=(a@b.c) already exists."}
	err := mapError(pgErr)

	var dup *sharedDomain.DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "email", dup.Field)
	assert.ErrorIs(t, err, sharedDomain.ErrAlreadyExists)

	other := errors.New("connection reset")
	assert.Equal(t, other, mapError(other))
	assert.Nil(t, mapError(nil))
}

func TestSqliteDuplicateField(t *testing.T) {
	assert.Equal(t, "name", sqliteDuplicateField("constraint failed: UNIQUE constraint failed: products.name (2067)"))
	assert.Equal(t, "username", sqliteDuplicateField("UNIQUE constraint failed: users.username, users.email"))
	assert.Equal(t, "", sqliteDuplicateField("disk I/O error"))
}
