package sqlrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/db/sqlstore"
	teamDomain "github.com/davicafu/hexadmin/internal/team/domain"
)

var Schema = sqlstore.Schema{
	SQLite: []string{`
    CREATE TABLE IF NOT EXISTS teams (
        id TEXT PRIMARY KEY,
        full_name TEXT NOT NULL,
        title TEXT NOT NULL,
        email TEXT NOT NULL,
        phone TEXT NOT NULL,
        gender INTEGER NULL,
        category TEXT NULL,
        avatar TEXT NULL,
        social TEXT NULL,
        created_at DATETIME NOT NULL,
        updated_at DATETIME NOT NULL
    )`},
	Postgres: []string{`
    CREATE TABLE IF NOT EXISTS teams (
        id UUID PRIMARY KEY,
        full_name VARCHAR(191) NOT NULL,
        title VARCHAR(191) NOT NULL,
        email VARCHAR(100) NOT NULL,
        phone VARCHAR(30) NOT NULL,
        gender SMALLINT NULL,
        category VARCHAR(100) NULL,
        avatar VARCHAR(191) NULL,
        social JSONB NULL,
        created_at TIMESTAMPTZ NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL
    )`},
}

type TeamRepo struct {
	*sqlstore.Table[*teamDomain.Member]
}

var _ teamDomain.TeamRepository = (*TeamRepo)(nil)

func NewTeamRepo(db *sqlstore.DB) *TeamRepo {
	return &TeamRepo{Table: sqlstore.NewTable(db, sqlstore.Mapper[*teamDomain.Member]{
		Entity: "team member",
		Table:  "teams",
		Columns: []string{
			"id", "full_name", "title", "email", "phone", "gender",
			"category", "avatar", "social", "created_at", "updated_at",
		},
		DefaultOrder: teamDomain.DefaultOrder,
		Scan:         scanMember,
		Values: func(m *teamDomain.Member) map[string]interface{} {
			return map[string]interface{}{
				"id":         m.ID,
				"full_name":  m.FullName,
				"title":      m.Title,
				"email":      m.Email,
				"phone":      m.Phone,
				"gender":     m.Gender,
				"category":   m.Category,
				"avatar":     m.Avatar,
				"social":     socialValue(m.Social),
				"created_at": m.CreatedAt,
				"updated_at": m.UpdatedAt,
			}
		},
		KeyOf: func(m *teamDomain.Member) interface{} { return m.ID },
	})}
}

func scanMember(row sqlstore.Scanner) (*teamDomain.Member, error) {
	var (
		m      teamDomain.Member
		gender sql.NullInt64
		social sql.NullString
	)
	if err := row.Scan(&m.ID, &m.FullName, &m.Title, &m.Email, &m.Phone, &gender,
		&m.Category, &m.Avatar, &social, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if gender.Valid {
		g := int(gender.Int64)
		m.Gender = &g
	}
	if social.Valid && social.String != "" {
		if err := json.Unmarshal([]byte(social.String), &m.Social); err != nil {
			return nil, fmt.Errorf("invalid social JSON for team member %s: %w", m.ID, err)
		}
	}
	return &m, nil
}

// socialValue serializa el JSON; nil se guarda como NULL.
func socialValue(social map[string]interface{}) interface{} {
	if social == nil {
		return nil
	}
	data, err := json.Marshal(social)
	if err != nil {
		return nil
	}
	return string(data)
}

func InitSchema(ctx context.Context, db *sqlstore.DB) error {
	return db.ExecSchema(ctx, Schema)
}

func (r *TeamRepo) GetByID(ctx context.Context, id uuid.UUID) (*teamDomain.Member, error) {
	return r.Get(ctx, id)
}

func (r *TeamRepo) Create(ctx context.Context, m *teamDomain.Member, evt sharedDomain.OutboxEvent) error {
	return r.Insert(ctx, m, &evt)
}

func (r *TeamRepo) Update(ctx context.Context, m *teamDomain.Member, evt sharedDomain.OutboxEvent) error {
	return r.Table.Update(ctx, m, &evt)
}

func (r *TeamRepo) DeleteByID(ctx context.Context, id uuid.UUID, evt sharedDomain.OutboxEvent) error {
	return r.Delete(ctx, id, &evt)
}
