package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
	userDomain "github.com/davicafu/hexadmin/internal/user/domain"
)

// InMemoryUserRepo simula UserRepository con outbox incluido.
// Sólo entiende criterios de igualdad y LIKE sobre username/email/first_name/last_name.
type InMemoryUserRepo struct {
	Users  map[uuid.UUID]*userDomain.User
	Outbox []sharedDomain.OutboxEvent
	mu     sync.Mutex
}

var _ userDomain.UserRepository = (*InMemoryUserRepo)(nil)

func NewInMemoryUserRepo() *InMemoryUserRepo {
	return &InMemoryUserRepo{
		Users:  make(map[uuid.UUID]*userDomain.User),
		Outbox: []sharedDomain.OutboxEvent{},
	}
}

// Create con outbox
func (r *InMemoryUserRepo) Create(ctx context.Context, u *userDomain.User, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if field := r.conflict(u); field != "" {
		return &sharedDomain.DuplicateError{Field: field}
	}
	cp := *u
	r.Users[u.ID] = &cp
	r.Outbox = append(r.Outbox, evt)
	return nil
}

// GetByID
func (r *InMemoryUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.Users[id]
	if !ok {
		return nil, notFound()
	}
	cp := *u
	return &cp, nil
}

func (r *InMemoryUserRepo) FindByLogin(ctx context.Context, login string) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.Users {
		if u.Username == login || u.Email == login {
			cp := *u
			return &cp, nil
		}
	}
	return nil, notFound()
}

func (r *InMemoryUserRepo) ExistsBy(ctx context.Context, field, value string) (bool, error) {
	n, err := r.Count(ctx, sharedDomain.Eq(field, value))
	return n > 0, err
}

// Update con outbox
func (r *InMemoryUserRepo) Update(ctx context.Context, u *userDomain.User, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Users[u.ID]; !ok {
		return notFound()
	}
	if field := r.conflict(u); field != "" {
		return &sharedDomain.DuplicateError{Field: field}
	}
	cp := *u
	r.Users[u.ID] = &cp
	r.Outbox = append(r.Outbox, evt)
	return nil
}

// DeleteByID con outbox
func (r *InMemoryUserRepo) DeleteByID(ctx context.Context, id uuid.UUID, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Users[id]; !ok {
		return notFound()
	}
	delete(r.Users, id)
	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryUserRepo) Count(ctx context.Context, filter sharedDomain.Criteria) (int, error) {
	list, err := r.match(filter)
	return len(list), err
}

// FindMany ordena por username para que las páginas sean estables.
func (r *InMemoryUserRepo) FindMany(ctx context.Context, args pagination.FindArgs[sharedDomain.Criteria]) ([]*userDomain.User, error) {
	list, err := r.match(args.Filter)
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Username < list[j].Username })

	start := args.Skip
	if start > len(list) {
		return []*userDomain.User{}, nil
	}
	end := len(list)
	if args.Take > 0 && start+args.Take < end {
		end = start + args.Take
	}
	return list[start:end], nil
}

func (r *InMemoryUserRepo) match(filter sharedDomain.Criteria) ([]*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := []*userDomain.User{}
	for _, u := range r.Users {
		ok, err := evalUser(u, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			cp := *u
			list = append(list, &cp)
		}
	}
	return list, nil
}

// evalUser recorre el árbol AND/OR; los compuestos vacíos no filtran.
func evalUser(u *userDomain.User, c sharedDomain.Criteria) (bool, error) {
	switch crit := c.(type) {
	case nil:
		return true, nil
	case sharedDomain.Criterion:
		return matchUser(u, crit)
	case sharedDomain.CompositeCriteria:
		matched, seen := 0, 0
		for _, child := range crit.Criterias {
			if child == nil || len(child.ToConditions()) == 0 {
				continue
			}
			seen++
			ok, err := evalUser(u, child)
			if err != nil {
				return false, err
			}
			if ok {
				matched++
			}
		}
		if seen == 0 {
			return true, nil
		}
		if crit.Operator == sharedDomain.OpOr {
			return matched > 0, nil
		}
		return matched == seen, nil
	default:
		for _, cond := range c.ToConditions() {
			if ok, err := matchUser(u, cond); err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}

func matchUser(u *userDomain.User, c sharedDomain.Criterion) (bool, error) {
	var field string
	switch c.Field {
	case "username":
		field = u.Username
	case "email":
		field = u.Email
	case "first_name":
		field = u.FirstName
	case "last_name":
		field = u.LastName
	default:
		return false, sharedDomain.ErrInvalidField
	}

	value, _ := c.Value.(string)
	switch c.Op {
	case sharedDomain.OpEq:
		return field == value, nil
	case sharedDomain.OpLike, sharedDomain.OpILike:
		needle := unescapeLike(strings.TrimSuffix(strings.TrimPrefix(value, "%"), "%"))
		return strings.Contains(strings.ToLower(field), strings.ToLower(needle)), nil
	default:
		return false, sharedDomain.ErrInvalidField
	}
}

// unescapeLike deshace sharedDomain.EscapeLike sobre el término de Contains.
func unescapeLike(term string) string {
	var b strings.Builder
	escaped := false
	for _, r := range term {
		if !escaped && r == sharedDomain.LikeEscape {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

func (r *InMemoryUserRepo) conflict(u *userDomain.User) string {
	for id, other := range r.Users {
		if id == u.ID {
			continue
		}
		if other.Username == u.Username {
			return "username"
		}
		if other.Email == u.Email {
			return "email"
		}
	}
	return ""
}

func notFound() error {
	return &notFoundError{}
}

type notFoundError struct{}

func (e *notFoundError) Error() string { return "user not found" }
func (e *notFoundError) Unwrap() error { return sharedDomain.ErrNotFound }

// FakeHasher evita el coste de bcrypt en los tests.
type FakeHasher struct{}

var _ userDomain.PasswordHasher = FakeHasher{}

func (FakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (FakeHasher) Compare(hash, plain string) bool { return hash == "hashed:"+plain }
