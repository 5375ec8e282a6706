package pagination

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/hexadmin/internal/shared/infra/platform/query"
)

// ---------------- Handle falso ----------------

type intFilter func(int) bool

type fakeHandle struct {
	items    []int
	countErr error
	findErr  error
	blockFor time.Duration // FindMany espera hasta ctx.Done o este tiempo

	counts atomic.Int32
	finds  atomic.Int32

	mu       sync.Mutex
	lastArgs FindArgs[intFilter]
	findCtx  error
}

func newFakeHandle(total int) *fakeHandle {
	items := make([]int, total)
	for i := range items {
		items[i] = i + 1
	}
	return &fakeHandle{items: items}
}

func (h *fakeHandle) matching(f intFilter) []int {
	var out []int
	for _, it := range h.items {
		if f == nil || f(it) {
			out = append(out, it)
		}
	}
	return out
}

func (h *fakeHandle) Count(ctx context.Context, f intFilter) (int, error) {
	h.counts.Add(1)
	if h.countErr != nil {
		return 0, h.countErr
	}
	return len(h.matching(f)), nil
}

func (h *fakeHandle) FindMany(ctx context.Context, args FindArgs[intFilter]) ([]int, error) {
	h.finds.Add(1)
	h.mu.Lock()
	h.lastArgs = args
	h.mu.Unlock()

	if h.blockFor > 0 {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			h.findCtx = ctx.Err()
			h.mu.Unlock()
			return nil, ctx.Err()
		case <-time.After(h.blockFor):
		}
	}
	if h.findErr != nil {
		return nil, h.findErr
	}

	rows := h.matching(args.Filter)
	if args.Skip >= len(rows) {
		return []int{}, nil
	}
	end := args.Skip + args.Take
	if end > len(rows) {
		end = len(rows)
	}
	return rows[args.Skip:end], nil
}

// ---------------- Escenarios ----------------

func TestPaginate_FirstPage(t *testing.T) {
	h := newFakeHandle(25)

	res, err := Paginate[int, intFilter](context.Background(), h, Request[intFilter]{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Len(t, res.Data, 10)
	assert.Equal(t, Meta{Total: 25, Page: 1, Limit: 10, TotalPages: 3, HasNext: true, HasPrev: false}, res.Meta)
	assert.Equal(t, 1, res.Data[0])
}

func TestPaginate_LastPartialPage(t *testing.T) {
	h := newFakeHandle(25)

	res, err := Paginate[int, intFilter](context.Background(), h, Request[intFilter]{Page: 3, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, []int{21, 22, 23, 24, 25}, res.Data)
	assert.False(t, res.Meta.HasNext)
	assert.True(t, res.Meta.HasPrev)
}

func TestPaginate_EmptyStore(t *testing.T) {
	h := newFakeHandle(0)

	res, err := Paginate[int, intFilter](context.Background(), h, Request[intFilter]{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.NotNil(t, res.Data, "Data nunca debe ser nil")
	assert.Empty(t, res.Data)
	assert.Equal(t, Meta{Total: 0, Page: 1, Limit: 10, TotalPages: 0}, res.Meta)
}

func TestPaginate_PastTheEndIsEmpty(t *testing.T) {
	h := newFakeHandle(25)

	res, err := Paginate[int, intFilter](context.Background(), h, Request[intFilter]{Page: 7, Limit: 10})

	require.NoError(t, err)
	assert.Empty(t, res.Data)
	assert.False(t, res.Meta.HasNext)
	assert.True(t, res.Meta.HasPrev)
	assert.Equal(t, 3, res.Meta.TotalPages)
}

func TestPaginate_DefaultsWhenMissing(t *testing.T) {
	h := newFakeHandle(42)

	empty, err := Paginate[int, intFilter](context.Background(), h, Request[intFilter]{})
	require.NoError(t, err)
	explicit, err := Paginate[int, intFilter](context.Background(), h, Request[intFilter]{Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, explicit, empty)
}

func TestPaginate_NonPositiveValuesFallBack(t *testing.T) {
	h := newFakeHandle(15)

	res, err := Paginate[int, intFilter](context.Background(), h, Request[intFilter]{Page: -4, Limit: 0})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Meta.Page)
	assert.Equal(t, DefaultLimit, res.Meta.Limit)
	assert.Equal(t, 2, res.Meta.TotalPages)
	assert.Len(t, res.Data, 10)
}

// Recorre una rejilla de total/limit/page y comprueba las leyes de la meta.
func TestPaginate_PageMathProperties(t *testing.T) {
	ctx := context.Background()
	for total := 0; total <= 23; total++ {
		h := newFakeHandle(total)
		for limit := 1; limit <= 7; limit++ {
			wantPages := (total + limit - 1) / limit
			for page := 1; page <= wantPages+2; page++ {
				res, err := Paginate[int, intFilter](ctx, h, Request[intFilter]{Page: page, Limit: limit})
				require.NoError(t, err)

				m := res.Meta
				assert.Equal(t, wantPages, m.TotalPages, "total=%d limit=%d", total, limit)
				assert.Equal(t, total == 0, m.TotalPages == 0)
				assert.Equal(t, page > 1, m.HasPrev)
				assert.Equal(t, page < m.TotalPages, m.HasNext)
				assert.LessOrEqual(t, len(res.Data), limit)

				if page <= wantPages {
					want := total - (page-1)*limit
					if want > limit {
						want = limit
					}
					assert.Len(t, res.Data, want, "total=%d limit=%d page=%d", total, limit, page)
				} else {
					assert.Empty(t, res.Data)
					assert.False(t, m.HasNext)
				}
			}
		}
	}
}

func TestPaginate_Idempotent(t *testing.T) {
	h := newFakeHandle(31)
	req := Request[intFilter]{Page: 2, Limit: 4, Filter: func(i int) bool { return i%2 == 1 }}

	first, err := Paginate(context.Background(), Handle[int, intFilter](h), req)
	require.NoError(t, err)
	second, err := Paginate(context.Background(), Handle[int, intFilter](h), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 16, first.Meta.Total)
}

func TestPaginate_ForwardsQueryUnchanged(t *testing.T) {
	h := newFakeHandle(50)
	include := []string{"user", "tags"}
	order := []query.Sort{query.Desc("updated_at"), query.Asc("id")}

	_, err := Paginate[int, intFilter](context.Background(), h, Request[intFilter]{
		Page:    3,
		Limit:   5,
		Filter:  func(i int) bool { return i > 10 },
		Include: include,
		OrderBy: order,
	})
	require.NoError(t, err)

	h.mu.Lock()
	defer h.mu.Unlock()
	assert.Equal(t, include, h.lastArgs.Include)
	assert.Equal(t, order, h.lastArgs.OrderBy)
	assert.Equal(t, 10, h.lastArgs.Skip)
	assert.Equal(t, 5, h.lastArgs.Take)
	require.NotNil(t, h.lastArgs.Filter)
	assert.True(t, h.lastArgs.Filter(11))
	assert.Equal(t, int32(1), h.counts.Load())
	assert.Equal(t, int32(1), h.finds.Load())
}

func TestPaginate_TruncatesOversizedStorePage(t *testing.T) {
	h := &oversizedHandle{}

	res, err := Paginate[int, intFilter](context.Background(), h, Request[intFilter]{Page: 1, Limit: 3})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, res.Data)
}

type oversizedHandle struct{}

func (oversizedHandle) Count(context.Context, intFilter) (int, error) { return 8, nil }
func (oversizedHandle) FindMany(context.Context, FindArgs[intFilter]) ([]int, error) {
	return []int{1, 2, 3, 4, 5}, nil
}

// ---------------- Errores ----------------

func TestPaginate_CountFailureReturnsNoPage(t *testing.T) {
	boom := errors.New("connection refused")
	h := newFakeHandle(10)
	h.countErr = boom

	res, err := Paginate[int, intFilter](context.Background(), h, Request[intFilter]{})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)
}

func TestPaginate_FindFailureReturnsNoPage(t *testing.T) {
	boom := errors.New("malformed filter")
	h := newFakeHandle(10)
	h.findErr = boom

	res, err := Paginate[int, intFilter](context.Background(), h, Request[intFilter]{})

	assert.Nil(t, res)
	assert.Equal(t, boom, err)
}

func TestPaginate_FailureCancelsSiblingRead(t *testing.T) {
	boom := errors.New("count failed")
	h := newFakeHandle(10)
	h.countErr = boom
	h.blockFor = 5 * time.Second

	start := time.Now()
	res, err := Paginate[int, intFilter](context.Background(), h, Request[intFilter]{})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)
	assert.Less(t, time.Since(start), 2*time.Second, "FindMany debería abandonarse al fallar Count")
	h.mu.Lock()
	assert.ErrorIs(t, h.findCtx, context.Canceled)
	h.mu.Unlock()
}

func TestPaginate_CallerTimeoutAbandonsReads(t *testing.T) {
	h := newFakeHandle(10)
	h.blockFor = 5 * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	res, err := Paginate[int, intFilter](ctx, h, Request[intFilter]{})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPaginate_AlreadyCancelledContext(t *testing.T) {
	h := newFakeHandle(10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Paginate[int, intFilter](ctx, h, Request[intFilter]{})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), h.counts.Load())
}

func TestPaginate_NilHandle(t *testing.T) {
	res, err := Paginate[int, intFilter](context.Background(), nil, Request[intFilter]{})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrNilHandle)
}

// ---------------- Concurrencia ----------------

func TestPaginate_ConcurrentCallsOnSameHandle(t *testing.T) {
	h := newFakeHandle(100)
	var wg sync.WaitGroup
	errs := make(chan error, 64)

	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			res, err := Paginate[int, intFilter](context.Background(), h, Request[intFilter]{Page: page, Limit: 10})
			if err != nil {
				errs <- err
				return
			}
			if res.Meta.Total != 100 {
				errs <- errors.New("unexpected total")
			}
		}(i%12 + 1)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(64), h.counts.Load())
}

// ---------------- Helpers ----------------

func TestParseRequest(t *testing.T) {
	cases := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{"vacío", "", "", 1, 10},
		{"numérico", "3", "25", 3, 25},
		{"no numérico", "abc", "x1", 1, 10},
		{"negativos", "-2", "-5", 1, 10},
		{"cero", "0", "0", 1, 10},
		{"espacios", " 2 ", " 4", 2, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := ParseRequest[string](tc.page, tc.limit, "filtro")
			assert.Equal(t, tc.wantPage, req.Page)
			assert.Equal(t, tc.wantLimit, req.Limit)
			assert.Equal(t, "filtro", req.Filter)
		})
	}
}

func TestNewMeta(t *testing.T) {
	assert.Equal(t, Meta{Total: 25, Page: 1, Limit: 10, TotalPages: 3, HasNext: true}, NewMeta(25, 1, 10))
	assert.Equal(t, Meta{Total: 10, Page: 1, Limit: 10, TotalPages: 1}, NewMeta(10, 1, 10))
	assert.Equal(t, Meta{Total: 11, Page: 2, Limit: 10, TotalPages: 2, HasPrev: true}, NewMeta(11, 2, 10))
	assert.Equal(t, Meta{Total: 0, Page: 1, Limit: 10}, NewMeta(-3, 1, 10))
}

func TestPaginate_HugePageDoesNotOverflow(t *testing.T) {
	h := newFakeHandle(5)

	res, err := Paginate[int, intFilter](context.Background(), h, Request[intFilter]{Page: int(^uint(0) >> 1), Limit: 10})

	require.NoError(t, err)
	assert.Empty(t, res.Data)
	h.mu.Lock()
	assert.GreaterOrEqual(t, h.lastArgs.Skip, 0)
	h.mu.Unlock()
}
