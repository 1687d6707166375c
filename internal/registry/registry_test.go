package registry

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"evalgo.org/vlanreg/models"
)

func fixedClock() func() time.Time {
	t0 := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t0 }
}

func TestCreate_Defaults(t *testing.T) {
	r := New(WithClock(fixedClock()))

	vlan, total, err := r.Create(CreateRequest{ID: 100})
	require.NoError(t, err)

	assert.Equal(t, 1, total)
	assert.Equal(t, 100, vlan.ID)
	assert.Equal(t, "VLAN_100", vlan.Name)
	assert.Equal(t, models.StatusActive, vlan.Status)
	assert.Equal(t, fixedClock()(), vlan.CreatedAt)
}

func TestCreate_WithName(t *testing.T) {
	r := New()

	vlan, _, err := r.Create(CreateRequest{ID: 10, Name: "mikrotik-mgmt"})
	require.NoError(t, err)
	assert.Equal(t, "mikrotik-mgmt", vlan.Name)
}

func TestCreate_OutOfRange(t *testing.T) {
	r := New()

	for _, id := range []int64{0, 1, 4095, -5, 5000} {
		_, _, err := r.Create(CreateRequest{ID: id})
		require.Error(t, err, "id %d", id)
		assert.True(t, errors.Is(err, ErrOutOfRange), "id %d: %v", id, err)

		var rangeErr *RangeError
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, id, rangeErr.ID)
		assert.Equal(t, 2, rangeErr.Min)
		assert.Equal(t, 4094, rangeErr.Max)
	}
	assert.Equal(t, 0, r.Count())
}

func TestCreate_Conflict(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := New(WithClock(func() time.Time { return clock }))

	first, _, err := r.Create(CreateRequest{ID: 100, Name: "first"})
	require.NoError(t, err)

	clock = clock.Add(time.Hour)
	_, _, err = r.Create(CreateRequest{ID: 100, Name: "second"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, first, conflict.Existing)

	stored, err := r.Get(100)
	require.NoError(t, err)
	assert.Equal(t, first, stored)
	assert.Equal(t, 1, r.Count())
}

func TestCreate_CustomBounds(t *testing.T) {
	r := New(WithBounds(100, 199))

	lo, hi := r.Bounds()
	assert.Equal(t, 100, lo)
	assert.Equal(t, 199, hi)

	_, _, err := r.Create(CreateRequest{ID: 150})
	assert.NoError(t, err)

	_, _, err = r.Create(CreateRequest{ID: 200})
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestCreate_NotifiesListeners(t *testing.T) {
	var got []models.VLAN
	var totals []int
	r := New(WithListener(func(v models.VLAN, total int) {
		got = append(got, v)
		totals = append(totals, total)
	}))

	_, _, err := r.Create(CreateRequest{ID: 7})
	require.NoError(t, err)
	_, _, err = r.Create(CreateRequest{ID: 7})
	require.Error(t, err)
	_, _, err = r.Create(CreateRequest{ID: 8})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, 7, got[0].ID)
	assert.Equal(t, 8, got[1].ID)
	assert.Equal(t, []int{1, 2}, totals)
}

func TestGet_NotFound(t *testing.T) {
	r := New()

	_, err := r.Get(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	r := New()

	vlans, total := r.List()
	assert.Empty(t, vlans)
	assert.Equal(t, 0, total)

	for _, id := range []int64{300, 20, 4094, 2} {
		_, _, err := r.Create(CreateRequest{ID: id})
		require.NoError(t, err)
	}

	vlans, total = r.List()
	assert.Equal(t, 4, total)
	require.Len(t, vlans, 4)
	assert.Equal(t, []int{2, 20, 300, 4094}, []int{vlans[0].ID, vlans[1].ID, vlans[2].ID, vlans[3].ID})
}

func TestHealth(t *testing.T) {
	r := New(WithClock(fixedClock()))
	_, _, err := r.Create(CreateRequest{ID: 5})
	require.NoError(t, err)

	h := r.Health()
	assert.Equal(t, "healthy", h.Status)
	assert.Equal(t, 1, h.TotalVLANs)
	assert.NotZero(t, h.Memory.SysBytes)
	assert.Positive(t, h.Memory.Goroutines)
	assert.Equal(t, "0s", h.Uptime)
	assert.Equal(t, fixedClock()(), h.Timestamp)
}

func TestCreate_ConcurrentSameID(t *testing.T) {
	r := New()

	const workers = 32
	var (
		wg        sync.WaitGroup
		created   atomic.Int32
		conflicts atomic.Int32
		start     = make(chan struct{})
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, _, err := r.Create(CreateRequest{ID: 1234})
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, ErrConflict):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
	assert.Equal(t, int32(workers-1), conflicts.Load())
	assert.Equal(t, 1, r.Count())
}

func TestCreate_ConcurrentDistinctIDs(t *testing.T) {
	r := New()

	var wg sync.WaitGroup
	for id := 2; id <= 401; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_, _, err := r.Create(CreateRequest{ID: int64(id)})
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	vlans, total := r.List()
	assert.Equal(t, 400, total)
	assert.Len(t, vlans, 400)
}

func TestProperty_CreateThenGet(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := New()
		id := rapid.IntRange(models.MinVLANID, models.MaxVLANID).Draw(t, "id")

		created, _, err := r.Create(CreateRequest{ID: int64(id)})
		if err != nil {
			t.Fatalf("create %d: %v", id, err)
		}

		got, err := r.Get(id)
		if err != nil {
			t.Fatalf("get %d: %v", id, err)
		}
		if got != created || got.ID != id || got.Status != models.StatusActive {
			t.Fatalf("get %d returned %+v, created %+v", id, got, created)
		}
		if got.Name != models.DefaultName(id) {
			t.Fatalf("name = %q", got.Name)
		}
	})
}

func TestProperty_OutOfRangeRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := New()
		id := rapid.OneOf(
			rapid.Int64Range(-1_000_000, models.MinVLANID-1),
			rapid.Int64Range(models.MaxVLANID+1, 1_000_000),
		).Draw(t, "id")

		_, _, err := r.Create(CreateRequest{ID: id})
		if !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("create %d: got %v, want ErrOutOfRange", id, err)
		}
		if r.Count() != 0 {
			t.Fatalf("registry not empty after rejected create")
		}
	})
}

func TestProperty_ListMatchesDistinctCreates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := New()
		ids := rapid.SliceOf(rapid.IntRange(models.MinVLANID, models.MaxVLANID)).Draw(t, "ids")

		distinct := make(map[int]bool)
		for _, id := range ids {
			_, _, err := r.Create(CreateRequest{ID: int64(id)})
			switch {
			case distinct[id]:
				if !errors.Is(err, ErrConflict) {
					t.Fatalf("duplicate %d: got %v, want ErrConflict", id, err)
				}
			case err != nil:
				t.Fatalf("create %d: %v", id, err)
			}
			distinct[id] = true
		}

		vlans, total := r.List()
		if total != len(distinct) || len(vlans) != len(distinct) {
			t.Fatalf("list returned %d/%d records, want %d", len(vlans), total, len(distinct))
		}

		missing := rapid.IntRange(models.MinVLANID, models.MaxVLANID).
			Filter(func(id int) bool { return !distinct[id] }).
			Draw(t, "missing")
		if _, err := r.Get(missing); !errors.Is(err, ErrNotFound) {
			t.Fatalf("get %d: got %v, want ErrNotFound", missing, err)
		}
	})
}

func TestSubscribe(t *testing.T) {
	r := New()

	var calls atomic.Int32
	r.Subscribe(func(v models.VLAN, total int) {
		calls.Add(1)
		assert.Equal(t, 99, v.ID)
		assert.Equal(t, 1, total)
	})

	_, _, err := r.Create(CreateRequest{ID: 99})
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
