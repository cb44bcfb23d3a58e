package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/corvusHold/leasedesk/internal/templates/domain"
)

func TestMemoryRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	r := NewMemory()

	a := domain.Template{ID: r.NextID(), Name: "A"}
	b := domain.Template{ID: r.NextID(), Name: "B"}
	require.NotEqual(t, a.ID, b.ID)
	require.NoError(t, r.Insert(ctx, a))
	require.NoError(t, r.Insert(ctx, b))

	got, err := r.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name)
	assert.Equal(t, "B", list[1].Name)

	require.NoError(t, r.Delete(ctx, a.ID))
	_, err = r.Get(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, a.ID), domain.ErrNotFound)

	list, _ = r.List(ctx)
	assert.Len(t, list, 1)
}

func TestMemoryRepository_IncrementUsageConcurrent(t *testing.T) {
	ctx := context.Background()
	r := NewMemory()
	tpl := domain.Template{ID: "tpl", Name: "Standard"}
	require.NoError(t, r.Insert(ctx, tpl))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.IncrementUsage(ctx, "tpl", time.Now())
		}()
	}
	wg.Wait()

	got, err := r.Get(ctx, "tpl")
	require.NoError(t, err)
	assert.Equal(t, 50, got.UsageCount)

	_, err = r.IncrementUsage(ctx, "missing", time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
