package item

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/tagscan/internal/tagval"
)

func newTestItem() *Item {
	return New("pkg/main.go", "/src/pkg/main.go", KindSource, time.Unix(1000, 0))
}

func TestSetTag_MergesByPriority(t *testing.T) {
	it := newTestItem()

	it.SetTag("language", cty.StringVal("UNKNOWN"))
	it.SetTag("language", cty.StringVal("go"))

	s, ok := it.StringTag("language")
	require.True(t, ok)
	assert.Equal(t, "go", s)

	// A later placeholder must not clobber the settled value.
	it.SetTag("language", cty.StringVal("UNKNOWN"))
	s, _ = it.StringTag("language")
	assert.Equal(t, "go", s)
}

func TestSetTag_FirstWriteSticks(t *testing.T) {
	it := newTestItem()
	it.SetTag("language", tagval.NA())

	v, ok := it.Tag("language")
	require.True(t, ok)
	assert.True(t, tagval.NA().RawEquals(v))
}

func TestTags_ReturnsCopy(t *testing.T) {
	it := newTestItem()
	it.SetTag("loc", cty.NumberIntVal(10))

	tags := it.Tags()
	tags["loc"] = cty.NumberIntVal(999)

	i, ok := it.IntTag("loc")
	require.True(t, ok)
	assert.Equal(t, int64(10), i)
}

func TestHasAll(t *testing.T) {
	it := newTestItem()
	it.SetTag("language", cty.StringVal("go"))
	it.SetTag("loc", cty.NumberIntVal(1))

	assert.True(t, it.HasAll([]string{"language", "loc"}))
	assert.True(t, it.HasAll(nil))
	assert.False(t, it.HasAll([]string{"language", "todo"}))
}

func TestUpToDate(t *testing.T) {
	it := newTestItem()

	t.Run("never executed is stale", func(t *testing.T) {
		assert.False(t, it.UpToDate("loc"))
	})

	t.Run("execution after modtime is fresh", func(t *testing.T) {
		it.RecordExecution("loc", time.Unix(2000, 0))
		assert.True(t, it.UpToDate("loc"))
	})

	t.Run("invalidate makes it stale again", func(t *testing.T) {
		it.Invalidate(time.Unix(3000, 0))
		assert.False(t, it.UpToDate("loc"))
	})

	t.Run("re-execution restores freshness", func(t *testing.T) {
		it.RecordExecution("loc", time.Unix(3000, 0))
		assert.True(t, it.UpToDate("loc"))
	})
}

func TestLastExecution(t *testing.T) {
	it := newTestItem()
	_, ok := it.LastExecution("todo")
	assert.False(t, ok)

	at := time.Unix(1234, 0)
	it.RecordExecution("todo", at)
	got, ok := it.LastExecution("todo")
	require.True(t, ok)
	assert.True(t, at.Equal(got))
}

func TestItem_ConcurrentAccess(t *testing.T) {
	it := newTestItem()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			it.SetTag("loc", cty.NumberIntVal(42))
			it.RecordExecution("loc", time.Unix(5000, 0))
			_ = it.UpToDate("loc")
			_ = it.Tags()
		}()
	}
	wg.Wait()

	i, ok := it.IntTag("loc")
	require.True(t, ok)
	assert.Equal(t, int64(42), i)
}
