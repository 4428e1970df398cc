package preview

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCacheGetPut(t *testing.T) {
	c := NewCache(2)
	assert.Equal(t, 2, c.Cap())

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Put("a", proto("a"))
	p, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", p.Render(1, 1))

	// Replacing keeps a single entry.
	c.Put("a", proto("a2"))
	assert.Equal(t, 1, c.Len())
	p, _ = c.Get("a")
	assert.Equal(t, "a2", p.Render(1, 1))
}

func TestCacheLRUOrder(t *testing.T) {
	c := NewCache(2)
	c.Put("A", proto("A"))
	c.Put("B", proto("B"))
	_, ok := c.Get("A")
	require.True(t, ok)
	c.Put("C", proto("C"))

	assert.True(t, c.Contains("A"))
	assert.False(t, c.Contains("B"))
	assert.True(t, c.Contains("C"))
	assert.Equal(t, []string{"C", "A"}, c.Keys())
	assert.Equal(t, 1, c.Evictions())
}

func TestCacheContainsDoesNotRefresh(t *testing.T) {
	c := NewCache(2)
	c.Put("A", proto("A"))
	c.Put("B", proto("B"))
	assert.True(t, c.Contains("A"))
	c.Put("C", proto("C"))

	assert.False(t, c.Contains("A"), "Contains must not count as a use")
	assert.Equal(t, []string{"C", "B"}, c.Keys())
}

func TestCacheBound(t *testing.T) {
	c := NewCache(3)
	for i := 0; i < 10; i++ {
		c.Put(fmt.Sprintf("img%d", i), proto(""))
	}
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"img9", "img8", "img7"}, c.Keys())
}

func TestCacheZeroCapacity(t *testing.T) {
	c := NewCache(0)
	c.Put("a", proto("a"))

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.False(t, c.Contains("a"))
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.Keys())
	assert.False(t, c.Remove("a"))

	assert.Equal(t, 0, NewCache(-3).Cap())
}

func TestCacheRemoveAndPurge(t *testing.T) {
	c := NewCache(4)
	c.Put("a", proto("a"))
	c.Put("b", proto("b"))

	assert.True(t, c.Remove("a"))
	assert.False(t, c.Remove("a"))
	assert.Equal(t, 1, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

// The cache always holds exactly the most recently used keys, up to its
// capacity, in recency order.
func TestCacheMatchesModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(0, 5).Draw(t, "capacity")
		c := NewCache(capacity)
		var model []string // most recent first

		touch := func(key string) {
			for i, k := range model {
				if k == key {
					model = append(model[:i], model[i+1:]...)
					break
				}
			}
			model = append([]string{key}, model...)
			if len(model) > capacity {
				model = model[:capacity]
			}
		}

		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			key := fmt.Sprintf("k%d", rapid.IntRange(0, 7).Draw(t, "key"))
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				c.Put(key, proto(key))
				touch(key)
			case 1:
				_, ok := c.Get(key)
				inModel := false
				for _, k := range model {
					inModel = inModel || k == key
				}
				if ok != inModel {
					t.Fatalf("Get(%s) = %v, model says %v", key, ok, inModel)
				}
				if ok {
					touch(key)
				}
			case 2:
				c.Contains(key)
			}

			if c.Len() > capacity {
				t.Fatalf("len %d exceeds capacity %d", c.Len(), capacity)
			}
			got := c.Keys()
			if len(got) != len(model) {
				t.Fatalf("keys %v, want %v", got, model)
			}
			for j := range got {
				if got[j] != model[j] {
					t.Fatalf("keys %v, want %v", got, model)
				}
			}
		}
	})
}
