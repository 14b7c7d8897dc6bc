package observe

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_DeliversInPublishOrder(t *testing.T) {
	var h Hub[int]
	var got []int
	h.Subscribe(func(v int) { got = append(got, v) })

	h.Publish(1, 2)
	h.Publish(3)
	h.Flush()

	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestHub_Unsubscribe(t *testing.T) {
	var h Hub[string]
	var count int
	unsubscribe := h.Subscribe(func(string) { count++ })

	h.Publish("a")
	h.Flush()
	unsubscribe()
	unsubscribe()
	h.Publish("b")
	h.Flush()

	assert.Equal(t, 1, count)
}

func TestHub_ReentrantPublish(t *testing.T) {
	var h Hub[int]
	var got []int
	h.Subscribe(func(v int) {
		got = append(got, v)
		if v < 3 {
			h.Publish(v + 1)
			h.Flush()
		}
	})

	h.Publish(1)
	h.Flush()

	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestHub_ConcurrentPublishersLoseNothing(t *testing.T) {
	var h Hub[int]
	var mu sync.Mutex
	total := 0
	h.Subscribe(func(v int) {
		mu.Lock()
		total += v
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Publish(1)
			h.Flush()
		}()
	}
	wg.Wait()
	h.Flush()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 50, total)
}
