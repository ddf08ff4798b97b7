package typeahead

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerCollapsesBurst(t *testing.T) {
	var mu sync.Mutex
	var delivered []string

	debouncer := NewDebouncer(30*time.Millisecond, func(value string) {
		mu.Lock()
		delivered = append(delivered, value)
		mu.Unlock()
	})
	defer debouncer.Stop()

	for _, value := range []string{"P", "Pa", "Par", "Pari", "Paris"} {
		debouncer.Input(value)
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"Paris"}, delivered)
}

func TestDebouncerDeliversSeparateBursts(t *testing.T) {
	var mu sync.Mutex
	var delivered []string

	debouncer := NewDebouncer(10*time.Millisecond, func(value string) {
		mu.Lock()
		delivered = append(delivered, value)
		mu.Unlock()
	})
	defer debouncer.Stop()

	debouncer.Input("first")
	time.Sleep(50 * time.Millisecond)
	debouncer.Input("second")
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"first", "second"}, delivered)
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	var mu sync.Mutex
	var delivered []string

	debouncer := NewDebouncer(20*time.Millisecond, func(value string) {
		mu.Lock()
		delivered = append(delivered, value)
		mu.Unlock()
	})

	debouncer.Input("pending")
	debouncer.Stop()
	debouncer.Input("after stop")

	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Empty(t, delivered)
}

func TestSequencerLastTokenWins(t *testing.T) {
	var seq Sequencer

	first := seq.Next()
	second := seq.Next()

	assert.False(t, seq.Current(first))
	assert.True(t, seq.Current(second))
}
