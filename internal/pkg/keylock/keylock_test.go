package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLock_SerializesSameKey(t *testing.T) {
	t.Parallel()
	kl := New()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			kl.Lock("alice@corp.test")
			counter++
			kl.Unlock("alice@corp.test")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestKeyLock_IndependentKeys(t *testing.T) {
	t.Parallel()
	kl := New()

	kl.Lock("a")
	done := make(chan struct{})
	go func() {
		kl.Lock("b")
		kl.Unlock("b")
		close(done)
	}()
	<-done // lock on "b" must not block behind "a"
	kl.Unlock("a")
}

func TestKeyLock_EntryReleased(t *testing.T) {
	t.Parallel()
	kl := New()

	kl.Lock("x")
	kl.Unlock("x")

	kl.mu.Lock()
	defer kl.mu.Unlock()
	assert.Empty(t, kl.locks)
}
