package transaction

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountLocker_Exclusive(t *testing.T) {
	locker := newAccountLocker()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locker.Lock("acct-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
	// All references released, no lock entries linger.
	locker.mu.Lock()
	assert.Empty(t, locker.locks)
	locker.mu.Unlock()
}

func TestAccountLocker_IndependentAccounts(t *testing.T) {
	locker := newAccountLocker()

	unlockA := locker.Lock("acct-a")
	defer unlockA()

	// A different account's lock must not block.
	done := make(chan struct{})
	go func() {
		unlockB := locker.Lock("acct-b")
		unlockB()
		close(done)
	}()
	<-done
}
