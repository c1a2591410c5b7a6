package service

import (
	"hash/fnv"
	"sync"
)

const defaultStripes = 64

// keyMutex serializes critical sections per key using a fixed set of striped
// locks, keys hashing to the same stripe sharing a mutex. It closes the
// check-then-write window on uniqueness fields for writers inside this
// process; the store's unique indexes remain the authority across processes.
type keyMutex struct {
	stripes []sync.Mutex
}

func newKeyMutex(n int) *keyMutex {
	if n <= 0 {
		n = defaultStripes
	}
	return &keyMutex{stripes: make([]sync.Mutex, n)}
}

// LockKeys acquires the stripes covering all keys in index order, so two
// callers contending on overlapping key sets cannot deadlock. The returned
// function releases them.
func (m *keyMutex) LockKeys(keys ...string) (unlock func()) {
	seen := make(map[int]struct{}, len(keys))
	for _, k := range keys {
		seen[m.stripeIndex(k)] = struct{}{}
	}
	ordered := make([]int, 0, len(seen))
	for i := range m.stripes {
		if _, ok := seen[i]; ok {
			ordered = append(ordered, i)
		}
	}
	for _, i := range ordered {
		m.stripes[i].Lock()
	}
	return func() {
		for j := len(ordered) - 1; j >= 0; j-- {
			m.stripes[ordered[j]].Unlock()
		}
	}
}

// stripeIndex maps a key deterministically to a stripe.
func (m *keyMutex) stripeIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(m.stripes)
}
