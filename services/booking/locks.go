package booking

import "sync"

// keyedMutex serializes work per booking ID within this process.
// Correctness across processes comes from the conditional writes in
// the repositories; this lock just keeps one instance from racing
// itself on a double-clicked payment or a redelivered webhook.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	return l
}

// Lock acquires the mutex for key and returns its unlock func.
func (k *keyedMutex) Lock(key string) func() {
	l := k.get(key)
	l.Lock()
	return l.Unlock
}
