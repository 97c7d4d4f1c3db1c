package cache

import "container/list"

// Policy decides which key to drop when the cache is at capacity.
// The cache calls these hooks; the policy never touches the stored values.
type Policy interface {
	// OnGet is called whenever a key is read. FIFO ignores reads.
	OnGet(key string)

	// OnPut is called whenever a key is written. A repeated put of a
	// tracked key must not change its FIFO position.
	OnPut(key string)

	// Remove is called when a key is removed for any reason other than
	// eviction (explicit delete, expiry), so bookkeeping stays consistent.
	Remove(key string)

	// Evict returns the key that should be removed to make room, or ""
	// if the policy tracks nothing.
	Evict() string
}

// PolicyType selects the eviction strategy at construction time.
type PolicyType string

const (
	// FIFO evicts the earliest-inserted key regardless of access. This is
	// the default: eviction is by insertion order, not last access.
	FIFO PolicyType = "FIFO"

	// LRU evicts the key that has not been read or written for the longest.
	LRU PolicyType = "LRU"
)

func newPolicy(t PolicyType) Policy {
	switch t {
	case LRU:
		return newLRUPolicy()
	default:
		return newFIFOPolicy()
	}
}

// fifoPolicy keeps keys in insertion order; the front is the oldest.
type fifoPolicy struct {
	queue []string
	set   map[string]struct{}
}

func newFIFOPolicy() *fifoPolicy {
	return &fifoPolicy{set: make(map[string]struct{})}
}

func (f *fifoPolicy) OnGet(string) {}

func (f *fifoPolicy) OnPut(key string) {
	if _, ok := f.set[key]; ok {
		return
	}
	f.queue = append(f.queue, key)
	f.set[key] = struct{}{}
}

func (f *fifoPolicy) Evict() string {
	if len(f.queue) == 0 {
		return ""
	}
	key := f.queue[0]
	f.queue = f.queue[1:]
	delete(f.set, key)
	return key
}

func (f *fifoPolicy) Remove(key string) {
	if _, ok := f.set[key]; !ok {
		return
	}
	delete(f.set, key)
	for i, k := range f.queue {
		if k == key {
			f.queue = append(f.queue[:i], f.queue[i+1:]...)
			break
		}
	}
}

// lruPolicy tracks recency with a linked list; the back is least recent.
type lruPolicy struct {
	order *list.List
	nodes map[string]*list.Element
}

func newLRUPolicy() *lruPolicy {
	return &lruPolicy{
		order: list.New(),
		nodes: make(map[string]*list.Element),
	}
}

func (l *lruPolicy) OnGet(key string) {
	if n, ok := l.nodes[key]; ok {
		l.order.MoveToFront(n)
	}
}

func (l *lruPolicy) OnPut(key string) {
	if n, ok := l.nodes[key]; ok {
		l.order.MoveToFront(n)
		return
	}
	l.nodes[key] = l.order.PushFront(key)
}

func (l *lruPolicy) Evict() string {
	back := l.order.Back()
	if back == nil {
		return ""
	}
	key := back.Value.(string)
	l.order.Remove(back)
	delete(l.nodes, key)
	return key
}

func (l *lruPolicy) Remove(key string) {
	if n, ok := l.nodes[key]; ok {
		l.order.Remove(n)
		delete(l.nodes, key)
	}
}
