package log

import "sync"

// RingBuffer keeps the most recent entries up to a fixed capacity.
type RingBuffer struct {
	mu       sync.RWMutex
	entries  []string
	capacity int
	head     int
	size     int
}

// NewRingBuffer creates a buffer; capacities below 1 become 1.
func NewRingBuffer(capacity int) *RingBuffer {
	capacity = max(capacity, 1)
	return &RingBuffer{
		entries:  make([]string, capacity),
		capacity: capacity,
	}
}

// Add appends an entry, overwriting the oldest when full.
func (r *RingBuffer) Add(entry string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.head] = entry
	r.head = (r.head + 1) % r.capacity
	r.size = min(r.size+1, r.capacity)
}

// GetLast returns the last n entries, oldest first.
func (r *RingBuffer) GetLast(n int) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n = min(n, r.size)
	if n <= 0 {
		return nil
	}
	result := make([]string, n)
	start := (r.head - n + r.capacity) % r.capacity
	for i := range result {
		result[i] = r.entries[(start+i)%r.capacity]
	}
	return result
}

func (r *RingBuffer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.head = 0
	r.size = 0
}
