package points

import "errors"

// ErrQueueFull is returned by Enqueue when the queue is at capacity. The
// request is not stored; the caller decides whether to drop it or show a
// busy signal.
var ErrQueueFull = errors.New("spawn queue full")

// SpawnRequest is one pending creation, consumed exactly once by the
// controller. Seq records enqueue order.
type SpawnRequest struct {
	Payload SpawnPayload
	Seq     uint64
}

// SpawnQueue is a bounded FIFO of pending spawn requests.
type SpawnQueue struct {
	requests []SpawnRequest
	capacity int
	nextSeq  uint64
}

// NewSpawnQueue creates a queue that holds at most capacity requests.
func NewSpawnQueue(capacity int) *SpawnQueue {
	return &SpawnQueue{
		requests: make([]SpawnRequest, 0, capacity),
		capacity: capacity,
	}
}

// Enqueue appends a request, or returns ErrQueueFull leaving the queue
// unchanged.
func (q *SpawnQueue) Enqueue(payload SpawnPayload) error {
	if len(q.requests) >= q.capacity {
		return ErrQueueFull
	}
	q.requests = append(q.requests, SpawnRequest{Payload: payload, Seq: q.nextSeq})
	q.nextSeq++
	return nil
}

// Drain removes and returns up to max of the oldest requests in FIFO
// order. It never blocks; fewer than max pending means all of them.
func (q *SpawnQueue) Drain(max int) []SpawnRequest {
	if max <= 0 || len(q.requests) == 0 {
		return nil
	}
	n := max
	if n > len(q.requests) {
		n = len(q.requests)
	}
	drained := make([]SpawnRequest, n)
	copy(drained, q.requests[:n])
	remaining := copy(q.requests, q.requests[n:])
	q.requests = q.requests[:remaining]
	return drained
}

// Len returns the number of pending requests.
func (q *SpawnQueue) Len() int {
	return len(q.requests)
}

// Capacity returns the configured maximum.
func (q *SpawnQueue) Capacity() int {
	return q.capacity
}
