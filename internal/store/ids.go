package store

import (
	"sync/atomic"
	"time"
)

var lastID atomic.Int64

// NextID produces an opaque unique integer identifier. The value is the
// current wall clock in milliseconds with an atomic floor, so rapid
// concurrent creation cannot hand out the same id twice.
func NextID() int64 {
	for {
		last := lastID.Load()
		id := time.Now().UnixMilli()
		if id <= last {
			id = last + 1
		}
		if lastID.CompareAndSwap(last, id) {
			return id
		}
	}
}
