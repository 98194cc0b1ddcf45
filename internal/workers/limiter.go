package workers

import "context"

// Limiter bounds how many callers may hold a slot at once.
type Limiter struct {
	slots chan struct{}
}

// NewLimiter creates a Limiter with n slots. n below 1 is treated as 1.
func NewLimiter(n int) *Limiter {
	if n < 1 {
		n = 1
	}
	return &Limiter{slots: make(chan struct{}, n)}
}

// Acquire blocks until a slot is free or ctx is done. Every successful
// Acquire must be paired with a Release.
func (l *Limiter) Acquire(ctx context.Context) error {
	select {
	case l.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot taken by Acquire.
func (l *Limiter) Release() {
	<-l.slots
}

// Capacity returns the number of slots.
func (l *Limiter) Capacity() int {
	return cap(l.slots)
}

// InUse returns the number of slots currently held.
func (l *Limiter) InUse() int {
	return len(l.slots)
}
