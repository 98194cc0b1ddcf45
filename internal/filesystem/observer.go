package filesystem

// Observer records retry metrics. The implementation lives in the metrics
// package so that filesystem does not import it.
type Observer interface {
	// op is the retried operation: "stat" or "open".
	ObserveRetryAttempt(op string)
	ObserveRetrySuccess(op string)
	ObserveRetryFailure(op string)
	ObserveStaleError(op string)
}

// defaultObserver is the package-level observer set at startup.
// If nil, metric recording is silently skipped (safe for tests).
var defaultObserver Observer

// SetObserver sets the package-level metrics observer.
// Call this once at startup after creating the observer implementation.
func SetObserver(o Observer) {
	defaultObserver = o
}

type nopObserver struct{}

func (nopObserver) ObserveRetryAttempt(string) {}
func (nopObserver) ObserveRetrySuccess(string) {}
func (nopObserver) ObserveRetryFailure(string) {}
func (nopObserver) ObserveStaleError(string)   {}

// observe is a nil-safe accessor for the package-level observer.
func observe() Observer {
	if defaultObserver == nil {
		return nopObserver{}
	}
	return defaultObserver
}
