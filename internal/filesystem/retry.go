package filesystem

import (
	"errors"
	"os"
	"syscall"
	"time"

	"media-gallery/internal/logging"

	"github.com/spf13/afero"
)

// RetryConfig configures retry behavior for filesystem operations
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultRetryConfig returns sensible defaults for NFS retry behavior
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: 50 * time.Millisecond,
		MaxBackoff:     500 * time.Millisecond,
	}
}

// isNFSStaleError checks if an error is an NFS stale file handle error
func isNFSStaleError(err error) bool {
	if err == nil {
		return false
	}

	// ESTALE is errno 116 on Linux
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.ESTALE
	}

	return false
}

// RetryFs wraps an afero.Fs and retries Stat and Open when the underlying
// filesystem reports a stale NFS file handle. Every other call and every
// other error passes straight through.
type RetryFs struct {
	afero.Fs
	config RetryConfig
	sleep  func(time.Duration)
}

// NewRetryFs wraps fs with stale-handle retries.
func NewRetryFs(fs afero.Fs, config RetryConfig) *RetryFs {
	return &RetryFs{
		Fs:     fs,
		config: config,
		sleep:  time.Sleep,
	}
}

// Name implements afero.Fs.
func (r *RetryFs) Name() string {
	return "RetryFs(" + r.Fs.Name() + ")"
}

// Stat implements afero.Fs with retries.
func (r *RetryFs) Stat(name string) (os.FileInfo, error) {
	return withRetry(r, "stat", name, func() (os.FileInfo, error) {
		return r.Fs.Stat(name)
	})
}

// Open implements afero.Fs with retries.
func (r *RetryFs) Open(name string) (afero.File, error) {
	return withRetry(r, "open", name, func() (afero.File, error) {
		return r.Fs.Open(name)
	})
}

func withRetry[T any](r *RetryFs, op, path string, fn func() (T, error)) (T, error) {
	obs := observe()
	backoff := r.config.InitialBackoff

	var lastErr error
	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		v, err := fn()
		if err == nil {
			if attempt > 0 {
				logging.Info("NFS %s succeeded on retry %d for %s", op, attempt, path)
				obs.ObserveRetrySuccess(op)
			}
			return v, nil
		}

		lastErr = err
		if !isNFSStaleError(err) {
			var zero T
			return zero, err
		}
		obs.ObserveStaleError(op)

		// No sleep after the last attempt
		if attempt < r.config.MaxRetries {
			obs.ObserveRetryAttempt(op)
			logging.Debug("NFS %s stale file handle for %s, retrying in %v (attempt %d/%d)",
				op, path, backoff, attempt+1, r.config.MaxRetries)
			r.sleep(backoff)

			backoff *= 2
			if backoff > r.config.MaxBackoff {
				backoff = r.config.MaxBackoff
			}
		}
	}

	logging.Warn("NFS %s failed after %d retries for %s: %v", op, r.config.MaxRetries, path, lastErr)
	obs.ObserveRetryFailure(op)
	var zero T
	return zero, lastErr
}
