package filesystem

import (
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestDefaultRetryConfig(t *testing.T) {
	config := DefaultRetryConfig()

	if config.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", config.MaxRetries)
	}
	if config.InitialBackoff != 50*time.Millisecond {
		t.Errorf("InitialBackoff = %v, want 50ms", config.InitialBackoff)
	}
	if config.MaxBackoff != 500*time.Millisecond {
		t.Errorf("MaxBackoff = %v, want 500ms", config.MaxBackoff)
	}
}

func TestIsNFSStaleError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "ESTALE error", err: syscall.ESTALE, want: true},
		{name: "wrapped ESTALE", err: &os.PathError{Op: "stat", Path: "/x", Err: syscall.ESTALE}, want: true},
		{name: "ENOENT error", err: syscall.ENOENT, want: false},
		{name: "generic error", err: os.ErrNotExist, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNFSStaleError(tt.err); got != tt.want {
				t.Errorf("isNFSStaleError() = %v, want %v", got, tt.want)
			}
		})
	}
}

// staleFs fails Stat and Open with ESTALE a fixed number of times.
type staleFs struct {
	afero.Fs
	failures int
	calls    int
}

func (s *staleFs) fail(op, name string) error {
	s.calls++
	if s.calls <= s.failures {
		return &os.PathError{Op: op, Path: name, Err: syscall.ESTALE}
	}
	return nil
}

func (s *staleFs) Stat(name string) (os.FileInfo, error) {
	if err := s.fail("stat", name); err != nil {
		return nil, err
	}
	return s.Fs.Stat(name)
}

func (s *staleFs) Open(name string) (afero.File, error) {
	if err := s.fail("open", name); err != nil {
		return nil, err
	}
	return s.Fs.Open(name)
}

type countingObserver struct {
	attempts, successes, failures, stale int
}

func (c *countingObserver) ObserveRetryAttempt(string) { c.attempts++ }
func (c *countingObserver) ObserveRetrySuccess(string) { c.successes++ }
func (c *countingObserver) ObserveRetryFailure(string) { c.failures++ }
func (c *countingObserver) ObserveStaleError(string)   { c.stale++ }

func newTestRetryFs(t *testing.T, failures int) (*RetryFs, *staleFs, *[]time.Duration) {
	t.Helper()

	mem := afero.NewMemMapFs()
	if err := afero.WriteFile(mem, "/media/a.jpg", []byte("data"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	stale := &staleFs{Fs: mem, failures: failures}
	rfs := NewRetryFs(stale, DefaultRetryConfig())

	var sleeps []time.Duration
	rfs.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }

	return rfs, stale, &sleeps
}

func TestRetryFsStatSucceedsAfterStaleErrors(t *testing.T) {
	obs := &countingObserver{}
	SetObserver(obs)
	defer SetObserver(nil)

	rfs, stale, sleeps := newTestRetryFs(t, 2)

	info, err := rfs.Stat("/media/a.jpg")
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() != 4 {
		t.Errorf("Size() = %d, want 4", info.Size())
	}
	if stale.calls != 3 {
		t.Errorf("underlying calls = %d, want 3", stale.calls)
	}

	want := []time.Duration{50 * time.Millisecond, 100 * time.Millisecond}
	if len(*sleeps) != len(want) {
		t.Fatalf("sleeps = %v, want %v", *sleeps, want)
	}
	for i := range want {
		if (*sleeps)[i] != want[i] {
			t.Errorf("sleep[%d] = %v, want %v", i, (*sleeps)[i], want[i])
		}
	}

	if obs.stale != 2 || obs.attempts != 2 || obs.successes != 1 || obs.failures != 0 {
		t.Errorf("observer = %+v, want stale=2 attempts=2 successes=1 failures=0", *obs)
	}
}

func TestRetryFsOpenGivesUpAfterMaxRetries(t *testing.T) {
	obs := &countingObserver{}
	SetObserver(obs)
	defer SetObserver(nil)

	rfs, stale, sleeps := newTestRetryFs(t, 100)

	_, err := rfs.Open("/media/a.jpg")
	if !isNFSStaleError(err) {
		t.Fatalf("Open() error = %v, want ESTALE", err)
	}
	if stale.calls != 4 {
		t.Errorf("underlying calls = %d, want 4", stale.calls)
	}

	// 50ms, 100ms, 200ms; no sleep after the last attempt
	if len(*sleeps) != 3 {
		t.Errorf("sleeps = %v, want 3 entries", *sleeps)
	}
	if obs.failures != 1 {
		t.Errorf("failures = %d, want 1", obs.failures)
	}
}

func TestRetryFsBackoffIsCapped(t *testing.T) {
	rfs, _, sleeps := newTestRetryFs(t, 100)
	rfs.config = RetryConfig{MaxRetries: 5, InitialBackoff: 200 * time.Millisecond, MaxBackoff: 300 * time.Millisecond}

	_, _ = rfs.Stat("/media/a.jpg")

	for i, d := range *sleeps {
		if d > 300*time.Millisecond {
			t.Errorf("sleep[%d] = %v exceeds cap", i, d)
		}
	}
}

func TestRetryFsDoesNotRetryOtherErrors(t *testing.T) {
	rfs, stale, sleeps := newTestRetryFs(t, 0)

	_, err := rfs.Stat("/media/missing.jpg")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Stat() error = %v, want not exist", err)
	}
	if stale.calls != 1 {
		t.Errorf("underlying calls = %d, want 1", stale.calls)
	}
	if len(*sleeps) != 0 {
		t.Errorf("sleeps = %v, want none", *sleeps)
	}
}
