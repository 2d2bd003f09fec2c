package patch

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"github.com/google/uuid"
)

// writeInProgress counts the number of writes currently underway; a signal
// handler must wait for it to reach zero before terminating the process, so
// a write is never interrupted partway through.
var writeInProgress atomic.Int32

// signalHandlerAtWork is set by a signal handler while it is deciding
// whether to terminate, so a new write does not begin while that decision
// is being made.
var signalHandlerAtWork atomic.Bool

// WriteGuard blocks signal-triggered termination for as long as it is held.
// Acquire it before writing a file to disk and release it (via Release or
// a deferred call) immediately after, so SIGINT/SIGTERM/SIGQUIT can never
// land in the middle of a write.
type WriteGuard struct{}

// Acquire waits for any in-progress signal handling to finish, then marks a
// write as underway.
func Acquire() WriteGuard {
	for signalHandlerAtWork.Load() {
		runtime.Gosched()
	}
	writeInProgress.Add(1)
	return WriteGuard{}
}

// Release marks the write as finished.
func (WriteGuard) Release() {
	writeInProgress.Add(-1)
}

// BeginSignalHandling marks that a signal handler is about to decide
// whether to terminate the process; it spins until any in-flight write
// completes before returning, so termination only ever happens between
// writes.
func BeginSignalHandling() {
	signalHandlerAtWork.Store(true)
	for writeInProgress.Load() > 0 {
		runtime.Gosched()
	}
}

// EndSignalHandling clears the in-decision flag, for the case where the
// signal turned out not to warrant termination.
func EndSignalHandling() {
	signalHandlerAtWork.Store(false)
}

// WriteFile writes data to path atomically: it writes to a sibling temp
// file and renames it into place, so a concurrent reader never observes a
// partially-written file, and a crash mid-write leaves the original
// untouched.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	guard := Acquire()
	defer guard.Release()

	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.docspell.tmp-%s", filepath.Base(path), uuid.NewString()))
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("patch: writing temp file %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("patch: renaming %q to %q: %w", tmp, path, err)
	}
	return nil
}
