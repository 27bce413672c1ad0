// Package mainthread records which goroutine owns structural mutations and
// lets registries assert that callers are on it.
package mainthread

import (
	"bytes"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
)

// ErrWrongThread is returned when a mutation is attempted off the owning goroutine.
var ErrWrongThread = errors.New("must be called from the main thread")

// Checker reports whether the caller is running on the owning goroutine.
type Checker interface {
	IsMainThread() bool
}

// Owner is a Checker bound to the goroutine that called Bind or Rebind.
type Owner struct {
	id atomic.Uint64
}

// Bind returns an Owner for the calling goroutine.
func Bind() *Owner {
	o := &Owner{}
	o.id.Store(GoroutineID())
	return o
}

// Rebind moves ownership to the calling goroutine.
func (o *Owner) Rebind() {
	o.id.Store(GoroutineID())
}

// IsMainThread implements Checker.
func (o *Owner) IsMainThread() bool {
	return o.id.Load() == GoroutineID()
}

// Any is a Checker that accepts every goroutine.
type Any struct{}

// IsMainThread implements Checker.
func (Any) IsMainThread() bool { return true }

// Assert returns an error wrapping ErrWrongThread when c rejects the caller.
// op names the attempted operation for the message.
func Assert(c Checker, op string) error {
	if c == nil || c.IsMainThread() {
		return nil
	}
	return &WrongThreadError{Op: op, Goroutine: GoroutineID()}
}

// WrongThreadError describes a rejected off-thread call.
type WrongThreadError struct {
	Op        string
	Goroutine uint64
}

func (e *WrongThreadError) Error() string {
	return fmt.Sprintf("%s: %s, but it was called from goroutine %d", e.Op, ErrWrongThread, e.Goroutine)
}

func (e *WrongThreadError) Unwrap() error { return ErrWrongThread }

var goroutinePrefix = []byte("goroutine ")

// GoroutineID parses the current goroutine id from the runtime stack header.
func GoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
