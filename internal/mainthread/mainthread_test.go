package mainthread

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOwner_SameGoroutine(t *testing.T) {
	o := Bind()
	require.True(t, o.IsMainThread())
	require.NoError(t, Assert(o, "add ingredients"))
}

func TestOwner_OtherGoroutine(t *testing.T) {
	o := Bind()

	var (
		wg  sync.WaitGroup
		ok  bool
		err error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		ok = o.IsMainThread()
		err = Assert(o, "add ingredients")
	}()
	wg.Wait()

	require.False(t, ok)
	require.ErrorIs(t, err, ErrWrongThread)

	var wrong *WrongThreadError
	require.True(t, errors.As(err, &wrong))
	require.Equal(t, "add ingredients", wrong.Op)
	require.Contains(t, err.Error(), "must be called from the main thread")
}

func TestOwner_Rebind(t *testing.T) {
	o := Bind()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		o.Rebind()
	}()
	wg.Wait()

	require.False(t, o.IsMainThread())
}

func TestAny(t *testing.T) {
	require.NoError(t, Assert(Any{}, "anything"))
	require.NoError(t, Assert(nil, "anything"))
}

func TestGoroutineID_NonZero(t *testing.T) {
	require.NotZero(t, GoroutineID())
}
