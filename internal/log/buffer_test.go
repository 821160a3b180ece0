package log

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRingBuffer_CapacityFloor(t *testing.T) {
	require.Equal(t, 1, NewRingBuffer(0).capacity)
	require.Equal(t, 1, NewRingBuffer(-3).capacity)
	require.Equal(t, 4, NewRingBuffer(4).capacity)
}

func TestRingBuffer_Wraparound(t *testing.T) {
	buf := NewRingBuffer(3)
	for _, e := range []string{"a", "b", "c", "d", "e"} {
		buf.Add(e)
	}
	require.Equal(t, []string{"c", "d", "e"}, buf.GetLast(3))
	require.Equal(t, []string{"d", "e"}, buf.GetLast(2))
}

func TestRingBuffer_GetLast_Edges(t *testing.T) {
	buf := NewRingBuffer(5)
	require.Nil(t, buf.GetLast(3))

	buf.Add("a")
	buf.Add("b")
	require.Equal(t, []string{"a", "b"}, buf.GetLast(10))
	require.Nil(t, buf.GetLast(0))
}

func TestRingBuffer_ClearThenAdd(t *testing.T) {
	buf := NewRingBuffer(3)
	buf.Add("a")
	buf.Add("b")
	buf.Clear()
	require.Nil(t, buf.GetLast(3))

	buf.Add("x")
	require.Equal(t, []string{"x"}, buf.GetLast(3))
}

func TestRingBuffer_Concurrent(t *testing.T) {
	buf := NewRingBuffer(50)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				buf.Add("entry")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_ = buf.GetLast(10)
			}
		}()
	}
	wg.Wait()
	require.Len(t, buf.GetLast(100), 50)
}
