package debug

import (
	"fmt"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRing_UnderCapacity(t *testing.T) {
	ring := NewRing(4)
	ring.Add("one")
	ring.Add("two")

	assert.Equal(t, 2, ring.Len())
	assert.Equal(t, []string{"one", "two"}, ring.Snapshot())
}

func TestRing_WrapsOldestFirst(t *testing.T) {
	ring := NewRing(3)
	for i := 1; i <= 5; i++ {
		ring.Add(fmt.Sprintf("line %d", i))
	}

	assert.Equal(t, 3, ring.Len())
	assert.Equal(t, []string{"line 3", "line 4", "line 5"}, ring.Snapshot())
}

func TestRing_ExactlyFull(t *testing.T) {
	ring := NewRing(2)
	ring.Add("a")
	ring.Add("b")

	assert.Equal(t, 2, ring.Len())
	assert.Equal(t, []string{"a", "b"}, ring.Snapshot())
}

func TestRing_WriteSplitsLines(t *testing.T) {
	ring := NewRing(8)
	n, err := ring.Write([]byte("first\nsecond\n"))
	require.NoError(t, err)

	assert.Equal(t, len("first\nsecond\n"), n)
	assert.Equal(t, []string{"first", "second"}, ring.Snapshot())
}

func TestRing_WriteSkipsBlankLines(t *testing.T) {
	ring := NewRing(8)
	_, err := ring.Write([]byte("only\n\n\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"only"}, ring.Snapshot())
}

func TestRing_BehindStandardLogger(t *testing.T) {
	ring := NewRing(8)
	logger := log.New(ring, "", 0)
	logger.Println("hello from the logger")

	snapshot := ring.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "hello from the logger", snapshot[0])
}

func TestRing_ZeroCapacityUsesDefault(t *testing.T) {
	ring := NewRing(0)
	ring.Add("line")
	assert.Equal(t, 1, ring.Len())
}
