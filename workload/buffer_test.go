package workload

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBufferOneMB(t *testing.T) {
	buf, err := NewBuffer(1)
	require.NoError(t, err)
	require.Len(t, buf, 131072)

	for i, v := range buf {
		require.NotZero(t, v, "element %d", i)
	}
	assert.Equal(t, uint64(0xDEADBEEF), buf[0])
}

func TestNewBufferZeroMB(t *testing.T) {
	buf, err := NewBuffer(0)
	require.NoError(t, err)
	assert.Empty(t, buf)
}

func TestNewBufferOverflow(t *testing.T) {
	_, err := NewBuffer(math.MaxInt)
	assert.ErrorIs(t, err, ErrBufferTooLarge)

	_, err = NewBuffer(-1)
	assert.ErrorIs(t, err, ErrBufferTooLarge)
}

func TestParseKind(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Kind
	}{
		{"integer", Integer},
		{"float", Float},
		{"memory", MemoryLatency},
		{"memory-latency", MemoryLatency},
		{"memory-bandwidth", MemoryBandwidth},
		{"mixed", Mixed},
	} {
		got, err := ParseKind(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}

	_, err := ParseKind("quantum")
	assert.Error(t, err)
}

func TestKindsOrder(t *testing.T) {
	assert.Equal(t, []Kind{Integer, Float, Mixed, MemoryLatency, MemoryBandwidth}, Kinds())
}
