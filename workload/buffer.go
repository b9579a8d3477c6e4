package workload

import (
	"errors"
	"fmt"
	"math"
)

// ErrBufferTooLarge reports a requested buffer whose byte size overflows the
// address-space integer. Truncating instead would silently shrink the buffer
// below the sizes the memory kernels were tuned for.
var ErrBufferTooLarge = errors.New("buffer byte size overflows int")

const fillMask = 0xDEADBEEF

// NewBuffer allocates a per-worker stress buffer of sizeMB megabytes as
// 64-bit words. Every element is pre-filled with a non-zero pattern so the
// OS cannot back the region with shared zero pages, which would let the
// memory kernels run without touching real memory.
func NewBuffer(sizeMB int) ([]uint64, error) {
	if sizeMB < 0 || sizeMB > math.MaxInt/(1024*1024) {
		return nil, fmt.Errorf("%d MB: %w", sizeMB, ErrBufferTooLarge)
	}
	buf := make([]uint64, sizeMB*1024*1024/8)
	for i := range buf {
		buf[i] = uint64(i) ^ fillMask
	}
	return buf, nil
}
