package internal

import (
	"bytes"
	"sync"
)

// BufferPool holds scratch buffers used while encoding and decoding tick events.
var BufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 256))
	},
}

// GetBuffer returns an empty buffer from BufferPool.
func GetBuffer() *bytes.Buffer {
	buf := BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns buf to BufferPool. Oversized buffers are dropped so a single large recording
// does not pin memory for the lifetime of the process.
func PutBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 1<<16 {
		return
	}
	BufferPool.Put(buf)
}
