// SPDX-License-Identifier: Apache-2.0

package vector

import (
	"io"
)

// Buffer is a bytes.Buffer-like struct backed by a Vector[byte].
// It implements io.Writer, io.ReaderFrom and provides similar methods to bytes.Buffer.
// All storage management is done through the vector, so consumed bytes free
// their slots for reuse instead of growing the block forever.
type Buffer struct {
	vec     Vector[byte]
	readBuf []byte // intermediate buffer for ReadFrom
}

// NewBuffer creates a new empty Buffer. The zero Buffer value is also ready
// to use.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// consume removes the first n unread bytes by shifting the remaining data
// down.
func (b *Buffer) consume(n int) {
	if n <= 0 {
		return
	}
	s := b.vec.Slice()
	copy(s, s[n:])
	_ = b.vec.Resize(len(s) - n)
}

// Write implements io.Writer interface.
// It writes len(p) bytes from p to the buffer.
func (b *Buffer) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}

	if err := b.vec.Append(p...); err != nil {
		return 0, err
	}

	return len(p), nil
}

// WriteByte writes a single byte to the buffer.
func (b *Buffer) WriteByte(c byte) error {
	return b.vec.PushBack(c)
}

// WriteString writes a string to the buffer.
func (b *Buffer) WriteString(s string) (n int, err error) {
	if len(s) == 0 {
		return 0, nil
	}

	if err := b.vec.Append([]byte(s)...); err != nil {
		return 0, err
	}

	return len(s), nil
}

// WriteTo implements io.WriterTo interface.
// It writes the unread portion of the buffer to w and consumes what was written.
func (b *Buffer) WriteTo(w io.Writer) (n int64, err error) {
	if b.vec.Len() == 0 {
		return 0, nil
	}

	m, err := w.Write(b.vec.Slice())
	if m > 0 {
		n += int64(m)
		b.consume(m)
	}

	return n, err
}

// Read reads up to len(p) bytes from the buffer into p.
// It returns the number of bytes read and any error encountered.
func (b *Buffer) Read(p []byte) (n int, err error) {
	if b.vec.Len() == 0 {
		return 0, io.EOF
	}

	n = copy(p, b.vec.Slice())
	if n < len(p) {
		err = io.EOF
	}

	b.consume(n)

	return n, err
}

// ReadByte reads and returns the next byte from the buffer.
// If no byte is available, it returns an error.
func (b *Buffer) ReadByte() (byte, error) {
	if b.vec.Len() == 0 {
		return 0, io.EOF
	}

	c := b.vec.Get(0)
	b.consume(1)

	return c, nil
}

// Bytes returns a slice of length b.Len() holding the unread portion of the buffer.
// The slice is valid for use only until the next buffer modification.
func (b *Buffer) Bytes() []byte {
	if b.vec.Len() == 0 {
		return []byte{}
	}
	return b.vec.Slice()
}

// String returns the contents of the unread portion of the buffer as a string.
func (b *Buffer) String() string {
	return string(b.vec.Slice())
}

// Len returns the number of bytes of the unread portion of the buffer.
func (b *Buffer) Len() int {
	return b.vec.Len()
}

// Cap returns the capacity of the buffer's underlying block.
func (b *Buffer) Cap() int {
	return b.vec.Cap()
}

// Reset resets the buffer to be empty, keeping the block for reuse.
func (b *Buffer) Reset() {
	b.vec.Clear()
}

// Truncate discards all but the first n unread bytes from the buffer.
// It panics if n is negative or greater than the length of the buffer.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > b.vec.Len() {
		panic("vector: truncation out of range")
	}
	_ = b.vec.Resize(n)
}

// Next returns a slice containing the next n bytes from the buffer,
// advancing the buffer as if the bytes had been returned by Read.
func (b *Buffer) Next(n int) []byte {
	if n <= 0 {
		return []byte{}
	}

	if n > b.vec.Len() {
		n = b.vec.Len()
	}

	if n == 0 {
		return []byte{}
	}

	result := make([]byte, n)
	copy(result, b.vec.Slice()[:n])
	b.consume(n)

	return result
}

// ReadFrom implements io.ReaderFrom interface.
// It reads data from r until EOF or error, writing it to the buffer.
func (b *Buffer) ReadFrom(r io.Reader) (n int64, err error) {
	// Ensure read buffer is allocated
	if b.readBuf == nil {
		b.allocateReadBuffer()
	}

	for {
		// Read into the intermediate buffer
		nr, er := r.Read(b.readBuf)
		if nr > 0 {
			// Write the read data to our buffer
			_, ew := b.Write(b.readBuf[:nr])
			if ew != nil {
				return n, ew
			}
			n += int64(nr)
		}
		if er != nil {
			if er == io.EOF {
				break
			}
			return n, er
		}
	}
	return n, nil
}

// allocateReadBuffer allocates the intermediate read buffer.
func (b *Buffer) allocateReadBuffer() {
	const readBufferSize = 4 * 1024 // 4KB read buffer
	b.readBuf = make([]byte, readBufferSize)
}
