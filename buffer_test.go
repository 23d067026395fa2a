// SPDX-License-Identifier: Apache-2.0

package vector

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestBufferBasicOperations(t *testing.T) {
	buf := NewBuffer()

	// Test initial state
	require.Equal(t, 0, buf.Len())
	require.Equal(t, 0, buf.Cap())
	require.Equal(t, "", buf.String())
	require.Equal(t, []byte{}, buf.Bytes())

	// Test Write
	n, err := buf.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, 5, buf.Len())
	require.Equal(t, "hello", buf.String())
	require.Equal(t, []byte("hello"), buf.Bytes())

	// Test WriteByte
	err = buf.WriteByte(' ')
	require.NoError(t, err)
	require.Equal(t, 6, buf.Len())
	require.Equal(t, "hello ", buf.String())

	// Test WriteString
	n, err = buf.WriteString("world")
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, 11, buf.Len())
	require.Equal(t, "hello world", buf.String())
}

func TestBufferZeroValue(t *testing.T) {
	var buf Buffer

	_, err := buf.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, "hello", buf.String())
}

func TestBufferReadOperations(t *testing.T) {
	buf := NewBuffer()

	// Write some data
	_, err := buf.Write([]byte("hello world"))
	require.NoError(t, err)

	// Test Read
	p := make([]byte, 5)
	n, err := buf.Read(p)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, []byte("hello"), p)
	require.Equal(t, 6, buf.Len()) // 11 - 5 = 6
	require.Equal(t, " world", buf.String())

	// Test ReadByte
	c, err := buf.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(' '), c)
	require.Equal(t, 5, buf.Len())
	require.Equal(t, "world", buf.String())

	// Test reading remaining data
	p = make([]byte, 10)
	n, err = buf.Read(p)
	require.Equal(t, io.EOF, err)
	require.Equal(t, 5, n)
	require.Equal(t, []byte("world"), p[:n])
	require.Equal(t, 0, buf.Len())

	// Test reading from empty buffer
	n, err = buf.Read(p)
	require.Equal(t, io.EOF, err)
	require.Equal(t, 0, n)
}

func TestBufferNext(t *testing.T) {
	buf := NewBuffer()

	// Write some data
	_, err := buf.Write([]byte("hello world"))
	require.NoError(t, err)

	// Test Next
	result := buf.Next(5)
	require.Equal(t, []byte("hello"), result)
	require.Equal(t, 6, buf.Len())
	require.Equal(t, " world", buf.String())

	// Test Next with more than available
	result = buf.Next(10)
	require.Equal(t, []byte(" world"), result)
	require.Equal(t, 0, buf.Len())

	// Test Next on empty buffer
	result = buf.Next(5)
	require.Equal(t, []byte{}, result)
}

func TestBufferWriteTo(t *testing.T) {
	buf := NewBuffer()
	_, err := buf.Write([]byte("hello world"))
	require.NoError(t, err)

	var sink bytes.Buffer
	n, err := buf.WriteTo(&sink)
	require.NoError(t, err)
	require.Equal(t, int64(11), n)
	require.Equal(t, "hello world", sink.String())
	require.Equal(t, 0, buf.Len())

	// WriteTo on empty buffer
	n, err = buf.WriteTo(&sink)
	require.NoError(t, err)
	require.Equal(t, int64(0), n)
}

func TestBufferReset(t *testing.T) {
	buf := NewBuffer()

	// Write some data
	_, err := buf.Write([]byte("hello world"))
	require.NoError(t, err)
	require.Equal(t, 11, buf.Len())

	// Reset keeps the block for reuse
	capBefore := buf.Cap()
	buf.Reset()
	require.Equal(t, 0, buf.Len())
	require.Equal(t, capBefore, buf.Cap())
	require.Equal(t, "", buf.String())
	require.Equal(t, []byte{}, buf.Bytes())

	// Write new data
	_, err = buf.Write([]byte("new data"))
	require.NoError(t, err)
	require.Equal(t, 8, buf.Len())
	require.Equal(t, "new data", buf.String())
}

func TestBufferTruncate(t *testing.T) {
	buf := NewBuffer()

	// Write some data
	_, err := buf.Write([]byte("hello world"))
	require.NoError(t, err)
	require.Equal(t, 11, buf.Len())

	// Truncate to 5
	buf.Truncate(5)
	require.Equal(t, 5, buf.Len())
	require.Equal(t, "hello", buf.String())

	// Truncate to 0
	buf.Truncate(0)
	require.Equal(t, 0, buf.Len())
	require.Equal(t, "", buf.String())

	// Test panic cases
	require.Panics(t, func() { buf.Truncate(-1) })
	require.Panics(t, func() { buf.Truncate(10) })
}

func TestBufferGrowth(t *testing.T) {
	buf := NewBuffer()

	// Write data that will trigger growth
	largeData := strings.Repeat("a", 200)
	_, err := buf.Write([]byte(largeData))
	require.NoError(t, err)
	require.Equal(t, 200, buf.Len())
	require.True(t, buf.Cap() >= 200)

	// Write more data
	moreData := strings.Repeat("b", 300)
	_, err = buf.Write([]byte(moreData))
	require.NoError(t, err)
	require.Equal(t, 500, buf.Len())
	require.True(t, buf.Cap() >= 500)

	// WriteByte growth
	for i := 0; i < 100; i++ {
		err = buf.WriteByte('c')
		require.NoError(t, err)
	}
	require.Equal(t, 600, buf.Len())

	expected := largeData + moreData + strings.Repeat("c", 100)
	require.Equal(t, expected, buf.String())
}

func TestBufferSharesVectorBlock(t *testing.T) {
	buf := NewBuffer()

	_, err := buf.Write([]byte("test data"))
	require.NoError(t, err)

	// Bytes is a window over the vector's block, not a copy
	bufPtr := unsafe.Pointer(unsafe.SliceData(buf.Bytes()))
	require.Equal(t, buf.vec.data.base, bufPtr)
}

func TestBufferIoWriterCompatibility(t *testing.T) {
	buf := NewBuffer()

	// Test that it implements io.Writer
	var writer io.Writer = buf
	require.NotNil(t, writer)

	// Test writing through io.Writer interface
	n, err := writer.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "hello", buf.String())
}

func TestBufferLargeWrites(t *testing.T) {
	buf := NewBuffer()

	// Write large amounts of data
	for i := 0; i < 1000; i++ {
		data := []byte(strings.Repeat("x", 100))
		_, err := buf.Write(data)
		require.NoError(t, err)
	}

	require.Equal(t, 100000, buf.Len())
	require.True(t, buf.Cap() >= 100000)

	// Read back some data
	p := make([]byte, 1000)
	n, err := buf.Read(p)
	require.NoError(t, err)
	require.Equal(t, 1000, n)
	require.Equal(t, strings.Repeat("x", 1000), string(p))
}

func TestBufferMixedOperations(t *testing.T) {
	buf := NewBuffer()

	// Mix of write operations
	_, err := buf.Write([]byte("hello"))
	require.NoError(t, err)

	err = buf.WriteByte(' ')
	require.NoError(t, err)

	_, err = buf.WriteString("world")
	require.NoError(t, err)

	require.Equal(t, "hello world", buf.String())

	// Mix of read operations
	c, err := buf.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte('h'), c)

	p := make([]byte, 4)
	n, err := buf.Read(p)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte("ello"), p)

	require.Equal(t, " world", buf.String())
}

func TestBufferEmptyOperations(t *testing.T) {
	buf := NewBuffer()

	// Test operations on empty buffer
	require.Equal(t, 0, buf.Len())
	require.Equal(t, "", buf.String())
	require.Equal(t, []byte{}, buf.Bytes())

	// Read from empty buffer
	p := make([]byte, 10)
	n, err := buf.Read(p)
	require.Equal(t, io.EOF, err)
	require.Equal(t, 0, n)

	// ReadByte from empty buffer
	_, err = buf.ReadByte()
	require.Equal(t, io.EOF, err)

	// Next from empty buffer
	result := buf.Next(5)
	require.Equal(t, []byte{}, result)
}

func TestBufferReadFrom(t *testing.T) {
	buf := NewBuffer()

	// Test reading from a string reader
	reader := strings.NewReader("hello world")
	n, err := buf.ReadFrom(reader)
	require.NoError(t, err)
	require.Equal(t, int64(11), n)
	require.Equal(t, "hello world", buf.String())
	require.Equal(t, 11, buf.Len())

	// Test reading from bytes reader
	buf.Reset()
	reader2 := bytes.NewReader([]byte("test data"))
	n, err = buf.ReadFrom(reader2)
	require.NoError(t, err)
	require.Equal(t, int64(9), n)
	require.Equal(t, "test data", buf.String())
}

func TestBufferReadFromLargeData(t *testing.T) {
	buf := NewBuffer()

	// Create large data (larger than 4KB read buffer)
	largeData := strings.Repeat("abcdefghijklmnopqrstuvwxyz", 200) // ~5.2KB
	reader := strings.NewReader(largeData)

	n, err := buf.ReadFrom(reader)
	require.NoError(t, err)
	require.Equal(t, int64(len(largeData)), n)
	require.Equal(t, largeData, buf.String())
	require.Equal(t, len(largeData), buf.Len())
}

func TestBufferReadFromEmptyReader(t *testing.T) {
	buf := NewBuffer()

	// Test reading from empty reader
	reader := strings.NewReader("")
	n, err := buf.ReadFrom(reader)
	require.NoError(t, err)
	require.Equal(t, int64(0), n)
	require.Equal(t, "", buf.String())
	require.Equal(t, 0, buf.Len())
}

func TestBufferReadFromMultipleReads(t *testing.T) {
	buf := NewBuffer()

	// Test multiple ReadFrom operations
	reader1 := strings.NewReader("hello ")
	n, err := buf.ReadFrom(reader1)
	require.NoError(t, err)
	require.Equal(t, int64(6), n)
	require.Equal(t, "hello ", buf.String())

	reader2 := strings.NewReader("world")
	n, err = buf.ReadFrom(reader2)
	require.NoError(t, err)
	require.Equal(t, int64(5), n)
	require.Equal(t, "hello world", buf.String())
	require.Equal(t, 11, buf.Len())
}

func TestBufferReadFromWithError(t *testing.T) {
	buf := NewBuffer()

	// Create a reader that will return an error
	errorReader := &errorReader{data: []byte("hello"), errPos: 3}
	n, err := buf.ReadFrom(errorReader)
	require.Error(t, err)
	require.Equal(t, "test error", err.Error())
	require.Equal(t, int64(3), n) // Should have read 3 bytes before error
	require.Equal(t, "hel", buf.String())
}

func TestBufferReadBufferLazyAllocation(t *testing.T) {
	buf := NewBuffer()

	// Initially read buffer should be nil
	require.Nil(t, buf.readBuf)

	// ReadFrom should allocate the buffer
	reader := strings.NewReader("test")
	n, err := buf.ReadFrom(reader)
	require.NoError(t, err)
	require.Equal(t, int64(4), n)
	require.Equal(t, "test", buf.String())
	require.NotNil(t, buf.readBuf) // Should be allocated
	require.Equal(t, 4*1024, len(buf.readBuf))
}

func TestBufferReadFromIoReaderFromCompatibility(t *testing.T) {
	buf := NewBuffer()

	// Test that it implements io.ReaderFrom
	var readerFrom io.ReaderFrom = buf
	require.NotNil(t, readerFrom)

	// Test reading through io.ReaderFrom interface
	reader := strings.NewReader("hello world")
	n, err := readerFrom.ReadFrom(reader)
	require.NoError(t, err)
	require.Equal(t, int64(11), n)
	require.Equal(t, "hello world", buf.String())
}

// errorReader is a test helper that returns an error after reading a certain number of bytes
type errorReader struct {
	data   []byte
	pos    int
	errPos int
}

func (er *errorReader) Read(p []byte) (n int, err error) {
	if er.pos >= er.errPos {
		return 0, errors.New("test error")
	}

	remaining := er.errPos - er.pos
	if len(p) > remaining {
		p = p[:remaining]
	}

	n = copy(p, er.data[er.pos:])
	er.pos += n
	return n, nil
}

// Benchmark tests
func BenchmarkBufferWrite(b *testing.B) {
	buf := NewBuffer()
	data := []byte("hello world")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Write(data)
		buf.Reset()
	}
}

func BenchmarkBufferRead(b *testing.B) {
	buf := NewBuffer()
	data := []byte("hello world")
	_, _ = buf.Write(data)

	p := make([]byte, len(data))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Read(p)
		buf.Reset()
		_, _ = buf.Write(data)
	}
}

func BenchmarkStandardBytesBufferWrite(b *testing.B) {
	buf := &bytes.Buffer{}
	data := []byte("hello world")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Write(data)
		buf.Reset()
	}
}

func BenchmarkStandardBytesBufferRead(b *testing.B) {
	buf := &bytes.Buffer{}
	data := []byte("hello world")
	_, _ = buf.Write(data)

	p := make([]byte, len(data))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Read(p)
		buf.Reset()
		_, _ = buf.Write(data)
	}
}

func BenchmarkBufferReadFrom(b *testing.B) {
	buf := NewBuffer()
	data := []byte("hello world")
	reader := bytes.NewReader(data)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.ReadFrom(reader)
		buf.Reset()
		reader.Seek(0, 0)
	}
}

func BenchmarkStandardBytesBufferReadFrom(b *testing.B) {
	buf := &bytes.Buffer{}
	data := []byte("hello world")
	reader := bytes.NewReader(data)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.ReadFrom(reader)
		buf.Reset()
		reader.Seek(0, 0)
	}
}
