package eventlog

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"

	"github.com/sibexico/pagesim/paging"
)

// Compression represents the compression algorithm applied to the payload
type Compression uint8

const (
	CompressionNone   Compression = 0
	CompressionLZ4    Compression = 1
	CompressionSnappy Compression = 2
)

// String returns string representation of Compression
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionSnappy:
		return "snappy"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression resolves a compression name as used in paging.Config
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "snappy":
		return CompressionSnappy, nil
	default:
		return 0, paging.ErrInvalidConfiguration("ParseCompression", "unsupported compression: "+name)
	}
}

// Container header layout:
// [0-1]: Magic number (0xE7E1)
// [2]: Compression type (0=none, 1=LZ4, 2=Snappy)
// [3]: Reserved
// [4-7]: Uncompressed payload size
// [8-11]: Record count
// [12-15]: Stored payload size
//
// Record layout (little endian, RecordSize bytes):
// Seq(8) | Kind(1) | Flags(1) | Boundary(1) | Page(8) | Frame(4) | Slot(4) | Evicted(8)
const (
	Magic          = 0xE7E1
	HeaderSize     = 16
	RecordSize     = 35
	maxPayloadSize = 1 << 30

	flagReplay     = 1 << 0
	flagHasEvicted = 1 << 1
)

func putRecord(buf []byte, ev paging.Event) {
	binary.LittleEndian.PutUint64(buf[0:], ev.Seq)
	buf[8] = byte(ev.Kind)

	var flags byte
	if ev.Replay {
		flags |= flagReplay
	}
	var evicted int64
	if ev.Evicted != nil {
		flags |= flagHasEvicted
		evicted = int64(*ev.Evicted)
	}
	buf[9] = flags
	buf[10] = byte(ev.Boundary)

	binary.LittleEndian.PutUint64(buf[11:], uint64(int64(ev.Page)))
	binary.LittleEndian.PutUint32(buf[19:], uint32(int32(ev.Frame)))
	binary.LittleEndian.PutUint32(buf[23:], uint32(int32(ev.Slot)))
	binary.LittleEndian.PutUint64(buf[27:], uint64(evicted))
}

func readRecord(buf []byte) paging.Event {
	ev := paging.Event{
		Seq:      binary.LittleEndian.Uint64(buf[0:]),
		Kind:     paging.EventKind(buf[8]),
		Replay:   buf[9]&flagReplay != 0,
		Boundary: paging.Boundary(buf[10]),
		Page:     paging.Page(int64(binary.LittleEndian.Uint64(buf[11:]))),
		Frame:    int(int32(binary.LittleEndian.Uint32(buf[19:]))),
		Slot:     int(int32(binary.LittleEndian.Uint32(buf[23:]))),
	}
	if buf[9]&flagHasEvicted != 0 {
		evicted := paging.Page(int64(binary.LittleEndian.Uint64(buf[27:])))
		ev.Evicted = &evicted
	}
	return ev
}

// compress returns the stored payload and the algorithm actually used.
// Incompressible or empty payloads are stored uncompressed.
func compress(raw []byte, c Compression) ([]byte, Compression, error) {
	if len(raw) == 0 {
		return raw, CompressionNone, nil
	}

	switch c {
	case CompressionNone:
		return raw, CompressionNone, nil

	case CompressionLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := lz4.CompressBlock(raw, dst, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("LZ4 compression failed: %w", err)
		}
		if n == 0 || n >= len(raw) {
			return raw, CompressionNone, nil
		}
		return dst[:n], CompressionLZ4, nil

	case CompressionSnappy:
		dst := snappy.Encode(nil, raw)
		if len(dst) >= len(raw) {
			return raw, CompressionNone, nil
		}
		return dst, CompressionSnappy, nil

	default:
		return nil, 0, fmt.Errorf("unsupported compression type: %d", c)
	}
}

func decompress(payload []byte, c Compression, rawLen int) ([]byte, error) {
	switch c {
	case CompressionNone:
		if len(payload) != rawLen {
			return nil, fmt.Errorf("payload size mismatch: got %d, expected %d", len(payload), rawLen)
		}
		return payload, nil

	case CompressionLZ4:
		raw := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(payload, raw)
		if err != nil {
			return nil, fmt.Errorf("LZ4 decompression failed: %w", err)
		}
		if n != rawLen {
			return nil, fmt.Errorf("LZ4 decompression size mismatch: got %d, expected %d", n, rawLen)
		}
		return raw, nil

	case CompressionSnappy:
		raw, err := snappy.Decode(nil, payload)
		if err != nil {
			return nil, fmt.Errorf("snappy decompression failed: %w", err)
		}
		if len(raw) != rawLen {
			return nil, fmt.Errorf("snappy decompression size mismatch: got %d, expected %d", len(raw), rawLen)
		}
		return raw, nil

	default:
		return nil, fmt.Errorf("unsupported compression type: %d", c)
	}
}

// Encode writes events to w as a single container
func Encode(w io.Writer, events []paging.Event, c Compression) error {
	raw := make([]byte, len(events)*RecordSize)
	for i, ev := range events {
		putRecord(raw[i*RecordSize:], ev)
	}

	payload, used, err := compress(raw, c)
	if err != nil {
		return paging.ErrExport("Encode", err)
	}

	header := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint16(header[0:], Magic)
	header[2] = byte(used)
	binary.LittleEndian.PutUint32(header[4:], uint32(len(raw)))
	binary.LittleEndian.PutUint32(header[8:], uint32(len(events)))
	binary.LittleEndian.PutUint32(header[12:], uint32(len(payload)))

	if _, err := w.Write(header); err != nil {
		return paging.ErrExport("Encode", err)
	}
	if _, err := w.Write(payload); err != nil {
		return paging.ErrExport("Encode", err)
	}
	return nil
}

// Decode reads one container written by Encode
func Decode(r io.Reader) ([]paging.Event, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, paging.NewSimError(paging.ErrCodeEventLogCorrupted, "Decode", "truncated header", err)
	}

	if binary.LittleEndian.Uint16(header[0:]) != Magic {
		return nil, paging.ErrEventLogCorrupted("Decode", "bad magic number")
	}

	c := Compression(header[2])
	rawLen := int(binary.LittleEndian.Uint32(header[4:]))
	count := int(binary.LittleEndian.Uint32(header[8:]))
	payloadLen := int(binary.LittleEndian.Uint32(header[12:]))

	if rawLen != count*RecordSize {
		return nil, paging.ErrEventLogCorrupted("Decode",
			fmt.Sprintf("record count %d does not match payload size %d", count, rawLen))
	}
	if payloadLen > maxPayloadSize || rawLen > maxPayloadSize {
		return nil, paging.ErrEventLogCorrupted("Decode", "payload too large")
	}

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, paging.NewSimError(paging.ErrCodeEventLogCorrupted, "Decode", "truncated payload", err)
	}

	raw, err := decompress(payload, c, rawLen)
	if err != nil {
		return nil, paging.NewSimError(paging.ErrCodeEventLogCorrupted, "Decode", "bad payload", err)
	}

	events := make([]paging.Event, count)
	for i := range events {
		events[i] = readRecord(raw[i*RecordSize:])
	}
	return events, nil
}
