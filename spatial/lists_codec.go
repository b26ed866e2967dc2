package spatial

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/spatialgo/distance"
	"github.com/hupe1980/spatialgo/internal/conv"
	"github.com/hupe1980/spatialgo/internal/hash"
)

// Compression selects the block compression of an encoded neighbor graph.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionLZ4
	CompressionZstd
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

// ParseCompression resolves a compression by name. The empty string means none.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("spatial: unknown compression %q", name)
	}
}

const listsVersion = 3

var listsMagic = [4]byte{'S', 'P', 'N', 'B'}

// maxEncodedEntries bounds counts read from an untrusted header.
const maxEncodedEntries = 1 << 31

// decodeChunk is the number of entries read per step, so a forged header
// cannot force an allocation larger than the payload actually present.
const decodeChunk = 1 << 16

// Key identifies the parameters a neighbor graph was built with. Lists are
// only reusable for a dataset and engine producing the same key.
type Key struct {
	Radius    float64
	Metric    distance.Metric
	Minkowski distance.MinkowskiMode
	// Groups is the CRC32C of the little-endian group labels.
	Groups uint32
}

// NewKey returns the key of a graph built over groups with the given metric
// and radius.
func NewKey(radius float64, metric distance.Metric, mode distance.MinkowskiMode, groups []int32) Key {
	crc := hash.NewCRC32C()
	var b [4]byte
	for _, g := range groups {
		binary.LittleEndian.PutUint32(b[:], uint32(g))
		_, _ = crc.Write(b[:])
	}
	return Key{Radius: radius, Metric: metric, Minkowski: mode, Groups: crc.Sum32()}
}

// Check returns ErrStaleLists when k differs from want.
func (k Key) Check(want Key) error {
	if k == want {
		return nil
	}
	return fmt.Errorf("%w: built with %+v, want %+v", ErrStaleLists, k, want)
}

type encodedKey struct {
	Radius    float64
	Metric    uint8
	Minkowski uint8
	Groups    uint32
}

// Encode writes the lists and the key they were built with as:
//
//	magic "SPNB" | version u8 | compression u8 | body
//	body = radius f64 | metric u8 | minkowski u8 | groups u32 |
//	       n u32 | total u32 | count[n] u32 | index[total] i32 | crc u32   (little endian)
//
// crc is the CRC32C of the body bytes before it. The body is compressed with c.
func (l *Lists) Encode(w io.Writer, c Compression, key Key) error {
	if _, err := w.Write(append(listsMagic[:], listsVersion, byte(c))); err != nil {
		return err
	}

	var (
		body   io.Writer
		closer io.Closer
	)
	switch c {
	case CompressionNone:
		bw := bufio.NewWriter(w)
		body, closer = bw, flushCloser{bw}
	case CompressionLZ4:
		zw := lz4.NewWriter(w)
		body, closer = zw, zw
	case CompressionZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}
		body, closer = zw, zw
	default:
		return fmt.Errorf("spatial: unknown compression %v", c)
	}

	if err := l.writeBody(body, key); err != nil {
		_ = closer.Close()
		return err
	}
	return closer.Close()
}

func (l *Lists) writeBody(w io.Writer, key Key) error {
	n, err := conv.IntToUint32(l.Len())
	if err != nil {
		return fmt.Errorf("spatial: point count: %w", err)
	}
	total, err := conv.IntToUint32(l.Total())
	if err != nil {
		return fmt.Errorf("spatial: entry count: %w", err)
	}

	counts := make([]uint32, n)
	for i := range counts {
		counts[i] = uint32(l.Count(i))
	}

	crc := hash.NewCRC32C()
	mw := io.MultiWriter(w, crc)
	ek := encodedKey{
		Radius:    key.Radius,
		Metric:    uint8(key.Metric),
		Minkowski: uint8(key.Minkowski),
		Groups:    key.Groups,
	}
	if err := binary.Write(mw, binary.LittleEndian, ek); err != nil {
		return err
	}
	if err := binary.Write(mw, binary.LittleEndian, [2]uint32{n, total}); err != nil {
		return err
	}
	if err := binary.Write(mw, binary.LittleEndian, counts); err != nil {
		return err
	}
	if err := binary.Write(mw, binary.LittleEndian, l.index); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, crc.Sum32())
}

// DecodeLists reads lists written by Encode and returns them with their key.
func DecodeLists(r io.Reader) (*Lists, Key, error) {
	var hdr [6]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, Key{}, fmt.Errorf("%w: header: %w", ErrCorruptLists, err)
	}
	if [4]byte(hdr[:4]) != listsMagic {
		return nil, Key{}, fmt.Errorf("%w: bad magic", ErrCorruptLists)
	}
	if hdr[4] != listsVersion {
		return nil, Key{}, fmt.Errorf("%w: unsupported version %d", ErrCorruptLists, hdr[4])
	}

	var body io.Reader
	switch Compression(hdr[5]) {
	case CompressionNone:
		body = bufio.NewReader(r)
	case CompressionLZ4:
		body = lz4.NewReader(r)
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, Key{}, err
		}
		defer zr.Close()
		body = zr
	default:
		return nil, Key{}, fmt.Errorf("%w: unknown compression %d", ErrCorruptLists, hdr[5])
	}

	l, key, err := readBody(body)
	if err != nil {
		if errors.Is(err, ErrCorruptLists) {
			return nil, Key{}, err
		}
		return nil, Key{}, fmt.Errorf("%w: %w", ErrCorruptLists, err)
	}
	return l, key, nil
}

func readBody(src io.Reader) (*Lists, Key, error) {
	crc := hash.NewCRC32C()
	r := io.TeeReader(src, crc)

	var ek encodedKey
	if err := binary.Read(r, binary.LittleEndian, &ek); err != nil {
		return nil, Key{}, err
	}
	key := Key{
		Radius:    ek.Radius,
		Metric:    distance.Metric(ek.Metric),
		Minkowski: distance.MinkowskiMode(ek.Minkowski),
		Groups:    ek.Groups,
	}

	var sizes [2]uint32
	if err := binary.Read(r, binary.LittleEndian, &sizes); err != nil {
		return nil, Key{}, err
	}
	if sizes[0] >= maxEncodedEntries || sizes[1] >= maxEncodedEntries {
		return nil, Key{}, fmt.Errorf("%w: %d points, %d entries", ErrCorruptLists, sizes[0], sizes[1])
	}
	n, err := conv.Uint32ToInt(sizes[0])
	if err != nil {
		return nil, Key{}, err
	}
	total, err := conv.Uint32ToInt(sizes[1])
	if err != nil {
		return nil, Key{}, err
	}

	counts, err := readChunked[uint32](r, n)
	if err != nil {
		return nil, Key{}, err
	}
	l := &Lists{offsets: make([]int, n+1)}
	for i, c := range counts {
		l.offsets[i+1] = l.offsets[i] + int(c)
	}
	if l.offsets[n] != total {
		return nil, Key{}, fmt.Errorf("%w: counts sum to %d, header says %d", ErrCorruptLists, l.offsets[n], total)
	}
	if l.index, err = readChunked[int32](r, total); err != nil {
		return nil, Key{}, err
	}

	want := crc.Sum32()
	var got uint32
	if err := binary.Read(src, binary.LittleEndian, &got); err != nil {
		return nil, Key{}, err
	}
	if got != want {
		return nil, Key{}, fmt.Errorf("%w: checksum %08x, want %08x", ErrCorruptLists, got, want)
	}
	return l, key, nil
}

// readChunked reads n little-endian values, growing the result only as
// payload arrives.
func readChunked[T uint32 | int32](r io.Reader, n int) ([]T, error) {
	out := make([]T, 0, min(n, decodeChunk))
	buf := make([]T, min(n, decodeChunk))
	for len(out) < n {
		chunk := buf[:min(n-len(out), len(buf))]
		if err := binary.Read(r, binary.LittleEndian, chunk); err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
	return out, nil
}

type flushCloser struct{ w *bufio.Writer }

func (f flushCloser) Close() error { return f.w.Flush() }
