package classfile

import (
	"encoding/binary"
	"math"
)

// Buffer is a forward-only, bounds-checked big-endian reader over a borrowed
// byte slice. A read that would cross the end of the slice fails without
// advancing the position.
type Buffer struct {
	data []byte
	pos  int
}

func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

func (b *Buffer) advance(size int) ([]byte, error) {
	if b.pos+size > len(b.data) {
		return nil, invalidClassData("class does not have expected length")
	}
	chunk := b.data[b.pos : b.pos+size]
	b.pos += size
	return chunk, nil
}

func (b *Buffer) ReadU8() (uint8, error) {
	chunk, err := b.advance(1)
	if err != nil {
		return 0, err
	}
	return chunk[0], nil
}

func (b *Buffer) ReadU16() (uint16, error) {
	chunk, err := b.advance(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(chunk), nil
}

func (b *Buffer) ReadU32() (uint32, error) {
	chunk, err := b.advance(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(chunk), nil
}

func (b *Buffer) ReadI32() (int32, error) {
	v, err := b.ReadU32()
	return int32(v), err
}

func (b *Buffer) ReadI64() (int64, error) {
	chunk, err := b.advance(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(chunk)), nil
}

func (b *Buffer) ReadF32() (float32, error) {
	v, err := b.ReadU32()
	return math.Float32frombits(v), err
}

func (b *Buffer) ReadF64() (float64, error) {
	chunk, err := b.advance(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(chunk)), nil
}

// ReadBytes consumes exactly n bytes. The returned slice aliases the
// underlying buffer and must not be held past the parse.
func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	return b.advance(n)
}

// ReadUTF8 consumes exactly n bytes and decodes them as the class file
// format's modified UTF-8.
func (b *Buffer) ReadUTF8(n int) (string, error) {
	chunk, err := b.advance(n)
	if err != nil {
		return "", err
	}
	return decodeModifiedUTF8(chunk)
}

func (b *Buffer) HasMoreData() bool {
	return b.pos < len(b.data)
}

// decodeModifiedUTF8 decodes the JVM's string encoding: NUL is two bytes,
// supplementary characters are surrogate pairs of 3-byte sequences, and the
// bytes 0x00 and 0xf0..0xff never appear. Malformed input is rejected.
func decodeModifiedUTF8(data []byte) (string, error) {
	runes := make([]rune, 0, len(data))
	i := 0
	for i < len(data) {
		b0 := data[i]
		switch {
		case b0 >= 0x01 && b0 <= 0x7f:
			runes = append(runes, rune(b0))
			i++
		case b0&0xe0 == 0xc0:
			if i+1 >= len(data) || data[i+1]&0xc0 != 0x80 {
				return "", invalidClassData("invalid utf8 data")
			}
			runes = append(runes, rune(b0&0x1f)<<6|rune(data[i+1]&0x3f))
			i += 2
		case b0&0xf0 == 0xe0:
			if i+2 >= len(data) || data[i+1]&0xc0 != 0x80 || data[i+2]&0xc0 != 0x80 {
				return "", invalidClassData("invalid utf8 data")
			}
			r := rune(b0&0x0f)<<12 | rune(data[i+1]&0x3f)<<6 | rune(data[i+2]&0x3f)
			i += 3
			if r >= 0xd800 && r <= 0xdbff && i+2 < len(data) &&
				data[i] == 0xed && data[i+1]&0xc0 == 0x80 && data[i+2]&0xc0 == 0x80 {
				low := rune(data[i]&0x0f)<<12 | rune(data[i+1]&0x3f)<<6 | rune(data[i+2]&0x3f)
				if low >= 0xdc00 && low <= 0xdfff {
					r = 0x10000 + (r-0xd800)<<10 + (low - 0xdc00)
					i += 3
				}
			}
			// An unpaired surrogate stays as-is; Java tolerates those.
			runes = append(runes, r)
		default:
			return "", invalidClassData("invalid utf8 data")
		}
	}
	return string(runes), nil
}
