/*
 * MinIO Cloud Storage, (C) 2022 MinIO, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package smilejson

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

const (
	stringBits        = 14
	stringSize        = 1 << stringBits
	stringmask        = stringSize - 1
	serializedVersion = 1
)

// Serializer converts a value tree to a compact binary representation
// and reads it back. A Serializer can be reused, but not used
// concurrently.
type Serializer struct {
	// Preorder tag per node.
	tagsBuf []byte
	// Counts and string references, uvarint encoded.
	valuesBuf []byte
	// Deduplicated string payloads, including number text.
	stringBuf    []byte
	stringsTable [stringSize]uint32

	compTags    uint8
	compValues  uint8
	compStrings uint8
	fasterComp  bool
}

// NewSerializer will create and initialize a Serializer.
func NewSerializer() *Serializer {
	initSerializerOnce.Do(initSerializer)
	var s Serializer
	s.CompressMode(CompressDefault)
	return &s
}

type CompressMode uint8

const (
	// CompressNone no compression whatsoever.
	CompressNone CompressMode = iota

	// CompressFast will apply light compression with the fastest settings.
	CompressFast

	// CompressDefault applies light compression.
	CompressDefault

	// CompressBest applies the strongest compression.
	CompressBest
)

func (s *Serializer) CompressMode(c CompressMode) {
	switch c {
	case CompressNone:
		s.compValues = blockTypeUncompressed
		s.compTags = blockTypeUncompressed
		s.compStrings = blockTypeUncompressed
	case CompressFast:
		s.compValues = blockTypeS2
		s.compTags = blockTypeS2
		s.compStrings = blockTypeS2
		s.fasterComp = true
	case CompressDefault:
		s.compValues = blockTypeS2
		s.compTags = blockTypeS2
		s.compStrings = blockTypeS2
	case CompressBest:
		s.compValues = blockTypeZstd
		s.compTags = blockTypeZstd
		s.compStrings = blockTypeZstd
	default:
		panic("unknown compression mode")
	}
}

// Serialize the value tree and return the data.
// An optional destination can be provided.
func (s *Serializer) Serialize(dst []byte, v Value) []byte {
	// Serialized format:
	// - Header: Version (byte)
	// - Uncompressed strings size (varuint)
	// - Strings Block
	// - Uncompressed tags size (varuint)
	// - Tags Block
	// - Uncompressed values size (varuint)
	// - Values Block
	//
	// Blocks:
	//  - Size of entire block following (varuint)
	//  - Block type, byte:
	//     0: uncompressed, rest is data.
	//     1: S2 block.
	//     2: Zstd block.
	//  - Compressed data.
	//
	// The tags stream holds one tag byte per node, preorder. The values
	// stream holds uvarints: member/element counts for collections and
	// (offset, length) pairs into the string block for strings, object
	// keys and number text.

	// Reset lookup table.
	// Offsets are stored +1, so 0 indicates an unfilled entry.
	for i := range s.stringsTable[:] {
		s.stringsTable[i] = 0
	}
	s.tagsBuf = s.tagsBuf[:0]
	s.valuesBuf = s.valuesBuf[:0]
	s.stringBuf = s.stringBuf[:0]

	s.walkValue(v)

	dst = append(dst, serializedVersion)
	dst = s.appendBlock(dst, s.compStrings, s.stringBuf)
	dst = s.appendBlock(dst, s.compTags, s.tagsBuf)
	dst = s.appendBlock(dst, s.compValues, s.valuesBuf)
	return dst
}

func (s *Serializer) walkValue(v Value) {
	s.tagsBuf = append(s.tagsBuf, byte(v.Tag()))
	switch v := v.(type) {
	case String:
		s.appendStringRef(string(v))
	case Number:
		s.appendStringRef(v.String())
	case Array:
		s.valuesBuf = binary.AppendUvarint(s.valuesBuf, uint64(len(v)))
		for _, e := range v {
			s.walkValue(e)
		}
	case Object:
		s.valuesBuf = binary.AppendUvarint(s.valuesBuf, uint64(len(v)))
		for _, m := range v {
			s.appendStringRef(m.Key)
			s.walkValue(m.Value)
		}
	}
}

func (s *Serializer) appendStringRef(str string) {
	s.valuesBuf = binary.AppendUvarint(s.valuesBuf, s.indexString(str))
	s.valuesBuf = binary.AppendUvarint(s.valuesBuf, uint64(len(str)))
}

// indexString deduplicates strings through a best-effort hash table and
// returns the offset of str in the string block.
func (s *Serializer) indexString(str string) uint64 {
	h := fnv1a(str) & stringmask
	off := int(s.stringsTable[h]) - 1
	end := off + len(str)
	if off >= 0 && end <= len(s.stringBuf) && string(s.stringBuf[off:end]) == str {
		return uint64(off)
	}
	off = len(s.stringBuf)
	s.stringBuf = append(s.stringBuf, str...)
	s.stringsTable[h] = uint32(off + 1)
	return uint64(off)
}

func fnv1a(s string) uint32 {
	const prime32 = 16777619
	h := uint32(2166136261)
	for i := 0; i < len(s); i++ {
		h = (h ^ uint32(s[i])) * prime32
	}
	return h
}

func (s *Serializer) appendBlock(dst []byte, mode uint8, data []byte) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(data)))
	var comp []byte
	switch mode {
	case blockTypeUncompressed:
		comp = data
	case blockTypeS2:
		if s.fasterComp {
			comp = s2.Encode(nil, data)
		} else {
			comp = s2.EncodeBetter(nil, data)
		}
	case blockTypeZstd:
		comp = zEnc.EncodeAll(data, nil)
	default:
		panic("unknown compression type")
	}
	dst = binary.AppendUvarint(dst, uint64(len(comp)+1))
	dst = append(dst, mode)
	return append(dst, comp...)
}

// Deserialize reconstructs a value tree serialized by Serialize.
func (s *Serializer) Deserialize(src []byte) (Value, error) {
	initSerializerOnce.Do(initSerializer)
	br := bytes.NewBuffer(src)
	v, err := br.ReadByte()
	if err != nil {
		return nil, err
	}
	if v != serializedVersion {
		return nil, fmt.Errorf("unknown version: 0x%x", v)
	}
	strings, err := decBlock(br)
	if err != nil {
		return nil, fmt.Errorf("reading strings: %w", err)
	}
	tags, err := decBlock(br)
	if err != nil {
		return nil, fmt.Errorf("reading tags: %w", err)
	}
	values, err := decBlock(br)
	if err != nil {
		return nil, fmt.Errorf("reading values: %w", err)
	}
	d := deserializer{tags: tags, values: values, strings: strings}
	val, err := d.next()
	if err != nil {
		return nil, err
	}
	if d.tagOff != len(d.tags) {
		return nil, fmt.Errorf("%d trailing tags after tree", len(d.tags)-d.tagOff)
	}
	if d.valOff != len(d.values) {
		return nil, fmt.Errorf("%d trailing value bytes after tree", len(d.values)-d.valOff)
	}
	return val, nil
}

func decBlock(br *bytes.Buffer) ([]byte, error) {
	want, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, err
	}
	size, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, err
	}
	if size > uint64(br.Len()) {
		return nil, fmt.Errorf("block size (%d) extends beyond input (%d)", size, br.Len())
	}
	if size < 1 {
		return nil, fmt.Errorf("block size (%d) too small", size)
	}
	typ, err := br.ReadByte()
	if err != nil {
		return nil, err
	}
	size--
	compressed := br.Next(int(size))
	if uint64(len(compressed)) != size {
		return nil, fmt.Errorf("short block section")
	}
	var dst []byte
	switch typ {
	case blockTypeUncompressed:
		dst = compressed
	case blockTypeS2:
		dst, err = s2.Decode(nil, compressed)
		if err != nil {
			return nil, err
		}
	case blockTypeZstd:
		dst, err = zDec.DecodeAll(compressed, nil)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown compression type: %d", typ)
	}
	if uint64(len(dst)) != want {
		return nil, fmt.Errorf("decompressed size mismatch, want %d, got %d", want, len(dst))
	}
	return dst, nil
}

type deserializer struct {
	tags    []byte
	values  []byte
	strings []byte
	tagOff  int
	valOff  int
}

func (d *deserializer) uvarint() (uint64, error) {
	v, n := binary.Uvarint(d.values[d.valOff:])
	if n <= 0 {
		return 0, fmt.Errorf("corrupt values stream at offset %d", d.valOff)
	}
	d.valOff += n
	return v, nil
}

func (d *deserializer) stringRef() (string, error) {
	off, err := d.uvarint()
	if err != nil {
		return "", err
	}
	length, err := d.uvarint()
	if err != nil {
		return "", err
	}
	if off > uint64(len(d.strings)) || length > uint64(len(d.strings))-off {
		return "", fmt.Errorf("string (%d+%d) outside string block (%d)", off, length, len(d.strings))
	}
	return string(d.strings[off : off+length]), nil
}

func (d *deserializer) count() (int, error) {
	n, err := d.uvarint()
	if err != nil {
		return 0, err
	}
	// Every element carries at least one tag, so the remaining tag
	// stream bounds any honest count.
	if n > uint64(len(d.tags)-d.tagOff) {
		return 0, fmt.Errorf("count (%d) exceeds remaining tags (%d)", n, len(d.tags)-d.tagOff)
	}
	return int(n), nil
}

func (d *deserializer) next() (Value, error) {
	if d.tagOff >= len(d.tags) {
		return nil, fmt.Errorf("tag stream ended inside tree")
	}
	tag := Tag(d.tags[d.tagOff])
	d.tagOff++
	switch tag {
	case TagNull:
		return Null{}, nil
	case TagTrue:
		return True{}, nil
	case TagFalse:
		return False{}, nil
	case TagString:
		str, err := d.stringRef()
		if err != nil {
			return nil, err
		}
		return String(str), nil
	case TagNumber:
		str, err := d.stringRef()
		if err != nil {
			return nil, err
		}
		var n Number
		if _, _, err := n.dec.SetString(str); err != nil {
			return nil, fmt.Errorf("corrupt number text %q", str)
		}
		return n, nil
	case TagArray:
		n, err := d.count()
		if err != nil {
			return nil, err
		}
		arr := make(Array, 0, n)
		for i := 0; i < n; i++ {
			e, err := d.next()
			if err != nil {
				return nil, err
			}
			arr = append(arr, e)
		}
		return arr, nil
	case TagObject:
		n, err := d.count()
		if err != nil {
			return nil, err
		}
		obj := make(Object, 0, n)
		for i := 0; i < n; i++ {
			key, err := d.stringRef()
			if err != nil {
				return nil, err
			}
			v, err := d.next()
			if err != nil {
				return nil, err
			}
			obj = append(obj, Member{Key: key, Value: v})
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unknown tag: 0x%x", uint8(tag))
	}
}

const (
	blockTypeUncompressed byte = 0
	blockTypeS2           byte = 1
	blockTypeZstd         byte = 2
)

var (
	zEnc *zstd.Encoder
	zDec *zstd.Decoder
)

var initSerializerOnce sync.Once

func initSerializer() {
	zEnc, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest), zstd.WithEncoderCRC(false))
	zDec, _ = zstd.NewReader(nil)
}
