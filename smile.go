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

import "encoding/binary"

// SMILE token bytes. Shared-string, shared-key and back-reference
// tokens are never emitted.
const (
	smileNull  = 0x21
	smileFalse = 0x22
	smileTrue  = 0x23

	smileInt32      = 0x24
	smileInt64      = 0x25
	smileBigDecimal = 0x2A

	smileLongUnicode = 0xE4
	smileStringEnd   = 0xFC

	smileEmptyKey    = 0x20
	smileKeyByte     = 0x80
	smileShortKey    = 0xC0 // + (length - 2), lengths 2 through 55
	smileLongKey     = 0x34
	smileMaxShortKey = 55

	smileStartArray  = 0xF8
	smileEndArray    = 0xF9
	smileStartObject = 0xFA
	smileEndObject   = 0xFB
)

// AppendSmile appends the SMILE encoding of v to dst, starting with the
// 4-byte header. It fails with ErrNumberTooLarge when a number's
// coefficient does not fit in a machine word.
func AppendSmile(dst []byte, v Value) ([]byte, error) {
	dst = append(dst, ':', ')', '\n', 0x00)
	return appendSmileValue(dst, v)
}

func appendSmileValue(dst []byte, v Value) ([]byte, error) {
	switch v := v.(type) {
	case Null:
		return append(dst, smileNull), nil
	case False:
		return append(dst, smileFalse), nil
	case True:
		return append(dst, smileTrue), nil
	case String:
		dst = append(dst, smileLongUnicode)
		dst = append(dst, v...)
		return append(dst, smileStringEnd), nil
	case Number:
		return appendSmileNumber(dst, v)
	case Array:
		dst = append(dst, smileStartArray)
		var err error
		for _, e := range v {
			if dst, err = appendSmileValue(dst, e); err != nil {
				return nil, err
			}
		}
		return append(dst, smileEndArray), nil
	case Object:
		dst = append(dst, smileStartObject)
		var err error
		for _, m := range v {
			dst = appendSmileKey(dst, m.Key)
			if dst, err = appendSmileValue(dst, m.Value); err != nil {
				return nil, err
			}
		}
		return append(dst, smileEndObject), nil
	}
	panic("unknown value type")
}

// appendSmileNumber classifies in order: exact int32, exact int64, then
// the big decimal token with a machine word coefficient.
func appendSmileNumber(dst []byte, n Number) ([]byte, error) {
	if i, ok := n.Int32(); ok {
		dst = append(dst, smileInt32)
		return binary.AppendVarint(dst, int64(i)), nil
	}
	if i, ok := n.Int64(); ok {
		dst = append(dst, smileInt64)
		return binary.AppendVarint(dst, i), nil
	}
	coeff, exp, ok := n.wordParts()
	if !ok {
		return nil, ErrNumberTooLarge
	}
	dst = append(dst, smileBigDecimal)
	dst = binary.AppendVarint(dst, int64(exp))
	dst = binary.AppendUvarint(dst, 8)
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], uint64(coeff))
	return appendPacked(dst, raw[:]), nil
}

func appendSmileKey(dst []byte, key string) []byte {
	switch n := len(key); {
	case n == 0:
		return append(dst, smileEmptyKey)
	case n == 1:
		return append(dst, smileKeyByte, key[0])
	case n <= smileMaxShortKey:
		dst = append(dst, byte(smileShortKey+n-2))
		return append(dst, key...)
	default:
		dst = append(dst, smileLongKey)
		dst = append(dst, key...)
		return append(dst, smileStringEnd)
	}
}

// appendPacked emits src in the SMILE safe-binary layout: every 7 input
// bytes become 8 output bytes whose top bits are clear, high bits
// first. The final partial group is left aligned with zero padding.
func appendPacked(dst, src []byte) []byte {
	for len(src) >= 7 {
		var bits uint64
		for _, b := range src[:7] {
			bits = bits<<8 | uint64(b)
		}
		for shift := 49; shift >= 0; shift -= 7 {
			dst = append(dst, byte(bits>>uint(shift))&0x7F)
		}
		src = src[7:]
	}
	if n := len(src); n > 0 {
		var bits uint64
		for _, b := range src {
			bits = bits<<8 | uint64(b)
		}
		out := n + 1
		bits <<= uint(out*7 - n*8)
		for shift := (out - 1) * 7; shift >= 0; shift -= 7 {
			dst = append(dst, byte(bits>>uint(shift))&0x7F)
		}
	}
	return dst
}
