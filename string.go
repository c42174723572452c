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

import "unicode/utf8"

// scanString decodes a string literal. The cursor must be positioned
// immediately after the opening quote; on success it is left
// immediately after the closing quote.
//
// The scan runs in two passes. The first measures the literal and
// tracks whether the raw region is printable ASCII with no escapes; if
// so the bytes are copied flat. Otherwise the region is rescanned with
// escape decoding into a fresh buffer.
func scanString(cur *cursor) (string, error) {
	start := cur.position()
	canCopy := true
	for {
		w, err := cur.any(ErrIncompleteString)
		if err != nil {
			return "", err
		}
		switch w {
		case '"':
			if canCopy {
				return string(cur.slice(start, cur.position()-1)), nil
			}
			return copyAndEscape(cur, start, cur.position()-1)
		case '\\':
			if _, err := cur.any(ErrInvalidEscapeSequence); err != nil {
				return "", err
			}
			canCopy = false
		default:
			if w >= 128 || w <= 31 {
				canCopy = false
			}
		}
	}
}

// copyAndEscape rescans [start, end) with escape decoding. Escape
// expansions never grow the payload, so the destination is capped at
// the raw length.
func copyAndEscape(cur *cursor, start, end int) (string, error) {
	cur.rewind(cur.position() - start)
	dst := make([]byte, 0, end-start)
	for {
		b, err := cur.any(ErrIncompleteString)
		if err != nil {
			return "", err
		}
		switch {
		case b == '"':
			return string(dst), nil
		case b == '\\':
			esc, err := cur.any(ErrInvalidEscapeSequence)
			if err != nil {
				return "", err
			}
			switch esc {
			case '"':
				dst = append(dst, '"')
			case '\\':
				dst = append(dst, '\\')
			case '/':
				dst = append(dst, '/')
			case 't':
				dst = append(dst, '\t')
			case 'n':
				dst = append(dst, '\n')
			case 'r':
				dst = append(dst, '\r')
			case 'b':
				dst = append(dst, '\b')
			case 'f':
				dst = append(dst, '\f')
			case 'u':
				w, err := cur.hexWord()
				if err != nil {
					return "", err
				}
				r := rune(w)
				if r >= 0xD800 && r <= 0xDFFF {
					// Lone surrogates cannot be emitted as UTF-8.
					r = utf8.RuneError
				}
				dst = utf8.AppendRune(dst, r)
			default:
				return "", ErrInvalidEscapeSequence
			}
		case b < 0x80:
			dst = append(dst, b)
		default:
			// Multi-byte sequence: decode one code point and re-encode.
			cur.rewind(1)
			r, size := utf8.DecodeRune(cur.slice(cur.position(), end))
			cur.off += size
			dst = utf8.AppendRune(dst, r)
		}
	}
}
