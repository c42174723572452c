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
	"errors"
	"testing"
)

func TestNumberGrammar(t *testing.T) {
	validTests := []string{
		"0",
		"-0",
		"1",
		"-1",
		"0.1",
		"-0.1",
		"1234",
		"-1234",
		"12.34",
		"-12.34",
		"12E0",
		"12E1",
		"12e34",
		"12E-0",
		"12e+1",
		"12e-34",
		"-12E0",
		"-12e+1",
		"-12e-34",
		"1.2E0",
		"1.2e+34",
		"0e1",
		"0.00",
	}
	for _, tt := range validTests {
		v, err := Parse([]byte(tt))
		if err != nil {
			t.Errorf("%q: %v", tt, err)
			continue
		}
		if v.Tag() != TagNumber {
			t.Errorf("%q: got %s, want number", tt, v.Tag())
		}
	}

	invalidTests := []string{
		"1.",
		"-1.",
		".1",
		"-.1",
		"1.e1",
		"1e",
		"1E+",
		"1e-",
		"-",
		"--1",
		"+1",
		"1a",
		"01",
		"-012",
		"1.2.3",
	}
	for _, tt := range invalidTests {
		if _, err := Parse([]byte(tt)); err == nil {
			t.Errorf("%q: expected error", tt)
		}
	}
}

func TestNumberExactness(t *testing.T) {
	tests := []struct {
		in    string
		i32   int64
		i32ok bool
		i64   int64
		i64ok bool
	}{
		{in: "0", i32: 0, i32ok: true, i64: 0, i64ok: true},
		{in: "-0", i32: 0, i32ok: true, i64: 0, i64ok: true},
		{in: "55e2", i32: 5500, i32ok: true, i64: 5500, i64ok: true},
		{in: "10e-1", i32: 1, i32ok: true, i64: 1, i64ok: true},
		{in: "2147483647", i32: 2147483647, i32ok: true, i64: 2147483647, i64ok: true},
		{in: "-2147483648", i32: -2147483648, i32ok: true, i64: -2147483648, i64ok: true},
		{in: "2147483648", i32ok: false, i64: 2147483648, i64ok: true},
		{in: "-2147483649", i32ok: false, i64: -2147483649, i64ok: true},
		{in: "9223372036854775807", i32ok: false, i64: 9223372036854775807, i64ok: true},
		{in: "-9223372036854775808", i32ok: false, i64: -9223372036854775808, i64ok: true},
		{in: "9223372036854775808", i32ok: false, i64ok: false},
		{in: "1.5", i32ok: false, i64ok: false},
		{in: "0.5", i32ok: false, i64ok: false},
		{in: "1e19", i32ok: false, i64ok: false},
	}
	for _, tt := range tests {
		v, err := Parse([]byte(tt.in))
		if err != nil {
			t.Errorf("%q: %v", tt.in, err)
			continue
		}
		n := v.(Number)
		if i, ok := n.Int32(); ok != tt.i32ok || (ok && int64(i) != tt.i32) {
			t.Errorf("%q: Int32() = %d, %v; want %d, %v", tt.in, i, ok, tt.i32, tt.i32ok)
		}
		if i, ok := n.Int64(); ok != tt.i64ok || (ok && i != tt.i64) {
			t.Errorf("%q: Int64() = %d, %v; want %d, %v", tt.in, i, ok, tt.i64, tt.i64ok)
		}
	}
}

func TestNumberParts(t *testing.T) {
	v, err := Parse([]byte("-12.5e3"))
	if err != nil {
		t.Fatal(err)
	}
	coeff, exp, ok := v.(Number).wordParts()
	if !ok || coeff != -125 || exp != 2 {
		t.Errorf("wordParts() = %d, %d, %v; want -125, 2, true", coeff, exp, ok)
	}

	big := "123456789012345678901234567890"
	v, err = Parse([]byte(big))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, ok := v.(Number).wordParts(); ok {
		t.Error("wordParts() should not fit a 30 digit coefficient")
	}
	bc, bexp := v.(Number).bigParts()
	if bc.String() != big || bexp != 0 {
		t.Errorf("bigParts() = %s, %d; want %s, 0", bc, bexp, big)
	}
}

func TestNumberExponentRange(t *testing.T) {
	// The exponent is 32 bits end to end; anything beyond is rejected
	// at parse time rather than silently wrapped.
	if _, err := Parse([]byte("1e99999999999")); !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("got %v, want %v", err, ErrInvalidNumber)
	}
}
