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
	"math"
	"math/big"

	"github.com/cockroachdb/apd/v3"
)

// Number is a JSON number, kept exact as coefficient times ten to the
// exponent. The coefficient is arbitrary precision; the exponent is
// 32 bits.
type Number struct {
	dec apd.Decimal
}

// NewNumber returns the number coeff * 10^exponent.
func NewNumber(coeff int64, exponent int32) Number {
	return Number{dec: *apd.New(coeff, exponent)}
}

// String returns the number in decimal notation, valid as a JSON
// number literal.
func (n Number) String() string {
	return n.dec.String()
}

// Int64 returns the number as an int64 if it is exactly representable.
func (n Number) Int64() (int64, bool) {
	i, err := n.dec.Int64()
	return i, err == nil
}

// Int32 returns the number as an int32 if it is exactly representable.
func (n Number) Int32() (int32, bool) {
	i, ok := n.Int64()
	if !ok || i < math.MinInt32 || i > math.MaxInt32 {
		return 0, false
	}
	return int32(i), true
}

// wordParts destructures the number into a machine word coefficient and
// an exponent. ok is false when the coefficient does not fit in an
// int64.
func (n Number) wordParts() (coeff int64, exp int32, ok bool) {
	c := n.signedCoeff()
	if !c.IsInt64() {
		return 0, 0, false
	}
	return c.Int64(), n.dec.Exponent, true
}

// bigParts destructures the number into an arbitrary precision
// coefficient and an exponent.
func (n Number) bigParts() (coeff *big.Int, exp int32) {
	return n.signedCoeff(), n.dec.Exponent
}

func (n Number) signedCoeff() *big.Int {
	c := new(big.Int).Set(n.dec.Coeff.MathBigInt())
	if n.dec.Negative {
		c.Neg(c)
	}
	return c
}

// scanNumber consumes the remainder of a number literal whose leading
// sign and first digit have already been consumed, then parses the full
// region [start, position) as a decimal. The grammar is digits,
// an optional '.' fraction and an optional 'e' exponent; anything
// malformed fails ErrInvalidNumber.
func scanNumber(cur *cursor, start int) (Number, error) {
	cur.skipWhile(isDigit)

	if b, ok := cur.peek(); ok && b == '.' {
		cur.any(ErrInvalidNumber)
		if b, ok = cur.peek(); !ok || !isDigit(b) {
			return Number{}, ErrInvalidNumber
		}
		cur.skipWhile(isDigit)
	}

	if b, ok := cur.peek(); ok && (b == 'e' || b == 'E') {
		cur.any(ErrInvalidNumber)
		if b, ok = cur.peek(); ok && (b == '+' || b == '-') {
			cur.any(ErrInvalidNumber)
		}
		if b, ok = cur.peek(); !ok || !isDigit(b) {
			return Number{}, ErrInvalidNumber
		}
		cur.skipWhile(isDigit)
	}

	var n Number
	if _, _, err := n.dec.SetString(string(cur.slice(start, cur.position()))); err != nil {
		return Number{}, ErrInvalidNumber
	}
	return n, nil
}
