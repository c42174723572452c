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

import "errors"

// Parse errors. Match with errors.Is.
// The set is open; new kinds may be added in later versions.
var (
	// ErrEmptyInput is returned when the input contains no value,
	// only whitespace or nothing at all.
	ErrEmptyInput = errors.New("empty input")

	// ErrExpectedColon is returned when an object member key is not
	// followed by a colon.
	ErrExpectedColon = errors.New("expected ':' after object key")

	// ErrExpectedCommaOrRightBracket is returned when a collection
	// element is not followed by a separator or terminator.
	ErrExpectedCommaOrRightBracket = errors.New("expected ',' or closing bracket")

	// ErrExpectedTrue, ErrExpectedFalse and ErrExpectedNull are returned
	// when a literal starts with the right byte but does not complete.
	ErrExpectedTrue  = errors.New("expected 'true'")
	ErrExpectedFalse = errors.New("expected 'false'")
	ErrExpectedNull  = errors.New("expected 'null'")

	// ErrExpectedQuote is returned when an object key does not start
	// with a double quote.
	ErrExpectedQuote = errors.New("expected '\"'")

	// ErrExpectedQuoteOrRightBrace is returned when an object body starts
	// with something other than a key or '}'.
	ErrExpectedQuoteOrRightBrace = errors.New("expected '\"' or '}'")

	// ErrIncompleteArray and ErrIncompleteObject are returned when input
	// ends inside a collection.
	ErrIncompleteArray  = errors.New("incomplete array")
	ErrIncompleteObject = errors.New("incomplete object")

	// ErrIncompleteString is returned when input ends before the closing
	// quote of a string literal.
	ErrIncompleteString = errors.New("incomplete string")

	// ErrIncompleteEscapeSequence is the kind for input that ends inside
	// the four hex digits of a '\u' escape. Parse reports such input as
	// ErrIncompleteString: strings are only decoded after their closing
	// quote has been found, so the hex reader never meets end of input.
	ErrIncompleteEscapeSequence = errors.New("incomplete escape sequence")

	// ErrInvalidEscapeSequence is returned for an unknown escape or a
	// malformed '\u' escape.
	ErrInvalidEscapeSequence = errors.New("invalid escape sequence")

	// ErrInvalidLeader is returned when a value starts with a byte that
	// cannot begin any JSON value.
	ErrInvalidLeader = errors.New("invalid character at start of value")

	// ErrInvalidNumber is returned for a malformed number literal.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrLeadingZero is returned when a digit immediately follows a
	// leading zero.
	ErrLeadingZero = errors.New("number has leading zero")

	// ErrUnexpectedLeftovers is returned when non-whitespace input
	// remains after the top level value.
	ErrUnexpectedLeftovers = errors.New("unexpected data after top level value")

	// ErrMaxDepthExceeded is returned when collections nest deeper than
	// the parser's depth budget. See WithMaxDepth.
	ErrMaxDepthExceeded = errors.New("maximum nesting depth exceeded")
)

// ErrNumberTooLarge is returned by the SMILE encoder when a number's
// coefficient does not fit in a machine word.
var ErrNumberTooLarge = errors.New("smile: number coefficient not supported")
