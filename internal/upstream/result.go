// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package upstream

// Result holds either a value or an *Error. The aggregator keeps one per
// difficulty tier so a failed tier never hides the others.
type Result[T any] struct {
	Value T
	Err   *Error
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail wraps err, classifying it with Wrap.
func Fail[T any](err error) Result[T] {
	return Result[T]{Err: Wrap(err)}
}

// From builds a Result from the usual (value, error) pair.
func From[T any](v T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Ok(v)
}

// OK reports whether the result carries a value.
func (r Result[T]) OK() bool {
	return r.Err == nil
}
