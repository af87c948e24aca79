// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package atlas

import "fmt"

// ErrorCode classifies a fatal Error raised by the allocator. These are
// programmer errors or internal-consistency violations, never expected
// runtime conditions: callers are not meant to recover from them, only
// to fix the calling code or report a bug.
type ErrorCode int

const (
	// ErrInvalidOptions is raised when Options or an atlas size fail
	// validation, e.g. a zero or negative alignment axis.
	ErrInvalidOptions ErrorCode = iota
	// ErrInvalidAllocId is raised when an AllocId does not refer to a
	// currently allocated rectangle, either because its generation is
	// stale or because it never identified an allocation in this atlas.
	ErrInvalidAllocId
	// ErrCorruption is raised when the subdivision tree fails an
	// internal consistency check, such as two siblings proposed for a
	// coalescing merge not sharing the edge their orientation implies.
	ErrCorruption
	// ErrShrink is raised when Grow or SimpleAtlasAllocator.Grow is
	// called with a size smaller than the current one.
	ErrShrink
)

func (c ErrorCode) String() string {
	switch c {
	case ErrInvalidOptions:
		return "invalid_options"
	case ErrInvalidAllocId:
		return "invalid_alloc_id"
	case ErrCorruption:
		return "corruption"
	case ErrShrink:
		return "shrink"
	default:
		return "unknown"
	}
}

// Error is the panic value raised for every fatal condition in this
// package. It is never returned through an error-typed return value:
// expected failures (size does not fit, atlas exhausted) are instead
// reported through the bool or ChangeList results of the relevant
// call.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("atlas: %s: %s", e.Code, e.Message)
}

func fatalf(code ErrorCode, format string, args ...any) {
	panic(&Error{Code: code, Message: fmt.Sprintf(format, args...)})
}
