// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ihex

import (
	"errors"
	"fmt"
)

var (
	ErrInput       = errors.New("input unavailable")
	ErrMalformed   = errors.New("malformed record")
	ErrAddress     = errors.New("address out of bounds")
	ErrUnsupported = errors.New("unsupported record type")
	ErrChecksum    = errors.New("checksum mismatch")
)

// Error describes the record that stopped a conversion. Err is one of the
// Err* variables, possibly wrapped with more detail.
type Error struct {
	Line int        // 1-based line number, 0 if no line was read
	Type RecordType // type of the offending record, if it was decoded
	Addr uint32     // record address, set for ErrAddress
	Err  error
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	s := "ihex: "
	if e.Line > 0 {
		s += fmt.Sprintf("line %d: ", e.Line)
	}
	switch {
	case errors.Is(e.Err, ErrAddress):
		s += fmt.Sprintf("%s record at 0x%08X: ", e.Type, e.Addr)
	case errors.Is(e.Err, ErrUnsupported):
		s += fmt.Sprintf("%s: ", e.Type)
	}
	return s + e.Err.Error()
}
