// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ihex

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

const (
	// MaxDataLen is the largest payload a record can declare.
	MaxDataLen = 255

	// MaxLineLen is the length of the longest record: the mark followed by
	// the count, offset, type, MaxDataLen data bytes and checksum as
	// hexadecimal digit pairs.
	MaxLineLen = 2*MaxDataLen + 11
)

type RecordType uint8

const (
	Data         RecordType = 0
	EOF          RecordType = 1
	ExtSegAddr   RecordType = 2
	StartSegAddr RecordType = 3
	ExtLinAddr   RecordType = 4
	StartLinAddr RecordType = 5
)

var typeNames = [...]string{
	Data:         "data",
	EOF:          "end of file",
	ExtSegAddr:   "extended segment address",
	StartSegAddr: "start segment address",
	ExtLinAddr:   "extended linear address",
	StartLinAddr: "start linear address",
}

func (t RecordType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("unknown(0x%02X)", uint8(t))
}

// Supported reports whether a converter can process records of type t.
func (t RecordType) Supported() bool {
	return t == Data || t == EOF || t == ExtLinAddr
}

// Record is a single decoded line of an Intel HEX file.
type Record struct {
	Type   RecordType
	Offset uint16 // load offset, meaningful for Data and ExtLinAddr
	Data   []byte
	Sum    byte // checksum field as written in the line
	HasSum bool // the line carried the checksum field
}

// ParseRecord decodes one line of Intel HEX text. The line must start with
// the ':' mark and contain all the data bytes declared by the count field.
// The trailing checksum pair is optional and is not verified.
func ParseRecord(line string) (*Record, error) {
	if len(line) == 0 || line[0] != ':' {
		return nil, fmt.Errorf("%w: no ':' record mark", ErrMalformed)
	}
	if len(line) > MaxLineLen {
		return nil, fmt.Errorf(
			"%w: line too long (%d > %d characters)",
			ErrMalformed, len(line), MaxLineLen,
		)
	}
	digits := line[1:]
	if len(digits)&1 != 0 {
		return nil, fmt.Errorf("%w: odd number of hex digits", ErrMalformed)
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(b) < 4 {
		return nil, fmt.Errorf("%w: record too short", ErrMalformed)
	}
	n := int(b[0])
	if len(b) < 4+n {
		return nil, fmt.Errorf(
			"%w: %d data bytes declared, %d present",
			ErrMalformed, n, len(b)-4,
		)
	}
	r := &Record{
		Type:   RecordType(b[3]),
		Offset: binary.BigEndian.Uint16(b[1:3]),
		Data:   b[4 : 4+n : 4+n],
	}
	switch tail := b[4+n:]; len(tail) {
	case 0:
	case 1:
		r.Sum, r.HasSum = tail[0], true
	default:
		return nil, fmt.Errorf(
			"%w: %d bytes after the data, expected checksum only",
			ErrMalformed, len(tail),
		)
	}
	return r, nil
}

// Checksum computes the checksum the record should carry: the two's
// complement of the sum of the count, offset, type and data bytes.
func (r *Record) Checksum() byte {
	sum := byte(len(r.Data)) + byte(r.Offset>>8) + byte(r.Offset) + byte(r.Type)
	for _, b := range r.Data {
		sum += b
	}
	return -sum
}

// ExtAddr returns the upper 16 bits of the linear address set by an
// extended linear address record.
func (r *Record) ExtAddr() (uint16, error) {
	if len(r.Data) < 2 {
		return 0, fmt.Errorf(
			"%w: %s record with %d data bytes",
			ErrMalformed, r.Type, len(r.Data),
		)
	}
	return binary.BigEndian.Uint16(r.Data), nil
}
