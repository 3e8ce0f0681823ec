// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ihex converts Intel HEX firmware files into flat memory images.
package ihex

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Erased is the value of an unprogrammed Flash byte.
const Erased = 0xff

// Converter converts Intel HEX record streams into flat memory images.
type Converter struct {
	// Base is the lowest address a data record may use. Firmware started by
	// a bootloader usually does not begin at address 0.
	Base uint32

	// VerifyChecksum makes every record carry a valid checksum.
	VerifyChecksum bool
}

// Convert reads Intel HEX records from r and writes the data they describe to
// mem, which represents the whole program memory of the target (len(mem) is
// the memory size). Unwritten bytes are set to Erased. Data placed beyond the
// end of mem (e.g. configuration registers) is silently discarded.
//
// Convert returns the firmware size: the end of the highest data written to
// mem minus Base. It returns 0 if no data was written. Reading stops at the
// end of file record. On error the content of mem is unspecified and the
// returned error is of type *Error.
func (c *Converter) Convert(r io.Reader, mem []byte) (int, error) {
	for i := range mem {
		mem[i] = Erased
	}
	b := &builder{mem: mem, base: c.Base}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 2*MaxLineLen)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		log.Debugf("ihex: processing line %d: %s", line, text)
		rec, err := ParseRecord(text)
		if err == nil && c.VerifyChecksum {
			err = verifySum(rec)
		}
		var done bool
		if err == nil {
			done, err = b.apply(rec)
		}
		if err != nil {
			e := &Error{Line: line, Err: err}
			if rec != nil {
				e.Type = rec.Type
			}
			if errors.Is(err, ErrAddress) {
				e.Addr = b.addr
			}
			return 0, e
		}
		if done {
			log.Debugf("ihex: end of file at line %d", line)
			return b.size(), nil
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			err = fmt.Errorf("%w: line too long", ErrMalformed)
		} else {
			err = fmt.Errorf("%w: %w", ErrInput, err)
		}
		return 0, &Error{Line: line + 1, Err: err}
	}
	log.Debugf("ihex: no end of file record in %d lines", line)
	return b.size(), nil
}

// ConvertFile works like Convert but reads records from the named file.
func (c *Converter) ConvertFile(name string, mem []byte) (int, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, &Error{Err: fmt.Errorf("%w: %w", ErrInput, err)}
	}
	defer f.Close()
	return c.Convert(f, mem)
}

// Convert is a shorthand for a Converter with the given base address.
func Convert(r io.Reader, mem []byte, base uint32) (int, error) {
	c := Converter{Base: base}
	return c.Convert(r, mem)
}

// ConvertFile is a shorthand for a Converter with the given base address.
func ConvertFile(name string, mem []byte, base uint32) (int, error) {
	c := Converter{Base: base}
	return c.ConvertFile(name, mem)
}

func verifySum(r *Record) error {
	if !r.HasSum {
		return fmt.Errorf("%w: no checksum field", ErrMalformed)
	}
	if sum := r.Checksum(); r.Sum != sum {
		return fmt.Errorf("%w: 0x%02X != 0x%02X", ErrChecksum, r.Sum, sum)
	}
	return nil
}

// builder holds the state of a single conversion.
type builder struct {
	mem  []byte
	base uint32
	high uint16 // set by extended linear address records
	addr uint32 // address of the last data record
	top  uint64 // end of the highest data written to mem
}

// apply processes one record. It reports done after the end of file record.
func (b *builder) apply(r *Record) (done bool, err error) {
	switch r.Type {
	case Data:
		b.addr = uint32(b.high)<<16 | uint32(r.Offset)
		log.Debugf("ihex: %d data bytes at 0x%08X", len(r.Data), b.addr)
		if b.addr < b.base {
			return false, ErrAddress
		}
		size := uint64(len(b.mem))
		if uint64(b.addr) >= size {
			log.Debugf("ihex: 0x%08X is beyond the memory, discarded", b.addr)
			return false, nil
		}
		end := uint64(b.addr) + uint64(len(r.Data))
		if end > size {
			log.Debugf(
				"ihex: %d bytes beyond the memory end discarded",
				end-size,
			)
			end = size
		}
		copy(b.mem[b.addr:end], r.Data)
		b.top = max(b.top, end)
	case EOF:
		return true, nil
	case ExtLinAddr:
		if b.high, err = r.ExtAddr(); err != nil {
			return false, err
		}
		log.Debugf("ihex: high address word set to 0x%04X", b.high)
	default:
		return false, ErrUnsupported
	}
	return false, nil
}

func (b *builder) size() int {
	if b.top <= uint64(b.base) {
		return 0
	}
	return int(b.top - uint64(b.base))
}
