// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bin

import (
	"encoding/binary"
	"io"
)

const (
	uf2Magic0          = 0x0a324655
	uf2Magic1          = 0x9e5d5157
	uf2Magic2          = 0x0ab16f30
	uf2FamilyIDPresent = 0x00002000
	uf2PayloadSize     = 256
)

var uf2FamilyMap = map[string]uint32{
	"rp2040":        0xe48bff56,
	"absolute":      0xe48bff57,
	"data":          0xe48bff58,
	"rp2350_arm_s":  0xe48bff59,
	"rp2350_riscv":  0xe48bff5a,
	"rp2350_arm_ns": 0xe48bff5b,
	"samd21":        0x68ed2b88,
	"samd51":        0x55114460,
	"stm32f4":       0x57755a57,
	"nrf52840":      0xada52840,
}

// uf2Block is a single 512-byte UF2 block.
type uf2Block struct {
	Magic0 uint32
	Magic1 uint32
	Flags  uint32
	Addr   uint32
	Len    uint32
	Seq    uint32
	Total  uint32
	Family uint32
	Data   [uf2PayloadSize]byte
	_      [476 - uf2PayloadSize]byte
	Magic2 uint32
}

// writeUF2 writes img as UF2 blocks that place it in the target memory at
// addr. The last block is padded with zeros.
func writeUF2(w io.Writer, img []byte, addr, family uint32) error {
	b := &uf2Block{
		Magic0: uf2Magic0,
		Magic1: uf2Magic1,
		Flags:  uf2FamilyIDPresent,
		Len:    uf2PayloadSize,
		Total:  uint32((len(img) + uf2PayloadSize - 1) / uf2PayloadSize),
		Family: family,
		Magic2: uf2Magic2,
	}
	for b.Addr = addr; len(img) != 0; b.Addr += uf2PayloadSize {
		n := copy(b.Data[:], img)
		clear(b.Data[n:])
		img = img[n:]
		if err := binary.Write(w, binary.LittleEndian, b); err != nil {
			return err
		}
		b.Seq++
	}
	return nil
}
