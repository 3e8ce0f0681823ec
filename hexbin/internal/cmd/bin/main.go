// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bin

import (
	"flag"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/embeddedgo/hexbin/hexbin/internal/util"
	"github.com/embeddedgo/hexbin/ihex"
	log "github.com/sirupsen/logrus"
)

const (
	DescrBin = "convert an Intel HEX file to a binary image"
	DescrUF2 = "convert an Intel HEX file to the UF2 format"
)

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\n  %s [OPTIONS] [HEX [%s]]\nOptions:\n",
			cmd, strings.ToUpper(cmd),
		)
		fs.PrintDefaults()
	}
	size := fs.String(
		"size", "",
		"program memory `size` of the target, e.g. 8192, 0x10000, 64K",
	)
	base := fs.String(
		"base", "0",
		"firmware base `address`, data below it is an error",
	)
	full := fs.Bool(
		"full", false,
		"write the whole memory, not only the firmware range",
	)
	checksum := fs.Bool("checksum", false, "verify the record checksums")
	verbose := fs.Bool("v", false, "print debug messages")
	var family string
	if cmd == "uf2" {
		fs.StringVar(
			&family, "family", "",
			"UF2 family `ID` (32-bit number) or a known family name:\n"+
				strings.Join(slices.Sorted(maps.Keys(uf2FamilyMap)), "\n"),
		)
	}
	fs.Parse(args)
	if fs.NArg() > 2 {
		fs.Usage()
		os.Exit(1)
	}
	util.Verbose(*verbose)
	if *size == "" {
		util.Fatal("%s: the -size option is required", cmd)
	}
	memSize, err := util.ParseSize(*size)
	util.FatalErr("size", err)
	baseAddr, err := util.ParseSize(*base)
	util.FatalErr("base", err)
	if baseAddr >= memSize {
		util.Fatal(
			"base address %#x is beyond the memory size %#x", baseAddr, memSize,
		)
	}
	var familyID uint32
	if cmd == "uf2" {
		var ok bool
		if familyID, ok = uf2FamilyMap[family]; !ok {
			u, err := strconv.ParseUint(family, 0, 32)
			if err != nil {
				util.Fatal(`uf2: bad family ID: "%s"`, family)
			}
			familyID = uint32(u)
		}
	}
	in, out := util.InOutFiles(fs.Arg(0), ".hex", fs.Arg(1), "."+cmd)
	mem := make([]byte, memSize)
	c := ihex.Converter{Base: baseAddr, VerifyChecksum: *checksum}
	n, err := c.ConvertFile(in, mem)
	util.FatalErr("", err)
	if n == 0 {
		util.Warn("%s: no data in the %d bytes of memory", in, memSize)
	}
	log.Debugf("%s: firmware size %d bytes at %#x", in, n, baseAddr)
	img, addr := mem[baseAddr:baseAddr+uint32(n)], baseAddr
	if *full {
		img, addr = mem, 0
	}
	of, err := os.Create(out)
	util.FatalErr("", err)
	defer of.Close()
	switch cmd {
	case "bin":
		_, err = of.Write(img)
	case "uf2":
		err = writeUF2(of, img, addr, familyID)
	}
	util.FatalErr(cmd, err)
}
