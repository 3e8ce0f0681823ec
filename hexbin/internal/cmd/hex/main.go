// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hex

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/embeddedgo/hexbin/hexbin/internal/util"
	"github.com/marcinbor85/gohex"
	log "github.com/sirupsen/logrus"
)

const Descr = "convert a binary image to the Intel HEX format"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\n  %s [OPTIONS] [BIN [%s]]\nOptions:\n",
			cmd, strings.ToUpper(cmd),
		)
		fs.PrintDefaults()
	}
	addr := fs.String("addr", "0", "load `address` of the image")
	width := fs.Uint("width", 16, "maximum number of data `bytes` per record")
	trim := fs.Bool("trim", false, "drop the trailing erased (0xff) bytes")
	verbose := fs.Bool("v", false, "print debug messages")
	fs.Parse(args)
	if fs.NArg() > 2 {
		fs.Usage()
		os.Exit(1)
	}
	util.Verbose(*verbose)
	if *width == 0 || *width > 255 {
		util.Fatal("%s: record width must be in the range 1..255", cmd)
	}
	loadAddr, err := util.ParseSize(*addr)
	util.FatalErr("addr", err)
	in, out := util.InOutFiles(fs.Arg(0), ".bin", fs.Arg(1), ".hex")
	data, err := os.ReadFile(in)
	util.FatalErr("", err)
	if *trim {
		data = bytes.TrimRight(data, "\xff")
	}
	if uint64(loadAddr)+uint64(len(data)) > 1<<32 {
		util.Fatal("%s: image doesn't fit in the 32-bit address space", in)
	}
	log.Debugf("%s: %d bytes at %#x", in, len(data), loadAddr)
	mem := gohex.NewMemory()
	util.FatalErr("addbinary", mem.AddBinary(loadAddr, data))
	of, err := os.Create(out)
	util.FatalErr("", err)
	defer of.Close()
	err = mem.DumpIntelHex(of, byte(*width))
	util.FatalErr("dumpintelhex", err)
}
