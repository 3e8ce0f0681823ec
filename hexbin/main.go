// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/embeddedgo/hexbin/hexbin/internal/cmd/bin"
	"github.com/embeddedgo/hexbin/hexbin/internal/cmd/hex"
)

type tool struct {
	descr string
	main  func(cmd string, args []string)
}

var tools = map[string]tool{
	"bin": {bin.DescrBin, bin.Main},
	"uf2": {bin.DescrUF2, bin.Main},
	"hex": {hex.Descr, hex.Main},
}

func printToolList() {
	names := slices.Sorted(maps.Keys(tools))
	maxLen := 0
	for _, k := range names {
		if maxLen < len(k) {
			maxLen = len(k)
		}
	}
	uw := os.Stderr
	uw.WriteString("Usage:\n  hexbin COMMAND [ARGUMENTS]\n\n")
	uw.WriteString("Available commands:\n")
	for _, name := range names {
		fmt.Fprintf(uw, "  %*s  %s\n", maxLen, name, tools[name].descr)
	}
}

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" {
		printToolList()
		return
	}
	cmd := os.Args[1]
	tool, ok := tools[cmd]
	if !ok {
		printToolList()
		os.Exit(1)
	}
	tool.main(cmd, os.Args[2:])
}
