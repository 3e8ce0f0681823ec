// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

func Warn(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
}

func Fatal(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
	os.Exit(1)
}

// FatalErr prints an error description and exits the program if the
// err != nil.
func FatalErr(what string, err error) {
	if err == nil {
		return
	}
	s := err.Error() + "\n"
	if what != "" {
		s = what + ": " + s
	}
	os.Stderr.WriteString(s)
	os.Exit(1)
}

// Verbose enables debug messages of the conversion code.
func Verbose(on bool) {
	if on {
		log.SetLevel(log.DebugLevel)
	}
}

// DirName returns the last element of the path to the current working
// directory.
func DirName() string {
	dir, err := os.Getwd()
	FatalErr("", err)
	dir = filepath.Base(dir)
	if dir == "/" || dir == "." {
		dir = ""
	}
	return dir
}

// InOutFiles infers the name of the input and output files from the name of the
// current working directory if the inName is an empty strings.
func InOutFiles(inName, inSuffix, outName, outSuffix string) (string, string) {
	if inName == "" {
		inName = DirName() + inSuffix
	}
	if outName == "" {
		outName = strings.TrimSuffix(inName, inSuffix) + outSuffix
	}
	return inName, outName
}

// ParseSize parses a memory size or address. It accepts the prefixes known
// to strconv.ParseUint (0x, 0o, 0b) and the K (1024) and M (1024*1024)
// suffixes. The result must fit in 32 bits.
func ParseSize(s string) (uint32, error) {
	num, mul := s, uint64(1)
	switch {
	case strings.HasSuffix(s, "K"), strings.HasSuffix(s, "k"):
		num, mul = s[:len(s)-1], 1<<10
	case strings.HasSuffix(s, "M"):
		num, mul = s[:len(s)-1], 1<<20
	}
	u, err := strconv.ParseUint(num, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("bad size or address %q: %w", s, err)
	}
	u *= mul
	if u > 1<<32-1 {
		return 0, fmt.Errorf("%s doesn't fit in 32 bits", s)
	}
	return uint32(u), nil
}
