// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ihex

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    *Record
		wantErr error
	}{
		{
			name: "data",
			line: ":0300300002337A1E",
			want: &Record{
				Type:   Data,
				Offset: 0x0030,
				Data:   []byte{0x02, 0x33, 0x7a},
				Sum:    0x1e,
				HasSum: true,
			},
		},
		{
			name: "lower case digits",
			line: ":0300300002337a1e",
			want: &Record{
				Type:   Data,
				Offset: 0x0030,
				Data:   []byte{0x02, 0x33, 0x7a},
				Sum:    0x1e,
				HasSum: true,
			},
		},
		{
			name: "end of file",
			line: ":00000001FF",
			want: &Record{Type: EOF, Data: []byte{}, Sum: 0xff, HasSum: true},
		},
		{
			name: "extended linear address",
			line: ":020000040800F2",
			want: &Record{
				Type:   ExtLinAddr,
				Data:   []byte{0x08, 0x00},
				Sum:    0xf2,
				HasSum: true,
			},
		},
		{
			name: "no checksum",
			line: ":02001000AABB",
			want: &Record{Type: Data, Offset: 0x0010, Data: []byte{0xaa, 0xbb}},
		},
		{
			name: "unknown type",
			line: ":00000007F9",
			want: &Record{Type: 7, Data: []byte{}, Sum: 0xf9, HasSum: true},
		},
		{name: "empty", line: "", wantErr: ErrMalformed},
		{name: "no mark", line: "00000001FF", wantErr: ErrMalformed},
		{name: "only mark", line: ":", wantErr: ErrMalformed},
		{name: "odd digits", line: ":0000001FF", wantErr: ErrMalformed},
		{name: "bad digit", line: ":0000000G01", wantErr: ErrMalformed},
		{name: "short header", line: ":000000", wantErr: ErrMalformed},
		{name: "short data", line: ":04000000010203", wantErr: ErrMalformed},
		{name: "trailing bytes", line: ":0000000100FF", wantErr: ErrMalformed},
		{
			name:    "too long",
			line:    ":" + strings.Repeat("0", MaxLineLen),
			wantErr: ErrMalformed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRecord(tt.line)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseRecord(%q) error = %v, want %v", tt.line, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRecord(%q) unexpected error: %v", tt.line, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseRecord(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestParseRecordMaxData(t *testing.T) {
	line := ":FF000000" + strings.Repeat("5A", MaxDataLen) + "00"
	if len(line) != MaxLineLen {
		t.Fatalf("line length %d, want %d", len(line), MaxLineLen)
	}
	r, err := ParseRecord(line)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Data) != MaxDataLen {
		t.Errorf("got %d data bytes, want %d", len(r.Data), MaxDataLen)
	}
}

func TestRecordChecksum(t *testing.T) {
	for _, line := range []string{
		":0300300002337A1E",
		":00000001FF",
		":020000040800F2",
		":10010000214601360121470136007EFE09D2190140",
	} {
		r, err := ParseRecord(line)
		if err != nil {
			t.Fatal(err)
		}
		if sum := r.Checksum(); sum != r.Sum {
			t.Errorf("%s: Checksum() = 0x%02X, want 0x%02X", line, sum, r.Sum)
		}
	}
}

func TestRecordExtAddr(t *testing.T) {
	r := &Record{Type: ExtLinAddr, Data: []byte{0x12, 0x34}}
	hw, err := r.ExtAddr()
	if err != nil {
		t.Fatal(err)
	}
	if hw != 0x1234 {
		t.Errorf("ExtAddr() = 0x%04X, want 0x1234", hw)
	}
	r.Data = r.Data[:1]
	if _, err := r.ExtAddr(); !errors.Is(err, ErrMalformed) {
		t.Errorf("ExtAddr() with 1 byte: error = %v, want %v", err, ErrMalformed)
	}
}

func TestRecordType(t *testing.T) {
	tests := []struct {
		typ       RecordType
		name      string
		supported bool
	}{
		{Data, "data", true},
		{EOF, "end of file", true},
		{ExtSegAddr, "extended segment address", false},
		{StartSegAddr, "start segment address", false},
		{ExtLinAddr, "extended linear address", true},
		{StartLinAddr, "start linear address", false},
		{0x2a, "unknown(0x2A)", false},
	}
	for _, tt := range tests {
		if s := tt.typ.String(); s != tt.name {
			t.Errorf("RecordType(%d).String() = %q, want %q", tt.typ, s, tt.name)
		}
		if ok := tt.typ.Supported(); ok != tt.supported {
			t.Errorf("RecordType(%d).Supported() = %v, want %v", tt.typ, ok, tt.supported)
		}
	}
}
