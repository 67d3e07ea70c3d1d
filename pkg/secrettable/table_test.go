package secrettable

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestEncodeLayout(t *testing.T) {
	passwords := []string{
		"",
		"a",
		"abcd",
		"hunter2",
		"pässwörd",
		"correct horse battery staple",
		string(bytes.Repeat([]byte{'x'}, 4096)),
	}

	for _, p := range passwords {
		buf, err := Encode([]byte(p))
		if err != nil {
			t.Fatalf("Encode(%q): %v", p, err)
		}
		n := len(p)

		if len(buf) != 40+n+1 {
			t.Errorf("%q: got %d bytes, want %d", p, len(buf), 40+n+1)
		}
		if !bytes.Equal(buf[0:16], TableHeaderGUID[:]) {
			t.Errorf("%q: header GUID = %x", p, buf[0:16])
		}
		if got := binary.LittleEndian.Uint32(buf[16:20]); int(got) != len(buf) {
			t.Errorf("%q: table length = %d, want %d", p, got, len(buf))
		}
		if !bytes.Equal(buf[20:36], DiskPasswordGUID[:]) {
			t.Errorf("%q: entry GUID = %x", p, buf[20:36])
		}
		if got := binary.LittleEndian.Uint32(buf[36:40]); int(got) != 20+n+1 {
			t.Errorf("%q: entry length = %d, want %d", p, got, 20+n+1)
		}
		if !bytes.Equal(buf[40:40+n], []byte(p)) {
			t.Errorf("%q: password region = %q", p, buf[40:40+n])
		}
		if buf[40+n] != 0 {
			t.Errorf("%q: terminator = %#x", p, buf[40+n])
		}
	}
}

func TestEncodeEmpty(t *testing.T) {
	buf, err := Encode(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != 41 {
		t.Fatalf("got %d bytes, want 41", len(buf))
	}
	if buf[40] != 0 {
		t.Errorf("terminator = %#x", buf[40])
	}
}

func TestEncodeHunter2(t *testing.T) {
	want := []byte{
		// table header
		0x42, 0xf5, 0x74, 0x1e, 0xdd, 0x71, 0x66, 0x4d,
		0x96, 0x3e, 0xef, 0x42, 0x87, 0xff, 0x17, 0x3b,
		0x30, 0x00, 0x00, 0x00,
		// disk password entry
		0xe5, 0x69, 0x68, 0x73, 0xf0, 0x84, 0x73, 0x49,
		0x92, 0xec, 0x06, 0x87, 0x9c, 0xe3, 0xda, 0x0b,
		0x1c, 0x00, 0x00, 0x00,
		'h', 'u', 'n', 't', 'e', 'r', '2', 0x00,
	}

	got, err := Encode([]byte("hunter2"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("got\n%x\nwant\n%x", got, want)
	}
}

func TestNewLengths(t *testing.T) {
	tbl, err := New([]byte("abcd"))
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Len() != 45 {
		t.Errorf("table length = %d, want 45", tbl.Len())
	}
	if tbl.Password.Len() != 25 {
		t.Errorf("entry length = %d, want 25", tbl.Password.Len())
	}
	if tbl.Header.GUID != TableHeaderGUID || tbl.Password.GUID != DiskPasswordGUID {
		t.Errorf("unexpected GUIDs %s %s", tbl.Header.GUID, tbl.Password.GUID)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	a, err := Encode([]byte("same"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encode([]byte("same"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("encodings differ: %x vs %x", a, b)
	}
}

func TestCheckPasswordLen(t *testing.T) {
	tests := []struct {
		n       uint64
		wantErr bool
	}{
		{0, false},
		{1 << 20, false},
		{math.MaxUint32 - 41, false},
		{math.MaxUint32 - 40, true},
		{math.MaxUint32, true},
		{math.MaxUint32 + 1, true},
	}

	for _, tt := range tests {
		err := checkPasswordLen(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("checkPasswordLen(%d) = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInputTooLarge) {
			t.Errorf("checkPasswordLen(%d) = %v, want ErrInputTooLarge", tt.n, err)
		}
	}
}

func TestMarshalInconsistent(t *testing.T) {
	tbl, err := New([]byte("abc"))
	if err != nil {
		t.Fatal(err)
	}
	tbl.Header.Length++
	if _, err := tbl.MarshalBinary(); err == nil {
		t.Fatal("expected an error for a corrupted header length")
	}
}
