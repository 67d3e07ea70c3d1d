// Package secrettable encodes the launch secret table that OVMF exposes to
// GRUB's sevsecret module. The table is an outer header entry wrapping one
// disk password entry:
//
//	offset  size  field
//	0       16    TableHeaderGUID
//	16      4     total table length (LE)
//	20      16    DiskPasswordGUID
//	36      4     entry length (LE)
//	40      N     password
//	40+N    1     0x00
package secrettable

import (
	"encoding/binary"
	"math"

	efi "github.com/canonical/go-efilib"
	"github.com/pkg/errors"
)

const (
	// EntryHeaderSize is the GUID plus the uint32 length.
	EntryHeaderSize = 16 + 4

	// TableOverhead is both entry headers plus the terminating NUL.
	TableOverhead = 2*EntryHeaderSize + 1

	// MaxPasswordLen is the largest password whose table length still
	// fits the 32-bit length field.
	MaxPasswordLen = math.MaxUint32 - TableOverhead
)

var ErrInputTooLarge = errors.New("password too large for secret table")

// Entry is a GUID tagged, self-length-prefixed table entry.
type Entry struct {
	GUID   efi.GUID
	Length uint32
}

// Len is the entry size including its own header.
func (e Entry) Len() int {
	return int(e.Length)
}

// Table is the secret table with its one password entry.
type Table struct {
	Header   Entry
	Password Entry

	password []byte
}

func checkPasswordLen(n uint64) error {
	if n > MaxPasswordLen {
		return errors.Wrapf(ErrInputTooLarge, "%d bytes, at most %d allowed", n, uint64(MaxPasswordLen))
	}
	return nil
}

// New builds the table for password. The password is not copied and must
// not be modified until the table has been marshalled.
func New(password []byte) (*Table, error) {
	if err := checkPasswordLen(uint64(len(password))); err != nil {
		return nil, err
	}

	entryLen := uint32(EntryHeaderSize + len(password) + 1)
	return &Table{
		Header: Entry{
			GUID:   TableHeaderGUID,
			Length: EntryHeaderSize + entryLen,
		},
		Password: Entry{
			GUID:   DiskPasswordGUID,
			Length: entryLen,
		},
		password: password,
	}, nil
}

// Len is the total encoded size of the table.
func (t *Table) Len() int {
	return t.Header.Len()
}

// MarshalBinary writes every field at its fixed offset into a single
// zeroed buffer. The trailing byte is never written and stays NUL.
func (t *Table) MarshalBinary() ([]byte, error) {
	if t.Header.Length != EntryHeaderSize+t.Password.Length ||
		t.Password.Length != uint32(EntryHeaderSize+len(t.password)+1) {
		return nil, errors.Errorf("inconsistent table lengths: header %d, entry %d, password %d",
			t.Header.Length, t.Password.Length, len(t.password))
	}

	buf := make([]byte, t.Len())
	copy(buf[0:16], t.Header.GUID[:])
	binary.LittleEndian.PutUint32(buf[16:20], t.Header.Length)
	copy(buf[20:36], t.Password.GUID[:])
	binary.LittleEndian.PutUint32(buf[36:40], t.Password.Length)
	copy(buf[40:], t.password)

	return buf, nil
}

// Encode returns the secret table carrying password.
func Encode(password []byte) ([]byte, error) {
	t, err := New(password)
	if err != nil {
		return nil, err
	}
	return t.MarshalBinary()
}
