package secrettable

import (
	efi "github.com/canonical/go-efilib"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// GRUB_EFI_SEVSECRET_TABLE_HEADER_GUID {1e74f542-71dd-4d66-963e-ef4287ff173b}
var TableHeaderGUID = efi.GUID{
	0x42, 0xf5, 0x74, 0x1e, 0xdd, 0x71, 0x66, 0x4d,
	0x96, 0x3e, 0xef, 0x42, 0x87, 0xff, 0x17, 0x3b,
}

// GRUB_EFI_DISKPASSWD_GUID {736869e5-84f0-4973-92ec-06879ce3da0b}
var DiskPasswordGUID = efi.GUID{
	0xe5, 0x69, 0x68, 0x73, 0xf0, 0x84, 0x73, 0x49,
	0x92, 0xec, 0x06, 0x87, 0x9c, 0xe3, 0xda, 0x0b,
}

// GUIDFromUUID converts a UUID in RFC 4122 byte order into the EFI wire
// layout, where the first three fields are little-endian.
func GUIDFromUUID(u uuid.UUID) efi.GUID {
	var g efi.GUID
	g[0], g[1], g[2], g[3] = u[3], u[2], u[1], u[0]
	g[4], g[5] = u[5], u[4]
	g[6], g[7] = u[7], u[6]
	copy(g[8:], u[8:])
	return g
}

// ParseGUID parses a GUID in registry format, with or without braces.
func ParseGUID(s string) (efi.GUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return efi.GUID{}, errors.Wrapf(err, "invalid GUID %q", s)
	}
	return GUIDFromUUID(u), nil
}
