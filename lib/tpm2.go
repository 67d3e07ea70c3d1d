package lib

import (
	tpm2 "github.com/canonical/go-tpm2"
	tlinux "github.com/canonical/go-tpm2/linux"
	"github.com/pkg/errors"
)

// TPMRandom reads size bytes from the TPM random number generator. The
// TPM caps each GetRandom at a digest's worth of bytes, so larger requests
// are assembled from several calls.
func TPMRandom(size int) ([]byte, error) {
	tcti, err := tlinux.OpenDevice(TPMDevice)
	if err != nil {
		return []byte{}, errors.Wrapf(err, "Failed opening tpm device")
	}
	tpm := tpm2.NewTPMContext(tcti)
	defer tpm.Close()

	out := make([]byte, 0, size)
	for len(out) < size {
		want := size - len(out)
		if want > tpmMaxRandom {
			want = tpmMaxRandom
		}
		b, err := tpm.GetRandom(uint16(want))
		if err != nil {
			return []byte{}, errors.Wrapf(err, "Failed reading tpm random bytes")
		}
		if len(b) == 0 {
			return []byte{}, errors.Errorf("TPM returned no random bytes")
		}
		out = append(out, b...)
	}

	return out[:size], nil
}
