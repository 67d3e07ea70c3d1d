package lib

import (
	"crypto/rand"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/pkg/errors"
)

type entropySource struct {
	name string
	read func(size int) ([]byte, error)
}

// Tried in order by RandomBytes.
var entropySources = []entropySource{
	{name: "hwrng", read: HWRNGRead},
	{name: "tpm", read: TPMRandom},
	{name: "crypto/rand", read: cryptoRandom},
}

func HWRNGRead(size int) ([]byte, error) {
	rf, err := os.Open(HWRNGDevice)
	if err != nil {
		return []byte{}, errors.Wrapf(err, "Failed opening hwrng")
	}
	defer rf.Close()
	buf := make([]byte, size)
	if _, err := io.ReadFull(rf, buf); err != nil {
		return []byte{}, errors.Wrapf(err, "Failed reading random bytes")
	}

	return buf, nil
}

func cryptoRandom(size int) ([]byte, error) {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return []byte{}, errors.Wrapf(err, "Failed reading random bytes")
	}
	return buf, nil
}

// RandomBytes returns size random bytes from the first entropy source
// that works: the hardware RNG, then the TPM, then the kernel CSPRNG.
func RandomBytes(size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.Errorf("Invalid random byte count %d", size)
	}

	var lastErr error
	for _, src := range entropySources {
		buf, err := src.read(size)
		if err == nil && len(buf) == size {
			log.Debugf("Read %d random bytes from %s", size, src.name)
			return buf, nil
		}
		if err == nil {
			err = errors.Errorf("Read only %d bytes, wanted %d", len(buf), size)
		}
		log.Debugf("Entropy source %s unavailable: %v", src.name, err)
		lastErr = err
	}

	return nil, errors.Wrapf(lastErr, "No entropy source available")
}
