package lib

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/apex/log"
	"github.com/pkg/errors"
)

var ErrDestinationUnavailable = errors.New("destination directory does not exist")

func PathExists(d string) bool {
	_, err := os.Stat(d)
	if err != nil && os.IsNotExist(err) {
		return false
	}
	return true
}

// ZeroBytes overwrites b with zeros.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// WriteSecret writes data verbatim to dest. The directory containing dest
// must already exist, and an existing dest is only replaced when force
// is set.
func WriteSecret(dest string, data []byte, force bool) (err error) {
	abs, err := filepath.Abs(dest)
	if err != nil {
		return errors.Wrapf(err, "Failed resolving %s", dest)
	}

	dir := filepath.Dir(abs)
	fi, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrDestinationUnavailable, "%s", dir)
		}
		return errors.Wrapf(err, "Failed checking %s", dir)
	}
	if !fi.IsDir() {
		return errors.Wrapf(ErrDestinationUnavailable, "%s is not a directory", dir)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	out, err := os.OpenFile(abs, flags, SecretFileMode)
	if err != nil {
		if os.IsExist(err) {
			return errors.Errorf("%s already exists, use --force to overwrite", dest)
		}
		return errors.Wrapf(err, "Failed creating %s", dest)
	}

	defer func() {
		if err != nil {
			out.Close()
			os.Remove(abs)
		}
	}()

	// An existing file keeps its mode on truncate.
	if err = out.Chmod(SecretFileMode); err != nil {
		return errors.Wrapf(err, "Failed setting mode on %s", dest)
	}
	if _, err = out.Write(data); err != nil {
		return errors.Wrapf(err, "Failed writing %s", dest)
	}
	if err = out.Close(); err != nil {
		return errors.Wrapf(err, "Failed closing %s", dest)
	}

	log.Debugf("Wrote %d bytes to %s", len(data), abs)
	return nil
}
