package lib

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/jsipprell/keyctl"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// ArgSource is a password given literally on the command line.
type ArgSource string

func (a ArgSource) Password() ([]byte, error) {
	return []byte(a), nil
}

// EnvSource reads the password from an environment variable.
type EnvSource string

func (e EnvSource) Password() ([]byte, error) {
	v, ok := os.LookupEnv(string(e))
	if !ok {
		return nil, errors.Errorf("%s is not set", string(e))
	}
	return []byte(v), nil
}

// TerminalSource prompts for the password without echo. When In is not a
// terminal a single line is read from it instead.
type TerminalSource struct {
	In      *os.File
	Out     io.Writer
	Prompt  string
	Confirm bool
}

func (t TerminalSource) Password() ([]byte, error) {
	fd := int(t.In.Fd())
	if !term.IsTerminal(fd) {
		log.Debugf("Reading password from non-terminal input")
		return readLine(t.In)
	}

	pw, err := t.read(fd, t.Prompt)
	if err != nil {
		return nil, err
	}
	if !t.Confirm {
		return pw, nil
	}

	confirm, err := t.read(fd, "Confirm "+t.Prompt)
	if err != nil {
		ZeroBytes(pw)
		return nil, err
	}
	defer ZeroBytes(confirm)

	if !bytes.Equal(pw, confirm) {
		ZeroBytes(pw)
		return nil, errors.Errorf("Passwords do not match")
	}
	return pw, nil
}

func (t TerminalSource) read(fd int, prompt string) ([]byte, error) {
	fmt.Fprint(t.Out, prompt)
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(t.Out)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed reading password")
	}
	return pw, nil
}

func readLine(r io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(r).ReadBytes('\n')
	if err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "Failed reading password")
	}
	if err == io.EOF && len(line) == 0 {
		return nil, errors.Errorf("No password on input")
	}
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	return line, nil
}

// StdinSource prefers PassphraseEnvVar and falls back to prompting on the
// terminal.
func StdinSource(out io.Writer) PasswordSource {
	return sourceChain{
		EnvSource(PassphraseEnvVar),
		TerminalSource{In: os.Stdin, Out: out, Prompt: "Disk password: ", Confirm: true},
	}
}

type sourceChain []PasswordSource

func (c sourceChain) Password() ([]byte, error) {
	var lastErr error
	for _, s := range c {
		pw, err := s.Password()
		if err == nil {
			return pw, nil
		}
		log.Debugf("Password source %T: %v", s, err)
		lastErr = err
	}
	return nil, lastErr
}

// KeyringSource reads a user key with the given description from the
// session keyring, e.g. one added with
// "keyctl add user <desc> <password> @s".
type KeyringSource string

func (k KeyringSource) Password() ([]byte, error) {
	kr, err := keyctl.SessionKeyring()
	if err != nil {
		return nil, errors.Wrapf(err, "Failed opening session keyring")
	}
	key, err := kr.Search(string(k))
	if err != nil {
		return nil, errors.Wrapf(err, "Failed finding key %q", string(k))
	}
	pw, err := key.Get()
	if err != nil {
		return nil, errors.Wrapf(err, "Failed reading key %q", string(k))
	}
	return pw, nil
}

// GeneratedSource creates a random passphrase of Length characters and
// reports it on Out, since it is otherwise unrecoverable.
type GeneratedSource struct {
	Length int
	Out    io.Writer
}

func (g GeneratedSource) Password() ([]byte, error) {
	pw, err := genPassphrase(g.Length, RandomBytes)
	if err != nil {
		return nil, err
	}
	if g.Out != nil {
		fmt.Fprintf(g.Out, "Generated disk password: %s\n", pw)
	}
	return []byte(pw), nil
}

func genPassphrase(nchars int, random func(int) ([]byte, error)) (string, error) {
	if nchars < MinGeneratedLen {
		return "", errors.Errorf("Generated password must be at least %d characters", MinGeneratedLen)
	}

	// each random byte gives two hex characters after the prefix.
	nbytes := (nchars-len(PassphrasePrefix))/2 + 1
	rand, err := random(nbytes)
	if err != nil {
		return "", err
	}
	s := PassphrasePrefix + hex.EncodeToString(rand)
	return s[:nchars], nil
}
