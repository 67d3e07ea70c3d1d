package lib

// PasswordSource supplies the disk passphrase that goes into the secret
// table. Callers own the returned slice and should wipe it when done.
type PasswordSource interface {
	Password() ([]byte, error)
}
