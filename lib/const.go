package lib

const (
	// PassphraseEnvVar is consulted before prompting when the password
	// argument is "-".
	PassphraseEnvVar = "SEVSECRET_PASSPHRASE"

	// Prefix of generated passphrases.
	PassphrasePrefix = "sevsecret-"

	// Generated passphrases shorter than this are refused.
	MinGeneratedLen = 16

	HWRNGDevice = "/dev/hwrng"
	TPMDevice   = "/dev/tpm0"

	// Largest digest the TPM returns from a single GetRandom.
	tpmMaxRandom = 32

	// Mode of the written secret table.
	SecretFileMode = 0600
)
