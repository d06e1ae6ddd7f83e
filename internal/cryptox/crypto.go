// Package cryptox seals small blobs (the persisted session) with a key
// derived from a passphrase.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/adminapi/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	saltSize = 16
	keySize  = 32
)

// Sealed is the at-rest form of an encrypted value.
type Sealed struct {
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

var errEmptyPassphrase = errors.New("empty passphrase")

// DeriveKey stretches a passphrase into an AES-256 key with argon2id.
func DeriveKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, keySize)
}

// Seal serializes v to JSON and encrypts it with AES-GCM under a key derived
// from passphrase and a fresh random salt. The result is JSON as well so it
// can be stored as a single blob.
func Seal(v any, passphrase []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, errEmptyPassphrase
	}

	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	salt := common.GenerateRandByteArray(saltSize)
	key := DeriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(aesgcm.NonceSize())
	s := Sealed{
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: aesgcm.Seal(nil, nonce, plaintext, nil),
	}
	return json.Marshal(s)
}

// Open reverses Seal and unmarshals the plaintext JSON into v.
// A wrong passphrase yields common.ErrInvalidPassword.
func Open(blob []byte, passphrase []byte, v any) error {
	if len(passphrase) == 0 {
		return errEmptyPassphrase
	}

	var s Sealed
	if err := json.Unmarshal(blob, &s); err != nil {
		return err
	}

	key := DeriveKey(passphrase, s.Salt)
	defer common.WipeByteArray(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return err
	}
	if len(s.Nonce) != aesgcm.NonceSize() {
		return common.ErrInvalidPassword
	}

	plaintext, err := aesgcm.Open(nil, s.Nonce, s.Ciphertext, nil)
	if err != nil {
		return common.ErrInvalidPassword
	}
	defer common.WipeByteArray(plaintext)

	return json.Unmarshal(plaintext, v)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
