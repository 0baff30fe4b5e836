package lightclient

import (
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// Keccak256 hashes bz with Keccak-256.
func Keccak256(bz []byte) H256 {
	return H256(crypto.Keccak256Hash(bz))
}

// RecoverAddress recovers the signer address of a 65-byte (r||s||v)
// secp256k1 signature over digest, where v is the recovery id (0 or 1).
// It never panics: any curve/recovery error is returned, matching
// spec.md §4.2.
func RecoverAddress(digest H256, signature []byte) (Address, error) {
	if len(signature) != 65 {
		return Address{}, errInvalidSignatureLength(len(signature))
	}
	if v := signature[64]; v > 1 {
		return Address{}, errSignatureRecovery(fmt.Errorf("recovery id %d, want 0 or 1", v))
	}
	pub, err := crypto.SigToPub(digest[:], signature)
	if err != nil {
		return Address{}, errSignatureRecovery(err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}
