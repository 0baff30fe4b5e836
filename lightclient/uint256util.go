package lightclient

import (
	"encoding/hex"

	"github.com/holiman/uint256"
)

// hexMustDecode32 decodes a 64-character hex string into a [32]byte; it
// panics on malformed input, which is acceptable only for the package's
// own compile-time constants (see ibcCommitmentsSlot in params.go).
func hexMustDecode32(s string) [32]byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("lightclient: invalid constant hex: " + err.Error())
	}
	var out [32]byte
	if len(b) != 32 {
		panic("lightclient: constant is not 32 bytes")
	}
	copy(out[:], b)
	return out
}

// U256FromBytes32 interprets b as a big-endian 256-bit unsigned integer.
func U256FromBytes32(b [32]byte) *U256 {
	var u uint256.Int
	u.SetBytes32(b[:])
	return &u
}

// U256FromBigEndian interprets b as a big-endian unsigned integer; it
// returns false if b is longer than 32 bytes.
func U256FromBigEndian(b []byte) (*U256, bool) {
	if len(b) > 32 {
		return nil, false
	}
	var u uint256.Int
	u.SetBytes(b)
	return &u, true
}

// bytes32BigEndian returns u as a fixed 32-byte big-endian array.
func bytes32BigEndian(u *U256) [32]byte {
	return u.Bytes32()
}
