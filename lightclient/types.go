package lightclient

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Address is a 20-byte Ethereum account address.
type Address = common.Address

// H256 is a 32-byte hash, also viewable as a 256-bit unsigned integer.
type H256 = common.Hash

// U256 is a 256-bit unsigned integer, big-endian on the wire.
type U256 = uint256.Int

// Height is a (revision_number, revision_height) pair, totally ordered
// lexicographically.
type Height struct {
	RevisionNumber uint64
	RevisionHeight uint64
}

// ZeroHeight is the height used to mean "no height" on the wire.
var ZeroHeight = Height{}

// IsZero reports whether h is the zero height.
func (h Height) IsZero() bool {
	return h == ZeroHeight
}

// LT reports whether h sorts strictly before o.
func (h Height) LT(o Height) bool {
	if h.RevisionNumber != o.RevisionNumber {
		return h.RevisionNumber < o.RevisionNumber
	}
	return h.RevisionHeight < o.RevisionHeight
}

// Max returns the larger of h and o.
func (h Height) Max(o Height) Height {
	if h.LT(o) {
		return o
	}
	return h
}

func (h Height) String() string {
	return fmt.Sprintf("%d-%d", h.RevisionNumber, h.RevisionHeight)
}

// Time is a wall-clock instant with nanosecond resolution.
type Time struct {
	t time.Time
}

// TimeFromUnixNano builds a Time from a count of nanoseconds since the
// Unix epoch.
func TimeFromUnixNano(nsec int64) Time {
	return Time{t: time.Unix(0, nsec).UTC()}
}

// Now returns the current wall-clock time; used only by hosts, never by
// the verifier itself (spec.md §5: the verifier has no time source other
// than what the host provides).
func Now() Time {
	return Time{t: time.Now().UTC()}
}

// UnixNano returns t as a count of nanoseconds since the Unix epoch.
func (t Time) UnixNano() int64 {
	return t.t.UnixNano()
}

// Before reports whether t is strictly before o.
func (t Time) Before(o Time) bool {
	return t.t.Before(o.t)
}

// After reports whether t is strictly after o.
func (t Time) After(o Time) bool {
	return t.t.After(o.t)
}

// Add returns t advanced by d.
func (t Time) Add(d time.Duration) Time {
	return Time{t: t.t.Add(d)}
}

// Sub returns the duration t - o.
func (t Time) Sub(o Time) time.Duration {
	return t.t.Sub(o.t)
}

func (t Time) String() string {
	return t.t.Format(time.RFC3339Nano)
}
