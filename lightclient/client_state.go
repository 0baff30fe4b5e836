package lightclient

import (
	"fmt"
	"time"

	"github.com/hyperledger-labs/besu-qbft-light-client/lightclient/qbftpb"
	"google.golang.org/protobuf/types/known/anypb"
)

// ClientState is the durable, on-chain-visible configuration of a single
// tracked Besu QBFT chain (spec.md §3/§6).
type ClientState struct {
	ChainID         *U256
	IbcStoreAddress Address
	LatestHeight    Height
	TrustingPeriod  time.Duration
	MaxClockDrift   time.Duration
}

// Validate checks the structural invariants spec.md §6 requires of a
// freshly decoded ClientState, independent of any ConsensusState.
func (cs *ClientState) Validate() error {
	if cs.LatestHeight.IsZero() {
		return errInvalidClientStateZeroHeight()
	}
	if cs.IbcStoreAddress == (Address{}) {
		return errInvalidClientStateZeroIbcStoreAddress()
	}
	return nil
}

// clockDriftOrDefault returns the configured drift tolerance, or
// DefaultMaxClockDrift when the client state leaves it unset (spec.md §9
// Open Question: a zero MaxClockDrift is treated as "use the package
// default", not "no tolerance").
func (cs *ClientState) clockDriftOrDefault() time.Duration {
	if cs.MaxClockDrift <= 0 {
		return DefaultMaxClockDrift
	}
	return cs.MaxClockDrift
}

// DecodeClientState parses the protobuf wire bytes of an
// ibc.lightclients.qbft.v1.ClientState.
func DecodeClientState(b []byte) (*ClientState, error) {
	m, err := qbftpb.UnmarshalClientState(b)
	if err != nil {
		return nil, errDecode(err)
	}
	if len(m.IbcStoreAddress) != len(Address{}) {
		return nil, errInvalidClientStateZeroIbcStoreAddress()
	}
	chainID, ok := U256FromBigEndian(m.ChainID)
	if !ok {
		return nil, errFromUint128(fmt.Errorf("chain_id is %d bytes, want at most 32", len(m.ChainID)))
	}
	cs := &ClientState{
		ChainID:        chainID,
		LatestHeight:   heightFromWire(m.LatestHeight),
		TrustingPeriod: time.Duration(m.TrustingPeriod) * time.Second,
		MaxClockDrift:  time.Duration(m.MaxClockDrift) * time.Second,
	}
	copy(cs.IbcStoreAddress[:], m.IbcStoreAddress)
	return cs, nil
}

// Encode serializes cs to the protobuf wire form.
func (cs *ClientState) Encode() []byte {
	chainID := bytes32BigEndian(cs.ChainID)
	m := &qbftpb.ClientState{
		ChainID:         trimLeadingZeros(chainID[:]),
		IbcStoreAddress: append([]byte(nil), cs.IbcStoreAddress[:]...),
		LatestHeight:    heightToWire(cs.LatestHeight),
		TrustingPeriod:  uint64(cs.TrustingPeriod / time.Second),
		MaxClockDrift:   uint64(cs.MaxClockDrift / time.Second),
	}
	return m.Marshal()
}

// ToAny wraps cs in its Any envelope.
func (cs *ClientState) ToAny() *anypb.Any {
	return wrapAny(qbftpb.ClientStateTypeURL, cs.Encode())
}

// ClientStateFromAny unwraps a ClientState from its Any envelope, failing
// if the type URL does not match.
func ClientStateFromAny(a *anypb.Any) (*ClientState, error) {
	if a.TypeUrl != qbftpb.ClientStateTypeURL {
		return nil, errUnexpectedClientType(a.TypeUrl)
	}
	return DecodeClientState(a.Value)
}

// canonicalizeForStateID returns a copy of the wire ClientState with
// latest_height zeroed out, the form fed into GenStateID (spec.md §6:
// state_id must not change merely because the client advanced).
func (cs *ClientState) canonicalizeForStateID() []byte {
	chainID := bytes32BigEndian(cs.ChainID)
	m := &qbftpb.ClientState{
		ChainID:         trimLeadingZeros(chainID[:]),
		IbcStoreAddress: append([]byte(nil), cs.IbcStoreAddress[:]...),
		LatestHeight:    nil,
		TrustingPeriod:  uint64(cs.TrustingPeriod / time.Second),
		MaxClockDrift:   uint64(cs.MaxClockDrift / time.Second),
	}
	return m.Marshal()
}
