package lightclient

import (
	"github.com/hyperledger-labs/besu-qbft-light-client/lightclient/qbftpb"
	"google.golang.org/protobuf/types/known/anypb"
)

// ConsensusState is the state snapshot recorded at a single trusted height:
// the Besu block timestamp, the IBC contract's storage root at that block,
// and the validator set that signed it (spec.md §3/§6).
type ConsensusState struct {
	Timestamp  Time
	Root       H256
	Validators []Address
}

// Validate checks the structural invariants spec.md §6 requires.
func (c *ConsensusState) Validate() error {
	if c.Root == (H256{}) {
		return errInvalidConsensusStateZeroRoot()
	}
	return nil
}

// DecodeConsensusState parses the protobuf wire bytes of an
// ibc.lightclients.qbft.v1.ConsensusState.
func DecodeConsensusState(b []byte) (*ConsensusState, error) {
	m, err := qbftpb.UnmarshalConsensusState(b)
	if err != nil {
		return nil, errDecode(err)
	}
	if len(m.Root) != len(H256{}) {
		return nil, errInvalidConsensusStateRootSize(len(m.Root))
	}
	c := &ConsensusState{
		Timestamp:  TimeFromUnixNano(int64(m.Timestamp) * int64(timeSecond)),
		Validators: make([]Address, len(m.Validators)),
	}
	copy(c.Root[:], m.Root)
	for i, v := range m.Validators {
		if len(v) != len(Address{}) {
			return nil, errInvalidValidatorAddressLength(len(v))
		}
		copy(c.Validators[i][:], v)
	}
	return c, nil
}

// timeSecond is nanoseconds per second, named to avoid importing "time"
// just for this one conversion.
const timeSecond = 1000 * 1000 * 1000

// Encode serializes c to the protobuf wire form.
func (c *ConsensusState) Encode() []byte {
	m := &qbftpb.ConsensusState{
		Timestamp:  uint64(c.Timestamp.UnixNano() / timeSecond),
		Root:       append([]byte(nil), c.Root[:]...),
		Validators: make([][]byte, len(c.Validators)),
	}
	for i, v := range c.Validators {
		m.Validators[i] = append([]byte(nil), v[:]...)
	}
	return m.Marshal()
}

// ToAny wraps c in its Any envelope.
func (c *ConsensusState) ToAny() *anypb.Any {
	return wrapAny(qbftpb.ConsensusStateTypeURL, c.Encode())
}

// ConsensusStateFromAny unwraps a ConsensusState from its Any envelope,
// failing if the type URL does not match.
func ConsensusStateFromAny(a *anypb.Any) (*ConsensusState, error) {
	if a.TypeUrl != qbftpb.ConsensusStateTypeURL {
		return nil, errUnexpectedClientType(a.TypeUrl)
	}
	return DecodeConsensusState(a.Value)
}
