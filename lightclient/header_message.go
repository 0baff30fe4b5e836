package lightclient

import (
	"github.com/hyperledger-labs/besu-qbft-light-client/lightclient/qbftpb"
	"google.golang.org/protobuf/types/known/anypb"
)

// HeaderMessage is the update_client input: a Besu block header plus the
// committed seals and account/storage proof needed to advance trust to it
// (spec.md §3/§4).
type HeaderMessage struct {
	EthHeader         *EthHeader
	Seals             [][]byte
	TrustedHeight     Height
	AccountStateProof []byte
}

// Validate checks the structural invariants spec.md §6 requires.
func (h *HeaderMessage) Validate() error {
	if h.TrustedHeight.IsZero() {
		return errInvalidHeaderZeroTrustedHeight()
	}
	return nil
}

// Height is the Besu block number carried in the header itself, under
// revision 0. UpdateClient does not call it: the height it reports takes
// its revision number from the ClientState's latest_height.
func (h *HeaderMessage) Height() Height {
	return Height{RevisionNumber: 0, RevisionHeight: h.EthHeader.Number.Uint64()}
}

// DecodeHeader parses the protobuf wire bytes of an
// ibc.lightclients.qbft.v1.Header and the Besu header RLP nested inside it.
func DecodeHeader(b []byte) (*HeaderMessage, error) {
	m, err := qbftpb.UnmarshalHeader(b)
	if err != nil {
		return nil, errDecode(err)
	}
	eth, err := ParseEthHeader(m.BesuHeaderRLP)
	if err != nil {
		return nil, err
	}
	return &HeaderMessage{
		EthHeader:         eth,
		Seals:             m.Seals,
		TrustedHeight:     heightFromWire(m.TrustedHeight),
		AccountStateProof: m.AccountStateProof,
	}, nil
}

// Encode serializes h to the protobuf wire form.
func (h *HeaderMessage) Encode() []byte {
	m := &qbftpb.Header{
		BesuHeaderRLP:     h.EthHeader.raw,
		Seals:             h.Seals,
		TrustedHeight:     heightToWire(h.TrustedHeight),
		AccountStateProof: h.AccountStateProof,
	}
	return m.Marshal()
}

// ToAny wraps h in its Any envelope.
func (h *HeaderMessage) ToAny() *anypb.Any {
	return wrapAny(qbftpb.HeaderTypeURL, h.Encode())
}

// HeaderFromAny unwraps a HeaderMessage from its Any envelope, failing if
// the type URL does not match.
func HeaderFromAny(a *anypb.Any) (*HeaderMessage, error) {
	if a.TypeUrl != qbftpb.HeaderTypeURL {
		return nil, errUnexpectedClientType(a.TypeUrl)
	}
	return DecodeHeader(a.Value)
}
