package lightclient

import (
	"github.com/hyperledger-labs/besu-qbft-light-client/lightclient/qbftpb"
	"google.golang.org/protobuf/types/known/anypb"
)

// heightFromWire converts the protobuf Height submessage to the domain
// Height, treating nil as the zero height.
func heightFromWire(h *qbftpb.Height) Height {
	if h == nil {
		return ZeroHeight
	}
	return Height{RevisionNumber: h.RevisionNumber, RevisionHeight: h.RevisionHeight}
}

// heightToWire converts a domain Height to its protobuf submessage form.
func heightToWire(h Height) *qbftpb.Height {
	return &qbftpb.Height{RevisionNumber: h.RevisionNumber, RevisionHeight: h.RevisionHeight}
}

// wrapAny builds the Any envelope a HostClientReader exchanges with this
// package: a type URL plus the hand-rolled protobuf wire bytes for one of
// ClientState/ConsensusState/Header (spec.md §4.1).
func wrapAny(typeURL string, value []byte) *anypb.Any {
	return &anypb.Any{TypeUrl: typeURL, Value: value}
}
