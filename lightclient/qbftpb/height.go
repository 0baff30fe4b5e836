// Package qbftpb holds the wire codecs for the qbft light client's three
// protobuf messages (ClientState, ConsensusState, Header) plus the shared
// Height submessage. There is no .proto/protoc step in this repository;
// each type hand-codes its own Marshal/Unmarshal on top of
// google.golang.org/protobuf's low-level wire helpers, the same primitives
// protoc-gen-go itself emits calls to.
package qbftpb

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Height mirrors ibc.core.client.v1.Height: (revision_number, revision_height).
type Height struct {
	RevisionNumber uint64
	RevisionHeight uint64
}

func (h *Height) IsZero() bool {
	return h == nil || (h.RevisionNumber == 0 && h.RevisionHeight == 0)
}

func (h *Height) Marshal() []byte {
	var b []byte
	if h.RevisionNumber != 0 {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, h.RevisionNumber)
	}
	if h.RevisionHeight != 0 {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, h.RevisionHeight)
	}
	return b
}

func UnmarshalHeight(b []byte) (*Height, error) {
	h := &Height{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("qbftpb: Height: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("qbftpb: Height.revision_number: %w", protowire.ParseError(n))
			}
			h.RevisionNumber = v
			b = b[n:]
		case 2:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("qbftpb: Height.revision_height: %w", protowire.ParseError(n))
			}
			h.RevisionHeight = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("qbftpb: Height: skip field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return h, nil
}
