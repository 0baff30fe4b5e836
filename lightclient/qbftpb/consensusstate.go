package qbftpb

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

const ConsensusStateTypeURL = "/ibc.lightclients.qbft.v1.ConsensusState"

// ConsensusState is the wire shape of ibc.lightclients.qbft.v1.ConsensusState.
type ConsensusState struct {
	Timestamp  uint64 // unix seconds
	Root       []byte
	Validators [][]byte
}

func (m *ConsensusState) Marshal() []byte {
	var b []byte
	if m.Timestamp != 0 {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, m.Timestamp)
	}
	if len(m.Root) > 0 {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Root)
	}
	for _, v := range m.Validators {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, v)
	}
	return b
}

func UnmarshalConsensusState(b []byte) (*ConsensusState, error) {
	m := &ConsensusState{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("qbftpb: ConsensusState: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("qbftpb: ConsensusState.timestamp: %w", protowire.ParseError(n))
			}
			m.Timestamp = v
			b = b[n:]
		case 2:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("qbftpb: ConsensusState.root: %w", protowire.ParseError(n))
			}
			m.Root = append([]byte(nil), v...)
			b = b[n:]
		case 3:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("qbftpb: ConsensusState.validators: %w", protowire.ParseError(n))
			}
			m.Validators = append(m.Validators, append([]byte(nil), v...))
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("qbftpb: ConsensusState: skip field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return m, nil
}
