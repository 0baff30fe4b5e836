package qbftpb

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

const HeaderTypeURL = "/ibc.lightclients.qbft.v1.Header"

// Header is the wire shape of ibc.lightclients.qbft.v1.Header.
type Header struct {
	BesuHeaderRLP     []byte
	Seals             [][]byte
	TrustedHeight     *Height
	AccountStateProof []byte
}

func (m *Header) Marshal() []byte {
	var b []byte
	if len(m.BesuHeaderRLP) > 0 {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, m.BesuHeaderRLP)
	}
	for _, s := range m.Seals {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, s)
	}
	if m.TrustedHeight != nil {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, m.TrustedHeight.Marshal())
	}
	if len(m.AccountStateProof) > 0 {
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, m.AccountStateProof)
	}
	return b
}

func UnmarshalHeader(b []byte) (*Header, error) {
	m := &Header{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("qbftpb: Header: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("qbftpb: Header.besu_header_rlp: %w", protowire.ParseError(n))
			}
			m.BesuHeaderRLP = append([]byte(nil), v...)
			b = b[n:]
		case 2:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("qbftpb: Header.seals: %w", protowire.ParseError(n))
			}
			m.Seals = append(m.Seals, append([]byte(nil), v...))
			b = b[n:]
		case 3:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("qbftpb: Header.trusted_height: %w", protowire.ParseError(n))
			}
			h, err := UnmarshalHeight(v)
			if err != nil {
				return nil, fmt.Errorf("qbftpb: Header.trusted_height: %w", err)
			}
			m.TrustedHeight = h
			b = b[n:]
		case 4:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("qbftpb: Header.account_state_proof: %w", protowire.ParseError(n))
			}
			m.AccountStateProof = append([]byte(nil), v...)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("qbftpb: Header: skip field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return m, nil
}
