package qbftpb

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ClientStateTypeURL is the protobuf Any type URL this client registers under.
const ClientStateTypeURL = "/ibc.lightclients.qbft.v1.ClientState"

// ClientState is the wire shape of ibc.lightclients.qbft.v1.ClientState.
type ClientState struct {
	ChainID         []byte
	IbcStoreAddress []byte
	LatestHeight    *Height
	TrustingPeriod  uint64 // seconds
	MaxClockDrift   uint64 // seconds
}

func (m *ClientState) Marshal() []byte {
	var b []byte
	if len(m.ChainID) > 0 {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, m.ChainID)
	}
	if len(m.IbcStoreAddress) > 0 {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, m.IbcStoreAddress)
	}
	if m.LatestHeight != nil && !m.LatestHeight.IsZero() {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, m.LatestHeight.Marshal())
	}
	if m.TrustingPeriod != 0 {
		b = protowire.AppendTag(b, 4, protowire.VarintType)
		b = protowire.AppendVarint(b, m.TrustingPeriod)
	}
	if m.MaxClockDrift != 0 {
		b = protowire.AppendTag(b, 5, protowire.VarintType)
		b = protowire.AppendVarint(b, m.MaxClockDrift)
	}
	return b
}

func UnmarshalClientState(b []byte) (*ClientState, error) {
	m := &ClientState{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("qbftpb: ClientState: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("qbftpb: ClientState.chain_id: %w", protowire.ParseError(n))
			}
			m.ChainID = append([]byte(nil), v...)
			b = b[n:]
		case 2:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("qbftpb: ClientState.ibc_store_address: %w", protowire.ParseError(n))
			}
			m.IbcStoreAddress = append([]byte(nil), v...)
			b = b[n:]
		case 3:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("qbftpb: ClientState.latest_height: %w", protowire.ParseError(n))
			}
			h, err := UnmarshalHeight(v)
			if err != nil {
				return nil, fmt.Errorf("qbftpb: ClientState.latest_height: %w", err)
			}
			m.LatestHeight = h
			b = b[n:]
		case 4:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("qbftpb: ClientState.trusting_period: %w", protowire.ParseError(n))
			}
			m.TrustingPeriod = v
			b = b[n:]
		case 5:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("qbftpb: ClientState.max_clock_drift: %w", protowire.ParseError(n))
			}
			m.MaxClockDrift = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("qbftpb: ClientState: skip field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return m, nil
}
