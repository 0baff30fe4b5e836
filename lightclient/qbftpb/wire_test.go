package qbftpb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeightRoundTrip(t *testing.T) {
	h := &Height{RevisionNumber: 3, RevisionHeight: 7528}
	decoded, err := UnmarshalHeight(h.Marshal())
	require.NoError(t, err)
	require.Equal(t, h, decoded)
}

func TestHeightZeroRoundTripsToZero(t *testing.T) {
	h := &Height{}
	decoded, err := UnmarshalHeight(h.Marshal())
	require.NoError(t, err)
	require.True(t, decoded.IsZero())
}

func TestClientStateRoundTrip(t *testing.T) {
	m := &ClientState{
		ChainID:         []byte("besu-qbft-1"),
		IbcStoreAddress: []byte{0x01, 0x02, 0x03, 0x04},
		LatestHeight:    &Height{RevisionNumber: 0, RevisionHeight: 100},
		TrustingPeriod:  86400,
		MaxClockDrift:   30,
	}
	decoded, err := UnmarshalClientState(m.Marshal())
	require.NoError(t, err)
	require.Equal(t, m, decoded)
}

func TestConsensusStateRoundTrip(t *testing.T) {
	m := &ConsensusState{
		Timestamp:  1_700_000_000,
		Root:       []byte{0xaa, 0xbb, 0xcc},
		Validators: [][]byte{{0x01}, {0x02}, {0x03}},
	}
	decoded, err := UnmarshalConsensusState(m.Marshal())
	require.NoError(t, err)
	require.Equal(t, m, decoded)
}

func TestHeaderRoundTrip(t *testing.T) {
	m := &Header{
		BesuHeaderRLP:     []byte{0xf9, 0x03, 0x3f},
		Seals:             [][]byte{{0x01}, {0x02}},
		TrustedHeight:     &Height{RevisionNumber: 0, RevisionHeight: 99},
		AccountStateProof: []byte{0xaa},
	}
	decoded, err := UnmarshalHeader(m.Marshal())
	require.NoError(t, err)
	require.Equal(t, m, decoded)
}

func TestUnmarshalSkipsUnknownFields(t *testing.T) {
	// tag for field 99, varint wire type, followed by value 1 — must be
	// skipped rather than error.
	b := append([]byte{}, (&Height{RevisionNumber: 1}).Marshal()...)
	b = append(b, 0x98, 0x06, 0x01)
	decoded, err := UnmarshalHeight(b)
	require.NoError(t, err)
	require.Equal(t, uint64(1), decoded.RevisionNumber)
}
