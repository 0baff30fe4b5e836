package lightclient

import (
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/anypb"
)

type fakeHostClientReader struct {
	clientStates    map[string]*anypb.Any
	consensusStates map[string]map[Height]*anypb.Any
	now             Time
}

func (h *fakeHostClientReader) ClientState(clientID string) (*anypb.Any, error) {
	a, ok := h.clientStates[clientID]
	if !ok {
		return nil, errUnexpectedClientType("no such client")
	}
	return a, nil
}

func (h *fakeHostClientReader) ConsensusState(clientID string, height Height) (*anypb.Any, error) {
	byHeight, ok := h.consensusStates[clientID]
	if !ok {
		return nil, errUnexpectedClientType("no such client")
	}
	a, ok := byHeight[height]
	if !ok {
		return nil, errUnexpectedClientType("no consensus state at height")
	}
	return a, nil
}

func (h *fakeHostClientReader) HostTimestamp() Time {
	return h.now
}

func TestLightClientClientType(t *testing.T) {
	require.Equal(t, "hb-qbft", LightClient{}.ClientType())
}

func sampleClientState() *ClientState {
	return &ClientState{
		ChainID:         uint256.NewInt(1337),
		IbcStoreAddress: Address{0x01, 0x02, 0x03},
		LatestHeight:    Height{RevisionNumber: 0, RevisionHeight: 100},
		TrustingPeriod:  24 * time.Hour,
		MaxClockDrift:   30 * time.Second,
	}
}

func sampleConsensusState() *ConsensusState {
	return &ConsensusState{
		Timestamp:  TimeFromUnixNano(1_700_000_000 * int64(timeSecond)),
		Root:       H256{0xaa, 0xbb},
		Validators: []Address{{0x01}, {0x02}, {0x03}, {0x04}},
	}
}

func TestClientStateRoundTrip(t *testing.T) {
	cs := sampleClientState()
	decoded, err := DecodeClientState(cs.Encode())
	require.NoError(t, err)
	require.Equal(t, cs, decoded)
}

func TestConsensusStateRoundTrip(t *testing.T) {
	ccs := sampleConsensusState()
	decoded, err := DecodeConsensusState(ccs.Encode())
	require.NoError(t, err)
	require.Equal(t, ccs, decoded)
}

func TestClientStateAnyRoundTrip(t *testing.T) {
	cs := sampleClientState()
	any := cs.ToAny()
	decoded, err := ClientStateFromAny(any)
	require.NoError(t, err)
	require.Equal(t, cs, decoded)

	_, err = ConsensusStateFromAny(any)
	require.Error(t, err)
}

func TestLatestHeight(t *testing.T) {
	cs := sampleClientState()
	h, err := LightClient{}.LatestHeight(cs.ToAny())
	require.NoError(t, err)
	require.Equal(t, cs.LatestHeight, h)
}

func TestCreateClient(t *testing.T) {
	cs := sampleClientState()
	ccs := sampleConsensusState()

	result, err := LightClient{}.CreateClient(cs.ToAny(), ccs.ToAny())
	require.NoError(t, err)
	require.Equal(t, cs.LatestHeight, result.Height)
	require.False(t, result.Prove)
	require.Nil(t, result.Message.PrevHeight)
	require.Equal(t, GenStateID(cs, ccs), result.Message.PostStateID)
	require.Len(t, result.Message.EmittedStates, 1)
	require.Equal(t, cs.LatestHeight, result.Message.EmittedStates[0].Height)
}

func TestCreateClientRejectsZeroHeight(t *testing.T) {
	cs := sampleClientState()
	cs.LatestHeight = ZeroHeight
	ccs := sampleConsensusState()

	_, err := LightClient{}.CreateClient(cs.ToAny(), ccs.ToAny())
	require.Error(t, err)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	require.Equal(t, KindInvalidClientStateZeroHeight, verr.Kind)
}

func TestCreateClientRejectsZeroRoot(t *testing.T) {
	cs := sampleClientState()
	ccs := sampleConsensusState()
	ccs.Root = H256{}

	_, err := LightClient{}.CreateClient(cs.ToAny(), ccs.ToAny())
	require.Error(t, err)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	require.Equal(t, KindInvalidConsensusStateZeroRoot, verr.Kind)
}

func TestGenStateIDInvariantUnderLatestHeightChange(t *testing.T) {
	cs := sampleClientState()
	ccs := sampleConsensusState()

	id1 := GenStateID(cs, ccs)

	advanced := *cs
	advanced.LatestHeight = Height{RevisionNumber: 0, RevisionHeight: 999}
	id2 := GenStateID(&advanced, ccs)

	require.Equal(t, id1, id2)
}

func TestTrustingPeriodContextValidate(t *testing.T) {
	trusted := TimeFromUnixNano(1_000 * int64(timeSecond))
	ctx := trustingPeriodContext{
		trustingPeriod:   100 * time.Second,
		clockDrift:       10 * time.Second,
		headerTimestamp:  TimeFromUnixNano(1_050 * int64(timeSecond)),
		trustedTimestamp: trusted,
	}

	// Within the trusting window and not from the future: ok.
	require.NoError(t, ctx.Validate(TimeFromUnixNano(1_060*int64(timeSecond))))

	// Past trusted_timestamp + trusting_period: rejected.
	err := ctx.Validate(TimeFromUnixNano(1_200 * int64(timeSecond)))
	require.Error(t, err)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	require.Equal(t, KindOutOfTrustingPeriod, verr.Kind)

	// Header timestamp further ahead than clock drift allows: rejected.
	farFutureCtx := ctx
	farFutureCtx.headerTimestamp = TimeFromUnixNano(2_000 * int64(timeSecond))
	err = farFutureCtx.Validate(TimeFromUnixNano(1_010 * int64(timeSecond)))
	require.Error(t, err)
	require.ErrorAs(t, err, &verr)
	require.Equal(t, KindHeaderFromFuture, verr.Kind)
}

func TestEmptyContextAlwaysValid(t *testing.T) {
	require.NoError(t, emptyContext{}.Validate(Now()))
}

func TestUpdateClientRejectsZeroTrustedHeight(t *testing.T) {
	cs := sampleClientState()
	host := &fakeHostClientReader{
		clientStates: map[string]*anypb.Any{"07-qbft-0": cs.ToAny()},
		now:          Now(),
	}

	eth, err := ParseEthHeader(mustHexDecode(t, headerWithoutSealsHex))
	require.NoError(t, err)
	header := &HeaderMessage{
		EthHeader:     eth,
		TrustedHeight: ZeroHeight,
	}

	_, err = LightClient{}.UpdateClient(host, "07-qbft-0", header.ToAny())
	require.Error(t, err)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	require.Equal(t, KindInvalidHeaderZeroTrustedHeight, verr.Kind)
}
