package lightclient

import (
	"fmt"
	"math"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"google.golang.org/protobuf/types/known/anypb"
)

// maxNanoSeconds bounds the block timestamps (in seconds) this client can
// represent as a Time without overflowing its int64-nanosecond resolution.
const maxNanoSeconds = int64(math.MaxInt64)

func errNumberOverflow(n *U256) error {
	return fmt.Errorf("block number %s does not fit in u64", n)
}

func errTimestampOverflow(ts *U256) error {
	return fmt.Errorf("block timestamp %s does not fit in this client's time resolution", ts)
}

// HostClientReader is the read-only snapshot LightClient's methods are
// evaluated against: the persisted ClientState/ConsensusState for a client
// and the host's current wall-clock time (spec.md §6). LightClient never
// mutates anything it reads through this interface; every entry point
// returns new values for the host to persist.
type HostClientReader interface {
	ClientState(clientID string) (*anypb.Any, error)
	ConsensusState(clientID string, height Height) (*anypb.Any, error)
	HostTimestamp() Time
}

// ValidationContext is the temporal policy update_client attaches to its
// result so a host can re-check it against its own clock before
// committing the update (spec.md §4.7 step 11).
type ValidationContext interface {
	Validate(now Time) error
}

// emptyContext is used when a client state carries no trusting period:
// temporal checks are skipped entirely.
type emptyContext struct{}

func (emptyContext) Validate(Time) error { return nil }

// trustingPeriodContext enforces that the trusted consensus state has not
// aged out of its trusting window, and that the new header is not
// timestamped further into the future than the allowed clock drift.
type trustingPeriodContext struct {
	trustingPeriod   time.Duration
	clockDrift       time.Duration
	headerTimestamp  Time
	trustedTimestamp Time
}

func (c trustingPeriodContext) Validate(now Time) error {
	end := c.trustedTimestamp.Add(c.trustingPeriod)
	if now.After(end) {
		return errOutOfTrustingPeriod(now, end)
	}
	driftLimit := now.Add(c.clockDrift)
	if c.headerTimestamp.After(driftLimit) {
		return errHeaderFromFuture(now, c.clockDrift, c.headerTimestamp)
	}
	return nil
}

// EmittedState is a (height, client state) pair a create_client result
// reports as newly visible, for hosts that index client states by height.
type EmittedState struct {
	Height Height
	State  *anypb.Any
}

// UpdateStateProxyMessage is the commitment-proof-shaped summary every
// successful state transition reports, independent of the concrete client
// type (spec.md §4.7).
type UpdateStateProxyMessage struct {
	PrevHeight    *Height
	PrevStateID   *H256
	PostHeight    Height
	PostStateID   H256
	EmittedStates []EmittedState
	Timestamp     Time
	Context       ValidationContext
}

// VerifyMembershipProxyMessage is the commitment-proof-shaped summary
// verify_membership/verify_non_membership report.
type VerifyMembershipProxyMessage struct {
	Prefix      []byte
	Path        []byte
	ValueHash   *H256
	ProofHeight Height
	StateID     H256
}

// CreateClientResult is create_client's return value.
type CreateClientResult struct {
	Height  Height
	Message UpdateStateProxyMessage
	Prove   bool
}

// UpdateStateData is update_client's return value: the new state a host
// should persist plus the proof-shaped summary of the transition.
type UpdateStateData struct {
	ClientState    *ClientState
	ConsensusState *ConsensusState
	Height         Height
	Message        UpdateStateProxyMessage
	Prove          bool
}

// LightClient implements the IBC light-client contract for Besu QBFT
// chains. It is stateless: every method call is a pure function of its
// arguments and whatever HostClientReader returns.
type LightClient struct{}

// ClientType returns the short registration string this client is keyed
// by, alongside the ClientState type URL (spec.md §9).
func (LightClient) ClientType() string {
	return ClientTypeQBFT
}

// LatestHeight decodes a ClientState Any and returns its latest_height,
// without consulting a HostClientReader — a convenience read restored from
// the original source (SPEC_FULL.md §4.7).
func (LightClient) LatestHeight(anyClientState *anypb.Any) (Height, error) {
	cs, err := ClientStateFromAny(anyClientState)
	if err != nil {
		return ZeroHeight, err
	}
	return cs.LatestHeight, nil
}

// CreateClient initializes a new client at the height embedded in
// clientState (spec.md §4.7).
func (LightClient) CreateClient(anyClientState, anyConsensusState *anypb.Any) (*CreateClientResult, error) {
	cs, err := ClientStateFromAny(anyClientState)
	if err != nil {
		return nil, err
	}
	if err := cs.Validate(); err != nil {
		return nil, err
	}
	ccs, err := ConsensusStateFromAny(anyConsensusState)
	if err != nil {
		return nil, err
	}
	if err := ccs.Validate(); err != nil {
		return nil, err
	}

	height := cs.LatestHeight
	stateID := GenStateID(cs, ccs)

	return &CreateClientResult{
		Height: height,
		Message: UpdateStateProxyMessage{
			PrevHeight:  nil,
			PrevStateID: nil,
			PostHeight:  height,
			PostStateID: stateID,
			EmittedStates: []EmittedState{
				{Height: height, State: anyClientState},
			},
			Timestamp: ccs.Timestamp,
			Context:   emptyContext{},
		},
		Prove: false,
	}, nil
}

// UpdateClient advances clientID's trust from the ConsensusState at
// header.trusted_height to a new height and ConsensusState derived from
// header, verifying committed seals and the IBC contract's storage root
// along the way (spec.md §4.7).
func (LightClient) UpdateClient(host HostClientReader, clientID string, anyHeader *anypb.Any) (*UpdateStateData, error) {
	anyClientState, err := host.ClientState(clientID)
	if err != nil {
		return nil, err
	}
	cs, err := ClientStateFromAny(anyClientState)
	if err != nil {
		return nil, err
	}

	header, err := HeaderFromAny(anyHeader)
	if err != nil {
		return nil, err
	}
	if err := header.Validate(); err != nil {
		return nil, err
	}

	anyTrustedConsensusState, err := host.ConsensusState(clientID, header.TrustedHeight)
	if err != nil {
		return nil, err
	}
	tcs, err := ConsensusStateFromAny(anyTrustedConsensusState)
	if err != nil {
		return nil, err
	}

	eh := header.EthHeader
	commitHash, err := eh.CommitHash()
	if err != nil {
		return nil, err
	}

	if err := verifyCommitSealsTrusting(tcs.Validators, header.Seals, commitHash); err != nil {
		return nil, err
	}
	if err := verifyCommitSealsUntrusting(eh.Extra.Validators, header.Seals, commitHash); err != nil {
		return nil, err
	}

	storageRoot, err := VerifyAccountStorage(header.AccountStateProof, eh.StateRoot, cs.IbcStoreAddress)
	if err != nil {
		return nil, err
	}

	if !eh.Number.IsUint64() {
		return nil, errFromUint64(errNumberOverflow(eh.Number))
	}
	newHeight := Height{RevisionNumber: cs.LatestHeight.RevisionNumber, RevisionHeight: eh.Number.Uint64()}

	if !eh.Timestamp.IsUint64() {
		return nil, errFromUint128(errTimestampOverflow(eh.Timestamp))
	}
	sec := eh.Timestamp.Uint64()
	if sec > uint64(maxNanoSeconds)/uint64(timeSecond) {
		return nil, errFromUint128(errTimestampOverflow(eh.Timestamp))
	}
	newTimestamp := TimeFromUnixNano(int64(sec) * timeSecond)

	newClientState := *cs
	newClientState.LatestHeight = cs.LatestHeight.Max(newHeight)

	newConsensusState := &ConsensusState{
		Timestamp:  newTimestamp,
		Root:       storageRoot,
		Validators: eh.Extra.Validators,
	}

	var ctx ValidationContext
	if cs.TrustingPeriod <= 0 {
		ctx = emptyContext{}
	} else {
		ctx = trustingPeriodContext{
			trustingPeriod:   cs.TrustingPeriod,
			clockDrift:       cs.clockDriftOrDefault(),
			headerTimestamp:  newTimestamp,
			trustedTimestamp: tcs.Timestamp,
		}
	}
	if err := ctx.Validate(host.HostTimestamp()); err != nil {
		return nil, err
	}

	prevHeight := header.TrustedHeight
	prevStateID := GenStateID(cs, tcs)
	postStateID := GenStateID(&newClientState, newConsensusState)

	log.Debug("qbft light client: update_client",
		"client_id", clientID, "prev_height", prevHeight, "post_height", newHeight)

	return &UpdateStateData{
		ClientState:    &newClientState,
		ConsensusState: newConsensusState,
		Height:         newHeight,
		Message: UpdateStateProxyMessage{
			PrevHeight:  &prevHeight,
			PrevStateID: &prevStateID,
			PostHeight:  newHeight,
			PostStateID: postStateID,
			Timestamp:   newTimestamp,
			Context:     ctx,
		},
		Prove: true,
	}, nil
}

// VerifyMembership proves that value is committed under path in the IBC
// contract's storage at proofHeight (spec.md §4.7).
func (LightClient) VerifyMembership(host HostClientReader, clientID string, prefix, path []byte, value []byte, proofHeight Height, proof []byte) (*VerifyMembershipProxyMessage, error) {
	cs, ccs, err := loadClientAndConsensus(host, clientID, proofHeight)
	if err != nil {
		return nil, err
	}
	if err := VerifyMembership(proof, ccs.Root, path, value); err != nil {
		return nil, err
	}
	valueHash := Keccak256(value)
	return &VerifyMembershipProxyMessage{
		Prefix:      prefix,
		Path:        path,
		ValueHash:   &valueHash,
		ProofHeight: proofHeight,
		StateID:     GenStateID(cs, ccs),
	}, nil
}

// VerifyNonMembership proves that no value is committed under path in the
// IBC contract's storage at proofHeight (spec.md §4.7).
func (LightClient) VerifyNonMembership(host HostClientReader, clientID string, prefix, path []byte, proofHeight Height, proof []byte) (*VerifyMembershipProxyMessage, error) {
	cs, ccs, err := loadClientAndConsensus(host, clientID, proofHeight)
	if err != nil {
		return nil, err
	}
	if err := VerifyNonMembership(proof, ccs.Root, path); err != nil {
		return nil, err
	}
	return &VerifyMembershipProxyMessage{
		Prefix:      prefix,
		Path:        path,
		ValueHash:   nil,
		ProofHeight: proofHeight,
		StateID:     GenStateID(cs, ccs),
	}, nil
}

func loadClientAndConsensus(host HostClientReader, clientID string, height Height) (*ClientState, *ConsensusState, error) {
	anyClientState, err := host.ClientState(clientID)
	if err != nil {
		return nil, nil, err
	}
	cs, err := ClientStateFromAny(anyClientState)
	if err != nil {
		return nil, nil, err
	}
	anyConsensusState, err := host.ConsensusState(clientID, height)
	if err != nil {
		return nil, nil, err
	}
	ccs, err := ConsensusStateFromAny(anyConsensusState)
	if err != nil {
		return nil, nil, err
	}
	return cs, ccs, nil
}
