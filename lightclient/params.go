package lightclient

import "time"

// ClientTypeQBFT is the short client-type string this light client
// registers under, in addition to the ClientState type URL.
const ClientTypeQBFT = "hb-qbft"

// Positional indices of the fields this client reads out of an RLP-encoded
// Besu block header. Other header fields are not consulted.
const (
	HeaderStateRootIndex  = 3
	HeaderNumberIndex     = 8
	HeaderTimestampIndex  = 11
	HeaderExtraIndex      = 12
	headerExtraItemCount  = 5
)

// DefaultMaxClockDrift is the fallback tolerance for headers whose
// timestamp is ahead of the host's wall clock, used only when
// ClientState.MaxClockDrift is zero (see DESIGN.md: the source hardcodes
// this; we plumb ClientState's own field through and fall back to this
// constant, per spec.md §9's stated intent).
const DefaultMaxClockDrift = 30 * time.Second

// ibcCommitmentsSlot is the fixed storage slot under which the IBC module
// stores commitment hashes, combined with a path hash to derive the
// storage key read in verify_membership/verify_non_membership.
var ibcCommitmentsSlot = U256FromBytes32(hexMustDecode32(
	"1ee222554989dda120e26ecacf756fe1235cd8d726706b57517715dde4f0c900"))
