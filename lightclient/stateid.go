package lightclient

// GenStateID derives the opaque commitment IBC hosts use to detect
// ClientState/ConsensusState tampering: keccak256 of the canonicalized
// ClientState (latest_height zeroed, so state_id is stable across
// update_client calls) concatenated with the ConsensusState's own wire
// encoding (spec.md §6).
func GenStateID(cs *ClientState, consensus *ConsensusState) H256 {
	buf := append(cs.canonicalizeForStateID(), consensus.Encode()...)
	return Keccak256(buf)
}
