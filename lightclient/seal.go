package lightclient

import (
	"github.com/ethereum/go-ethereum/log"
)

// bftThresholdMet implements spec.md §4.5/§6's BFT supermajority rule:
// success > 2n/3, equivalently 3*success > 2*n.
func bftThresholdMet(success, n int) bool {
	return 3*success > 2*n
}

// verifyCommitSealsTrusting checks committedSeals against a trusted
// validator set (the prior ConsensusState's validators): each non-empty
// seal is recovered, and counts once per distinct trusted validator it
// matches (spec.md §4.5, "trusting check"). It is fatal — returned as
// KindSealThresholdNotMet — if the resulting count does not meet the BFT
// threshold.
func verifyCommitSealsTrusting(trustedValidators []Address, seals [][]byte, commitHash H256) error {
	marked := make([]bool, len(trustedValidators))
	success := 0
	for _, seal := range seals {
		if len(seal) == 0 {
			continue
		}
		addr, err := RecoverAddress(commitHash, seal)
		if err != nil {
			return err
		}
		for i, v := range trustedValidators {
			if v == addr && !marked[i] {
				marked[i] = true
				success++
				break
			}
		}
	}
	n := len(trustedValidators)
	log.Debug("qbft light client: trusting seal check", "success", success, "n", n)
	if !bftThresholdMet(success, n) {
		return errSealThresholdNotMet(success, n)
	}
	return nil
}

// verifyCommitSealsUntrusting checks committedSeals against the new
// header's own declared validator set, positionally: seals[i] must
// recover to validators[i] (spec.md §4.5, "untrusting check"). The two
// slices must be the same length.
func verifyCommitSealsUntrusting(untrustedValidators []Address, committedSeals [][]byte, commitHash H256) error {
	if len(untrustedValidators) != len(committedSeals) {
		return errSealThresholdNotMet(0, len(untrustedValidators))
	}
	success := 0
	for i, validator := range untrustedValidators {
		seal := committedSeals[i]
		if len(seal) == 0 {
			continue
		}
		addr, err := RecoverAddress(commitHash, seal)
		if err != nil {
			return err
		}
		if addr == validator {
			success++
		}
	}
	n := len(untrustedValidators)
	log.Debug("qbft light client: untrusting seal check", "success", success, "n", n)
	if !bftThresholdMet(success, n) {
		return errSealThresholdNotMet(success, n)
	}
	return nil
}
