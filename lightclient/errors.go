package lightclient

import (
	"fmt"
	"time"
)

// Kind enumerates the verifier's error taxonomy (spec.md §7). Every
// exported failure mode of this package carries one of these so a host
// can branch on Kind without string-matching.
type Kind int

const (
	KindInvalidClientStateZeroHeight Kind = iota
	KindInvalidClientStateZeroIbcStoreAddress
	KindInvalidConsensusStateZeroRoot
	KindInvalidConsensusStateRootSize
	KindInvalidHeaderZeroTrustedHeight
	KindInvalidHeaderExtraSize
	KindHeaderExtraContainsCommittedSeals
	KindInvalidRLPFormatNotList
	KindRLPDecode
	KindInvalidStateRootLength
	KindInvalidBlockNumberLength
	KindInvalidBlockTimestampLength
	KindInvalidValidatorAddressLength
	KindInvalidSignatureLength
	KindSignatureRecovery
	KindAccountNotFound
	KindInvalidAccountStorageRoot
	KindEthereumLightClient
	KindOutOfTrustingPeriod
	KindHeaderFromFuture
	KindUnexpectedClientType
	KindDecode
	KindFromUint64
	KindFromUint128
	KindSliceToArrayConversion
	// KindSealThresholdNotMet is the one non-retriable abort in this
	// package (spec.md §9): the source raises an unrecoverable fault on
	// BFT-threshold failure rather than returning a recoverable error.
	// We surface it as its own Kind and return it rather than panic, so
	// embedding hosts (including an enclave boundary) never have to
	// recover from a panic to reject an update.
	KindSealThresholdNotMet
)

func (k Kind) String() string {
	switch k {
	case KindInvalidClientStateZeroHeight:
		return "invalid client state: height is zero"
	case KindInvalidClientStateZeroIbcStoreAddress:
		return "invalid client state: ibc store address is zero"
	case KindInvalidConsensusStateZeroRoot:
		return "invalid consensus state: state root is zero"
	case KindInvalidConsensusStateRootSize:
		return "invalid consensus state: state root size mismatch"
	case KindInvalidHeaderZeroTrustedHeight:
		return "invalid header: trusted height is zero"
	case KindInvalidHeaderExtraSize:
		return "invalid header extra size"
	case KindHeaderExtraContainsCommittedSeals:
		return "invalid header extra: contains committed seals"
	case KindInvalidRLPFormatNotList:
		return "invalid rlp format: not a list"
	case KindRLPDecode:
		return "rlp decode error"
	case KindInvalidStateRootLength:
		return "invalid state root length"
	case KindInvalidBlockNumberLength:
		return "invalid block number length"
	case KindInvalidBlockTimestampLength:
		return "invalid block timestamp length"
	case KindInvalidValidatorAddressLength:
		return "invalid validator address length"
	case KindInvalidSignatureLength:
		return "invalid signature length"
	case KindSignatureRecovery:
		return "signature recovery error"
	case KindAccountNotFound:
		return "account not found"
	case KindInvalidAccountStorageRoot:
		return "invalid account storage root"
	case KindEthereumLightClient:
		return "ethereum light client error"
	case KindOutOfTrustingPeriod:
		return "out of trusting period"
	case KindHeaderFromFuture:
		return "header is from the future"
	case KindUnexpectedClientType:
		return "unexpected client type"
	case KindDecode:
		return "proto decode error"
	case KindFromUint64:
		return "uint64 conversion error"
	case KindFromUint128:
		return "uint128 conversion error"
	case KindSliceToArrayConversion:
		return "fixed-size slice conversion error"
	case KindSealThresholdNotMet:
		return "committed seals do not meet the bft threshold"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type every exported failure of this package
// returns. It is always non-nil when returned and always unwraps to the
// underlying cause, if any.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.msg == "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %v", e.Kind, e.err)
		}
		return e.Kind.String()
	}
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

func newErr(kind Kind, msg string) error {
	return &Error{Kind: kind, msg: msg}
}

func wrapErr(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, msg: msg, err: err}
}

func errInvalidClientStateZeroHeight() error {
	return newErr(KindInvalidClientStateZeroHeight, "")
}

func errInvalidClientStateZeroIbcStoreAddress() error {
	return newErr(KindInvalidClientStateZeroIbcStoreAddress, "")
}

func errInvalidConsensusStateZeroRoot() error {
	return newErr(KindInvalidConsensusStateZeroRoot, "")
}

func errInvalidConsensusStateRootSize(n int) error {
	return newErr(KindInvalidConsensusStateRootSize, fmt.Sprintf("got %d bytes, want 32", n))
}

func errInvalidHeaderZeroTrustedHeight() error {
	return newErr(KindInvalidHeaderZeroTrustedHeight, "")
}

func errInvalidHeaderExtraSize(n int) error {
	return newErr(KindInvalidHeaderExtraSize, fmt.Sprintf("got %d items, want 5", n))
}

func errHeaderExtraContainsCommittedSeals(raw []byte) error {
	return newErr(KindHeaderExtraContainsCommittedSeals, fmt.Sprintf("header is %d bytes", len(raw)))
}

func errInvalidRLPFormatNotList(raw []byte) error {
	return newErr(KindInvalidRLPFormatNotList, fmt.Sprintf("%d bytes", len(raw)))
}

func errRLPDecode(err error) error {
	return wrapErr(KindRLPDecode, "", err)
}

func errInvalidStateRootLength(n int) error {
	return newErr(KindInvalidStateRootLength, fmt.Sprintf("got %d bytes, want 32", n))
}

func errInvalidBlockNumberLength(n int) error {
	return newErr(KindInvalidBlockNumberLength, fmt.Sprintf("got %d bytes, want <= 32", n))
}

func errInvalidBlockTimestampLength(n int) error {
	return newErr(KindInvalidBlockTimestampLength, fmt.Sprintf("got %d bytes, want <= 32", n))
}

func errInvalidValidatorAddressLength(n int) error {
	return newErr(KindInvalidValidatorAddressLength, fmt.Sprintf("got %d bytes, want 20", n))
}

func errInvalidSignatureLength(n int) error {
	return newErr(KindInvalidSignatureLength, fmt.Sprintf("got %d bytes, want 65", n))
}

func errSignatureRecovery(err error) error {
	return wrapErr(KindSignatureRecovery, "", err)
}

func errAccountNotFound(root H256, addr Address) error {
	return newErr(KindAccountNotFound, fmt.Sprintf("state_root=%s address=%s", root, addr))
}

func errInvalidAccountStorageRoot(b []byte) error {
	return newErr(KindInvalidAccountStorageRoot, fmt.Sprintf("%x", b))
}

func errEthereumLightClient(err error) error {
	return wrapErr(KindEthereumLightClient, "", err)
}

func errOutOfTrustingPeriod(now, end Time) error {
	return newErr(KindOutOfTrustingPeriod, fmt.Sprintf("current_timestamp=%s trusting_period_end=%s", now, end))
}

func errHeaderFromFuture(now Time, drift time.Duration, headerTS Time) error {
	return newErr(KindHeaderFromFuture, fmt.Sprintf("current_timestamp=%s clock_drift=%s header_timestamp=%s", now, drift, headerTS))
}

func errUnexpectedClientType(url string) error {
	return newErr(KindUnexpectedClientType, url)
}

func errDecode(err error) error {
	return wrapErr(KindDecode, "", err)
}

func errFromUint64(err error) error {
	return wrapErr(KindFromUint64, "", err)
}

func errFromUint128(err error) error {
	return wrapErr(KindFromUint128, "", err)
}

func errSliceToArrayConversion(err error) error {
	return wrapErr(KindSliceToArrayConversion, "", err)
}

func errSealThresholdNotMet(success, n int) error {
	return newErr(KindSealThresholdNotMet, fmt.Sprintf("success=%d n=%d (need 3*success > 2*n)", success, n))
}
