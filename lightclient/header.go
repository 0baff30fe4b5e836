package lightclient

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
)

// QbftExtra is the decoded Besu QBFT `extra` sub-structure: exactly five
// RLP items (spec.md §4.3).
type QbftExtra struct {
	VanityData     []byte
	Validators     []Address
	Vote           []byte // raw RLP encoding of the vote item, not further decoded
	Round          uint32
	CommittedSeals [][]byte
}

// DecodeQbftExtra decodes the RLP-encoded `extra` field of a Besu QBFT
// header.
func DecodeQbftExtra(bz []byte) (*QbftExtra, error) {
	var items []rlp.RawValue
	if err := rlp.DecodeBytes(bz, &items); err != nil {
		return nil, errRLPDecode(err)
	}
	if len(items) != headerExtraItemCount {
		return nil, errInvalidHeaderExtraSize(len(items))
	}

	var vanity []byte
	if err := rlp.DecodeBytes(items[0], &vanity); err != nil {
		return nil, errRLPDecode(err)
	}

	var rawValidators [][]byte
	if err := rlp.DecodeBytes(items[1], &rawValidators); err != nil {
		return nil, errRLPDecode(err)
	}
	validators := make([]Address, len(rawValidators))
	for i, v := range rawValidators {
		if len(v) != len(Address{}) {
			return nil, errInvalidValidatorAddressLength(len(v))
		}
		validators[i] = Address(v)
	}

	vote := append([]byte(nil), items[2]...)

	var round uint32
	if err := rlp.DecodeBytes(items[3], &round); err != nil {
		return nil, errRLPDecode(err)
	}

	var committedSeals [][]byte
	if err := rlp.DecodeBytes(items[4], &committedSeals); err != nil {
		return nil, errRLPDecode(err)
	}

	return &QbftExtra{
		VanityData:     vanity,
		Validators:     validators,
		Vote:           vote,
		Round:          round,
		CommittedSeals: committedSeals,
	}, nil
}

// EthHeader is a Besu block header, parsed positionally out of its RLP
// encoding (spec.md §4.3): only the fields this light client needs are
// extracted, the rest of the header is not validated or retained beyond
// the raw bytes needed to recompute the commit hash.
type EthHeader struct {
	raw []byte

	StateRoot H256
	Number    *U256
	Timestamp *U256
	Extra     *QbftExtra
}

// ParseEthHeader parses headerRLP, an RLP-encoded Besu block header. A
// header whose `extra` still carries committed seals parses, but its
// CommitHash fails; update_client expects the seals out of band in
// HeaderMessage.Seals.
func ParseEthHeader(headerRLP []byte) (*EthHeader, error) {
	var items []rlp.RawValue
	if err := rlp.DecodeBytes(headerRLP, &items); err != nil {
		return nil, errRLPDecode(err)
	}
	if len(items) <= HeaderExtraIndex {
		return nil, errRLPDecode(fmt.Errorf("header has %d fields, need at least %d", len(items), HeaderExtraIndex+1))
	}

	var stateRootBytes []byte
	if err := rlp.DecodeBytes(items[HeaderStateRootIndex], &stateRootBytes); err != nil {
		return nil, errRLPDecode(err)
	}
	if len(stateRootBytes) != len(H256{}) {
		return nil, errInvalidStateRootLength(len(stateRootBytes))
	}
	var stateRoot H256
	copy(stateRoot[:], stateRootBytes)

	var numberBytes []byte
	if err := rlp.DecodeBytes(items[HeaderNumberIndex], &numberBytes); err != nil {
		return nil, errRLPDecode(err)
	}
	number, ok := U256FromBigEndian(numberBytes)
	if !ok {
		return nil, errInvalidBlockNumberLength(len(numberBytes))
	}

	var timestampBytes []byte
	if err := rlp.DecodeBytes(items[HeaderTimestampIndex], &timestampBytes); err != nil {
		return nil, errRLPDecode(err)
	}
	timestamp, ok := U256FromBigEndian(timestampBytes)
	if !ok {
		return nil, errInvalidBlockTimestampLength(len(timestampBytes))
	}

	var extraBytes []byte
	if err := rlp.DecodeBytes(items[HeaderExtraIndex], &extraBytes); err != nil {
		return nil, errRLPDecode(err)
	}
	extra, err := DecodeQbftExtra(extraBytes)
	if err != nil {
		return nil, err
	}

	return &EthHeader{
		raw:       append([]byte(nil), headerRLP...),
		StateRoot: stateRoot,
		Number:    number,
		Timestamp: timestamp,
		Extra:     extra,
	}, nil
}

// CommitHash returns the digest QBFT validators sign: keccak256 of the
// header's raw RLP, which must already have its committed seals stripped
// from `extra` (spec.md §4.4). The caller — update_client — is
// responsible for presenting that canonical zero-seal form.
func (h *EthHeader) CommitHash() (H256, error) {
	if len(h.Extra.CommittedSeals) != 0 {
		return H256{}, errHeaderExtraContainsCommittedSeals(h.raw)
	}
	return Keccak256(h.raw), nil
}
