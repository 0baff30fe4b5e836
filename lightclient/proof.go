package lightclient

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"
)

// rlpAccount is the four-tuple every Ethereum state-trie leaf value RLP
// encodes to; we only ever need StorageRoot out of it.
type rlpAccount struct {
	Nonce    uint64
	Balance  *big.Int
	Root     common.Hash
	CodeHash []byte
}

// decodeEIP1186Proof re-encodes an EIP-1186 proof — an RLP list whose
// items are themselves RLP lists of byte strings, one per trie node — into
// the canonical single-blob form the trie verifier consumes per node
// (spec.md §4.6).
func decodeEIP1186Proof(proof []byte) ([][]byte, error) {
	var items []rlp.RawValue
	if err := rlp.DecodeBytes(proof, &items); err != nil {
		return nil, errInvalidRLPFormatNotList(proof)
	}
	nodes := make([][]byte, len(items))
	for i, item := range items {
		var elems [][]byte
		if err := rlp.DecodeBytes(item, &elems); err != nil {
			return nil, errRLPDecode(err)
		}
		enc, err := rlp.EncodeToBytes(elems)
		if err != nil {
			return nil, errRLPDecode(err)
		}
		nodes[i] = enc
	}
	return nodes, nil
}

// buildProofDB indexes decoded trie nodes by their keccak256 hash, the
// form trie.VerifyProof expects its proof database in.
func buildProofDB(nodes [][]byte) *memorydb.Database {
	db := memorydb.New()
	for _, n := range nodes {
		_ = db.Put(Keccak256(n).Bytes(), n)
	}
	return db
}

// secureTrieKey returns the trie path used to look up a secure (hashed)
// trie entry keyed by rawKey — Ethereum's state and storage tries are both
// keyed by the keccak256 of the logical key, not the logical key itself.
func secureTrieKey(rawKey []byte) []byte {
	h := Keccak256(rawKey)
	return h[:]
}

// VerifyAccountStorage proves that address's account exists in the state
// trie rooted at stateRoot and returns its storage root (spec.md §4.6).
func VerifyAccountStorage(proof []byte, stateRoot H256, address Address) (H256, error) {
	nodes, err := decodeEIP1186Proof(proof)
	if err != nil {
		return H256{}, err
	}
	db := buildProofDB(nodes)

	value, err := trie.VerifyProof(common.Hash(stateRoot), secureTrieKey(address.Bytes()), db)
	if err != nil {
		return H256{}, errEthereumLightClient(err)
	}
	if value == nil {
		return H256{}, errAccountNotFound(stateRoot, address)
	}

	var acc rlpAccount
	if err := rlp.DecodeBytes(value, &acc); err != nil {
		return H256{}, errInvalidAccountStorageRoot(value)
	}
	if acc.Root == (common.Hash{}) {
		return H256{}, errInvalidAccountStorageRoot(value)
	}
	return H256(acc.Root), nil
}

// calculateIBCCommitmentStorageKey derives the EVM storage slot index
// under which the IBC module stores the commitment for path (spec.md
// §4.6): keccak256( keccak256(path) || IBC_COMMITMENTS_SLOT ).
func calculateIBCCommitmentStorageKey(path []byte) H256 {
	pathHash := Keccak256(path)
	slotBytes := bytes32BigEndian(ibcCommitmentsSlot)
	buf := make([]byte, 0, 64)
	buf = append(buf, pathHash[:]...)
	buf = append(buf, slotBytes[:]...)
	return Keccak256(buf)
}

// trimLeadingZeros drops leading zero bytes, as Ethereum's RLP integer
// encoding requires.
func trimLeadingZeros(b []byte) []byte {
	i := 0
	for i < len(b) && b[i] == 0 {
		i++
	}
	return b[i:]
}

// VerifyMembership proves that the storage trie rooted at storageRoot
// contains, at the slot derived from path, the RLP encoding of
// trim_leading_zeros(keccak256(value)) (spec.md §4.6).
func VerifyMembership(proof []byte, storageRoot H256, path []byte, value []byte) error {
	nodes, err := decodeEIP1186Proof(proof)
	if err != nil {
		return err
	}
	db := buildProofDB(nodes)

	slot := calculateIBCCommitmentStorageKey(path)
	expected, err := rlp.EncodeToBytes(trimLeadingZeros(Keccak256(value).Bytes()))
	if err != nil {
		return errRLPDecode(err)
	}

	got, err := trie.VerifyProof(common.Hash(storageRoot), secureTrieKey(slot[:]), db)
	if err != nil {
		return errEthereumLightClient(err)
	}
	if !bytes.Equal(got, expected) {
		return errEthereumLightClient(fmt.Errorf("storage value mismatch: got %x, want %x", got, expected))
	}
	return nil
}

// VerifyNonMembership proves that the storage trie rooted at storageRoot
// has no entry at the slot derived from path.
func VerifyNonMembership(proof []byte, storageRoot H256, path []byte) error {
	nodes, err := decodeEIP1186Proof(proof)
	if err != nil {
		return err
	}
	db := buildProofDB(nodes)

	slot := calculateIBCCommitmentStorageKey(path)

	got, err := trie.VerifyProof(common.Hash(storageRoot), secureTrieKey(slot[:]), db)
	if err != nil {
		return errEthereumLightClient(err)
	}
	if got != nil {
		return errEthereumLightClient(fmt.Errorf("expected non-membership, but key is present"))
	}
	return nil
}
