package lightclient

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

func TestCalculateIBCCommitmentStorageKeyDeterministic(t *testing.T) {
	path := []byte("clients/07-qbft-0/clientState")
	k1 := calculateIBCCommitmentStorageKey(path)
	k2 := calculateIBCCommitmentStorageKey(path)
	require.Equal(t, k1, k2)

	other := calculateIBCCommitmentStorageKey([]byte("clients/07-qbft-0/connection"))
	require.NotEqual(t, k1, other)

	want := Keccak256(append(append([]byte{}, Keccak256(path).Bytes()...), bytes32BigEndianOf(ibcCommitmentsSlot)[:]...))
	require.Equal(t, want, k1)
}

func bytes32BigEndianOf(u *U256) [32]byte {
	return bytes32BigEndian(u)
}

func TestTrimLeadingZeros(t *testing.T) {
	require.Equal(t, []byte{0x01, 0x02}, trimLeadingZeros([]byte{0x00, 0x00, 0x01, 0x02}))
	require.Equal(t, []byte{}, trimLeadingZeros([]byte{0x00, 0x00}))
	require.Equal(t, []byte{0xff}, trimLeadingZeros([]byte{0xff}))
}

func TestDecodeEIP1186ProofRejectsNonList(t *testing.T) {
	// 0x80 is the RLP encoding of the empty string, not a list.
	_, err := decodeEIP1186Proof([]byte{0x80})
	require.Error(t, err)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	require.Equal(t, KindInvalidRLPFormatNotList, verr.Kind)
}

func TestDecodeEIP1186ProofEmptyList(t *testing.T) {
	empty, err := rlp.EncodeToBytes([][]byte{})
	require.NoError(t, err)
	nodes, err := decodeEIP1186Proof(empty)
	require.NoError(t, err)
	require.Empty(t, nodes)
}

func TestVerifyAccountStorageMissingProofNode(t *testing.T) {
	emptyProof, err := rlp.EncodeToBytes([][]byte{})
	require.NoError(t, err)

	var root H256
	root[0] = 0x01 // any non-empty root with no corresponding node in the (empty) proof db
	_, err = VerifyAccountStorage(emptyProof, root, Address{})
	require.Error(t, err)
}

func TestVerifyMembershipMissingProofNode(t *testing.T) {
	emptyProof, err := rlp.EncodeToBytes([][]byte{})
	require.NoError(t, err)

	var root H256
	root[0] = 0x01
	err = VerifyMembership(emptyProof, root, []byte("clients/07-qbft-0/clientState"), []byte("value"))
	require.Error(t, err)
}

func TestVerifyNonMembershipMissingProofNode(t *testing.T) {
	emptyProof, err := rlp.EncodeToBytes([][]byte{})
	require.NoError(t, err)

	var root H256
	root[0] = 0x01
	err = VerifyNonMembership(emptyProof, root, []byte("clients/07-qbft-0/clientState"))
	require.Error(t, err)
}
