package zil_test

import (
	"testing"

	"github.com/ZilDuck/nft-marketplace/pkg/zil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAddress_Base16(t *testing.T) {
	normalized, err := zil.NormalizeAddress("0x4BAF5FADA8E5DB92C3D3242618C5B47133AE003C")
	require.NoError(t, err)
	assert.Equal(t, "0x4baf5fada8e5db92c3d3242618c5b47133ae003c", normalized)
}

func TestNormalizeAddress_Bech32Roundtrip(t *testing.T) {
	normalized, err := zil.NormalizeAddress("0x4baf5fada8e5db92c3d3242618c5b47133ae003c")
	require.NoError(t, err)

	bech32Address := zil.ToBech32(normalized)
	require.NotEmpty(t, bech32Address)
	assert.Contains(t, bech32Address, "zil1")

	roundtripped, err := zil.NormalizeAddress(bech32Address)
	require.NoError(t, err)
	assert.Equal(t, normalized, roundtripped)
}

func TestNormalizeAddress_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"0x123",
		"4baf5fada8e5db92c3d3242618c5b47133ae003c",
		"0x4baf5fada8e5db92c3d3242618c5b47133ae003czz",
		"zil1notanaddress",
	}

	for _, address := range invalid {
		_, err := zil.NormalizeAddress(address)
		assert.ErrorIs(t, err, zil.ErrInvalidAddress, address)
	}
}
