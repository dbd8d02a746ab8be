package helper_test

import (
	"testing"

	"github.com/ZilDuck/nft-marketplace/internal/helper"
	"github.com/stretchr/testify/assert"
)

const cid = "QmPK1s3pNYLi9ERiq3BDxKa4XosgWwFRQUydHUtz4YgpqB"

func TestIsUrl(t *testing.T) {
	assert.True(t, helper.IsUrl("https://example.com/metadata/1"))
	assert.True(t, helper.IsUrl("ipfs://"+cid))
	assert.False(t, helper.IsUrl("not a url"))
	assert.False(t, helper.IsUrl("/relative/path"))
}

func TestIsIpfs(t *testing.T) {
	assert.True(t, helper.IsIpfs("ipfs://"+cid))
	assert.True(t, helper.IsIpfs(cid))
	assert.True(t, helper.IsIpfs("https://gateway.example.com/ipfs/"+cid))
	assert.False(t, helper.IsIpfs("https://example.com/metadata/1"))
	assert.False(t, helper.IsIpfs("not a url"))
}

func TestGatewayUrl(t *testing.T) {
	assert.Equal(t, "https://ipfs.io/ipfs/"+cid, helper.GatewayUrl("ipfs://"+cid, "https://ipfs.io"))
	assert.Equal(t, "https://ipfs.io/ipfs/"+cid, helper.GatewayUrl("ipfs://"+cid, "https://ipfs.io/"))
	assert.Equal(t, "https://ipfs.io/ipfs/"+cid, helper.GatewayUrl(cid, "https://ipfs.io"))
	assert.Equal(t, "https://ipfs.io/ipfs/"+cid+"/1.json", helper.GatewayUrl("ipfs://"+cid+"/1.json", "https://ipfs.io"))
}
