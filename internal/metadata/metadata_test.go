package metadata_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/ZilDuck/nft-marketplace/internal/metadata"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cid = "QmPK1s3pNYLi9ERiq3BDxKa4XosgWwFRQUydHUtz4YgpqB"

func newClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 0

	return client
}

func TestFetchMetadata_Http(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Duck #1","attributes":[]}`))
	}))
	defer ts.Close()

	svc := metadata.NewMetadataService(newClient(), nil)

	md, err := svc.FetchMetadata(entity.Token{TokenUri: ts.URL + "/metadata/1"})
	require.NoError(t, err)
	assert.Equal(t, "Duck #1", md["name"])
}

func TestFetchMetadata_IpfsGatewayFallback(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer bad.Close()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ipfs/"+cid, r.URL.Path)
		_, _ = w.Write([]byte(`{"name":"Duck #2"}`))
	}))
	defer good.Close()

	svc := metadata.NewMetadataService(newClient(), []string{bad.URL, good.URL})

	md, err := svc.FetchMetadata(entity.Token{TokenUri: "ipfs://" + cid})
	require.NoError(t, err)
	assert.Equal(t, "Duck #2", md["name"])
}

func TestFetchMetadata_NoIpfsHosts(t *testing.T) {
	svc := metadata.NewMetadataService(newClient(), nil)

	_, err := svc.FetchMetadata(entity.Token{TokenUri: "ipfs://" + cid})
	assert.ErrorIs(t, err, metadata.ErrNoIpfsHosts)
}

func TestFetchMetadata_InvalidUri(t *testing.T) {
	svc := metadata.NewMetadataService(newClient(), nil)

	_, err := svc.FetchMetadata(entity.Token{TokenUri: "ftp://nope"})
	assert.Error(t, err)
}

func TestFetchMetadata_SlowGatewayAbandoned(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(3 * time.Second)
	}))
	defer ts.Close()

	require.NoError(t, os.Setenv("IPFS_TIMEOUT", "1"))
	require.NoError(t, os.Setenv("METADATA_RETRIES", "0"))
	defer func() {
		_ = os.Unsetenv("IPFS_TIMEOUT")
		_ = os.Unsetenv("METADATA_RETRIES")
	}()

	svc := metadata.NewMetadataService(metadata.NewRetryableClient(), nil)

	start := time.Now()
	_, err := svc.FetchMetadata(entity.Token{TokenUri: ts.URL})
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestFetchMetadata_BadJson(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer ts.Close()

	svc := metadata.NewMetadataService(newClient(), nil)

	_, err := svc.FetchMetadata(entity.Token{TokenUri: ts.URL})
	assert.Error(t, err)
}
