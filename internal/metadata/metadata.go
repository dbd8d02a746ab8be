package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/ZilDuck/nft-marketplace/internal/config"
	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/ZilDuck/nft-marketplace/internal/helper"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

var ErrNoIpfsHosts = errors.New("no ipfs hosts configured")

type Service interface {
	FetchMetadata(token entity.Token) (map[string]interface{}, error)
}

type service struct {
	client    *retryablehttp.Client
	ipfsHosts []string
}

func NewMetadataService(client *retryablehttp.Client, ipfsHosts []string) Service {
	return service{client, ipfsHosts}
}

func NewRetryableClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = config.Get().MetadataRetries
	client.HTTPClient.Timeout = time.Duration(config.Get().IpfsTimeout) * time.Second

	return client
}

func (s service) FetchMetadata(token entity.Token) (map[string]interface{}, error) {
	metadataUri, err := token.MetadataUri()
	if err != nil {
		return nil, err
	}

	if helper.IsIpfs(metadataUri) {
		return s.fetchIpfs(metadataUri)
	}

	return s.fetch(metadataUri)
}

// fetchIpfs walks the configured gateways until one of them serves the cid.
func (s service) fetchIpfs(metadataUri string) (map[string]interface{}, error) {
	if len(s.ipfsHosts) == 0 {
		return nil, ErrNoIpfsHosts
	}

	var lastErr error
	for _, host := range s.ipfsHosts {
		md, err := s.fetch(helper.GatewayUrl(metadataUri, host))
		if err == nil {
			return md, nil
		}

		zap.L().With(zap.Error(err), zap.String("host", host)).Debug("Metadata: Gateway fetch failed")
		lastErr = err
	}

	return nil, lastErr
}

func (s service) fetch(uri string) (map[string]interface{}, error) {
	resp, err := s.client.Get(uri)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, errors.New(resp.Status)
	}

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}

	var md map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &md); err != nil {
		return nil, err
	}

	return md, nil
}
