package indexer_test

import (
	"errors"
	"testing"

	"github.com/ZilDuck/nft-marketplace/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/ZilDuck/nft-marketplace/internal/event"
	"github.com/ZilDuck/nft-marketplace/internal/indexer"
	"github.com/ZilDuck/nft-marketplace/internal/repository"
	"github.com/olivere/elastic/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	contractAddr = "0x00000000000000000000000000000000000000aa"
	alice        = "0x0000000000000000000000000000000000000001"
	bob          = "0x0000000000000000000000000000000000000002"
)

// fakeIndex buffers requests by slug like the real request cache does.
type fakeIndex struct {
	requests map[string]elastic_search.Request
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{requests: make(map[string]elastic_search.Request)}
}

func (f *fakeIndex) GetClient() *elastic.Client { return nil }
func (f *fakeIndex) InstallMappings()           {}

func (f *fakeIndex) AddIndexRequest(index string, e entity.Entity, action elastic_search.RequestAction) {
	f.AddRequest(index, e, elastic_search.IndexRequest, action)
}

func (f *fakeIndex) AddUpdateRequest(index string, e entity.Entity, action elastic_search.RequestAction) {
	f.AddRequest(index, e, elastic_search.UpdateRequest, action)
}

func (f *fakeIndex) AddRequest(index string, e entity.Entity, reqType elastic_search.RequestType, action elastic_search.RequestAction) {
	f.requests[e.Slug()] = elastic_search.Request{Index: index, Entity: e, Type: reqType, Action: action}
}

func (f *fakeIndex) GetRequest(slug string) (elastic_search.Request, bool) {
	req, found := f.requests[slug]
	return req, found
}

func (f *fakeIndex) GetRequests() []elastic_search.Request {
	requests := make([]elastic_search.Request, 0)
	for _, req := range f.requests {
		requests = append(requests, req)
	}
	return requests
}

func (f *fakeIndex) ClearRequests() {
	f.requests = make(map[string]elastic_search.Request)
}

func (f *fakeIndex) Save(string, entity.Entity) {}
func (f *fakeIndex) BatchPersist() bool         { return false }
func (f *fakeIndex) Persist() int               { return 0 }

type fakeTokenRepo struct {
	token *entity.Token
	err   error
}

func (f fakeTokenRepo) GetToken(string, uint64) (*entity.Token, error) {
	return f.token, f.err
}

type fakeMetadata struct {
	md  map[string]interface{}
	err error
}

func (f fakeMetadata) FetchMetadata(entity.Token) (map[string]interface{}, error) {
	return f.md, f.err
}

func mintedToken() entity.Token {
	return entity.Token{
		Contract:    contractAddr,
		TokenId:     1,
		TokenUri:    "ipfs://QmToken1",
		Owner:       alice,
		HasMetadata: true,
		Metadata:    map[string]interface{}{"name": "Duck #1"},
	}
}

func TestOnTokenMinted(t *testing.T) {
	elasticIndex := newFakeIndex()
	journal := event.NewJournal()
	idx := indexer.NewTokenIndexer(elasticIndex, fakeTokenRepo{err: repository.ErrTokenNotFound}, fakeMetadata{md: map[string]interface{}{"name": "Duck #1"}}, journal)

	idx.OnTokenMinted(event.Entry{Seq: 1, Type: event.TokenMintedEvent, Payload: entity.TokenMinted{
		Contract: contractAddr,
		TokenId:  1,
		TokenUri: "ipfs://QmToken1",
		Owner:    alice,
	}})

	req, found := elasticIndex.GetRequest(entity.CreateTokenSlug(1, contractAddr))
	require.True(t, found)
	token := req.Entity.(entity.Token)
	assert.Equal(t, "ipfs://QmToken1", token.TokenUri)
	assert.Equal(t, alice, token.Owner)

	// a successful fetch journals a metadata refresh for the archive
	entries := journal.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, event.MetadataRefreshedEvent, entries[0].Type)
}

func TestOnTokenMinted_MetadataFailureRecorded(t *testing.T) {
	elasticIndex := newFakeIndex()
	journal := event.NewJournal()
	idx := indexer.NewTokenIndexer(elasticIndex, fakeTokenRepo{err: repository.ErrTokenNotFound}, fakeMetadata{err: errors.New("gateway down")}, journal)

	idx.OnTokenMinted(event.Entry{Seq: 1, Type: event.TokenMintedEvent, Payload: entity.TokenMinted{
		Contract: contractAddr,
		TokenId:  1,
		TokenUri: "ipfs://QmToken1",
		Owner:    alice,
	}})

	req, found := elasticIndex.GetRequest(entity.CreateTokenSlug(1, contractAddr))
	require.True(t, found)
	token := req.Entity.(entity.Token)
	assert.False(t, token.HasMetadata)
	assert.Equal(t, "gateway down", token.MetadataError)

	assert.Equal(t, 0, journal.Size())
}

func TestOnTokenTransferred_KeepsBufferedMetadata(t *testing.T) {
	elasticIndex := newFakeIndex()
	idx := indexer.NewTokenIndexer(elasticIndex, fakeTokenRepo{err: repository.ErrTokenNotFound}, fakeMetadata{}, event.NewJournal())

	// mint doc still buffered, not yet persisted
	elasticIndex.AddIndexRequest(elastic_search.TokenIndex.Get(), mintedToken(), elastic_search.TokenMint)

	idx.OnTokenTransferred(event.Entry{Seq: 2, Type: event.TokenTransferredEvent, Payload: entity.TokenTransferred{
		Contract: contractAddr,
		TokenId:  1,
		From:     alice,
		To:       bob,
	}})

	req, found := elasticIndex.GetRequest(entity.CreateTokenSlug(1, contractAddr))
	require.True(t, found)
	token := req.Entity.(entity.Token)

	// the owner changes, everything else survives the update
	assert.Equal(t, bob, token.Owner)
	assert.Equal(t, "ipfs://QmToken1", token.TokenUri)
	assert.True(t, token.HasMetadata)
	assert.Equal(t, map[string]interface{}{"name": "Duck #1"}, token.Metadata)
}

func TestOnTokenTransferred_LoadsFromArchive(t *testing.T) {
	elasticIndex := newFakeIndex()
	archived := mintedToken()
	idx := indexer.NewTokenIndexer(elasticIndex, fakeTokenRepo{token: &archived}, fakeMetadata{}, event.NewJournal())

	idx.OnTokenTransferred(event.Entry{Seq: 2, Type: event.TokenTransferredEvent, Payload: entity.TokenTransferred{
		Contract: contractAddr,
		TokenId:  1,
		From:     alice,
		To:       bob,
	}})

	req, found := elasticIndex.GetRequest(entity.CreateTokenSlug(1, contractAddr))
	require.True(t, found)
	token := req.Entity.(entity.Token)
	assert.Equal(t, bob, token.Owner)
	assert.Equal(t, "ipfs://QmToken1", token.TokenUri)
	assert.True(t, token.HasMetadata)
}

func TestOnTokenTransferred_UnknownTokenStillArchivesAction(t *testing.T) {
	elasticIndex := newFakeIndex()
	idx := indexer.NewTokenIndexer(elasticIndex, fakeTokenRepo{err: repository.ErrTokenNotFound}, fakeMetadata{}, event.NewJournal())

	idx.OnTokenTransferred(event.Entry{Seq: 2, Type: event.TokenTransferredEvent, Payload: entity.TokenTransferred{
		Contract: contractAddr,
		TokenId:  9,
		From:     alice,
		To:       bob,
	}})

	_, found := elasticIndex.GetRequest(entity.CreateTokenSlug(9, contractAddr))
	assert.False(t, found)

	actionFound := false
	errorFound := false
	for _, req := range elasticIndex.GetRequests() {
		if req.Action == elastic_search.MarketAction {
			actionFound = true
		}
		if req.Action == elastic_search.DevError {
			errorFound = true
		}
	}
	assert.True(t, actionFound)
	assert.True(t, errorFound)
}

func TestOnMetadataRefreshed(t *testing.T) {
	elasticIndex := newFakeIndex()
	idx := indexer.NewTokenIndexer(elasticIndex, fakeTokenRepo{err: repository.ErrTokenNotFound}, fakeMetadata{}, event.NewJournal())

	bare := mintedToken()
	bare.HasMetadata = false
	bare.Metadata = nil
	elasticIndex.AddIndexRequest(elastic_search.TokenIndex.Get(), bare, elastic_search.TokenMint)

	idx.OnMetadataRefreshed(event.Entry{Seq: 3, Type: event.MetadataRefreshedEvent, Payload: entity.MetadataRefreshed{
		Contract: contractAddr,
		TokenId:  1,
		Metadata: map[string]interface{}{"name": "Duck #1"},
	}})

	req, found := elasticIndex.GetRequest(entity.CreateTokenSlug(1, contractAddr))
	require.True(t, found)
	token := req.Entity.(entity.Token)
	assert.True(t, token.HasMetadata)
	assert.Empty(t, token.MetadataError)
	assert.Equal(t, map[string]interface{}{"name": "Duck #1"}, token.Metadata)
	assert.Equal(t, "ipfs://QmToken1", token.TokenUri)
}

func TestOnTokenMinted_BadPayload(t *testing.T) {
	elasticIndex := newFakeIndex()
	idx := indexer.NewTokenIndexer(elasticIndex, fakeTokenRepo{}, fakeMetadata{}, event.NewJournal())

	idx.OnTokenMinted(event.Entry{Seq: 1, Type: event.TokenMintedEvent, Payload: "garbage"})

	requests := elasticIndex.GetRequests()
	require.Len(t, requests, 1)
	assert.Equal(t, elastic_search.DevError, requests[0].Action)
}
