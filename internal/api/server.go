package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"

	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/ZilDuck/nft-marketplace/internal/ledger"
	"github.com/ZilDuck/nft-marketplace/internal/marketplace"
	"github.com/ZilDuck/nft-marketplace/internal/registry"
	"github.com/ZilDuck/nft-marketplace/internal/repository"
	"github.com/ZilDuck/nft-marketplace/pkg/zil"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

var errInvalidAmount = errors.New("invalid amount")

type Server struct {
	market      marketplace.Marketplace
	tokens      registry.TokenRegistry
	accounts    ledger.Ledger
	listingRepo repository.ListingRepository
	actionRepo  repository.ActionRepository
}

func NewServer(
	market marketplace.Marketplace,
	tokens registry.TokenRegistry,
	accounts ledger.Ledger,
	listingRepo repository.ListingRepository,
	actionRepo repository.ActionRepository,
) Server {
	return Server{market, tokens, accounts, listingRepo, actionRepo}
}

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", s.handleHomepage).Methods("GET")
	r.HandleFunc("/health", s.handleHealth).Methods("GET")

	r.HandleFunc("/tokens", s.handleMint).Methods("POST")
	r.HandleFunc("/tokens/{tokenId}", s.handleGetToken).Methods("GET")
	r.HandleFunc("/approvals", s.handleSetApproval).Methods("POST")

	r.HandleFunc("/accounts/{address}/deposit", s.handleDeposit).Methods("POST")
	r.HandleFunc("/accounts/{address}", s.handleGetAccount).Methods("GET")

	r.HandleFunc("/items", s.handleMakeItem).Methods("POST")
	r.HandleFunc("/items", s.handleGetListings).Methods("GET")
	r.HandleFunc("/items/{itemId}", s.handleGetItem).Methods("GET")
	r.HandleFunc("/items/{itemId}/price", s.handleGetTotalPrice).Methods("GET")
	r.HandleFunc("/items/{itemId}/purchase", s.handlePurchaseItem).Methods("POST")
	r.HandleFunc("/items/{itemId}/actions", s.handleGetItemActions).Methods("GET")

	r.HandleFunc("/actions", s.handleGetActions).Methods("GET")

	r.NotFoundHandler = notFoundHandler()

	return r
}

func (s Server) handleHomepage(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprintf(w, "NFT Marketplace")
}

func (s Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func (s Server) handleMint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TokenUri string `json:"tokenUri"`
		By       string `json:"by"`
	}
	if !decode(w, r, &req) {
		return
	}

	by, err := zil.NormalizeAddress(req.By)
	if err != nil {
		writeError(w, err)
		return
	}

	tokenId := s.tokens.Mint(req.TokenUri, by)

	writeJson(w, http.StatusCreated, map[string]interface{}{"tokenId": tokenId})
}

func (s Server) handleGetToken(w http.ResponseWriter, r *http.Request) {
	tokenId, err := pathId(r, "tokenId")
	if err != nil {
		writeError(w, err)
		return
	}

	owner, err := s.tokens.OwnerOf(tokenId)
	if err != nil {
		writeError(w, err)
		return
	}

	tokenUri, err := s.tokens.TokenUri(tokenId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{
		"contract":    s.tokens.Address(),
		"tokenId":     tokenId,
		"owner":       owner,
		"ownerBech32": zil.ToBech32(owner),
		"tokenUri":    tokenUri,
	})
}

func (s Server) handleSetApproval(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Owner    string `json:"owner"`
		Operator string `json:"operator"`
		Approved bool   `json:"approved"`
	}
	if !decode(w, r, &req) {
		return
	}

	owner, err := zil.NormalizeAddress(req.Owner)
	if err != nil {
		writeError(w, err)
		return
	}
	operator, err := zil.NormalizeAddress(req.Operator)
	if err != nil {
		writeError(w, err)
		return
	}

	s.tokens.SetApprovalForAll(owner, operator, req.Approved)

	writeJson(w, http.StatusOK, map[string]interface{}{
		"owner":    owner,
		"operator": operator,
		"approved": s.tokens.IsApprovedForAll(owner, operator),
	})
}

func (s Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	address, err := zil.NormalizeAddress(mux.Vars(r)["address"])
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Amount string `json:"amount"`
	}
	if !decode(w, r, &req) {
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.accounts.Deposit(address, amount); err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{
		"address": address,
		"balance": s.accounts.Balance(address).String(),
	})
}

func (s Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	address, err := zil.NormalizeAddress(mux.Vars(r)["address"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{
		"address": address,
		"bech32":  zil.ToBech32(address),
		"balance": s.accounts.Balance(address).String(),
	})
}

func (s Server) handleMakeItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TokenId uint64 `json:"tokenId"`
		Price   string `json:"price"`
		Seller  string `json:"seller"`
	}
	if !decode(w, r, &req) {
		return
	}

	seller, err := zil.NormalizeAddress(req.Seller)
	if err != nil {
		writeError(w, err)
		return
	}

	price, err := parseAmount(req.Price)
	if err != nil {
		writeError(w, err)
		return
	}

	itemId, err := s.market.MakeItem(s.tokens, req.TokenId, price, seller)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusCreated, map[string]interface{}{"itemId": itemId})
}

func (s Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	itemId, err := pathId(r, "itemId")
	if err != nil {
		writeError(w, err)
		return
	}

	listing, err := s.market.Item(itemId)
	if err != nil {
		writeError(w, err)
		return
	}

	total, err := s.market.TotalPrice(itemId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, listingResponse(listing, total))
}

func (s Server) handleGetTotalPrice(w http.ResponseWriter, r *http.Request) {
	itemId, err := pathId(r, "itemId")
	if err != nil {
		writeError(w, err)
		return
	}

	total, err := s.market.TotalPrice(itemId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{
		"itemId":     itemId,
		"totalPrice": total.String(),
	})
}

func (s Server) handlePurchaseItem(w http.ResponseWriter, r *http.Request) {
	itemId, err := pathId(r, "itemId")
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Payment string `json:"payment"`
		Buyer   string `json:"buyer"`
	}
	if !decode(w, r, &req) {
		return
	}

	buyer, err := zil.NormalizeAddress(req.Buyer)
	if err != nil {
		writeError(w, err)
		return
	}

	payment, err := parseAmount(req.Payment)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.market.PurchaseItem(itemId, payment, buyer); err != nil {
		writeError(w, err)
		return
	}

	listing, err := s.market.Item(itemId)
	if err != nil {
		writeError(w, err)
		return
	}

	total, err := s.market.TotalPrice(itemId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, listingResponse(listing, total))
}

func (s Server) handleGetListings(w http.ResponseWriter, r *http.Request) {
	size, page := pagination(r)

	var sold *bool
	if soldParam := r.URL.Query().Get("sold"); soldParam != "" {
		if val, err := strconv.ParseBool(soldParam); err == nil {
			sold = &val
		}
	}

	listings, total, err := s.listingRepo.GetListings(sold, size, page)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{
		"total":    total,
		"listings": listings,
	})
}

func (s Server) handleGetItemActions(w http.ResponseWriter, r *http.Request) {
	itemId, err := pathId(r, "itemId")
	if err != nil {
		writeError(w, err)
		return
	}

	size, page := pagination(r)

	actions, total, err := s.actionRepo.GetActionsByItem(itemId, size, page)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{
		"total":   total,
		"actions": actions,
	})
}

func (s Server) handleGetActions(w http.ResponseWriter, r *http.Request) {
	size, page := pagination(r)

	contract := r.URL.Query().Get("contract")
	tokenId, err := strconv.ParseUint(r.URL.Query().Get("tokenId"), 10, 64)
	if err != nil {
		http.Error(w, "invalid tokenId", http.StatusBadRequest)
		return
	}

	actions, total, err := s.actionRepo.GetActions(contract, tokenId, size, page)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{
		"total":   total,
		"actions": actions,
	})
}

func listingResponse(listing entity.Listing, total *big.Int) map[string]interface{} {
	return map[string]interface{}{
		"itemId":     listing.ItemId,
		"contract":   listing.Contract,
		"tokenId":    listing.TokenId,
		"seller":     listing.Seller,
		"price":      listing.Price.String(),
		"totalPrice": total.String(),
		"sold":       listing.Sold,
	}
}

func decode(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}

	return true
}

func parseAmount(value string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, errInvalidAmount
	}

	return amount, nil
}

func pathId(r *http.Request, name string) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)[name], 10, 64)
}

func pagination(r *http.Request) (int, int) {
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size <= 0 {
		size = 20
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	return size, page
}

func writeJson(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().With(zap.Error(err)).Error("Api: Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var numErr *strconv.NumError

	switch {
	case errors.As(err, &numErr):
		status = http.StatusBadRequest
	case errors.Is(err, marketplace.ErrInvalidPrice),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, zil.ErrInvalidAddress),
		errors.Is(err, errInvalidAmount):
		status = http.StatusBadRequest
	case errors.Is(err, marketplace.ErrItemNotFound),
		errors.Is(err, registry.ErrTokenNotFound),
		errors.Is(err, repository.ErrListingNotFound):
		status = http.StatusNotFound
	case errors.Is(err, registry.ErrNotAuthorized),
		errors.Is(err, registry.ErrNotTokenOwner):
		status = http.StatusForbidden
	case errors.Is(err, marketplace.ErrItemAlreadySold):
		status = http.StatusConflict
	case errors.Is(err, marketplace.ErrInsufficientPayment),
		errors.Is(err, ledger.ErrInsufficientFunds):
		status = http.StatusPaymentRequired
	}

	if status == http.StatusInternalServerError {
		zap.L().With(zap.Error(err)).Error("Api: Request failed")
	}

	http.Error(w, err.Error(), status)
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprintf(w, "Page not found")
	})
}
