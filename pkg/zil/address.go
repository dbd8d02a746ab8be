package zil

import (
	"errors"
	"regexp"
	"strings"

	"github.com/Zilliqa/gozilliqa-sdk/bech32"
)

var base16Re = regexp.MustCompile("^0x[0-9a-fA-F]{40}$")

var ErrInvalidAddress = errors.New("invalid address")

// NormalizeAddress accepts a base16 or bech32 account address and returns the
// lower-cased base16 form used as the canonical identity everywhere else.
func NormalizeAddress(address string) (string, error) {
	if strings.HasPrefix(address, "zil1") {
		base16, err := bech32.FromBech32Addr(address)
		if err != nil {
			return "", ErrInvalidAddress
		}
		return "0x" + strings.ToLower(base16), nil
	}

	if !base16Re.MatchString(address) {
		return "", ErrInvalidAddress
	}

	return strings.ToLower(address), nil
}

// ToBech32 is the display form for archive documents. Best effort; an address
// that does not convert yields an empty string.
func ToBech32(address string) string {
	bech32Address, err := bech32.ToBech32Address(strings.TrimPrefix(address, "0x"))
	if err != nil {
		return ""
	}

	return bech32Address
}
