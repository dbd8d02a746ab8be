package helper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var cidRe = regexp.MustCompile("(Qm[1-9A-HJ-NP-Za-km-z]{44}.*$)")

func IsUrl(uri string) bool {
	u, err := url.Parse(uri)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func IsIpfs(uri string) bool {
	if cidRe.MatchString(uri) {
		return true
	}

	if !IsUrl(uri) {
		return false
	}

	u, _ := url.Parse(uri)

	return u.Scheme == "ipfs"
}

// GatewayUrl rewrites an ipfs uri (ipfs://Qm... or a bare cid) to an HTTP url
// on the given gateway host.
func GatewayUrl(uri, host string) string {
	cid := strings.TrimPrefix(uri, "ipfs://")
	if parts := cidRe.FindStringSubmatch(cid); len(parts) == 2 {
		cid = parts[1]
	}

	return fmt.Sprintf("%s/ipfs/%s", strings.TrimSuffix(host, "/"), cid)
}
