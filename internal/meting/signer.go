package meting

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"net/url"
)

// DefaultSignParam is the query parameter most upstream mirrors expect the
// signature under.
const DefaultSignParam = "auth"

// signRequired lists the upstream operation types that must be signed.
// Search is deliberately unsigned on every known mirror.
var signRequired = map[string]bool{
	"url": true,
	"lrc": true,
	"pic": true,
}

// Signer builds signed upstream query parameters. The parameter name and
// the required-types set are mirror conventions rather than protocol, so
// the name is configurable.
type Signer struct {
	Token string
	Param string
}

// Sign returns the query parameters for an upstream call: server, type and
// id, plus an HMAC-SHA1 signature over server+type+id for protected types.
// Returns ErrTokenRequired when a signature is needed but no token is set.
func (s Signer) Sign(server, reqType, id string) (url.Values, error) {
	params := url.Values{}
	params.Set("server", server)
	params.Set("type", reqType)
	params.Set("id", id)

	if !signRequired[reqType] {
		return params, nil
	}
	if s.Token == "" {
		return nil, ErrTokenRequired
	}

	mac := hmac.New(sha1.New, []byte(s.Token))
	mac.Write([]byte(server + reqType + id))

	param := s.Param
	if param == "" {
		param = DefaultSignParam
	}
	params.Set(param, hex.EncodeToString(mac.Sum(nil)))
	return params, nil
}
