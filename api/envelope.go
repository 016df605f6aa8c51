package api

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// TokenPair is the token-bearing payload of the auth endpoints.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ParseTokenResponse decodes a token-bearing auth response. The backend
// serves the pair either flat or wrapped under "data"; both documented
// shapes are accepted, anything else is a parse error.
func ParseTokenResponse(body []byte) (*TokenPair, error) {
	var envelope struct {
		TokenPair
		Data *TokenPair `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.Wrap(err, "parse token response")
	}
	if envelope.Data != nil && envelope.Data.AccessToken != "" {
		return envelope.Data, nil
	}
	if envelope.AccessToken == "" {
		return nil, errors.New("token response missing accessToken")
	}
	return &TokenPair{
		AccessToken:  envelope.AccessToken,
		RefreshToken: envelope.RefreshToken,
	}, nil
}

// ParseList decodes a list response. The backend serves lists bare,
// under the named key, under "data", or under "data".<key>; those are
// the documented shapes and the only ones accepted.
func ParseList[T any](body []byte, key string) ([]T, error) {
	var list []T
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.Wrapf(err, "parse %q list response", key)
	}

	if inner, ok := envelope[key]; ok {
		if err := json.Unmarshal(inner, &list); err == nil {
			return list, nil
		}
	}
	if data, ok := envelope["data"]; ok {
		if err := json.Unmarshal(data, &list); err == nil {
			return list, nil
		}
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(data, &nested); err == nil {
			if inner, ok := nested[key]; ok {
				if err := json.Unmarshal(inner, &list); err == nil {
					return list, nil
				}
			}
		}
	}

	return nil, errors.Errorf("%q list response has no recognized shape", key)
}

// ParseObject decodes a single-resource response, flat or wrapped under
// "data".
func ParseObject[T any](body []byte) (*T, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 && envelope.Data[0] == '{' {
		var out T
		if err := json.Unmarshal(envelope.Data, &out); err != nil {
			return nil, errors.Wrap(err, "parse wrapped object response")
		}
		return &out, nil
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, errors.Wrap(err, "parse object response")
	}
	return &out, nil
}
