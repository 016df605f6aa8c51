package session

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/outfitly/outfitly-cli/internal/utils"
)

// Claims is the decoded payload of an access token. The client never
// verifies signatures or expiry locally; it only reads claims for role
// derivation and display. Actual validity is enforced by the backend
// answering 401.
type Claims struct {
	Subject string
	Email   string
	Role    Role
	Expiry  *time.Time
	Raw     map[string]any
}

// DecodeClaims parses the payload segment of a bearer token without
// verifying the signature. It fails only on structural problems (wrong
// segment count, undecodable base64, non-JSON payload); a payload with
// no role claim decodes fine and falls back to RoleUser.
func DecodeClaims(token string) (*Claims, error) {
	parsed, _, err := jwtlib.NewParser().ParseUnverified(token, jwtlib.MapClaims{})
	if err != nil {
		return nil, errors.Wrap(err, "DecodeClaims jwt.ParseUnverified")
	}

	mapClaims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.New("DecodeClaims: payload is not a JSON object")
	}

	claims := &Claims{Role: RoleUser, Raw: map[string]any(mapClaims)}

	if sub, ok := mapClaims["sub"].(string); ok {
		claims.Subject = sub
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if role, ok := mapClaims["role"].(string); ok && role != "" {
		claims.Role = Role(role)
	} else if rawRoles, ok := mapClaims["roles"].([]any); ok {
		// Some token issuers carry a roles list instead of a single role
		// claim; the first entry wins.
		if roles := utils.ToStringSlice(rawRoles); len(roles) > 0 {
			claims.Role = Role(roles[0])
		}
	}
	if exp, ok := mapClaims["exp"].(float64); ok {
		t := time.Unix(int64(exp), 0)
		claims.Expiry = &t
	}

	return claims, nil
}
