package session

// Storage keys for the persisted credential pair. Both keys absent
// means logged out; one without the other is not a valid state and gets
// cleared during hydration.
const (
	AccessTokenKey  = "accessToken"
	RefreshTokenKey = "refreshToken"
)

// Keyring is the durable local storage boundary for credentials.
// Implementations must treat Delete of a missing key as a no-op.
type Keyring interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}
