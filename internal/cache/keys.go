package cache

import "fmt"

const sessionDenyPrefix = "session_deny:%s"

// SessionDenyKey is the Redis key marking a session token ID as revoked.
func SessionDenyKey(jti string) string {
	return fmt.Sprintf(sessionDenyPrefix, jti)
}
