package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint binds a session to coarse client metadata. Clients sharing a
// proxy and a browser build collide; the session token stays the credential.
func Fingerprint(userAgent, clientAddress string) string {
	sum := sha256.Sum256([]byte(userAgent + "|" + clientAddress))
	return hex.EncodeToString(sum[:])
}
