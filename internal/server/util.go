package server

import (
	"crypto/rand"

	"github.com/google/uuid"
)

func newJoinCode() string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "AAAAAA"
	}
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(buf)
}

// newConnID labels a connection that arrived without one (plain HTTP
// clients, or a websocket upgrade with no conn query parameter).
func newConnID() string {
	return uuid.NewString()
}

// newPlayerID mints a durable identity for first-time joiners that did not
// bring their own.
func newPlayerID() string {
	return uuid.NewString()
}
