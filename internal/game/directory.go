package game

import (
	"crypto/rand"
	"strings"
	"time"
)

const maxNameLength = 20

// Identity is the durable, caller-supplied identity of a joining player.
// The engine trusts it; token issuance and anti-spoofing live outside.
type Identity struct {
	ID     string
	Name   string
	Avatar string
}

// addPlayer appends a new player to the roster. Callers must have already
// ruled out an existing player with the same durable ID (that path is a
// reconnect, never a second entry). The first roster entry becomes host.
func (s *Session) addPlayer(identity Identity, now time.Time) *Player {
	player := Player{
		ID:          identity.ID,
		Name:        s.dedupeName(identity.Name),
		Avatar:      identity.Avatar,
		IsHost:      len(s.Players) == 0,
		IsConnected: true,
		LastSeenAt:  now,
	}
	s.Players = append(s.Players, player)
	return &s.Players[len(s.Players)-1]
}

// reconnectPlayer marks a known player connected again and clears the
// zombie marker. Returns false for an unknown ID.
func (s *Session) reconnectPlayer(playerID string, now time.Time) bool {
	player := s.findPlayer(playerID)
	if player == nil {
		return false
	}
	player.IsConnected = true
	player.LastSeenAt = now
	player.DisconnectedAt = time.Time{}
	if !s.hasHost() {
		player.IsHost = true
	}
	return true
}

// disconnectPlayer soft-disconnects: the player stays on the roster as a
// zombie until the grace window expires, then host succession runs.
func (s *Session) disconnectPlayer(playerID string, now time.Time) {
	player := s.findPlayer(playerID)
	if player == nil {
		return
	}
	player.IsConnected = false
	player.DisconnectedAt = now
	if player.IsHost {
		player.IsHost = false
		s.promoteHost()
	}
}

// purgeInactive hard-removes zombies whose grace window has elapsed and
// re-runs host succession. Reports whether the roster changed.
func (s *Session) purgeInactive(grace time.Duration, now time.Time) bool {
	kept := s.Players[:0]
	removed := false
	for i := range s.Players {
		player := s.Players[i]
		if player.IsZombie() && now.Sub(player.DisconnectedAt) > grace {
			removed = true
			continue
		}
		kept = append(kept, player)
	}
	if !removed {
		return false
	}
	s.Players = kept
	if !s.hasHost() {
		s.promoteHost()
	}
	return removed
}

// removePlayer drops a player from the roster entirely (kick or purge), not
// a soft disconnect. Returns false for an unknown ID.
func (s *Session) removePlayer(playerID string) bool {
	for i := range s.Players {
		if s.Players[i].ID != playerID {
			continue
		}
		wasHost := s.Players[i].IsHost
		s.Players = append(s.Players[:i], s.Players[i+1:]...)
		if wasHost {
			s.promoteHost()
		}
		return true
	}
	return false
}

// promoteHost assigns host to the first connected player in join order. If
// nobody is connected, no host is assigned.
func (s *Session) promoteHost() {
	for i := range s.Players {
		s.Players[i].IsHost = false
	}
	for i := range s.Players {
		if s.Players[i].IsConnected {
			s.Players[i].IsHost = true
			return
		}
	}
}

func (s *Session) hasHost() bool {
	for i := range s.Players {
		if s.Players[i].IsHost && s.Players[i].IsConnected {
			return true
		}
	}
	return false
}

// dedupeName trims and caps a display name, then suffixes a random
// disambiguator on a case-insensitive collision with the roster.
func (s *Session) dedupeName(name string) string {
	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		cleaned = "Jugador"
	}
	if runes := []rune(cleaned); len(runes) > maxNameLength {
		cleaned = string(runes[:maxNameLength])
	}
	if !s.nameTaken(cleaned) {
		return cleaned
	}
	for attempt := 0; attempt < 8; attempt++ {
		candidate := cleaned + "-" + nameDisambiguator()
		if !s.nameTaken(candidate) {
			return candidate
		}
	}
	return cleaned + "-" + nameDisambiguator()
}

func (s *Session) nameTaken(name string) bool {
	for i := range s.Players {
		if strings.EqualFold(s.Players[i].Name, name) {
			return true
		}
	}
	return false
}

func nameDisambiguator() string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	buf := make([]byte, 2)
	if _, err := rand.Read(buf); err != nil {
		return "XX"
	}
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(buf)
}
