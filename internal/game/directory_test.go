package game

import (
	"strings"
	"testing"
	"time"
)

func TestAddPlayerFirstJoinIsHost(t *testing.T) {
	s := NewSession(DefaultConfig())
	now := time.Now().UTC()

	ids := []string{"p1", "p2", "p3"}
	for _, id := range ids {
		s.addPlayer(Identity{ID: id, Name: "Name-" + id}, now)
	}
	if len(s.Players) != 3 {
		t.Fatalf("expected 3 players, got %d", len(s.Players))
	}
	hosts := 0
	for _, player := range s.Players {
		if player.IsHost {
			hosts++
		}
	}
	if hosts != 1 {
		t.Fatalf("expected exactly one host, got %d", hosts)
	}
	if !s.Players[0].IsHost {
		t.Fatalf("expected first joiner to be host")
	}
}

func TestReconnectRestoresConnection(t *testing.T) {
	s := NewSession(DefaultConfig())
	now := time.Now().UTC()
	s.addPlayer(Identity{ID: "p1", Name: "Ada"}, now)
	s.disconnectPlayer("p1", now)

	if s.Players[0].IsConnected {
		t.Fatalf("expected player disconnected")
	}
	if !s.reconnectPlayer("p1", now.Add(time.Second)) {
		t.Fatalf("expected reconnect to succeed")
	}
	if len(s.Players) != 1 {
		t.Fatalf("reconnect must not add a player, got %d", len(s.Players))
	}
	player := s.findPlayer("p1")
	if !player.IsConnected || !player.DisconnectedAt.IsZero() {
		t.Fatalf("expected connected player with cleared zombie marker, got %+v", player)
	}
	if reconnected := s.reconnectPlayer("ghost", now); reconnected {
		t.Fatalf("expected reconnect of unknown id to fail")
	}
}

func TestNameDeduplication(t *testing.T) {
	s := NewSession(DefaultConfig())
	now := time.Now().UTC()
	s.addPlayer(Identity{ID: "p1", Name: "Ada"}, now)
	second := s.addPlayer(Identity{ID: "p2", Name: "ada"}, now)

	if strings.EqualFold(second.Name, "Ada") {
		t.Fatalf("expected disambiguated name, got %q", second.Name)
	}
	if !strings.HasPrefix(second.Name, "ada-") {
		t.Fatalf("expected suffixed name, got %q", second.Name)
	}
}

func TestHostSuccessionOnDisconnect(t *testing.T) {
	s := NewSession(DefaultConfig())
	now := time.Now().UTC()
	s.addPlayer(Identity{ID: "p1", Name: "Ada"}, now)
	s.addPlayer(Identity{ID: "p2", Name: "Bob"}, now)
	s.addPlayer(Identity{ID: "p3", Name: "Cleo"}, now)

	s.disconnectPlayer("p1", now)
	if s.findPlayer("p1").IsHost {
		t.Fatalf("expected departing host demoted")
	}
	if !s.findPlayer("p2").IsHost {
		t.Fatalf("expected first remaining connected player promoted")
	}

	s.disconnectPlayer("p2", now)
	s.disconnectPlayer("p3", now)
	for _, player := range s.Players {
		if player.IsHost {
			t.Fatalf("no host should be assigned with everyone disconnected")
		}
	}

	// First to come back becomes host again.
	s.reconnectPlayer("p3", now)
	if !s.findPlayer("p3").IsHost {
		t.Fatalf("expected reconnecting player to take host")
	}
}

func TestPurgeInactive(t *testing.T) {
	s := NewSession(DefaultConfig())
	base := time.Now().UTC()
	s.addPlayer(Identity{ID: "p1", Name: "Ada"}, base)
	s.addPlayer(Identity{ID: "p2", Name: "Bob"}, base)
	s.disconnectPlayer("p1", base)

	if changed := s.purgeInactive(time.Minute, base.Add(30*time.Second)); changed {
		t.Fatalf("player inside grace window must not be purged")
	}
	if changed := s.purgeInactive(time.Minute, base.Add(2*time.Minute)); !changed {
		t.Fatalf("expected purge past the grace window")
	}
	if len(s.Players) != 1 || s.Players[0].ID != "p2" {
		t.Fatalf("expected only p2 to remain, got %+v", s.Players)
	}
	if !s.Players[0].IsHost {
		t.Fatalf("expected host succession after purge")
	}
}

func TestRemovePlayerPromotesHost(t *testing.T) {
	s := NewSession(DefaultConfig())
	now := time.Now().UTC()
	s.addPlayer(Identity{ID: "p1", Name: "Ada"}, now)
	s.addPlayer(Identity{ID: "p2", Name: "Bob"}, now)

	if !s.removePlayer("p1") {
		t.Fatalf("expected removal to succeed")
	}
	if s.findPlayer("p1") != nil {
		t.Fatalf("expected p1 gone from roster")
	}
	if !s.findPlayer("p2").IsHost {
		t.Fatalf("expected p2 promoted to host")
	}
	if s.removePlayer("ghost") {
		t.Fatalf("expected removal of unknown id to fail")
	}
}
