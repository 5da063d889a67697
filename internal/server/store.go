package server

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"word-rush/internal/game"
)

// Store indexes the running rooms. Aggregate mutation is serialized inside
// each room's engine; the store only guards the index itself.
type Store struct {
	mu     sync.Mutex
	nextID int
	rooms  map[string]*Room
}

func NewStore() *Store {
	return &Store{
		nextID: 1,
		rooms:  make(map[string]*Room),
	}
}

func (s *Store) CreateRoom(engine *game.Engine) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("game-%d", s.nextID)
	s.nextID++
	room := &Room{
		ID:        id,
		JoinCode:  newJoinCode(),
		Engine:    engine,
		CreatedAt: time.Now().UTC(),
	}
	s.rooms[id] = room
	return room
}

func (s *Store) GetRoom(id string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	return room, ok
}

// ResolveRoom finds a room by ID first, then by join code.
func (s *Store) ResolveRoom(idOrCode string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if room, ok := s.rooms[idOrCode]; ok {
		return room, true
	}
	code := strings.ToUpper(strings.TrimSpace(idOrCode))
	for _, room := range s.rooms {
		if room.JoinCode == code {
			return room, true
		}
	}
	return nil, false
}

func (s *Store) UpdateRoomID(room *Room, newID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if room.ID == newID {
		return
	}
	delete(s.rooms, room.ID)
	room.ID = newID
	s.rooms[newID] = room
	if id := roomSortKey(newID); id >= s.nextID {
		s.nextID = id + 1
	}
}

// RestoreRoom registers a rehydrated room, refusing ID or join-code clashes
// with a room that is already running.
func (s *Store) RestoreRoom(room *Room) error {
	if room == nil || room.Engine == nil {
		return errors.New("room is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.ID]; ok {
		return errors.New("game already running")
	}
	for _, existing := range s.rooms {
		if existing.JoinCode == room.JoinCode {
			return errors.New("game already running")
		}
	}
	s.rooms[room.ID] = room
	if id := roomSortKey(room.ID); id >= s.nextID {
		s.nextID = id + 1
	}
	return nil
}

func (s *Store) RemoveRoom(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if room, ok := s.rooms[id]; ok {
		room.Engine.Close()
		delete(s.rooms, id)
	}
}

func (s *Store) Rooms() []*Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	rooms := make([]*Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

func (s *Store) ListGameSummaries() []GameSummary {
	rooms := s.Rooms()
	list := make([]GameSummary, 0, len(rooms))
	for _, room := range rooms {
		snap := room.Engine.Snapshot()
		list = append(list, GameSummary{
			ID:       room.ID,
			JoinCode: room.JoinCode,
			Phase:    snap.Phase,
			Players:  len(snap.Players),
		})
	}
	sort.Slice(list, func(i, j int) bool {
		return roomSortKey(list[i].ID) < roomSortKey(list[j].ID)
	})
	return list
}

func roomSortKey(id string) int {
	parts := strings.Split(id, "-")
	if len(parts) < 2 {
		return 0
	}
	value, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return value
}
