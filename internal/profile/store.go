package profile

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kalambet/buddyd/internal/emotion"
)

// Persistence defines the storage operations the Store needs.
// Implemented by storage.Store.
type Persistence interface {
	SaveProfile(userID string, data []byte) error
	LoadProfile(userID string) (data []byte, found bool, err error)
	DeleteProfile(userID string) error
	ListProfileIDs() ([]string, error)
}

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// DegradedError reports that an update succeeded in memory but could not be
// persisted. The in-memory profile remains authoritative for the rest of the
// process lifetime; callers should log and continue, not fail the request.
type DegradedError struct {
	UserID string
	Err    error
}

func (e *DegradedError) Error() string {
	return fmt.Sprintf("profile %s: durability degraded: %v", e.UserID, e.Err)
}

func (e *DegradedError) Unwrap() error { return e.Err }

// Store is the key-addressed profile store. Updates to the same user id are
// serialized by a per-user mutex; different users proceed independently.
// Loaded profiles are cached in memory and stay authoritative even when a
// persist fails.
type Store struct {
	db    Persistence
	clock Clock

	mu       sync.Mutex
	profiles map[string]*Profile
	locks    map[string]*sync.Mutex
}

// NewStore creates a Store backed by the given persistence layer.
func NewStore(db Persistence) *Store {
	return NewStoreWithClock(db, realClock{})
}

// NewStoreWithClock creates a Store with a custom clock (for testing).
func NewStoreWithClock(db Persistence, clock Clock) *Store {
	return &Store{
		db:       db,
		clock:    clock,
		profiles: make(map[string]*Profile),
		locks:    make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex serializing updates for one user id.
func (s *Store) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// Load returns the user's profile, creating a default one lazily on first
// sight. The returned value is a deep copy.
func (s *Store) Load(userID string) (Profile, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	p, err := s.loadLocked(userID)
	if err != nil {
		return Profile{}, err
	}
	return deepCopy(p), nil
}

// loadLocked returns the cached or persisted profile. Caller must hold the
// user lock.
func (s *Store) loadLocked(userID string) (*Profile, error) {
	s.mu.Lock()
	p, ok := s.profiles[userID]
	s.mu.Unlock()
	if ok {
		return p, nil
	}

	data, found, err := s.db.LoadProfile(userID)
	if err != nil {
		return nil, fmt.Errorf("loading profile %s: %w", userID, err)
	}

	p = newProfile(userID, s.clock.Now())
	if found {
		// Unmarshal over the defaults: unknown fields are dropped, missing
		// fields keep their defaulted values.
		if err := json.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("decoding profile %s: %w", userID, err)
		}
		p.UserID = userID
		p.normalize()
	}

	s.mu.Lock()
	s.profiles[userID] = p
	s.mu.Unlock()
	return p, nil
}

// Update applies the full learning pipeline for one message and persists the
// result. The returned profile is a deep copy of the post-update state. A
// *DegradedError return means the in-memory update took effect but could not
// be written through.
func (s *Store) Update(userID, message string, reading emotion.Reading) (Profile, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	p, err := s.loadLocked(userID)
	if err != nil {
		return Profile{}, err
	}

	now := s.clock.Now()

	p.Stats.TotalMessages++
	p.Stats.LastInteraction = now

	updateStyle(p, message)
	s.updateEmotional(p, reading, now)
	extractFacts(p, message, now)

	p.History = append(p.History, Turn{
		Timestamp: now,
		Message:   message,
		Emotion:   reading,
	})
	if len(p.History) > historyCap {
		p.History = p.History[len(p.History)-historyCap:]
	}

	out := deepCopy(p)
	if err := s.persistLocked(userID, p); err != nil {
		return out, &DegradedError{UserID: userID, Err: err}
	}
	return out, nil
}

// updateEmotional appends the reading and recomputes the baseline as the
// mean of the last ≤20 retained sentiment values. The baseline is always
// derived from the retained window, never drifted incrementally.
func (s *Store) updateEmotional(p *Profile, reading emotion.Reading, now time.Time) {
	p.Emotional.History = append(p.Emotional.History, EmotionEntry{
		Timestamp: now,
		Emotion:   reading.Emotion,
		Sentiment: reading.Sentiment,
	})
	if len(p.Emotional.History) > emotionHistoryCap {
		p.Emotional.History = p.Emotional.History[len(p.Emotional.History)-emotionHistoryCap:]
	}

	window := p.Emotional.History
	if len(window) > baselineWindow {
		window = window[len(window)-baselineWindow:]
	}
	var sum float64
	for _, e := range window {
		sum += e.Sentiment
	}
	p.Emotional.BaselineSentiment = sum / float64(len(window))
}

func (s *Store) persistLocked(userID string, p *Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := s.db.SaveProfile(userID, data); err != nil {
		return fmt.Errorf("persisting profile: %w", err)
	}
	return nil
}

// Erase removes all state for the user id, in memory and on disk. Erasing a
// nonexistent profile is not an error.
func (s *Store) Erase(userID string) error {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	s.mu.Lock()
	delete(s.profiles, userID)
	s.mu.Unlock()

	if err := s.db.DeleteProfile(userID); err != nil {
		return fmt.Errorf("erasing profile %s: %w", userID, err)
	}
	return nil
}

// ListUsers returns the ids of all persisted profiles.
func (s *Store) ListUsers() ([]string, error) {
	ids, err := s.db.ListProfileIDs()
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	return ids, nil
}

// Summarize returns the compact external view of the profile.
func (s *Store) Summarize(userID string) (Summary, error) {
	p, err := s.Load(userID)
	if err != nil {
		return Summary{}, err
	}

	name := p.Facts.Personal["name"]
	if name == "" {
		name = "Unknown"
	}

	return Summary{
		UserID:            userID,
		Name:              name,
		TotalMessages:     p.Stats.TotalMessages,
		Personality:       p.Personality,
		BaselineSentiment: p.Emotional.BaselineSentiment,
		LastInteraction:   p.Stats.LastInteraction,
		Personal:          p.Facts.Personal,
		RecentGoals:       lastValues(p.Facts.Goals, 3),
		RecentChallenges:  lastValues(p.Facts.Challenges, 3),
	}, nil
}

// lastValues returns the values of the n most recent timestamp-keyed entries.
func lastValues(m map[string]string, n int) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > n {
		keys = keys[len(keys)-n:]
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = m[k]
	}
	return out
}
