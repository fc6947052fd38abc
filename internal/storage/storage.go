// Package storage owns the canonical in-memory auction state and its durable
// JSON persistence. The athlete roster and the franchise list are two
// independently versioned records; each is read once at startup (falling back
// to seed data when absent or malformed) and rewritten after every mutation.
//
// Storage is designed for reliability with atomic file writes and graceful
// handling of persistence failures. Mutations flow through Commit, which swaps
// both records under a single lock so the settlement engine's transitions stay
// atomic; Snapshot hands out deep copies so callers can never alias canonical
// state.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/madrasbay/auctionhall/internal/models"
	"github.com/madrasbay/auctionhall/internal/settle"
)

// Schema versions are baked into the file names so a new shape never collides
// with records written by an older build.
const (
	athletesFile   = "athletes_v3.json"
	franchisesFile = "franchises_v3.json"
	recordVersion  = "3.0"

	filePermissions os.FileMode = 0o644
	dirPermissions  os.FileMode = 0o755
)

// athleteRecord is the on-disk shape of the athlete roster.
type athleteRecord struct {
	Version  string           `json:"version"`
	SavedAt  time.Time        `json:"saved_at"`
	Athletes []models.Athlete `json:"athletes"`
}

// franchiseRecord is the on-disk shape of the franchise list.
type franchiseRecord struct {
	Version    string             `json:"version"`
	SavedAt    time.Time          `json:"saved_at"`
	Franchises []models.Franchise `json:"franchises"`
}

// Store holds the canonical auction state.
type Store struct {
	mu         sync.RWMutex
	athletes   []models.Athlete
	franchises []models.Franchise

	dataDir string
}

// New creates a Store persisting under the given data directory. If dataDir is
// empty, an OS-appropriate tmp directory is used.
func New(dataDir string) *Store {
	if dataDir == "" {
		dataDir = filepath.Join(os.TempDir(), "auctionhall")
	}
	return &Store{dataDir: dataDir}
}

// Load reads both records from disk, substituting the given seed data for any
// record that is absent, unreadable, or malformed. A bad file is never fatal:
// the operator keeps a working auction and the next save overwrites the
// damage. Returns the reason a record fell back, for logging; nil means both
// records loaded (or seeded on first run).
func (s *Store) Load(seedAthletes []models.Athlete, seedFranchises []models.Franchise) []error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fallbacks []error

	var ar athleteRecord
	if err := readRecord(filepath.Join(s.dataDir, athletesFile), &ar); err != nil {
		if !os.IsNotExist(err) {
			fallbacks = append(fallbacks, fmt.Errorf("athlete record discarded: %w", err))
		}
		s.athletes = cloneAthletes(seedAthletes)
	} else if ar.Version != recordVersion {
		fallbacks = append(fallbacks, fmt.Errorf("athlete record version %q != %q, discarded", ar.Version, recordVersion))
		s.athletes = cloneAthletes(seedAthletes)
	} else {
		s.athletes = ar.Athletes
	}

	var fr franchiseRecord
	if err := readRecord(filepath.Join(s.dataDir, franchisesFile), &fr); err != nil {
		if !os.IsNotExist(err) {
			fallbacks = append(fallbacks, fmt.Errorf("franchise record discarded: %w", err))
		}
		s.franchises = cloneFranchises(seedFranchises)
	} else if fr.Version != recordVersion {
		fallbacks = append(fallbacks, fmt.Errorf("franchise record version %q != %q, discarded", fr.Version, recordVersion))
		s.franchises = cloneFranchises(seedFranchises)
	} else {
		s.franchises = fr.Franchises
	}

	return fallbacks
}

// Snapshot returns a deep copy of the full auction state for the settlement
// engine to transition over.
func (s *Store) Snapshot() settle.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return settle.State{
		Athletes:   cloneAthletes(s.athletes),
		Franchises: cloneFranchises(s.franchises),
	}
}

// Commit replaces both records with the given state under one lock. This is
// the only mutation path into the store.
func (s *Store) Commit(state settle.State) {
	next := state.Clone()
	s.mu.Lock()
	s.athletes = next.Athletes
	s.franchises = next.Franchises
	s.mu.Unlock()
}

// Athlete returns a copy of the athlete with the given ID.
func (s *Store) Athlete(id string) (models.Athlete, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.athletes {
		if s.athletes[i].ID == id {
			return s.athletes[i].Clone(), nil
		}
	}
	return models.Athlete{}, fmt.Errorf("athlete not found: %s", id)
}

// Franchise returns a copy of the franchise with the given ID.
func (s *Store) Franchise(id string) (models.Franchise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.franchises {
		if s.franchises[i].ID == id {
			return s.franchises[i].Clone(), nil
		}
	}
	return models.Franchise{}, fmt.Errorf("franchise not found: %s", id)
}

// Athletes returns a copy of the full athlete list in stored order.
func (s *Store) Athletes() []models.Athlete {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAthletes(s.athletes)
}

// Franchises returns a copy of the full franchise list in stored order.
func (s *Store) Franchises() []models.Franchise {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneFranchises(s.franchises)
}

// Save persists both records to disk. Each record is written to a temporary
// file and renamed into place so a crash mid-write never corrupts the old
// record.
func (s *Store) Save() error {
	s.mu.RLock()
	ar := athleteRecord{Version: recordVersion, SavedAt: time.Now(), Athletes: cloneAthletes(s.athletes)}
	fr := franchiseRecord{Version: recordVersion, SavedAt: time.Now(), Franchises: cloneFranchises(s.franchises)}
	s.mu.RUnlock()

	if err := os.MkdirAll(s.dataDir, dirPermissions); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := writeRecord(filepath.Join(s.dataDir, athletesFile), &ar); err != nil {
		return fmt.Errorf("failed to write athlete record: %w", err)
	}
	if err := writeRecord(filepath.Join(s.dataDir, franchisesFile), &fr); err != nil {
		return fmt.Errorf("failed to write franchise record: %w", err)
	}
	return nil
}

func readRecord(path string, out interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeRecord(path string, in interface{}) error {
	raw, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, raw, filePermissions); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

func cloneAthletes(in []models.Athlete) []models.Athlete {
	out := make([]models.Athlete, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

func cloneFranchises(in []models.Franchise) []models.Franchise {
	out := make([]models.Franchise, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
