// Package session owns the per-company conversation sessions. The store is
// an explicitly owned mapping (not process-global state) keyed by lowercased
// company name, and it serializes read-modify-write per key so concurrent
// requests for the same company cannot clobber each other's fields.
package session

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Aytaditya/pwc-hackathon/internal/models"
)

// Store holds all active company sessions for the process lifetime. Sessions
// are in-memory only and lost on restart by design.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu      sync.Mutex
	session *models.CompanySession
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

func key(companyName string) string {
	return strings.ToLower(strings.TrimSpace(companyName))
}

// Start creates a fresh session for the company, replacing any prior session
// under the same key. This is a full reset: no field of an earlier session
// survives.
func (st *Store) Start(companyName string, info models.CompanyInfo) models.CompanySession {
	s := &models.CompanySession{
		ID:          uuid.New().String(),
		CompanyName: companyName,
		CompanyInfo: info,
		State:       models.StateCompanySearched,
	}

	st.mu.Lock()
	st.entries[key(companyName)] = &entry{session: s}
	st.mu.Unlock()

	return *s
}

// Get returns a snapshot of the session for the company, or a
// PreconditionError when no analysis has been started.
func (st *Store) Get(companyName string) (models.CompanySession, error) {
	e, err := st.lookup(companyName)
	if err != nil {
		return models.CompanySession{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return *e.session, nil
}

// Update runs fn against the company's session under its entry lock. Any
// error from fn aborts the update with the session unchanged from the
// caller's perspective (fn must not mutate before deciding to fail). The
// returned snapshot reflects the session after fn.
func (st *Store) Update(companyName string, fn func(*models.CompanySession) error) (models.CompanySession, error) {
	e, err := st.lookup(companyName)
	if err != nil {
		return models.CompanySession{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := fn(e.session); err != nil {
		return models.CompanySession{}, err
	}
	return *e.session, nil
}

// List returns snapshots of all sessions, ordered by company name.
func (st *Store) List() []models.CompanySession {
	st.mu.Lock()
	entries := make([]*entry, 0, len(st.entries))
	for _, e := range st.entries {
		entries = append(entries, e)
	}
	st.mu.Unlock()

	sessions := make([]models.CompanySession, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		sessions = append(sessions, *e.session)
		e.mu.Unlock()
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CompanyName < sessions[j].CompanyName
	})
	return sessions
}

// Len returns the number of active sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.entries)
}

func (st *Store) lookup(companyName string) (*entry, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.entries[key(companyName)]
	if !ok {
		return nil, &PreconditionError{
			Company:     companyName,
			MissingStep: "start_company_analysis",
		}
	}
	return e, nil
}
