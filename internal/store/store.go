package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"zenflowAPI/internal/progress"
	"zenflowAPI/internal/routine"
	"zenflowAPI/internal/user"
)

var (
	ErrNotFound      = fmt.Errorf("not found")
	ErrAlreadyExists = fmt.Errorf("already exists")
)

// Store is the in-memory persistence layer: routines are seeded at
// construction, users and completions are created at runtime. All maps
// are guarded by a single RWMutex; values handed out are copies so
// callers never share mutable state with the store.
type Store struct {
	mu          sync.RWMutex
	users       map[string]*user.User // keyed by user ID
	emailIndex  map[string]string     // lower-cased email -> user ID
	routines    map[string]*routine.Routine
	completions map[string][]*progress.Completion // keyed by user ID, append order
	pendingOTPs map[string]*user.PendingOTP       // keyed by lower-cased email
}

func New() *Store {
	s := &Store{
		users:       make(map[string]*user.User),
		emailIndex:  make(map[string]string),
		routines:    make(map[string]*routine.Routine),
		completions: make(map[string][]*progress.Completion),
		pendingOTPs: make(map[string]*user.PendingOTP),
	}
	s.seedRoutines()
	return s
}

// ---------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------

func (s *Store) CreateUser(u *user.User) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, exists := s.emailIndex[key]; exists {
		return nil, ErrAlreadyExists
	}

	cp := *u
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}
	now := time.Now()
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = now
	}
	cp.UpdatedAt = now

	s.users[cp.ID] = &cp
	s.emailIndex[key] = cp.ID

	out := cp
	return &out, nil
}

func (s *Store) GetUser(id string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Store) GetUserByEmail(email string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emailIndex[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s.users[id]
	return &cp, nil
}

// UpdateUser applies fn to the stored user under the write lock and
// returns the updated copy.
func (s *Store) UpdateUser(id string, fn func(*user.User)) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	fn(u)
	u.UpdatedAt = time.Now()

	cp := *u
	return &cp, nil
}

func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.emailIndex, strings.ToLower(u.Email))
	delete(s.pendingOTPs, strings.ToLower(u.Email))
	delete(s.completions, id)
	delete(s.users, id)
	return nil
}

func (s *Store) ListUsers() []*user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*user.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users
}

// ---------------------------------------------------------------------
// Routines (seeded, read-only at runtime)
// ---------------------------------------------------------------------

func (s *Store) GetRoutine(id string) (*routine.Routine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.routines[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

// ListRoutines returns the catalog, optionally filtered by category and
// difficulty. Empty filter values match everything.
func (s *Store) ListRoutines(category string, difficulty routine.Difficulty) []*routine.Routine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	routines := make([]*routine.Routine, 0, len(s.routines))
	for _, r := range s.routines {
		if category != "" && !strings.EqualFold(r.Category, category) {
			continue
		}
		if difficulty != "" && r.Difficulty != difficulty {
			continue
		}
		cp := *r
		routines = append(routines, &cp)
	}
	sort.Slice(routines, func(i, j int) bool { return routines[i].Name < routines[j].Name })
	return routines
}

// ---------------------------------------------------------------------
// Completions
// ---------------------------------------------------------------------

func (s *Store) CreateCompletion(c *progress.Completion) (*progress.Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[c.UserID]; !ok {
		return nil, ErrNotFound
	}

	cp := *c
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}
	s.completions[c.UserID] = append(s.completions[c.UserID], &cp)

	out := cp
	return &out, nil
}

func (s *Store) ListCompletions(userID string) []*progress.Completion {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.completions[userID]
	out := make([]*progress.Completion, 0, len(src))
	for _, c := range src {
		cp := *c
		out = append(out, &cp)
	}
	return out
}

// CompletionTimestamps returns just the raw timestamps of a user's
// history, the shape the streak calculator consumes.
func (s *Store) CompletionTimestamps(userID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.completions[userID]
	out := make([]string, 0, len(src))
	for _, c := range src {
		out = append(out, c.CompletedAt)
	}
	return out
}

// ---------------------------------------------------------------------
// Pending OTPs
// ---------------------------------------------------------------------

func (s *Store) SetPendingOTP(p *user.PendingOTP) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *p
	cp.Email = strings.ToLower(cp.Email)
	s.pendingOTPs[cp.Email] = &cp
}

func (s *Store) GetPendingOTP(email string) (*user.PendingOTP, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pendingOTPs[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Store) DeletePendingOTP(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pendingOTPs, strings.ToLower(email))
}
