package services

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/filters"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ═══════════════════════════════════════════════════════════
// Browse sessions
// ═══════════════════════════════════════════════════════════

// BrowseSession is one visitor's filter store plus the lists derived from it.
// current is what the visitor sees: optimistic after an action, authoritative
// after a resolve. snapshot is the last unfiltered first page and serves as
// the optimistic basis.
type BrowseSession struct {
	ID string

	store *filters.Store

	mu         sync.Mutex
	current    []models.Product
	snapshot   []models.Product
	total      int
	optimistic bool
	createdAt  time.Time
	updatedAt  time.Time
}

// SessionView is the API shape of a session at one point in time.
type SessionView struct {
	ID         string              `json:"id"`
	State      filters.FilterState `json:"state"`
	Params     filters.Params      `json:"params"`
	Query      string              `json:"query"`
	Products   []models.Product    `json:"products"`
	Total      int                 `json:"total"`
	TotalPages int                 `json:"totalPages"`
	Pages      []models.PageItem   `json:"pages"`
	Optimistic bool                `json:"optimistic"`
}

// SessionService owns every live browse session.
type SessionService struct {
	catalog *CatalogService

	mu       sync.RWMutex
	sessions map[string]*BrowseSession
	now      func() time.Time
}

func NewSessionService(catalog *CatalogService) *SessionService {
	return &SessionService{
		catalog:  catalog,
		sessions: make(map[string]*BrowseSession),
		now:      time.Now,
	}
}

// Create opens a session on the default state and loads its first page,
// which becomes the optimistic basis.
func (s *SessionService) Create(ctx context.Context) (SessionView, error) {
	state := filters.DefaultState()
	page, err := s.catalog.ListProducts(ctx, filters.ToParams(state))
	if err != nil {
		return SessionView{}, fmt.Errorf("load first page: %w", err)
	}

	now := s.now()
	sess := &BrowseSession{
		ID:        uuid.Must(uuid.NewV7()).String(),
		store:     filters.NewStore(state),
		current:   page.Data,
		snapshot:  page.Data,
		total:     page.Total,
		createdAt: now,
		updatedAt: now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	zap.L().Info("browse session created", zap.String("session_id", sess.ID), zap.Int("total", page.Total))

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(state), nil
}

func (s *SessionService) lookup(id string) (*BrowseSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	return sess, nil
}

// Get returns the session as last computed.
func (s *SessionService) Get(id string) (SessionView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return SessionView{}, err
	}
	state := sess.store.State()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(state), nil
}

// Dispatch applies a store action and updates the visible list
// optimistically, without calling the provider. The pagination window is
// computed from the last authoritative total.
func (s *SessionService) Dispatch(id string, action filters.Action) (SessionView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return SessionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	next := sess.store.Dispatch(action)
	if opt, ok := filters.OptimisticActionFor(action, next); ok {
		sess.current = filters.Apply(sess.current, opt, sess.snapshot)
		sess.optimistic = true
	} else if recomputes(action) {
		sess.current = filters.Recompute(sess.snapshot, next)
		sess.optimistic = true
	}
	sess.updatedAt = s.now()
	return sess.view(next), nil
}

// recomputes reports whether action changes the visible list without mapping
// onto a single optimistic filter: search text, or a price range put back to
// its default.
func recomputes(action filters.Action) bool {
	switch action.(type) {
	case filters.SetSearch, filters.SetPriceRange:
		return true
	}
	return false
}

// Resolve fetches the authoritative page for the session's current state and
// replaces the visible list with it. When two resolves overlap, whichever
// finishes last wins.
func (s *SessionService) Resolve(ctx context.Context, id string) (SessionView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return SessionView{}, err
	}

	state := sess.store.State()
	page, err := s.catalog.ListProducts(ctx, filters.ToParams(state))
	if err != nil {
		return SessionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.current = page.Data
	sess.total = page.Total
	sess.optimistic = false
	if state.Unfiltered() && state.Page == filters.DefaultPage {
		sess.snapshot = page.Data
	}
	sess.updatedAt = s.now()
	return sess.view(state), nil
}

// PruneIdle drops sessions untouched for longer than maxIdle and returns how
// many were removed.
func (s *SessionService) PruneIdle(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.updatedAt.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *SessionService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// view must be called with sess.mu held.
func (sess *BrowseSession) view(state filters.FilterState) SessionView {
	params := filters.ToParams(state)
	totalPages := models.TotalPages(sess.total, state.Limit)
	return SessionView{
		ID:         sess.ID,
		State:      state,
		Params:     params,
		Query:      params.Encode(),
		Products:   slices.Clone(sess.current),
		Total:      sess.total,
		TotalPages: totalPages,
		Pages:      filters.Window(state.Page, totalPages),
		Optimistic: sess.optimistic,
	}
}
