// Package store holds the document being edited together with the UI
// selection. All changes go through Patch, Apply, Transact and Reset and are
// published to subscribers synchronously and in issuance order.
package store

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/stateful/emailbuilder/pkg/document"
)

// ChangeSet is committed atomically. Put entries replace whole blocks;
// Remove deletes keys. An id present in both is removed. A non-empty
// Select selects that block in the same snapshot.
type ChangeSet struct {
	Put    document.Document
	Remove []document.BlockID
	Select document.BlockID
}

func (c ChangeSet) empty() bool {
	return len(c.Put) == 0 && len(c.Remove) == 0 && c.Select == ""
}

type listener struct {
	active atomic.Bool
	notify func(prev, next *State)
}

type transition struct {
	prev, next *State
}

type Store struct {
	logger *zap.Logger

	mu          sync.Mutex
	state       *State
	listeners   []*listener
	pending     []transition
	dispatching bool
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

func WithSelection(selection Selection) Option {
	return func(s *Store) { s.state.Selection = selection }
}

// New creates a store holding a copy of doc.
func New(doc document.Document, opts ...Option) *Store {
	s := &Store{
		logger: zap.NewNop(),
		state: &State{
			Document:  doc.Clone(),
			Selection: defaultSelection(),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the current snapshot.
func (s *Store) Get() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers listener to be called with the new projected value
// whenever projection(state) changes between two consecutive snapshots.
// Listeners run synchronously in subscription order. The returned
// function removes the subscription.
func Subscribe[T comparable](s *Store, projection func(*State) T, listener func(T)) (unsubscribe func()) {
	return s.subscribe(func(prev, next *State) {
		value := projection(next)
		if projection(prev) != value {
			listener(value)
		}
	})
}

func (s *Store) subscribe(notify func(prev, next *State)) func() {
	l := &listener{notify: notify}
	l.active.Store(true)

	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()

	return func() {
		l.active.Store(false)

		s.mu.Lock()
		defer s.mu.Unlock()
		for i, item := range s.listeners {
			if item == l {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				break
			}
		}
	}
}

// Patch shallow-merges partial into the document: every key replaces the
// stored block wholesale, other keys are untouched.
func (s *Store) Patch(partial document.Document) {
	s.Apply(ChangeSet{Put: partial})
}

// Apply commits a change set as a single snapshot.
func (s *Store) Apply(changes ChangeSet) {
	_ = s.Transact(func(*State) (ChangeSet, error) { return changes, nil })
}

// Transact computes a change set from the current snapshot and commits
// it without any other commit in between. build runs under the store
// lock and must not call back into the store. An error from build
// aborts the transaction and is returned as is.
func (s *Store) Transact(build func(*State) (ChangeSet, error)) error {
	return s.commit(func(prev *State) (*State, error) {
		changes, err := build(prev)
		if err != nil || changes.empty() {
			return nil, err
		}
		return s.applyChanges(prev, changes), nil
	})
}

func (s *Store) applyChanges(prev *State, changes ChangeSet) *State {
	doc := make(document.Document, len(prev.Document)+len(changes.Put))
	for id, block := range prev.Document {
		doc[id] = block
	}
	for id, block := range changes.Put {
		doc[id] = block.Clone()
	}
	for _, id := range changes.Remove {
		delete(doc, id)
	}

	selection := prev.Selection
	if _, ok := doc[selection.BlockID]; !ok && selection.BlockID != "" {
		selection = selectBlock(selection, "")
	}
	if _, ok := doc[changes.Select]; ok && changes.Select != "" {
		selection = selectBlock(selection, changes.Select)
	}

	s.logger.Debug(
		"committing change set",
		zap.Uint64("revision", prev.Revision+1),
		zap.Int("put", len(changes.Put)),
		zap.Int("removed", len(changes.Remove)),
		zap.String("select", string(changes.Select)),
	)

	return &State{Document: doc, Revision: prev.Revision + 1, Selection: selection}
}

// Reset replaces the document wholesale and clears the block selection.
func (s *Store) Reset(doc document.Document) {
	doc = doc.Clone()

	_ = s.commit(func(prev *State) (*State, error) {
		s.logger.Debug("resetting document", zap.Uint64("revision", prev.Revision+1), zap.Int("blocks", len(doc)))

		selection := prev.Selection
		selection.BlockID = ""
		selection.SidebarTab = StylesTab

		return &State{Document: doc, Revision: prev.Revision + 1, Selection: selection}, nil
	})
}

// SelectBlock selects a block, or clears the selection when id is empty.
func (s *Store) SelectBlock(id document.BlockID) {
	s.updateSelection(func(sel Selection) Selection { return selectBlock(sel, id) })
}

func selectBlock(sel Selection, id document.BlockID) Selection {
	sel.BlockID = id
	if id == "" {
		sel.SidebarTab = StylesTab
	} else {
		sel.SidebarTab = BlockConfigurationTab
		sel.InspectorDrawerOpen = true
	}
	return sel
}

func (s *Store) SelectSidebarTab(tab SidebarTab) {
	s.updateSelection(func(sel Selection) Selection { sel.SidebarTab = tab; return sel })
}

func (s *Store) SelectMainTab(tab MainTab) {
	s.updateSelection(func(sel Selection) Selection { sel.MainTab = tab; return sel })
}

func (s *Store) SelectScreenSize(size ScreenSize) {
	s.updateSelection(func(sel Selection) Selection { sel.ScreenSize = size; return sel })
}

func (s *Store) ToggleInspectorDrawer() {
	s.updateSelection(func(sel Selection) Selection { sel.InspectorDrawerOpen = !sel.InspectorDrawerOpen; return sel })
}

func (s *Store) ToggleSamplesDrawer() {
	s.updateSelection(func(sel Selection) Selection { sel.SamplesDrawerOpen = !sel.SamplesDrawerOpen; return sel })
}

func (s *Store) updateSelection(update func(Selection) Selection) {
	_ = s.commit(func(prev *State) (*State, error) {
		return &State{Document: prev.Document, Revision: prev.Revision, Selection: update(prev.Selection)}, nil
	})
}

// commit installs the snapshot returned by update. A nil snapshot or an
// error leaves the store untouched.
func (s *Store) commit(update func(prev *State) (*State, error)) error {
	s.mu.Lock()
	prev := s.state
	next, err := update(prev)
	if err != nil || next == nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	s.pending = append(s.pending, transition{prev: prev, next: next})
	if s.dispatching {
		// The running dispatch loop picks it up after the current round.
		s.mu.Unlock()
		return nil
	}
	s.dispatching = true
	s.mu.Unlock()

	s.dispatch()
	return nil
}

func (s *Store) dispatch() {
	completed := false
	defer func() {
		if !completed {
			s.mu.Lock()
			s.dispatching = false
			s.pending = nil
			s.mu.Unlock()
		}
	}()

	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.dispatching = false
			s.mu.Unlock()
			completed = true
			return
		}
		t := s.pending[0]
		s.pending = s.pending[1:]
		listeners := make([]*listener, len(s.listeners))
		copy(listeners, s.listeners)
		s.mu.Unlock()

		for _, l := range listeners {
			if l.active.Load() {
				l.notify(t.prev, t.next)
			}
		}
	}
}
