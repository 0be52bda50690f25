// Package desk holds the member-records screen: the loaded collection, the
// live search query, the single draft form, the detail selection and the
// error flags, changed only through the operations defined here.
package desk

import (
	"context"
	"slices"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/coopdesk/memberdesk/internal/domain"
	"github.com/coopdesk/memberdesk/internal/ports/out/memberstore"
)

// Screen is the state container behind every desk front end.
//
// Methods are safe for concurrent use. Store calls run without holding the
// lock, so overlapping submissions resolve in arrival order.
type Screen struct {
	store memberstore.Store
	log   *zap.Logger

	loadOnce sync.Once
	loadErr  error

	mu       sync.Mutex
	members  []domain.Member
	query    string
	draft    Draft
	selected domain.MemberID
	loading  bool
	loaded   bool
	pageErr  *Error
	formErr  *Error
}

type Option func(*Screen)

func WithLogger(l *zap.Logger) Option {
	return func(s *Screen) {
		if l != nil {
			s.log = l
		}
	}
}

func New(store memberstore.Store, opts ...Option) *Screen {
	s := &Screen{
		store: store,
		log:   zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load fetches the collection once. Later calls return the first outcome
// without another request.
func (s *Screen) Load(ctx context.Context) error {
	s.loadOnce.Do(func() {
		s.loadErr = s.load(ctx)
	})
	return s.loadErr
}

func (s *Screen) load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	ms, err := s.store.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.log.Error("load members failed", zap.Error(err))
		s.members = nil
		s.pageErr = &Error{Kind: LoadFailure, Op: "load", Message: MsgLoadFailed, Err: err}
		return s.pageErr
	}
	s.members = slices.Clone(ms)
	s.loaded = true
	s.pageErr = nil
	s.log.Debug("members loaded", zap.Int("count", len(ms)))
	return nil
}

// SetQuery replaces the live search string.
func (s *Screen) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
}

// Visible is the collection filtered by the current query.
func (s *Screen) Visible() []domain.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(Filter(s.members, s.query))
}

// Lookup finds a loaded member by ID.
func (s *Screen) Lookup(id domain.MemberID) (domain.Member, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Find(s.members, func(m domain.Member) bool { return m.ID == id })
}

func (s *Screen) StartCompose() {
	s.dispatch(StartCompose{})
}

// StartEdit opens an edit draft copied from the member with id.
// It reports false, changing nothing, when no such member is loaded.
func (s *Screen) StartEdit(id domain.MemberID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := lo.Find(s.members, func(m domain.Member) bool { return m.ID == id })
	if !ok {
		return false
	}
	s.draft = Reduce(s.draft, StartEdit{Member: m})
	s.formErr = nil
	return true
}

func (s *Screen) SetField(f domain.Field, v string) {
	s.dispatch(SetField{Field: f, Value: v})
}

func (s *Screen) CancelDraft() {
	s.dispatch(Cancel{})
}

func (s *Screen) dispatch(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = Reduce(s.draft, ev)
	if _, ok := ev.(SetField); !ok {
		s.formErr = nil
	}
}

// Submit sends the open draft: a new-member draft is created, an edit draft updated.
func (s *Screen) Submit(ctx context.Context) error {
	s.mu.Lock()
	kind := s.draft.Kind
	s.mu.Unlock()

	switch kind {
	case DraftNew:
		return s.Create(ctx)
	case DraftEdit:
		return s.Update(ctx)
	default:
		return ErrNoDraft
	}
}

// Create sends the new-member draft to the store and appends the stored record.
func (s *Screen) Create(ctx context.Context) error {
	d, err := s.checkDraft(DraftNew, "create")
	if err != nil {
		return err
	}

	created, err := s.store.Create(ctx, d.Fields)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.log.Warn("create member failed", zap.Error(err))
		s.formErr = &Error{Kind: MutationFailure, Op: "create", Message: MsgCreateFailed, Err: err}
		return s.formErr
	}
	s.members = append(s.members, created)
	s.draft = Reduce(s.draft, Submitted{})
	s.formErr = nil
	s.log.Info("member created", zap.String("member_id", string(created.ID)))
	return nil
}

// Update sends the edit draft to the store and replaces the matching record.
func (s *Screen) Update(ctx context.Context) error {
	d, err := s.checkDraft(DraftEdit, "update")
	if err != nil {
		return err
	}
	id := d.ID

	updated, err := s.store.Update(ctx, domain.Member{ID: id, MemberFields: d.Fields})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.log.Warn("update member failed", zap.String("member_id", string(id)), zap.Error(err))
		s.formErr = &Error{Kind: MutationFailure, Op: "update", Message: MsgUpdateFailed, Err: err}
		return s.formErr
	}
	if i := slices.IndexFunc(s.members, func(m domain.Member) bool { return m.ID == id }); i >= 0 {
		s.members[i] = updated
	}
	s.draft = Reduce(s.draft, Submitted{})
	s.formErr = nil
	s.log.Info("member updated", zap.String("member_id", string(id)))
	return nil
}

// checkDraft validates the open draft of the wanted kind and returns a copy of it.
func (s *Screen) checkDraft(want DraftKind, op string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft.Kind != want {
		return Draft{}, ErrNoDraft
	}
	if !validateDraft(s.draft.Fields) {
		s.formErr = &Error{Kind: ValidationFailure, Op: op, Message: MsgNamesRequired}
		return Draft{}, s.formErr
	}
	return s.draft, nil
}

// Delete removes the member with id after c approves.
// An unknown id and a declined confirmation are both no-ops. A failed request
// sets the page error and leaves the collection as it was.
func (s *Screen) Delete(ctx context.Context, id domain.MemberID, c Confirmer) error {
	s.mu.Lock()
	known := slices.ContainsFunc(s.members, func(m domain.Member) bool { return m.ID == id })
	s.mu.Unlock()
	if !known {
		s.log.Debug("delete skipped: member not loaded", zap.String("member_id", string(id)))
		return nil
	}

	ok, err := c.Confirm(ctx, DeletePrompt)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	err = s.store.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.log.Error("delete member failed", zap.String("member_id", string(id)), zap.Error(err))
		s.pageErr = &Error{Kind: MutationFailure, Op: "delete", Message: MsgDeleteFailed, Err: err}
		return s.pageErr
	}
	s.members = lo.Reject(s.members, func(m domain.Member, _ int) bool { return m.ID == id })
	if s.selected == id {
		s.selected = ""
	}
	s.log.Info("member deleted", zap.String("member_id", string(id)))
	return nil
}

// Select shows the member with id in the detail view. It reports false when
// no such member is loaded.
func (s *Screen) Select(id domain.MemberID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.ContainsFunc(s.members, func(m domain.Member) bool { return m.ID == id }) {
		return false
	}
	s.selected = id
	return true
}

func (s *Screen) Deselect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = ""
}

// DismissError clears a page error left by a failed delete. A load failure stays.
func (s *Screen) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pageErr != nil && s.pageErr.Kind != LoadFailure {
		s.pageErr = nil
	}
}

// Snapshot is a copy of the screen state for rendering.
type Snapshot struct {
	Members  []domain.Member
	Visible  []domain.Member
	Query    string
	Mode     Mode
	Draft    Draft
	Selected *domain.Member
	Loading  bool
	Loaded   bool

	PageError *Error
	FormError *Error
}

func (s *Screen) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Members:   slices.Clone(s.members),
		Visible:   slices.Clone(Filter(s.members, s.query)),
		Query:     s.query,
		Mode:      s.draft.Mode(),
		Draft:     s.draft,
		Loading:   s.loading,
		Loaded:    s.loaded,
		PageError: s.pageErr,
		FormError: s.formErr,
	}
	if s.selected != "" {
		if m, ok := lo.Find(s.members, func(m domain.Member) bool { return m.ID == s.selected }); ok {
			snap.Selected = &m
		}
	}
	return snap
}
