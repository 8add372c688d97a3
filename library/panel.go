package library

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNothingToEdit is returned when edit mode is requested without a displayed record.
	ErrNothingToEdit = errors.New("nothing to edit")
	// ErrNotEditing is returned when an edit-form action is used outside edit mode.
	ErrNotEditing = errors.New("not in edit mode")
	// ErrSuperseded is returned by a fetch whose response arrived after a newer fetch started.
	ErrSuperseded = errors.New("superseded by a newer request")
)

// Notifier shows a one-off confirmation to the user.
type Notifier func(msg string)

type validatable interface {
	Validate() error
}

// EntityState is a point-in-time copy of an entity panel.
type EntityState[V, D, N any] struct {
	ID    string
	Mode  Mode
	View  *V
	Draft *D
	New   N
	Error string
}

type panelOps[V any, D, N validatable] struct {
	get    func(ctx context.Context, id string) (*V, error)
	create func(ctx context.Context, n N) error
	update func(ctx context.Context, id string, d D) error
	remove func(ctx context.Context, id string) error
	seed   func(V) D
}

type panelText struct {
	notFound     string
	createFailed string
	updateFailed string
	deleteFailed string
	created      string
	deleted      string
}

// panel is the lookup/create/edit/delete state of one entity kind.
type panel[V any, D, N validatable] struct {
	mu     sync.Mutex
	noun   string
	ops    panelOps[V, D, N]
	text   panelText
	notify Notifier

	seq   uint64
	id    string
	card  card[V, D]
	fresh N
	err   string
}

func newPanel[V any, D, N validatable](noun string, ops panelOps[V, D, N], text panelText, notify Notifier) *panel[V, D, N] {
	if notify == nil {
		notify = func(string) {}
	}
	return &panel[V, D, N]{noun: noun, ops: ops, text: text, notify: notify}
}

// State returns a copy of the panel that is safe to render.
func (p *panel[V, D, N]) State() EntityState[V, D, N] {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := EntityState[V, D, N]{
		ID:    p.id,
		Mode:  p.card.Mode(),
		New:   p.fresh,
		Error: p.err,
	}
	if p.card.view != nil {
		v := *p.card.view
		s.View = &v
	}
	if p.card.draft != nil {
		d := *p.card.draft
		s.Draft = &d
	}
	return s
}

// SetID types into the lookup field.
func (p *panel[V, D, N]) SetID(id string) {
	p.mu.Lock()
	p.id = id
	p.mu.Unlock()
}

// SetNew types into the create form.
func (p *panel[V, D, N]) SetNew(n N) {
	p.mu.Lock()
	p.fresh = n
	p.mu.Unlock()
}

// SetDraft types into the edit form.
func (p *panel[V, D, N]) SetDraft(d D) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.card.Mode() != ModeEditing {
		return ErrNotEditing
	}
	p.card.draft = &d
	return nil
}

// Lookup fetches the record for the current id. The fetched record replaces
// whatever was displayed and edit mode is left.
func (p *panel[V, D, N]) Lookup(ctx context.Context) error {
	p.mu.Lock()
	id := p.id
	if err := requireField("id", id); err != nil {
		p.mu.Unlock()
		return err
	}
	p.err = ""
	p.card.clear()
	p.seq++
	token := p.seq
	p.mu.Unlock()

	v, err := p.ops.get(ctx, id)

	p.mu.Lock()
	defer p.mu.Unlock()

	if token != p.seq {
		return ErrSuperseded
	}
	if err != nil || v == nil {
		p.err = p.text.notFound
		if err == nil {
			err = errors.New("empty response")
		}
		return fmt.Errorf("lookup %s %q: %w", p.noun, id, err)
	}

	p.card.show(v)
	var zero N
	p.fresh = zero
	return nil
}

// Create submits the create form. The form is kept when the API refuses it.
func (p *panel[V, D, N]) Create(ctx context.Context) error {
	p.mu.Lock()
	n := p.fresh
	if err := n.Validate(); err != nil {
		p.mu.Unlock()
		return err
	}
	p.err = ""
	p.mu.Unlock()

	err := p.ops.create(ctx, n)

	p.mu.Lock()
	if err != nil {
		p.err = p.text.createFailed
		p.mu.Unlock()
		return fmt.Errorf("create %s: %w", p.noun, err)
	}
	var zero N
	p.id = ""
	p.card.clear()
	p.fresh = zero
	p.seq++
	p.mu.Unlock()

	p.notify(p.text.created)
	return nil
}

// EnterEditMode seeds the edit form from the displayed record and empties
// the create form.
func (p *panel[V, D, N]) EnterEditMode() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.card.edit(p.ops.seed) {
		return ErrNothingToEdit
	}
	var zero N
	p.fresh = zero
	return nil
}

// CancelEdit drops the edit form and shows the record as it was fetched.
func (p *panel[V, D, N]) CancelEdit() {
	p.mu.Lock()
	p.card.closeEdit()
	p.mu.Unlock()
}

// Save submits the edit form and, on success, refetches the record so the
// display reflects what the API stored.
func (p *panel[V, D, N]) Save(ctx context.Context) error {
	p.mu.Lock()
	if p.card.Mode() != ModeEditing {
		p.mu.Unlock()
		return ErrNotEditing
	}
	d := *p.card.draft
	id := p.id
	if err := d.Validate(); err != nil {
		p.mu.Unlock()
		return err
	}
	if err := requireField("id", id); err != nil {
		p.mu.Unlock()
		return err
	}
	p.err = ""
	p.mu.Unlock()

	err := p.ops.update(ctx, id, d)

	p.mu.Lock()
	if err != nil {
		p.err = p.text.updateFailed
		p.mu.Unlock()
		return fmt.Errorf("update %s %q: %w", p.noun, id, err)
	}
	p.card.closeEdit()
	p.mu.Unlock()

	return p.Lookup(ctx)
}

// Delete removes the record for the current id. The display is kept when
// the API refuses.
func (p *panel[V, D, N]) Delete(ctx context.Context) error {
	p.mu.Lock()
	id := p.id
	if err := requireField("id", id); err != nil {
		p.mu.Unlock()
		return err
	}
	p.err = ""
	p.mu.Unlock()

	err := p.ops.remove(ctx, id)

	p.mu.Lock()
	if err != nil {
		p.err = p.text.deleteFailed
		p.mu.Unlock()
		return fmt.Errorf("delete %s %q: %w", p.noun, id, err)
	}
	p.id = ""
	p.card.clear()
	p.seq++
	p.mu.Unlock()

	p.notify(p.text.deleted)
	return nil
}
