package lifecycle

// Visibility reports whether the host document is hidden and notifies
// subscribers when that changes.
type Visibility interface {
	Hidden() bool
	Subscribe(fn func(hidden bool)) Subscription
}

// Subscription is the handle for one visibility listener.
// Unsubscribe must be safe to call more than once.
type Subscription interface {
	Unsubscribe()
}

// Document is an in-process Visibility source. Like every other type in this
// package it is not safe for concurrent use; call it from the host loop.
type Document struct {
	listeners map[uint64]func(hidden bool)
	order     []uint64
	nextID    uint64
	hidden    bool
}

var _ Visibility = (*Document)(nil)

// NewDocument returns a Document with the given initial visibility.
func NewDocument(hidden bool) *Document {
	return &Document{
		listeners: make(map[uint64]func(bool)),
		hidden:    hidden,
	}
}

// Hidden reports the current visibility.
func (d *Document) Hidden() bool {
	return d.hidden
}

// SetHidden updates the visibility and notifies every listener, in
// subscription order, when the value changed.
func (d *Document) SetHidden(hidden bool) {
	if d.hidden == hidden {
		return
	}
	d.hidden = hidden

	// listeners may unsubscribe (or subscribe) while being notified
	ids := append([]uint64(nil), d.order...)
	for _, id := range ids {
		if fn, ok := d.listeners[id]; ok {
			fn(hidden)
		}
	}
}

// Subscribe registers fn. A nil fn yields a subscription that does nothing.
func (d *Document) Subscribe(fn func(hidden bool)) Subscription {
	if fn == nil {
		return &docSubscription{}
	}
	d.nextID++
	id := d.nextID
	d.listeners[id] = fn
	d.order = append(d.order, id)
	return &docSubscription{doc: d, id: id}
}

// Subscribers returns the number of live listeners.
func (d *Document) Subscribers() int {
	return len(d.listeners)
}

func (d *Document) remove(id uint64) {
	if _, ok := d.listeners[id]; !ok {
		return
	}
	delete(d.listeners, id)
	for i, v := range d.order {
		if v == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

type docSubscription struct {
	doc *Document
	id  uint64
}

func (s *docSubscription) Unsubscribe() {
	if s.doc == nil {
		return
	}
	s.doc.remove(s.id)
	s.doc = nil
}
