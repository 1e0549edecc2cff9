package datastores

import (
	"context"
	"slices"
	"sync"
)

// ContactsInmem implements [ContactsStore].
type ContactsInmem struct {
	mu       sync.Mutex
	contacts map[ContactID]*Contact
	order    []ContactID
}

var _ ContactsStore = (*ContactsInmem)(nil)

// NewContactsInmem returns a store seeded with cs. Seeds without an ID are given one.
func NewContactsInmem(cs ...*Contact) *ContactsInmem {
	s := &ContactsInmem{contacts: make(map[ContactID]*Contact, len(cs))}
	for _, c := range cs {
		c = c.clone()
		if c.ID == "" {
			c.ID = s.newID()
		}
		s.contacts[c.ID] = c
		s.order = append(s.order, c.ID)
	}
	return s
}

// newID must be called with mu held.
func (s *ContactsInmem) newID() ContactID {
retry:
	id := newContactID()
	if _, loaded := s.contacts[id]; loaded {
		goto retry
	}
	return id
}

func (s *ContactsInmem) List(_ context.Context) ([]*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contacts := make([]*Contact, 0, len(s.order))
	for _, id := range s.order {
		contacts = append(contacts, s.contacts[id].clone())
	}
	return contacts, nil
}

func (s *ContactsInmem) Get(_ context.Context, id ContactID) (*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contacts[id]
	if !ok {
		return nil, wrapNotFound(id, nil)
	}
	return c.clone(), nil
}

func (s *ContactsInmem) Create(_ context.Context, c *Contact) (ContactID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c = c.clone()
	c.ID = s.newID()
	s.contacts[c.ID] = c
	s.order = append(s.order, c.ID)
	return c.ID, nil
}

func (s *ContactsInmem) Update(_ context.Context, id ContactID, c *Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts[id]; !ok {
		return wrapNotFound(id, nil)
	}
	c = c.clone()
	c.ID = id
	s.contacts[id] = c
	return nil
}

func (s *ContactsInmem) Delete(_ context.Context, id ContactID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts[id]; !ok {
		return wrapNotFound(id, nil)
	}
	delete(s.contacts, id)
	s.order = slices.DeleteFunc(s.order, func(o ContactID) bool { return o == id })
	return nil
}

func (s *ContactsInmem) Ping(_ context.Context) error { return nil }
