package core

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var nowFunc = time.Now // mockable

// Now returns the current time in UTC.
func Now() time.Time { return nowFunc().UTC() }

// Backend is the storage substrate consumed by the Store: whole-collection,
// synchronous reads and writes of raw records. Implementations live under
// storage/kv.
type Backend interface {
	// ReadCollection returns every raw record of the named collection.
	// A collection that was never written reads as empty, not as an error.
	ReadCollection(name string) ([]json.RawMessage, error)
	// WriteCollection replaces the named collection wholesale.
	WriteCollection(name string, records []json.RawMessage) error
}

// RecordMeta carries the identity and timestamps shared by every stored
// record. Embed it (by value) in record structs.
type RecordMeta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"` // UTC
	UpdatedAt time.Time `json:"updatedAt"` // UTC
}

func (m *RecordMeta) Meta() *RecordMeta { return m }

// Record is any stored record; satisfied by pointers to structs embedding RecordMeta.
type Record interface {
	Meta() *RecordMeta
}

// Store is the entity store: keyed-record persistence over an injected
// Backend, one Collection per entity type. All access is read-entire-
// collection / mutate / write-entire-collection; a per-collection lock
// keeps that read-modify-write cycle atomic across goroutines.
//
// Construct one Store per storage substrate and pass it by reference to
// all services; tests get isolated state by constructing their own.
type Store struct {
	backend Backend
	log     Logger

	mu        sync.Mutex // guards locks, subs
	locks     map[string]*sync.RWMutex
	subs      map[int]func()
	nextSubID int
	notifying bool
}

func NewStore(backend Backend, log Logger) *Store {
	if log == nil {
		log = NewNopLogger()
	}
	return &Store{
		backend: backend,
		log:     log,
		locks:   make(map[string]*sync.RWMutex),
		subs:    make(map[int]func()),
	}
}

func (s *Store) collLock(name string) *sync.RWMutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = new(sync.RWMutex)
		s.locks[name] = l
	}
	return l
}

// Subscribe registers a callback fired exactly once after every successful
// mutating operation, with no payload; subscribers re-query. The returned
// function unsubscribes.
//
// Callbacks run synchronously on the mutating goroutine. A callback may
// itself mutate the Store; notifications emitted from within a callback
// are suppressed to avoid infinite loops.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	if s.notifying {
		s.mu.Unlock()
		return
	}
	s.notifying = true
	subs := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}

	s.mu.Lock()
	s.notifying = false
	s.mu.Unlock()
}

// Collection is a typed view over one entity type's records in a Store.
type Collection[T any, PT interface {
	*T
	Record
}] struct {
	store *Store
	name  string
}

func NewCollection[T any, PT interface {
	*T
	Record
}](store *Store, name string) *Collection[T, PT] {
	return &Collection[T, PT]{store: store, name: name}
}

func (c *Collection[T, PT]) Name() string { return c.name }

func (c *Collection[T, PT]) read() ([]T, error) {
	raws, err := c.store.backend.ReadCollection(c.name)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", c.name)
	}
	recs := make([]T, 0, len(raws))
	for _, raw := range raws {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, errors.Wrapf(err, "decoding %s record", c.name)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (c *Collection[T, PT]) write(recs []T) error {
	raws := make([]json.RawMessage, 0, len(recs))
	for i := range recs {
		raw, err := json.Marshal(PT(&recs[i]))
		if err != nil {
			return errors.Wrapf(err, "encoding %s record", c.name)
		}
		raws = append(raws, raw)
	}
	return errors.Wrapf(c.store.backend.WriteCollection(c.name, raws), "writing %s", c.name)
}

// List returns every record in the collection.
func (c *Collection[T, PT]) List() ([]T, error) {
	l := c.store.collLock(c.name)
	l.RLock()
	defer l.RUnlock()
	return c.read()
}

// Get returns the record with the given id, or nil when absent.
func (c *Collection[T, PT]) Get(id string) (*T, error) {
	l := c.store.collLock(c.name)
	l.RLock()
	defer l.RUnlock()

	recs, err := c.read()
	if err != nil {
		return nil, err
	}
	for i := range recs {
		if PT(&recs[i]).Meta().ID == id {
			rec := recs[i]
			return &rec, nil
		}
	}
	return nil, nil
}

// Upsert persists the record. An empty id creates: a new unique id is
// assigned and both timestamps set. An explicit id replaces in place,
// preserving CreatedAt and refreshing UpdatedAt; ErrNotFound when no
// record carries that id.
func (c *Collection[T, PT]) Upsert(rec PT) error {
	l := c.store.collLock(c.name)
	l.Lock()

	recs, err := c.read()
	if err != nil {
		l.Unlock()
		return err
	}

	now := nowFunc().UTC()
	meta := rec.Meta()
	if meta.ID == "" {
		meta.ID = uuid.New().String()
		meta.CreatedAt = now
		meta.UpdatedAt = now
		recs = append(recs, *(*T)(rec))
	} else {
		var found bool
		for i := range recs {
			m := PT(&recs[i]).Meta()
			if m.ID == meta.ID {
				meta.CreatedAt = m.CreatedAt
				meta.UpdatedAt = now
				recs[i] = *(*T)(rec)
				found = true
				break
			}
		}
		if !found {
			l.Unlock()
			return ErrNotFound
		}
	}

	if err := c.write(recs); err != nil {
		l.Unlock()
		return err
	}
	l.Unlock()

	// notify outside the lock so subscribers may re-query or mutate
	c.store.notify()
	return nil
}

// Delete removes the record with the given id; ErrNotFound when absent.
func (c *Collection[T, PT]) Delete(id string) error {
	l := c.store.collLock(c.name)
	l.Lock()

	recs, err := c.read()
	if err != nil {
		l.Unlock()
		return err
	}

	kept := recs[:0]
	var found bool
	for i := range recs {
		if PT(&recs[i]).Meta().ID == id {
			found = true
			continue
		}
		kept = append(kept, recs[i])
	}
	if !found {
		l.Unlock()
		return ErrNotFound
	}

	if err := c.write(kept); err != nil {
		l.Unlock()
		return err
	}
	l.Unlock()

	c.store.notify()
	return nil
}
