// Package events provides listener registration with scoped disposal, used
// by the text model service and the TUI editor bindings.
package events

import "sync"

// Disposable releases a resource or subscription. Dispose is idempotent.
type Disposable interface {
	Dispose()
}

// DisposeFunc adapts a function to the Disposable interface.
type DisposeFunc func()

func (f DisposeFunc) Dispose() {
	if f != nil {
		f()
	}
}

// Bag collects disposables for bulk release. A bag can be reused after
// DisposeAll; adding to a disposed bag disposes the value immediately.
type Bag struct {
	mu       sync.Mutex
	items    []Disposable
	disposed bool
}

// Add registers a disposable with the bag.
func (b *Bag) Add(d Disposable) {
	if d == nil {
		return
	}
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		d.Dispose()
		return
	}
	b.items = append(b.items, d)
	b.mu.Unlock()
}

// DisposeAll releases every collected disposable in reverse registration
// order and marks the bag disposed.
func (b *Bag) DisposeAll() {
	b.mu.Lock()
	items := b.items
	b.items = nil
	b.disposed = true
	b.mu.Unlock()

	for i := len(items) - 1; i >= 0; i-- {
		items[i].Dispose()
	}
}

// Reset makes a disposed bag usable again.
func (b *Bag) Reset() {
	b.mu.Lock()
	b.disposed = false
	b.mu.Unlock()
}

// Emitter fans a value out to registered listeners in registration order.
type Emitter[T any] struct {
	mu        sync.Mutex
	listeners map[int]func(T)
	order     []int
	next      int
}

// Listen registers a listener and returns its subscription handle.
func (e *Emitter[T]) Listen(fn func(T)) Disposable {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.listeners == nil {
		e.listeners = make(map[int]func(T))
	}
	id := e.next
	e.next++
	e.listeners[id] = fn
	e.order = append(e.order, id)

	var once sync.Once
	return DisposeFunc(func() {
		once.Do(func() {
			e.remove(id)
		})
	})
}

func (e *Emitter[T]) remove(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.listeners, id)
	for i, v := range e.order {
		if v == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// Emit delivers v to every registered listener.
func (e *Emitter[T]) Emit(v T) {
	e.mu.Lock()
	fns := make([]func(T), 0, len(e.order))
	for _, id := range e.order {
		if fn, ok := e.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// ListenerCount returns the number of registered listeners.
func (e *Emitter[T]) ListenerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}
