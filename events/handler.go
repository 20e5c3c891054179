package events

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

var handlerSeq atomic.Uint64

var (
	// ErrAlreadyRegistered is returned when a handler is bound to another dispatch
	ErrAlreadyRegistered = errors.New("handler already associated to a dispatch")

	// ErrNotRegistered is returned for operations that need a bound dispatch
	ErrNotRegistered = errors.New("handler not associated to a dispatch")
)

// Handler is a named bundle of callbacks registered with at most one Dispatch
type Handler struct {
	name      string
	dispatch  *Dispatch
	callbacks Callbacks
}

// NewHandler creates an unbound handler, an empty name gets a numbered default
func NewHandler(name string, callbacks Callbacks) *Handler {
	id := handlerSeq.Add(1) - 1
	if name == "" {
		name = fmt.Sprintf("handler#%d", id)
	}
	return &Handler{
		name:      name,
		callbacks: callbacks,
	}
}

// Name returns the handler name
func (h *Handler) Name() string {
	return h.name
}

// Dispatch returns the bound dispatch or nil
func (h *Handler) Dispatch() *Dispatch {
	return h.dispatch
}

// Callbacks returns the current callback set
func (h *Handler) Callbacks() Callbacks {
	return h.callbacks
}

// RegisterDispatch binds h to d and registers it in d's lists
// Registering with the same dispatch again only reconciles the lists
func (h *Handler) RegisterDispatch(d *Dispatch) error {
	if h.dispatch != nil && h.dispatch != d {
		return fmt.Errorf("%s: %w", h.name, ErrAlreadyRegistered)
	}
	h.dispatch = d
	d.update(h)
	return nil
}

// UnregisterDispatch removes h from its dispatch, no-op when unbound
func (h *Handler) UnregisterDispatch() {
	if h.dispatch == nil {
		return
	}
	h.dispatch.remove(h)
	h.dispatch = nil
}

// UpdateDispatch reconciles the dispatch lists with the current callbacks
func (h *Handler) UpdateDispatch() error {
	if h.dispatch == nil {
		return fmt.Errorf("%s: %w", h.name, ErrNotRegistered)
	}
	h.dispatch.update(h)
	return nil
}

func (h *Handler) sync() {
	if h.dispatch != nil {
		h.dispatch.update(h)
	}
}

// SetTimed replaces the timed callback, nil unregisters it
func (h *Handler) SetTimed(fn TimedFunc) *Handler {
	h.callbacks.Timed = fn
	h.sync()
	return h
}

// SetMouse replaces the mouse callback, nil unregisters it
func (h *Handler) SetMouse(fn MouseFunc) *Handler {
	h.callbacks.Mouse = fn
	h.sync()
	return h
}

// SetKey replaces the key callback, nil unregisters it
func (h *Handler) SetKey(fn KeyFunc) *Handler {
	h.callbacks.Key = fn
	h.sync()
	return h
}

// StopTimed cancels the dispatch timer
func (h *Handler) StopTimed() error {
	if h.dispatch == nil {
		return fmt.Errorf("%s: %w", h.name, ErrNotRegistered)
	}
	h.dispatch.StopTimed()
	return nil
}

// Retime re-arms the dispatch timer, 0 keeps the current interval
func (h *Handler) Retime(interval time.Duration) error {
	if h.dispatch == nil {
		return fmt.Errorf("%s: %w", h.name, ErrNotRegistered)
	}
	h.dispatch.Retime(interval)
	return nil
}
