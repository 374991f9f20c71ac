package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
)

// ErrDuplicateRegistration is returned when a behavior is registered twice
// for the same (type tag, operation) pair.
var ErrDuplicateRegistration = errors.New("behavior already registered")

// Module is the interface that all behavior modules must implement to be
// registered. Each package under modules/ provides one.
type Module interface {
	Register(r *Registry) error
}

// Key identifies one registered behavior.
type Key struct {
	Tag       string
	Operation string
}

func (k Key) String() string {
	return k.Tag + "." + k.Operation
}

// Behavior holds the compiled Go parts of one operation implementation.
//
// Fn must have the signature
//
//	func(ctx context.Context, self *dispatch.Self, state *S, args *A) (any, error)
//
// where S is the state struct produced by NewState and A the args struct
// produced by NewArgs. Either constructor may be nil when the behavior
// reads no state or takes no arguments; the dispatcher passes a typed nil.
type Behavior struct {
	NewState  func() any
	StateType reflect.Type
	NewArgs   func() any
	ArgsType  reflect.Type
	Fn        any
}

// Registry maps (type tag, operation) pairs to behaviors for a single
// application instance.
type Registry struct {
	Behaviors map[Key]*Behavior
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		Behaviors: make(map[Key]*Behavior),
	}
}

// Register stores one behavior for the given type tag and operation name.
func (r *Registry) Register(tag, operation string, b *Behavior) error {
	key := Key{Tag: tag, Operation: operation}
	if _, exists := r.Behaviors[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRegistration, key)
	}
	if b == nil || b.Fn == nil {
		return fmt.Errorf("behavior %s has no implementation function", key)
	}
	slog.Debug("Registering behavior.", "tag", tag, "operation", operation)
	r.Behaviors[key] = b
	return nil
}

// Lookup returns the behavior registered directly on the given tag for the
// given operation. It never walks the ancestor chain; that is the descriptor
// set's job.
func (r *Registry) Lookup(tag, operation string) (*Behavior, bool) {
	b, ok := r.Behaviors[Key{Tag: tag, Operation: operation}]
	return b, ok
}
