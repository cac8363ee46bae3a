package observable

import (
	"io"
	"weak"

	"github.com/sirupsen/logrus"
)

var discardLogger = newDiscardLogger()

func newDiscardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Observable holds a value of type T and notifies its listeners whenever the
// value is set.
//
// The zero-value Observable holds the zero value of T, has no listeners and is
// ready to use.
type Observable[T any] struct {
	value     T
	listeners map[weak.Pointer[Owner]]listener[T]
	logger    logrus.FieldLogger

	// self is the owner under which a derived observable subscribes to its
	// source. It lives exactly as long as the observable does.
	self *Owner
	// source keeps the observable this one derives from alive, so that a chain
	// of derived observables stays connected while its last link is reachable.
	source any
}

type listener[T any] struct {
	owner    weak.Pointer[Owner]
	ownerID  string
	onUpdate func(from, to T)
}

// Option configures an Observable.
type Option func(*options)

type options struct {
	logger logrus.FieldLogger
}

// WithLogger sets the logger used to report listeners that were dropped because
// their owner was garbage collected. Messages are logged at debug level. By
// default nothing is logged.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New returns an Observable holding value.
func New[T any](value T, opts ...Option) *Observable[T] {
	o := options{logger: discardLogger}
	for _, opt := range opts {
		opt(&o)
	}
	return &Observable[T]{value: value, logger: o.logger}
}

// Value returns the current value.
func (o *Observable[T]) Value() T {
	return o.value
}

// Set stores value and then calls every listener with the previous and the new
// value, even if the two are equal.
func (o *Observable[T]) Set(value T) {
	from := o.value
	o.value = value
	o.notify(from, value)
}

// Subscribe registers onUpdate under owner, replacing any callback owner had
// registered before. onUpdate is called on every following Set until owner
// unsubscribes or is garbage collected.
//
// It panics if owner is nil.
func (o *Observable[T]) Subscribe(owner *Owner, onUpdate func(from, to T)) {
	if owner == nil {
		panic("observable: subscribe with nil owner")
	}
	if o.listeners == nil {
		o.listeners = make(map[weak.Pointer[Owner]]listener[T])
	}
	key := weak.Make(owner)
	o.listeners[key] = listener[T]{
		owner:    key,
		ownerID:  owner.ID().String(),
		onUpdate: onUpdate,
	}
}

// Unsubscribe removes the callback registered under owner, if any.
func (o *Observable[T]) Unsubscribe(owner *Owner) {
	delete(o.listeners, weak.Make(owner))
}

// Len returns the number of registered listeners. Listeners whose owner was
// garbage collected are counted until the next Set drops them.
func (o *Observable[T]) Len() int {
	return len(o.listeners)
}

func (o *Observable[T]) notify(from, to T) {
	// Listeners may change the registrations while being called, so deliver to
	// the listeners present when the value was set.
	snapshot := make([]listener[T], 0, len(o.listeners))
	for _, l := range o.listeners {
		snapshot = append(snapshot, l)
	}
	for _, l := range snapshot {
		if l.owner.Value() == nil {
			o.prune(l)
			continue
		}
		l.onUpdate(from, to)
	}
}

// prune drops the listener of a collected owner. Nobody can subscribe again
// under that owner, so the entry is still the stale one.
func (o *Observable[T]) prune(l listener[T]) {
	delete(o.listeners, l.owner)
	o.log().WithField("owner", l.ownerID).Debug("observable: dropped listener of collected owner")
}

func (o *Observable[T]) log() logrus.FieldLogger {
	if o.logger == nil {
		return discardLogger
	}
	return o.logger
}

// SubscribeChanges registers onChange under owner like [Observable.Subscribe],
// but only calls it when the new value differs from the previous one.
func SubscribeChanges[T comparable](o *Observable[T], owner *Owner, onChange func(from, to T)) {
	o.Subscribe(owner, func(from, to T) {
		if from == to {
			return
		}
		onChange(from, to)
	})
}

// Map returns a new Observable holding transform applied to the value of o,
// and keeps it up to date: every Set on o sets transform of the new value on
// the derived observable, which then notifies its own listeners. This happens
// on every update of o, whether or not the transformed value changed.
//
// The derived observable keeps o reachable, but o only references the derived
// observable weakly. Once the derived observable is garbage collected, o drops
// the subscription on its next Set.
func Map[T, U any](o *Observable[T], transform func(T) U) *Observable[U] {
	mapped := &Observable[U]{
		value:  transform(o.value),
		logger: o.logger,
		self:   NewOwner(),
		source: o,
	}
	ref := weak.Make(mapped)
	o.Subscribe(mapped.self, func(_, to T) {
		if m := ref.Value(); m != nil {
			m.Set(transform(to))
		}
	})
	return mapped
}

// FlatMap returns a new Observable holding the value of the Observable that
// transform returns for the value of o, and keeps it up to date like [Map].
//
// Only the value of the returned Observable is taken at each update; later
// changes to it are not followed.
func FlatMap[T, U any](o *Observable[T], transform func(T) *Observable[U]) *Observable[U] {
	return Map(o, func(v T) U {
		return transform(v).Value()
	})
}
