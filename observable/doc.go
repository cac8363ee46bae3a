// Package observable provides Observable, a value holder that calls its
// listeners synchronously every time the value is set.
//
// # Listener Identity
//
// Every subscription is registered under an [Owner]. An owner holds at most
// one subscription per Observable: subscribing again with the same owner
// replaces the previous callback. The owner is also what Unsubscribe takes.
//
// The Observable references owners weakly. Once an owner is garbage collected,
// its subscription is dropped the next time the value is set, so forgetting to
// unsubscribe does not leak. The flip side is that the owner must stay
// reachable for as long as the subscription should last, and the callback must
// not keep the owner reachable itself, or the subscription is never dropped.
//
//	owner := observable.NewOwner()
//	temperature.Subscribe(owner, func(from, to float64) {
//	    fmt.Printf("%.1f -> %.1f\n", from, to)
//	})
//	// ... later
//	temperature.Unsubscribe(owner) // or just drop owner
//
// # Delivery
//
// Set stores the new value and then calls every listener registered at that
// moment with the old and the new value, in no particular order. Listeners
// must not depend on the order in which they are called. A listener may
// subscribe or unsubscribe any owner, itself included; such changes take
// effect from the next Set, and the delivery already in progress is not
// affected.
//
// Subscribe does not call the listener with the current value.
//
// # Concurrency
//
// An Observable has no internal locking. All calls on an Observable, and on the
// observables derived from it with [Map] and [FlatMap], must come from one
// goroutine at a time; concurrent calls to Set are a data race. Wrap access in
// a lock from the lock package if several goroutines need it.
//
// If the value has reference semantics, only assignments through Set are
// observed, not changes made through the reference.
package observable
