package observable_test

import (
	"runtime"
	"strconv"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notorious-go/bonbon/observable"
)

type update[T any] struct {
	from, to T
}

// recorder collects the updates delivered to a listener.
type recorder[T any] struct {
	updates []update[T]
}

func (r *recorder[T]) record(from, to T) {
	r.updates = append(r.updates, update[T]{from, to})
}

func TestSubscribeNotifies(t *testing.T) {
	number := observable.New(0)
	owner := observable.NewOwner()
	defer runtime.KeepAlive(owner)
	var r recorder[int]
	number.Subscribe(owner, r.record)

	assert.Empty(t, r.updates, "subscribing must not call the listener")
	number.Set(1)
	assert.Equal(t, []update[int]{{0, 1}}, r.updates)
	assert.Equal(t, 1, number.Value())
}

func TestSubscribeNotifiesEqualValues(t *testing.T) {
	number := observable.New(0)
	owner := observable.NewOwner()
	defer runtime.KeepAlive(owner)
	var r recorder[int]
	number.Subscribe(owner, r.record)

	number.Set(0)
	assert.Equal(t, []update[int]{{0, 0}}, r.updates)
}

func TestSubscribeChanges(t *testing.T) {
	number := observable.New(0)
	owner := observable.NewOwner()
	defer runtime.KeepAlive(owner)
	var r recorder[int]
	observable.SubscribeChanges(number, owner, r.record)

	number.Set(0)
	assert.Empty(t, r.updates, "setting an equal value must not notify change listeners")

	number.Set(1)
	assert.Equal(t, []update[int]{{0, 1}}, r.updates)
}

func TestSubscribeReplaces(t *testing.T) {
	number := observable.New(0)
	owner := observable.NewOwner()
	defer runtime.KeepAlive(owner)
	var first, second recorder[int]
	number.Subscribe(owner, first.record)
	number.Subscribe(owner, second.record)

	number.Set(1)
	assert.Equal(t, 1, number.Len())
	assert.Empty(t, first.updates)
	assert.Equal(t, []update[int]{{0, 1}}, second.updates)
}

func TestUnsubscribe(t *testing.T) {
	number := observable.New(0)
	owner := observable.NewOwner()
	var r recorder[int]
	number.Subscribe(owner, r.record)
	number.Set(1)

	number.Unsubscribe(owner)
	number.Set(2)
	number.Set(3)
	assert.Equal(t, []update[int]{{0, 1}}, r.updates)
	assert.Zero(t, number.Len())

	assert.NotPanics(t, func() { number.Unsubscribe(owner) }, "unsubscribing twice is a no-op")
}

func TestSubscribeNilOwnerPanics(t *testing.T) {
	number := observable.New(0)
	assert.Panics(t, func() { number.Subscribe(nil, func(int, int) {}) })
}

func TestIndependentOwners(t *testing.T) {
	number := observable.New(0)
	alice, bob := observable.NewOwner(), observable.NewOwner()
	defer runtime.KeepAlive(bob)
	require.NotEqual(t, alice.ID(), bob.ID())

	var a, b recorder[int]
	number.Subscribe(alice, a.record)
	number.Subscribe(bob, b.record)
	number.Set(1)
	number.Unsubscribe(alice)
	number.Set(2)

	assert.Equal(t, []update[int]{{0, 1}}, a.updates)
	assert.Equal(t, []update[int]{{0, 1}, {1, 2}}, b.updates)
}

// Listeners that unsubscribe during delivery do not disturb the delivery in
// progress; the change applies from the next Set.
func TestUnsubscribeDuringDelivery(t *testing.T) {
	number := observable.New(0)
	alice, bob := observable.NewOwner(), observable.NewOwner()
	calls := 0
	unsubscribeAll := func(int, int) {
		calls++
		number.Unsubscribe(alice)
		number.Unsubscribe(bob)
	}
	number.Subscribe(alice, unsubscribeAll)
	number.Subscribe(bob, unsubscribeAll)

	number.Set(1)
	assert.Equal(t, 2, calls)
	number.Set(2)
	assert.Equal(t, 2, calls)
}

func TestSubscribeDuringDelivery(t *testing.T) {
	number := observable.New(0)
	alice, bob := observable.NewOwner(), observable.NewOwner()
	defer runtime.KeepAlive(alice)
	var b recorder[int]
	number.Subscribe(alice, func(int, int) {
		number.Subscribe(bob, b.record)
	})

	number.Set(1)
	assert.Empty(t, b.updates)
	number.Set(2)
	assert.Equal(t, []update[int]{{1, 2}}, b.updates)
}

// subscribeTemporary subscribes under an owner that is unreachable once the
// function returns.
func subscribeTemporary(o *observable.Observable[int], r *recorder[int]) {
	owner := observable.NewOwner()
	o.Subscribe(owner, r.record)
}

func TestCollectedOwnerIsDropped(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	number := observable.New(0, observable.WithLogger(logger))
	var r recorder[int]
	subscribeTemporary(number, &r)
	require.Equal(t, 1, number.Len())

	runtime.GC()
	number.Set(1)

	assert.Empty(t, r.updates, "the listener of a collected owner must not be called")
	assert.Zero(t, number.Len())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Data, "owner")
}

func TestMap(t *testing.T) {
	number := observable.New(0)
	text := observable.Map(number, strconv.Itoa)
	assert.Equal(t, "0", text.Value())

	owner := observable.NewOwner()
	defer runtime.KeepAlive(owner)
	defer runtime.KeepAlive(text)
	var r recorder[string]
	text.Subscribe(owner, r.record)

	number.Set(1)
	assert.Equal(t, []update[string]{{"0", "1"}}, r.updates)
	assert.Equal(t, "1", text.Value())
}

func TestMapNotifiesEveryUpdate(t *testing.T) {
	number := observable.New(1)
	parity := observable.Map(number, func(n int) bool { return n%2 == 0 })

	owner := observable.NewOwner()
	defer runtime.KeepAlive(owner)
	defer runtime.KeepAlive(parity)
	var r recorder[bool]
	parity.Subscribe(owner, r.record)

	number.Set(3)
	number.Set(4)
	assert.Equal(t, []update[bool]{{false, false}, {false, true}}, r.updates)
}

func TestFlatMap(t *testing.T) {
	number := observable.New(0)
	text := observable.FlatMap(number, func(n int) *observable.Observable[string] {
		return observable.New(strconv.Itoa(n))
	})

	owner := observable.NewOwner()
	defer runtime.KeepAlive(owner)
	defer runtime.KeepAlive(text)
	var r recorder[string]
	text.Subscribe(owner, r.record)

	number.Set(1)
	assert.Equal(t, []update[string]{{"0", "1"}}, r.updates)
}

func mapTemporary(o *observable.Observable[int]) {
	_ = observable.Map(o, strconv.Itoa)
}

func TestCollectedMapIsDropped(t *testing.T) {
	number := observable.New(0)
	mapTemporary(number)
	require.Equal(t, 1, number.Len())

	runtime.GC()
	number.Set(1)
	assert.Zero(t, number.Len())
}

func TestMapChainStaysConnected(t *testing.T) {
	number := observable.New(1)
	// Only the last link of the chain is referenced here.
	text := observable.Map(observable.Map(number, func(n int) int { return n * 10 }), strconv.Itoa)

	runtime.GC()
	number.Set(2)
	assert.Equal(t, "20", text.Value())
}

func TestZeroValue(t *testing.T) {
	var number observable.Observable[int]
	owner := observable.NewOwner()
	defer runtime.KeepAlive(owner)
	var r recorder[int]
	number.Subscribe(owner, r.record)
	number.Set(5)
	assert.Equal(t, []update[int]{{0, 5}}, r.updates)

	doubled := observable.Map(&number, func(n int) int { return n * 2 })
	number.Set(6)
	assert.Equal(t, 12, doubled.Value())
}
