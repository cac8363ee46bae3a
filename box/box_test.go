package box_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notorious-go/bonbon/box"
)

func TestImmutable(t *testing.T) {
	b := box.NewImmutable(1)
	assert.Equal(t, 1, b.Value())
}

func TestMutable(t *testing.T) {
	b := box.NewMutable(1)
	b.Set(2)
	assert.Equal(t, 2, b.Value())
}

func TestCopies(t *testing.T) {
	m := box.NewMutable("a")
	frozen := box.Copy[string](m)
	thawed := box.MutableCopy[string](frozen)

	m.Set("b")
	thawed.Set("c")
	assert.Equal(t, "a", frozen.Value(), "copies do not follow the box they were made from")
	assert.Equal(t, "b", m.Value())
	assert.Equal(t, "c", thawed.Value())
}

func TestMap(t *testing.T) {
	b := box.Map[int](box.NewImmutable(42), strconv.Itoa)
	assert.Equal(t, "42", b.Value())
}

func TestFlatMap(t *testing.T) {
	b := box.FlatMap[int](box.NewMutable(42), func(n int) box.Box[string] {
		return box.NewMutable(strconv.Itoa(n))
	})
	assert.Equal(t, "42", b.Value())
}

func TestEqual(t *testing.T) {
	assert.True(t, box.Equal[int](box.NewImmutable(1), box.NewMutable(1)))
	assert.False(t, box.Equal[int](box.NewImmutable(1), box.NewMutable(2)))
}
