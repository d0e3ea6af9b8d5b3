package binding

import (
	"reflect"
	"testing"

	"github.com/vango-dev/vstore/pkg/store"
)

func TestSliceSnapshot(t *testing.T) {
	b := store.Record{"val": 1}
	s := store.New(store.Record{"a": 1, "b": b})
	bound := Slice(s, func(v store.Record) any { return v["b"] })

	if !store.Same(bound.Snapshot(), any(b)) {
		t.Error("Snapshot should return the selected value by reference")
	}
	if bound.Store() != s {
		t.Error("Store() should return the bound store")
	}
}

func TestUseReturnsDispatch(t *testing.T) {
	s := store.New(store.Record{"a": 1})
	value, update := Full(s).Use()

	if !store.Same(value, s.Get()) {
		t.Error("Full should expose the whole state")
	}

	update(store.Value(store.Record{"b": 2}), false)
	want := store.Record{"a": 1, "b": 2}
	if got := s.Get(); !reflect.DeepEqual(got, want) {
		t.Errorf("state = %v, want %v", got, want)
	}

	update(store.Func(func(store.Record) store.Record { return store.Record{"c": 3} }), true)
	if got := s.Get(); !reflect.DeepEqual(got, store.Record{"c": 3}) {
		t.Errorf("state = %v after replace", got)
	}
}

func TestSubscribeForwardsNotifications(t *testing.T) {
	s := store.New(0)
	bound := Full(s)

	calls := 0
	unsub := bound.Subscribe(func() { calls++ })

	s.Set(1)
	s.Notify()
	unsub()
	s.Set(2)

	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestSlicePanicsOnNilSelector(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic")
		}
	}()
	Slice[int, int](store.New(0), nil)
}
