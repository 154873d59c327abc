package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/ooui/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	storage := ecs.NewStorage(nil)

	a := storage.Create()
	b := storage.Create()

	assert.Equal(t, ecs.Entity(1), a)
	assert.Equal(t, ecs.Entity(2), b)
	assert.True(t, a.Valid())
	assert.False(t, ecs.NoEntity.Valid())
	assert.False(t, storage.Contains(ecs.NoEntity))
	assert.Equal(t, []ecs.Entity{a, b}, storage.Entities())
	assert.Empty(t, storage.Types(a))
}

func TestAttachAndGet(t *testing.T) {
	storage := ecs.NewStorage(nil)
	id := storage.Create()

	require.NoError(t, ecs.Attach(storage, id, Position{X: 1, Y: 2}))
	require.NoError(t, ecs.Attach(storage, id, Score(7)))

	pos, err := ecs.Get[Position](storage, id)
	require.NoError(t, err)
	assert.Equal(t, Position{X: 1, Y: 2}, pos)
	assert.True(t, ecs.Has[Score](storage, id))

	t.Run("attach replaces the existing value", func(t *testing.T) {
		require.NoError(t, ecs.Attach(storage, id, Position{X: 5, Y: 6}))
		assert.Equal(t, float32(5), ecs.MustGet[Position](storage, id).X)
		assert.Len(t, storage.Types(id), 2)
	})

	t.Run("GetMut writes through", func(t *testing.T) {
		p, err := ecs.GetMut[Position](storage, id)
		require.NoError(t, err)
		p.Y = 42
		assert.Equal(t, float32(42), ecs.ReadComponent[Position](storage, id).Y)
	})

	t.Run("missing component", func(t *testing.T) {
		_, err := ecs.Get[Velocity](storage, id)
		require.ErrorIs(t, err, ecs.ErrMissingComponent)

		var missing *ecs.MissingComponentError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, id, missing.Entity)
		assert.Equal(t, reflect.TypeFor[Velocity](), missing.Type)

		assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
		assert.Panics(t, func() { ecs.MustGet[Velocity](storage, id) })
	})

	t.Run("unknown entity", func(t *testing.T) {
		err := ecs.Attach(storage, ecs.Entity(999), Position{})
		require.ErrorIs(t, err, ecs.ErrUnknownEntity)
	})

	t.Run("pointers are dereferenced", func(t *testing.T) {
		other := storage.Create()
		require.NoError(t, storage.AttachAny(other, &Name{Value: "boxed"}))
		assert.Equal(t, "boxed", ecs.MustGet[Name](storage, other).Value)
	})
}

func TestDetach(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1}, Velocity{DX: 1}, Tag("x"))

	set := storage.Set(id)
	assert.True(t, ecs.Detach[Velocity](storage, id))
	assert.False(t, ecs.Detach[Velocity](storage, id))
	assert.False(t, ecs.Has[Velocity](storage, id))

	// Sets handed out earlier are not affected.
	assert.True(t, ecs.HasType[Velocity](set))
	assert.False(t, ecs.HasType[Velocity](storage.Set(id)))

	// Freed slots are reused without disturbing other entities.
	other := storage.Spawn(Velocity{DX: 9})
	assert.Equal(t, float32(9), ecs.MustGet[Velocity](storage, other).DX)
	assert.Equal(t, float32(1), ecs.MustGet[Position](storage, id).X)
}

func TestTypesAreSortedByName(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Velocity{}, Name{}, Position{})

	var names []string
	for _, typ := range storage.Types(id) {
		names = append(names, typ.String())
	}
	assert.Equal(t, []string{"ecs_test.Name", "ecs_test.Position", "ecs_test.Velocity"}, names)
}

func TestPointerStability(t *testing.T) {
	storage := ecs.NewStorage(nil)
	first := storage.Create()
	require.NoError(t, ecs.Attach(storage, first, Health{Current: 10}))
	p := ecs.MustGet[Health](storage, first)

	for i := 0; i < 500; i++ {
		require.NoError(t, ecs.Attach(storage, storage.Create(), Health{Current: i}))
	}

	p.Current = 77
	assert.Equal(t, 77, ecs.MustGet[Health](storage, first).Current)
}

func TestRegistry(t *testing.T) {
	t.Run("unregistered AttachAny panics", func(t *testing.T) {
		storage := ecs.NewStorage(nil)
		id := storage.Create()
		assert.Panics(t, func() { _ = storage.AttachAny(id, Position{}) })
	})

	t.Run("reference kinds are rejected", func(t *testing.T) {
		registry := ecs.NewComponentRegistry()
		assert.Panics(t, func() { ecs.RegisterComponent[*Position](registry) })
		assert.Panics(t, func() { ecs.RegisterComponent[map[string]int](registry) })
		assert.Panics(t, func() { ecs.RegisterComponent[func()](registry) })
	})

	t.Run("registration is idempotent", func(t *testing.T) {
		registry := ecs.NewComponentRegistry()
		ecs.RegisterComponent[Position](registry)
		ecs.RegisterComponent[Position](registry)
		assert.True(t, registry.Registered(reflect.TypeFor[Position]()))
		assert.False(t, registry.Registered(reflect.TypeFor[Velocity]()))
	})

	t.Run("storages keep separate registries", func(t *testing.T) {
		a := ecs.NewStorage(nil)
		b := ecs.NewStorage(nil)
		require.NoError(t, ecs.Attach(a, a.Create(), Tag("only in a")))
		assert.True(t, a.Registry().Registered(reflect.TypeFor[Tag]()))
		assert.False(t, b.Registry().Registered(reflect.TypeFor[Tag]()))
	})
}

func TestSliceComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Inventory{Items: []string{"key"}})

	inv := ecs.MustGet[Inventory](storage, id)
	inv.Items = append(inv.Items, "map")
	assert.Equal(t, []string{"key", "map"}, ecs.MustGet[Inventory](storage, id).Items)
}
