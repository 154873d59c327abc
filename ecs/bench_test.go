package ecs_test

import (
	"cmp"
	"testing"

	"github.com/plus3/ooui/ecs"
)

func BenchmarkSpawn(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})
	}
}

func BenchmarkGetComponent(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ecs.ReadComponent[Position](storage, id)
	}
}

func BenchmarkApplyFilterAndSort(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := 0; i < 10_000; i++ {
		if i%3 == 0 {
			storage.Spawn(Score(10_000 - i), Tag("drawn"))
		} else {
			storage.Spawn(Score(i))
		}
	}

	sched := ecs.NewScheduler(storage, ecs.NewTree())
	sched.Register(ecs.SystemFunc(func(*ecs.UpdateFrame) error { return nil }),
		ecs.WithFilter(ecs.With[Tag]()),
		ecs.WithSort(ecs.CompareBy(func(a, b *Score) int { return cmp.Compare(*a, *b) })),
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := sched.ApplyFilterAndSort(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkViewIter(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := 0; i < 10_000; i++ {
		storage.Spawn(Position{}, Velocity{DX: 1})
	}
	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, item := range view.Iter() {
			item.Position.X += item.Velocity.DX
		}
	}
}
