package ecs

import (
	"slices"
	"strings"
)

// StorageStats summarizes the contents of a Storage.
type StorageStats struct {
	TotalEntityCount int
	ColumnCount      int
	SingletonCount   int
	ColumnBreakdown  []ColumnStats
	SingletonTypes   []string
}

// ColumnStats describes one component column.
type ColumnStats struct {
	Type        string
	EntityCount int
}

// CollectStats gathers entity, column and singleton counts.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		TotalEntityCount: len(s.entities),
		ColumnCount:      len(s.columns),
		SingletonCount:   len(s.singletons),
		SingletonTypes:   s.SingletonTypes(),
	}

	for t, col := range s.columns {
		stats.ColumnBreakdown = append(stats.ColumnBreakdown, ColumnStats{
			Type:        t.String(),
			EntityCount: col.data.Len(),
		})
	}
	slices.SortFunc(stats.ColumnBreakdown, func(a, b ColumnStats) int {
		return strings.Compare(a.Type, b.Type)
	})

	return stats
}
