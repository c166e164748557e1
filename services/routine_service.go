package services

import (
	"context"
	"fmt"

	"zenflowAPI/internal/routine"
	"zenflowAPI/internal/store"
)

// RoutineService serves the seeded yoga catalog. The catalog is
// read-only at runtime; there is no create/update surface.
type RoutineService struct {
	store *store.Store
}

func NewRoutineService(st *store.Store) *RoutineService {
	return &RoutineService{store: st}
}

func (s *RoutineService) GetCatalog(ctx context.Context, category string, difficulty routine.Difficulty) ([]*routine.Routine, error) {
	switch difficulty {
	case "", routine.DifficultyBeginner, routine.DifficultyIntermediate, routine.DifficultyAdvanced:
	default:
		return nil, fmt.Errorf("unknown difficulty %q", difficulty)
	}

	return s.store.ListRoutines(category, difficulty), nil
}

func (s *RoutineService) GetRoutine(ctx context.Context, id string) (*routine.Routine, error) {
	r, err := s.store.GetRoutine(id)
	if err != nil {
		return nil, fmt.Errorf("routine not found")
	}
	return r, nil
}
