package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"time"

	"calorietracker/internal/domain/entity"
)

var (
	testNow = time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)
	errDB   = errors.New("connection reset")
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubRepo struct {
	entries  map[int64]*entity.FoodEntry
	nextID   int64
	queryErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{entries: map[int64]*entity.FoodEntry{}}
}

func (s *stubRepo) put(e *entity.FoodEntry) {
	if e.ID == 0 {
		s.nextID++
		e.ID = s.nextID
	} else if e.ID > s.nextID {
		s.nextID = e.ID
	}
	s.entries[e.ID] = e
}

func (s *stubRepo) ListByDate(_ context.Context, day time.Time) ([]*entity.FoodEntry, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	var out []*entity.FoodEntry
	for _, e := range s.entries {
		if !e.IsDeleted && e.DateAdded.Equal(day) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *stubRepo) SumCalories(_ context.Context, day time.Time) (int64, error) {
	if s.queryErr != nil {
		return 0, s.queryErr
	}
	var total int64
	for _, e := range s.entries {
		if !e.IsDeleted && e.DateAdded.Equal(day) {
			total += int64(e.Calories)
		}
	}
	return total, nil
}

func (s *stubRepo) ListActivePaginated(_ context.Context, offset, limit int) ([]*entity.FoodEntry, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	var all []*entity.FoodEntry
	for _, e := range s.entries {
		if !e.IsDeleted {
			all = append(all, e)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].DateAdded.Equal(all[j].DateAdded) {
			return all[i].DateAdded.After(all[j].DateAdded)
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *stubRepo) CountActive(_ context.Context) (int64, error) {
	if s.queryErr != nil {
		return 0, s.queryErr
	}
	var n int64
	for _, e := range s.entries {
		if !e.IsDeleted {
			n++
		}
	}
	return n, nil
}

func (s *stubRepo) Create(_ context.Context, e *entity.FoodEntry) error {
	if s.queryErr != nil {
		return s.queryErr
	}
	s.put(e)
	return nil
}

func (s *stubRepo) FindActiveByID(_ context.Context, id int64) (*entity.FoodEntry, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	e, ok := s.entries[id]
	if !ok || e.IsDeleted {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (s *stubRepo) Update(_ context.Context, e *entity.FoodEntry) error {
	if s.queryErr != nil {
		return s.queryErr
	}
	s.entries[e.ID] = e
	return nil
}

func (s *stubRepo) SoftDelete(_ context.Context, id int64, _ time.Time) error {
	if s.queryErr != nil {
		return s.queryErr
	}
	s.entries[id].IsDeleted = true
	return nil
}
