package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/KartikZCoding/campusgate/internal/core"
)

var ErrStudentNotFound = errors.New("student not found")

// InMemoryStudentStore keeps student records in memory.
// It exists to give the protected endpoints something real to serve;
// durability is out of scope.
type InMemoryStudentStore struct {
	mu       sync.RWMutex
	students map[string]core.Student
}

func NewInMemoryStudentStore() *InMemoryStudentStore {
	return &InMemoryStudentStore{
		students: make(map[string]core.Student),
	}
}

func (s *InMemoryStudentStore) List(_ context.Context) ([]core.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	students := make([]core.Student, 0, len(s.students))
	for _, st := range s.students {
		students = append(students, st)
	}
	return students, nil
}

func (s *InMemoryStudentStore) Get(_ context.Context, id string) (core.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.students[id]
	if !ok {
		return core.Student{}, ErrStudentNotFound
	}
	return st, nil
}

func (s *InMemoryStudentStore) Create(_ context.Context, st core.Student) (core.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	st.ID = xid.New().String()
	st.CreatedAt = now
	st.ModifiedAt = now

	s.students[st.ID] = st
	return st, nil
}

func (s *InMemoryStudentStore) Update(_ context.Context, st core.Student) (core.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.students[st.ID]
	if !ok {
		return core.Student{}, ErrStudentNotFound
	}

	st.CreatedAt = existing.CreatedAt
	st.ModifiedAt = time.Now()
	s.students[st.ID] = st
	return st, nil
}

func (s *InMemoryStudentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[id]; !ok {
		return ErrStudentNotFound
	}
	delete(s.students, id)
	return nil
}
