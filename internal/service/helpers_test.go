package service_test

import (
	"sync"
	"time"

	"message-scheduler-backend/internal/database/models"
	"message-scheduler-backend/internal/realtime"
	"message-scheduler-backend/internal/repository"

	"github.com/google/uuid"
)

// seqRand replays a fixed sequence of draws, each reduced modulo n
type seqRand struct {
	mu   sync.Mutex
	vals []int
	i    int
}

func newSeqRand(vals ...int) *seqRand {
	return &seqRand{vals: vals}
}

func (s *seqRand) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []realtime.ChangeEvent
}

func (p *recordingPublisher) Publish(evt realtime.ChangeEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) Events() []realtime.ChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]realtime.ChangeEvent, len(p.events))
	copy(out, p.events)
	return out
}

func newTestGuard() *repository.Guard {
	return repository.NewGuard("test", 5, time.Second)
}

func strPtr(s string) *string {
	return &s
}

func newUser(name string) models.User {
	return models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      strPtr(name),
		Email:     strPtr(name + "@example.com"),
	}
}

func newProject(title string, owner uuid.UUID) models.Project {
	return models.Project{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Title:     title,
		Status:    models.ProjectStatusActive,
		UserID:    owner,
	}
}

func join(projectID, userID uuid.UUID) models.ProjectTeamMember {
	return models.ProjectTeamMember{ID: uuid.New(), ProjectID: projectID, UserID: userID}
}
