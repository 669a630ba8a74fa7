package service

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"message-scheduler-backend/internal/database/models"
	"message-scheduler-backend/internal/logger"
	"message-scheduler-backend/internal/repository"

	"gopkg.in/yaml.v3"
)

//go:embed seed_messages.yaml
var seedMessagesYAML []byte

const (
	maxSeedMessagesPerMember = 3
	maxSeedDayOffset         = 4
	recipientSpace           = 10_000_000_000
)

// seedStatusCycle is indexed by (member index + message index) mod 6
var seedStatusCycle = []models.MessageStatus{
	models.MessageStatusPending,
	models.MessageStatusPending,
	models.MessageStatusPending,
	models.MessageStatusSent,
	models.MessageStatusSent,
	models.MessageStatusFailed,
}

// MessageSample is a title/body template for seeded messages
type MessageSample struct {
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

type sampleFile struct {
	Samples []MessageSample `yaml:"samples"`
}

// LoadMessageSamples parses a YAML sample document
func LoadMessageSamples(data []byte) ([]MessageSample, error) {
	var f sampleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse message samples: %w", err)
	}
	if len(f.Samples) == 0 {
		return nil, fmt.Errorf("message samples are empty")
	}
	return f.Samples, nil
}

// DefaultMessageSamples returns the built-in samples
func DefaultMessageSamples() []MessageSample {
	samples, err := LoadMessageSamples(seedMessagesYAML)
	if err != nil {
		panic(err)
	}
	return samples
}

// MessageSeeder fills an empty message store with demo messages
type MessageSeeder struct {
	repo    repository.ScheduledMessageRepositoryInterface
	guard   *repository.Guard
	samples []MessageSample
	rng     RandomSource
	now     func() time.Time
}

// NewMessageSeeder creates a seeder using the built-in samples
func NewMessageSeeder(repo repository.ScheduledMessageRepositoryInterface, guard *repository.Guard, rng RandomSource) *MessageSeeder {
	return &MessageSeeder{
		repo:    repo,
		guard:   guard,
		samples: DefaultMessageSamples(),
		rng:     rng,
		now:     time.Now,
	}
}

// WithClock replaces the seeder's time source
func (s *MessageSeeder) WithClock(now func() time.Time) *MessageSeeder {
	s.now = now
	return s
}

// WithSamples replaces the seeder's templates
func (s *MessageSeeder) WithSamples(samples []MessageSample) *MessageSeeder {
	s.samples = samples
	return s
}

// BuildMessages generates one to three messages per roster member
func (s *MessageSeeder) BuildMessages(roster []TeamMember) []models.ScheduledMessage {
	now := s.now()
	msgs := make([]models.ScheduledMessage, 0, len(roster)*2)

	for i, member := range roster {
		count := s.rng.IntN(maxSeedMessagesPerMember) + 1
		for j := 0; j < count; j++ {
			sample := s.samples[(i+j)%len(s.samples)]
			days := s.rng.IntN(maxSeedDayOffset + 1)
			memberID := member.ID

			msgs = append(msgs, models.ScheduledMessage{
				Title:         sample.Title,
				Content:       sample.Content,
				Recipient:     fmt.Sprintf("+1%010d", s.rng.IntN(recipientSpace)),
				ScheduledDate: now.Add(time.Duration(days) * 24 * time.Hour),
				Status:        seedStatusCycle[(i+j)%len(seedStatusCycle)],
				TeamMemberID:  &memberID,
			})
		}
	}
	return msgs
}

// SeedIfEmpty inserts a generated batch only when no message exists at all.
// It returns how many messages were inserted; zero means the store already
// had messages (or the roster was empty).
func (s *MessageSeeder) SeedIfEmpty(ctx context.Context, roster []TeamMember) (int, error) {
	if len(roster) == 0 {
		return 0, nil
	}

	msgs := s.BuildMessages(roster)
	var inserted bool
	err := s.guard.Do("seed scheduled messages", func() error {
		var err error
		inserted, err = s.repo.InsertIfEmpty(ctx, msgs)
		return err
	})
	if err != nil {
		logger.WithContext(ctx).WithError(err).Error("Failed to seed initial messages")
		return 0, err
	}
	if !inserted {
		return 0, nil
	}

	logger.WithContext(ctx).WithField("count", len(msgs)).Info("Seeded initial messages")
	return len(msgs), nil
}
