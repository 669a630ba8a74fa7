package service

import (
	"message-scheduler-backend/internal/database/models"
	"message-scheduler-backend/internal/repository"

	"github.com/google/uuid"
)

// ProjectSummary is one entry of a member's project list
type ProjectSummary struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Progress int       `json:"progress"`
}

// MemberProjects is the project count and list of a single member
type MemberProjects struct {
	Count    int              `json:"count"`
	Projects []ProjectSummary `json:"projects"`
}

// MessageTally counts the messages of one project by status
type MessageTally struct {
	Total   int
	Pending int
	Sent    int
	Failed  int
}

// ProgressFunc assigns an illustrative 0-100 progress value to a project
type ProgressFunc func(project models.Project) int

// AggregateProjectCounts counts, for every roster member, the projects whose
// team contains them. Members on no project are present with a zero count.
func AggregateProjectCounts(teams []ProjectTeam, roster []TeamMember, progress ProgressFunc) map[uuid.UUID]*MemberProjects {
	out := make(map[uuid.UUID]*MemberProjects, len(roster))
	for _, m := range roster {
		out[m.ID] = &MemberProjects{Projects: []ProjectSummary{}}
	}

	for _, pt := range teams {
		summary := ProjectSummary{
			ID:       pt.Project.ID,
			Title:    pt.Project.Title,
			Progress: progress(pt.Project),
		}
		for _, m := range pt.Team {
			entry, ok := out[m.ID]
			if !ok {
				entry = &MemberProjects{Projects: []ProjectSummary{}}
				out[m.ID] = entry
			}
			entry.Count++
			entry.Projects = append(entry.Projects, summary)
		}
	}
	return out
}

// ApplyProjectCounts returns a copy of roster with ProjectCount filled in
func ApplyProjectCounts(roster []TeamMember, counts map[uuid.UUID]*MemberProjects) []TeamMember {
	out := make([]TeamMember, len(roster))
	for i, m := range roster {
		m.ProjectCount = 0
		if entry, ok := counts[m.ID]; ok {
			m.ProjectCount = entry.Count
		}
		out[i] = m
	}
	return out
}

// RandomProgress draws a uniform progress value for every project
func RandomProgress(rng RandomSource) ProgressFunc {
	return func(models.Project) int {
		return rng.IntN(101)
	}
}

// MessageRatioProgress uses the sent share of a project's messages, falling
// back to a random value for projects without messages
func MessageRatioProgress(tallies map[uuid.UUID]MessageTally, rng RandomSource) ProgressFunc {
	random := RandomProgress(rng)
	return func(p models.Project) int {
		t, ok := tallies[p.ID]
		if !ok || t.Total == 0 {
			return random(p)
		}
		return t.Sent * 100 / t.Total
	}
}

// TallyMessages folds per-status counts into one tally per project
func TallyMessages(stats []repository.ProjectMessageStat) map[uuid.UUID]MessageTally {
	out := make(map[uuid.UUID]MessageTally)
	for _, s := range stats {
		t := out[s.ProjectID]
		n := int(s.Count)
		t.Total += n
		switch s.Status {
		case models.MessageStatusPending:
			t.Pending += n
		case models.MessageStatusSent:
			t.Sent += n
		case models.MessageStatusFailed:
			t.Failed += n
		}
		out[s.ProjectID] = t
	}
	return out
}

// ApplyMessageCounts overwrites the stored counters of each project with the
// recomputed tallies. Projects without messages get zero.
func ApplyMessageCounts(projects []models.Project, tallies map[uuid.UUID]MessageTally) {
	for i := range projects {
		t := tallies[projects[i].ID]
		projects[i].MessageCount = t.Total
		projects[i].ScheduledCount = t.Pending
	}
}
