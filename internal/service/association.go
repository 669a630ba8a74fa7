package service

import (
	"message-scheduler-backend/internal/database/models"

	"github.com/google/uuid"
)

// Association modes reported alongside reconciled projects
const (
	ModeExplicit  = "explicit"
	ModeHeuristic = "heuristic"
)

const maxHeuristicTeamSize = 3

// AssociationStrategy resolves the team of a project from the roster
type AssociationStrategy interface {
	Mode() string
	Team(project models.Project, roster []TeamMember) []TeamMember
}

// ProjectTeam is a project together with its resolved team
type ProjectTeam struct {
	Project models.Project
	Team    []TeamMember
}

// SelectAssociationStrategy picks explicit associations when join rows exist
// and the random heuristic otherwise. Call it once per reconciliation.
func SelectAssociationStrategy(joins []models.ProjectTeamMember, rng RandomSource) AssociationStrategy {
	if len(joins) > 0 {
		return NewExplicitAssociations(joins)
	}
	return &HeuristicAssociations{rng: rng}
}

// AssociateTeams resolves the team of every project with a single strategy
func AssociateTeams(projects []models.Project, roster []TeamMember, strategy AssociationStrategy) []ProjectTeam {
	out := make([]ProjectTeam, 0, len(projects))
	for _, p := range projects {
		out = append(out, ProjectTeam{Project: p, Team: strategy.Team(p, roster)})
	}
	return out
}

// ExplicitAssociations builds teams from the project/member join rows
type ExplicitAssociations struct {
	byProject map[uuid.UUID]map[uuid.UUID]struct{}
}

// NewExplicitAssociations indexes join rows by project
func NewExplicitAssociations(joins []models.ProjectTeamMember) *ExplicitAssociations {
	idx := make(map[uuid.UUID]map[uuid.UUID]struct{})
	for _, j := range joins {
		members, ok := idx[j.ProjectID]
		if !ok {
			members = make(map[uuid.UUID]struct{})
			idx[j.ProjectID] = members
		}
		members[j.UserID] = struct{}{}
	}
	return &ExplicitAssociations{byProject: idx}
}

func (e *ExplicitAssociations) Mode() string { return ModeExplicit }

// Team returns the joined members in roster order, then the owner if it was
// not joined. Join rows naming unknown users are skipped.
func (e *ExplicitAssociations) Team(project models.Project, roster []TeamMember) []TeamMember {
	joined := e.byProject[project.ID]
	team := make([]TeamMember, 0, len(joined)+1)
	for _, m := range roster {
		if _, ok := joined[m.ID]; ok {
			team = append(team, m)
		}
	}
	if _, ok := joined[project.UserID]; !ok {
		if owner, found := findMember(roster, project.UserID); found {
			team = append(team, owner)
		}
	}
	return team
}

// HeuristicAssociations invents a team of one to three members when no join
// rows exist. Two calls for the same project usually disagree.
type HeuristicAssociations struct {
	rng RandomSource
}

// NewHeuristicAssociations creates the random fallback strategy
func NewHeuristicAssociations(rng RandomSource) *HeuristicAssociations {
	return &HeuristicAssociations{rng: rng}
}

func (h *HeuristicAssociations) Mode() string { return ModeHeuristic }

// Team seats the owner first, then draws distinct members until the drawn
// target size is reached or the roster runs out.
func (h *HeuristicAssociations) Team(project models.Project, roster []TeamMember) []TeamMember {
	if len(roster) == 0 {
		return []TeamMember{}
	}

	target := h.rng.IntN(maxHeuristicTeamSize) + 1
	if target > len(roster) {
		target = len(roster)
	}

	team := make([]TeamMember, 0, target)
	candidates := make([]TeamMember, 0, len(roster))
	for _, m := range roster {
		if m.ID == project.UserID {
			team = append(team, m)
			continue
		}
		candidates = append(candidates, m)
	}
	for len(team) < target && len(candidates) > 0 {
		i := h.rng.IntN(len(candidates))
		team = append(team, candidates[i])
		candidates[i] = candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]
	}
	return team
}
