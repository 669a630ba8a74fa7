package service

import (
	"context"

	"message-scheduler-backend/internal/database/models"
	apperrors "message-scheduler-backend/internal/errors"
	"message-scheduler-backend/internal/repository"

	"github.com/google/uuid"
)

// Reconciler joins the users, projects, join rows and messages collections
// into projects with teams and per-member project lists
type Reconciler struct {
	fetcher *EntityFetcher
	rng     RandomSource
}

// NewReconciler creates a new reconciler
func NewReconciler(fetcher *EntityFetcher, rng RandomSource) *Reconciler {
	return &Reconciler{fetcher: fetcher, rng: rng}
}

// Fetcher returns the fetcher the reconciler reads through
func (r *Reconciler) Fetcher() *EntityFetcher {
	return r.fetcher
}

// ReconciledProjects is the outcome of one reconciliation pass
type ReconciledProjects struct {
	Mode     string
	Roster   []TeamMember
	Projects []ProjectTeam
	Tallies  map[uuid.UUID]MessageTally
}

// ProjectsWithTeam loads the projects matching filter and resolves their teams
func (r *Reconciler) ProjectsWithTeam(ctx context.Context, filter repository.ProjectFilter) (*ReconciledProjects, error) {
	projects, err := r.fetcher.ListProjects(ctx, filter)
	if err != nil {
		return nil, err
	}
	return r.TeamsFor(ctx, projects)
}

// TeamsFor resolves the teams of already loaded projects. Message counters
// are recomputed from the message rows.
func (r *Reconciler) TeamsFor(ctx context.Context, projects []models.Project) (*ReconciledProjects, error) {
	roster, err := r.fetcher.ListTeamMembers(ctx)
	if err != nil {
		return nil, err
	}

	strategy, err := r.strategy(ctx)
	if err != nil {
		return nil, err
	}

	tallies, err := r.fetcher.ProjectMessageTallies(ctx)
	if err != nil {
		return nil, err
	}
	ApplyMessageCounts(projects, tallies)

	return &ReconciledProjects{
		Mode:     strategy.Mode(),
		Roster:   roster,
		Projects: AssociateTeams(projects, roster, strategy),
		Tallies:  tallies,
	}, nil
}

// MemberProjects returns the roster with project counts applied, and each
// member's project list, across all projects
func (r *Reconciler) MemberProjects(ctx context.Context) ([]TeamMember, map[uuid.UUID]*MemberProjects, error) {
	overview, err := r.Overview(ctx)
	if err != nil {
		return nil, nil, err
	}
	return overview.Roster, overview.Counts, nil
}

// Overview is a full reconciliation: every project with its team, and the
// roster with project counts applied
type Overview struct {
	*ReconciledProjects
	Counts map[uuid.UUID]*MemberProjects
}

// Overview reconciles every project and aggregates per-member counts
func (r *Reconciler) Overview(ctx context.Context) (*Overview, error) {
	reconciled, err := r.ProjectsWithTeam(ctx, repository.ProjectFilter{})
	if err != nil {
		return nil, err
	}

	counts := AggregateProjectCounts(reconciled.Projects, reconciled.Roster, MessageRatioProgress(reconciled.Tallies, r.rng))
	reconciled.Roster = ApplyProjectCounts(reconciled.Roster, counts)
	return &Overview{ReconciledProjects: reconciled, Counts: counts}, nil
}

// strategy reads the join relation once and picks the association mode. A
// join relation that does not exist selects the heuristic.
func (r *Reconciler) strategy(ctx context.Context) (AssociationStrategy, error) {
	joins, err := r.fetcher.ListProjectTeamMembers(ctx)
	if err != nil {
		if !apperrors.IsBackendNotFound(err) {
			return nil, err
		}
		joins = nil
	}
	return SelectAssociationStrategy(joins, r.rng), nil
}
