package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/garydamm/hackathon-manager/internal/common"
	"github.com/garydamm/hackathon-manager/internal/domain/model"
)

// In-memory repository fakes. They honor the same contracts as the pg
// implementations: NotFound sentinels, upsert-in-place semantics, and the
// (judge, project) / (assignment, criterion) uniqueness backstops.

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("user already exists: %w", common.ErrConflict)
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeEventRepo struct {
	events map[string]*model.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[string]*model.Event{}}
}

func (r *fakeEventRepo) Create(ctx context.Context, event *model.Event) error {
	for _, e := range r.events {
		if e.Slug == event.Slug {
			return fmt.Errorf("event slug taken: %w", common.ErrConflict)
		}
	}
	cp := *event
	r.events[event.ID] = &cp
	return nil
}

func (r *fakeEventRepo) FindByID(ctx context.Context, id string) (*model.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEventRepo) FindBySlug(ctx context.Context, slug string) (*model.Event, error) {
	for _, e := range r.events {
		if e.Slug == slug {
			cp := *e
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeEventRepo) List(ctx context.Context, limit, offset int) ([]model.Event, error) {
	events := []model.Event{}
	for _, e := range r.events {
		events = append(events, *e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events, nil
}

func (r *fakeEventRepo) UpdateStatus(ctx context.Context, id string, status model.EventStatus) error {
	e, ok := r.events[id]
	if !ok {
		return common.ErrNotFound
	}
	e.Status = status
	return nil
}

type roleKey struct{ eventID, userID string }

type fakeRoleRepo struct {
	roles map[roleKey]model.EventRole
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[roleKey]model.EventRole{}}
}

func (r *fakeRoleRepo) Grant(ctx context.Context, eventID, userID string, role model.EventRole) error {
	r.roles[roleKey{eventID, userID}] = role
	return nil
}

func (r *fakeRoleRepo) RoleOf(ctx context.Context, eventID, userID string) (model.EventRole, error) {
	role, ok := r.roles[roleKey{eventID, userID}]
	if !ok {
		return model.EventRoleNone, nil
	}
	return role, nil
}

type memberKey struct{ teamID, userID string }

type fakeTeamRepo struct {
	teams   map[string]*model.Team
	members map[memberKey]bool
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: map[string]*model.Team{}, members: map[memberKey]bool{}}
}

func (r *fakeTeamRepo) Create(ctx context.Context, team *model.Team) error {
	for _, t := range r.teams {
		if t.EventID == team.EventID && t.Name == team.Name {
			return fmt.Errorf("team name taken: %w", common.ErrConflict)
		}
	}
	cp := *team
	r.teams[team.ID] = &cp
	return nil
}

func (r *fakeTeamRepo) FindByID(ctx context.Context, id string) (*model.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTeamRepo) AddMember(ctx context.Context, teamID, userID string) error {
	key := memberKey{teamID, userID}
	if r.members[key] {
		return fmt.Errorf("already a member: %w", common.ErrConflict)
	}
	r.members[key] = true
	return nil
}

func (r *fakeTeamRepo) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	return r.members[memberKey{teamID, userID}], nil
}

type fakeProjectRepo struct {
	projects []*model.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{}
}

func (r *fakeProjectRepo) Create(ctx context.Context, project *model.Project) error {
	cp := *project
	r.projects = append(r.projects, &cp)
	return nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, project *model.Project) error {
	p, err := r.find(project.ID)
	if err != nil {
		return err
	}
	p.Name = project.Name
	p.Description = project.Description
	p.RepoURL = project.RepoURL
	p.DemoURL = project.DemoURL
	return nil
}

func (r *fakeProjectRepo) FindByID(ctx context.Context, id string) (*model.Project, error) {
	p, err := r.find(id)
	if err != nil {
		return nil, err
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProjectRepo) ListByEvent(ctx context.Context, eventID string) ([]model.Project, error) {
	out := []model.Project{}
	for _, p := range r.projects {
		if p.EventID == eventID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) ListSubmitted(ctx context.Context, eventID string) ([]model.Project, error) {
	out := []model.Project{}
	for _, p := range r.projects {
		if p.EventID == eventID && p.Status == model.ProjectStatusSubmitted {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) SetStatus(ctx context.Context, id string, status model.ProjectStatus, submittedAt *time.Time) error {
	p, err := r.find(id)
	if err != nil {
		return err
	}
	p.Status = status
	if submittedAt != nil {
		p.SubmittedAt = submittedAt
	}
	return nil
}

func (r *fakeProjectRepo) find(id string) (*model.Project, error) {
	for _, p := range r.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, common.ErrNotFound
}

type fakeCriterionRepo struct {
	criteria []*model.Criterion
	scored   map[string]bool // criterion ids with recorded scores
}

func newFakeCriterionRepo() *fakeCriterionRepo {
	return &fakeCriterionRepo{scored: map[string]bool{}}
}

func (r *fakeCriterionRepo) Create(ctx context.Context, criterion *model.Criterion) error {
	cp := *criterion
	r.criteria = append(r.criteria, &cp)
	return nil
}

func (r *fakeCriterionRepo) Update(ctx context.Context, criterion *model.Criterion) error {
	c, err := r.find(criterion.ID)
	if err != nil {
		return err
	}
	*c = *criterion
	return nil
}

func (r *fakeCriterionRepo) Delete(ctx context.Context, id string) error {
	for i, c := range r.criteria {
		if c.ID == id {
			r.criteria = append(r.criteria[:i], r.criteria[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *fakeCriterionRepo) FindByID(ctx context.Context, id string) (*model.Criterion, error) {
	c, err := r.find(id)
	if err != nil {
		return nil, err
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCriterionRepo) ListByEvent(ctx context.Context, eventID string) ([]model.Criterion, error) {
	out := []model.Criterion{}
	for _, c := range r.criteria {
		if c.EventID == eventID {
			out = append(out, *c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (r *fakeCriterionRepo) HasScores(ctx context.Context, id string) (bool, error) {
	return r.scored[id], nil
}

func (r *fakeCriterionRepo) find(id string) (*model.Criterion, error) {
	for _, c := range r.criteria {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, common.ErrNotFound
}

type fakeAssignmentRepo struct {
	assignments []*model.Assignment
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{}
}

func (r *fakeAssignmentRepo) CreateIfAbsent(ctx context.Context, assignment *model.Assignment) error {
	for _, a := range r.assignments {
		if a.JudgeID == assignment.JudgeID && a.ProjectID == assignment.ProjectID {
			return nil // existing row is canonical
		}
	}
	cp := *assignment
	r.assignments = append(r.assignments, &cp)
	return nil
}

func (r *fakeAssignmentRepo) FindByID(ctx context.Context, id string) (*model.Assignment, error) {
	for _, a := range r.assignments {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeAssignmentRepo) ListByEventAndJudge(ctx context.Context, eventID, judgeID string) ([]model.Assignment, error) {
	out := []model.Assignment{}
	for _, a := range r.assignments {
		if a.EventID == eventID && a.JudgeID == judgeID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) ListByProject(ctx context.Context, projectID string) ([]model.Assignment, error) {
	out := []model.Assignment{}
	for _, a := range r.assignments {
		if a.ProjectID == projectID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) MarkCompleted(ctx context.Context, id string, completedAt time.Time) error {
	for _, a := range r.assignments {
		if a.ID == id && a.CompletedAt == nil {
			t := completedAt
			a.CompletedAt = &t
		}
	}
	return nil
}

type fakeScoreRepo struct {
	scores      []*model.Score
	assignments *fakeAssignmentRepo
	projects    *fakeProjectRepo
}

func newFakeScoreRepo(assignments *fakeAssignmentRepo, projects *fakeProjectRepo) *fakeScoreRepo {
	return &fakeScoreRepo{assignments: assignments, projects: projects}
}

func (r *fakeScoreRepo) UpsertBatch(ctx context.Context, scores []model.Score) error {
	for _, s := range scores {
		updated := false
		for _, existing := range r.scores {
			if existing.AssignmentID == s.AssignmentID && existing.CriterionID == s.CriterionID {
				existing.Value = s.Value
				existing.Feedback = s.Feedback
				updated = true
				break
			}
		}
		if !updated {
			cp := s
			r.scores = append(r.scores, &cp)
		}
	}
	return nil
}

func (r *fakeScoreRepo) ListByAssignment(ctx context.Context, assignmentID string) ([]model.Score, error) {
	out := []model.Score{}
	for _, s := range r.scores {
		if s.AssignmentID == assignmentID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeScoreRepo) ListScoredCriterionIDs(ctx context.Context, assignmentID string) ([]string, error) {
	out := []string{}
	for _, s := range r.scores {
		if s.AssignmentID == assignmentID {
			out = append(out, s.CriterionID)
		}
	}
	return out, nil
}

func (r *fakeScoreRepo) ListByEvent(ctx context.Context, eventID string) ([]model.ProjectCriterionScore, error) {
	out := []model.ProjectCriterionScore{}
	for _, s := range r.scores {
		assignment, err := r.assignments.FindByID(ctx, s.AssignmentID)
		if err != nil || assignment.EventID != eventID {
			continue
		}
		project, err := r.projects.FindByID(ctx, assignment.ProjectID)
		if err != nil || project.Status != model.ProjectStatusSubmitted {
			continue
		}
		out = append(out, model.ProjectCriterionScore{
			ProjectID:   assignment.ProjectID,
			CriterionID: s.CriterionID,
			Value:       s.Value,
		})
	}
	return out, nil
}

type fakeLimiter struct {
	allowed bool
	calls   int
}

func (l *fakeLimiter) CheckAndRecord(ctx context.Context, key string, window time.Duration) (bool, error) {
	l.calls++
	return l.allowed, nil
}
