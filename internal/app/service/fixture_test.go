package service

import (
	"context"
	"time"

	"github.com/garydamm/hackathon-manager/internal/domain/model"
)

// testWorld wires every service against the in-memory fakes with one event,
// an organizer, a judge and a participant already in place.
type testWorld struct {
	ctx context.Context

	users       *fakeUserRepo
	events      *fakeEventRepo
	roles       *fakeRoleRepo
	teams       *fakeTeamRepo
	projects    *fakeProjectRepo
	criteria    *fakeCriterionRepo
	assignments *fakeAssignmentRepo
	scores      *fakeScoreRepo

	access      *AccessService
	assignment  *AssignmentService
	scoring     *ScoringService
	leaderboard *LeaderboardService
	criteriaSvc *CriteriaService
	eventSvc    *EventService
	teamSvc     *TeamService
	projectSvc  *ProjectService

	event       *model.Event
	organizerID string
	judgeID     string
	memberID    string
	outsiderID  string
	teamID      string
}

func newTestWorld() *testWorld {
	w := &testWorld{
		ctx:         context.Background(),
		users:       newFakeUserRepo(),
		events:      newFakeEventRepo(),
		roles:       newFakeRoleRepo(),
		teams:       newFakeTeamRepo(),
		projects:    newFakeProjectRepo(),
		criteria:    newFakeCriterionRepo(),
		assignments: newFakeAssignmentRepo(),
		organizerID: "user-organizer",
		judgeID:     "user-judge",
		memberID:    "user-member",
		outsiderID:  "user-outsider",
		teamID:      "team-1",
	}
	w.scores = newFakeScoreRepo(w.assignments, w.projects)

	w.access = NewAccessService(w.roles, w.users)
	w.assignment = NewAssignmentService(w.assignments, w.projects, w.events, w.scores, w.access)
	w.scoring = NewScoringService(w.assignments, w.criteria, w.scores)
	w.leaderboard = NewLeaderboardService(w.events, w.projects, w.criteria, w.scores, w.access)
	w.criteriaSvc = NewCriteriaService(w.criteria, w.events, w.access)
	w.eventSvc = NewEventService(w.events, w.users, w.roles, w.access)
	w.teamSvc = NewTeamService(w.teams, w.events, w.roles)
	w.projectSvc = NewProjectService(w.projects, w.teams, w.events, w.access)

	for _, id := range []string{w.organizerID, w.judgeID, w.memberID, w.outsiderID} {
		w.users.users[id] = &model.User{ID: id, Username: id, Email: id + "@example.com", Role: model.RoleUser}
	}

	w.event = &model.Event{
		ID:          "event-1",
		Name:        "Spring Hackathon",
		Slug:        "spring-hackathon",
		Status:      model.EventStatusJudging,
		CreatedByID: w.organizerID,
	}
	w.events.events[w.event.ID] = w.event

	w.roles.Grant(w.ctx, w.event.ID, w.organizerID, model.EventRoleOrganizer)
	w.roles.Grant(w.ctx, w.event.ID, w.judgeID, model.EventRoleJudge)
	w.roles.Grant(w.ctx, w.event.ID, w.memberID, model.EventRoleParticipant)

	w.teams.teams[w.teamID] = &model.Team{ID: w.teamID, EventID: w.event.ID, Name: "Team Rocket"}
	w.teams.members[memberKey{w.teamID, w.memberID}] = true

	return w
}

func (w *testWorld) addSubmittedProject(id, name string) *model.Project {
	now := time.Now()
	teamName := "Team Rocket"
	p := &model.Project{
		ID:          id,
		EventID:     w.event.ID,
		TeamID:      w.teamID,
		Name:        name,
		Status:      model.ProjectStatusSubmitted,
		SubmittedAt: &now,
		TeamName:    &teamName,
	}
	w.projects.projects = append(w.projects.projects, p)
	return p
}

func (w *testWorld) addCriterion(id, name string, maxScore int, weight float64, order int) *model.Criterion {
	c := &model.Criterion{
		ID:           id,
		EventID:      w.event.ID,
		Name:         name,
		MaxScore:     maxScore,
		Weight:       weight,
		DisplayOrder: order,
	}
	w.criteria.criteria = append(w.criteria.criteria, c)
	return c
}

func (w *testWorld) addAssignment(id, judgeID, projectID string) *model.Assignment {
	a := &model.Assignment{
		ID:         id,
		EventID:    w.event.ID,
		JudgeID:    judgeID,
		ProjectID:  projectID,
		AssignedAt: time.Now(),
	}
	w.assignments.assignments = append(w.assignments.assignments, a)
	return a
}
