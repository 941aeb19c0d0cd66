package service

import (
	"testing"

	"github.com/garydamm/hackathon-manager/internal/common"
	"github.com/garydamm/hackathon-manager/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTeam(t *testing.T) {
	t.Run("creator joins as a participant", func(t *testing.T) {
		w := newTestWorld()

		team, err := w.teamSvc.CreateTeam(w.ctx, w.event.ID, w.outsiderID, CreateTeamRequest{Name: "Late Joiners"})
		require.NoError(t, err)

		member, err := w.teams.IsMember(w.ctx, team.ID, w.outsiderID)
		require.NoError(t, err)
		assert.True(t, member)

		role, err := w.access.RoleOf(w.ctx, w.event.ID, w.outsiderID)
		require.NoError(t, err)
		assert.Equal(t, model.EventRoleParticipant, role)
	})

	t.Run("a judge keeps their judge role when joining", func(t *testing.T) {
		w := newTestWorld()

		_, err := w.teamSvc.CreateTeam(w.ctx, w.event.ID, w.judgeID, CreateTeamRequest{Name: "Judge Squad"})
		require.NoError(t, err)

		role, err := w.access.RoleOf(w.ctx, w.event.ID, w.judgeID)
		require.NoError(t, err)
		assert.Equal(t, model.EventRoleJudge, role)
	})

	t.Run("duplicate name within the event conflicts", func(t *testing.T) {
		w := newTestWorld()
		_, err := w.teamSvc.CreateTeam(w.ctx, w.event.ID, w.outsiderID, CreateTeamRequest{Name: "Team Rocket"})
		require.ErrorIs(t, err, common.ErrConflict)
	})

	t.Run("completed events stop accepting teams", func(t *testing.T) {
		w := newTestWorld()
		w.event.Status = model.EventStatusCompleted

		_, err := w.teamSvc.CreateTeam(w.ctx, w.event.ID, w.outsiderID, CreateTeamRequest{Name: "Too Late"})
		require.ErrorIs(t, err, common.ErrValidation)
	})

	t.Run("name is required", func(t *testing.T) {
		w := newTestWorld()
		_, err := w.teamSvc.CreateTeam(w.ctx, w.event.ID, w.outsiderID, CreateTeamRequest{})
		require.ErrorIs(t, err, common.ErrValidation)
	})
}

func TestJoinTeam(t *testing.T) {
	t.Run("new member is added and granted a role", func(t *testing.T) {
		w := newTestWorld()

		_, err := w.teamSvc.JoinTeam(w.ctx, w.teamID, w.outsiderID)
		require.NoError(t, err)

		member, err := w.teams.IsMember(w.ctx, w.teamID, w.outsiderID)
		require.NoError(t, err)
		assert.True(t, member)
	})

	t.Run("joining twice conflicts", func(t *testing.T) {
		w := newTestWorld()
		_, err := w.teamSvc.JoinTeam(w.ctx, w.teamID, w.memberID)
		require.ErrorIs(t, err, common.ErrConflict)
	})

	t.Run("unknown team", func(t *testing.T) {
		w := newTestWorld()
		_, err := w.teamSvc.JoinTeam(w.ctx, "no-such-team", w.outsiderID)
		require.ErrorIs(t, err, common.ErrNotFound)
	})
}
