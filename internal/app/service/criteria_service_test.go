package service

import (
	"testing"

	"github.com/garydamm/hackathon-manager/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriteriaService(t *testing.T) {
	t.Run("list is ordered by display order", func(t *testing.T) {
		w := newTestWorld()
		w.addCriterion("crit-b", "Design", 10, 1, 2)
		w.addCriterion("crit-a", "Innovation", 10, 1, 1)
		w.addCriterion("crit-c", "Impact", 10, 1, 3)

		criteria, err := w.criteriaSvc.ListCriteria(w.ctx, w.event.ID)
		require.NoError(t, err)
		require.Len(t, criteria, 3)
		assert.Equal(t, []string{"crit-a", "crit-b", "crit-c"},
			[]string{criteria[0].ID, criteria[1].ID, criteria[2].ID})
	})

	t.Run("only organizers create criteria", func(t *testing.T) {
		w := newTestWorld()

		_, err := w.criteriaSvc.CreateCriterion(w.ctx, w.event.ID, w.memberID, CriterionRequest{
			Name: "Innovation", MaxScore: 10, Weight: 1,
		})
		require.ErrorIs(t, err, common.ErrForbidden)

		created, err := w.criteriaSvc.CreateCriterion(w.ctx, w.event.ID, w.organizerID, CriterionRequest{
			Name: "Innovation", MaxScore: 10, Weight: 1.5, DisplayOrder: 1,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, w.event.ID, created.EventID)
	})

	t.Run("rejects malformed rubrics", func(t *testing.T) {
		w := newTestWorld()

		_, err := w.criteriaSvc.CreateCriterion(w.ctx, w.event.ID, w.organizerID, CriterionRequest{
			Name: "", MaxScore: 10, Weight: 1,
		})
		require.ErrorIs(t, err, common.ErrValidation)

		_, err = w.criteriaSvc.CreateCriterion(w.ctx, w.event.ID, w.organizerID, CriterionRequest{
			Name: "Innovation", MaxScore: 0, Weight: 1,
		})
		require.ErrorIs(t, err, common.ErrValidation)

		_, err = w.criteriaSvc.CreateCriterion(w.ctx, w.event.ID, w.organizerID, CriterionRequest{
			Name: "Innovation", MaxScore: 10, Weight: 0,
		})
		require.ErrorIs(t, err, common.ErrValidation)

		_, err = w.criteriaSvc.CreateCriterion(w.ctx, w.event.ID, w.organizerID, CriterionRequest{
			Name: "Innovation", MaxScore: 10, Weight: -2,
		})
		require.ErrorIs(t, err, common.ErrValidation)
	})

	t.Run("organizer updates a criterion", func(t *testing.T) {
		w := newTestWorld()
		w.addCriterion("crit-a", "Innovation", 10, 1, 1)

		updated, err := w.criteriaSvc.UpdateCriterion(w.ctx, "crit-a", w.organizerID, CriterionRequest{
			Name: "Novelty", MaxScore: 5, Weight: 2, DisplayOrder: 4,
		})
		require.NoError(t, err)
		assert.Equal(t, "Novelty", updated.Name)
		assert.Equal(t, 5, updated.MaxScore)

		_, err = w.criteriaSvc.UpdateCriterion(w.ctx, "crit-a", w.memberID, CriterionRequest{
			Name: "Hijacked", MaxScore: 1, Weight: 1,
		})
		require.ErrorIs(t, err, common.ErrForbidden)
	})

	t.Run("delete is refused once scores reference the criterion", func(t *testing.T) {
		w := newTestWorld()
		w.addCriterion("crit-a", "Innovation", 10, 1, 1)
		w.criteria.scored["crit-a"] = true

		err := w.criteriaSvc.DeleteCriterion(w.ctx, "crit-a", w.organizerID)
		require.ErrorIs(t, err, common.ErrConflict)
	})

	t.Run("unreferenced criteria delete cleanly", func(t *testing.T) {
		w := newTestWorld()
		w.addCriterion("crit-a", "Innovation", 10, 1, 1)

		require.NoError(t, w.criteriaSvc.DeleteCriterion(w.ctx, "crit-a", w.organizerID))
		criteria, err := w.criteriaSvc.ListCriteria(w.ctx, w.event.ID)
		require.NoError(t, err)
		assert.Empty(t, criteria)
	})

	t.Run("unknown event and criterion", func(t *testing.T) {
		w := newTestWorld()
		_, err := w.criteriaSvc.ListCriteria(w.ctx, "no-such-event")
		require.ErrorIs(t, err, common.ErrNotFound)

		err = w.criteriaSvc.DeleteCriterion(w.ctx, "no-such-criterion", w.organizerID)
		require.ErrorIs(t, err, common.ErrNotFound)
	})
}
