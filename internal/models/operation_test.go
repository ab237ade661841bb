package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperation_Validate(t *testing.T) {
	valid := func() *Operation {
		return &Operation{
			EntityType: EntityTask,
			EntityID:   "task-1",
			Action:     ActionCreate,
			Payload:    json.RawMessage(`{"title":"Test"}`),
		}
	}

	t.Run("valid create", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("valid delete without payload", func(t *testing.T) {
		op := valid()
		op.Action = ActionDelete
		op.Payload = nil
		require.NoError(t, op.Validate())
	})

	t.Run("invalid entity type", func(t *testing.T) {
		op := valid()
		op.EntityType = "note"
		assert.ErrorIs(t, op.Validate(), ErrInvalidEntityType)
	})

	t.Run("missing entity id", func(t *testing.T) {
		op := valid()
		op.EntityID = ""
		assert.ErrorIs(t, op.Validate(), ErrMissingEntityID)
	})

	t.Run("invalid action", func(t *testing.T) {
		op := valid()
		op.Action = "patch"
		assert.ErrorIs(t, op.Validate(), ErrInvalidAction)
	})

	t.Run("create without payload", func(t *testing.T) {
		op := valid()
		op.Payload = nil
		assert.ErrorIs(t, op.Validate(), ErrMissingPayload)
	})

	t.Run("update without payload", func(t *testing.T) {
		op := valid()
		op.Action = ActionUpdate
		op.Payload = nil
		assert.ErrorIs(t, op.Validate(), ErrMissingPayload)
	})
}

func TestEntityType_Valid(t *testing.T) {
	assert.True(t, EntityTask.Valid())
	assert.True(t, EntityProject.Valid())
	assert.False(t, EntityType("note").Valid())
	assert.False(t, EntityType("").Valid())
}

func TestAction_Valid(t *testing.T) {
	assert.True(t, ActionCreate.Valid())
	assert.True(t, ActionUpdate.Valid())
	assert.True(t, ActionDelete.Valid())
	assert.False(t, Action("patch").Valid())
}
