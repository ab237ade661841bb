package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityRecord_NewerThan(t *testing.T) {
	rec := &EntityRecord{UpdatedAt: 1000}

	assert.True(t, rec.NewerThan(999))
	// Равная версия не считается более новой
	assert.False(t, rec.NewerThan(1000))
	assert.False(t, rec.NewerThan(1001))
}

func TestEntityRecord_Clone(t *testing.T) {
	rec := &EntityRecord{
		ID:         "task-1",
		OwnerID:    "user-1",
		EntityType: EntityTask,
		Payload:    json.RawMessage(`{"title":"Original"}`),
		UpdatedAt:  1000,
	}

	clone := rec.Clone()
	require.Equal(t, rec, clone)

	// Изменение копии не трогает оригинал
	clone.Payload[2] = 'X'
	assert.JSONEq(t, `{"title":"Original"}`, string(rec.Payload))
}

func TestEntityRecord_MergePayload(t *testing.T) {
	t.Run("patch overrides only named fields", func(t *testing.T) {
		rec := &EntityRecord{
			Payload: json.RawMessage(`{"title":"Buy milk","status":"todo","notes":"2 liters"}`),
		}

		require.NoError(t, rec.MergePayload(json.RawMessage(`{"status":"done"}`)))
		assert.JSONEq(t, `{"title":"Buy milk","status":"done","notes":"2 liters"}`, string(rec.Payload))
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		rec := &EntityRecord{
			Payload: json.RawMessage(`{"title":"Buy milk"}`),
		}

		require.NoError(t, rec.MergePayload(nil))
		assert.JSONEq(t, `{"title":"Buy milk"}`, string(rec.Payload))
	})

	t.Run("merge into empty payload", func(t *testing.T) {
		rec := &EntityRecord{}

		require.NoError(t, rec.MergePayload(json.RawMessage(`{"title":"New"}`)))
		assert.JSONEq(t, `{"title":"New"}`, string(rec.Payload))
	})

	t.Run("patch adds new fields", func(t *testing.T) {
		rec := &EntityRecord{
			Payload: json.RawMessage(`{"title":"Buy milk"}`),
		}

		require.NoError(t, rec.MergePayload(json.RawMessage(`{"due_date":"2026-09-01"}`)))
		assert.JSONEq(t, `{"title":"Buy milk","due_date":"2026-09-01"}`, string(rec.Payload))
	})

	t.Run("invalid patch", func(t *testing.T) {
		rec := &EntityRecord{
			Payload: json.RawMessage(`{"title":"Buy milk"}`),
		}

		assert.Error(t, rec.MergePayload(json.RawMessage(`not json`)))
	})
}
