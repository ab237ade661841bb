package models

import (
	"encoding/json"
	"fmt"
)

// EntityRecord представляет авторитетную серверную запись сущности.
// UpdatedAt (unix миллисекунды, назначается только сервером) одновременно
// является версией записи для optimistic concurrency контроля.
// Локальная копия на клиенте — кэш, никогда не источник истины.
type EntityRecord struct {
	ID         string          `json:"id"`
	OwnerID    string          `json:"owner_id"`
	EntityType EntityType      `json:"entity_type"`
	Payload    json.RawMessage `json:"payload"`
	UpdatedAt  int64           `json:"updated_at"` // версия записи, монотонно неубывающая per id
}

// NewerThan reports whether the record's version is strictly newer than base.
// Используется для обнаружения stale_version: кто-то записал после того,
// как клиент последний раз читал запись.
func (r *EntityRecord) NewerThan(base int64) bool {
	return r.UpdatedAt > base
}

// Clone создает глубокую копию записи
func (r *EntityRecord) Clone() *EntityRecord {
	payload := make(json.RawMessage, len(r.Payload))
	copy(payload, r.Payload)

	return &EntityRecord{
		ID:         r.ID,
		OwnerID:    r.OwnerID,
		EntityType: r.EntityType,
		Payload:    payload,
		UpdatedAt:  r.UpdatedAt,
	}
}

// MergePayload applies a partial field set on top of the stored payload.
// Объединение только по верхнеуровневым полям: отсутствующие в patch поля
// сохраняют прежние значения.
func (r *EntityRecord) MergePayload(patch json.RawMessage) error {
	if len(patch) == 0 {
		return nil
	}

	base := map[string]json.RawMessage{}
	if len(r.Payload) > 0 {
		if err := json.Unmarshal(r.Payload, &base); err != nil {
			return fmt.Errorf("failed to unmarshal stored payload: %w", err)
		}
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(patch, &fields); err != nil {
		return fmt.Errorf("failed to unmarshal patch: %w", err)
	}

	for k, v := range fields {
		base[k] = v
	}

	merged, err := json.Marshal(base)
	if err != nil {
		return fmt.Errorf("failed to marshal merged payload: %w", err)
	}

	r.Payload = merged
	return nil
}
