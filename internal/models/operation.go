package models

import (
	"encoding/json"
	"time"
)

// EntityType тип синхронизируемой сущности
type EntityType string

const (
	EntityTask    EntityType = "task"
	EntityProject EntityType = "project"
)

// Valid reports whether the entity type is one of the known syncable types.
func (t EntityType) Valid() bool {
	return t == EntityTask || t == EntityProject
}

// Action тип операции мутации
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Valid reports whether the action is one of create/update/delete.
func (a Action) Valid() bool {
	return a == ActionCreate || a == ActionUpdate || a == ActionDelete
}

// Operation представляет отложенную мутацию, записанную в локальную очередь.
// EntityID генерируется на клиенте (UUID) — повторная отправка create
// идемпотентна по построению.
type Operation struct {
	EnqueuedAt  time.Time       `json:"enqueued_at"`            // когда операция попала в очередь
	EntityType  EntityType      `json:"entity_type"`            // task | project
	EntityID    string          `json:"entity_id"`              // стабильный идентификатор сущности
	Action      Action          `json:"action"`                 // create | update | delete
	Payload     json.RawMessage `json:"payload,omitempty"`      // частичный или полный набор полей сущности
	BaseVersion *int64          `json:"base_version,omitempty"` // версия, которую клиент считал актуальной; nil для create и форсированных записей
	Seq         uint64          `json:"seq"`                    // порядковый номер в очереди, присваивается хранилищем
}

// Validate performs the structural checks the queue and the server rely on.
// A malformed operation is a programmer error: it is dropped, not retried.
func (op *Operation) Validate() error {
	if !op.EntityType.Valid() {
		return ErrInvalidEntityType
	}
	if op.EntityID == "" {
		return ErrMissingEntityID
	}
	if !op.Action.Valid() {
		return ErrInvalidAction
	}
	if op.Action != ActionDelete && len(op.Payload) == 0 {
		return ErrMissingPayload
	}
	return nil
}
