package api

import "encoding/json"

// ResolveRequest запрос форсированного разрешения конфликта.
// Выбранный payload применяется безусловно, без проверки base_version.
type ResolveRequest struct {
	EntityType string          `json:"entity_type" validate:"required,oneof=task project"`
	EntityID   string          `json:"entity_id" validate:"required,max=64"`
	Winner     string          `json:"winner" validate:"required,oneof=local remote"`
	Local      json.RawMessage `json:"local,omitempty"`
	Remote     json.RawMessage `json:"remote,omitempty"`
}

// ResolveResponse итоговая запись после форсированной записи
type ResolveResponse struct {
	Record Record `json:"record"`
}
