package api

import "encoding/json"

// Operation представляет одну операцию мутации в батче синхронизации
type Operation struct {
	EntityType  string          `json:"entity_type" validate:"required,oneof=task project"`
	EntityID    string          `json:"entity_id" validate:"required,max=64"`
	Action      string          `json:"action" validate:"required,oneof=create update delete"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	BaseVersion *int64          `json:"base_version,omitempty"` // отсутствует для create и форсированных записей
}

// Record представляет серверную запись сущности на проводе
type Record struct {
	ID         string          `json:"id"`
	OwnerID    string          `json:"owner_id"`
	EntityType string          `json:"entity_type"`
	Payload    json.RawMessage `json:"payload"`
	UpdatedAt  int64           `json:"updated_at"` // unix миллисекунды, версия записи
}

// ConflictInfo описывает отклоненную операцию в ответе синхронизации
type ConflictInfo struct {
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Reason     string          `json:"reason"` // already_exists | not_found | stale_version | processing_error
	Local      json.RawMessage `json:"local,omitempty"`
	Remote     *Record         `json:"remote,omitempty"`
}

// SyncRequest батч операций от клиента
type SyncRequest struct {
	Ops []Operation `json:"ops"`
}

// SyncResponse результат применения батча
type SyncResponse struct {
	Applied       []Record       `json:"applied"`        // записи после успешного применения (с новыми версиями)
	Conflicts     []ConflictInfo `json:"conflicts"`      // отклоненные операции
	ServerVersion int64          `json:"server_version"` // часы сервера на момент окончания батча
}
