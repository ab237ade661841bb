package models

import (
	"encoding/json"
	"time"
)

// ConflictReason причина, по которой сервер отклонил операцию
type ConflictReason string

const (
	// ReasonAlreadyExists create для уже существующей записи
	ReasonAlreadyExists ConflictReason = "already_exists"
	// ReasonNotFound update для несуществующей записи
	ReasonNotFound ConflictReason = "not_found"
	// ReasonStaleVersion запись была изменена после того, как клиент её читал
	ReasonStaleVersion ConflictReason = "stale_version"
	// ReasonProcessingError неожиданная ошибка при обработке операции
	ReasonProcessingError ConflictReason = "processing_error"
)

// ConflictState состояние конфликта на поверхности разрешения
type ConflictState string

const (
	// ConflictOpen конфликт виден пользователю и ждет решения
	ConflictOpen ConflictState = "open"
	// ConflictResolving попытка разрешения отправлена на сервер
	ConflictResolving ConflictState = "resolving"
	// ConflictResolved конфликт разрешен и снят с поверхности
	ConflictResolved ConflictState = "resolved"
)

// Winner выбор пользователя при ручном разрешении конфликта
type Winner string

const (
	WinnerLocal  Winner = "local"
	WinnerRemote Winner = "remote"
)

// Conflict пара из отклоненной операции и текущего серверного снимка.
// Создается, когда сервер вернул conflict для операции; живет до тех пор,
// пока пользователь не разрешит его вручную или пока последующая успешная
// синхронизация той же сущности не вытеснит его.
// Конфликты никогда не разрешаются автоматически.
type Conflict struct {
	DetectedAt time.Time       `json:"detected_at"`
	ID         string          `json:"id"` // UUID конфликта
	EntityType EntityType      `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Reason     ConflictReason  `json:"reason"`
	State      ConflictState   `json:"state"`
	Local      json.RawMessage `json:"local,omitempty"`  // payload отклоненной операции
	Remote     *EntityRecord   `json:"remote,omitempty"` // серверный снимок на момент отказа
}
