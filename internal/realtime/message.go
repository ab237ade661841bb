// Package realtime содержит общий формат сообщений realtime-канала.
// Канал — best-effort подсказка для UI: полученное событие должно приводить
// к перечитыванию данных, но никогда не используется как источник истины
// при разрешении конфликтов.
package realtime

import (
	"encoding/json"
	"time"
)

// MessageType тип realtime события
type MessageType string

const (
	// TypeEntityUpdated сущность изменена другой сессией
	TypeEntityUpdated MessageType = "entity_updated"
	// TypeUserPresence пользователь открыл/закрыл сущность
	TypeUserPresence MessageType = "user_presence"
	// TypeUserTyping пользователь редактирует сущность
	TypeUserTyping MessageType = "user_typing"
	// TypeHeartbeat периодический keepalive от клиента, без payload
	TypeHeartbeat MessageType = "heartbeat"
)

// Message конверт realtime сообщения
type Message struct {
	Timestamp time.Time       `json:"timestamp"`
	Type      MessageType     `json:"type"`
	Entity    string          `json:"entity,omitempty"` // task | project
	EntityID  string          `json:"entity_id,omitempty"`
	Action    string          `json:"action,omitempty"` // create | update | delete
	UserID    string          `json:"user_id,omitempty"`
	DeviceID  string          `json:"device_id,omitempty"` // сессия-источник, исключается из рассылки
	Data      json.RawMessage `json:"data,omitempty"`
	Version   int64           `json:"version,omitempty"`
}

// NewEntityUpdated собирает событие об изменении сущности
func NewEntityUpdated(entity, entityID, action, userID, deviceID string, data json.RawMessage, version int64) *Message {
	return &Message{
		Type:      TypeEntityUpdated,
		Entity:    entity,
		EntityID:  entityID,
		Action:    action,
		UserID:    userID,
		DeviceID:  deviceID,
		Data:      data,
		Version:   version,
		Timestamp: time.Now(),
	}
}

// NewHeartbeat собирает keepalive сообщение
func NewHeartbeat(deviceID string) *Message {
	return &Message{
		Type:      TypeHeartbeat,
		DeviceID:  deviceID,
		Timestamp: time.Now(),
	}
}

// Encode сериализует сообщение в JSON
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode разбирает сообщение из JSON
func Decode(data []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
