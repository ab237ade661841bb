package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iudanet/tasksync/internal/models"
	"github.com/iudanet/tasksync/internal/realtime"
	"github.com/iudanet/tasksync/internal/server/storage"
	"github.com/iudanet/tasksync/pkg/api"
)

// DeviceIDHeader заголовок с идентификатором сессии-источника.
// Используется, чтобы не рассылать realtime события обратно отправителю.
const DeviceIDHeader = "X-Device-ID"

// Broadcaster рассылает realtime события остальным сессиям пользователя
type Broadcaster interface {
	BroadcastToUser(userID string, msg *realtime.Message, excludeDeviceID string)
}

// ProgressScheduler планирует асинхронный пересчет прогресса проекта.
// Пересчет не должен блокировать и не может провалить ответ синхронизации.
type ProgressScheduler interface {
	Schedule(ownerID, projectID string)
}

// SyncHandler применяет батчи операций к хранилищу записей
// с optimistic concurrency проверками.
type SyncHandler struct {
	logger    *slog.Logger
	storage   storage.RecordStorage
	validate  *validator.Validate
	broadcast Broadcaster
	progress  ProgressScheduler
}

// NewSyncHandler creates a new reconciliation handler.
// broadcast и progress могут быть nil (например, в тестах).
func NewSyncHandler(logger *slog.Logger, st storage.RecordStorage, broadcast Broadcaster, progress ProgressScheduler) *SyncHandler {
	return &SyncHandler{
		logger:    logger,
		storage:   st,
		validate:  validator.New(),
		broadcast: broadcast,
		progress:  progress,
	}
}

// HandleSync обрабатывает POST /api/v1/sync.
// Операции батча применяются последовательно, каждая в своей транзакции;
// ошибка одной операции не прерывает обработку остальных.
func (h *SyncHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("User ID not found in context")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req api.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode sync request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	deviceID := r.Header.Get(DeviceIDHeader)

	h.logger.Info("Sync request",
		"user_id", userID,
		"device_id", deviceID,
		"ops_count", len(req.Ops))

	resp := api.SyncResponse{
		Applied:   []api.Record{},
		Conflicts: []api.ConflictInfo{},
	}

	for _, op := range req.Ops {
		rec, conflict := h.applyOp(ctx, userID, op)
		if conflict != nil {
			resp.Conflicts = append(resp.Conflicts, *conflict)
			continue
		}

		resp.Applied = append(resp.Applied, recordToAPI(rec))
		h.notifyApplied(userID, deviceID, op, rec)
	}

	resp.ServerVersion = time.Now().UnixMilli()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to encode sync response", "error", err)
	}

	h.logger.Info("Sync completed",
		"user_id", userID,
		"applied", len(resp.Applied),
		"conflicts", len(resp.Conflicts))
}

// applyOp применяет одну операцию. Возвращает либо итоговую запись,
// либо конфликт; паника внутри операции превращается в processing_error,
// чтобы одна плохая операция не завалила весь батч.
func (h *SyncHandler) applyOp(ctx context.Context, userID string, op api.Operation) (rec *models.EntityRecord, conflict *api.ConflictInfo) {
	defer func() {
		if p := recover(); p != nil {
			h.logger.Error("Panic while applying operation",
				"entity_id", op.EntityID,
				"action", op.Action,
				"panic", p)
			rec = nil
			conflict = h.conflictFor(op, models.ReasonProcessingError, nil)
		}
	}()

	if err := h.validate.Struct(op); err != nil {
		h.logger.Warn("Malformed operation",
			"entity_id", op.EntityID,
			"action", op.Action,
			"error", err)
		return nil, h.conflictFor(op, models.ReasonProcessingError, nil)
	}

	switch models.Action(op.Action) {
	case models.ActionCreate:
		return h.applyCreate(ctx, userID, op)
	case models.ActionUpdate:
		return h.applyUpdate(ctx, userID, op)
	case models.ActionDelete:
		return h.applyDelete(ctx, userID, op)
	default:
		// validator уже отсек неизвестные action, сюда попадать не должны
		return nil, h.conflictFor(op, models.ReasonProcessingError, nil)
	}
}

func (h *SyncHandler) applyCreate(ctx context.Context, userID string, op api.Operation) (*models.EntityRecord, *api.ConflictInfo) {
	existing, err := h.storage.GetRecord(ctx, op.EntityID)
	if err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
		h.logger.Error("Failed to check existing record", "entity_id", op.EntityID, "error", err)
		return nil, h.conflictFor(op, models.ReasonProcessingError, nil)
	}

	// Повторная доставка create для уже существующей записи — конфликт
	// already_exists, а не дубликат строки: create идемпотентен по entity_id.
	if existing != nil {
		return nil, h.conflictFor(op, models.ReasonAlreadyExists, existing)
	}

	rec := &models.EntityRecord{
		ID:         op.EntityID,
		OwnerID:    userID,
		EntityType: models.EntityType(op.EntityType),
		Payload:    op.Payload,
		UpdatedAt:  nextVersion(nil),
	}

	if err := h.storage.InsertRecord(ctx, rec); err != nil {
		if errors.Is(err, storage.ErrRecordExists) {
			// Гонка между GetRecord и InsertRecord: другой батч успел первым
			if cur, gerr := h.storage.GetRecord(ctx, op.EntityID); gerr == nil {
				return nil, h.conflictFor(op, models.ReasonAlreadyExists, cur)
			}
			return nil, h.conflictFor(op, models.ReasonAlreadyExists, nil)
		}
		h.logger.Error("Failed to insert record", "entity_id", op.EntityID, "error", err)
		return nil, h.conflictFor(op, models.ReasonProcessingError, nil)
	}

	return rec, nil
}

func (h *SyncHandler) applyUpdate(ctx context.Context, userID string, op api.Operation) (*models.EntityRecord, *api.ConflictInfo) {
	existing, err := h.storage.GetRecord(ctx, op.EntityID)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			return nil, h.conflictFor(op, models.ReasonNotFound, nil)
		}
		h.logger.Error("Failed to get record", "entity_id", op.EntityID, "error", err)
		return nil, h.conflictFor(op, models.ReasonProcessingError, nil)
	}

	// Чужая запись неотличима от отсутствующей
	if existing.OwnerID != userID {
		return nil, h.conflictFor(op, models.ReasonNotFound, nil)
	}

	// Optimistic concurrency: если запись менялась после того, как клиент
	// её читал — отклоняем, не трогая запись. BaseVersion == nil означает
	// форсированную запись без проверки.
	if op.BaseVersion != nil && existing.NewerThan(*op.BaseVersion) {
		return nil, h.conflictFor(op, models.ReasonStaleVersion, existing)
	}

	rec := existing.Clone()
	if err := rec.MergePayload(op.Payload); err != nil {
		h.logger.Warn("Failed to merge payload", "entity_id", op.EntityID, "error", err)
		return nil, h.conflictFor(op, models.ReasonProcessingError, existing)
	}
	rec.UpdatedAt = nextVersion(existing)

	if err := h.storage.UpdateRecord(ctx, rec); err != nil {
		h.logger.Error("Failed to update record", "entity_id", op.EntityID, "error", err)
		return nil, h.conflictFor(op, models.ReasonProcessingError, existing)
	}

	return rec, nil
}

func (h *SyncHandler) applyDelete(ctx context.Context, userID string, op api.Operation) (*models.EntityRecord, *api.ConflictInfo) {
	existing, err := h.storage.GetRecord(ctx, op.EntityID)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			// Delete идемпотентен: отсутствующая запись считается уже удаленной
			return &models.EntityRecord{
				ID:         op.EntityID,
				OwnerID:    userID,
				EntityType: models.EntityType(op.EntityType),
				UpdatedAt:  time.Now().UnixMilli(),
			}, nil
		}
		h.logger.Error("Failed to get record", "entity_id", op.EntityID, "error", err)
		return nil, h.conflictFor(op, models.ReasonProcessingError, nil)
	}

	if existing.OwnerID != userID {
		return nil, h.conflictFor(op, models.ReasonNotFound, nil)
	}

	if err := h.storage.DeleteRecord(ctx, op.EntityID); err != nil {
		h.logger.Error("Failed to delete record", "entity_id", op.EntityID, "error", err)
		return nil, h.conflictFor(op, models.ReasonProcessingError, existing)
	}

	// Возвращаем снимок удаленной записи, чтобы клиент мог снести кэш
	// и запланировать пересчет прогресса проекта.
	deleted := existing.Clone()
	deleted.UpdatedAt = nextVersion(existing)
	return deleted, nil
}

// notifyApplied рассылает событие об изменении и планирует пересчет
// производного статуса проекта. Оба действия best-effort.
func (h *SyncHandler) notifyApplied(userID, deviceID string, op api.Operation, rec *models.EntityRecord) {
	if h.broadcast != nil {
		msg := realtime.NewEntityUpdated(op.EntityType, op.EntityID, op.Action, userID, deviceID, rec.Payload, rec.UpdatedAt)
		h.broadcast.BroadcastToUser(userID, msg, deviceID)
	}

	if h.progress != nil && rec.EntityType == models.EntityTask {
		var task models.TaskPayload
		if err := json.Unmarshal(rec.Payload, &task); err == nil && task.ProjectID != "" {
			h.progress.Schedule(userID, task.ProjectID)
		}
	}
}

// conflictFor собирает ConflictInfo для отклоненной операции
func (h *SyncHandler) conflictFor(op api.Operation, reason models.ConflictReason, remote *models.EntityRecord) *api.ConflictInfo {
	c := &api.ConflictInfo{
		EntityType: op.EntityType,
		EntityID:   op.EntityID,
		Reason:     string(reason),
		Local:      op.Payload,
	}
	if remote != nil {
		r := recordToAPI(remote)
		c.Remote = &r
	}
	return c
}

// nextVersion назначает новую версию записи. Версия — это updated_at
// в unix миллисекундах по часам сервера; clamp гарантирует строгую
// монотонность per id даже при нескольких записях в одну миллисекунду.
func nextVersion(prev *models.EntityRecord) int64 {
	now := time.Now().UnixMilli()
	if prev != nil && prev.UpdatedAt >= now {
		return prev.UpdatedAt + 1
	}
	return now
}

// recordToAPI конвертирует внутреннюю запись в wire формат
func recordToAPI(rec *models.EntityRecord) api.Record {
	return api.Record{
		ID:         rec.ID,
		OwnerID:    rec.OwnerID,
		EntityType: string(rec.EntityType),
		Payload:    rec.Payload,
		UpdatedAt:  rec.UpdatedAt,
	}
}
