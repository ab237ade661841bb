package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/iudanet/tasksync/internal/models"
	"github.com/iudanet/tasksync/internal/realtime"
	"github.com/iudanet/tasksync/internal/server/storage"
	"github.com/iudanet/tasksync/pkg/api"
)

// ResolveHandler применяет выбранный пользователем исход конфликта.
// Запись форсированная: base_version не проверяется.
type ResolveHandler struct {
	logger    *slog.Logger
	storage   storage.RecordStorage
	validate  *validator.Validate
	broadcast Broadcaster
}

// NewResolveHandler creates a new conflict resolution handler
func NewResolveHandler(logger *slog.Logger, st storage.RecordStorage, broadcast Broadcaster) *ResolveHandler {
	return &ResolveHandler{
		logger:    logger,
		storage:   st,
		validate:  validator.New(),
		broadcast: broadcast,
	}
}

// HandleResolve обрабатывает POST /api/v1/resolve
func (h *ResolveHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
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

	var req api.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode resolve request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.logger.Warn("Invalid resolve request", "error", err)
		http.Error(w, "Invalid resolve request", http.StatusBadRequest)
		return
	}

	winner := req.Local
	if models.Winner(req.Winner) == models.WinnerRemote {
		winner = req.Remote
	}
	if len(winner) == 0 {
		http.Error(w, "Winner payload is empty", http.StatusBadRequest)
		return
	}

	existing, err := h.storage.GetRecord(ctx, req.EntityID)
	if err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
		h.logger.Error("Failed to get record", "entity_id", req.EntityID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if existing != nil && existing.OwnerID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	rec := &models.EntityRecord{
		ID:         req.EntityID,
		OwnerID:    userID,
		EntityType: models.EntityType(req.EntityType),
		Payload:    winner,
		UpdatedAt:  nextVersion(existing),
	}

	// Если запись существует, выбранный payload накладывается поверх —
	// частичный local payload не должен терять незатронутые поля.
	if existing != nil {
		merged := existing.Clone()
		if err := merged.MergePayload(winner); err != nil {
			h.logger.Warn("Failed to merge winner payload", "entity_id", req.EntityID, "error", err)
			http.Error(w, "Invalid winner payload", http.StatusBadRequest)
			return
		}
		rec.Payload = merged.Payload
	}

	if err := h.storage.UpsertRecord(ctx, rec); err != nil {
		h.logger.Error("Failed to upsert record", "entity_id", req.EntityID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("Conflict resolved",
		"user_id", userID,
		"entity_id", req.EntityID,
		"winner", req.Winner,
		"version", rec.UpdatedAt)

	if h.broadcast != nil {
		deviceID := r.Header.Get(DeviceIDHeader)
		msg := realtime.NewEntityUpdated(req.EntityType, req.EntityID, string(models.ActionUpdate), userID, deviceID, rec.Payload, rec.UpdatedAt)
		h.broadcast.BroadcastToUser(userID, msg, deviceID)
	}

	resp := api.ResolveResponse{Record: recordToAPI(rec)}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to encode resolve response", "error", err)
	}
}
