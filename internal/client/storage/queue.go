package storage

import (
	"context"

	"github.com/iudanet/tasksync/internal/models"
)

//go:generate moq -out queue_mock.go . QueueStorage

// QueueStorage defines the interface for the durable mutation queue.
// Очередь упорядочена по вставке: операции над одной сущностью
// воспроизводятся на сервере строго в исходном порядке, поэтому update
// никогда не уйдет раньше create той же сущности.
type QueueStorage interface {
	// Enqueue атомарно дописывает операцию в хвост очереди
	// и возвращает присвоенный порядковый номер.
	Enqueue(ctx context.Context, op *models.Operation) (uint64, error)

	// PeekBatch возвращает до max операций в порядке вставки,
	// не удаляя их из очереди. Поврежденные (нечитаемые) записи
	// удаляются на месте: одна битая операция не должна навечно
	// заблокировать все последующие.
	PeekBatch(ctx context.Context, max int) ([]*models.Operation, error)

	// Commit удаляет операции с указанными номерами.
	// Вызывается после терминального исхода (applied или conflict).
	Commit(ctx context.Context, seqs []uint64) error

	// Requeue помечает операции как оставшиеся в очереди после
	// неудачной попытки (инкремент счетчика попыток батча не нужен —
	// сами операции остаются на месте, т.к. PeekBatch недеструктивен).
	Requeue(ctx context.Context, seqs []uint64) error

	// Len возвращает число операций в очереди (для UI индикатора)
	Len(ctx context.Context) (int, error)
}
