package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeSnapshotRefresh = "snapshot:refresh"

// SnapshotRefreshPayload identifies the account whose cached projections
// should be reconciled against the system of record.
type SnapshotRefreshPayload struct {
	AccountID string `json:"accountId"`
}

func NewSnapshotRefreshTask(accountID string) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(SnapshotRefreshPayload{AccountID: accountID})
	if err != nil {
		return nil, nil, err
	}
	opts := []asynq.Option{
		asynq.MaxRetry(3),
		asynq.Queue("default"),
	}
	return asynq.NewTask(TypeSnapshotRefresh, b), opts, nil
}
