package store

import (
	"fmt"
	"log/slog"
)

func NewStore(storeType, connectionString string) (reductionStore ReductionStore, err error) {
	switch storeType {
	case "sqlite":
		reductionStore, err = NewSQLiteStore(connectionString)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", storeType)
	}

	// Ensure the schema exists before first use
	slog.Debug("initializing reduction store schema", "type", storeType)
	if err = reductionStore.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize reduction store: %w", err)
	}

	return reductionStore, nil
}
