package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"time"

	"github.com/jo-hoe/pngreduce/internal/cache"
	"github.com/jo-hoe/pngreduce/internal/pipeline"
	"github.com/jo-hoe/pngreduce/internal/store"
)

// ErrNoStore is returned by history operations when no database is configured.
var ErrNoStore = errors.New("no reduction store configured")

// ReduceResult carries the reduced image and the dimensions of both sides
// of the operation.
type ReduceResult struct {
	Data           []byte
	OriginalWidth  int
	OriginalHeight int
	ReducedWidth   int
	ReducedHeight  int
	FromCache      bool
}

// CoreService wires the pipeline, the optional result cache and the
// optional reduction history together.
type CoreService struct {
	config *ServiceConfig
	store  store.ReductionStore
	cache  cache.ResultCache
}

func NewCoreService(config *ServiceConfig) *CoreService {
	var reductionStore store.ReductionStore
	if config.Database.Type != "" {
		s, err := store.NewStore(config.Database.Type, config.Database.ConnectionString)
		if err != nil {
			slog.Error("failed to initialize reduction store", "error", err)
			panic(err)
		}
		reductionStore = s
		slog.Info("reduction store initialized", "type", config.Database.Type)
	}

	var resultCache cache.ResultCache
	if config.Cache.Address != "" {
		resultCache = cache.NewRedisCache(
			config.Cache.Address,
			config.Cache.Password,
			config.Cache.DB,
			time.Duration(config.Cache.TTLSeconds)*time.Second,
		)
		slog.Info("result cache enabled",
			"address", config.Cache.Address,
			"ttl_seconds", config.Cache.TTLSeconds)
	}

	return &CoreService{
		config: config,
		store:  reductionStore,
		cache:  resultCache,
	}
}

// ReduceImage runs the reduction pipeline on a PNG. Empty filter and zero
// factor fall back to the configured defaults.
func (s *CoreService) ReduceImage(ctx context.Context, imageData []byte, filter string, factor int) (*ReduceResult, error) {
	if filter == "" {
		filter = s.config.Filter
	}
	if factor == 0 {
		factor = s.config.Factor
	}

	original, err := png.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode PNG image: %w", err)
	}

	// The cache key only covers filter and factor, so a configured custom
	// command list bypasses the cache.
	useCache := s.cache != nil && len(s.config.Commands) == 0
	key := cache.Key(imageData, filter, factor)

	if useCache {
		if data, ok, err := s.cache.Get(ctx, key); err != nil {
			slog.Warn("result cache lookup failed", "error", err)
		} else if ok {
			reduced, err := png.DecodeConfig(bytes.NewReader(data))
			if err != nil {
				slog.Warn("discarding invalid cached result", "error", err)
			} else {
				slog.Debug("serving reduction from cache", "key", key)
				return &ReduceResult{
					Data:           data,
					OriginalWidth:  original.Width,
					OriginalHeight: original.Height,
					ReducedWidth:   reduced.Width,
					ReducedHeight:  reduced.Height,
					FromCache:      true,
				}, nil
			}
		}
	}

	reducedData, err := pipeline.ExecuteCommands(imageData, s.commandConfigs(filter, factor))
	if err != nil {
		return nil, err
	}

	reduced, err := png.DecodeConfig(bytes.NewReader(reducedData))
	if err != nil {
		return nil, fmt.Errorf("pipeline produced invalid PNG output: %w", err)
	}

	if useCache {
		if err := s.cache.Set(ctx, key, reducedData); err != nil {
			slog.Warn("result cache store failed", "error", err)
		}
	}

	if s.store != nil {
		record := &store.Reduction{
			Image:          reducedData,
			OriginalWidth:  original.Width,
			OriginalHeight: original.Height,
			ReducedWidth:   reduced.Width,
			ReducedHeight:  reduced.Height,
		}
		if _, err := s.store.CreateReduction(record); err != nil {
			return nil, fmt.Errorf("failed to record reduction: %w", err)
		}
		slog.Debug("reduction recorded", "id", record.ID)
	}

	return &ReduceResult{
		Data:           reducedData,
		OriginalWidth:  original.Width,
		OriginalHeight: original.Height,
		ReducedWidth:   reduced.Width,
		ReducedHeight:  reduced.Height,
	}, nil
}

func (s *CoreService) commandConfigs(filter string, factor int) []pipeline.CommandConfig {
	if len(s.config.Commands) > 0 {
		configs := make([]pipeline.CommandConfig, 0, len(s.config.Commands))
		for _, c := range s.config.Commands {
			configs = append(configs, pipeline.CommandConfig{Name: c.Name, Params: c.Params})
		}
		return configs
	}

	return []pipeline.CommandConfig{
		{Name: "ReduceCommand", Params: map[string]any{"factor": factor, "filter": filter}},
		{Name: "OptimizeCommand", Params: map[string]any{}},
	}
}

// HasStore reports whether a reduction history is configured.
func (s *CoreService) HasStore() bool {
	return s.store != nil
}

func (s *CoreService) ListReductions() ([]*store.Reduction, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.ListReductions()
}

func (s *CoreService) GetReductionImage(id string) ([]byte, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.GetReductionImage(id)
}

func (s *CoreService) DeleteReduction(id string) error {
	if s.store == nil {
		return ErrNoStore
	}
	return s.store.DeleteReduction(id)
}

func (s *CoreService) Close() error {
	var errs []error
	if s.cache != nil {
		errs = append(errs, s.cache.Close())
	}
	if s.store != nil {
		errs = append(errs, s.store.Close())
	}
	return errors.Join(errs...)
}
