package diary

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"time"

	"github.com/ethanbaker/diary/internal/llm"
	"github.com/ethanbaker/diary/internal/store"
	"github.com/ethanbaker/diary/pkg/utils"
)

// Service implements the diary pipeline: entry ingestion and history
// aggregation. It holds no per-request state; the adapters it wraps open and
// release their own connections on every call
type Service struct {
	llm    llm.Client  // nil when no AI credential is configured
	store  store.Store // nil when no store is configured
	prompt *PromptTemplate
}

// NewService wires a Service from configuration. A missing AI credential or
// store URL is not an error here; the affected operations degrade per their
// contracts instead
func NewService(cfg *utils.Config) (*Service, error) {
	client, err := llm.NewClientFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	var st store.Store
	if url := cfg.Get("REDIS_URL"); url != "" {
		redisStore, err := store.NewRedisStore(url)
		if err != nil {
			return nil, err
		}
		st = redisStore
	}

	prompt, err := LoadPromptTemplate(cfg.Get("PROMPT_CONFIG_FILE"))
	if err != nil {
		return nil, err
	}

	return NewServiceWith(client, st, prompt), nil
}

// NewServiceWith builds a Service from explicit collaborators. Tests inject
// fakes here
func NewServiceWith(client llm.Client, st store.Store, prompt *PromptTemplate) *Service {
	if prompt == nil {
		prompt = DefaultPromptTemplate()
	}

	return &Service{
		llm:    client,
		store:  st,
		prompt: prompt,
	}
}

// IngestResult is the outcome of a successful ingestion. PersistErr carries a
// failed best-effort write as a side channel for logging; it never changes
// the caller-visible outcome
type IngestResult struct {
	Analysis   string
	Key        string
	PersistErr error
}

// Ingest validates the diary text, obtains the AI analysis, and persists the
// record best-effort. The analysis is the primary deliverable: a storage
// failure is recorded on the result and logged, nothing more
func (s *Service) Ingest(ctx context.Context, content string) (*IngestResult, error) {
	if content == "" {
		return nil, &ValidationError{Message: "diary content required"}
	}

	if s.llm == nil {
		return nil, &ConfigurationError{Message: "AI API key is not configured"}
	}

	analysis, err := s.llm.Generate(ctx, s.prompt.Render(content))
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	now := time.Now()
	result := &IngestResult{
		Analysis: analysis,
		Key:      StorageKey(now),
	}

	if s.store == nil {
		return result, nil
	}

	record := Record{
		Content:   content,
		AIMessage: analysis,
		CreatedAt: now.Format(time.RFC3339),
	}

	payload, err := json.Marshal(record)
	if err != nil {
		result.PersistErr = &PersistenceError{Op: "marshal", Err: err}
	} else if err := s.store.Put(ctx, result.Key, string(payload)); err != nil {
		result.PersistErr = &PersistenceError{Op: "put", Err: err}
	}

	if result.PersistErr != nil {
		log.Printf("[DIARY]: best-effort persist of %s failed: %v", result.Key, result.PersistErr)
	}

	return result, nil
}

// History returns every stored diary record ordered newest-first. Records
// that are missing or fail to parse are dropped, never fatal; a store read
// failure is. An unconfigured store yields an empty list without any store
// call
func (s *Service) History(ctx context.Context) ([]Record, error) {
	history := []Record{}

	if s.store == nil {
		return history, nil
	}

	keys, err := s.store.Keys(ctx, KeyPrefix)
	if err != nil {
		return nil, &PersistenceError{Op: "keys", Err: err}
	}
	if len(keys) == 0 {
		return history, nil
	}

	values, err := s.store.MultiGet(ctx, keys)
	if err != nil {
		return nil, &PersistenceError{Op: "mget", Err: err}
	}

	type datedRecord struct {
		record    Record
		createdAt time.Time
	}

	parsed := make([]datedRecord, 0, len(values))
	for i, value := range values {
		if value == nil {
			continue
		}

		var record Record
		if err := json.Unmarshal([]byte(*value), &record); err != nil {
			log.Printf("[DIARY]: dropping unparseable record %s: %v", keys[i], err)
			continue
		}

		parsed = append(parsed, datedRecord{
			record:    record,
			createdAt: parseCreatedAt(record.CreatedAt),
		})
	}

	sort.Slice(parsed, func(i, j int) bool {
		return parsed[i].createdAt.After(parsed[j].createdAt)
	})

	for _, entry := range parsed {
		history = append(history, entry.record)
	}

	return history, nil
}
