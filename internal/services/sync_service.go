package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
	"github.com/HaeserTec/tennis-manager-sub002/internal/repository"
)

// SnapshotStore persists whole-collection JSON snapshots in a remote bucket.
type SnapshotStore interface {
	Upload(ctx context.Context, object string, content []byte) error
	Download(ctx context.Context, object string) ([]byte, error)
}

// SupabaseSnapshotStore keeps snapshots as objects in a Supabase storage
// bucket, one object per collection.
type SupabaseSnapshotStore struct {
	baseURL    string
	bucket     string
	serviceKey string
	httpClient *http.Client
}

func NewSupabaseSnapshotStore(baseURL, bucket, serviceKey string) *SupabaseSnapshotStore {
	return &SupabaseSnapshotStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		bucket:     bucket,
		serviceKey: serviceKey,
		httpClient: http.DefaultClient,
	}
}

func (s *SupabaseSnapshotStore) Upload(ctx context.Context, object string, content []byte) error {
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, object)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(content))
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("x-upsert", "true")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("upload snapshot: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

func (s *SupabaseSnapshotStore) Download(ctx context.Context, object string) ([]byte, error) {
	downloadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, object)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("download snapshot: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return io.ReadAll(resp.Body)
}

type snapshotEnvelope struct {
	Collection string          `json:"collection"`
	ExportedAt time.Time       `json:"exported_at"`
	Rows       json.RawMessage `json:"rows"`
}

// SyncService pushes whole-collection snapshots to the remote bucket and
// pulls them back, replacing local tables. Conflict resolution is
// last-write-wins at collection granularity: a pull skips any collection
// whose remote snapshot is not newer than the last one this process pushed.
type SyncService struct {
	db    *pgxpool.Pool
	store SnapshotStore

	mu         sync.Mutex
	lastPushed map[string]time.Time
}

func NewSyncService(db *pgxpool.Pool, store SnapshotStore) *SyncService {
	return &SyncService{
		db:         db,
		store:      store,
		lastPushed: make(map[string]time.Time),
	}
}

// syncOrder is the pull replacement order. Parents come before the rows
// that reference them so foreign keys hold while inserting.
var syncOrder = []string{
	"clients",
	"players",
	"sessions",
	"payments",
	"day_events",
	"terms",
	"drills",
	"session_logs",
	"expenses",
}

type SyncResult struct {
	Pushed  []string `json:"pushed,omitempty"`
	Pulled  []string `json:"pulled,omitempty"`
	Skipped []string `json:"skipped,omitempty"`
	Failed  []string `json:"failed,omitempty"`
}

// Push exports every collection. A failing collection is logged and skipped;
// the rest still upload.
func (s *SyncService) Push(ctx context.Context, exportedAt time.Time) (*SyncResult, error) {
	result := &SyncResult{}
	for _, collection := range syncOrder {
		rows, err := s.exportCollection(ctx, collection)
		if err != nil {
			log.Printf("sync push %s: export: %v", collection, err)
			result.Failed = append(result.Failed, collection)
			continue
		}
		envelope := snapshotEnvelope{Collection: collection, ExportedAt: exportedAt, Rows: rows}
		content, err := json.Marshal(envelope)
		if err != nil {
			log.Printf("sync push %s: marshal: %v", collection, err)
			result.Failed = append(result.Failed, collection)
			continue
		}
		if err := s.store.Upload(ctx, collection+".json", content); err != nil {
			log.Printf("sync push %s: %v", collection, err)
			result.Failed = append(result.Failed, collection)
			continue
		}
		s.mu.Lock()
		s.lastPushed[collection] = exportedAt
		s.mu.Unlock()
		result.Pushed = append(result.Pushed, collection)
	}
	return result, nil
}

// Pull downloads every collection snapshot and replaces the local tables in
// one transaction. Missing or stale snapshots are skipped.
func (s *SyncService) Pull(ctx context.Context) (*SyncResult, error) {
	result := &SyncResult{}

	envelopes := make(map[string]snapshotEnvelope)
	for _, collection := range syncOrder {
		content, err := s.store.Download(ctx, collection+".json")
		if err != nil {
			log.Printf("sync pull %s: %v", collection, err)
			result.Failed = append(result.Failed, collection)
			continue
		}
		if content == nil {
			result.Skipped = append(result.Skipped, collection)
			continue
		}
		var envelope snapshotEnvelope
		if err := json.Unmarshal(content, &envelope); err != nil {
			log.Printf("sync pull %s: decode: %v", collection, err)
			result.Failed = append(result.Failed, collection)
			continue
		}
		s.mu.Lock()
		pushed := s.lastPushed[collection]
		s.mu.Unlock()
		if !envelope.ExportedAt.After(pushed) {
			result.Skipped = append(result.Skipped, collection)
			continue
		}
		envelopes[collection] = envelope
	}
	if len(envelopes) == 0 {
		return result, nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for _, collection := range syncOrder {
		envelope, ok := envelopes[collection]
		if !ok {
			continue
		}
		if err := importCollection(ctx, tx, collection, envelope.Rows); err != nil {
			return nil, fmt.Errorf("sync pull %s: %w", collection, err)
		}
		result.Pulled = append(result.Pulled, collection)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *SyncService) exportCollection(ctx context.Context, collection string) (json.RawMessage, error) {
	var value any
	var err error
	switch collection {
	case "clients":
		value, err = repository.NewClientRepository(s.db).ListAll(ctx)
	case "players":
		value, err = repository.NewPlayerRepository(s.db).ListAll(ctx)
	case "sessions":
		value, err = repository.NewSessionRepository(s.db).ListAll(ctx)
	case "payments":
		byClient, listErr := repository.NewPaymentRepository(s.db).ListAll(ctx)
		if listErr != nil {
			return nil, listErr
		}
		flat := make([]models.Payment, 0)
		for _, payments := range byClient {
			flat = append(flat, payments...)
		}
		value = flat
	case "day_events":
		value, err = repository.NewDayEventRepository(s.db).ListAll(ctx)
	case "terms":
		value, err = repository.NewTermRepository(s.db).List(ctx)
	case "drills":
		value, err = repository.NewDrillRepository(s.db).ListAll(ctx)
	case "session_logs":
		value, err = repository.NewSessionLogRepository(s.db).ListAll(ctx)
	case "expenses":
		value, err = repository.NewExpenseRepository(s.db).ListAll(ctx)
	default:
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(value)
}

func importCollection(ctx context.Context, tx repository.DBTX, collection string, rows json.RawMessage) error {
	switch collection {
	case "clients":
		var clients []models.Client
		if err := json.Unmarshal(rows, &clients); err != nil {
			return err
		}
		return repository.NewClientRepository(tx).ReplaceAll(ctx, clients)
	case "players":
		var players []models.Player
		if err := json.Unmarshal(rows, &players); err != nil {
			return err
		}
		return repository.NewPlayerRepository(tx).ReplaceAll(ctx, players)
	case "sessions":
		var sessions []models.TrainingSession
		if err := json.Unmarshal(rows, &sessions); err != nil {
			return err
		}
		return repository.NewSessionRepository(tx).ReplaceAll(ctx, sessions)
	case "payments":
		var payments []models.Payment
		if err := json.Unmarshal(rows, &payments); err != nil {
			return err
		}
		return repository.NewPaymentRepository(tx).ReplaceAll(ctx, payments)
	case "day_events":
		var events []models.DayEvent
		if err := json.Unmarshal(rows, &events); err != nil {
			return err
		}
		return repository.NewDayEventRepository(tx).ReplaceAll(ctx, events)
	case "terms":
		var terms []models.Term
		if err := json.Unmarshal(rows, &terms); err != nil {
			return err
		}
		return repository.NewTermRepository(tx).ReplaceAll(ctx, terms)
	case "drills":
		var drills []models.Drill
		if err := json.Unmarshal(rows, &drills); err != nil {
			return err
		}
		return repository.NewDrillRepository(tx).ReplaceAll(ctx, drills)
	case "session_logs":
		var entries []models.SessionLog
		if err := json.Unmarshal(rows, &entries); err != nil {
			return err
		}
		return repository.NewSessionLogRepository(tx).ReplaceAll(ctx, entries)
	case "expenses":
		var expenses []models.Expense
		if err := json.Unmarshal(rows, &expenses); err != nil {
			return err
		}
		return repository.NewExpenseRepository(tx).ReplaceAll(ctx, expenses)
	default:
		return fmt.Errorf("unknown collection %q", collection)
	}
}
