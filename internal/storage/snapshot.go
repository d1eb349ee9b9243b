package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/mapper"
)

// SnapshotKey is the archive key of a submission sent at the given time
func SnapshotKey(sub *domain.Submission, sentAt time.Time) string {
	return fmt.Sprintf("submissions/%s/sent-%s.json", sub.ID, sentAt.UTC().Format("20060102T150405Z"))
}

// Archiver writes JSON snapshots of sent submissions
type Archiver struct {
	store Storage
}

func NewArchiver(store Storage) *Archiver {
	return &Archiver{store: store}
}

// Archive stores the submission as sent and returns its key
func (a *Archiver) Archive(ctx context.Context, sub *domain.Submission) (string, error) {
	sentAt := time.Now()
	if sub.SentAt != nil {
		sentAt = *sub.SentAt
	}

	data, err := json.MarshalIndent(mapper.ToSubmissionDTO(sub), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := SnapshotKey(sub, sentAt)
	if _, err := a.store.Put(ctx, key, "application/json", bytes.NewReader(data)); err != nil {
		return "", err
	}
	return key, nil
}
