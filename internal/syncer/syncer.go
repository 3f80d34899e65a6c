// ABOUTME: Pushes and pulls saved content and generation history to a JSON file in a GitHub repo.
// ABOUTME: Every attempt, successful or not, is recorded in the sync history.
package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2389-research/contentai/internal/github"
	"github.com/2389-research/contentai/internal/logging"
	"github.com/2389-research/contentai/internal/models"
	"github.com/2389-research/contentai/internal/storage"
)

// DefaultPath is where the snapshot lives inside the repository.
const DefaultPath = "contentai/data.json"

// SnapshotVersion is written into every pushed snapshot.
const SnapshotVersion = 1

// Remote is the subset of the GitHub client the syncer needs.
type Remote interface {
	GetFile(ctx context.Context, repo, path, ref string) (*github.FileContent, error)
	UpsertFile(ctx context.Context, repo, path string, req github.PutFileRequest) (*github.PutFileResult, error)
}

// Target identifies where snapshots are stored.
type Target struct {
	Repo   string
	Branch string
	Path   string
}

// Validate checks that the target is usable.
func (t Target) Validate() error {
	return models.Validate(
		func() string { return models.RequireNonEmpty("github.repo", t.Repo) },
		func() string {
			if t.Repo == "" {
				return ""
			}
			if err := github.ValidateRepo(t.Repo); err != nil {
				return err.Error()
			}
			return ""
		},
	)
}

// Snapshot is the document stored in the repository.
type Snapshot struct {
	Version      int                       `json:"version"`
	ExportedAt   time.Time                 `json:"exportedAt"`
	SavedContent []models.ContentItem      `json:"savedContent"`
	History      []models.GeneratedContent `json:"history"`
}

// Validate rejects snapshots from a newer version or with entries missing an id.
func (snap Snapshot) Validate() error {
	if snap.Version > SnapshotVersion {
		return fmt.Errorf("snapshot version %d is newer than supported version %d", snap.Version, SnapshotVersion)
	}
	var errs []string
	for i, it := range snap.SavedContent {
		if strings.TrimSpace(it.ID) == "" {
			errs = append(errs, fmt.Sprintf("savedContent[%d] has no id", i))
		}
	}
	for i, d := range snap.History {
		if strings.TrimSpace(d.ID) == "" {
			errs = append(errs, fmt.Sprintf("history[%d] has no id", i))
		}
	}
	if len(errs) > 0 {
		return &models.ValidationError{Errors: errs}
	}
	return nil
}

// Syncer moves snapshots between the local stores and GitHub.
type Syncer struct {
	remote  Remote
	target  Target
	saved   storage.SavedStore
	history storage.HistoryStore
	records storage.SyncHistoryStore
	now     func() time.Time
}

// New creates a syncer. Empty Branch and Path fall back to "main" and DefaultPath.
func New(remote Remote, target Target, saved storage.SavedStore, history storage.HistoryStore, records storage.SyncHistoryStore) *Syncer {
	if target.Branch == "" {
		target.Branch = "main"
	}
	if target.Path == "" {
		target.Path = DefaultPath
	}
	return &Syncer{
		remote:  remote,
		target:  target,
		saved:   saved,
		history: history,
		records: records,
		now:     time.Now,
	}
}

// Target returns the resolved destination.
func (s *Syncer) Target() Target {
	return s.target
}

// Push uploads the local stores, replacing the remote snapshot.
func (s *Syncer) Push(ctx context.Context) (*models.SyncRecord, error) {
	rec := models.NewSyncRecord(models.SyncPush, s.target.Repo, s.target.Branch, s.target.Path)
	err := s.push(ctx, rec)
	return s.finish(ctx, rec, err)
}

func (s *Syncer) push(ctx context.Context, rec *models.SyncRecord) error {
	if err := s.target.Validate(); err != nil {
		return err
	}
	snap := Snapshot{
		Version:      SnapshotVersion,
		ExportedAt:   s.now().UTC(),
		SavedContent: s.saved.List(),
		History:      s.history.List(),
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	res, err := s.remote.UpsertFile(ctx, s.target.Repo, s.target.Path, github.PutFileRequest{
		Message: fmt.Sprintf("contentai sync: %d saved, %d drafts", len(snap.SavedContent), len(snap.History)),
		Content: data,
		Branch:  s.target.Branch,
	})
	if err != nil {
		return err
	}
	rec.CommitSHA = res.CommitSHA
	rec.Items = len(snap.SavedContent) + len(snap.History)
	return nil
}

// Pull downloads the remote snapshot and replaces the local stores with it.
func (s *Syncer) Pull(ctx context.Context) (*models.SyncRecord, error) {
	rec := models.NewSyncRecord(models.SyncPull, s.target.Repo, s.target.Branch, s.target.Path)
	err := s.pull(ctx, rec)
	return s.finish(ctx, rec, err)
}

func (s *Syncer) pull(ctx context.Context, rec *models.SyncRecord) error {
	if err := s.target.Validate(); err != nil {
		return err
	}
	file, err := s.remote.GetFile(ctx, s.target.Repo, s.target.Path, s.target.Branch)
	if err != nil {
		return err
	}
	var snap Snapshot
	if err := json.Unmarshal(file.Content, &snap); err != nil {
		return fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return err
	}

	// Both stores change or neither does.
	prevSaved := s.saved.List()
	if err := s.saved.Replace(snap.SavedContent); err != nil {
		return err
	}
	if err := s.history.Replace(snap.History); err != nil {
		if rbErr := s.saved.Replace(prevSaved); rbErr != nil {
			return errors.Join(err, fmt.Errorf("failed to restore saved content: %w", rbErr))
		}
		return err
	}
	rec.CommitSHA = file.SHA
	rec.Items = len(snap.SavedContent) + len(snap.History)
	return nil
}

func (s *Syncer) finish(ctx context.Context, rec *models.SyncRecord, opErr error) (*models.SyncRecord, error) {
	log := logging.Log(ctx).Layer("sync").Op(rec.Direction).Repo(rec.Repo).Str("branch", rec.Branch).
		Dur("elapsed", time.Since(rec.At))
	if opErr != nil {
		rec.Fail(opErr)
		log.Err(opErr).Warn("sync failed")
	} else {
		rec.Status = models.SyncSuccess
		log.Int("items", rec.Items).Info("sync complete")
	}
	if s.records != nil {
		if err := s.records.Add(*rec); err != nil {
			logging.Log(ctx).Layer("sync").Err(err).Warn("failed to record sync history")
		}
	}
	return rec, opErr
}

// ScheduleSpec turns a frequency name or cron expression into a cron spec.
func ScheduleSpec(frequency string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(frequency)); f {
	case "", "daily":
		return "@daily", nil
	case "hourly":
		return "@hourly", nil
	case "weekly":
		return "@weekly", nil
	default:
		if _, err := cronParser.Parse(frequency); err != nil {
			return "", &models.ValidationError{Errors: []string{fmt.Sprintf("sync_frequency %q is not hourly, daily, weekly, or a cron expression", frequency)}}
		}
		return frequency, nil
	}
}
