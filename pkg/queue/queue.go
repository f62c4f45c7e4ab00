// Package queue implements the file-backed job store behind the queue:*
// commands. Jobs are YAML envelopes under storage/framework/queue, one
// directory per queue, with a shared failed-job log.
package queue

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Job is one queued unit of work.
type Job struct {
	ID        string         `yaml:"id" json:"id"`
	Queue     string         `yaml:"queue" json:"queue"`
	Name      string         `yaml:"name" json:"name"`
	Payload   map[string]any `yaml:"payload,omitempty" json:"payload,omitempty"`
	Attempts  int            `yaml:"attempts" json:"attempts"`
	CreatedAt time.Time      `yaml:"created_at" json:"created_at"`
}

// FailedJob is a job that exhausted its attempt, with the failure recorded.
type FailedJob struct {
	Job      Job       `yaml:"job" json:"job"`
	Error    string    `yaml:"error" json:"error"`
	FailedAt time.Time `yaml:"failed_at" json:"failed_at"`
}

// Store is a queue store rooted at a directory.
type Store struct {
	root string
}

// NewStore returns a store rooted at dir (storage/framework/queue).
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// Exists reports whether the store's root directory is present on disk.
// Workers check this before polling so a missing store fails fast instead of
// spinning on an empty result.
func (s *Store) Exists() (bool, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat queue store: %w", err)
	}
	return info.IsDir(), nil
}

func (s *Store) queueDir(queue string) string {
	return filepath.Join(s.root, queue)
}

func (s *Store) failedPath() string {
	return filepath.Join(s.root, "failed_jobs.yaml")
}

// Push enqueues a job, assigning an ID and timestamp when missing.
func (s *Store) Push(job Job) (Job, error) {
	if job.Queue == "" {
		job.Queue = "default"
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	dir := s.queueDir(job.Queue)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Job{}, fmt.Errorf("failed to create queue directory: %w", err)
	}
	data, err := yaml.Marshal(job)
	if err != nil {
		return Job{}, fmt.Errorf("failed to encode job: %w", err)
	}
	path := filepath.Join(dir, job.CreatedAt.Format("20060102150405.000000000")+"_"+job.ID+".yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return Job{}, fmt.Errorf("failed to write job: %w", err)
	}
	return job, nil
}

// Pop removes and returns the oldest job on the queue. The second return is
// false when the queue is empty. A malformed envelope is moved straight to
// the failed log and skipped.
func (s *Store) Pop(queue string) (Job, bool, error) {
	dir := s.queueDir(queue)
	for {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return Job{}, false, nil
			}
			return Job{}, false, fmt.Errorf("failed to read queue: %w", err)
		}
		var names []string
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".yaml") {
				names = append(names, e.Name())
			}
		}
		if len(names) == 0 {
			return Job{}, false, nil
		}
		sort.Strings(names)

		path := filepath.Join(dir, names[0])
		data, err := os.ReadFile(path)
		if err != nil {
			return Job{}, false, fmt.Errorf("failed to read job: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return Job{}, false, fmt.Errorf("failed to dequeue job: %w", err)
		}
		var job Job
		if err := yaml.Unmarshal(data, &job); err != nil {
			bad := Job{ID: strings.TrimSuffix(names[0], ".yaml"), Queue: queue, Name: "unknown"}
			if ferr := s.Fail(bad, fmt.Sprintf("malformed job envelope: %v", err)); ferr != nil {
				return Job{}, false, ferr
			}
			continue
		}
		job.Attempts++
		return job, true, nil
	}
}

// Fail appends a job to the failed log.
func (s *Store) Fail(job Job, reason string) error {
	failed, err := s.Failed()
	if err != nil {
		return err
	}
	failed = append(failed, FailedJob{Job: job, Error: reason, FailedAt: time.Now().UTC()})
	return s.writeFailed(failed)
}

// Failed returns the failed-job log, oldest first.
func (s *Store) Failed() ([]FailedJob, error) {
	data, err := os.ReadFile(s.failedPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read failed jobs: %w", err)
	}
	var failed []FailedJob
	if err := yaml.Unmarshal(data, &failed); err != nil {
		return nil, fmt.Errorf("failed to parse failed jobs: %w", err)
	}
	return failed, nil
}

// Retry re-enqueues failed jobs and removes them from the log. An empty id
// retries everything. It returns the jobs re-enqueued.
func (s *Store) Retry(id string) ([]Job, error) {
	failed, err := s.Failed()
	if err != nil {
		return nil, err
	}
	var retried []Job
	remaining := failed[:0]
	for _, f := range failed {
		if id != "" && f.Job.ID != id {
			remaining = append(remaining, f)
			continue
		}
		job := f.Job
		job.CreatedAt = time.Time{}
		pushed, err := s.Push(job)
		if err != nil {
			return retried, err
		}
		retried = append(retried, pushed)
	}
	if id != "" && len(retried) == 0 {
		return nil, fmt.Errorf("no failed job with id %s", id)
	}
	if err := s.writeFailed(remaining); err != nil {
		return retried, err
	}
	return retried, nil
}

// Flush clears the failed-job log and returns how many entries it removed.
func (s *Store) Flush() (int, error) {
	failed, err := s.Failed()
	if err != nil {
		return 0, err
	}
	if len(failed) == 0 {
		return 0, nil
	}
	if err := os.Remove(s.failedPath()); err != nil {
		return 0, fmt.Errorf("failed to clear failed jobs: %w", err)
	}
	return len(failed), nil
}

// Pending counts jobs waiting on a queue.
func (s *Store) Pending(queue string) (int, error) {
	entries, err := os.ReadDir(s.queueDir(queue))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read queue: %w", err)
	}
	count := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".yaml") {
			count++
		}
	}
	return count, nil
}

func (s *Store) writeFailed(failed []FailedJob) error {
	if len(failed) == 0 {
		err := os.Remove(s.failedPath())
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to clear failed jobs: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("failed to create queue directory: %w", err)
	}
	data, err := yaml.Marshal(failed)
	if err != nil {
		return fmt.Errorf("failed to encode failed jobs: %w", err)
	}
	if err := os.WriteFile(s.failedPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write failed jobs: %w", err)
	}
	return nil
}
