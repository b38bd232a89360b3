// Package project persists manufacturing jobs: the stair configuration,
// sheet settings and the last nesting result, saved as indented JSON
// under the user config directory with timestamped backup rotation.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/piwi3910/StairCut/internal/model"
	"github.com/piwi3910/StairCut/internal/pipeline"
	"github.com/piwi3910/StairCut/internal/stair"
)

const (
	jobVersion  = "1.0.0"
	maxBackups  = 5
	timeFormat  = "20060102-150405"
	jobFileMode = 0644
	jobDirMode  = 0755
)

// Job is one saved manufacturing job.
type Job struct {
	Version    string            `json:"version"`
	Name       string            `json:"name"`
	CreatedAt  string            `json:"createdAt"`
	UpdatedAt  string            `json:"updatedAt"`
	Stair      stair.Config      `json:"stair"`
	Sheet      pipeline.SheetSpec `json:"sheet"`
	LastResult *model.NestResult `json:"lastResult,omitempty"`
}

// NewJob creates a job with defaults and creation timestamps set.
func NewJob(name string) Job {
	now := time.Now().UTC().Format(time.RFC3339)
	return Job{
		Version:   jobVersion,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Stair:     stair.DefaultConfig(),
		Sheet:     pipeline.DefaultSheet(),
	}
}

// DefaultJobsDir returns the directory jobs are stored in.
func DefaultJobsDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "staircut", "jobs"), nil
}

// SaveJob writes the job to path, rotating a timestamped backup of any
// existing file first. The job's UpdatedAt is refreshed.
func SaveJob(path string, job Job) error {
	job.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if job.Version == "" {
		job.Version = jobVersion
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, jobDirMode); err != nil {
		return fmt.Errorf("create job directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := rotateBackup(path); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := os.WriteFile(path, data, jobFileMode); err != nil {
		return fmt.Errorf("write job: %w", err)
	}
	return nil
}

// LoadJob reads a job from path.
func LoadJob(path string) (Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, fmt.Errorf("read job: %w", err)
	}
	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return Job{}, fmt.Errorf("parse job: %w", err)
	}
	if job.Version == "" {
		return Job{}, fmt.Errorf("invalid job file: missing version field")
	}
	return job, nil
}

// rotateBackup copies the current file to <path>.<timestamp>.bak and
// prunes old backups beyond maxBackups.
func rotateBackup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read job for backup: %w", err)
	}

	stamp := time.Now().UTC().Format(timeFormat)
	backupPath := fmt.Sprintf("%s.%s.bak", path, stamp)
	if err := os.WriteFile(backupPath, data, jobFileMode); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}

	return pruneBackups(path)
}

// pruneBackups keeps only the newest maxBackups backup files for path.
func pruneBackups(path string) error {
	matches, err := filepath.Glob(path + ".*.bak")
	if err != nil {
		return err
	}
	if len(matches) <= maxBackups {
		return nil
	}

	// Timestamps sort lexicographically, oldest first.
	sort.Strings(matches)
	for _, old := range matches[:len(matches)-maxBackups] {
		if err := os.Remove(old); err != nil {
			return fmt.Errorf("prune backup: %w", err)
		}
	}
	return nil
}

// ListBackups returns the backup files for a job path, newest last.
func ListBackups(path string) ([]string, error) {
	matches, err := filepath.Glob(path + ".*.bak")
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}
