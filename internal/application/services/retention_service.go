package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// RetentionService periodically deletes CSV exports older than the retention window
type RetentionService struct {
	dir       string
	retention time.Duration
	schedule  string
	cron      *cron.Cron
	now       func() time.Time
	mu        sync.Mutex
	running   bool
}

// NewRetentionService creates a new retention service. The schedule accepts
// standard five-field cron expressions and descriptors such as @hourly.
func NewRetentionService(dir string, retention time.Duration, schedule string) (*RetentionService, error) {
	s := &RetentionService{
		dir:       dir,
		retention: retention,
		schedule:  schedule,
		cron:      cron.New(),
		now:       time.Now,
	}
	if _, err := s.cron.AddFunc(schedule, s.runSweep); err != nil {
		return nil, fmt.Errorf("invalid retention schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start begins the background sweeps. A zero retention disables them.
func (s *RetentionService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running || s.retention <= 0 {
		return
	}
	s.running = true
	s.cron.Start()
	log.Printf("⏰ Export retention sweep scheduled (%s, keep %s)", s.schedule, s.retention)
}

// Stop waits for a running sweep to finish and stops the schedule
func (s *RetentionService) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	log.Println("⏰ Export retention sweep stopped")
}

func (s *RetentionService) runSweep() {
	removed, err := s.Sweep()
	if err != nil {
		log.Printf("⚠️  Export retention sweep failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("🧹 Removed %d expired exports from %s", removed, s.dir)
	}
}

// Sweep removes *.csv files in the export directory whose modification time
// is older than the retention window. Other files are left alone.
func (s *RetentionService) Sweep() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := s.now().Add(-s.retention)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), exportFileExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
				log.Printf("⚠️  Failed to remove %s: %v", entry.Name(), err)
				continue
			}
			removed++
		}
	}
	return removed, nil
}
