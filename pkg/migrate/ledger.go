package migrate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Record is one applied migration in the ledger.
type Record struct {
	Name      string    `json:"name"`
	Batch     int       `json:"batch"`
	AppliedAt time.Time `json:"applied_at"`
}

// Ledger tracks applied migrations in a JSON file under storage/framework.
// Rollback order is the reverse of apply order within a batch.
type Ledger struct {
	path    string
	Records []Record `json:"records"`
}

// LoadLedger reads the ledger at path, returning an empty ledger when the
// file does not exist yet.
func LoadLedger(path string) (*Ledger, error) {
	l := &Ledger{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("failed to read migration ledger: %w", err)
	}
	if err := json.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("failed to parse migration ledger: %w", err)
	}
	return l, nil
}

// Save writes the ledger back to disk.
func (l *Ledger) Save() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode migration ledger: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write migration ledger: %w", err)
	}
	return nil
}

// Applied returns the set of applied migration names.
func (l *Ledger) Applied() map[string]bool {
	out := make(map[string]bool, len(l.Records))
	for _, r := range l.Records {
		out[r.Name] = true
	}
	return out
}

// NextBatch returns the batch number the next apply run should use.
func (l *Ledger) NextBatch() int {
	max := 0
	for _, r := range l.Records {
		if r.Batch > max {
			max = r.Batch
		}
	}
	return max + 1
}

// MarkApplied records a migration in the given batch.
func (l *Ledger) MarkApplied(name string, batch int) {
	l.Records = append(l.Records, Record{Name: name, Batch: batch, AppliedAt: time.Now().UTC()})
}

// Reset drops every record and writes the empty ledger back. Used when the
// database itself has been recreated and the applied history is stale.
func (l *Ledger) Reset() error {
	l.Records = nil
	return l.Save()
}

// MarkRolledBack removes a migration from the ledger.
func (l *Ledger) MarkRolledBack(name string) {
	out := l.Records[:0]
	for _, r := range l.Records {
		if r.Name != name {
			out = append(out, r)
		}
	}
	l.Records = out
}

// Rollback returns up to steps applied migration names in rollback order,
// most recent first. steps <= 0 means all of them.
func (l *Ledger) Rollback(steps int) []string {
	records := make([]Record, len(l.Records))
	copy(records, l.Records)
	sort.Slice(records, func(i, j int) bool {
		if records[i].Batch != records[j].Batch {
			return records[i].Batch > records[j].Batch
		}
		return records[i].Name > records[j].Name
	})
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	if steps > 0 && steps < len(names) {
		names = names[:steps]
	}
	return names
}

// Find returns the parsed migration matching name.
func Find(migrations []Migration, name string) (Migration, bool) {
	for _, m := range migrations {
		if m.Name == name {
			return m, true
		}
	}
	return Migration{}, false
}
