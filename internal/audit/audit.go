package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PolarWolf314/envseal/internal/utils"
)

// Operations recorded in the log.
const (
	OpSeal = "seal"
	OpOpen = "open"
	OpRun  = "run"
)

// Outcomes recorded in the log.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// TimestampFormat is RFC3339 in UTC with microseconds.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry is one line of the audit log. It never carries passphrases,
// keys or plaintext values.
type Entry struct {
	Timestamp string `json:"ts"`
	ID        string `json:"id"`
	User      string `json:"user"`
	Host      string `json:"host,omitempty"`
	Operation string `json:"op"`

	File     string `json:"file"`               // Source for seal, artifact for open/run.
	Artifact string `json:"artifact,omitempty"` // Written artifact, seal only.
	Outcome  string `json:"outcome"`
	KDF      string `json:"kdf,omitempty"`
	Error    string `json:"error,omitempty"`
}

// NewEntry returns an entry for op with the timestamp, ID and identity
// fields filled in.
func NewEntry(op string) Entry {
	entry := Entry{
		Timestamp: time.Now().UTC().Format(TimestampFormat),
		ID:        uuid.New().String(),
		Operation: op,
	}
	if user, err := utils.GetUsername(); err == nil {
		entry.User = user
	}
	if host, err := utils.GetHostname(); err == nil {
		entry.Host = host
	}
	return entry
}

// Log appends entries to a JSON Lines file.
// A nil or disabled Log discards entries.
type Log struct {
	Path    string
	Enabled bool

	mu sync.Mutex
}

// New returns a Log writing to path.
func New(path string, enabled bool) *Log {
	return &Log{Path: path, Enabled: enabled}
}

// Record appends entry to the log. Failures are returned so callers can
// warn, but an operation must not fail because its audit entry could not
// be written.
func (l *Log) Record(entry Entry) error {
	if l == nil || !l.Enabled || l.Path == "" {
		return nil
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode audit entry: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.Path), 0700); err != nil {
		return fmt.Errorf("failed to create audit log directory: %w", err)
	}

	// #nosec G304 -- Path comes from configuration.
	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

// ReadEntries reads every entry in the log.
// A missing log yields no entries and no error.
func (l *Log) ReadEntries() ([]Entry, error) {
	if l == nil || l.Path == "" {
		return nil, nil
	}

	// #nosec G304 -- Path comes from configuration.
	data, err := os.ReadFile(l.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data. Blank and malformed lines are
// skipped, which tolerates a partially written final line.
func ParseEntries(data []byte) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("failed to read audit log: %w", err)
	}
	return entries, nil
}

// Filter keeps entries matching op (all when op is empty), then the last
// limit of them (all when limit <= 0). Order is preserved.
func Filter(entries []Entry, op string, limit int) []Entry {
	var out []Entry
	for _, e := range entries {
		if op == "" || e.Operation == op {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}
