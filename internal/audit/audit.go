package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/hush/internal/configs"
)

// TimestampFormat is the layout of Entry.Timestamp.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry represents a single activity log entry. It never holds a secret,
// an invite code or post plaintext.
type Entry struct {
	Timestamp  string `json:"ts"`   // UTC with microseconds.
	User       string `json:"user"` // Display name at the time of the operation.
	IdentityID string `json:"uuid"` // Identity performing the action.
	Operation  string `json:"op"`   // Operation name.

	// Optional fields depending on operation.
	SpaceID     string `json:"space,omitempty"`       // Every space operation.
	SpaceName   string `json:"space_name,omitempty"`  // For create/join.
	Fingerprint string `json:"fingerprint,omitempty"` // For create/join/rekey.
	PostID      string `json:"post,omitempty"`        // For post.
	PostsCount  int    `json:"posts_count,omitempty"` // For export/import.
	AddedCount  int    `json:"added_count,omitempty"` // For import.
	Path        string `json:"path,omitempty"`        // For export/import.
	Detail      string `json:"detail,omitempty"`      // For identity changes.
}

// Log appends an entry to the activity log.
// If logging fails, it does not return an error.
// Operations should not fail just because activity logging failed.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogWithIdentity returns an entry for op with the identity fields filled in.
func LogWithIdentity(op string, id *configs.Identity) Entry {
	entry := Entry{Operation: op}
	if id == nil {
		return entry
	}
	entry.User = id.DisplayName
	entry.IdentityID = id.ID
	return entry
}

// LogPath returns the path to the activity log file.
// Returns empty string if settings are not initialized.
func LogPath() string {
	if configs.HushSettings == nil {
		return ""
	}
	return configs.HushSettings.ActivityPath()
}

// ReadEntries reads all entries from the activity log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
