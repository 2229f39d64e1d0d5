package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/hush/internal/configs"
	"github.com/PolarWolf314/hush/internal/secrets"
	"github.com/PolarWolf314/hush/internal/workflows"
)

func createSpace(t *testing.T, name string) *workflows.CreateSpaceResult {
	t.Helper()
	result, err := workflows.CreateSpace(context.Background(), workflows.CreateSpaceOptions{Name: name})
	if err != nil {
		t.Fatalf("CreateSpace failed: %v", err)
	}
	return result
}

func TestRootShowsBanner(t *testing.T) {
	setupTestEnvironment(t)

	output := mustRunCLI(t)
	if !strings.Contains(output, "hush --help") {
		t.Errorf("Expected welcome hint in output: %s", output)
	}
}

func TestSpaceCreateTruncatesInvite(t *testing.T) {
	setupTestEnvironment(t)

	output := mustRunCLI(t, "space", "create", "Book", "club")
	if !strings.Contains(output, "Created space") || !strings.Contains(output, "Book club") {
		t.Fatalf("Expected success message, got: %s", output)
	}

	list, err := workflows.ListSpaces(context.Background())
	if err != nil {
		t.Fatalf("ListSpaces failed: %v", err)
	}
	if len(list.Spaces) != 1 {
		t.Fatalf("Expected 1 space, got %d", len(list.Spaces))
	}
	secret := list.Spaces[0].Space.Secret
	if strings.Contains(output, secret) {
		t.Errorf("Full secret must not be printed by create: %s", output)
	}
}

func TestSpaceCreateWithoutName(t *testing.T) {
	setupTestEnvironment(t)

	if _, err := runCLI(t, "space", "create"); err == nil {
		t.Fatal("Expected argument error")
	}
}

func TestSpaceInviteReveal(t *testing.T) {
	setupTestEnvironment(t)
	created := createSpace(t, "club")

	output := mustRunCLI(t, "space", "invite")
	if strings.Contains(output, created.Invite) {
		t.Errorf("Invite must be truncated without --reveal: %s", output)
	}
	if !strings.Contains(output, "--reveal") {
		t.Errorf("Expected hint about --reveal: %s", output)
	}

	output = mustRunCLI(t, "space", "invite", "--reveal")
	if !strings.Contains(output, created.Invite) {
		t.Errorf("Expected full invite with --reveal: %s", output)
	}
}

func TestSpaceJoinAndRekeyWarning(t *testing.T) {
	setupTestEnvironment(t)
	created := createSpace(t, "club")

	output := mustRunCLI(t, "space", "join", created.Invite)
	if !strings.Contains(output, "Already a member") {
		t.Errorf("Expected already-member message: %s", output)
	}

	_, secret, err := secrets.NewKeyRing(nil).Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	output = mustRunCLI(t, "space", "join", created.Space.ID+":"+secret)
	if !strings.Contains(output, "rekeyed") {
		t.Errorf("Expected rekey warning: %s", output)
	}
	if strings.Contains(output, secret) {
		t.Errorf("Secret must not be echoed: %s", output)
	}
}

func TestSpaceJoinInvalidCode(t *testing.T) {
	settings := setupTestEnvironment(t)

	output := mustRunCLI(t, "space", "join", "not-a-code")
	if !strings.Contains(output, "not valid") {
		t.Errorf("Expected invalid invite message: %s", output)
	}
	if _, err := os.Stat(settings.StorePath()); !os.IsNotExist(err) {
		t.Errorf("Store must not be written for an invalid invite")
	}
}

func TestSpaceListAndUse(t *testing.T) {
	setupTestEnvironment(t)

	output := mustRunCLI(t, "space", "list")
	if !strings.Contains(output, "No spaces yet") {
		t.Errorf("Expected empty list message: %s", output)
	}

	first := createSpace(t, "first")
	createSpace(t, "second")

	output = mustRunCLI(t, "space", "use", first.Space.ID[:8])
	if !strings.Contains(output, "Now using") {
		t.Errorf("Expected use confirmation: %s", output)
	}

	output = mustRunCLI(t, "space", "list")
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, first.Space.ID) && !strings.HasPrefix(line, "*") {
			t.Errorf("Expected active marker on %q", line)
		}
	}

	output = mustRunCLI(t, "space", "use", "does-not-exist")
	if !strings.Contains(strings.ToLower(output), "space not found") {
		t.Errorf("Expected not found message: %s", output)
	}
}

func TestPostAndFeed(t *testing.T) {
	setupTestEnvironment(t)
	createSpace(t, "club")

	mustRunCLI(t, "identity", "set-name", "Ana")

	output := mustRunCLI(t, "post", "see", "you", "thursday")
	if !strings.Contains(output, "Posted to") {
		t.Errorf("Expected post confirmation: %s", output)
	}

	output = mustRunCLI(t, "feed")
	if !strings.Contains(output, "see you thursday") || !strings.Contains(output, "Ana") {
		t.Errorf("Expected decrypted post in feed: %s", output)
	}

	output = mustRunCLI(t, "feed", "--json")
	start := strings.Index(output, "[")
	if start < 0 {
		t.Fatalf("Expected JSON array in output: %s", output)
	}
	var entries []feedEntry
	if err := json.Unmarshal([]byte(output[start:]), &entries); err != nil {
		t.Fatalf("Invalid JSON output: %v\n%s", err, output)
	}
	if len(entries) != 1 || entries[0].Text != "see you thursday" {
		t.Errorf("Unexpected feed entries: %+v", entries)
	}
}

func TestPostWithoutSpace(t *testing.T) {
	setupTestEnvironment(t)

	output := mustRunCLI(t, "post", "hello")
	if !strings.Contains(output, "No space selected") {
		t.Errorf("Expected no-space message: %s", output)
	}
}

func TestSnapshotExportImport(t *testing.T) {
	setupTestEnvironment(t)
	created := createSpace(t, "club")
	mustRunCLI(t, "post", "hello")

	path := filepath.Join(t.TempDir(), "club.json")
	output := mustRunCLI(t, "snapshot", "export", "-o", path)
	if !strings.Contains(output, "Exported 1 post") {
		t.Errorf("Expected export confirmation: %s", output)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Snapshot file missing: %v", err)
	}
	if strings.Contains(string(data), created.Space.Secret) {
		t.Fatal("Snapshot must not contain the secret")
	}

	// A second device joins and imports.
	setupTestEnvironment(t)
	mustRunCLI(t, "space", "join", created.Invite)

	output = mustRunCLI(t, "snapshot", "import", path, "--dry-run")
	if !strings.Contains(output, "[dry-run]") || !strings.Contains(output, "1 post new") {
		t.Errorf("Expected dry-run summary: %s", output)
	}

	output = mustRunCLI(t, "snapshot", "import", path)
	if !strings.Contains(output, "1 post new") {
		t.Errorf("Expected import summary: %s", output)
	}

	output = mustRunCLI(t, "feed")
	if !strings.Contains(output, "hello") {
		t.Errorf("Expected imported post in feed: %s", output)
	}
}

func TestSnapshotImportInvalid(t *testing.T) {
	setupTestEnvironment(t)
	createSpace(t, "club")

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"posts": "nope"}`), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	output := mustRunCLI(t, "snapshot", "import", path)
	if !strings.Contains(strings.ToLower(output), "invalid snapshot") || !strings.Contains(output, "Nothing was imported") {
		t.Errorf("Expected invalid snapshot message: %s", output)
	}
}

func TestIdentityCommands(t *testing.T) {
	settings := setupTestEnvironment(t)

	output := mustRunCLI(t, "identity", "show")
	if !strings.Contains(output, "remembered") {
		t.Errorf("Expected persistence state: %s", output)
	}

	output = mustRunCLI(t, "identity", "set-name", "   ")
	if !strings.Contains(strings.ToLower(output), "invalid display name") {
		t.Errorf("Expected validation message: %s", output)
	}

	output = mustRunCLI(t, "identity", "persist", "off")
	if !strings.Contains(output, "Identity forgotten") {
		t.Errorf("Expected forget confirmation: %s", output)
	}

	id, err := configs.LoadIdentity()
	if err != nil {
		t.Fatalf("LoadIdentity failed: %v", err)
	}
	if id == nil || id.Persist || id.ID != "" {
		t.Errorf("Expected only the preference in %s, got %+v", settings.IdentityPath(), id)
	}

	output = mustRunCLI(t, "identity", "persist", "maybe")
	if !strings.Contains(output, "Expected") {
		t.Errorf("Expected usage message: %s", output)
	}
}

func TestLogCommand(t *testing.T) {
	setupTestEnvironment(t)

	output := mustRunCLI(t, "log")
	if !strings.Contains(output, "No activity recorded yet") {
		t.Errorf("Expected empty log message: %s", output)
	}

	created := createSpace(t, "club")
	mustRunCLI(t, "post", "hello")

	output = mustRunCLI(t, "log")
	if !strings.Contains(output, "create") || !strings.Contains(output, "post") {
		t.Errorf("Expected create and post entries: %s", output)
	}
	if strings.Contains(output, "hello") || strings.Contains(output, created.Space.Secret) {
		t.Errorf("Log must not contain post text or secrets: %s", output)
	}

	output = mustRunCLI(t, "log", "--operation", "join")
	if !strings.Contains(output, "matching the filters") {
		t.Errorf("Expected no-match message: %s", output)
	}

	output = mustRunCLI(t, "log", "--since", "yesterday")
	if !strings.Contains(strings.ToLower(output), "invalid date format") {
		t.Errorf("Expected date format message: %s", output)
	}
}
