package workflows

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PolarWolf314/hush/internal/audit"
	"github.com/PolarWolf314/hush/internal/clock"
	"github.com/PolarWolf314/hush/internal/configs"
	kerrors "github.com/PolarWolf314/hush/internal/errors"
	"github.com/PolarWolf314/hush/internal/feed"
	"github.com/PolarWolf314/hush/internal/invite"
	"github.com/PolarWolf314/hush/internal/secrets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// device points settings at a fresh pair of directories, simulating one
// installation.
func device(t *testing.T) *configs.Settings {
	t.Helper()
	root := t.TempDir()
	s := &configs.Settings{
		ConfigDir: filepath.Join(root, "config"),
		DataDir:   filepath.Join(root, "data"),
	}
	use(t, s)
	return s
}

func use(t *testing.T, s *configs.Settings) {
	t.Helper()
	original := configs.HushSettings
	originalClock := Clock
	configs.HushSettings = s
	Clock = clock.Fixed(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	t.Cleanup(func() {
		configs.HushSettings = original
		Clock = originalClock
	})
}

func TestCreateSpaceBecomesActiveAndPersists(t *testing.T) {
	ctx := context.Background()
	settings := device(t)

	created, err := CreateSpace(ctx, CreateSpaceOptions{Name: "Book club", Description: "weekly"})
	require.NoError(t, err)
	assert.Equal(t, "Book club", created.Space.Name)
	assert.Len(t, created.Fingerprint, 12)

	id, secret, err := invite.Decode(created.Invite)
	require.NoError(t, err)
	assert.Equal(t, created.Space.ID, id)
	assert.Equal(t, created.Space.Secret, secret)

	listed, err := ListSpaces(ctx)
	require.NoError(t, err)
	require.Len(t, listed.Spaces, 1)
	assert.True(t, listed.Spaces[0].Active)
	assert.Equal(t, created.Fingerprint, listed.Spaces[0].Fingerprint)

	info, err := os.Stat(settings.StorePath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestCreateSpaceRejectsBlankName(t *testing.T) {
	settings := device(t)

	_, err := CreateSpace(context.Background(), CreateSpaceOptions{Name: "  "})
	assert.ErrorIs(t, err, kerrors.ErrInvalidSpaceName)

	_, err = os.Stat(settings.StorePath())
	assert.True(t, os.IsNotExist(err), "store must not be written")
}

func TestPostAndFeedAcrossDevices(t *testing.T) {
	ctx := context.Background()

	alice := device(t)
	created, err := CreateSpace(ctx, CreateSpaceOptions{Name: "S1"})
	require.NoError(t, err)
	_, err = SetDisplayName(ctx, SetDisplayNameOptions{Name: "Alice"})
	require.NoError(t, err)

	posted, err := Post(ctx, PostOptions{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", posted.Post.AuthorName)
	assert.NotContains(t, string(posted.Post.Ciphertext), "hello")

	exported, err := ExportSnapshot(ctx, ExportSnapshotOptions{OutputPath: StdoutPath})
	require.NoError(t, err)
	assert.Equal(t, 1, exported.PostCount)
	assert.NotContains(t, string(exported.Data), created.Space.Secret)

	storeData, err := os.ReadFile(alice.StorePath())
	require.NoError(t, err)
	assert.NotContains(t, string(storeData), "hello")

	// Bob joins with the invite and imports Alice's snapshot.
	device(t)
	joined, err := JoinSpace(ctx, JoinSpaceOptions{Code: created.Invite})
	require.NoError(t, err)
	assert.False(t, joined.AlreadyKnown)
	assert.Equal(t, created.Fingerprint, joined.Fingerprint)

	imported, err := ImportSnapshot(ctx, ImportSnapshotOptions{Data: exported.Data})
	require.NoError(t, err)
	assert.Equal(t, 1, imported.Added)

	view, err := Feed(ctx, FeedOptions{})
	require.NoError(t, err)
	require.Len(t, view.Posts, 1)
	assert.Equal(t, "hello", view.Posts[0].Plaintext)
	assert.False(t, view.Posts[0].DecryptionFailed)
	assert.Equal(t, 0, view.Failed)

	// Importing the same snapshot again adds nothing.
	again, err := ImportSnapshot(ctx, ImportSnapshotOptions{Data: exported.Data})
	require.NoError(t, err)
	assert.Equal(t, 0, again.Added)
	assert.Equal(t, 1, again.Total)
}

func TestRejoinWithNewSecretRekeysAndKeepsPosts(t *testing.T) {
	ctx := context.Background()
	device(t)

	created, err := CreateSpace(ctx, CreateSpaceOptions{Name: "S1"})
	require.NoError(t, err)
	_, err = Post(ctx, PostOptions{Text: "under the old key"})
	require.NoError(t, err)

	_, secret, err := secrets.NewKeyRing(nil).Generate()
	require.NoError(t, err)
	code, err := invite.Encode(created.Space.ID, secret)
	require.NoError(t, err)

	joined, err := JoinSpace(ctx, JoinSpaceOptions{Code: code})
	require.NoError(t, err)
	assert.True(t, joined.AlreadyKnown)
	assert.True(t, joined.Rekeyed)
	assert.Equal(t, created.Fingerprint, joined.PreviousFingerprint)
	assert.NotEqual(t, created.Fingerprint, joined.Fingerprint)
	assert.Equal(t, "S1", joined.Space.Name)

	_, err = Post(ctx, PostOptions{Text: "under the new key"})
	require.NoError(t, err)

	view, err := Feed(ctx, FeedOptions{})
	require.NoError(t, err)
	require.Len(t, view.Posts, 2)
	assert.Equal(t, 1, view.Failed)

	var texts []string
	for _, p := range view.Posts {
		texts = append(texts, p.Plaintext)
	}
	assert.ElementsMatch(t, []string{"under the new key", feed.UndecryptablePlaceholder}, texts)

	activity, err := Activity(ctx, ActivityOptions{Operations: "rekey"})
	require.NoError(t, err)
	require.Len(t, activity.Entries, 1)
	assert.Equal(t, joined.Fingerprint, activity.Entries[0].Fingerprint)
}

func TestJoinInvalidCodeStoresNothing(t *testing.T) {
	settings := device(t)

	_, err := JoinSpace(context.Background(), JoinSpaceOptions{Code: "nonsense"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidInviteFormat)

	_, err = JoinSpace(context.Background(), JoinSpaceOptions{Code: "id:short"})
	assert.ErrorIs(t, err, kerrors.ErrMalformedSecret)

	_, err = os.Stat(settings.StorePath())
	assert.True(t, os.IsNotExist(err))
}

func TestPostWithoutActiveSpace(t *testing.T) {
	device(t)

	_, err := Post(context.Background(), PostOptions{Text: "hi"})
	assert.ErrorIs(t, err, kerrors.ErrNoActiveSpace)
}

func TestPostValidation(t *testing.T) {
	ctx := context.Background()
	device(t)
	_, err := CreateSpace(ctx, CreateSpaceOptions{Name: "S1"})
	require.NoError(t, err)

	_, err = Post(ctx, PostOptions{Text: "   "})
	assert.ErrorIs(t, err, kerrors.ErrEmptyPost)

	_, err = Post(ctx, PostOptions{Text: strings.Repeat("x", feed.MaxPostLength+1)})
	assert.ErrorIs(t, err, kerrors.ErrPostTooLong)

	view, err := Feed(ctx, FeedOptions{})
	require.NoError(t, err)
	assert.Empty(t, view.Posts)
}

func TestUseSpaceByPrefix(t *testing.T) {
	ctx := context.Background()
	device(t)

	first, err := CreateSpace(ctx, CreateSpaceOptions{Name: "first"})
	require.NoError(t, err)
	_, err = CreateSpace(ctx, CreateSpaceOptions{Name: "second"})
	require.NoError(t, err)

	used, err := UseSpace(ctx, UseSpaceOptions{SpaceID: first.Space.ID[:13]})
	require.NoError(t, err)
	assert.Equal(t, first.Space.ID, used.Space.ID)

	shown, err := ShowInvite(ctx, ShowInviteOptions{})
	require.NoError(t, err)
	assert.Equal(t, first.Invite, shown.Invite)

	_, err = UseSpace(ctx, UseSpaceOptions{SpaceID: "zzzz"})
	assert.ErrorIs(t, err, kerrors.ErrSpaceNotFound)
}

func TestImportRejectsMismatchedSnapshot(t *testing.T) {
	ctx := context.Background()
	device(t)

	_, err := CreateSpace(ctx, CreateSpaceOptions{Name: "mine"})
	require.NoError(t, err)

	data := []byte(`{"meta":{"id":"someone-else","name":"x"},"posts":[]}`)
	_, err = ImportSnapshot(ctx, ImportSnapshotOptions{Data: data})
	assert.ErrorIs(t, err, kerrors.ErrSnapshotSpaceMismatch)

	_, err = ImportSnapshot(ctx, ImportSnapshotOptions{Data: []byte(`{"posts": 3}`)})
	assert.ErrorIs(t, err, kerrors.ErrInvalidSnapshot)
}

func TestImportTargetsSnapshotSpace(t *testing.T) {
	ctx := context.Background()
	device(t)

	mine, err := CreateSpace(ctx, CreateSpaceOptions{Name: "mine"})
	require.NoError(t, err)
	_, err = Post(ctx, PostOptions{Text: "one"})
	require.NoError(t, err)
	exported, err := ExportSnapshot(ctx, ExportSnapshotOptions{OutputPath: StdoutPath})
	require.NoError(t, err)

	_, err = CreateSpace(ctx, CreateSpaceOptions{Name: "other"})
	require.NoError(t, err)

	// Meta names a known space, so it is targeted even though "other" is active.
	result, err := ImportSnapshot(ctx, ImportSnapshotOptions{Data: exported.Data})
	require.NoError(t, err)
	assert.Equal(t, mine.Space.ID, result.Space.ID)
	assert.Equal(t, 0, result.Added)
}

func TestImportDryRunDoesNotSave(t *testing.T) {
	ctx := context.Background()
	device(t)

	created, err := CreateSpace(ctx, CreateSpaceOptions{Name: "mine"})
	require.NoError(t, err)
	_, err = Post(ctx, PostOptions{Text: "one"})
	require.NoError(t, err)
	exported, err := ExportSnapshot(ctx, ExportSnapshotOptions{OutputPath: StdoutPath})
	require.NoError(t, err)

	device(t)
	_, err = JoinSpace(ctx, JoinSpaceOptions{Code: created.Invite})
	require.NoError(t, err)

	result, err := ImportSnapshot(ctx, ImportSnapshotOptions{Data: exported.Data, DryRun: true})
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.Added)

	view, err := Feed(ctx, FeedOptions{})
	require.NoError(t, err)
	assert.Empty(t, view.Posts)
}

func TestExportWritesFile(t *testing.T) {
	ctx := context.Background()
	device(t)

	_, err := CreateSpace(ctx, CreateSpaceOptions{Name: "mine"})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "snap.json")
	result, err := ExportSnapshot(ctx, ExportSnapshotOptions{OutputPath: out})
	require.NoError(t, err)
	assert.Equal(t, out, result.OutputPath)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, result.Data, data)

	_, err = ExportSnapshot(ctx, ExportSnapshotOptions{OutputPath: out})
	assert.Error(t, err)

	_, err = ExportSnapshot(ctx, ExportSnapshotOptions{OutputPath: out, Force: true})
	assert.NoError(t, err)
}

func TestDefaultSnapshotName(t *testing.T) {
	name := defaultSnapshotName("0b7f2c5e-1a2b", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "hush-0b7f2c5e-2024-05-01.json", name)
}

func TestIdentityWorkflows(t *testing.T) {
	ctx := context.Background()
	settings := device(t)

	shown, err := ShowIdentity(ctx)
	require.NoError(t, err)
	assert.True(t, shown.Identity.Persist)

	renamed, err := SetDisplayName(ctx, SetDisplayNameOptions{Name: " Ana "})
	require.NoError(t, err)
	assert.True(t, renamed.Changed)
	assert.Equal(t, "Ana", renamed.Identity.DisplayName)
	assert.Equal(t, shown.Identity.ID, renamed.Identity.ID)

	_, err = SetDisplayName(ctx, SetDisplayNameOptions{Name: ""})
	assert.ErrorIs(t, err, kerrors.ErrInvalidDisplayName)

	forgotten, err := SetPersist(ctx, SetPersistOptions{Persist: false})
	require.NoError(t, err)
	assert.True(t, forgotten.Changed)

	data, err := os.ReadFile(settings.IdentityPath())
	require.NoError(t, err)
	assert.NotContains(t, string(data), shown.Identity.ID)
	assert.NotContains(t, string(data), "Ana")

	next, err := ShowIdentity(ctx)
	require.NoError(t, err)
	assert.False(t, next.Identity.Persist)
	assert.NotEqual(t, shown.Identity.ID, next.Identity.ID)

	remembered, err := SetPersist(ctx, SetPersistOptions{Persist: true})
	require.NoError(t, err)
	assert.True(t, remembered.Identity.Persist)

	again, err := ShowIdentity(ctx)
	require.NoError(t, err)
	assert.Equal(t, remembered.Identity.ID, again.Identity.ID)
}

func TestActivityFilters(t *testing.T) {
	ctx := context.Background()
	device(t)

	a, err := CreateSpace(ctx, CreateSpaceOptions{Name: "a"})
	require.NoError(t, err)
	_, err = Post(ctx, PostOptions{Text: "one"})
	require.NoError(t, err)
	_, err = CreateSpace(ctx, CreateSpaceOptions{Name: "b"})
	require.NoError(t, err)

	all, err := Activity(ctx, ActivityOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.TotalEntriesBeforeFilter)

	inA, err := Activity(ctx, ActivityOptions{SpaceID: a.Space.ID})
	require.NoError(t, err)
	assert.Len(t, inA.Entries, 2)

	latest, err := Activity(ctx, ActivityOptions{Reverse: true, Limit: 1})
	require.NoError(t, err)
	require.Len(t, latest.Entries, 1)
	assert.Equal(t, "create", latest.Entries[0].Operation)
	assert.Equal(t, "b", latest.Entries[0].SpaceName)

	for _, e := range all.Entries {
		line := e.SpaceName + e.Fingerprint + e.Detail
		assert.NotContains(t, line, a.Space.Secret)
		assert.NotEmpty(t, FormatDetails(e))
	}

	_, err = Activity(ctx, ActivityOptions{Since: "May 1st"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidDateFormat)
}

func TestActivityWithoutLog(t *testing.T) {
	device(t)

	result, err := Activity(context.Background(), ActivityOptions{})
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
}

func TestFormatDetails(t *testing.T) {
	assert.Equal(t, "2 of 5 posts new", FormatDetails(audit.Entry{Operation: "import", AddedCount: 2, PostsCount: 5}))
	assert.Equal(t, "1 posts to stdout", FormatDetails(audit.Entry{Operation: "export", PostsCount: 1}))
	assert.Equal(t, "new key abc", FormatDetails(audit.Entry{Operation: "rekey", Fingerprint: "abc"}))
}
