package vault_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/quillworks/promptvault/pkg/vaultsdk"
	"github.com/stretchr/testify/require"
)

func TestTitleGeneratedOnSave(t *testing.T) {
	env := setupVaultServer(t)
	client := env.NewClient(t)
	ctx := context.Background()

	registerAndLogin(t, client, "alice")
	env.Upstream.SetTitle("Sea Poem Request")

	saved, err := client.SavePrompt(ctx, vaultsdk.SavePromptRequest{
		OriginalPrompt: "write a poem",
		EnhancedPrompt: "write a four stanza poem about the sea",
	})
	require.NoError(t, err)
	require.NotNil(t, saved.Title)
	require.Equal(t, "Sea Poem Request", *saved.Title)
}

func TestTitleCleaningOnSave(t *testing.T) {
	env := setupVaultServer(t)
	client := env.NewClient(t)
	ctx := context.Background()

	registerAndLogin(t, client, "alice")

	// Quotes and lead-in phrases from the model are stripped.
	env.Upstream.SetTitle(`Title: "A Poem About the Sea"`)

	saved, err := client.SavePrompt(ctx, vaultsdk.SavePromptRequest{
		OriginalPrompt: "write a poem",
		EnhancedPrompt: "write a poem about the sea",
	})
	require.NoError(t, err)
	require.NotNil(t, saved.Title)
	require.Equal(t, "A Poem About the Sea", *saved.Title)
}

func TestSaveSurvivesUpstreamFailure(t *testing.T) {
	env := setupVaultServer(t)
	client := env.NewClient(t)
	ctx := context.Background()

	registerAndLogin(t, client, "alice")
	env.Upstream.SetFail(true)

	// Generation fails, the save does not.
	saved, err := client.SavePrompt(ctx, vaultsdk.SavePromptRequest{
		OriginalPrompt: "write a poem",
		EnhancedPrompt: "write a poem about the sea",
	})
	require.NoError(t, err)
	require.Nil(t, saved.Title)

	list, err := client.ListPrompts(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)
	require.Nil(t, list.Prompts[0].Title)
}

func TestRegenerateTitle(t *testing.T) {
	env := setupVaultServer(t)
	client := env.NewClient(t)
	ctx := context.Background()

	registerAndLogin(t, client, "alice")

	saved, err := client.SaveCustomPrompt(ctx, vaultsdk.SaveCustomPromptRequest{
		PromptContent: "my prompt",
		Title:         strPtr("Old Title"),
	})
	require.NoError(t, err)

	env.Upstream.SetTitle("Fresh Title")
	regen, err := client.RegenerateTitle(ctx, vaultsdk.RegenerateTitleRequest{PromptID: saved.ID})
	require.NoError(t, err)
	require.Equal(t, "Fresh Title", regen.Title)

	list, err := client.ListPrompts(ctx)
	require.NoError(t, err)
	require.Equal(t, "Fresh Title", *list.Prompts[0].Title)

	// Unlike save, regenerate surfaces an upstream failure.
	env.Upstream.SetFail(true)
	_, err = client.RegenerateTitle(ctx, vaultsdk.RegenerateTitleRequest{PromptID: saved.ID})
	requireAPIError(t, err, http.StatusInternalServerError)

	// The previous title is kept.
	env.Upstream.SetFail(false)
	list, err = client.ListPrompts(ctx)
	require.NoError(t, err)
	require.Equal(t, "Fresh Title", *list.Prompts[0].Title)

	_, err = client.RegenerateTitle(ctx, vaultsdk.RegenerateTitleRequest{PromptID: "no-such-id"})
	requireAPIError(t, err, http.StatusNotFound)
}

func TestMigrateTitlesProcessesTenAtATime(t *testing.T) {
	env := setupVaultServer(t)
	client := env.NewClient(t)
	ctx := context.Background()

	registerAndLogin(t, client, "alice")

	// Seed 12 untitled prompts by having generation fail during save.
	env.Upstream.SetFail(true)
	for i := 0; i < 12; i++ {
		_, err := client.SavePrompt(ctx, vaultsdk.SavePromptRequest{
			OriginalPrompt: fmt.Sprintf("original %d", i),
			EnhancedPrompt: fmt.Sprintf("enhanced %d", i),
		})
		require.NoError(t, err)
	}
	env.Upstream.SetFail(false)
	env.Upstream.SetTitle("Backfilled")

	result, err := client.MigrateTitles(ctx)
	require.NoError(t, err)
	require.Equal(t, 10, result.Migrated)
	require.Equal(t, 0, result.Failed)
	require.Equal(t, 2, result.Remaining)

	result, err = client.MigrateTitles(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, result.Migrated)
	require.Equal(t, 0, result.Remaining)

	// Everything carries a title now; a further batch is a no-op.
	result, err = client.MigrateTitles(ctx)
	require.NoError(t, err)
	require.Zero(t, result.Migrated)
	require.Zero(t, result.Remaining)

	list, err := client.ListPrompts(ctx)
	require.NoError(t, err)
	for _, p := range list.Prompts {
		require.NotNil(t, p.Title)
	}
}

func TestMigrateTitlesCountsFailures(t *testing.T) {
	env := setupVaultServer(t)
	client := env.NewClient(t)
	ctx := context.Background()

	registerAndLogin(t, client, "alice")

	env.Upstream.SetFail(true)
	for i := 0; i < 3; i++ {
		_, err := client.SavePrompt(ctx, vaultsdk.SavePromptRequest{
			OriginalPrompt: fmt.Sprintf("original %d", i),
			EnhancedPrompt: fmt.Sprintf("enhanced %d", i),
		})
		require.NoError(t, err)
	}

	// Upstream still down: the batch fails item by item without aborting.
	result, err := client.MigrateTitles(ctx)
	require.NoError(t, err)
	require.Zero(t, result.Migrated)
	require.Equal(t, 3, result.Failed)
	require.Equal(t, 3, result.Remaining)
}
