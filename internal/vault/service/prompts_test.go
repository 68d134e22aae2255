package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSaveNormalizesContent(t *testing.T) {
	st := newTestStore(t)
	svc := &PromptService{Store: st}
	ctx := context.Background()
	user := newTestUser(t, st, "alice", testPassword)

	prompt, err := svc.Save(ctx, user.ID, "  hello <world>  ", "\tenhanced & more\n", nil)
	require.NoError(t, err)
	require.Equal(t, "hello &lt;world&gt;", prompt.Original)
	require.Equal(t, "enhanced &amp; more", prompt.Enhanced)
	require.Nil(t, prompt.Title)
	require.Nil(t, prompt.Notes)

	// The stored row matches what was returned.
	stored, err := st.Prompts().GetPrompt(ctx, user.ID, prompt.ID)
	require.NoError(t, err)
	require.Equal(t, prompt.Original, stored.Original)
	require.Equal(t, prompt.Enhanced, stored.Enhanced)
}

func TestSaveValidation(t *testing.T) {
	st := newTestStore(t)
	svc := &PromptService{Store: st}
	ctx := context.Background()
	user := newTestUser(t, st, "alice", testPassword)

	long := strings.Repeat("x", MaxContentLength+1)
	longNotes := strings.Repeat("n", MaxNotesLength+1)

	t.Run("empty original", func(t *testing.T) {
		_, err := svc.Save(ctx, user.ID, "   ", "enhanced", nil)
		require.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("empty enhanced", func(t *testing.T) {
		_, err := svc.Save(ctx, user.ID, "original", "", nil)
		require.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("content too long", func(t *testing.T) {
		_, err := svc.Save(ctx, user.ID, long, "enhanced", nil)
		require.ErrorIs(t, err, ErrContentTooLong)
	})

	t.Run("notes too long", func(t *testing.T) {
		_, err := svc.Save(ctx, user.ID, "original", "enhanced", &longNotes)
		require.ErrorIs(t, err, ErrNotesTooLong)
	})

	t.Run("blank notes stored as absent", func(t *testing.T) {
		blank := "   "
		prompt, err := svc.Save(ctx, user.ID, "with blank notes", "with blank notes", &blank)
		require.NoError(t, err)
		require.Nil(t, prompt.Notes)
	})
}

func TestSaveQuota(t *testing.T) {
	st := newTestStore(t)
	svc := &PromptService{Store: st}
	ctx := context.Background()
	user := newTestUser(t, st, "alice", testPassword)

	for i := 0; i < MaxPromptsPerUser; i++ {
		_, err := svc.Save(ctx, user.ID, fmt.Sprintf("prompt %d", i), fmt.Sprintf("enhanced %d", i), nil)
		require.NoError(t, err)
	}

	_, err := svc.Save(ctx, user.ID, "one too many", "one too many", nil)
	require.ErrorIs(t, err, ErrQuotaExceeded)

	// Quota is per-user.
	other := newTestUser(t, st, "bob", testPassword)
	_, err = svc.Save(ctx, other.ID, "fine", "fine", nil)
	require.NoError(t, err)

	// Deleting frees a slot.
	list, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, user.ID, list[0].ID))

	_, err = svc.Save(ctx, user.ID, "fits again", "fits again", nil)
	require.NoError(t, err)
}

func TestListOrdering(t *testing.T) {
	st := newTestStore(t)
	svc := &PromptService{Store: st}
	ctx := context.Background()
	user := newTestUser(t, st, "alice", testPassword)

	for i := 0; i < 3; i++ {
		_, err := svc.Save(ctx, user.ID, fmt.Sprintf("p%d", i), fmt.Sprintf("e%d", i), nil)
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond) // distinct created_at
	}

	list, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "e2", list[0].Enhanced)
	require.Equal(t, "e1", list[1].Enhanced)
	require.Equal(t, "e0", list[2].Enhanced)
}

func TestOwnershipIsolation(t *testing.T) {
	st := newTestStore(t)
	svc := &PromptService{Store: st}
	ctx := context.Background()
	owner := newTestUser(t, st, "alice", testPassword)
	intruder := newTestUser(t, st, "mallory", testPassword)

	prompt, err := svc.Save(ctx, owner.ID, "secret", "secret enhanced", nil)
	require.NoError(t, err)

	t.Run("delete", func(t *testing.T) {
		require.ErrorIs(t, svc.Delete(ctx, intruder.ID, prompt.ID), ErrPromptNotFound)
	})

	t.Run("update title", func(t *testing.T) {
		require.ErrorIs(t, svc.UpdateTitle(ctx, intruder.ID, prompt.ID, "stolen"), ErrPromptNotFound)
	})

	t.Run("regenerate", func(t *testing.T) {
		svc.Titles = staticTitles("generated")
		_, err := svc.Regenerate(ctx, intruder.ID, prompt.ID)
		require.ErrorIs(t, err, ErrPromptNotFound)
	})

	t.Run("list", func(t *testing.T) {
		list, err := svc.List(ctx, intruder.ID)
		require.NoError(t, err)
		require.Empty(t, list)
	})

	// The prompt is untouched after all of that.
	got, err := st.Prompts().GetPrompt(ctx, owner.ID, prompt.ID)
	require.NoError(t, err)
	require.Nil(t, got.Title)
}

func TestSaveWithTitleGeneration(t *testing.T) {
	ctx := context.Background()

	t.Run("generated title is persisted", func(t *testing.T) {
		st := newTestStore(t)
		svc := &PromptService{Store: st, Titles: staticTitles("A Fine Title")}
		user := newTestUser(t, st, "alice", testPassword)

		prompt, err := svc.Save(ctx, user.ID, "original", "enhanced", nil)
		require.NoError(t, err)
		require.NotNil(t, prompt.Title)
		require.Equal(t, "A Fine Title", *prompt.Title)

		stored, err := st.Prompts().GetPrompt(ctx, user.ID, prompt.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.Title)
		require.Equal(t, "A Fine Title", *stored.Title)
	})

	t.Run("generation failure still saves the prompt", func(t *testing.T) {
		st := newTestStore(t)
		svc := &PromptService{Store: st, Titles: failingTitles(errors.New("upstream down"))}
		user := newTestUser(t, st, "alice", testPassword)

		prompt, err := svc.Save(ctx, user.ID, "original", "enhanced", nil)
		require.NoError(t, err)
		require.Nil(t, prompt.Title)

		stored, err := st.Prompts().GetPrompt(ctx, user.ID, prompt.ID)
		require.NoError(t, err)
		require.Nil(t, stored.Title)
	})
}

func TestSaveCustom(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit title skips generation", func(t *testing.T) {
		st := newTestStore(t)
		titles := staticTitles("should not be used")
		svc := &PromptService{Store: st, Titles: titles}
		user := newTestUser(t, st, "alice", testPassword)

		title := "  My Title  "
		prompt, err := svc.SaveCustom(ctx, user.ID, "content", &title, nil)
		require.NoError(t, err)
		require.NotNil(t, prompt.Title)
		require.Equal(t, "My Title", *prompt.Title)
		require.Equal(t, prompt.Original, prompt.Enhanced)
		require.Zero(t, titles.calls)
	})

	t.Run("missing title triggers generation", func(t *testing.T) {
		st := newTestStore(t)
		titles := staticTitles("Generated")
		svc := &PromptService{Store: st, Titles: titles}
		user := newTestUser(t, st, "alice", testPassword)

		prompt, err := svc.SaveCustom(ctx, user.ID, "content", nil, nil)
		require.NoError(t, err)
		require.NotNil(t, prompt.Title)
		require.Equal(t, "Generated", *prompt.Title)
		require.Equal(t, 1, titles.calls)
	})

	t.Run("title too long", func(t *testing.T) {
		st := newTestStore(t)
		svc := &PromptService{Store: st}
		user := newTestUser(t, st, "alice", testPassword)

		long := strings.Repeat("t", MaxTitleLength+1)
		_, err := svc.SaveCustom(ctx, user.ID, "content", &long, nil)
		require.ErrorIs(t, err, ErrTitleTooLong)
	})
}

func TestUpdateTitle(t *testing.T) {
	st := newTestStore(t)
	svc := &PromptService{Store: st}
	ctx := context.Background()
	user := newTestUser(t, st, "alice", testPassword)

	prompt, err := svc.Save(ctx, user.ID, "original", "enhanced", nil)
	require.NoError(t, err)

	t.Run("set", func(t *testing.T) {
		require.NoError(t, svc.UpdateTitle(ctx, user.ID, prompt.ID, "  Custom  "))
		got, err := st.Prompts().GetPrompt(ctx, user.ID, prompt.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Title)
		require.Equal(t, "Custom", *got.Title)
	})

	t.Run("empty string clears", func(t *testing.T) {
		require.NoError(t, svc.UpdateTitle(ctx, user.ID, prompt.ID, ""))
		got, err := st.Prompts().GetPrompt(ctx, user.ID, prompt.ID)
		require.NoError(t, err)
		require.Nil(t, got.Title)
	})

	t.Run("too long", func(t *testing.T) {
		require.ErrorIs(t, svc.UpdateTitle(ctx, user.ID, prompt.ID, strings.Repeat("t", MaxTitleLength+1)), ErrTitleTooLong)
	})

	t.Run("unknown prompt", func(t *testing.T) {
		require.ErrorIs(t, svc.UpdateTitle(ctx, user.ID, "no-such-id", "x"), ErrPromptNotFound)
	})
}

func TestCheckSaved(t *testing.T) {
	st := newTestStore(t)
	svc := &PromptService{Store: st}
	ctx := context.Background()
	user := newTestUser(t, st, "alice", testPassword)
	other := newTestUser(t, st, "bob", testPassword)

	prompt, err := svc.Save(ctx, user.ID, "original", "the enhanced text", nil)
	require.NoError(t, err)

	t.Run("exact match", func(t *testing.T) {
		found, err := svc.CheckSaved(ctx, user.ID, "the enhanced text")
		require.NoError(t, err)
		require.NotNil(t, found)
		require.Equal(t, prompt.ID, found.ID)
	})

	t.Run("matches after normalization", func(t *testing.T) {
		found, err := svc.CheckSaved(ctx, user.ID, "  the enhanced text  ")
		require.NoError(t, err)
		require.NotNil(t, found)
	})

	t.Run("no match", func(t *testing.T) {
		found, err := svc.CheckSaved(ctx, user.ID, "something else")
		require.NoError(t, err)
		require.Nil(t, found)
	})

	t.Run("scoped to the user", func(t *testing.T) {
		found, err := svc.CheckSaved(ctx, other.ID, "the enhanced text")
		require.NoError(t, err)
		require.Nil(t, found)
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := svc.CheckSaved(ctx, user.ID, "   ")
		require.ErrorIs(t, err, ErrEmptyContent)
	})
}

func TestRegenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("success persists the new title", func(t *testing.T) {
		st := newTestStore(t)
		svc := &PromptService{Store: st, Titles: staticTitles("Fresh Title")}
		user := newTestUser(t, st, "alice", testPassword)

		prompt, err := svc.SaveCustom(ctx, user.ID, "content", ptr("Old Title"), nil)
		require.NoError(t, err)

		title, err := svc.Regenerate(ctx, user.ID, prompt.ID)
		require.NoError(t, err)
		require.Equal(t, "Fresh Title", title)

		got, err := st.Prompts().GetPrompt(ctx, user.ID, prompt.ID)
		require.NoError(t, err)
		require.Equal(t, "Fresh Title", *got.Title)
	})

	t.Run("failure is surfaced and leaves the title alone", func(t *testing.T) {
		st := newTestStore(t)
		svc := &PromptService{Store: st, Titles: failingTitles(errors.New("upstream down"))}
		user := newTestUser(t, st, "alice", testPassword)

		prompt, err := svc.SaveCustom(ctx, user.ID, "content", ptr("Kept Title"), nil)
		require.NoError(t, err)

		_, err = svc.Regenerate(ctx, user.ID, prompt.ID)
		require.ErrorIs(t, err, ErrTitleGeneration)

		got, err := st.Prompts().GetPrompt(ctx, user.ID, prompt.ID)
		require.NoError(t, err)
		require.Equal(t, "Kept Title", *got.Title)
	})

	t.Run("unknown prompt", func(t *testing.T) {
		st := newTestStore(t)
		svc := &PromptService{Store: st, Titles: staticTitles("x")}
		user := newTestUser(t, st, "alice", testPassword)

		_, err := svc.Regenerate(ctx, user.ID, "no-such-id")
		require.ErrorIs(t, err, ErrPromptNotFound)
	})
}

func ptr(s string) *string { return &s }
