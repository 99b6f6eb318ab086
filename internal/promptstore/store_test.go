package promptstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/promptbench/internal/domain"
	"github.com/davidbz/promptbench/internal/promptstore"
)

func writePromptFile(t *testing.T, dir, category, content string) {
	t.Helper()
	path := filepath.Join(dir, category+".json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadCategory(t *testing.T) {
	dir := t.TempDir()
	writePromptFile(t, dir, "reasoning", `[
		{"id": "r1", "role": "user", "content": "Why is the sky blue?"},
		{"id": "r2", "content": "Plan a trip."}
	]`)

	prompts, err := promptstore.LoadCategory(dir, "reasoning")
	require.NoError(t, err)
	require.Len(t, prompts, 2)

	require.Equal(t, "r1", prompts[0].ID)
	require.Equal(t, "reasoning", prompts[0].Category)
	// Missing role defaults to user.
	require.Equal(t, "user", prompts[1].Role)
}

func TestLoadCategory_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := promptstore.LoadCategory(dir, "creative")
		require.ErrorIs(t, err, promptstore.ErrCategoryNotFound)
	})

	t.Run("invalid json", func(t *testing.T) {
		writePromptFile(t, dir, "broken", `{not json`)
		_, err := promptstore.LoadCategory(dir, "broken")
		require.Error(t, err)
	})

	t.Run("empty id", func(t *testing.T) {
		writePromptFile(t, dir, "noid", `[{"id": "", "content": "x"}]`)
		_, err := promptstore.LoadCategory(dir, "noid")
		require.Error(t, err)
	})

	t.Run("duplicate id", func(t *testing.T) {
		writePromptFile(t, dir, "dupes", `[
			{"id": "d1", "content": "a"},
			{"id": "d1", "content": "b"}
		]`)
		_, err := promptstore.LoadCategory(dir, "dupes")
		require.ErrorContains(t, err, "duplicate prompt id")
	})
}

func TestLoadAll_SkipsMissingCategories(t *testing.T) {
	dir := t.TempDir()
	writePromptFile(t, dir, domain.CategoryInstruction, `[{"id": "i1", "content": "a"}]`)
	writePromptFile(t, dir, domain.CategoryCoding, `[{"id": "c1", "content": "b"}]`)

	prompts, missing, err := promptstore.LoadAll(dir, domain.Categories())
	require.NoError(t, err)

	require.Len(t, prompts, 2)
	require.Equal(t, []string{domain.CategoryReasoning, domain.CategoryCreative}, missing)
	require.Equal(t, domain.CategoryInstruction, prompts[0].Category)
	require.Equal(t, domain.CategoryCoding, prompts[1].Category)
}
