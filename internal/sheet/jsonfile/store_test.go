package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exam-sheet/internal/sheet"
)

func TestNewStoreCreatesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sheet.json")

	store, err := NewStore(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	_, ok, err := store.Load(context.Background(), sheet.KeyQuestionCount)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreSaveDeletePersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.json")
	ctx := context.Background()

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sheet.KeyQuestionCount, "25"))
	require.NoError(t, store.Save(ctx, sheet.KeyAnswers, `{"3":"C"}`))
	require.NoError(t, store.Delete(ctx, sheet.KeyAnswers))
	require.NoError(t, store.Delete(ctx, "missing"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"examNumQuestions":"25"}`, string(data))

	reopened, err := NewStore(path)
	require.NoError(t, err)
	value, ok, err := reopened.Load(ctx, sheet.KeyQuestionCount)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "25", value)
}

func TestStoreCorruptFileFailsLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	store, err := NewStore(path)
	require.NoError(t, err)

	_, _, err = store.Load(context.Background(), sheet.KeyAnswers)
	assert.Error(t, err)

	s := sheet.New()
	require.NoError(t, sheet.NewPersister(store, sheet.PersisterOptions{}).Hydrate(context.Background(), s))
	assert.Equal(t, sheet.DefaultQuestionCount, s.Snapshot().QuestionCount)
}
