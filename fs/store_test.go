package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dalil-app/dalil"
	"github.com/dalil-app/dalil/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(id, title string) *dalil.ServiceRecord {
	return &dalil.ServiceRecord{
		ID:       id,
		Title:    title,
		Language: dalil.LanguageEnglish,
		Status:   dalil.StatusActive,
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	t.Parallel()

	store, err := fs.NewStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.SaveRecord(ctx, testRecord("svc-2", "Second")))
	require.NoError(t, store.SaveRecord(ctx, testRecord("svc-1", "First")))

	records, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "svc-1", records[0].ID)
	assert.Equal(t, "First", records[0].Title)
	assert.Equal(t, "svc-2", records[1].ID)
}

func TestStore_SaveReplacesByID(t *testing.T) {
	t.Parallel()

	store, err := fs.NewStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.SaveRecord(ctx, testRecord("svc-1", "Original")))
	require.NoError(t, store.SaveRecord(ctx, testRecord("svc-1", "Replaced")))

	records, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Replaced", records[0].Title)
}

func TestStore_SaveValidates(t *testing.T) {
	t.Parallel()

	store, err := fs.NewStore(t.TempDir())
	require.NoError(t, err)

	err = store.SaveRecord(context.Background(), &dalil.ServiceRecord{Title: "no id"})
	require.Error(t, err)
	assert.Equal(t, dalil.EINVALID, dalil.ErrorCode(err))
}

func TestStore_DeleteRecord(t *testing.T) {
	t.Parallel()

	t.Run("deletes existing record", func(t *testing.T) {
		t.Parallel()

		store, err := fs.NewStore(t.TempDir())
		require.NoError(t, err)
		ctx := context.Background()

		require.NoError(t, store.SaveRecord(ctx, testRecord("svc-1", "First")))
		require.NoError(t, store.DeleteRecord(ctx, "svc-1"))

		records, err := store.LoadAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("returns ENOTFOUND for missing record", func(t *testing.T) {
		t.Parallel()

		store, err := fs.NewStore(t.TempDir())
		require.NoError(t, err)

		err = store.DeleteRecord(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, dalil.ENOTFOUND, dalil.ErrorCode(err))
	})
}

func TestStore_IDCannotEscapeDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := fs.NewStore(filepath.Join(dir, "records"))
	require.NoError(t, err)

	record := testRecord("../escape", "Escape")
	require.NoError(t, store.SaveRecord(context.Background(), record))

	_, err = os.Stat(filepath.Join(dir, "escape.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestStore_LoadAll_SkipsNonJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := fs.NewStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.SaveRecord(ctx, testRecord("svc-1", "First")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("notes"), 0o644))

	records, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
