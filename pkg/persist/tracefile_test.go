package persist_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/heapwalk/pkg/heap"
	"github.com/Sumatoshi-tech/heapwalk/pkg/persist"
)

func TestSaveLoadTrace(t *testing.T) {
	t.Parallel()

	trace := heap.GenerateInsert(heap.Heap{1, 3, 2, 7}, 0)

	t.Run("json_round_trip", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "insert.json")
		require.NoError(t, persist.SaveTrace(path, "insert 0", trace))

		loaded, err := persist.LoadTrace(path)
		require.NoError(t, err)

		assert.Equal(t, "insert 0", loaded.Operation)
		assert.Equal(t, trace, loaded.Steps)
	})

	t.Run("lz4_round_trip", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "insert.json.lz4")
		require.NoError(t, persist.SaveTrace(path, "insert 0", trace))

		loaded, err := persist.LoadTrace(path)
		require.NoError(t, err)
		assert.Equal(t, trace, loaded.Steps)
	})

	t.Run("unknown_extension", func(t *testing.T) {
		t.Parallel()

		err := persist.SaveTrace(filepath.Join(t.TempDir(), "trace.bin"), "", trace)

		require.ErrorIs(t, err, persist.ErrUnknownExtension)
	})

	t.Run("missing_file", func(t *testing.T) {
		t.Parallel()

		_, err := persist.LoadTrace(filepath.Join(t.TempDir(), "absent.json"))

		require.Error(t, err)
	})

	t.Run("version_mismatch", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "future.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version": 99, "steps": []}`), 0o600))

		_, err := persist.LoadTrace(path)
		require.ErrorIs(t, err, persist.ErrVersionMismatch)
	})

	t.Run("garbage_payload", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "broken.json.lz4")
		require.NoError(t, os.WriteFile(path, []byte("not an lz4 frame"), 0o600))

		_, err := persist.LoadTrace(path)
		require.Error(t, err)
	})
}

func TestCodecForPath(t *testing.T) {
	t.Parallel()

	lz4Codec, err := persist.CodecForPath("a.json.lz4")
	require.NoError(t, err)
	assert.Equal(t, ".json.lz4", lz4Codec.Extension())

	jsonCodec, err := persist.CodecForPath("a.json")
	require.NoError(t, err)
	assert.Equal(t, ".json", jsonCodec.Extension())

	_, err = persist.CodecForPath("a.yaml")
	require.ErrorIs(t, err, persist.ErrUnknownExtension)
}
