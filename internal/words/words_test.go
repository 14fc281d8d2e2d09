package words

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/assets"
)

func TestNormalize(t *testing.T) {
	raw := []string{"# header", "Crane", " trace ", "", "crane", "cranes", "cr4ne", "BLARE"}
	assert.Equal(t, []string{"crane", "trace", "blare"}, Normalize(raw, 5))
}

func TestLoadEmbedded(t *testing.T) {
	got, err := Load(context.Background(), Source{Length: 5})
	require.NoError(t, err)
	assert.Contains(t, got, "crane")
	for _, w := range got {
		assert.Len(t, w, 5)
	}

	raw := assets.WordList()
	assert.True(t, strings.HasPrefix(raw[0], "#"), "embedded list starts with a comment")
	assert.Equal(t, got, Normalize(raw, 5))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("zebra\nApple\n\n# note\napple\ntoolong\n"), 0o644))

	got, err := Load(context.Background(), Source{File: path, Length: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "apple"}, got)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := Load(context.Background(), Source{File: filepath.Join(t.TempDir(), "missing.txt"), Length: 5})
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("# nothing here\nsix666\n"), 0o644))
	_, err = Load(context.Background(), Source{File: path, Length: 5})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoadSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE words (word TEXT NOT NULL)`)
	require.NoError(t, err)
	for _, w := range []string{"trace", "Crane", "blare", "trace", "ab"} {
		_, err = db.Exec(`INSERT INTO words(word) VALUES (?)`, w)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	got, err := Load(context.Background(), Source{DB: path, File: "ignored.txt", Length: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"trace", "crane", "blare"}, got)
}

func TestLoadSQLiteMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")
	_, err := Load(context.Background(), Source{DB: path, Length: 5})
	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist, "loading must not create the database")
}

func TestSourceDescribe(t *testing.T) {
	assert.Equal(t, "embedded", Source{}.Describe())
	assert.Equal(t, "file:w.txt", Source{File: "w.txt"}.Describe())
	assert.Equal(t, "sqlite:w.db", Source{DB: "w.db", File: "w.txt"}.Describe())
}

func TestDictionary(t *testing.T) {
	d := NewDictionary(5, []string{"crane", "trace"})
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, 5, d.WordLength())
	assert.True(t, d.Contains("CRANE"))
	assert.False(t, d.Contains("blare"))

	old := d.Words()
	d.Replace([]string{"blare"})
	assert.Equal(t, []string{"crane", "trace"}, old)
	assert.Equal(t, []string{"blare"}, d.Words())
	assert.True(t, d.Contains("blare"))
	assert.False(t, d.Contains("crane"))
}

func TestDictionaryConcurrentReplace(t *testing.T) {
	d := NewDictionary(5, []string{"crane"})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			d.Replace([]string{"crane", "trace"})
		}()
		go func() {
			defer wg.Done()
			_ = d.Contains("crane")
			_ = len(d.Words())
		}()
	}
	wg.Wait()
	assert.Equal(t, 2, d.Len())
}
