package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/siteoverview/pkg/errors"
	"github.com/matzehuels/siteoverview/pkg/sites"
)

func TestFileSource(t *testing.T) {
	ctx := context.Background()
	src := NewFile(filepath.Join("..", "testdata", "sites.json"), "")
	defer src.Close()

	ov, err := src.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, ov.Sites, 4)
	assert.Equal(t, "munich", ov.Sites[0].ID)
	assert.Equal(t, "file:"+filepath.Join("..", "testdata", "sites.json"), src.Name())
}

func TestFileSourceTitleOverride(t *testing.T) {
	src := NewFile(filepath.Join("..", "testdata", "sites.toml"), "Europe")
	ov, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Europe", ov.Title)
}

func TestFileSourceRereads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"data":[{"site_id":"a"}]}`), 0644))

	src := NewFile(path, "")
	ov, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ov.Sites, 1)

	require.NoError(t, os.WriteFile(path, []byte(`{"data":[{"site_id":"a"},{"site_id":"b"}]}`), 0644))
	ov, err = src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, ov.Sites, 2)
}

func TestFileSourceMissing(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "nope.json"), "").Load(context.Background())
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestFileSourceCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFile(filepath.Join("..", "testdata", "sites.json"), "").Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStaticSource(t *testing.T) {
	ov := sites.Overview{Title: "T", Sites: []sites.Site{{ID: "a"}, {ID: "b"}}}
	src := NewStatic(ov)

	got, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ov, got)

	got.Sites[0].ID = "changed"
	again, _ := src.Load(context.Background())
	assert.Equal(t, "a", again.Sites[0].ID, "Load should return a copy")
	assert.Equal(t, "static", src.Name())
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join("..", "testdata", "sites.json")

	tests := []struct {
		name    string
		cfg     Config
		wantErr errors.Code
	}{
		{"file", Config{Kind: KindFile, Path: path}, ""},
		{"default kind", Config{Path: path}, ""},
		{"file without path", Config{Kind: KindFile}, errors.ErrCodeInvalidConfig},
		{"mongo without uri", Config{Kind: KindMongo}, errors.ErrCodeInvalidConfig},
		{"unknown", Config{Kind: "ldap"}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Open(ctx, tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Nil(t, src)
				assert.Equal(t, tt.wantErr, errors.GetCode(err))
				return
			}
			require.NoError(t, err)
			defer src.Close()
			_, ok := src.(*File)
			assert.True(t, ok)
		})
	}
}

// TestMongoSource runs against a live server when SITEOVERVIEW_TEST_MONGO_URI
// is set.
func TestMongoSource(t *testing.T) {
	uri := os.Getenv("SITEOVERVIEW_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("SITEOVERVIEW_TEST_MONGO_URI not set")
	}
	ctx := context.Background()

	m, err := NewMongo(ctx, MongoOptions{URI: uri, Database: "siteoverview_test", Title: "Mongo"})
	require.NoError(t, err)
	defer m.Close()

	_, err = m.coll.DeleteMany(ctx, map[string]any{})
	require.NoError(t, err)
	_, err = m.coll.InsertMany(ctx, []any{
		sites.Site{ID: "berlin", CountWarning: 1},
		sites.Site{ID: "munich"},
	})
	require.NoError(t, err)

	ov, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Mongo", ov.Title)
	require.Len(t, ov.Sites, 2)
	assert.Equal(t, "berlin", ov.Sites[0].ID)
	assert.Equal(t, sites.StateWarning, ov.Sites[0].State())
	assert.Equal(t, "mongo:siteoverview_test.sites", m.Name())
}
