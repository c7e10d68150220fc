package notification

import (
	"context"
	"path/filepath"
	"testing"

	"builders-panel/config"
	"builders-panel/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(source string) *config.Config {
	return &config.Config{
		Panel: config.PanelConfig{
			UserID:  2,
			Source:  source,
			BaseURL: "http://localhost:9090",
		},
	}
}

func TestNewRepository_HTTP(t *testing.T) {
	repo, ping, err := NewRepository(context.Background(), log.NewNop(), testConfig("http"))
	require.NoError(t, err)
	assert.NotNil(t, repo)
	assert.Nil(t, ping)
}

func TestNewRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig("sqlite")
	cfg.SQLite = config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "panel.db"), Migrate: true}

	repo, ping, err := NewRepository(ctx, log.NewNop(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { CloseRepository(ctx) })

	require.NotNil(t, ping)
	assert.NoError(t, ping(ctx))

	snap, err := repo.ListByUser(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, snap)
}

func TestNewRepository_Invalid(t *testing.T) {
	_, _, err := NewRepository(context.Background(), log.NewNop(), testConfig("ftp"))
	assert.Error(t, err)

	cfg := testConfig("http")
	cfg.Panel.Timezone = "Mars/Olympus"
	_, _, err = NewRepository(context.Background(), log.NewNop(), cfg)
	assert.Error(t, err)
}

func TestSource_IsValid(t *testing.T) {
	for _, s := range []Source{SourceHTTP, SourcePostgres, SourceSQLite} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, Source("ftp").IsValid())
}
