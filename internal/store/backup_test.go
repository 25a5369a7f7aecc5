package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"roombook/internal/config"
	"roombook/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformBackupCopiesCollections(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpdateUsers(ctx, func(users []models.User) ([]models.User, error) {
		return append(users, models.User{ID: 1, Name: "Bob", Email: "bob@example.com"}), nil
	}))

	backupDir := t.TempDir()
	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	svc := NewBackupService(s.Dir(), config.BackupConfig{
		Enabled:     true,
		StoragePath: backupDir,
	}, &logger)

	require.NoError(t, svc.PerformBackup())

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsDir())

	copied, err := os.ReadDir(filepath.Join(backupDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Len(t, copied, 4, "all four collection files should be copied")

	data, err := os.ReadFile(filepath.Join(backupDir, entries[0].Name(), "users.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "bob@example.com")
}

func TestCleanupOldBackupsKeepsRecent(t *testing.T) {
	backupDir := t.TempDir()
	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	svc := NewBackupService(t.TempDir(), config.BackupConfig{
		Enabled:       true,
		StoragePath:   backupDir,
		RetentionDays: 7,
	}, &logger)

	recent := filepath.Join(backupDir, "backup_recent")
	require.NoError(t, os.MkdirAll(recent, 0o755))

	svc.CleanupOldBackups()

	_, err := os.Stat(recent)
	assert.NoError(t, err, "recent backup should survive cleanup")
}
