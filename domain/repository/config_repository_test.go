package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyama86/YAIB/domain/repository"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "yaib.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestNewConfigRepository(t *testing.T) {
	path := writeConfig(t, `
store = "memory"
playbook_url = "https://example.com/playbook"
categories_url = "https://example.com/categories"
template_url = "https://example.com/template"
meet_base_url = "https://meet.example.com/lookup"
announcement_channels = ["C_BAT", "C_GIT"]

[[services]]
name = "Apply"

[[services]]
name = "Legacy"
disabled = true

[[priorities]]
name = "P1"
level = 1

[[priorities]]
name = "P9"
level = 9
disabled = true
`)

	config, err := repository.NewConfigRepository(path)
	require.NoError(t, err)

	ctx := context.Background()
	assert.Equal(t, "memory", config.Store)
	assert.Equal(t, []string{"C_BAT", "C_GIT"}, config.AnnouncementChannels(ctx))
	assert.Equal(t, "https://example.com/playbook", config.PlaybookURL)

	// disabledな項目はモーダルの選択肢に出ない
	services := config.Services(ctx)
	require.Len(t, services, 1)
	assert.Equal(t, "Apply", services[0].Name)

	priorities := config.Priorities(ctx)
	require.Len(t, priorities, 1)
	assert.Equal(t, "P1", priorities[0].Name)
}

func TestNewConfigRepositoryValidatesRequiredFields(t *testing.T) {
	path := writeConfig(t, `
store = "memory"
announcement_channels = ["C_BAT"]
`)

	_, err := repository.NewConfigRepository(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate config error")
}

func TestNewConfigRepositoryRejectsUnknownStore(t *testing.T) {
	path := writeConfig(t, `
store = "redis"
announcement_channels = ["C_BAT"]

[[services]]
name = "Apply"

[[priorities]]
name = "P1"
level = 1
`)

	_, err := repository.NewConfigRepository(path)
	require.Error(t, err)
}

func TestNewConfigRepositoryMissingFile(t *testing.T) {
	_, err := repository.NewConfigRepository(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
