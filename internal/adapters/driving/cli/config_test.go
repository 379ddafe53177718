package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shoplist/internal/core/domain"
)

func TestConfigPathCmd(t *testing.T) {
	svc, _, _, _ := newServices()

	out, err := execute(t, svc, "config", "path")

	require.NoError(t, err)
	assert.Contains(t, out, "/home/me/.shoplist/config.toml")
}

func TestConfigPathCmd_Unavailable(t *testing.T) {
	svc, _, _, _ := newServices()
	svc.ConfigPath = ""

	_, err := execute(t, svc, "config", "path")

	assert.Error(t, err)
}

func TestConfigShowCmd(t *testing.T) {
	svc, _, _, _ := newServices()

	out, err := execute(t, svc, "config")

	require.NoError(t, err)
	assert.Contains(t, out, "Theme: light")
	assert.Contains(t, out, "Backend: firebase")
	assert.Contains(t, out, "Database URL: (not set)")
	assert.Contains(t, out, "Record path: /users/credentials")
	assert.Contains(t, out, "Subject: Your Shopping List")
	assert.Contains(t, out, "Attachment: shopping_list.png")
}

func TestConfigThemeCmd(t *testing.T) {
	svc, _, _, settings := newServices()

	out, err := execute(t, svc, "config", "theme", "dark")

	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, settings.settings.Theme)
	assert.Contains(t, out, "Theme set to dark")
}

func TestConfigThemeCmd_Invalid(t *testing.T) {
	svc, _, _, _ := newServices()

	_, err := execute(t, svc, "config", "theme", "sepia")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigThemeCmd_SaveError(t *testing.T) {
	svc, _, _, settings := newServices()
	settings.setErr = errors.New("read-only file system")

	_, err := execute(t, svc, "config", "theme", "dark")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only")
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "x", orDefault("x", "y"))
	assert.Equal(t, "y", orDefault("", "y"))
}
