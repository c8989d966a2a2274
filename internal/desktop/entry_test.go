package desktop

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const firefoxEntry = `[Desktop Entry]
Version=1.0
Name=Firefox
Name[de]=Feuerfuchs
GenericName=Web Browser
Exec=firefox %u
Icon=firefox
Type=Application

[Desktop Action new-window]
Name=New Window
Exec=firefox --new-window %u
`

func TestParseAcceptsApplication(t *testing.T) {
	rec, ok := Parse("/usr/share/applications/firefox.desktop", []byte(firefoxEntry))
	require.True(t, ok)
	assert.Equal(t, "Firefox", rec.Name)
	assert.Equal(t, "firefox", rec.Exec)
	assert.Equal(t, "firefox", rec.Icon)
	assert.Equal(t, "/usr/share/applications/firefox.desktop", rec.Path)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing section",
			content: "Name=Tool\nExec=tool\nType=Application\n",
		},
		{
			name:    "hidden",
			content: "[Desktop Entry]\nName=Tool\nExec=tool\nType=Application\nNoDisplay=true\n",
		},
		{
			name:    "link kind",
			content: "[Desktop Entry]\nName=Docs\nType=Link\nURL=https://example.com\n",
		},
		{
			name:    "directory kind",
			content: "[Desktop Entry]\nName=Games\nExec=true\nType=Directory\n",
		},
		{
			name:    "missing name",
			content: "[Desktop Entry]\nExec=tool\nType=Application\n",
		},
		{
			name:    "missing exec",
			content: "[Desktop Entry]\nName=Tool\nType=Application\n",
		},
		{
			name:    "exec only placeholders",
			content: "[Desktop Entry]\nName=Tool\nExec= %F %U \nType=Application\n",
		},
		{
			name:    "empty",
			content: "",
		},
		{
			name:    "binary garbage",
			content: "\x00\x01\xff[Desk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Parse("x.desktop", []byte(tt.content))
			assert.False(t, ok)
		})
	}
}

func TestParseStripsPlaceholders(t *testing.T) {
	content := "[Desktop Entry]\nType=Application\nName=Viewer\nExec=  viewer %f %F %u %U %i %c %k  \n"
	rec, ok := Parse("viewer.desktop", []byte(content))
	require.True(t, ok)
	for _, token := range []string{"%f", "%F", "%u", "%U", "%i", "%c", "%k"} {
		assert.NotContains(t, rec.Exec, token)
	}
	assert.Equal(t, "viewer", strings.TrimSpace(rec.Exec))
	assert.False(t, strings.HasPrefix(rec.Exec, " "))
	assert.False(t, strings.HasSuffix(rec.Exec, " "))
}

func TestParseDefaultIcon(t *testing.T) {
	rec, ok := Parse("t.desktop", []byte("[Desktop Entry]\nType=Application\nName=Tool\nExec=tool\n"))
	require.True(t, ok)
	assert.Equal(t, DefaultIcon, rec.Icon)
}

func TestParseFirstKeyWins(t *testing.T) {
	content := "[Desktop Entry]\nType=Application\nName=First\nName=Second\nExec=one\nExec=two\nX-Unknown=whatever\n"
	rec, ok := Parse("t.desktop", []byte(content))
	require.True(t, ok)
	assert.Equal(t, "First", rec.Name)
	assert.Equal(t, "one", rec.Exec)
}

func TestParseHandlesCRLF(t *testing.T) {
	content := "[Desktop Entry]\r\nType=Application\r\nName=Dos\r\nExec=dos\r\n"
	rec, ok := Parse("dos.desktop", []byte(content))
	require.True(t, ok)
	assert.Equal(t, "Dos", rec.Name)
	assert.Equal(t, "dos", rec.Exec)
}

func TestParseFileMissing(t *testing.T) {
	_, ok := ParseFile(filepath.Join(t.TempDir(), "absent.desktop"))
	assert.False(t, ok)
}

func TestParseFileReadsDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "firefox.desktop")
	require.NoError(t, os.WriteFile(path, []byte(firefoxEntry), 0o644))
	rec, ok := ParseFile(path)
	require.True(t, ok)
	assert.Equal(t, path, rec.Path)
}
