package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdeck/askdeck/internal/chat"
)

// Minimal valid PNG: signature plus empty IHDR-less body is enough for
// signature-based detection.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestReadAttachment_TextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text content"), 0o644))

	attachment, err := ReadAttachment(path)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", attachment.Name)
	assert.Equal(t, chat.AttachmentKindText, attachment.Kind)
	assert.Equal(t, "plain text content", attachment.Content)
}

func TestReadAttachment_Image(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixel.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o644))

	attachment, err := ReadAttachment(path)
	require.NoError(t, err)
	assert.Equal(t, chat.AttachmentKindImage, attachment.Kind)
	assert.True(t, strings.HasPrefix(attachment.Content, "data:image/png;base64,"),
		"image content must be a data URL, got %q", attachment.Content)
}

func TestReadAttachment_MissingFile(t *testing.T) {
	_, err := ReadAttachment(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
