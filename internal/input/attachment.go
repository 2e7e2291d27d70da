package input

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"

	"github.com/askdeck/askdeck/internal/chat"
	"github.com/askdeck/askdeck/internal/util"
)

// ReadAttachment loads a file and classifies it for staging: media types
// under image/ become image attachments carried as a data URL, everything
// else is treated as decoded text.
func ReadAttachment(path string) (*chat.Attachment, error) {
	absPath, err := util.GetAbsolutePath(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read attachment %s", path)
	}

	name := filepath.Base(absPath)
	mime := mimetype.Detect(content)
	if strings.HasPrefix(mime.String(), "image/") {
		return &chat.Attachment{
			Name:    name,
			Kind:    chat.AttachmentKindImage,
			Content: encodeDataURL(mime.String(), content),
		}, nil
	}
	return &chat.Attachment{
		Name:    name,
		Kind:    chat.AttachmentKindText,
		Content: string(content),
	}, nil
}

func encodeDataURL(mime string, content []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(content))
}
