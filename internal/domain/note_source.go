package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// NoteSource is raw text imported from a file or stdin and turned into a note.
type NoteSource struct {
	Type    *string
	Path    *string
	Content []byte
}

func (s *NoteSource) ResolveType() (ret string, err error) {
	if s.Type != nil {
		ret = *s.Type
		return
	}
	if s.Content != nil {
		ret = mimetype.Detect(s.Content).String()
		return
	}
	if s.Path != nil {
		var mime *mimetype.MIME
		if mime, err = mimetype.DetectFile(*s.Path); err != nil {
			return
		}
		ret = mime.String()
		return
	}
	err = fmt.Errorf("note source has no type and no content to derive it from")
	return
}

func (s *NoteSource) ContentBytes() (ret []byte, err error) {
	if s.Content != nil {
		ret = s.Content
		return
	}
	if s.Path != nil {
		ret, err = os.ReadFile(*s.Path)
		return
	}
	err = fmt.Errorf("no content available")
	return
}

// ToNote splits the source into a title (first non-empty line, markdown heading marks removed) and a body.
func (s *NoteSource) ToNote() (ret *Note, err error) {
	var mimeType string
	if mimeType, err = s.ResolveType(); err != nil {
		return
	}
	if !strings.HasPrefix(mimeType, "text/") {
		err = fmt.Errorf("unsupported note type %s: only text can be imported", mimeType)
		return
	}

	var content []byte
	if content, err = s.ContentBytes(); err != nil {
		return
	}

	text := strings.TrimSpace(string(content))
	title, body, _ := strings.Cut(text, "\n")
	title = strings.TrimSpace(strings.TrimLeft(title, "# "))
	if title == "" && s.Path != nil {
		title = strings.TrimSuffix(filepath.Base(*s.Path), filepath.Ext(*s.Path))
	}
	ret = &Note{Title: title, Body: strings.TrimSpace(body)}
	return
}

func NewNoteSource(value string) (ret *NoteSource, err error) {
	var absPath string
	if absPath, err = filepath.Abs(value); err != nil {
		return
	}
	if _, err = os.Stat(absPath); os.IsNotExist(err) {
		err = fmt.Errorf("file %s does not exist", value)
		return
	}

	var mime *mimetype.MIME
	if mime, err = mimetype.DetectFile(absPath); err != nil {
		return
	}
	mimeType := mime.String()
	ret = &NoteSource{Type: &mimeType, Path: &absPath}
	return
}
