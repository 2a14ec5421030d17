package dtos

import (
	"strings"
	"time"

	"github.com/museum-catalog/museum-backend/src/i18n"
)

const dateLayout = "2006-01-02"

// Renderer turns models into public views for one request: localized strings
// are resolved in the requested language and media paths become URLs.
type Renderer struct {
	lang     i18n.Language
	mediaURL string
}

func NewRenderer(lang i18n.Language, mediaURL string) *Renderer {
	if !lang.Valid() {
		lang = i18n.Default
	}
	return &Renderer{lang: lang, mediaURL: strings.TrimSuffix(mediaURL, "/")}
}

func (r *Renderer) Lang() i18n.Language { return r.lang }

func (r *Renderer) text(t i18n.Text) string {
	return t.In(r.lang)
}

// MediaURL returns the public URL of a stored file, or nil when there is none.
func (r *Renderer) MediaURL(path string) *string {
	if path == "" {
		return nil
	}
	url := r.mediaURL + "/" + strings.TrimPrefix(path, "/")
	return &url
}

func (r *Renderer) mediaPtr(path *string) *string {
	if path == nil {
		return nil
	}
	return r.MediaURL(*path)
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
