package handlers

import (
	"context"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"autovitrine/internal/domain"
	"autovitrine/internal/media"
)

// form wraps a request body so handlers can tell "field absent" from "field
// empty": partial updates overlay only fields that were actually sent.
type form struct {
	c  *fiber.Ctx
	mp *multipart.Form
}

func parseForm(c *fiber.Ctx) *form {
	f := &form{c: c}
	if mp, err := c.MultipartForm(); err == nil {
		f.mp = mp
	}
	return f
}

func (f *form) has(key string) bool {
	if f.mp != nil {
		_, ok := f.mp.Value[key]
		return ok
	}
	return f.c.Request().PostArgs().Has(key)
}

func (f *form) value(key string) string { return f.c.FormValue(key) }

func (f *form) values(key string) []string {
	if f.mp != nil {
		return f.mp.Value[key]
	}
	raw := f.c.Request().PostArgs().PeekMulti(key)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		out = append(out, string(v))
	}
	return out
}

// files accepts both bare and PHP-style bracketed keys ("photos" and
// "photos[]"), matching what the admin front-ends send.
func (f *form) files(key string) []*multipart.FileHeader {
	if f.mp == nil {
		return nil
	}
	return append(append([]*multipart.FileHeader{}, f.mp.File[key]...), f.mp.File[key+"[]"]...)
}

func (f *form) hasFiles(keys ...string) bool {
	for _, k := range keys {
		if len(f.files(k)) > 0 {
			return true
		}
	}
	return false
}

// saveUpload reads one multipart file and persists it through the media
// store.
func saveUpload(ctx context.Context, st media.Store, fh *multipart.FileHeader, forceKind string) (domain.MediaRef, error) {
	src, err := fh.Open()
	if err != nil {
		return domain.MediaRef{}, err
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return domain.MediaRef{}, err
	}
	return st.Save(ctx, data, fh.Filename, fh.Header.Get("Content-Type"), forceKind)
}
