// Package storage keeps uploaded profile images, either in a local
// directory or in an S3-compatible bucket.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/google/uuid"
)

// Location tells the uploads route how to answer for a stored image:
// stream FilePath, or redirect to RedirectURL.
type Location struct {
	FilePath    string
	RedirectURL string
}

// ImageStore saves images under generated names and resolves those names
// back when they are requested. Removing a missing name is not an error.
type ImageStore interface {
	Save(ctx context.Context, img *Image) (string, error)
	Resolve(ctx context.Context, name string) (*Location, error)
	Remove(ctx context.Context, name string) error
}

// Image is an upload that passed ReadImage.
type Image struct {
	Data        []byte
	ContentType string
}

// ReadImage reads at most limit bytes from r and checks that they look like
// an image. Larger input is common.ErrUploadTooLarge, anything that does not
// sniff as image/* is common.ErrUnsupportedImage.
func ReadImage(r io.Reader, limit int64) (*Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, common.ErrUploadTooLarge
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, common.ErrUnsupportedImage
	}
	return &Image{Data: data, ContentType: contentType}, nil
}

func (img *Image) reader() io.Reader { return bytes.NewReader(img.Data) }

// extByType covers every image type http.DetectContentType reports.
var extByType = map[string]string{
	"image/png":    ".png",
	"image/jpeg":   ".jpg",
	"image/gif":    ".gif",
	"image/webp":   ".webp",
	"image/bmp":    ".bmp",
	"image/x-icon": ".ico",
}

// newName returns a fresh object name. The extension comes from the sniffed
// content type only, so the name served back never claims another type.
func newName(contentType string) string {
	return uuid.NewString() + extByType[contentType]
}

// validName rejects anything that is not a single plain path element.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}
