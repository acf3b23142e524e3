package netx

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"
)

func readParts(t *testing.T, body io.Reader, contentType string) map[string]string {
	t.Helper()

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("bad content type %q: %v", contentType, err)
	}

	got := map[string]string{}
	r := multipart.NewReader(body, params["boundary"])
	for {
		p, err := r.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("NextPart: %v", err)
		}
		b, _ := io.ReadAll(p)
		key := p.FormName()
		if p.FileName() != "" {
			key = key + ":" + p.FileName() + ":" + p.Header.Get("Content-Type")
		}
		got[key] = string(b)
	}
	return got
}

func TestNewMultipart_FieldsAndFile(t *testing.T) {
	body, ct, err := NewMultipart(
		map[string]string{"fullName": "Ada", "age": "36"},
		&FilePart{Field: "image", Name: "me.png", ContentType: "image/png", Content: strings.NewReader("PNGDATA")},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := readParts(t, body, ct)
	want := map[string]string{
		"age":                    "36",
		"fullName":               "Ada",
		"image:me.png:image/png": "PNGDATA",
	}
	if len(got) != len(want) {
		t.Fatalf("parts = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("part %q = %q, want %q", k, got[k], v)
		}
	}
}

func TestNewMultipart_DefaultFileContentType(t *testing.T) {
	body, ct, err := NewMultipart(nil, &FilePart{Field: "image", Name: "x.bin", Content: strings.NewReader("x")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := readParts(t, body, ct)
	if _, ok := got["image:x.bin:application/octet-stream"]; !ok {
		t.Fatalf("missing octet-stream part: %v", got)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestNewMultipart_FileReadError(t *testing.T) {
	_, _, err := NewMultipart(nil, &FilePart{Field: "image", Name: "x", Content: failingReader{}})
	if err == nil || !strings.Contains(err.Error(), "copy file") {
		t.Fatalf("expected copy error, got %v", err)
	}
}
