package media

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"civicconnect/internal/pkg/ident"
)

const (
	// MaxUploadSize is the report photo limit; contributions use
	// MaxContributionSize per file.
	MaxUploadSize       = 6 * 1024 * 1024
	MaxContributionSize = 5 * 1024 * 1024

	URLBase = "/uploads"
)

// allowedExts mirrors the jpeg|jpg|png|webp allow-list; MIME is checked
// separately against the sniffed content type.
var allowedExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
}

var allowedMimes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var dataURIPattern = regexp.MustCompile(`^data:image/(jpeg|jpg|png|webp);base64,(.+)$`)

// Service validates and durably stores report/contribution images. Files are
// written under a single uploads dir and referenced by a stable relative path
// ("/uploads/<name>"). The caller owns cleanup on downstream failures; Delete
// is best-effort and idempotent.
type Service struct {
	baseDir string
}

func NewService(baseDir string) (*Service, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Service{baseDir: baseDir}, nil
}

// SaveMultipart stores an uploaded file and returns its relative path.
func (s *Service) SaveMultipart(fh *multipart.FileHeader, limit int64) (string, error) {
	if fh.Size == 0 {
		return "", ErrEmptyFile
	}
	if fh.Size > limit {
		return "", ErrPayloadTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExts[ext] {
		return "", ErrInvalidMediaType
	}

	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	head := make([]byte, 512)
	n, _ := io.ReadFull(file, head)
	if !sniffAllowed(head[:n]) {
		return "", ErrInvalidMediaType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	name := ident.FileName(ext)
	absPath := filepath.Join(s.baseDir, name)

	dst, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(absPath)
		return "", fmt.Errorf("write file: %w", err)
	}

	return path.Join(URLBase, name), nil
}

// SaveBase64 stores a camera capture sent as a data URI
// ("data:image/<type>;base64,<data>") and returns its relative path.
func (s *Service) SaveBase64(dataURI string, limit int64) (string, error) {
	m := dataURIPattern.FindStringSubmatch(strings.TrimSpace(dataURI))
	if m == nil {
		return "", ErrMalformedEncoding
	}

	raw, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return "", ErrMalformedEncoding
	}
	if len(raw) == 0 {
		return "", ErrEmptyFile
	}
	if int64(len(raw)) > limit {
		return "", ErrPayloadTooLarge
	}
	if !sniffAllowed(raw) {
		return "", ErrInvalidMediaType
	}

	ext := "." + m[1]
	if ext == ".jpeg" {
		ext = ".jpg"
	}

	name := ident.FileName(ext)
	absPath := filepath.Join(s.baseDir, name)
	if err := os.WriteFile(absPath, raw, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return path.Join(URLBase, name), nil
}

// Delete removes a stored file by its relative path. Missing files are not
// an error; deletion is best-effort cleanup on every exit path.
func (s *Service) Delete(relPath string) error {
	if relPath == "" {
		return nil
	}
	// only the basename is trusted; relPath comes back from records/drafts
	name := path.Base(relPath)
	if name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.baseDir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists reports whether the backing file is still on disk.
func (s *Service) Exists(relPath string) bool {
	_, err := os.Stat(filepath.Join(s.baseDir, path.Base(relPath)))
	return err == nil
}

func sniffAllowed(head []byte) bool {
	mime := http.DetectContentType(head)
	mime = strings.Split(mime, ";")[0]
	return allowedMimes[mime]
}
