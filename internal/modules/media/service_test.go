package media

import (
	"bytes"
	"encoding/base64"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

func pngBytes(size int) []byte {
	b := make([]byte, size)
	copy(b, pngMagic)
	return b
}

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("photo", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["photo"][0]
}

func newService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	svc, err := NewService(dir)
	require.NoError(t, err)
	return svc, dir
}

func dirEntries(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func TestSaveMultipart_StoresFile(t *testing.T) {
	svc, dir := newService(t)

	rel, err := svc.SaveMultipart(fileHeader(t, "pothole.png", pngBytes(1024)), MaxUploadSize)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rel, "/uploads/"))
	assert.True(t, strings.HasSuffix(rel, ".png"))
	assert.FileExists(t, filepath.Join(dir, filepath.Base(rel)))
}

func TestSaveMultipart_DisguisedExecutableRejected(t *testing.T) {
	svc, dir := newService(t)

	// .jpg extension but not an image payload
	_, err := svc.SaveMultipart(fileHeader(t, "evil.jpg", []byte("MZ\x90\x00 not an image at all")), MaxUploadSize)
	assert.ErrorIs(t, err, ErrInvalidMediaType)
	assert.Zero(t, dirEntries(t, dir), "no file may be retained")
}

func TestSaveMultipart_DisallowedExtension(t *testing.T) {
	svc, dir := newService(t)

	_, err := svc.SaveMultipart(fileHeader(t, "tool.exe", pngBytes(64)), MaxUploadSize)
	assert.ErrorIs(t, err, ErrInvalidMediaType)
	assert.Zero(t, dirEntries(t, dir))
}

func TestSaveMultipart_TooLarge(t *testing.T) {
	svc, dir := newService(t)

	_, err := svc.SaveMultipart(fileHeader(t, "big.png", pngBytes(2048)), 1024)
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
	assert.Zero(t, dirEntries(t, dir))
}

func TestSaveMultipart_Empty(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.SaveMultipart(fileHeader(t, "none.png", nil), MaxUploadSize)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestSaveBase64_StoresCapture(t *testing.T) {
	svc, dir := newService(t)

	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(256))
	rel, err := svc.SaveBase64(uri, MaxUploadSize)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(rel, ".png"))
	assert.FileExists(t, filepath.Join(dir, filepath.Base(rel)))
}

func TestSaveBase64_Malformed(t *testing.T) {
	svc, _ := newService(t)

	for _, uri := range []string{
		"",
		"data:image/png;base64",
		"data:text/plain;base64,aGVsbG8=",
		"data:image/png;base64,!!!not-base64!!!",
	} {
		_, err := svc.SaveBase64(uri, MaxUploadSize)
		assert.ErrorIs(t, err, ErrMalformedEncoding, "uri=%q", uri)
	}
}

func TestSaveBase64_NonImagePayload(t *testing.T) {
	svc, dir := newService(t)

	uri := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("plain text payload here"))
	_, err := svc.SaveBase64(uri, MaxUploadSize)
	assert.ErrorIs(t, err, ErrInvalidMediaType)
	assert.Zero(t, dirEntries(t, dir))
}

func TestDelete_Idempotent(t *testing.T) {
	svc, _ := newService(t)

	rel, err := svc.SaveBase64("data:image/png;base64,"+base64.StdEncoding.EncodeToString(pngBytes(64)), MaxUploadSize)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(rel))
	assert.False(t, svc.Exists(rel))
	// already gone, still fine
	assert.NoError(t, svc.Delete(rel))
	assert.NoError(t, svc.Delete(""))
}
