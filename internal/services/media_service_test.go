package services

import (
	"bytes"
	"context"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var pngPhoto = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func stagedFiles(t *testing.T, dir string) []string {
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func Test_MediaService_UploadPhoto_ShouldStageUploadAndCleanUp(t *testing.T) {
	dir := t.TempDir()

	uploader := &mockUploader{}
	uploader.On("Upload", mock.Anything, mock.MatchedBy(func(path string) bool {
		content, err := os.ReadFile(path)
		return err == nil && bytes.Equal(content, pngPhoto) &&
			filepath.Dir(path) == dir && strings.HasSuffix(path, ".png")
	})).Return("https://i.ibb.co/photo.png", nil).Once()

	media, err := NewMediaService(uploader, dir, 1<<20, time.Second)
	require.NoError(t, err)

	url, err := media.UploadPhoto(context.Background(), bytes.NewReader(pngPhoto))
	require.NoError(t, err)
	assert.Equal(t, "https://i.ibb.co/photo.png", url)
	assert.Empty(t, stagedFiles(t, dir))
	uploader.AssertExpectations(t)
}

func Test_MediaService_UploadPhoto_WhenNotImage_ShouldReject(t *testing.T) {
	dir := t.TempDir()
	uploader := &mockUploader{}

	media, err := NewMediaService(uploader, dir, 1<<20, time.Second)
	require.NoError(t, err)

	_, err = media.UploadPhoto(context.Background(), strings.NewReader("just some text"))
	assert.ErrorIs(t, err, ErrUnsupportedPhoto)
	assert.Empty(t, stagedFiles(t, dir))
	uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func Test_MediaService_UploadPhoto_WhenTooLarge_ShouldReject(t *testing.T) {
	dir := t.TempDir()
	uploader := &mockUploader{}

	media, err := NewMediaService(uploader, dir, 16, time.Second)
	require.NoError(t, err)

	_, err = media.UploadPhoto(context.Background(), bytes.NewReader(pngPhoto))
	assert.ErrorIs(t, err, ErrPhotoTooLarge)
	assert.Empty(t, stagedFiles(t, dir))
	uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func Test_MediaService_UploadPhoto_WhenHostFails_ShouldCleanUp(t *testing.T) {
	dir := t.TempDir()

	uploader := &mockUploader{}
	uploader.On("Upload", mock.Anything, mock.Anything).Return("", errors.New("invalid key")).Once()

	media, err := NewMediaService(uploader, dir, 1<<20, time.Second)
	require.NoError(t, err)

	_, err = media.UploadPhoto(context.Background(), bytes.NewReader(pngPhoto))
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.ErrorContains(t, err, "invalid key")
	assert.NotErrorIs(t, err, ErrUnsupportedPhoto)
	assert.Empty(t, stagedFiles(t, dir))
}
