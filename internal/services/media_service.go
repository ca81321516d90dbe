package services

import (
	"bufio"
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/maxaizer/job-board/internal/logger"
	"github.com/maxaizer/job-board/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

var (
	ErrUnsupportedPhoto = errors.New("photo must be a png, jpeg, gif or webp image")
	ErrPhotoTooLarge    = errors.New("photo is too large")
	ErrUploadFailed     = errors.New("failed to upload photo")
)

var photoExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type photoUploader interface {
	Upload(ctx context.Context, path string) (string, error)
}

type MediaService struct {
	uploader   photoUploader
	stagingDir string
	maxSize    int64
	timeout    time.Duration
}

func NewMediaService(uploader photoUploader, stagingDir string, maxSize int64, timeout time.Duration) (*MediaService, error) {
	if err := os.MkdirAll(stagingDir, 0755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	return &MediaService{
		uploader:   uploader,
		stagingDir: stagingDir,
		maxSize:    maxSize,
		timeout:    timeout,
	}, nil
}

// UploadPhoto stages the photo on disk, hands it to the media host and returns the
// hosted URL. The staged copy is removed in any case.
func (m *MediaService) UploadPhoto(ctx context.Context, photo io.Reader) (string, error) {

	path, err := m.stage(photo)
	if errors.Is(err, ErrUnsupportedPhoto) || errors.Is(err, ErrPhotoTooLarge) {
		return "", err
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeFs).Errorf("failed to remove staged photo %s: %v", path, err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	start := time.Now()
	url, err := m.uploader.Upload(ctx, path)
	metrics.MediaUploadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	return url, nil
}

func (m *MediaService) stage(photo io.Reader) (string, error) {
	reader := bufio.NewReaderSize(photo, 512)
	head, err := reader.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return "", errors.Wrap(err, "read photo")
	}

	extension, ok := photoExtensions[http.DetectContentType(head)]
	if !ok {
		return "", ErrUnsupportedPhoto
	}

	path := filepath.Join(m.stagingDir, uuid.NewString()+extension)
	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "stage photo")
	}

	written, err := io.Copy(file, io.LimitReader(reader, m.maxSize+1))
	closeErr := file.Close()

	switch {
	case err != nil:
		err = errors.Wrap(err, "stage photo")
	case closeErr != nil:
		err = errors.Wrap(closeErr, "stage photo")
	case written > m.maxSize:
		err = ErrPhotoTooLarge
	}
	if err != nil {
		_ = os.Remove(path)
		return "", err
	}

	return path, nil
}
