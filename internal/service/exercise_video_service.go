package service

import (
	"connectfitness/coach-api/internal/storage"
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrStorageNotConfigured = errors.New("video storage is not configured")
	ErrVideoAccessDenied    = errors.New("video does not belong to this coach")
	ErrUploadURLError       = errors.New("failed to generate upload URL")
	ErrDownloadURLError     = errors.New("failed to generate download URL")
)

const exerciseVideoPrefix = "exercise-videos"

var safeExtension = regexp.MustCompile(`^[a-z0-9]{1,8}$`)

// VideoUpload tells the coach where to PUT a demo video and how to link it
// from an exercise's videoUrl.
type VideoUpload struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectKey string    `json:"objectKey"`
	VideoURL  string    `json:"videoUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ExerciseVideoService interface {
	RequestUpload(ctx context.Context, coachID, fileName, contentType string) (*VideoUpload, error)
	Delete(ctx context.Context, coachID, objectKey string) error
}

type exerciseVideoService struct {
	fileStorage storage.FileStorage
	expiry      time.Duration
	now         func() time.Time
}

// NewExerciseVideoService accepts a nil FileStorage; every call then fails
// with ErrStorageNotConfigured.
func NewExerciseVideoService(fileStorage storage.FileStorage) ExerciseVideoService {
	return &exerciseVideoService{
		fileStorage: fileStorage,
		expiry:      storage.DefaultPresignedURLExpiry,
		now:         time.Now,
	}
}

func (s *exerciseVideoService) RequestUpload(ctx context.Context, coachID, fileName, contentType string) (*VideoUpload, error) {
	if s.fileStorage == nil {
		return nil, ErrStorageNotConfigured
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if contentType == "" {
		return nil, &ValidationError{Fields: []string{"contentType"}}
	}
	if !strings.HasPrefix(contentType, "video/") {
		return nil, &ValidationError{Fields: []string{"contentType"}, Message: "contentType must be a video type"}
	}

	objectKey := path.Join(exerciseVideoPrefix, coachID, uuid.NewString()+videoExtension(fileName, contentType))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, s.expiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadURLError, err)
	}
	videoURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, s.expiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownloadURLError, err)
	}

	return &VideoUpload{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
		VideoURL:  videoURL,
		ExpiresAt: s.now().UTC().Add(s.expiry),
	}, nil
}

// Delete removes a video the coach uploaded. Keys outside the coach's prefix are refused.
func (s *exerciseVideoService) Delete(ctx context.Context, coachID, objectKey string) error {
	if s.fileStorage == nil {
		return ErrStorageNotConfigured
	}
	if strings.TrimSpace(objectKey) == "" {
		return &ValidationError{Fields: []string{"key"}}
	}
	owned := path.Join(exerciseVideoPrefix, coachID) + "/"
	if path.Clean(objectKey) != objectKey || !strings.HasPrefix(objectKey, owned) {
		return ErrVideoAccessDenied
	}
	return s.fileStorage.DeleteObject(ctx, objectKey)
}

// videoExtension prefers the uploaded file's extension and falls back to the MIME subtype.
func videoExtension(fileName, contentType string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(fileName), "."))
	if !safeExtension.MatchString(ext) {
		ext = strings.TrimPrefix(contentType, "video/")
		if i := strings.IndexAny(ext, ";+"); i >= 0 {
			ext = ext[:i]
		}
	}
	if !safeExtension.MatchString(ext) {
		return ""
	}
	return "." + ext
}
