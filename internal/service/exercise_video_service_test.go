package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRequestUpload(t *testing.T) {
	store := &fakeStorage{}
	svc := NewExerciseVideoService(store)

	up, err := svc.RequestUpload(context.Background(), "coach-1", "Squat Demo.MOV", "Video/QuickTime")
	if err != nil {
		t.Fatalf("RequestUpload: %v", err)
	}
	if !strings.HasPrefix(up.ObjectKey, "exercise-videos/coach-1/") || !strings.HasSuffix(up.ObjectKey, ".mov") {
		t.Errorf("object key = %q", up.ObjectKey)
	}
	if !strings.Contains(up.UploadURL, "/put/"+up.ObjectKey) || !strings.Contains(up.UploadURL, "ct=video/quicktime") {
		t.Errorf("upload url = %q", up.UploadURL)
	}
	if !strings.Contains(up.VideoURL, "/get/"+up.ObjectKey) {
		t.Errorf("video url = %q", up.VideoURL)
	}
	if d := time.Until(up.ExpiresAt); d < 14*time.Minute || d > 16*time.Minute {
		t.Errorf("expires in %v, want about 15m", d)
	}
}

func TestRequestUploadErrors(t *testing.T) {
	ctx := context.Background()

	if _, err := NewExerciseVideoService(nil).RequestUpload(ctx, "c", "a.mp4", "video/mp4"); !errors.Is(err, ErrStorageNotConfigured) {
		t.Errorf("nil storage: err = %v", err)
	}

	svc := NewExerciseVideoService(&fakeStorage{})
	var verr *ValidationError
	if _, err := svc.RequestUpload(ctx, "c", "a.png", "image/png"); !errors.As(err, &verr) {
		t.Errorf("image type: err = %v", err)
	}
	if _, err := svc.RequestUpload(ctx, "c", "a.mp4", ""); !errors.As(err, &verr) {
		t.Errorf("empty type: err = %v", err)
	}

	failing := NewExerciseVideoService(&fakeStorage{err: errors.New("no creds")})
	if _, err := failing.RequestUpload(ctx, "c", "a.mp4", "video/mp4"); !errors.Is(err, ErrUploadURLError) {
		t.Errorf("presign failure: err = %v", err)
	}
}

func TestDeleteVideo(t *testing.T) {
	store := &fakeStorage{}
	svc := NewExerciseVideoService(store)
	ctx := context.Background()

	if err := svc.Delete(ctx, "coach-1", "exercise-videos/coach-1/abc.mp4"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(store.deleted) != 1 {
		t.Fatalf("deleted = %v", store.deleted)
	}

	for _, key := range []string{
		"exercise-videos/coach-2/abc.mp4",
		"exercise-videos/coach-1/../coach-2/abc.mp4",
		"exercise-videos/coach-10/abc.mp4",
		"other/abc.mp4",
	} {
		if err := svc.Delete(ctx, "coach-1", key); !errors.Is(err, ErrVideoAccessDenied) {
			t.Errorf("%s: err = %v, want ErrVideoAccessDenied", key, err)
		}
	}
	var verr *ValidationError
	if err := svc.Delete(ctx, "coach-1", " "); !errors.As(err, &verr) {
		t.Errorf("blank key: err = %v", err)
	}
	if len(store.deleted) != 1 {
		t.Errorf("deleted = %v, want only the owned key", store.deleted)
	}
}

func TestVideoExtension(t *testing.T) {
	cases := []struct{ file, ct, want string }{
		{"a.mp4", "video/mp4", ".mp4"},
		{"noext", "video/webm", ".webm"},
		{"weird.m p4", "video/mp4;codecs=avc1", ".mp4"},
		{"", "video/x-msvideo", ""},
	}
	for _, c := range cases {
		if got := videoExtension(c.file, c.ct); got != c.want {
			t.Errorf("videoExtension(%q, %q) = %q, want %q", c.file, c.ct, got, c.want)
		}
	}
}
