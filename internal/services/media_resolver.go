package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/LackyKannauje/college-updates/internal/models"
	"github.com/LackyKannauje/college-updates/pkg/storage"
)

const (
	bucketPostImages      = "post_images"
	bucketPostVideos      = "post_videos"
	bucketPostPDFs        = "post_pdfs"
	bucketPostOthers      = "post_others"
	bucketProfilePictures = "profile_pictures"
)

// MediaResolver moves uploads onto the asset host and releases them again.
type MediaResolver interface {
	// Ingest stores every upload and returns their references in upload order.
	// If one upload fails, the ones already stored are released and the error returned.
	Ingest(ctx context.Context, uploads []models.Upload) ([]models.Media, error)
	// IngestProfilePicture stores a profile picture and returns its URL.
	IngestProfilePicture(ctx context.Context, upload models.Upload) (string, error)
	// ReleaseAll releases each media asset. Failures are logged and skipped.
	ReleaseAll(ctx context.Context, media []models.Media)
	// ReleaseProfilePicture releases a profile picture by URL. Failures are logged.
	ReleaseProfilePicture(ctx context.Context, pictureURL string)
}

type mediaResolver struct {
	store storage.AssetStore
	newID func() string
}

// NewMediaResolver creates a resolver backed by the given asset store.
func NewMediaResolver(store storage.AssetStore) MediaResolver {
	return &mediaResolver{
		store: store,
		newID: func() string { return uuid.NewString() },
	}
}

func (r *mediaResolver) Ingest(ctx context.Context, uploads []models.Upload) ([]models.Media, error) {
	media := make([]models.Media, 0, len(uploads))
	for _, u := range uploads {
		contentType, err := sniff(u)
		if err != nil {
			r.ReleaseAll(ctx, media)
			return nil, fmt.Errorf("read %s: %w", u.Filename, err)
		}
		kind := models.ClassifyMedia(contentType)
		key := bucketFor(kind) + "/media-" + r.newID()

		assetURL, err := r.store.Store(ctx, key, contentType, u.File)
		if err != nil {
			r.ReleaseAll(ctx, media)
			return nil, fmt.Errorf("store %s: %w", u.Filename, err)
		}
		media = append(media, models.Media{URL: assetURL, Type: kind})
	}
	return media, nil
}

func (r *mediaResolver) IngestProfilePicture(ctx context.Context, upload models.Upload) (string, error) {
	contentType, err := sniff(upload)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", upload.Filename, err)
	}
	key := bucketProfilePictures + "/profile-" + r.newID()
	assetURL, err := r.store.Store(ctx, key, contentType, upload.File)
	if err != nil {
		return "", fmt.Errorf("store %s: %w", upload.Filename, err)
	}
	return assetURL, nil
}

func (r *mediaResolver) ReleaseAll(ctx context.Context, media []models.Media) {
	for _, m := range media {
		r.release(ctx, m.URL, resourceTypeFor(m.Type))
	}
}

func (r *mediaResolver) ReleaseProfilePicture(ctx context.Context, pictureURL string) {
	if pictureURL == "" {
		return
	}
	r.release(ctx, pictureURL, "image")
}

// release frees one asset. The resource class recorded in the URL wins over
// fallback, since the host picks it at upload time.
func (r *mediaResolver) release(ctx context.Context, assetURL, fallback string) {
	key, ok := AssetKeyFromURL(assetURL)
	if !ok {
		slog.WarnContext(ctx, "cannot derive asset key", "url", assetURL)
		return
	}
	resourceType := fallback
	if hosted, ok := hostedResourceType(assetURL); ok {
		resourceType = hosted
	}
	if err := r.store.Release(ctx, key, resourceType); err != nil {
		slog.WarnContext(ctx, "failed to release asset", "key", key, "error", err)
	}
}

// AssetKeyFromURL derives "<bucket>/<name>" from a stored asset URL: the last
// path segment without its extension, prefixed by the segment before it.
func AssetKeyFromURL(assetURL string) (string, bool) {
	u, err := url.Parse(assetURL)
	if err != nil {
		return "", false
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 {
		return "", false
	}
	base := segments[len(segments)-1]
	name := strings.TrimSuffix(base, path.Ext(base))
	bucket := segments[len(segments)-2]
	if name == "" || bucket == "" {
		return "", false
	}
	return bucket + "/" + name, true
}

// hostedResourceType reads the resource class from a Cloudinary delivery URL
// (".../<class>/upload/..."). Other hosts carry none.
func hostedResourceType(assetURL string) (string, bool) {
	u, err := url.Parse(assetURL)
	if err != nil {
		return "", false
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 1; i < len(segments); i++ {
		if segments[i] != "upload" {
			continue
		}
		switch segments[i-1] {
		case "image", "video", "raw":
			return segments[i-1], true
		}
	}
	return "", false
}

func bucketFor(kind models.MediaKind) string {
	switch kind {
	case models.MediaImage:
		return bucketPostImages
	case models.MediaVideo:
		return bucketPostVideos
	case models.MediaPDF:
		return bucketPostPDFs
	default:
		return bucketPostOthers
	}
}

// resourceTypeFor guesses the asset host's resource class from a media kind when
// the URL does not record it. PDFs are stored as images on Cloudinary.
func resourceTypeFor(kind models.MediaKind) string {
	switch kind {
	case models.MediaImage, models.MediaPDF:
		return "image"
	case models.MediaVideo:
		return "video"
	default:
		return "raw"
	}
}

// sniff detects the content type from the file bytes and rewinds the file.
// A generic result falls back to the type the client declared.
func sniff(u models.Upload) (string, error) {
	mt, err := mimetype.DetectReader(u.File)
	if err != nil {
		return "", err
	}
	if _, err := u.File.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	detected := mt.String()
	if mt.Is("application/octet-stream") && u.ContentType != "" {
		return u.ContentType, nil
	}
	return detected, nil
}
