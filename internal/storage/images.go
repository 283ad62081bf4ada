package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"path"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	BucketName       = "product-images"
	PublicPathPrefix = "/images/"
)

var (
	ErrImageNotFound    = errors.New("image not found")
	ErrUnsupportedImage = errors.New("unsupported image type")
)

var allowedExtensions = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

type Image struct {
	io.ReadCloser
	Name        string
	ContentType string
	Size        int64
}

// ImageStore keeps product images in a GridFS bucket.
type ImageStore struct {
	db  *mongo.Database
	now func() time.Time
}

func NewImageStore(db *mongo.Database) *ImageStore {
	return &ImageStore{db: db, now: time.Now}
}

// bucket returns a bucket whose deadlines follow ctx. Buckets hold per-call
// deadline state so one is built per operation.
func (s *ImageStore) bucket(ctx context.Context) (*gridfs.Bucket, error) {
	b, err := gridfs.NewBucket(s.db, options.GridFSBucket().SetName(BucketName))
	if err != nil {
		return nil, fmt.Errorf("open bucket: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := b.SetReadDeadline(deadline); err != nil {
			return nil, err
		}
		if err := b.SetWriteDeadline(deadline); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Upload stores the content of r under a generated name derived from
// originalName and returns that name.
func (s *ImageStore) Upload(ctx context.Context, originalName string, r io.Reader) (string, error) {
	name, contentType, err := GenerateName(originalName, s.now())
	if err != nil {
		return "", err
	}

	b, err := s.bucket(ctx)
	if err != nil {
		return "", err
	}
	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "content_type", Value: contentType}})
	if _, err := b.UploadFromStream(name, r, opts); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return name, nil
}

// Open streams a stored image. The caller closes it.
func (s *ImageStore) Open(ctx context.Context, name string) (*Image, error) {
	b, err := s.bucket(ctx)
	if err != nil {
		return nil, err
	}
	stream, err := b.OpenDownloadStreamByName(name)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}

	file := stream.GetFile()
	img := &Image{ReadCloser: stream, Name: name, Size: file.Length}
	var meta struct {
		ContentType string `bson:"content_type"`
	}
	if file.Metadata != nil && bson.Unmarshal(file.Metadata, &meta) == nil {
		img.ContentType = meta.ContentType
	}
	if img.ContentType == "" {
		img.ContentType = "application/octet-stream"
	}
	return img, nil
}

// GenerateName builds "<unix millis>-<random>.<ext>" for an uploaded file and
// reports the content type implied by its extension.
func GenerateName(originalName string, now time.Time) (string, string, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(originalName), "."))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedImage, originalName)
	}
	suffix := strconv.FormatInt(rand.Int63(), 36)
	if len(suffix) > 7 {
		suffix = suffix[:7]
	}
	return fmt.Sprintf("%d-%s.%s", now.UnixMilli(), suffix, ext), contentType, nil
}

func PublicURL(name string) string {
	return PublicPathPrefix + name
}
