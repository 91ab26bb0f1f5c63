package storage

import (
	"context"
	"io"
	"path"

	gcs "cloud.google.com/go/storage"
	"github.com/cyclopcam/logs"
	"google.golang.org/api/iterator"
)

// StorageGCS is a Google Cloud Storage-based blob store.
// All names are placed under prefix inside the bucket.
type StorageGCS struct {
	bucketName string
	prefix     string
	bucket     *gcs.BucketHandle
	log        logs.Log
}

func NewStorageGCS(log logs.Log, bucketName, prefix string) (*StorageGCS, error) {
	ctx := context.Background()
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	bucket := client.Bucket(bucketName)
	return &StorageGCS{
		bucketName: bucketName,
		prefix:     prefix,
		bucket:     bucket,
		log:        log,
	}, nil
}

func (s *StorageGCS) objectName(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

func (s *StorageGCS) WriteFile(name string) (io.WriteCloser, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	ctx := context.Background()
	w := s.bucket.Object(s.objectName(name)).NewWriter(ctx)
	return w, nil
}

func (s *StorageGCS) ReadFile(name string) (*File, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	ctx := context.Background()
	r, err := s.bucket.Object(s.objectName(name)).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	return &File{
		Reader:     r,
		ModifiedAt: r.Attrs.LastModified,
		Size:       r.Attrs.Size,
	}, nil
}

func (s *StorageGCS) DeleteFile(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	ctx := context.Background()
	return s.bucket.Object(s.objectName(name)).Delete(ctx)
}

func (s *StorageGCS) List(prefix string) ([]string, error) {
	ctx := context.Background()
	fullPrefix := prefix
	if s.prefix != "" {
		fullPrefix = s.prefix + "/" + prefix
	}
	it := s.bucket.Objects(ctx, &gcs.Query{Prefix: fullPrefix})
	names := []string{}
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		name := attrs.Name
		if s.prefix != "" {
			name = name[len(s.prefix)+1:]
		}
		names = append(names, name)
	}
	return names, nil
}

// URL of an object in a public bucket
func (s *StorageGCS) URL(name string) string {
	return "https://storage.googleapis.com/" + s.bucketName + "/" + s.objectName(name)
}
