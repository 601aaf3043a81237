package catalog

import (
	"context"
	"fmt"
	"io"
	"koos-service/internal/app/config"
	"koos-service/internal/app/contracts"
	"koos-service/internal/pkg/constvars"
	"koos-service/internal/pkg/exceptions"
	"koos-service/internal/pkg/questionnaires"
	"os"

	"github.com/minio/minio-go/v7"
	"go.mongodb.org/mongo-driver/mongo"
)

type embeddedSource struct{}

func NewEmbeddedSource() contracts.CatalogSource {
	return &embeddedSource{}
}

func (s *embeddedSource) Name() string {
	return constvars.CatalogSourceEmbedded
}

func (s *embeddedSource) Load(ctx context.Context) (*questionnaires.Catalog, error) {
	return questionnaires.Default(), nil
}

type fileSource struct {
	path string
}

func NewFileSource(path string) contracts.CatalogSource {
	return &fileSource{path: path}
}

func (s *fileSource) Name() string {
	return constvars.CatalogSourceFile + ":" + s.path
}

func (s *fileSource) Load(ctx context.Context) (*questionnaires.Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, exceptions.ErrCatalogLoad(err, s.Name())
	}
	catalog, err := questionnaires.ParseCatalog(data)
	if err != nil {
		return nil, exceptions.ErrCatalogLoad(err, s.Name())
	}
	return catalog, nil
}

// minioSource reads a catalog document stored as a single object.
type minioSource struct {
	bucketName string
	objectName string
	open       func(ctx context.Context) (io.ReadCloser, error)
}

func NewMinioSource(client *minio.Client, bucketName, objectName string) contracts.CatalogSource {
	return &minioSource{
		bucketName: bucketName,
		objectName: objectName,
		open: func(ctx context.Context) (io.ReadCloser, error) {
			return client.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
		},
	}
}

func (s *minioSource) Name() string {
	return fmt.Sprintf("%s:%s/%s", constvars.CatalogSourceMinio, s.bucketName, s.objectName)
}

func (s *minioSource) Load(ctx context.Context) (*questionnaires.Catalog, error) {
	object, err := s.open(ctx)
	if err != nil {
		return nil, exceptions.ErrMinioGetObject(err, s.objectName, s.bucketName)
	}
	defer object.Close()

	// minio reports a missing object on the first read, not on GetObject
	data, err := io.ReadAll(object)
	if err != nil {
		return nil, exceptions.ErrMinioGetObject(err, s.objectName, s.bucketName)
	}

	catalog, err := questionnaires.ParseCatalog(data)
	if err != nil {
		return nil, exceptions.ErrCatalogLoad(err, s.Name())
	}
	return catalog, nil
}

// NewSource picks the catalog source configured for the service. Remote
// sources need their client; a nil client is a configuration error.
func NewSource(cfg config.AppCatalog, minioClient *minio.Client, mongoDB *mongo.Database) (contracts.CatalogSource, error) {
	switch cfg.Source {
	case constvars.CatalogSourceEmbedded, "":
		return NewEmbeddedSource(), nil
	case constvars.CatalogSourceFile:
		return NewFileSource(cfg.FilePath), nil
	case constvars.CatalogSourceMinio:
		if minioClient == nil {
			return nil, exceptions.ErrCatalogSource(fmt.Errorf("minio client is not configured"), cfg.Source)
		}
		return NewMinioSource(minioClient, cfg.MinioBucketName, cfg.MinioObjectName), nil
	case constvars.CatalogSourceMongo:
		if mongoDB == nil {
			return nil, exceptions.ErrCatalogSource(fmt.Errorf("mongo database is not configured"), cfg.Source)
		}
		return NewMongoSource(mongoDB, cfg.MongoCollection), nil
	default:
		return nil, exceptions.ErrCatalogSource(nil, cfg.Source)
	}
}
