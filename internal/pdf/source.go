package pdf

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	pdferrors "github.com/zed-charania/Meridian/internal/pdf/errors"
)

const s3Scheme = "s3://"

// S3Options configures access to an S3-compatible object store holding the
// template.
type S3Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Secure    bool
}

// IsObjectLocation reports whether location names an object store key
// rather than a local file.
func IsObjectLocation(location string) bool {
	return strings.HasPrefix(location, s3Scheme)
}

// splitObjectLocation parses s3://bucket/key.
func splitObjectLocation(location string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(location, s3Scheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid object location %q: want s3://bucket/key", location)
	}
	return bucket, key, nil
}

// readSource loads template bytes from a file path or an s3:// location.
func readSource(ctx context.Context, location string, validator *Validator, s3 S3Options) ([]byte, error) {
	if location == "" {
		return nil, pdferrors.New(pdferrors.ErrorTypeTemplateNotFound, "no template configured")
	}
	if IsObjectLocation(location) {
		return readObject(ctx, location, validator, s3)
	}
	return readFile(location, validator)
}

func readFile(path string, validator *Validator) ([]byte, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, pdferrors.Wrap(pdferrors.ErrorTypeTemplateNotFound, "template not found", err).WithContext(path)
	}
	if err := validator.ValidateFile(path); err != nil {
		return nil, pdferrors.Wrap(pdferrors.ErrorTypeInvalidTemplate, "template rejected", err).WithContext(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pdferrors.Wrap(pdferrors.ErrorTypeTemplateNotFound, "failed to read template", err).WithContext(path)
	}
	return data, nil
}

func readObject(ctx context.Context, location string, validator *Validator, opts S3Options) ([]byte, error) {
	bucket, key, err := splitObjectLocation(location)
	if err != nil {
		return nil, pdferrors.Wrap(pdferrors.ErrorTypeInvalidRequest, "bad template location", err)
	}
	if opts.Endpoint == "" {
		return nil, pdferrors.New(pdferrors.ErrorTypeInvalidRequest, "s3 endpoint is required for object templates").WithContext(location)
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.Secure,
	})
	if err != nil {
		return nil, pdferrors.Wrap(pdferrors.ErrorTypeTemplateNotFound, "failed to create object store client", err)
	}

	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, pdferrors.Wrap(pdferrors.ErrorTypeTemplateNotFound, "failed to fetch template", err).WithContext(location)
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		if minio.ToErrorResponse(err).StatusCode == http.StatusNotFound {
			return nil, pdferrors.Wrap(pdferrors.ErrorTypeTemplateNotFound, "template not found", err).WithContext(location)
		}
		return nil, pdferrors.Wrap(pdferrors.ErrorTypeTemplateNotFound, "failed to stat template", err).WithContext(location)
	}
	if err := validator.ValidateSize(info.Size); err != nil {
		return nil, pdferrors.Wrap(pdferrors.ErrorTypeInvalidTemplate, "template rejected", err).WithContext(location)
	}

	data, err := io.ReadAll(io.LimitReader(obj, info.Size+1))
	if err != nil {
		return nil, pdferrors.Wrap(pdferrors.ErrorTypeTemplateNotFound, "failed to read template", err).WithContext(location)
	}
	return data, nil
}
