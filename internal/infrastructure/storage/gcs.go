// Package storage implementa el almacén de comprobantes sobre Google Cloud Storage.
package storage

import (
	"bytes"
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/jhoicas/Distriops-api/internal/application/settlement"
)

var _ settlement.BlobStore = (*GCSStore)(nil)

// GCSStore almacén de archivos en un bucket de GCS.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore construye el almacén. credentialsFile vacío usa las credenciales
// por defecto del entorno (ADC).
func NewGCSStore(ctx context.Context, bucket, credentialsFile string) (*GCSStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs: bucket requerido")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs: crear cliente: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

// Upload sube el objeto y retorna su URL pública.
func (s *GCSStore) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	w := s.client.Bucket(s.bucket).Object(path).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := bytes.NewReader(data).WriteTo(w); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs: escribir objeto: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs: cerrar writer: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, path), nil
}

// Remove elimina el objeto del bucket.
func (s *GCSStore) Remove(ctx context.Context, path string) error {
	if err := s.client.Bucket(s.bucket).Object(path).Delete(ctx); err != nil {
		return fmt.Errorf("gcs: eliminar objeto: %w", err)
	}
	return nil
}

// Close libera el cliente subyacente.
func (s *GCSStore) Close() error {
	return s.client.Close()
}
