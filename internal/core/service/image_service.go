package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/codetrail/marketplace-api/internal/core/domain"
	"github.com/codetrail/marketplace-api/internal/core/ports"
)

const (
	fileNameLength     = 15
	maxFileNameRetries = 10
	fileNameAlphabet   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// FileStore persists raw upload bytes and reports the public path stored in
// image metadata.
type FileStore interface {
	Exists(module, name, ext string) bool
	Save(module, name, ext string, data []byte) (string, error)
}

// ImageService decodes uploaded payloads, writes them through the FileStore
// and records metadata. Stored images are immutable.
type ImageService struct {
	repo  ports.ImageRepository
	store FileStore
	log   zerolog.Logger
}

func NewImageService(repo ports.ImageRepository, store FileStore, log zerolog.Logger) *ImageService {
	return &ImageService{repo: repo, store: store, log: log}
}

func (s *ImageService) Save(ctx context.Context, input ports.UploadImageInput, module string) (*domain.Image, error) {
	ext, err := mimeSubtype(input.Type)
	if err != nil {
		return nil, err
	}

	data, err := decodePayload(input.File)
	if err != nil {
		return nil, err
	}

	name, err := s.uniqueFileName(module, ext)
	if err != nil {
		return nil, err
	}

	path, err := s.store.Save(module, name, ext, data)
	if err != nil {
		return nil, fmt.Errorf("store image file: %w", err)
	}

	image := &domain.Image{
		Name:   input.Name,
		Type:   input.Type,
		Size:   input.Size,
		Path:   path,
		Module: module,
	}

	stored, err := s.repo.Create(ctx, image)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("module", module).Str("path", path).Int64("size", stored.Size).Msg("image stored")
	return stored, nil
}

// uniqueFileName picks a random name, retrying on the rare on-disk collision.
func (s *ImageService) uniqueFileName(module, ext string) (string, error) {
	for i := 0; i < maxFileNameRetries; i++ {
		name := randomFileName(fileNameLength)
		if !s.store.Exists(module, name, ext) {
			return name, nil
		}
	}
	return "", fmt.Errorf("no free file name after %d attempts", maxFileNameRetries)
}

func randomFileName(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = fileNameAlphabet[int(b[i])%len(fileNameAlphabet)]
	}
	return string(b)
}

// mimeSubtype extracts the extension from a MIME type, e.g. "image/jpeg"
// yields "jpeg".
func mimeSubtype(mimeType string) (string, error) {
	parts := strings.SplitN(mimeType, "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", domain.ErrInvalidImagePayload
	}
	return parts[1], nil
}

// decodePayload strips an optional data-URI prefix and base64-decodes the
// remainder.
func decodePayload(file string) ([]byte, error) {
	if file == "" {
		return nil, domain.ErrInvalidImagePayload
	}
	raw := file[strings.Index(file, ",")+1:]
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, domain.ErrInvalidImagePayload
	}
	return data, nil
}
