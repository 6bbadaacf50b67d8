package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/taxfolio/backend/internal/models"
	"github.com/taxfolio/backend/internal/storage"
)

var ErrStorage = errors.New("document storage failed")

type DocumentService struct {
	docs      storage.DocumentStore
	uploadDir string
}

func NewDocumentService(docs storage.DocumentStore, uploadDir string) *DocumentService {
	return &DocumentService{docs: docs, uploadDir: uploadDir}
}

// Store writes the uploaded bytes to the uploads directory and records a
// metadata row with parsed_data unset. Files are content-addressed: the name
// is derived from a hash of the bytes, so re-uploading identical content maps
// to the same path and distinct content never collides.
func (s *DocumentService) Store(userID uint, documentType, originalFilename string, r io.Reader) (*models.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read upload: %v", ErrStorage, err)
	}

	sum := sha256.Sum256(data)
	filename := hex.EncodeToString(sum[:])[:16] + filepath.Ext(originalFilename)

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create upload dir: %v", ErrStorage, err)
	}

	path := filepath.Join(s.uploadDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: write file: %v", ErrStorage, err)
	}

	doc := models.Document{
		UserID:       userID,
		FilePath:     path,
		DocumentType: documentType,
	}

	if err := s.docs.Create(&doc); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("%w: insert metadata: %v", ErrStorage, err)
	}

	return &doc, nil
}
