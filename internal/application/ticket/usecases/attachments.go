package usecases

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// FileUpload is one file received from the client.
type FileUpload struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// UploadPolicy limits what may be attached to tickets and comments.
type UploadPolicy struct {
	MaxBytes          int64
	AllowedExtensions []string
}

func (p UploadPolicy) allows(ext string) bool {
	if len(p.AllowedExtensions) == 0 {
		return true
	}
	for _, allowed := range p.AllowedExtensions {
		if strings.EqualFold(strings.TrimPrefix(allowed, "."), ext) {
			return true
		}
	}
	return false
}

// AttachmentStore validates uploads and writes them to FileStorage.
type AttachmentStore struct {
	storage FileStorage
	policy  UploadPolicy
	logger  logger.Interface
}

func NewAttachmentStore(storage FileStorage, policy UploadPolicy, logger logger.Interface) *AttachmentStore {
	return &AttachmentStore{
		storage: storage,
		policy:  policy,
		logger:  logger,
	}
}

// Validate checks name, size and extension without reading the content.
func (s *AttachmentStore) Validate(field string, uploads []FileUpload) error {
	for _, u := range uploads {
		name := filepath.Base(strings.TrimSpace(u.Filename))
		if name == "" || name == "." || name == "/" {
			return errors.NewFieldValidationError(map[string]string{field: "file name is required"})
		}
		if s.policy.MaxBytes > 0 && u.Size > s.policy.MaxBytes {
			return errors.NewFieldValidationError(map[string]string{
				field: fmt.Sprintf("%s exceeds the maximum size of %d MB", name, s.policy.MaxBytes>>20),
			})
		}
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
		if !s.policy.allows(ext) {
			return errors.NewFieldValidationError(map[string]string{
				field: fmt.Sprintf("%s has a file type that is not allowed", name),
			})
		}
	}
	return nil
}

// Store writes every upload under tickets/<ticketID>/ and returns their
// descriptors. Files already written are removed when a later one fails.
func (s *AttachmentStore) Store(ctx context.Context, ticketID uint, uploads []FileUpload) ([]ticket.StoredFile, error) {
	stored := make([]ticket.StoredFile, 0, len(uploads))
	for _, u := range uploads {
		f, err := s.storeOne(ctx, ticketID, u)
		if err != nil {
			s.Remove(ctx, stored)
			return nil, err
		}
		stored = append(stored, f)
	}
	return stored, nil
}

func (s *AttachmentStore) storeOne(ctx context.Context, ticketID uint, u FileUpload) (ticket.StoredFile, error) {
	rc, err := u.Open()
	if err != nil {
		return ticket.StoredFile{}, fmt.Errorf("open upload %q: %w", u.Filename, err)
	}
	defer rc.Close()

	var src io.Reader = rc
	if s.policy.MaxBytes > 0 {
		src = io.LimitReader(rc, s.policy.MaxBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return ticket.StoredFile{}, fmt.Errorf("read upload %q: %w", u.Filename, err)
	}
	if s.policy.MaxBytes > 0 && int64(len(data)) > s.policy.MaxBytes {
		return ticket.StoredFile{}, errors.NewValidationError("file too large", u.Filename)
	}

	name := filepath.Base(strings.TrimSpace(u.Filename))
	ext := strings.ToLower(filepath.Ext(name))
	mtype := mimetype.Detect(data)
	key := fmt.Sprintf("tickets/%d/%s%s", ticketID, uuid.NewString(), ext)

	if err := s.storage.Save(ctx, key, bytes.NewReader(data), int64(len(data)), mtype.String()); err != nil {
		return ticket.StoredFile{}, fmt.Errorf("store upload %q: %w", name, err)
	}

	return ticket.StoredFile{
		OriginalName: name,
		StorageKey:   key,
		ContentType:  mtype.String(),
		Size:         int64(len(data)),
	}, nil
}

// Remove deletes stored files, logging failures.
func (s *AttachmentStore) Remove(ctx context.Context, files []ticket.StoredFile) {
	for _, f := range files {
		if err := s.storage.Delete(ctx, f.StorageKey); err != nil {
			s.logger.Warnw("failed to delete stored file", "key", f.StorageKey, "error", err)
		}
	}
}

// Open returns a reader for a stored file.
func (s *AttachmentStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.storage.Open(ctx, key)
}
