package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/domain"
	"github.com/groenwerk/offerte-api/internal/mapper"
	"github.com/groenwerk/offerte-api/internal/repository"
	"github.com/groenwerk/offerte-api/internal/storage"
	"go.uber.org/zap"
)

const (
	maxFileSize        = 25 << 20 // 25 MB
	maxFilesPerOfferte = 20
)

var allowedContentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
}

// FileService stores attachments on offertes: quote PDFs and site
// photos. Blobs live in the configured storage backend, metadata in
// the database.
type FileService struct {
	fileRepo    *repository.FileRepository
	offerteRepo *repository.OfferteRepository
	storage     storage.Storage
	logger      *zap.Logger
}

func NewFileService(
	fileRepo *repository.FileRepository,
	offerteRepo *repository.OfferteRepository,
	store storage.Storage,
	logger *zap.Logger,
) *FileService {
	return &FileService{
		fileRepo:    fileRepo,
		offerteRepo: offerteRepo,
		storage:     store,
		logger:      logger,
	}
}

// Upload stores a file and links it to an offerte
func (s *FileService) Upload(ctx context.Context, offerteID uuid.UUID, filename, contentType string, size int64, data io.Reader) (*domain.FileDTO, error) {
	if size > maxFileSize {
		return nil, fmt.Errorf("%w: bestand groter dan %d MB", ErrInvalidInput, maxFileSize>>20)
	}
	if !allowedContentTypes[strings.ToLower(contentType)] {
		return nil, fmt.Errorf("%w: bestandstype %s niet toegestaan", ErrInvalidInput, contentType)
	}

	offerte, err := s.offerteRepo.GetByID(ctx, offerteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get offerte: %w", err)
	}

	count, err := s.fileRepo.CountByOfferte(ctx, offerteID)
	if err != nil {
		return nil, fmt.Errorf("failed to count files: %w", err)
	}
	if count >= maxFilesPerOfferte {
		return nil, fmt.Errorf("%w: maximaal %d bestanden per offerte", ErrInvalidInput, maxFilesPerOfferte)
	}

	storagePath, written, err := s.storage.Upload(ctx, filename, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	file := &domain.File{
		Filename:    filename,
		ContentType: contentType,
		Size:        written,
		StoragePath: storagePath,
		OfferteID:   &offerte.ID,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		// Orphaned blob cleanup, best effort
		if delErr := s.storage.Delete(ctx, storagePath); delErr != nil {
			s.logger.Error("failed to clean up orphaned blob",
				zap.String("storagePath", storagePath),
				zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to store file metadata: %w", err)
	}

	s.logger.Info("file uploaded",
		zap.String("fileID", file.ID.String()),
		zap.String("offerteID", offerte.ID.String()),
		zap.String("filename", filename),
		zap.Int64("size", written))

	dto := mapper.ToFileDTO(file)
	return &dto, nil
}

// Download returns the blob stream and its metadata
func (s *FileService) Download(ctx context.Context, id uuid.UUID) (*domain.File, io.ReadCloser, error) {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get file: %w", err)
	}
	if file.OfferteID != nil {
		// Tenant check via the offerte the file hangs on
		if _, err := s.offerteRepo.GetByID(ctx, *file.OfferteID); err != nil {
			return nil, nil, fmt.Errorf("failed to get offerte: %w", err)
		}
	}

	reader, err := s.storage.Download(ctx, file.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to download file: %w", err)
	}
	return file, reader, nil
}

func (s *FileService) ListByOfferte(ctx context.Context, offerteID uuid.UUID) ([]domain.FileDTO, error) {
	if _, err := s.offerteRepo.GetByID(ctx, offerteID); err != nil {
		return nil, fmt.Errorf("failed to get offerte: %w", err)
	}

	files, err := s.fileRepo.ListByOfferte(ctx, offerteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	dtos := make([]domain.FileDTO, len(files))
	for i := range files {
		dtos[i] = mapper.ToFileDTO(&files[i])
	}
	return dtos, nil
}

func (s *FileService) Delete(ctx context.Context, id uuid.UUID) error {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get file: %w", err)
	}
	if file.OfferteID != nil {
		if _, err := s.offerteRepo.GetByID(ctx, *file.OfferteID); err != nil {
			return fmt.Errorf("failed to get offerte: %w", err)
		}
	}

	if err := s.fileRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	if err := s.storage.Delete(ctx, file.StoragePath); err != nil {
		s.logger.Error("failed to delete blob",
			zap.String("storagePath", file.StoragePath),
			zap.Error(err))
	}
	return nil
}
