package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/maelyb/eclat/eclat-backend/internal/domain"
	"github.com/maelyb/eclat/eclat-backend/internal/repository/storage"
	"github.com/maelyb/eclat/eclat-backend/internal/websocket"
)

const (
	MaxReceiptSize   = 5 * 1024 * 1024 // 5MB
	MinReceiptWidth  = 50
	MinReceiptHeight = 50
	ThumbnailWidth   = 200
	DisplayWidth     = 800
	JPEGQuality      = 85

	// PresignExpiry is how long a generated receipt URL stays valid
	PresignExpiry = 15 * time.Minute
)

var (
	ErrReceiptTooLarge             = errors.New("file too large. Maximum size is 5MB")
	ErrInvalidReceiptFormat        = errors.New("invalid format. Supported: JPEG, PNG, WebP")
	ErrReceiptTooSmall             = errors.New("image too small. Minimum 50x50 pixels")
	ErrInvalidReceiptData          = errors.New("invalid image data")
	ErrReceiptStorageNotConfigured = errors.New("receipt storage not configured")
)

// allowedReceiptExtensions maps extensions to content types
var allowedReceiptExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// receiptVariants are the stored renditions of every receipt photo
var receiptVariants = []struct {
	name     string
	maxWidth int
}{
	{"thumb", ThumbnailWidth},
	{"display", DisplayWidth},
	{"original", 0}, // 0 keeps the source size
}

// ReceiptService processes and stores expense receipt photos.
type ReceiptService struct {
	expenseRepo domain.ExpenseRepository
	storage     storage.ReceiptRepository
	publisher   websocket.EventPublisher
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(expenseRepo domain.ExpenseRepository, storage storage.ReceiptRepository, publisher websocket.EventPublisher) *ReceiptService {
	return &ReceiptService{
		expenseRepo: expenseRepo,
		storage:     storage,
		publisher:   publisher,
	}
}

// IsEnabled indicates whether uploads/deletes are supported (storage configured).
func (s *ReceiptService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// validateAndDecode validates the receipt image and returns the decoded image
func (s *ReceiptService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxReceiptSize {
		return nil, ErrReceiptTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedReceiptExtensions[ext]; !ok {
		return nil, ErrInvalidReceiptFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidReceiptData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinReceiptWidth || bounds.Dy() < MinReceiptHeight {
		return nil, ErrReceiptTooSmall
	}
	return img, nil
}

// UploadReceipt validates, resizes and stores a receipt photo for an expense,
// then records the display object path on the expense. Any previous receipt
// is replaced.
func (s *ReceiptService) UploadReceipt(ctx context.Context, ownerEmail string, expenseID int64, data []byte, filename string) (*domain.Expense, error) {
	if !s.IsEnabled() {
		return nil, ErrReceiptStorageNotConfigured
	}

	expense, err := s.expenseRepo.GetByID(ownerEmail, expenseID)
	if err != nil {
		return nil, err
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return nil, err
	}

	receiptID := uuid.New().String()
	uploaded := make([]string, 0, len(receiptVariants))
	var displayPath string

	for _, variant := range receiptVariants {
		processed := img
		if variant.maxWidth > 0 && img.Bounds().Dx() > variant.maxWidth {
			// Resize maintaining aspect ratio
			processed = imaging.Resize(img, variant.maxWidth, 0, imaging.Lanczos)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, processed, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			s.cleanupVariants(ctx, uploaded)
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}

		objectPath := receiptObjectPath(ownerEmail, expenseID, receiptID, variant.name)
		path, err := s.storage.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len()))
		if err != nil {
			s.cleanupVariants(ctx, uploaded)
			return nil, fmt.Errorf("failed to upload %s variant: %w", variant.name, err)
		}
		uploaded = append(uploaded, path)
		if variant.name == "display" {
			displayPath = path
		}
	}

	previous := expense.ReceiptURL

	updated, err := s.expenseRepo.SetReceiptURL(ownerEmail, expenseID, &displayPath)
	if err != nil {
		s.cleanupVariants(ctx, uploaded)
		return nil, err
	}

	if previous != nil {
		s.deleteAllVariants(ctx, *previous)
	}

	s.publisher.Publish(ownerEmail, websocket.NewEvent(websocket.EventTypeUpdated, websocket.EntityTypeReceipt, updated))
	return updated, nil
}

// DeleteReceipt removes the stored receipt variants and clears the reference
// on the expense.
func (s *ReceiptService) DeleteReceipt(ctx context.Context, ownerEmail string, expenseID int64) (*domain.Expense, error) {
	if !s.IsEnabled() {
		return nil, ErrReceiptStorageNotConfigured
	}

	expense, err := s.expenseRepo.GetByID(ownerEmail, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.ReceiptURL == nil {
		return nil, domain.ErrReceiptNotFound
	}

	s.deleteAllVariants(ctx, *expense.ReceiptURL)

	updated, err := s.expenseRepo.SetReceiptURL(ownerEmail, expenseID, nil)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(ownerEmail, websocket.NewEvent(websocket.EventTypeDeleted, websocket.EntityTypeReceipt, updated))
	return updated, nil
}

// ReceiptURL generates a short-lived presigned URL for an expense's receipt
func (s *ReceiptService) ReceiptURL(ctx context.Context, ownerEmail string, expenseID int64) (string, error) {
	if !s.IsEnabled() {
		return "", ErrReceiptStorageNotConfigured
	}
	expense, err := s.expenseRepo.GetByID(ownerEmail, expenseID)
	if err != nil {
		return "", err
	}
	if expense.ReceiptURL == nil {
		return "", domain.ErrReceiptNotFound
	}
	return s.storage.GeneratePresignedURL(ctx, *expense.ReceiptURL, PresignExpiry)
}

// cleanupVariants removes variants uploaded during a failed operation
func (s *ReceiptService) cleanupVariants(ctx context.Context, paths []string) {
	for _, path := range paths {
		// best effort
		_ = s.storage.Delete(ctx, path)
	}
}

// deleteAllVariants deletes the thumb, display and original renditions that
// share a display path's base name
func (s *ReceiptService) deleteAllVariants(ctx context.Context, displayPath string) {
	base := strings.TrimSuffix(displayPath, "_display.jpg")
	if base == displayPath {
		_ = s.storage.Delete(ctx, displayPath)
		return
	}
	for _, variant := range receiptVariants {
		_ = s.storage.Delete(ctx, fmt.Sprintf("%s_%s.jpg", base, variant.name))
	}
}

// receiptObjectPath builds the object key for one receipt variant
func receiptObjectPath(ownerEmail string, expenseID int64, receiptID, variant string) string {
	return fmt.Sprintf("%s/expenses/%d/%s_%s.jpg", ownerEmail, expenseID, receiptID, variant)
}
