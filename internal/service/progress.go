package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gymops/gym-manager/internal/domain"
	"gymops/gym-manager/internal/repository"
	"gymops/gym-manager/internal/storage"
)

// --- Error Definitions ---
var (
	ErrProgressNotFound   = errors.New("progress record not found")
	ErrInvalidContentType = errors.New("invalid or missing image content type")
)

// PhotoUploadResponse carries a presigned PUT URL and the object key the
// caller reports back once the upload is done.
type PhotoUploadResponse struct {
	UploadURL string
	ObjectKey string
}

// ProgressService manages physical check-ins under active contracts.
// Photos live in object storage; records keep URLs or object keys.
type ProgressService interface {
	Record(ctx context.Context, spec domain.ProgressSpec) (primitive.ObjectID, error)
	History(ctx context.Context, contractID primitive.ObjectID) ([]domain.ProgressRecord, error)
	// Cancel soft-invalidates a record, keeping it in the history.
	Cancel(ctx context.Context, recordID primitive.ObjectID) error
	// Delete removes a record permanently.
	Delete(ctx context.Context, recordID primitive.ObjectID) error

	// RequestPhotoUploadURL returns a presigned URL for uploading a
	// progress photo for a contract.
	RequestPhotoUploadURL(ctx context.Context, contractID primitive.ObjectID, contentType string) (*PhotoUploadResponse, error)
	// PhotoDownloadURL returns a temporary viewing URL for a stored photo.
	PhotoDownloadURL(ctx context.Context, objectKey string) (string, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
	contractRepo repository.ContractRepository
	fileStorage  storage.FileStorage
}

func NewProgressService(
	progressRepo repository.ProgressRepository,
	contractRepo repository.ContractRepository,
	fileStorage storage.FileStorage,
) ProgressService {
	return &progressService{
		progressRepo: progressRepo,
		contractRepo: contractRepo,
		fileStorage:  fileStorage,
	}
}

func (s *progressService) Record(ctx context.Context, spec domain.ProgressSpec) (primitive.ObjectID, error) {
	contract, err := s.contractRepo.GetByID(ctx, spec.ContractID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, ErrContractNotFound
		}
		return primitive.NilObjectID, err
	}
	if contract.Status != domain.ContractActive {
		return primitive.NilObjectID, ErrContractNotActive
	}
	record, err := domain.NewProgressRecord(spec)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return s.progressRepo.Create(ctx, record)
}

func (s *progressService) History(ctx context.Context, contractID primitive.ObjectID) ([]domain.ProgressRecord, error) {
	return s.progressRepo.GetByContract(ctx, contractID)
}

func (s *progressService) Cancel(ctx context.Context, recordID primitive.ObjectID) error {
	err := s.progressRepo.UpdateStatus(ctx, recordID, domain.ProgressCancelled)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProgressNotFound
	}
	return err
}

func (s *progressService) Delete(ctx context.Context, recordID primitive.ObjectID) error {
	err := s.progressRepo.Delete(ctx, recordID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProgressNotFound
	}
	return err
}

func (s *progressService) RequestPhotoUploadURL(ctx context.Context, contractID primitive.ObjectID, contentType string) (*PhotoUploadResponse, error) {
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrInvalidContentType
	}
	if _, err := s.contractRepo.GetByID(ctx, contractID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}

	fileExtension := ""
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("progress-photos", contractID.Hex(), fmt.Sprintf("%s.%s", uuid.NewString(), fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("generate upload url: %w", err)
	}
	return &PhotoUploadResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

func (s *progressService) PhotoDownloadURL(ctx context.Context, objectKey string) (string, error) {
	if objectKey == "" {
		return "", errors.New("object key is required")
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
}
