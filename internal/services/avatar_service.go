package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"opsdash/internal/common"

	"github.com/google/uuid"
)

const maxAvatarBytes = 2 << 20

var avatarExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// AvatarService moves inline data-URI avatars into object storage.
type AvatarService interface {
	// Resolve returns the value to persist for avatar. Inline images are
	// uploaded and replaced by their object URL; other values pass through.
	Resolve(ctx context.Context, ownerKey string, avatar *string) (*string, error)
	// Remove deletes a previously stored avatar. URLs outside the bucket
	// are ignored and failures are only logged.
	Remove(ctx context.Context, avatarURL string)
}

type avatarService struct {
	storage MinioService
	bucket  string
}

func NewAvatarService(storage MinioService, bucket string) AvatarService {
	return &avatarService{storage: storage, bucket: bucket}
}

func (s *avatarService) Resolve(ctx context.Context, ownerKey string, avatar *string) (*string, error) {
	if avatar == nil || !strings.HasPrefix(*avatar, "data:") {
		return avatar, nil
	}

	contentType, payload, err := parseDataURI(*avatar)
	if err != nil {
		return nil, err
	}
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return nil, common.NewValidationError("avatar", "unsupported image type "+contentType)
	}
	if len(payload) > maxAvatarBytes {
		return nil, common.NewValidationError("avatar", "image exceeds 2MB")
	}

	if ownerKey == "" {
		ownerKey = "new"
	}
	objectName := fmt.Sprintf("avatars/%s-%s.%s", ownerKey, uuid.New().String(), ext)
	if err := s.storage.UploadObject(ctx, s.bucket, objectName, bytes.NewReader(payload), int64(len(payload)), contentType); err != nil {
		log.Printf("AVATAR: upload of %s failed: %v", objectName, err)
		return nil, fmt.Errorf("%w: avatar upload failed: %v", common.ErrStore, err)
	}

	url := s.storage.ObjectURL(s.bucket, objectName)
	return &url, nil
}

func (s *avatarService) Remove(ctx context.Context, avatarURL string) {
	objectName, ok := strings.CutPrefix(avatarURL, s.storage.ObjectURL(s.bucket, ""))
	if !ok || objectName == "" {
		return
	}
	if err := s.storage.DeleteObject(ctx, s.bucket, objectName); err != nil {
		log.Printf("AVATAR: delete of %s failed: %v", objectName, err)
	}
}

// parseDataURI splits "data:<type>;base64,<payload>".
func parseDataURI(uri string) (string, []byte, error) {
	header, data, found := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !found {
		return "", nil, common.NewValidationError("avatar", "malformed data URI")
	}
	contentType, encoding, _ := strings.Cut(header, ";")
	if encoding != "base64" {
		return "", nil, common.NewValidationError("avatar", "data URI must be base64 encoded")
	}
	payload, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", nil, common.NewValidationError("avatar", "invalid base64 payload")
	}
	return strings.ToLower(contentType), payload, nil
}
