package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/nutrilens/backend/config"
)

// ImageArchive copies submitted meal photos to S3 so image analyses can be
// audited later. Archiving is best-effort; it never fails an analysis.
type ImageArchive struct {
	s3Config *config.S3Config
}

// NewImageArchive creates a new ImageArchive instance. A nil s3Config disables
// archiving.
func NewImageArchive(s3Config *config.S3Config) *ImageArchive {
	return &ImageArchive{s3Config: s3Config}
}

// Enabled reports whether an S3 bucket is configured.
func (a *ImageArchive) Enabled() bool {
	return a != nil && a.s3Config != nil
}

// ArchivePhoto uploads one base64-encoded JPEG and returns its object key.
func (a *ImageArchive) ArchivePhoto(ctx context.Context, sessionID string, imageData string) (string, error) {
	if !a.Enabled() {
		return "", fmt.Errorf("image archive is not configured")
	}

	raw, err := base64.StdEncoding.DecodeString(imageData)
	if err != nil {
		return "", fmt.Errorf("failed to decode image data: %w", err)
	}

	key := fmt.Sprintf("meal-photos/%s/%s.jpg", sessionID, uuid.New().String())
	_, err = a.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(raw),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo to S3: %w", err)
	}

	log.Printf("[ImageArchive] Archived meal photo %s (%d bytes)", key, len(raw))
	return key, nil
}
