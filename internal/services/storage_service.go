// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-catalog/internal/config"
	"github.com/javajoker/storefront-catalog/internal/models"
)

// StorageService keeps product images in S3 when credentials are configured
// and under the local media root otherwise. Records store the object key;
// PublicURL turns it into a fetchable URL.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

// FileStore removes stored files by key.
type FileStore interface {
	DeleteFile(ctx context.Context, key string) error
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

type UploadOptions struct {
	Folder       string
	MaxSize      int64 // in bytes
	AllowedTypes []string
	IsPublic     bool
}

func NewStorageService(config *config.Config) (*StorageService, error) {
	if config.AWS.AccessKeyID == "" {
		// Return service without S3 for local development
		return &StorageService{config: config}, nil
	}

	// Create AWS session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   config,
	}, nil
}

func (s *StorageService) ImageUploadOptions() UploadOptions {
	return UploadOptions{
		Folder:       "products",
		MaxSize:      s.config.Media.MaxImageSize,
		AllowedTypes: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
		IsPublic:     true,
	}
}

// UploadImage stores an image read from r. The content must be a JPEG, PNG,
// GIF or WebP image no larger than options.MaxSize.
func (s *StorageService) UploadImage(ctx context.Context, r io.Reader, filename string, options UploadOptions) (*UploadResult, error) {
	fileExt := strings.ToLower(filepath.Ext(filename))
	if len(options.AllowedTypes) > 0 && !contains(options.AllowedTypes, fileExt) {
		return nil, models.NewValidationError("image", "file type %s is not allowed", fileExt)
	}

	limit := options.MaxSize
	if limit <= 0 {
		limit = s.config.Media.MaxImageSize
	}
	fileBytes, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(fileBytes)) > limit {
		return nil, models.NewValidationError("image", "file exceeds maximum allowed size %d bytes", limit)
	}
	if !isValidImageType(fileBytes) {
		return nil, models.NewValidationError("image", "invalid image file")
	}

	key := s.generateFileName(filename, options.Folder)
	contentType := http.DetectContentType(fileBytes)

	if s.s3Client != nil {
		return s.uploadToS3(ctx, fileBytes, key, contentType, options.IsPublic)
	}
	return s.uploadToLocal(fileBytes, key, contentType)
}

func (s *StorageService) uploadToS3(ctx context.Context, fileBytes []byte, key, contentType string, isPublic bool) (*UploadResult, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
	}

	if isPublic {
		params.ACL = aws.String("public-read")
	}

	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      s.PublicURL(key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	target := filepath.Join(s.config.Media.Root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(target, fileBytes, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &UploadResult{
		URL:      s.PublicURL(key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) DeleteFile(ctx context.Context, key string) error {
	if s.s3Client == nil {
		err := os.Remove(filepath.Join(s.config.Media.Root, filepath.FromSlash(key)))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to delete file: %w", err)
		}
		logrus.WithField("key", key).Debug("Deleted local media file")
		return nil
	}

	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

func isAbsoluteURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// removeImages deletes the files behind image locations whose records are
// gone. Absolute URLs and keys still referenced by another image are kept.
// Failures leave an orphaned file behind and are only logged.
func removeImages(ctx context.Context, db *gorm.DB, files FileStore, locations []string) {
	if files == nil {
		return
	}

	keys := make([]string, 0, len(locations))
	for _, location := range locations {
		if location != "" && !isAbsoluteURL(location) {
			keys = append(keys, location)
		}
	}
	if len(keys) == 0 {
		return
	}

	var shared []string
	if err := db.WithContext(ctx).Model(&models.ProductImage{}).Where("url IN ?", keys).Distinct().Pluck("url", &shared).Error; err != nil {
		logrus.WithError(err).Warn("Failed to check shared image files, keeping them")
		return
	}
	inUse := make(map[string]bool, len(shared))
	for _, key := range shared {
		inUse[key] = true
	}

	for _, key := range keys {
		if inUse[key] {
			continue
		}
		inUse[key] = true
		if err := files.DeleteFile(ctx, key); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("Failed to delete image file")
		}
	}
}

// PublicURL resolves a stored image location. Absolute URLs are returned
// as they are.
func (s *StorageService) PublicURL(key string) string {
	if key == "" || isAbsoluteURL(key) {
		return key
	}
	key = strings.TrimLeft(key, "/")

	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.config.AWS.CloudFrontURL, key)
	}
	if s.s3Client != nil {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
			s.config.AWS.S3Bucket, s.config.AWS.Region, key)
	}
	return s.config.Media.URLPrefix + "/" + key
}

func (s *StorageService) generateFileName(originalName, folder string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	timestamp := time.Now().Format("20060102")
	filename := fmt.Sprintf("%s_%s%s", timestamp, uuid.New().String()[:8], ext)

	if folder != "" {
		return path.Join(folder, filename)
	}
	return filename
}

func isValidImageType(buffer []byte) bool {
	switch {
	case len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF:
		return true
	case len(buffer) >= 8 && bytes.Equal(buffer[:8], []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}):
		return true
	case len(buffer) >= 6 && (string(buffer[:6]) == "GIF87a" || string(buffer[:6]) == "GIF89a"):
		return true
	case len(buffer) >= 12 && string(buffer[:4]) == "RIFF" && string(buffer[8:12]) == "WEBP":
		return true
	}
	return false
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
