// internal/services/media_service.go
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/games-api/internal/config"
)

// MediaService turns stored header image references into URLs a client
// can fetch. Absolute URLs pass through; bucket keys are presigned when S3
// credentials are configured, or joined onto the CDN base URL.
type MediaService struct {
	s3Client   *s3.S3
	bucket     string
	cdnBaseURL string
	presignTTL time.Duration
}

func NewMediaService(cfg *config.Config) (*MediaService, error) {
	svc := &MediaService{
		bucket:     cfg.AWS.S3Bucket,
		cdnBaseURL: strings.TrimRight(cfg.AWS.CloudFrontURL, "/"),
		presignTTL: time.Duration(cfg.AWS.PresignTTLMinutes) * time.Minute,
	}

	if cfg.AWS.AccessKeyID == "" {
		// No S3 for local development
		return svc, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	svc.s3Client = s3.New(sess)
	return svc, nil
}

// ResolveHeaderImage returns the public reference for a stored header
// image. nil stays nil.
func (s *MediaService) ResolveHeaderImage(ref *string) *string {
	if s == nil || ref == nil || *ref == "" || isAbsoluteURL(*ref) {
		return ref
	}

	key := strings.TrimLeft(*ref, "/")

	if s.s3Client != nil {
		url, err := s.GeneratePresignedURL(key, s.presignTTL)
		if err == nil {
			return &url
		}
		logrus.WithError(err).WithField("key", key).Warn("Failed to presign header image")
	}

	if s.cdnBaseURL != "" {
		url := s.cdnBaseURL + "/" + key
		return &url
	}

	return ref
}

func (s *MediaService) GeneratePresignedURL(key string, expiration time.Duration) (string, error) {
	if s.s3Client == nil {
		return "", fmt.Errorf("S3 client not configured")
	}

	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(expiration)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url, nil
}

func isAbsoluteURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "//")
}
