package reports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"disasterhub/core/broadcast"
	"disasterhub/core/metrics"
	"disasterhub/core/storage"
	"disasterhub/provider/gemini"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotImage is returned when a verify or upload target is not image content.
var ErrNotImage = errors.New("content is not a valid image")

// maxImageBytes bounds how much of a remote image is read for verification.
const maxImageBytes = 10 << 20

// Verifier submits image bytes to the vision model.
type Verifier interface {
	VerifyImage(ctx context.Context, image []byte, mimeType string) (gemini.Verdict, error)
}

// Input carries the client-supplied fields of a report.
type Input struct {
	DisasterID         int64  `json:"disaster_id"`
	Content            string `json:"content"`
	ImageURL           string `json:"image_url"`
	VerificationStatus string `json:"verification_status"`
}

// Service handles report persistence, image storage and image verification.
type Service struct {
	db         *gorm.DB
	hub        broadcast.Broadcaster
	store      storage.Client
	storageCfg storage.Config
	verifier   Verifier
	metrics    *metrics.Metrics
	logger     *zap.Logger
	http       *http.Client
}

// NewService creates a new reports service.
func NewService(db *gorm.DB, hub broadcast.Broadcaster, store storage.Client, storageCfg storage.Config, verifier Verifier, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{
		db:         db,
		hub:        hub,
		store:      store,
		storageCfg: storageCfg,
		verifier:   verifier,
		metrics:    m,
		logger:     logger,
		http:       &http.Client{Timeout: 20 * time.Second},
	}
}

// Create persists a report and broadcasts it.
func (s *Service) Create(ctx context.Context, in Input, userID int64) (*Report, error) {
	status := in.VerificationStatus
	if status == "" {
		status = DefaultStatus
	}

	report := Report{
		DisasterID:         in.DisasterID,
		UserID:             userID,
		Content:            in.Content,
		ImageURL:           in.ImageURL,
		VerificationStatus: status,
	}

	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}

	s.hub.Publish(broadcast.TopicReportUpdated, report)
	s.metrics.EventPublished(broadcast.TopicReportUpdated)
	return &report, nil
}

// List returns reports newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string) ([]Report, error) {
	query := s.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("verification_status = ?", status)
	}

	var rows []Report
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return rows, nil
}

// UploadImage sniffs the content, stores it in the image bucket and returns
// its public URL. Non-image content is rejected before anything is written.
func (s *Service) UploadImage(ctx context.Context, content []byte) (string, error) {
	mtype := mimetype.Detect(content)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", ErrNotImage
	}

	objectName := uuid.NewString() + mtype.Extension()
	_, err := s.store.PutObject(ctx, s.storageCfg.Bucket, objectName,
		bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: mtype.String()})
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}

	return storage.ObjectURL(s.storageCfg, objectName), nil
}

// VerifyImage fetches the image, confirms it really is image content by
// sniffing the bytes (the URL's extension is not trusted), and submits it to
// the vision model. The verdict is already normalized by the adapter.
func (s *Service) VerifyImage(ctx context.Context, imageURL string) (gemini.Verdict, error) {
	content, err := s.fetchImage(ctx, imageURL)
	if err != nil {
		return "", err
	}

	mtype := mimetype.Detect(content)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", ErrNotImage
	}

	return s.verifier.VerifyImage(ctx, content, mtype.String())
}

func (s *Service) fetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: remote returned %s", resp.Status)
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return content, nil
}
