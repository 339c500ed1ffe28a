package services

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"smartbot/career-matcher/internal/models"
)

type IngestService interface {
	Ingest(filename, mimeHint string, size int64, r io.Reader) (*models.UploadedDocument, error)
}

type ingestService struct {
	maxFileSize int64
	logger      *zap.Logger
}

func NewIngestService(maxFileSize int64, logger *zap.Logger) IngestService {
	return &ingestService{
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// Ingest validates and extracts plain text from an uploaded file. It
// has no side effects: the caller decides whether the returned document
// enters the session.
func (s *ingestService) Ingest(filename, mimeHint string, size int64, r io.Reader) (*models.UploadedDocument, error) {
	if size > s.maxFileSize {
		return nil, ErrFileTooLarge
	}

	// LimitReader guards against a lying Content-Length.
	data, err := io.ReadAll(io.LimitReader(r, s.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read uploaded file: %w", err)
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, ErrFileTooLarge
	}

	if !utf8.Valid(data) {
		return nil, ErrUnreadableContent
	}

	s.logger.Debug("document ingested",
		zap.String("filename", filename),
		zap.Int64("size_bytes", size),
		zap.Int("text_length", len(data)),
	)

	return &models.UploadedDocument{
		Name:      filename,
		SizeBytes: size,
		MimeHint:  mimeHint,
		SizeLabel: FormatFileSize(size),
		TypeLabel: FileTypeLabel(filename),
		RawText:   string(data),
	}, nil
}

// FormatFileSize renders a byte count with binary-prefixed units and
// 2-decimal rounding, trailing zeros dropped ("1.5 KB", not "1.50 KB").
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	const k = 1024
	units := []string{"Bytes", "KB", "MB", "GB"}

	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(k)))
	if i >= len(units) {
		i = len(units) - 1
	}

	value := float64(bytes) / math.Pow(k, float64(i))
	rounded := math.Round(value*100) / 100

	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + units[i]
}

var fileTypeLabels = map[string]string{
	"pdf":  "PDF Document",
	"docx": "Word Document",
	"doc":  "Word Document",
	"txt":  "Text File",
}

// FileTypeLabel maps a filename extension to a display label.
func FileTypeLabel(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if label, ok := fileTypeLabels[ext]; ok {
		return label
	}
	return "Unknown File Type"
}
