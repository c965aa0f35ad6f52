package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"laudoapi/internal/docx"
	"laudoapi/internal/model"
	"laudoapi/internal/report"
	"laudoapi/internal/storage"
)

// DownloadPrefix is the route under which generated documents are served.
const DownloadPrefix = "/baixar-laudo/"

const documentTitle = "Ultrassonografia da tireoide"

var tracer = otel.Tracer("laudoapi/internal/service")

// ReportService defines the use cases for thyroid reports.
type ReportService interface {
	// Generate formats the report text, renders it as a .docx document and
	// stores the document under a fresh "<uuid>.docx" name.
	Generate(ctx context.Context, exam *model.ExamInput) (*model.Report, error)

	// Open returns a stored report document for download. The filename must be
	// a canonical "<uuid>.docx" name.
	Open(ctx context.Context, filename string) (io.ReadCloser, storage.ObjectInfo, error)
}

type reportService struct {
	store     storage.Storage
	formatter *report.Formatter
	log       *zap.Logger
	now       func() time.Time
}

// NewReportService constructs a new ReportService.
func NewReportService(store storage.Storage, formatter *report.Formatter, log *zap.Logger) ReportService {
	if formatter == nil {
		formatter = report.NewFormatter(nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &reportService{store: store, formatter: formatter, log: log, now: time.Now}
}

func (s *reportService) Generate(ctx context.Context, exam *model.ExamInput) (*model.Report, error) {
	if exam == nil {
		return nil, ErrExamRequired
	}

	ctx, span := tracer.Start(ctx, "ReportService.Generate")
	defer span.End()

	text := s.formatter.Format(exam)

	id := uuid.NewString()
	filename := id + docx.Extension
	created := s.now().UTC()
	span.SetAttributes(
		attribute.String("report.id", id),
		attribute.Int("report.nodules", len(exam.Nodules)),
	)

	var buf bytes.Buffer
	if err := docx.WriteWithOptions(&buf, text, docx.Options{
		Title:      documentTitle,
		Identifier: id,
		Created:    created,
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render document")
		return nil, fmt.Errorf("render document: %w", err)
	}

	size := int64(buf.Len())
	info, err := s.store.Put(ctx, filename, &buf, storage.PutObjectOptions{
		Size:        size,
		ContentType: docx.ContentType,
		Metadata:    map[string]string{"report-id": id},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store document")
		return nil, &StorageError{Op: "put", Key: filename, Err: err}
	}
	if info.Size > 0 {
		size = info.Size
	}

	s.log.Info("report_generated",
		zap.String("report_id", id),
		zap.String("filename", filename),
		zap.Int64("size", size),
		zap.Int("nodules", len(exam.Nodules)),
	)

	return &model.Report{
		ID:           id,
		Filename:     filename,
		Text:         text,
		DownloadPath: DownloadPrefix + filename,
		Size:         size,
		ContentType:  docx.ContentType,
		CreatedAt:    created,
	}, nil
}

func (s *reportService) Open(ctx context.Context, filename string) (io.ReadCloser, storage.ObjectInfo, error) {
	if !ValidFilename(filename) {
		return nil, storage.ObjectInfo{}, ErrInvalidFilename
	}

	ctx, span := tracer.Start(ctx, "ReportService.Open")
	defer span.End()
	span.SetAttributes(attribute.String("report.filename", filename))

	// Existence is checked first so a missing document is always ErrNotFound.
	if _, err := s.store.Stat(ctx, filename); err != nil {
		return nil, storage.ObjectInfo{}, s.translate("stat", filename, err)
	}

	rc, info, err := s.store.Get(ctx, filename)
	if err != nil {
		return nil, storage.ObjectInfo{}, s.translate("get", filename, err)
	}
	if info.ContentType == "" {
		info.ContentType = docx.ContentType
	}
	return rc, info, nil
}

func (s *reportService) translate(op, key string, err error) error {
	if errors.Is(err, storage.ErrObjectNotFound) {
		return ErrNotFound
	}
	return &StorageError{Op: op, Key: key, Err: err}
}

// ValidFilename reports whether name is a canonical "<uuid>.docx" file name.
func ValidFilename(name string) bool {
	base, ok := strings.CutSuffix(name, docx.Extension)
	if !ok {
		return false
	}
	id, err := uuid.Parse(base)
	if err != nil {
		return false
	}
	return id.String() == base
}
