package document

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/http"
	"path"
	"slices"
	"strings"
	"time"

	documenterrors "hris-portal/internal/document/errors"
	"hris-portal/internal/employee"
	"hris-portal/internal/shared/access"
	"hris-portal/internal/shared/contextutil"
	"hris-portal/internal/shared/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	sniffLen = 512

	defaultMaxUploadMB = 10
)

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type EmployeeDirectory interface {
	Lookup(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error)
	SetPhoto(ctx context.Context, companyID, id string, documentID *string) error
}

type LeaveAttacher interface {
	AttachDocument(ctx context.Context, companyID, employeeID, id, documentID string) error
}

type Service interface {
	Upload(ctx context.Context, actor access.Actor, employeeID string, in UploadInput) (DocumentResponse, error)
	List(ctx context.Context, actor access.Actor, employeeID, category string) ([]DocumentResponse, error)
	Download(ctx context.Context, actor access.Actor, id string) (File, error)
	Delete(ctx context.Context, actor access.Actor, id string) error

	UploadOwn(ctx context.Context, companyID, employeeID string, in UploadInput) (DocumentResponse, error)
	ListOwn(ctx context.Context, companyID, employeeID, category string) ([]DocumentResponse, error)
	DownloadOwn(ctx context.Context, companyID, employeeID, id string) (File, error)
	DeleteOwn(ctx context.Context, companyID, employeeID, id string) error
}

type service struct {
	repo      Repository
	store     storage.Storage
	employees EmployeeDirectory
	leaves    LeaveAttacher
	resolver  access.DepartmentResolver
	maxBytes  int64
	logger    *zap.Logger
}

func NewService(
	repo Repository,
	store storage.Storage,
	employees EmployeeDirectory,
	leaves LeaveAttacher,
	resolver access.DepartmentResolver,
	maxUploadMB int64,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	if maxUploadMB <= 0 {
		maxUploadMB = defaultMaxUploadMB
	}
	return &service{
		repo:      repo,
		store:     store,
		employees: employees,
		leaves:    leaves,
		resolver:  resolver,
		maxBytes:  maxUploadMB << 20,
		logger:    l,
	}
}

type uploader struct {
	kind string
	id   string
}

func (s *service) Upload(ctx context.Context, actor access.Actor, employeeID string, in UploadInput) (DocumentResponse, error) {
	if _, err := s.scopedEmployee(ctx, actor, employeeID); err != nil {
		return DocumentResponse{}, err
	}
	return s.upload(ctx, actor.CompanyID, employeeID, uploader{kind: UploadedByUser, id: actor.UserID}, in)
}

func (s *service) UploadOwn(ctx context.Context, companyID, employeeID string, in UploadInput) (DocumentResponse, error) {
	return s.upload(ctx, companyID, employeeID, uploader{kind: UploadedByEmployee, id: employeeID}, in)
}

func (s *service) upload(ctx context.Context, companyID, employeeID string, by uploader, in UploadInput) (DocumentResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	category := strings.ToUpper(strings.TrimSpace(in.Category))
	if !slices.Contains(Categories, category) {
		return DocumentResponse{}, documenterrors.ErrInvalidCategory
	}
	if category == CategoryLeaveAttachment && in.LeaveID == "" {
		return DocumentResponse{}, documenterrors.ErrLeaveRequired
	}
	if in.Content == nil || in.Size == 0 {
		return DocumentResponse{}, documenterrors.ErrFileRequired
	}
	if in.Size > s.maxBytes {
		return DocumentResponse{}, documenterrors.ErrFileTooLarge
	}

	br := bufio.NewReaderSize(in.Content, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return DocumentResponse{}, err
	}
	contentType := detectContentType(head)
	ext, ok := extensions[contentType]
	if !ok {
		return DocumentResponse{}, documenterrors.ErrUnsupportedType
	}
	if category == CategoryPhoto && contentType == ContentTypePDF {
		return DocumentResponse{}, documenterrors.ErrPhotoNotImage
	}

	company, err := uuid.Parse(companyID)
	if err != nil {
		return DocumentResponse{}, err
	}
	empl, err := uuid.Parse(employeeID)
	if err != nil {
		return DocumentResponse{}, documenterrors.ErrInvalidEmployeeID
	}
	uploadedBy, err := uuid.Parse(by.id)
	if err != nil {
		return DocumentResponse{}, err
	}

	id := uuid.New()
	key := path.Join(companyID, employeeID, id.String()+ext)

	// the declared size can lie, so the stored byte count is checked again
	n, err := s.store.Save(ctx, key, io.LimitReader(br, s.maxBytes+1))
	if err != nil {
		return DocumentResponse{}, err
	}
	if n > s.maxBytes {
		s.discardFile(ctx, key)
		return DocumentResponse{}, documenterrors.ErrFileTooLarge
	}

	doc := &Document{
		ID:             id,
		CompanyID:      company,
		EmployeeID:     empl,
		Category:       category,
		FileName:       cleanFileName(in.FileName, ext),
		ContentType:    contentType,
		SizeBytes:      n,
		StoragePath:    key,
		UploadedByType: by.kind,
		UploadedByID:   uploadedBy,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		s.discardFile(ctx, key)
		return DocumentResponse{}, err
	}

	if err := s.link(ctx, doc, in.LeaveID); err != nil {
		if derr := s.repo.Delete(ctx, companyID, id.String()); derr != nil {
			log.Error("rollback document row failed", zap.String("document_id", id.String()), zap.Error(derr))
		}
		s.discardFile(ctx, key)
		return DocumentResponse{}, err
	}

	log.Info("document uploaded",
		zap.String("document_id", id.String()),
		zap.String("employee_id", employeeID),
		zap.String("category", category),
		zap.String("content_type", contentType),
		zap.Int64("size_bytes", n),
	)
	return mapToResponse(*doc), nil
}

func (s *service) link(ctx context.Context, doc *Document, leaveID string) error {
	id := doc.ID.String()
	switch doc.Category {
	case CategoryPhoto:
		return s.employees.SetPhoto(ctx, doc.CompanyID.String(), doc.EmployeeID.String(), &id)
	case CategoryLeaveAttachment:
		return s.leaves.AttachDocument(ctx, doc.CompanyID.String(), doc.EmployeeID.String(), leaveID, id)
	}
	return nil
}

func (s *service) discardFile(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("remove stored file failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *service) List(ctx context.Context, actor access.Actor, employeeID, category string) ([]DocumentResponse, error) {
	if _, err := s.scopedEmployee(ctx, actor, employeeID); err != nil {
		return nil, err
	}
	return s.list(ctx, actor.CompanyID, employeeID, category)
}

func (s *service) ListOwn(ctx context.Context, companyID, employeeID, category string) ([]DocumentResponse, error) {
	return s.list(ctx, companyID, employeeID, category)
}

func (s *service) list(ctx context.Context, companyID, employeeID, category string) ([]DocumentResponse, error) {
	category = strings.ToUpper(category)
	if category != "" && !slices.Contains(Categories, category) {
		return nil, documenterrors.ErrInvalidCategory
	}

	docs, err := s.repo.FindByEmployee(ctx, companyID, employeeID, category)
	if err != nil {
		return nil, err
	}
	out := make([]DocumentResponse, len(docs))
	for i := range docs {
		out[i] = mapToResponse(docs[i])
	}
	return out, nil
}

func (s *service) Download(ctx context.Context, actor access.Actor, id string) (File, error) {
	doc, err := s.scopedLoad(ctx, actor, id)
	if err != nil {
		return File{}, err
	}
	return s.open(ctx, doc)
}

func (s *service) DownloadOwn(ctx context.Context, companyID, employeeID, id string) (File, error) {
	doc, err := s.ownLoad(ctx, companyID, employeeID, id)
	if err != nil {
		return File{}, err
	}
	return s.open(ctx, doc)
}

func (s *service) open(ctx context.Context, doc *Document) (File, error) {
	rc, err := s.store.Open(ctx, doc.StoragePath)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("open stored file failed",
			zap.String("document_id", doc.ID.String()),
			zap.Error(err),
		)
		return File{}, documenterrors.ErrDocumentNotFound
	}
	return File{DocumentResponse: mapToResponse(*doc), Content: rc}, nil
}

func (s *service) Delete(ctx context.Context, actor access.Actor, id string) error {
	doc, err := s.scopedLoad(ctx, actor, id)
	if err != nil {
		return err
	}
	return s.delete(ctx, doc)
}

func (s *service) DeleteOwn(ctx context.Context, companyID, employeeID, id string) error {
	doc, err := s.ownLoad(ctx, companyID, employeeID, id)
	if err != nil {
		return err
	}
	return s.delete(ctx, doc)
}

func (s *service) delete(ctx context.Context, doc *Document) error {
	if doc.Category == CategoryLeaveAttachment {
		return documenterrors.ErrAttachedToLeave
	}

	companyID := doc.CompanyID.String()
	employeeID := doc.EmployeeID.String()
	if doc.Category == CategoryPhoto {
		empl, err := s.employees.Lookup(ctx, companyID, employeeID)
		if err != nil {
			return err
		}
		if empl.PhotoDocumentID == doc.ID.String() {
			if err := s.employees.SetPhoto(ctx, companyID, employeeID, nil); err != nil {
				return err
			}
		}
	}

	if err := s.repo.Delete(ctx, companyID, doc.ID.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return documenterrors.ErrDocumentNotFound
		}
		return err
	}
	s.discardFile(ctx, doc.StoragePath)

	contextutil.GetLogger(ctx, s.logger).Info("document deleted", zap.String("document_id", doc.ID.String()))
	return nil
}

func (s *service) load(ctx context.Context, companyID, id string) (*Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, documenterrors.ErrInvalidDocumentID
	}
	doc, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, documenterrors.ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *service) scopedLoad(ctx context.Context, actor access.Actor, id string) (*Document, error) {
	doc, err := s.load(ctx, actor.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.scopedEmployee(ctx, actor, doc.EmployeeID.String()); err != nil {
		return nil, err
	}
	return doc, nil
}

// ownLoad reports another employee's document as missing.
func (s *service) ownLoad(ctx context.Context, companyID, employeeID, id string) (*Document, error) {
	doc, err := s.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if doc.EmployeeID.String() != employeeID {
		return nil, documenterrors.ErrDocumentNotFound
	}
	return doc, nil
}

func (s *service) scopedEmployee(ctx context.Context, actor access.Actor, employeeID string) (employee.EmployeeResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return employee.EmployeeResponse{}, documenterrors.ErrInvalidEmployeeID
	}
	empl, err := s.employees.Lookup(ctx, actor.CompanyID, employeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	vis, err := access.Resolve(ctx, s.resolver, actor)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !vis.Allows(empl.DepartmentID) {
		return employee.EmployeeResponse{}, documenterrors.ErrOutOfScope
	}
	return empl, nil
}

// detectContentType drops parameters such as "; charset=utf-8".
func detectContentType(head []byte) string {
	ct := http.DetectContentType(head)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}

func cleanFileName(name, ext string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "" || name == "." || name == "/" {
		return "document" + ext
	}
	if len(name) > 200 {
		name = name[:200]
	}
	return name
}

func mapToResponse(d Document) DocumentResponse {
	return DocumentResponse{
		ID:             d.ID.String(),
		EmployeeID:     d.EmployeeID.String(),
		Category:       d.Category,
		FileName:       d.FileName,
		ContentType:    d.ContentType,
		SizeBytes:      d.SizeBytes,
		UploadedByType: d.UploadedByType,
		UploadedByID:   d.UploadedByID.String(),
		CreatedAt:      d.CreatedAt.Format(time.RFC3339),
	}
}
