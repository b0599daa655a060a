package document_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"hris-portal/internal/document"
	documenterrors "hris-portal/internal/document/errors"
	documentMock "hris-portal/internal/document/mock"
	"hris-portal/internal/employee"
	"hris-portal/internal/shared/access"
	accessMock "hris-portal/internal/shared/access/mock"
	"hris-portal/internal/shared/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

var (
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
	pngBytes = append([]byte("\x89PNG\x0D\x0A\x1A\x0A"), bytes.Repeat([]byte{0}, 32)...)
)

type testDeps struct {
	repo      *documentMock.MockRepository
	employees *documentMock.MockEmployeeDirectory
	leaves    *documentMock.MockLeaveAttacher
	resolver  *accessMock.MockDepartmentResolver
	store     *storage.Local
	service   document.Service
}

func setup(t *testing.T) testDeps {
	ctrl := gomock.NewController(t)
	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	d := testDeps{
		repo:      documentMock.NewMockRepository(ctrl),
		employees: documentMock.NewMockEmployeeDirectory(ctrl),
		leaves:    documentMock.NewMockLeaveAttacher(ctrl),
		resolver:  accessMock.NewMockDepartmentResolver(ctrl),
		store:     store,
	}
	d.service = document.NewService(d.repo, d.store, d.employees, d.leaves, d.resolver, 1)
	return d
}

func upload(category string, body []byte) document.UploadInput {
	return document.UploadInput{
		Category: category,
		FileName: "file.bin",
		Size:     int64(len(body)),
		Content:  bytes.NewReader(body),
	}
}

func TestDocumentService_UploadOwn(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	employeeID := uuid.NewString()

	t.Run("pdf contract is stored", func(t *testing.T) {
		deps := setup(t)

		var saved *document.Document
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, d *document.Document) error {
			saved = d
			return nil
		})

		in := upload("contract", pdfBytes)
		in.FileName = `C:\scans\contract.pdf`
		resp, err := deps.service.UploadOwn(ctx, companyID, employeeID, in)
		require.NoError(t, err)

		assert.Equal(t, document.CategoryContract, resp.Category)
		assert.Equal(t, document.ContentTypePDF, resp.ContentType)
		assert.Equal(t, "contract.pdf", resp.FileName)
		assert.Equal(t, document.UploadedByEmployee, resp.UploadedByType)
		assert.Equal(t, employeeID, resp.UploadedByID)
		assert.EqualValues(t, len(pdfBytes), resp.SizeBytes)
		assert.True(t, strings.HasSuffix(saved.StoragePath, ".pdf"))

		rc, err := deps.store.Open(ctx, saved.StoragePath)
		require.NoError(t, err)
		body, _ := io.ReadAll(rc)
		rc.Close()
		assert.Equal(t, pdfBytes, body)
	})

	t.Run("photo sets the employee photo", func(t *testing.T) {
		deps := setup(t)

		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.employees.EXPECT().SetPhoto(ctx, companyID, employeeID, gomock.Not(gomock.Nil())).Return(nil)

		resp, err := deps.service.UploadOwn(ctx, companyID, employeeID, upload(document.CategoryPhoto, pngBytes))
		require.NoError(t, err)
		assert.Equal(t, document.ContentTypePNG, resp.ContentType)
	})

	t.Run("leave attachment links the leave", func(t *testing.T) {
		deps := setup(t)
		leaveID := uuid.NewString()

		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.leaves.EXPECT().AttachDocument(ctx, companyID, employeeID, leaveID, gomock.Any()).Return(nil)

		in := upload(document.CategoryLeaveAttachment, pdfBytes)
		in.LeaveID = leaveID
		_, err := deps.service.UploadOwn(ctx, companyID, employeeID, in)
		assert.NoError(t, err)
	})

	t.Run("failed link removes row and file", func(t *testing.T) {
		deps := setup(t)
		leaveID := uuid.NewString()

		var saved *document.Document
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, d *document.Document) error {
			saved = d
			return nil
		})
		deps.leaves.EXPECT().AttachDocument(ctx, companyID, employeeID, leaveID, gomock.Any()).Return(errors.New("leave not found"))
		deps.repo.EXPECT().Delete(ctx, companyID, gomock.Any()).Return(nil)

		in := upload(document.CategoryLeaveAttachment, pdfBytes)
		in.LeaveID = leaveID
		_, err := deps.service.UploadOwn(ctx, companyID, employeeID, in)
		assert.Error(t, err)

		_, err = deps.store.Open(ctx, saved.StoragePath)
		assert.Error(t, err)
	})

	t.Run("rejections", func(t *testing.T) {
		tests := []struct {
			name string
			in   document.UploadInput
			want error
		}{
			{"unknown category", upload("PAYSLIP", pdfBytes), documenterrors.ErrInvalidCategory},
			{"leave attachment without leave", upload(document.CategoryLeaveAttachment, pdfBytes), documenterrors.ErrLeaveRequired},
			{"empty file", upload(document.CategoryOther, nil), documenterrors.ErrFileRequired},
			{"plain text", upload(document.CategoryOther, []byte("hello world")), documenterrors.ErrUnsupportedType},
			{"pdf as photo", upload(document.CategoryPhoto, pdfBytes), documenterrors.ErrPhotoNotImage},
			{
				"declared size over limit",
				document.UploadInput{Category: document.CategoryOther, Size: 2 << 20, Content: bytes.NewReader(pdfBytes)},
				documenterrors.ErrFileTooLarge,
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				deps := setup(t)
				_, err := deps.service.UploadOwn(ctx, companyID, employeeID, tt.in)
				assert.ErrorIs(t, err, tt.want)
			})
		}
	})

	t.Run("actual size over limit", func(t *testing.T) {
		deps := setup(t)
		big := append(append([]byte{}, pdfBytes...), bytes.Repeat([]byte("x"), 1<<20)...)
		in := upload(document.CategoryOther, big)
		in.Size = 100

		_, err := deps.service.UploadOwn(ctx, companyID, employeeID, in)
		assert.ErrorIs(t, err, documenterrors.ErrFileTooLarge)
	})
}

func TestDocumentService_UploadScope(t *testing.T) {
	ctx := context.Background()
	actor := access.Actor{UserID: uuid.NewString(), CompanyID: uuid.NewString(), Role: access.RoleSupervisor}
	employeeID := uuid.NewString()

	deps := setup(t)
	deps.employees.EXPECT().Lookup(ctx, actor.CompanyID, employeeID).
		Return(employee.EmployeeResponse{ID: employeeID, DepartmentID: "dept-b"}, nil)
	deps.resolver.EXPECT().SupervisedDepartmentIDs(ctx, actor.CompanyID, actor.UserID).Return([]string{"dept-a"}, nil)

	_, err := deps.service.Upload(ctx, actor, employeeID, upload(document.CategoryContract, pdfBytes))
	assert.ErrorIs(t, err, documenterrors.ErrOutOfScope)
}

func TestDocumentService_DeleteOwn(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	employeeID := uuid.NewString()

	stored := func(deps testDeps, category string) *document.Document {
		doc := &document.Document{
			ID:          uuid.New(),
			CompanyID:   uuid.MustParse(companyID),
			EmployeeID:  uuid.MustParse(employeeID),
			Category:    category,
			StoragePath: companyID + "/" + employeeID + "/doc.png",
		}
		_, err := deps.store.Save(ctx, doc.StoragePath, bytes.NewReader(pngBytes))
		require.NoError(t, err)
		return doc
	}

	t.Run("current photo is cleared", func(t *testing.T) {
		deps := setup(t)
		doc := stored(deps, document.CategoryPhoto)

		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, doc.ID.String()).Return(doc, nil)
		deps.employees.EXPECT().Lookup(ctx, companyID, employeeID).
			Return(employee.EmployeeResponse{ID: employeeID, PhotoDocumentID: doc.ID.String()}, nil)
		deps.employees.EXPECT().SetPhoto(ctx, companyID, employeeID, nil).Return(nil)
		deps.repo.EXPECT().Delete(ctx, companyID, doc.ID.String()).Return(nil)

		require.NoError(t, deps.service.DeleteOwn(ctx, companyID, employeeID, doc.ID.String()))
		_, err := deps.store.Open(ctx, doc.StoragePath)
		assert.Error(t, err)
	})

	t.Run("another employee's document is not found", func(t *testing.T) {
		deps := setup(t)
		doc := stored(deps, document.CategoryOther)

		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, doc.ID.String()).Return(doc, nil)

		err := deps.service.DeleteOwn(ctx, companyID, uuid.NewString(), doc.ID.String())
		assert.ErrorIs(t, err, documenterrors.ErrDocumentNotFound)
	})

	t.Run("leave attachment is kept", func(t *testing.T) {
		deps := setup(t)
		doc := stored(deps, document.CategoryLeaveAttachment)

		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, doc.ID.String()).Return(doc, nil)

		err := deps.service.DeleteOwn(ctx, companyID, employeeID, doc.ID.String())
		assert.ErrorIs(t, err, documenterrors.ErrAttachedToLeave)
	})

	t.Run("missing", func(t *testing.T) {
		deps := setup(t)
		id := uuid.NewString()
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, id).Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.DeleteOwn(ctx, companyID, employeeID, id)
		assert.ErrorIs(t, err, documenterrors.ErrDocumentNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setup(t)
		err := deps.service.DeleteOwn(ctx, companyID, employeeID, "x")
		assert.ErrorIs(t, err, documenterrors.ErrInvalidDocumentID)
	})
}

func TestDocumentService_DownloadOwn(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	employeeID := uuid.NewString()
	deps := setup(t)

	doc := &document.Document{
		ID:          uuid.New(),
		CompanyID:   uuid.MustParse(companyID),
		EmployeeID:  uuid.MustParse(employeeID),
		Category:    document.CategoryContract,
		FileName:    "contract.pdf",
		ContentType: document.ContentTypePDF,
		StoragePath: companyID + "/" + employeeID + "/c.pdf",
	}
	_, err := deps.store.Save(ctx, doc.StoragePath, bytes.NewReader(pdfBytes))
	require.NoError(t, err)
	deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, doc.ID.String()).Return(doc, nil)

	f, err := deps.service.DownloadOwn(ctx, companyID, employeeID, doc.ID.String())
	require.NoError(t, err)
	defer f.Content.Close()

	body, _ := io.ReadAll(f.Content)
	assert.Equal(t, pdfBytes, body)
	assert.Equal(t, "contract.pdf", f.FileName)
}

func TestDocumentService_ListOwn(t *testing.T) {
	ctx := context.Background()
	deps := setup(t)

	_, err := deps.service.ListOwn(ctx, uuid.NewString(), uuid.NewString(), "selfie")
	assert.ErrorIs(t, err, documenterrors.ErrInvalidCategory)
}
