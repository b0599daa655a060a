package document

import (
	"time"

	"github.com/google/uuid"
)

const (
	CategoryPhoto           = "PHOTO"
	CategoryContract        = "CONTRACT"
	CategoryID              = "ID"
	CategoryCertificate     = "CERTIFICATE"
	CategoryLeaveAttachment = "LEAVE_ATTACHMENT"
	CategoryOther           = "OTHER"
)

var Categories = []string{
	CategoryPhoto,
	CategoryContract,
	CategoryID,
	CategoryCertificate,
	CategoryLeaveAttachment,
	CategoryOther,
}

const (
	UploadedByUser     = "USER"
	UploadedByEmployee = "EMPLOYEE"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypePNG  = "image/png"
	ContentTypeJPEG = "image/jpeg"
)

// extensions also serves as the allow list of sniffed content types.
var extensions = map[string]string{
	ContentTypePDF:  ".pdf",
	ContentTypePNG:  ".png",
	ContentTypeJPEG: ".jpg",
}

type Document struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Category       string    `gorm:"size:30;not null"`
	FileName       string    `gorm:"size:255;not null"`
	ContentType    string    `gorm:"size:100;not null"`
	SizeBytes      int64     `gorm:"not null"`
	StoragePath    string    `gorm:"size:500;not null"`
	UploadedByType string    `gorm:"size:10;not null"`
	UploadedByID   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}
