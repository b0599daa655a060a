package document

import "io"

// UploadInput is a file already pulled out of the multipart form.
type UploadInput struct {
	Category string
	LeaveID  string
	FileName string
	Size     int64
	Content  io.Reader
}

type DocumentResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	Category       string `json:"category"`
	FileName       string `json:"file_name"`
	ContentType    string `json:"content_type"`
	SizeBytes      int64  `json:"size_bytes"`
	UploadedByType string `json:"uploaded_by_type"`
	UploadedByID   string `json:"uploaded_by_id"`
	CreatedAt      string `json:"created_at"`
}

// File is an opened document; the caller closes Content.
type File struct {
	DocumentResponse
	Content io.ReadCloser
}
