package domain

// PDFContentType is the media type of source and generated documents.
const PDFContentType = "application/pdf"

// SourceFile is a document selected for tagging.
type SourceFile struct {
	// Name is the base file name sent to the tagging service.
	Name string

	// Path is where the file was read from, if it came from disk.
	Path string

	// Data is the raw file content.
	Data []byte
}

// UploadRequest is one outbound tagging request.
type UploadRequest struct {
	ID   string
	File SourceFile
}

// UploadResult is the outcome of executing an UploadRequest.
type UploadResult struct {
	RequestID string
	Response  *TagResponse
	Err       error
}
