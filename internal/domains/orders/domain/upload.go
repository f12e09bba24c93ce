package domain

// Upload is the capability required from a submitted design file. The
// content must be readable more than once: it is inspected during order
// assembly and attached unmodified to the notification afterwards, so
// implementations buffer rather than consume a single-use stream.
type Upload interface {
	ReadAll() ([]byte, error)
	Name() string
	ContentType() string
}

// BufferedUpload keeps the full file content in memory.
type BufferedUpload struct {
	filename    string
	contentType string
	data        []byte
}

// NewBufferedUpload wraps already-read file bytes as an Upload.
func NewBufferedUpload(filename, contentType string, data []byte) *BufferedUpload {
	return &BufferedUpload{filename: filename, contentType: contentType, data: data}
}

func (u *BufferedUpload) ReadAll() ([]byte, error) { return u.data, nil }

func (u *BufferedUpload) Name() string { return u.filename }

func (u *BufferedUpload) ContentType() string { return u.contentType }

var _ Upload = (*BufferedUpload)(nil)
