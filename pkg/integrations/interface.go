package integrations

// ImageData is an encoded illustration ready to be embedded in a book.
type ImageData struct {
	Content     []byte
	ContentType string
	Index       int
}

// Extension returns the file extension matching the content type.
func (d ImageData) Extension() string {
	switch d.ContentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	}
	return ".png"
}
