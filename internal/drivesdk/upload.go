package drivesdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
)

// relatedBody builds the multipart/related envelope Drive expects for
// combined metadata+content uploads: a JSON metadata part followed by the
// media part.
func relatedBody(meta *FileMetadata, contentPath string, contentType string) (io.Reader, string, error) {
	file, err := os.Open(contentPath)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	metaHdr := make(textproto.MIMEHeader)
	metaHdr.Set("Content-Type", "application/json; charset=UTF-8")
	part, err := w.CreatePart(metaHdr)
	if err != nil {
		return nil, "", err
	}
	if err := json.NewEncoder(part).Encode(meta); err != nil {
		return nil, "", err
	}

	mediaHdr := make(textproto.MIMEHeader)
	mediaHdr.Set("Content-Type", contentType)
	part, err = w.CreatePart(mediaHdr)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, fmt.Sprintf("multipart/related; boundary=%s", w.Boundary()), nil
}
