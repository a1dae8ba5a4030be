package sync

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gdrive-tools/gsync/internal/drivesdk"
)

// fakeDrive is an in-memory Transport for engine tests.
type fakeDrive struct {
	files    map[string]*drivesdk.File
	children map[string][]string
	content  map[string][]byte

	failDownload map[string]error

	lists     int
	downloads int
	exports   int

	uploadCalls []writeCall
	updateCalls []writeCall
	folderCalls []writeCall

	nextID int
}

type writeCall struct {
	ID          string
	Meta        *drivesdk.FileMetadata
	Content     []byte
	ContentType string
}

func newFakeDrive() *fakeDrive {
	d := &fakeDrive{
		files:        make(map[string]*drivesdk.File),
		children:     make(map[string][]string),
		content:      make(map[string][]byte),
		failDownload: make(map[string]error),
	}
	d.files["root"] = &drivesdk.File{ID: "root", Name: "root", MimeType: MimeFolder}
	return d
}

func (d *fakeDrive) addFolder(id, parent, name string) {
	d.files[id] = &drivesdk.File{ID: id, Name: name, MimeType: MimeFolder}
	d.children[parent] = append(d.children[parent], id)
}

func (d *fakeDrive) addFile(id, parent, name, mime, modified string, content []byte) {
	d.files[id] = &drivesdk.File{ID: id, Name: name, MimeType: mime, ModifiedTime: modified}
	d.children[parent] = append(d.children[parent], id)
	d.content[id] = content
}

func (d *fakeDrive) addShortcut(id, parent, name, targetID string) {
	d.files[id] = &drivesdk.File{
		ID:              id,
		Name:            name,
		MimeType:        MimeShortcut,
		ShortcutDetails: &drivesdk.ShortcutDetails{TargetID: targetID},
	}
	d.children[parent] = append(d.children[parent], id)
}

func (d *fakeDrive) notFound() error {
	apiErr := &drivesdk.APIError{StatusCode: http.StatusNotFound}
	apiErr.Detail.Code = http.StatusNotFound
	apiErr.Detail.Message = "File not found"
	return apiErr
}

func (d *fakeDrive) List(ctx context.Context, parentID string) ([]*drivesdk.File, error) {
	d.lists++
	if _, ok := d.files[parentID]; !ok {
		return nil, d.notFound()
	}
	var out []*drivesdk.File
	for _, id := range d.children[parentID] {
		if f := d.files[id]; f != nil && !f.Trashed {
			out = append(out, f)
		}
	}
	return out, nil
}

func (d *fakeDrive) Get(ctx context.Context, id string) (*drivesdk.File, error) {
	f, ok := d.files[id]
	if !ok {
		return nil, d.notFound()
	}
	return f, nil
}

func (d *fakeDrive) Download(ctx context.Context, id string, destPath string) error {
	d.downloads++
	if err := d.failDownload[id]; err != nil {
		return err
	}
	content, ok := d.content[id]
	if !ok {
		return d.notFound()
	}
	return os.WriteFile(destPath, content, 0o644)
}

func (d *fakeDrive) Export(ctx context.Context, id string, mimeType string, destPath string) error {
	d.exports++
	if err := d.failDownload[id]; err != nil {
		return err
	}
	if _, ok := d.files[id]; !ok {
		return d.notFound()
	}
	return os.WriteFile(destPath, []byte("export|"+id+"|"+mimeType), 0o644)
}

func (d *fakeDrive) CreateFolder(ctx context.Context, meta *drivesdk.FileMetadata) (*drivesdk.File, error) {
	id := d.genID()
	d.folderCalls = append(d.folderCalls, writeCall{ID: id, Meta: meta})
	d.files[id] = &drivesdk.File{ID: id, Name: meta.Name, MimeType: MimeFolder, ModifiedTime: meta.ModifiedTime}
	for _, parent := range meta.Parents {
		d.children[parent] = append(d.children[parent], id)
	}
	return d.files[id], nil
}

func (d *fakeDrive) Upload(ctx context.Context, meta *drivesdk.FileMetadata, contentPath string, contentType string) (*drivesdk.File, error) {
	content, err := os.ReadFile(contentPath)
	if err != nil {
		return nil, err
	}

	id := d.genID()
	d.uploadCalls = append(d.uploadCalls, writeCall{ID: id, Meta: meta, Content: content, ContentType: contentType})

	// Drive converts on ingestion when the metadata asks for another format.
	mime := contentType
	if meta.MimeType != "" {
		mime = meta.MimeType
	}
	d.files[id] = &drivesdk.File{ID: id, Name: meta.Name, MimeType: mime, ModifiedTime: meta.ModifiedTime}
	for _, parent := range meta.Parents {
		d.children[parent] = append(d.children[parent], id)
	}
	d.content[id] = content
	return d.files[id], nil
}

func (d *fakeDrive) Update(ctx context.Context, id string, meta *drivesdk.FileMetadata, contentPath string, contentType string) (*drivesdk.File, error) {
	f, ok := d.files[id]
	if !ok {
		return nil, d.notFound()
	}

	content, err := os.ReadFile(contentPath)
	if err != nil {
		return nil, err
	}
	d.updateCalls = append(d.updateCalls, writeCall{ID: id, Meta: meta, Content: content, ContentType: contentType})

	if meta.MimeType != "" {
		f.MimeType = meta.MimeType
	}
	if meta.ModifiedTime != "" {
		f.ModifiedTime = meta.ModifiedTime
	}
	d.content[id] = content
	return f, nil
}

func (d *fakeDrive) genID() string {
	d.nextID++
	return fmt.Sprintf("gen-%d", d.nextID)
}

var _ Transport = (*fakeDrive)(nil)
