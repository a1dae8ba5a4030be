package drivesdk

import (
	"context"
	"fmt"
	"os"

	"github.com/imroc/req/v3"
)

const (
	// Field projection for listings and metadata lookups. shortcutDetails is
	// only populated on shortcut resources.
	fileFields = "id, name, mimeType, modifiedTime, shortcutDetails/targetId"
	listFields = "nextPageToken, files(" + fileFields + ")"

	listPageSize = 1000
)

// FilesAPI exposes the files collection of the Drive API.
type FilesAPI struct {
	client    *req.Client
	uploadURL string
}

func newFilesAPI(client *req.Client, uploadURL string) *FilesAPI {
	return &FilesAPI{
		client:    client,
		uploadURL: uploadURL,
	}
}

// List returns the immediate, non-trashed children of a folder. Listing
// order is whatever the API returns; callers must not rely on it.
func (f *FilesAPI) List(ctx context.Context, parentID string) ([]*File, error) {
	var all []*File
	pageToken := ""

	for {
		var page fileList
		r := f.client.R().
			SetContext(ctx).
			SetQueryParam("q", fmt.Sprintf("'%s' in parents and trashed=false", parentID)).
			SetQueryParam("fields", listFields).
			SetQueryParam("pageSize", fmt.Sprint(listPageSize)).
			SetSuccessResult(&page)
		if pageToken != "" {
			r.SetQueryParam("pageToken", pageToken)
		}

		resp, err := r.Get("/files")
		if err := handleAPIError(resp, err, "files list"); err != nil {
			return nil, err
		}

		all = append(all, page.Files...)
		if page.NextPageToken == "" {
			return all, nil
		}
		pageToken = page.NextPageToken
	}
}

// Get fetches full metadata for a single file id.
func (f *FilesAPI) Get(ctx context.Context, id string) (*File, error) {
	var file *File
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParam("fields", fileFields).
		SetSuccessResult(&file).
		Get("/files/" + id)

	if err := handleAPIError(resp, err, "files get"); err != nil {
		return nil, err
	}

	return file, nil
}

// Download streams the raw content of a file to destPath.
func (f *FilesAPI) Download(ctx context.Context, id string, destPath string) error {
	resp, err := f.client.R().
		DisableAutoReadResponse().
		SetContext(ctx).
		SetQueryParam("alt", "media").
		SetOutputFile(destPath).
		Get("/files/" + id)

	return handleDownloadError(resp, err, destPath, "files download")
}

// Export converts a native document to mimeType and streams it to destPath.
func (f *FilesAPI) Export(ctx context.Context, id string, mimeType string, destPath string) error {
	resp, err := f.client.R().
		DisableAutoReadResponse().
		SetContext(ctx).
		SetQueryParam("mimeType", mimeType).
		SetOutputFile(destPath).
		Get("/files/" + id + "/export")

	return handleDownloadError(resp, err, destPath, "files export")
}

// CreateFolder creates a folder resource (metadata only, no content).
func (f *FilesAPI) CreateFolder(ctx context.Context, meta *FileMetadata) (*File, error) {
	var file *File
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParam("fields", fileFields).
		SetBody(meta).
		SetSuccessResult(&file).
		Post("/files")

	if err := handleAPIError(resp, err, "files create folder"); err != nil {
		return nil, err
	}

	return file, nil
}

// Upload creates a new file with metadata and content in one multipart
// request. contentType is the type of the uploaded bytes; a differing
// meta.MimeType asks Drive to convert on ingestion.
func (f *FilesAPI) Upload(ctx context.Context, meta *FileMetadata, contentPath string, contentType string) (*File, error) {
	body, bodyType, err := relatedBody(meta, contentPath, contentType)
	if err != nil {
		return nil, fmt.Errorf("files upload: %w", err)
	}

	var file *File
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParam("uploadType", "multipart").
		SetQueryParam("fields", fileFields).
		SetContentType(bodyType).
		SetBody(body).
		SetSuccessResult(&file).
		Post(f.uploadURL + "/files")

	if err := handleAPIError(resp, err, "files upload"); err != nil {
		return nil, err
	}

	return file, nil
}

// Update replaces the content and metadata of an existing file. Setting
// meta.MimeType to a native format reinstates it on the remote side.
func (f *FilesAPI) Update(ctx context.Context, id string, meta *FileMetadata, contentPath string, contentType string) (*File, error) {
	body, bodyType, err := relatedBody(meta, contentPath, contentType)
	if err != nil {
		return nil, fmt.Errorf("files update: %w", err)
	}

	var file *File
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParam("uploadType", "multipart").
		SetQueryParam("fields", fileFields).
		SetContentType(bodyType).
		SetBody(body).
		SetSuccessResult(&file).
		Patch(f.uploadURL + "/files/" + id)

	if err := handleAPIError(resp, err, "files update"); err != nil {
		return nil, err
	}

	return file, nil
}

// handleDownloadError deals with the SetOutputFile quirk: on an error status
// the response body lands in the output file and must be cleaned up.
func handleDownloadError(resp *req.Response, requestErr error, destPath string, operation string) error {
	if requestErr != nil {
		os.Remove(destPath)
		return fmt.Errorf("http request error: %s: %w", operation, requestErr)
	}

	if resp.IsErrorState() {
		os.Remove(destPath)
		apiErr := &APIError{StatusCode: resp.GetStatusCode()}
		apiErr.Detail.Code = resp.GetStatusCode()
		apiErr.Detail.Message = resp.Status
		return fmt.Errorf("%s: %w", operation, apiErr)
	}

	return nil
}
