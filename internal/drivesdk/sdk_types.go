package drivesdk

// File is the wire representation of a Drive file resource, projected down
// to the fields gsync requests.
type File struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	MimeType        string           `json:"mimeType"`
	ModifiedTime    string           `json:"modifiedTime,omitempty"`
	Trashed         bool             `json:"trashed,omitempty"`
	ShortcutDetails *ShortcutDetails `json:"shortcutDetails,omitempty"`
}

// ShortcutDetails is present only on shortcut resources.
type ShortcutDetails struct {
	TargetID       string `json:"targetId"`
	TargetMimeType string `json:"targetMimeType,omitempty"`
}

// FileMetadata is the writable subset of a file resource used for create and
// update calls.
type FileMetadata struct {
	Name         string   `json:"name,omitempty"`
	MimeType     string   `json:"mimeType,omitempty"`
	Parents      []string `json:"parents,omitempty"`
	ModifiedTime string   `json:"modifiedTime,omitempty"`
}

type fileList struct {
	NextPageToken string  `json:"nextPageToken,omitempty"`
	Files         []*File `json:"files"`
}
