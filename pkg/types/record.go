// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// LinkRecord ties one synced document to its remote hyperlink. RemoteID
// and RemoteURL are empty until the upload succeeds; a record is never
// written to CSV without them.
type LinkRecord struct {
	// Category is the document category name from the category map.
	Category string `json:"category" yaml:"category"`

	// Filename is the local file name, including extension.
	Filename string `json:"filename" yaml:"filename"`

	// RemoteID is the document id assigned by the Document Center.
	RemoteID string `json:"remote_id" yaml:"remote_id"`

	// RemoteURL is the public hyperlink to the stored document.
	RemoteURL string `json:"remote_url" yaml:"remote_url"`

	// UploadedAt records when the upload completed.
	UploadedAt time.Time `json:"uploaded_at,omitempty" yaml:"uploaded_at,omitempty"`
}

// Failure records one document that could not be uploaded.
type Failure struct {
	// Filename is the local file name.
	Filename string `json:"filename" yaml:"filename"`

	// Category is the matched category, when known.
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	// Reason is the error text from the failed upload.
	Reason string `json:"reason" yaml:"reason"`
}

// ParcelLink joins a GIS parcel feature to a remote document hyperlink
// by instrument number.
type ParcelLink struct {
	// ObjectID is the feature object id from the GIS export.
	ObjectID int64 `json:"object_id" yaml:"object_id"`

	// Instrument is the recorded instrument number on the feature,
	// which doubles as the document name in the Document Center.
	Instrument string `json:"instrument" yaml:"instrument"`

	// GlobalID is the feature global id from the GIS export.
	GlobalID string `json:"global_id" yaml:"global_id"`

	// WebLink is the document hyperlink for the instrument.
	WebLink string `json:"web_link" yaml:"web_link"`
}
