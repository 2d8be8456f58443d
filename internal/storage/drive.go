// Package storage persists business photos in Google Drive.
package storage

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// PhotoStore uploads a photo and returns a publicly reachable URL.
type PhotoStore interface {
	Upload(ctx context.Context, name, mimeType string, r io.Reader) (string, error)
}

// DriveStore stores photos in a shared Google Drive folder.
type DriveStore struct {
	service  *drive.Service
	folderID string
}

// NewDriveStore builds a DriveStore from a service account credentials file.
func NewDriveStore(ctx context.Context, credentialsFile, folderID string) (*DriveStore, error) {
	svc, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsFile), option.WithScopes(drive.DriveFileScope))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &DriveStore{service: svc, folderID: folderID}, nil
}

// Upload writes the file into the configured folder, makes it readable by
// anyone with the link, and returns the direct-content URL.
func (s *DriveStore) Upload(ctx context.Context, name, mimeType string, r io.Reader) (string, error) {
	meta := &drive.File{Name: name}
	if s.folderID != "" {
		meta.Parents = []string{s.folderID}
	}

	file, err := s.service.Files.Create(meta).
		Media(r, googleapi.ContentType(mimeType)).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}

	perm := &drive.Permission{Type: "anyone", Role: "reader"}
	if _, err := s.service.Permissions.Create(file.Id, perm).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("share photo: %w", err)
	}

	return "https://drive.google.com/uc?id=" + file.Id, nil
}
