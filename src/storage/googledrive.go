package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const driveFolderMimeType = "application/vnd.google-apps.folder"

// ErrDriveNotConfigured is returned when no service account credentials were provided.
var ErrDriveNotConfigured = errors.New("google drive credentials are not configured")

var (
	driveURLPattern = regexp.MustCompile(`drive\.google\.com`)
	driveIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`),
		regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`),
	}
)

// DriveFile is a downloaded Google Drive file. Body must be closed by the caller.
type DriveFile struct {
	Name     string
	MimeType string
	Body     io.ReadCloser
}

// DriveFetcher downloads curator-provided Google Drive links with a read-only
// service account. The Drive client is created on first use.
type DriveFetcher struct {
	credentialsPath string
	credentialsJSON string
	log             *zap.Logger

	once    sync.Once
	service *drive.Service
	initErr error
}

func NewDriveFetcher(credentialsPath, credentialsJSON string, log *zap.Logger) *DriveFetcher {
	return &DriveFetcher{
		credentialsPath: credentialsPath,
		credentialsJSON: credentialsJSON,
		log:             log,
	}
}

// Configured reports whether credentials were supplied.
func (f *DriveFetcher) Configured() bool {
	return f.credentialsPath != "" || f.credentialsJSON != ""
}

// client builds the Drive service once. It is not bound to any request
// context, since its token source outlives the first caller.
func (f *DriveFetcher) client() (*drive.Service, error) {
	f.once.Do(func() {
		ctx := context.Background()

		if !f.Configured() {
			f.initErr = ErrDriveNotConfigured
			return
		}

		raw := []byte(f.credentialsJSON)
		if f.credentialsPath != "" {
			data, err := os.ReadFile(f.credentialsPath)
			if err != nil {
				f.initErr = fmt.Errorf("read drive credentials: %w", err)
				return
			}
			raw = data
		}

		creds, err := google.CredentialsFromJSON(ctx, raw, drive.DriveReadonlyScope)
		if err != nil {
			f.initErr = fmt.Errorf("load drive credentials: %w", err)
			return
		}

		f.service, f.initErr = drive.NewService(ctx, option.WithCredentials(creds))
		if f.initErr == nil {
			f.log.Info("google drive client initialized")
		}
	})
	return f.service, f.initErr
}

// Fetch downloads the file a Drive sharing link points to.
func (f *DriveFetcher) Fetch(ctx context.Context, url string) (*DriveFile, error) {
	fileID, err := ExtractDriveFileID(url)
	if err != nil {
		return nil, err
	}

	svc, err := f.client()
	if err != nil {
		return nil, err
	}

	meta, err := svc.Files.Get(fileID).Fields("id", "name", "mimeType", "size").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get drive file %s: %w", fileID, err)
	}
	if meta.MimeType == driveFolderMimeType {
		return nil, fmt.Errorf("drive link %s points to a folder", fileID)
	}

	resp, err := svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("download drive file %s: %w", fileID, err)
	}

	f.log.Info("drive file downloaded",
		zap.String("file_id", fileID),
		zap.String("name", meta.Name),
		zap.Int64("size", meta.Size))

	return &DriveFile{Name: meta.Name, MimeType: meta.MimeType, Body: resp.Body}, nil
}

// IsDriveURL reports whether url is a Google Drive link.
func IsDriveURL(url string) bool {
	return driveURLPattern.MatchString(url)
}

// ExtractDriveFileID returns the file id of a Drive sharing link.
func ExtractDriveFileID(url string) (string, error) {
	if !IsDriveURL(url) {
		return "", fmt.Errorf("not a google drive link: %s", url)
	}
	for _, re := range driveIDPatterns {
		if m := re.FindStringSubmatch(url); len(m) > 1 {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("could not extract a file id from %s", url)
}
