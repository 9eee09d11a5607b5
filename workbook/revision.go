package workbook

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/drive/v3"
)

type version struct {
	revision string
	modified time.Time
}

// Modified returns the modification time of the latest revision of the workbook.
func (s *spreadsheet) Modified(ctx context.Context) (time.Time, error) {
	latest, err := getVersion(s.drive, s.id, ctx)
	if err != nil {
		return time.Time{}, err
	}

	return latest.modified, nil
}

func getVersion(gdrive *drive.Service, fileId string, ctx context.Context) (*version, error) {
	page := ""
	latest := version{
		revision: "",
		modified: time.Time{},
	}

	for {
		call := drive.NewRevisionsService(gdrive).List(fileId).Fields("nextPageToken", "revisions(id,modifiedTime)")
		if page != "" {
			call.PageToken(page)
		}

		revisions, err := call.Context(ctx).Do()
		if err != nil {
			return nil, describe(err)
		}

		for _, revision := range revisions.Revisions {
			datetime, err := time.Parse(time.RFC3339Nano, revision.ModifiedTime)
			if err != nil {
				return nil, err
			}

			if latest.modified.Before(datetime) {
				latest.revision = revision.Id
				latest.modified = datetime
			}
		}

		if page = revisions.NextPageToken; page == "" {
			break
		}
	}

	if latest.modified.IsZero() {
		return nil, fmt.Errorf("unable to identify latest revision for file ID %s", fileId)
	}

	return &latest, nil
}
