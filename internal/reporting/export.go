package reporting

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gdg-garage/charity-api/internal/apperr"
	"github.com/gdg-garage/charity-api/internal/auth"
)

// ExportRecord is one registration flattened for spreadsheets.
type ExportRecord struct {
	ID        string
	UserID    string
	Data      string
	CreatedAt time.Time
}

var exportHeader = []string{"id", "user_id", "data", "created_at"}

func (e *Engine) ExportRegistrations(ctx context.Context, p auth.Principal) ([]ExportRecord, error) {
	if !p.IsAdmin() {
		return nil, fmt.Errorf("%w: admin only", apperr.ErrForbidden)
	}

	rows, err := e.registrations.All(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ExportRecord, 0, len(rows))
	for _, r := range rows {
		data, err := compact(r.Data)
		if err != nil {
			return nil, fmt.Errorf("registration %s: %w", r.ID, err)
		}
		out = append(out, ExportRecord{
			ID:        r.ID,
			UserID:    r.UserID,
			Data:      data,
			CreatedAt: r.CreatedAt,
		})
	}
	return out, nil
}

// WriteCSV serializes records with a header row.
func WriteCSV(w io.Writer, records []ExportRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{r.ID, r.UserID, r.Data, r.CreatedAt.UTC().Format(time.RFC3339)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func compact(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "{}", nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", err
	}
	return buf.String(), nil
}
