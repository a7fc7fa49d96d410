package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdg-garage/charity-api/internal/apperr"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Filter narrows a donation listing. From and To are inclusive and accept
// either RFC3339 timestamps or plain dates; a plain To date covers that
// whole day.
type Filter struct {
	Status string
	From   string
	To     string
}

func (f Filter) apply(q *gorm.DB) (*gorm.DB, error) {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != "" {
		from, _, err := parseBound(f.From)
		if err != nil {
			return nil, fmt.Errorf("%w: from: %v", apperr.ErrValidation, err)
		}
		q = q.Where("created_at >= ?", from)
	}
	if f.To != "" {
		to, dateOnly, err := parseBound(f.To)
		if err != nil {
			return nil, fmt.Errorf("%w: to: %v", apperr.ErrValidation, err)
		}
		if dateOnly {
			q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
		} else {
			q = q.Where("created_at <= ?", to)
		}
	}
	return q, nil
}

func parseBound(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), false, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf("%q is neither an RFC3339 timestamp nor a YYYY-MM-DD date", s)
}
