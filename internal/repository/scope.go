package repository

import (
	"fmt"
	"strings"
	"time"
)

// DeleteScope narrows range deletes. Nil bounds are open; Until is exclusive.
type DeleteScope struct {
	ConsultantID string
	From         *time.Time
	Until        *time.Time
}

// where renders the scope as a WHERE clause over timeColumn. Tables without
// a consultant column pass an empty consultantColumn.
func (s DeleteScope) where(timeColumn, consultantColumn string) (string, []interface{}) {
	conds := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)
	if s.ConsultantID != "" && consultantColumn != "" {
		args = append(args, s.ConsultantID)
		conds = append(conds, fmt.Sprintf("%s = $%d", consultantColumn, len(args)))
	}
	if s.From != nil {
		args = append(args, s.From.UTC())
		conds = append(conds, fmt.Sprintf("%s >= $%d", timeColumn, len(args)))
	}
	if s.Until != nil {
		args = append(args, s.Until.UTC())
		conds = append(conds, fmt.Sprintf("%s < $%d", timeColumn, len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
