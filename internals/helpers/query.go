package helper

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// SearchAny adds a case-insensitive "contains" match over cols, OR-ed
// together. A blank term leaves q untouched.
func SearchAny(q *gorm.DB, term string, cols ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(cols) == 0 {
		return q
	}
	pattern := "%" + strings.ToLower(term) + "%"
	parts := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols))
	for _, col := range cols {
		parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE ?", col))
		args = append(args, pattern)
	}
	return q.Where("("+strings.Join(parts, " OR ")+")", args...)
}

// FlexibleIDs decodes a JSON array whose items may be numbers or numeric
// strings (checkbox values posted by the admin screens). Non-numeric items
// are dropped.
type FlexibleIDs []uint

func (f *FlexibleIDs) UnmarshalJSON(b []byte) error {
	var raw []interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make([]uint, 0, len(raw))
	for _, v := range raw {
		switch t := v.(type) {
		case float64:
			if t > 0 {
				out = append(out, uint(t))
			}
		case string:
			if n, err := strconv.ParseUint(strings.TrimSpace(t), 10, 64); err == nil && n > 0 {
				out = append(out, uint(n))
			}
		}
	}
	*f = out
	return nil
}
