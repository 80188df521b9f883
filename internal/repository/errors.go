package repository

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const mysqlErrDuplicateEntry = 1062

var duplicateEntryPattern = regexp.MustCompile(`Duplicate entry '(.*)' for key '([^']+)'`)

// DuplicateKeyError reports a unique index violation. Fields maps the
// offending column to the rejected value when the driver exposes it.
type DuplicateKeyError struct {
	Fields map[string]string
}

func (e *DuplicateKeyError) Error() string {
	if len(e.Fields) == 0 {
		return "duplicate key"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	return "duplicate key: " + strings.Join(keys, ",")
}

// translateError turns driver-level unique violations into *DuplicateKeyError
// and wraps everything else with op.
func translateError(err error, table, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &DuplicateKeyError{}
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
		return &DuplicateKeyError{Fields: duplicateFields(mysqlErr.Message, table)}
	}
	return fmt.Errorf("%s failed: %w", op, err)
}

func duplicateFields(message, table string) map[string]string {
	m := duplicateEntryPattern.FindStringSubmatch(message)
	if m == nil {
		return nil
	}
	key := m[2]
	if i := strings.LastIndex(key, "."); i >= 0 {
		key = key[i+1:]
	}
	key = strings.TrimPrefix(key, "idx_"+table+"_")
	return map[string]string{key: m[1]}
}
