package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
)

// ErrDuplicate is returned when an insert hits a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

const (
	pqUniqueViolation = "23505"
	pqInvalidTextRepr = "22P02"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term as a literal substring.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

// normalizeLookupErr turns malformed identifiers into sql.ErrNoRows so a bad
// id behaves like a missing one.
func normalizeLookupErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqInvalidTextRepr {
		return sql.ErrNoRows
	}
	return err
}
