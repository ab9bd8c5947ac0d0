package service

import (
	"database/sql"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
)

// isNotFound matches the not-found sentinels of both stores.
func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, mongo.ErrNoDocuments)
}

func internalError(err error, message string) error {
	return appErrors.Internal(err, message)
}

func validationError(err error, message string) error {
	return appErrors.Invalid(err, message)
}

func notFound(message string) error {
	return appErrors.NotFound(message)
}

// orDefault returns the trimmed value, or fallback when it is blank.
func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func trimAll(values ...*string) {
	for _, v := range values {
		*v = strings.TrimSpace(*v)
	}
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
