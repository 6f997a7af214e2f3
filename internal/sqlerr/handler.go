package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/contacts-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var uniqueKeySuffix = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// ErrCode reports the Code of the first *Error in err's chain, or Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

// ConvertPgError converts a PostgreSQL server error into an Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// ConvertMongoError converts a MongoDB write error into an Error. It returns
// nil when err is not a write error the package understands.
func ConvertMongoError(err error, collection string) *Error {
	if mongo.IsDuplicateKeyError(err) {
		return &Error{
			Code:         UniqueViolation,
			Severity:     SeverityError,
			DatabaseCode: "11000",
			Message:      err.Error(),
			TableName:    collection,
			driverErr:    err,
		}
	}
	return nil
}

// generateErrorCode builds a machine-readable <DOMAIN>_<ACTION> code, such as
// CONTACT_ALREADY_EXISTS.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, StringDataTooLong, InvalidTextRep:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)
	case UniqueViolation:
		return fmt.Sprintf("A %s with this identifier already exists", entityName)
	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)
	case CheckViolation, StringDataTooLong, InvalidTextRep:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"
	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName prefers an "<entity>_id" column, then the singular table name.
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		return humanizeText(strings.TrimSuffix(strings.ToLower(columnName), "_id"))
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText turns snake_case into Title Case.
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation reads the column out of a constraint named
// unique_<table>_<column> or <table>_<column>_key.
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueKeySuffix.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a storage error into an *errs.HTTPError.
//
// HTTPErrors pass through unchanged. Constraint violations become 400s,
// missing rows become 404s and everything else is a 500 whose details stay
// out of the response.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var sqlErr *Error
	var pgerr *pgconn.PgError
	switch {
	case errors.As(err, &sqlErr):
	case errors.As(err, &pgerr):
		sqlErr = ConvertPgError(pgerr)
	default:
		sqlErr = ConvertMongoError(err, "contacts")
	}

	if sqlErr != nil {
		return fromSQLError(sqlErr)
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) || errors.Is(err, mongo.ErrNoDocuments) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}

func fromSQLError(sqlErr *Error) error {
	errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
	userMessage := formatUserFriendlyMessage(sqlErr)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return errs.NewBadRequestError(userMessage, false, &errorCode, nil, nil)

	case UniqueViolation:
		if columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName); columnName != "" {
			userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
		}
		return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

	case NotNullViolation:
		fieldErrors := []errs.FieldError{
			{
				Field: strings.ToLower(sqlErr.ColumnName),
				Error: "is required",
			},
		}
		return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

	case CheckViolation, StringDataTooLong, InvalidTextRep:
		return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

	default:
		return errs.NewInternalServerError()
	}
}
