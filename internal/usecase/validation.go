package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/saltandserenity/booking/internal/entity"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const PageSize = 50

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// invalid folds a list of field errors into one Error. The first field is
// reported in Field; all of them are listed in Details.
func invalid(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return &Error{
		Kind:    KindValidation,
		Message: errs[0].Error(),
		Field:   errs[0].Field,
		Details: strings.Join(msgs, "; "),
	}
}

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func ValidateContactInput(input ContactInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	}
	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if !isValidEmail(input.Email) {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}
	if strings.TrimSpace(input.Message) == "" {
		errs = append(errs, ValidationError{"message", "is required"})
	}
	if input.ContactMethod != "" {
		if _, err := entity.ParseContactMethod(input.ContactMethod); err != nil {
			errs = append(errs, ValidationError{"contactMethod", "must be Email Me, Text Me or Call Me"})
		}
	}

	return errs
}

func ValidateReferrerInput(input ReferrerInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	}
	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if !isValidEmail(input.Email) {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}

	return errs
}

// ParsePage reads the page query value. Empty means the first page.
func ParsePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, invalid([]ValidationError{{"page", "must be a whole number of at least 1"}})
	}
	return page, nil
}

// PageWindow returns the store offset and limit for a 1-based page.
func PageWindow(page int) (offset, limit int) {
	return (page - 1) * PageSize, PageSize
}

func TotalPages(total int) int {
	return (total + PageSize - 1) / PageSize
}

// ParseEventDate accepts a calendar date or an RFC 3339 timestamp and
// returns it in UTC.
func ParseEventDate(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
