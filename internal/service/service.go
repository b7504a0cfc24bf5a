package service

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/el-timetable/internal/models"
	appErrors "github.com/noah-isme/el-timetable/pkg/errors"
)

// Clock resolves "now" in the business time zone.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// NewClock returns a wall clock for loc. A nil loc means time.Local.
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return Clock{Now: time.Now, Location: loc}
}

// Today returns the current instant in the clock's zone.
func (c Clock) Today() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

// Month returns the current calendar month range.
func (c Clock) Month() models.DateRange {
	return models.MonthRange(c.Today())
}

// Week returns the current Monday-Sunday range.
func (c Clock) Week() models.DateRange {
	return models.WeekRange(c.Today())
}

// Range parses optional inclusive from/to dates into a half-open range. Missing values default to
// the current month. The inclusive first and last days are returned alongside.
func (c Clock) Range(from, to string) (models.DateRange, time.Time, time.Time, error) {
	month := c.Month()
	first, _ := time.Parse(models.DateLayout, month.From)
	next, _ := time.Parse(models.DateLayout, month.To)
	last := next.AddDate(0, 0, -1)

	var err error
	if raw := strings.TrimSpace(from); raw != "" {
		if first, err = time.Parse(models.DateLayout, raw); err != nil {
			return models.DateRange{}, first, last, appErrors.Validation("Dates must be YYYY-MM-DD.")
		}
	}
	if raw := strings.TrimSpace(to); raw != "" {
		if last, err = time.Parse(models.DateLayout, raw); err != nil {
			return models.DateRange{}, first, last, appErrors.Validation("Dates must be YYYY-MM-DD.")
		}
	}
	if last.Before(first) {
		return models.DateRange{}, first, last, appErrors.Validation("End date must not be before start date.")
	}
	rng := models.DateRange{From: first.Format(models.DateLayout), To: last.AddDate(0, 0, 1).Format(models.DateLayout)}
	return rng, first, last, nil
}

func internalError(err error, message string) *appErrors.Error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

// NewValidator returns the validator shared by all request types, with the custom "finite" tag
// registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("finite", finite)
	return v
}

// finite rejects NaN and infinities, which form binding accepts from "NaN" and "Inf".
func finite(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	return true
}

// cents rounds a money amount to the two decimals it is shown and exported with.
func cents(v float64) float64 {
	return math.Round(v*100) / 100
}

// validationError converts validator output into a user-facing message. messages is keyed by
// "Field.tag" first, then "Field".
func validationError(err error, messages map[string]string, fallback string) *appErrors.Error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msg)
		}
		if msg, ok := messages[fe.Field()]; ok {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msg)
		}
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fallback)
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func optionalText(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// uniqueIDs trims ids, dropping blanks and duplicates while keeping order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
