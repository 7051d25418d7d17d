package validation

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "cricketcli/internal/errors"
	"cricketcli/pkg/contracts/domain"
)

// MaxRunsPerBall bounds both the score column and Runs outcomes.
const MaxRunsPerBall = 6

// DeliveryValidator checks parsed deliveries against their struct tags and table invariants
type DeliveryValidator struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewDeliveryValidator creates a validator with the delivery rules registered
func NewDeliveryValidator(logger *slog.Logger) *DeliveryValidator {
	if logger == nil {
		logger = slog.Default()
	}

	v := validator.New()

	// Report source column names rather than Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(deliveryStructLevel, domain.Delivery{})

	return &DeliveryValidator{
		validate: v,
		logger:   logger.With(slog.String("component", "delivery_validator")),
	}
}

// deliveryStructLevel checks the outcome, which has no tag of its own
func deliveryStructLevel(sl validator.StructLevel) {
	d := sl.Current().Interface().(domain.Delivery)
	if d.Outcome.IsWicket() {
		return
	}
	if d.Outcome.Runs < 0 || d.Outcome.Runs > MaxRunsPerBall {
		sl.ReportError(d.Outcome, "outcome", "Outcome", "outcome", "")
	}
}

// Validate checks a single delivery
func (dv *DeliveryValidator) Validate(d domain.Delivery) error {
	if err := dv.validate.Struct(d); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return apperrors.NewAppError(apperrors.ErrTypeValidation, "delivery validation failed", err)
		}

		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, formatFieldError(fe))
		}
		return apperrors.NewAppValidationError(
			fmt.Sprintf("row %d: %s", d.Seq, strings.Join(msgs, "; "))).
			WithContext("row", d.Seq).
			WithContext("key", d.Key().String())
	}
	return nil
}

// ValidateAll checks every delivery and that no (inning, over, ball) key repeats.
// It stops at the first failure.
func (dv *DeliveryValidator) ValidateAll(deliveries []domain.Delivery) error {
	seen := make(map[domain.DeliveryKey]int, len(deliveries))
	for _, d := range deliveries {
		if err := dv.Validate(d); err != nil {
			dv.logger.Warn("Invalid delivery",
				slog.Int("row", d.Seq),
				slog.String("error", err.Error()))
			return err
		}

		key := d.Key()
		if first, dup := seen[key]; dup {
			dv.logger.Warn("Duplicate delivery key",
				slog.String("key", key.String()),
				slog.Int("first_row", first),
				slog.Int("row", d.Seq))
			return apperrors.NewAppValidationError(
				fmt.Sprintf("row %d: duplicate delivery %s (first seen at row %d)", d.Seq, key, first)).
				WithContext("row", d.Seq).
				WithContext("key", key.String())
		}
		seen[key] = d.Seq
	}

	dv.logger.Debug("Deliveries validated", slog.Int("count", len(deliveries)))
	return nil
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", fe.Field(), fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "outcome":
		return fmt.Sprintf("outcome must be %q or 0-%d runs, got %v", domain.WicketMarker, MaxRunsPerBall, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
