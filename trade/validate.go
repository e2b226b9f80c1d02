package trade

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrNonFinite is returned when a numeric field holds NaN or ±Inf.
var ErrNonFinite = errors.New("non-finite numeric value")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the record-level contract of a trade: required fields,
// direction, date format, and finite numbers.
func (t Trade) Validate() error {
	if err := validatorInstance().Struct(t); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return formatValidationErrors(t.ID, verrs)
		}
		return fmt.Errorf("trade %s: %w", t.ID, err)
	}
	return t.CheckFinite()
}

// CheckFinite rejects NaN and infinite values in the numeric fields.
func (t Trade) CheckFinite() error {
	fields := []struct {
		name string
		v    *float64
	}{
		{"pnl", &t.PnL},
		{"riskReward", t.RiskReward},
		{"takeProfit", t.TakeProfit},
		{"exitPrice", t.ExitPrice},
	}
	for _, f := range fields {
		if f.v == nil {
			continue
		}
		if math.IsNaN(*f.v) || math.IsInf(*f.v, 0) {
			return fmt.Errorf("trade %s: %s=%v: %w", t.ID, f.name, *f.v, ErrNonFinite)
		}
	}
	return nil
}

// CheckAllFinite runs CheckFinite over every trade and returns the first failure.
func CheckAllFinite(trades []Trade) error {
	for _, t := range trades {
		if err := t.CheckFinite(); err != nil {
			return err
		}
	}
	return nil
}

func formatValidationErrors(tradeID string, verrs validator.ValidationErrors) error {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value()))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must be formatted %s, got %q", fe.Field(), fe.Param(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid trade %q: %s", tradeID, strings.Join(msgs, "; "))
}
