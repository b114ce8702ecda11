package handlers

import (
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/utils/accounting"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const queryDateLayout = "2006-01-02"

var registerValidatorsOnce sync.Once

// registerValidators teaches gin's validator about decimal amounts:
// dgt0 requires a value greater than zero, dgte0 a value of at least zero,
// and dscale2 no more decimal places than amounts are stored with.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			slog.Warn("Binding validator is not go-playground/validator, decimal rules not registered")
			return
		}
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})

		_ = v.RegisterValidation("dgt0", func(fl validator.FieldLevel) bool {
			d, ok := decimalField(fl)
			return ok && d.IsPositive()
		})
		_ = v.RegisterValidation("dgte0", func(fl validator.FieldLevel) bool {
			d, ok := decimalField(fl)
			return ok && !d.IsNegative()
		})
		_ = v.RegisterValidation("dscale2", func(fl validator.FieldLevel) bool {
			d, ok := decimalField(fl)
			return ok && accounting.HasMoneyScale(d)
		})
	})
}

func decimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	return d, err == nil
}

// queryDate parses an optional YYYY-MM-DD query parameter as a UTC date.
func queryDate(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(queryDateLayout, raw, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
