package inits

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// 价格最多 5 位数字，其中 2 位小数
const (
	priceMaxDigits     = 5
	priceDecimalPlaces = 2
)

func Validator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// 错误信息中使用 json 字段名
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// decimal 作为字符串参与校验
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		return ValidPrice(fl.Field().String())
	})

	return v
}

func ValidPrice(s string) bool {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	if !d.Equal(d.Round(priceDecimalPlaces)) {
		return false
	}
	limit := decimal.New(1, priceMaxDigits-priceDecimalPlaces)
	return d.Abs().LessThan(limit)
}
