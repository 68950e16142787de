package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"recipe-app-api/app/server/types"
)

func (a *App) er(c echo.Context, statusCode int) error {
	return c.JSON(statusCode, &types.ErrorMessage{
		Message: http.StatusText(statusCode),
	})
}

// erFields 返回 400 和按字段的错误信息
func (a *App) erFields(c echo.Context, fe types.FieldErrors) error {
	return c.JSON(http.StatusBadRequest, fe)
}

// bindErrorFields 把请求体绑定失败转换为按字段的错误信息
func bindErrorFields(err error) types.FieldErrors {
	fe := types.FieldErrors{}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field, _, _ := strings.Cut(typeErr.Field, ".")
		fe.Add(field, "Incorrect type. Expected "+typeErr.Type.String()+".")
		return fe
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		fe.Add(types.NonFieldErrors, "JSON parse error at offset "+strconv.FormatInt(syntaxErr.Offset, 10)+".")
		return fe
	}

	fe.Add(types.NonFieldErrors, "Invalid request body.")
	return fe
}

func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
