package req

import (
	"fmt"
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"stashboard/pkg/errcodes"
)

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary         //nolint:gochecknoglobals // skip
	validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // skip
)

func Read(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return failure.NewInvalidArgumentError(
			fmt.Errorf("json.Decode: %w", err).Error(),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("Invalid JSON"),
		)
	}

	if err := validate.StructCtx(r.Context(), dest); err != nil {
		return failure.NewInvalidArgumentError(
			"validation error",
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription(err.Error()),
		)
	}

	return nil
}

// QueryBool reads an optional boolean query parameter, defaulting to false.
func QueryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, failure.NewInvalidArgumentError(
			fmt.Errorf("strconv.ParseBool %q: %w", name, err).Error(),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription(fmt.Sprintf("Query parameter %q must be a boolean", name)),
		)
	}

	return value, nil
}

// QueryInt reads an optional integer query parameter with a default.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, failure.NewInvalidArgumentError(
			fmt.Errorf("strconv.Atoi %q: %w", name, err).Error(),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription(fmt.Sprintf("Query parameter %q must be an integer", name)),
		)
	}

	return value, nil
}
