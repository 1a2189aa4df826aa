package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

func DecodeJSON(body io.Reader, v interface{}) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}

// DecodeJSONMap reads a free-form object body. The lead form posts whatever
// fields the active template carries, so unknown keys are expected here.
func DecodeJSONMap(body io.Reader) (map[string]interface{}, error) {
	var m map[string]interface{}
	dec := json.NewDecoder(body)
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errors.New("body must contain a single JSON object")
	}
	return m, nil
}

func ValidationDetails(errs validator.ValidationErrors) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	details := make(map[string]string, len(errs))
	for _, err := range errs {
		details[err.Field()] = err.Tag()
	}
	return details
}

// ParsePage reads 1-indexed page/pageSize query params with caps. Out of
// range pages are not an error; the paginator clamps them.
func ParsePage(values url.Values, defaultSize, maxSize int) (int, int, error) {
	page := 1
	size := defaultSize

	rawPage := strings.TrimSpace(values.Get("page"))
	if rawPage != "" {
		parsed, err := strconv.Atoi(rawPage)
		if err != nil || parsed <= 0 {
			return 0, 0, errors.New("invalid page")
		}
		page = parsed
	}

	rawSize := strings.TrimSpace(values.Get("pageSize"))
	if rawSize != "" {
		parsed, err := strconv.Atoi(rawSize)
		if err != nil || parsed <= 0 {
			return 0, 0, errors.New("invalid pageSize")
		}
		size = parsed
	}

	if size > maxSize {
		size = maxSize
	}

	return page, size, nil
}
