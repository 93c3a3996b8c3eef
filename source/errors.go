package source

import "fmt"

// TranslationError reports an upstream payload missing a field the
// translators need.
type TranslationError struct {
	Field string
	Err   error
}

func (e *TranslationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed payload: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("malformed payload: missing %s", e.Field)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}
