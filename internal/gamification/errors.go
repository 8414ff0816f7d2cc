package gamification

import (
	"errors"
	"fmt"
)

// ErrValidation couvre les entrées rejetées avant tout accès au store
// (type d'exercice inconnu, progression négative...). Testé avec errors.Is.
var ErrValidation = errors.New("validation failed")

func validationErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
