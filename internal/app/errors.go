package app

import "errors"

// ErrParse permet errors.Is(err, ErrParse) sur toute ParseError.
var ErrParse = errors.New("malformed settings json")

var ErrNoDataSource = errors.New("no data source available")

// ParseError est la seule erreur du store: le blob persisté n'est pas du JSON valide.
// L'état du store n'est pas modifié quand elle est renvoyée.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return ErrParse.Error()
	}
	return ErrParse.Error() + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }
