package transport

import (
	goerrors "github.com/goliatone/go-errors"

	"github.com/Anshulmehra001/BitFlow/core"
)

func transportError(
	message string,
	category goerrors.Category,
	code int,
	metadata map[string]any,
) error {
	err := goerrors.New(message, category).
		WithTextCode(transportTextCode(category))
	if code > 0 {
		err = err.WithCode(code)
	}
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func transportWrapError(
	source error,
	category goerrors.Category,
	message string,
	code int,
	metadata map[string]any,
) error {
	if source == nil {
		return transportError(message, category, code, metadata)
	}
	err := goerrors.Wrap(source, category, message).
		WithTextCode(transportTextCode(category))
	if code > 0 {
		err = err.WithCode(code)
	}
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func transportTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return core.ErrCodeValidation
	case goerrors.CategoryExternal:
		return core.ErrCodeNetwork
	default:
		return core.ErrCodeAPI
	}
}
