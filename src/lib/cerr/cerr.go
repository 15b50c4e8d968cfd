package cerr

import (
	"github.com/cockroachdb/errors"
)

type F = map[string]interface{}

var _ error = ContextualError{}
var _ interface{ Unwrap() error } = ContextualError{}

type Context struct {
	ContextFields F
}

// ContextualError carries structured fields alongside the message
// so that cerr.Log can emit them as log fields
type ContextualError struct {
	Context Context
	inner   error
}

func (c ContextualError) Error() string {
	return c.inner.Error()
}

func (c ContextualError) Unwrap() error {
	return c.inner
}

type WrappedContext struct {
	Context Context
	cause   error
}

func Field(key string, value interface{}) Context {
	return Context{}.Field(key, value)
}

func Fields(fields F) Context {
	return Context{}.Fields(fields)
}

func Wrap(err error) WrappedContext {
	return Context{}.Wrap(err)
}

func Error(message string) error {
	return ContextualError{
		Context: Context{ContextFields: F{}},
		inner:   errors.NewWithDepth(1, message),
	}
}

func (c Context) Field(key string, value interface{}) Context {
	return c.Fields(F{key: value})
}

func (c Context) Fields(fields F) Context {
	merged := F{}
	for k, v := range c.ContextFields {
		merged[k] = v
	}

	for k, v := range fields {
		merged[k] = v
	}

	return Context{ContextFields: merged}
}

func (c Context) Wrap(err error) WrappedContext {
	return WrappedContext{
		Context: c,
		cause:   err,
	}
}

func (c Context) Error(message string) error {
	return ContextualError{
		Context: c.withFields(),
		inner:   errors.NewWithDepth(1, message),
	}
}

func (w WrappedContext) Error(message string) error {
	if w.cause == nil {
		return ContextualError{
			Context: w.Context.withFields(),
			inner:   errors.NewWithDepth(1, message),
		}
	}

	return ContextualError{
		Context: w.Context.withFields(),
		inner:   errors.WrapWithDepth(1, w.cause, message),
	}
}

func (c Context) withFields() Context {
	if c.ContextFields == nil {
		return Context{ContextFields: F{}}
	}

	return c
}

// CollectFields merges the fields of every contextual error in the chain,
// outer errors taking precedence
func CollectFields(err error) F {
	fields := F{}
	for err != nil {
		if ctxErr, ok := err.(ContextualError); ok {
			for k, v := range ctxErr.Context.ContextFields {
				if _, exists := fields[k]; !exists {
					fields[k] = v
				}
			}
		}

		err = errors.UnwrapOnce(err)
	}

	return fields
}
