// Package errors implements the ifclite error taxonomy: a closed set of
// error kinds (matching the pipeline's recoverable/fatal propagation
// policy) wrapped in an AppError that supports errors.Is/As.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Sentinel errors, one per taxonomy kind.
var (
	ErrTruncated        = errors.New("source truncated mid-form")
	ErrInvalidStep      = errors.New("invalid STEP syntax")
	ErrSchemaArity      = errors.New("decoded attribute count does not match schema")
	ErrUnknownType      = errors.New("entity type not in schema registry")
	ErrUnresolvedRef    = errors.New("reference to nonexistent entity")
	ErrUnitLookupFailed = errors.New("project or unit definition missing")
	ErrGeometryItem     = errors.New("unsupported or degenerate geometry item")
	ErrCorruptVertex    = errors.New("non-finite or out-of-range vertex")
	ErrCacheMismatch    = errors.New("cache hash or version mismatch")
	ErrCancelled        = errors.New("operation cancelled")

	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// Code names an error-taxonomy kind, not a concrete Go type.
type Code string

const (
	CodeTruncated        Code = "TRUNCATED"
	CodeInvalidStep      Code = "INVALID_STEP"
	CodeSchemaArity      Code = "SCHEMA_ARITY"
	CodeUnknownType      Code = "UNKNOWN_TYPE"
	CodeUnresolvedRef    Code = "UNRESOLVED_REF"
	CodeUnitLookupFailed Code = "UNIT_LOOKUP_FAILED"
	CodeGeometryItem     Code = "GEOMETRY_ITEM"
	CodeCorruptVertex    Code = "CORRUPT_VERTEX"
	CodeCacheMismatch    Code = "CACHE_MISMATCH"
	CodeCancelled        Code = "CANCELLED"

	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeInternal     Code = "INTERNAL"
)

// fatalCodes terminate a load after releasing in-flight buffers; every
// other code is recoverable and is recorded on the stream without
// unwinding the pipeline (spec §7 propagation policy).
var fatalCodes = map[Code]bool{
	CodeTruncated:   true,
	CodeInvalidStep: true,
}

// AppError carries a taxonomy Code plus the express id it occurred on, when
// applicable, and an optional wrapped cause.
type AppError struct {
	Code      Code
	Message   string
	ExpressID int64 // -1 when not entity-scoped
	Err       error
	Stack     string
}

func (e *AppError) Error() string {
	prefix := string(e.Code)
	if e.ExpressID >= 0 {
		prefix = fmt.Sprintf("%s(#%d)", e.Code, e.ExpressID)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// Fatal reports whether this error must abort the load.
func (e *AppError) Fatal() bool { return fatalCodes[e.Code] }

// Recoverable is the negation of Fatal, kept for readability at call sites.
func (e *AppError) Recoverable() bool { return !e.Fatal() }

// New creates an AppError not scoped to a particular entity.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message, ExpressID: -1, Stack: getStackTrace(2)}
}

// NewAt creates an AppError scoped to expressID.
func NewAt(code Code, expressID int64, message string) *AppError {
	return &AppError{Code: code, Message: message, ExpressID: expressID, Stack: getStackTrace(2)}
}

// Wrap wraps err under code, preserving an existing AppError's identity.
func Wrap(err error, code Code, message string) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		appErr.Message = message + ": " + appErr.Message
		return appErr
	}
	return &AppError{Code: code, Message: message, ExpressID: -1, Err: err, Stack: getStackTrace(2)}
}

// Is delegates to errors.Is.
func Is(err, target error) bool { return errors.Is(err, target) }

// As delegates to errors.As.
func As(err error, target interface{}) bool { return errors.As(err, target) }

// GetCode extracts the taxonomy Code from err, defaulting to CodeInternal.
func GetCode(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, ErrCancelled):
		return CodeCancelled
	default:
		return CodeInternal
	}
}

// IsFatal reports whether err's code is in the fatal set.
func IsFatal(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Fatal()
	}
	return false
}

// Per-kind constructors, one per spec §7 row.

func Truncatedf(format string, args ...interface{}) *AppError {
	return New(CodeTruncated, fmt.Sprintf(format, args...))
}

func InvalidStepf(expressID int64, format string, args ...interface{}) *AppError {
	return NewAt(CodeInvalidStep, expressID, fmt.Sprintf(format, args...))
}

func SchemaArityf(expressID int64, format string, args ...interface{}) *AppError {
	return NewAt(CodeSchemaArity, expressID, fmt.Sprintf(format, args...))
}

func UnknownTypef(expressID int64, format string, args ...interface{}) *AppError {
	return NewAt(CodeUnknownType, expressID, fmt.Sprintf(format, args...))
}

func UnresolvedReff(expressID int64, format string, args ...interface{}) *AppError {
	return NewAt(CodeUnresolvedRef, expressID, fmt.Sprintf(format, args...))
}

func UnitLookupFailedf(format string, args ...interface{}) *AppError {
	return New(CodeUnitLookupFailed, fmt.Sprintf(format, args...))
}

func GeometryItemf(expressID int64, format string, args ...interface{}) *AppError {
	return NewAt(CodeGeometryItem, expressID, fmt.Sprintf(format, args...))
}

func CorruptVertexf(expressID int64, format string, args ...interface{}) *AppError {
	return NewAt(CodeCorruptVertex, expressID, fmt.Sprintf(format, args...))
}

func CacheMismatchf(format string, args ...interface{}) *AppError {
	return New(CodeCacheMismatch, fmt.Sprintf(format, args...))
}

func Cancelledf(format string, args ...interface{}) *AppError {
	return New(CodeCancelled, fmt.Sprintf(format, args...))
}

func NotFoundf(format string, args ...interface{}) *AppError {
	return Wrap(ErrNotFound, CodeNotFound, fmt.Sprintf(format, args...))
}

func InvalidInputf(format string, args ...interface{}) *AppError {
	return Wrap(ErrInvalidInput, CodeInvalidInput, fmt.Sprintf(format, args...))
}

func Internalf(format string, args ...interface{}) *AppError {
	return Wrap(ErrInternal, CodeInternal, fmt.Sprintf(format, args...))
}

// ErrorGroup collects multiple non-fatal errors, e.g. per-entity or
// per-item failures accumulated over a load.
type ErrorGroup struct {
	errors []error
}

func NewErrorGroup() *ErrorGroup { return &ErrorGroup{} }

func (g *ErrorGroup) Add(err error) {
	if err != nil {
		g.errors = append(g.errors, err)
	}
}

func (g *ErrorGroup) Error() string {
	if len(g.errors) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(g.errors))
	for _, e := range g.errors {
		msgs = append(msgs, e.Error())
	}
	return fmt.Sprintf("%d errors occurred: %s", len(g.errors), strings.Join(msgs, "; "))
}

func (g *ErrorGroup) Err() error {
	if len(g.errors) == 0 {
		return nil
	}
	return g
}

func (g *ErrorGroup) Count() int       { return len(g.errors) }
func (g *ErrorGroup) Errors() []error  { return g.errors }

func getStackTrace(skip int) string {
	var buf strings.Builder
	for i := skip; i < skip+10; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		name := fn.Name()
		if strings.HasPrefix(name, "runtime.") {
			continue
		}
		fmt.Fprintf(&buf, "  %s\n    %s:%d\n", name, file, line)
	}
	return buf.String()
}
