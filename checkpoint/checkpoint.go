// Package checkpoint decorates errors with the location they passed through.
// Chaining several checkpoints gives a short trace of how an error travelled
// from the ext2 structure that failed up to the public call.
// The described error of every checkpoint is matched by errors.Is and errors.As,
// the wrapped cause is reachable through errors.Unwrap.
package checkpoint

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
)

// From marks err with the location of the caller.
// It returns nil, if err == nil.
func From(err error) error {
	if err == nil || isPassthrough(err) {
		return err
	}

	return &checkpoint{
		err:   err,
		where: caller(),
	}
}

// Wrap records the location of the caller and describes the cause by err.
// It returns nil if cause == nil, so it can be applied unconditionally:
//  inode, err := readSomething()
//  return checkpoint.Wrap(err, ErrCorruptImage)
// Afterwards errors.Is matches err (ErrCorruptImage) and anything inside cause.
func Wrap(cause, err error) error {
	if cause == nil {
		return nil
	}
	if isPassthrough(cause) {
		return cause
	}

	return &checkpoint{
		err:   err,
		cause: cause,
		where: caller(),
	}
}

// isPassthrough reports errors which callers compare with ==.
// https://github.com/golang/go/issues/39155
func isPassthrough(err error) bool {
	return err == io.EOF || err == io.ErrUnexpectedEOF
}

func caller() string {
	pc, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown"
	}

	where := fmt.Sprintf("%s:%d", filepath.Base(file), line)
	if fn := runtime.FuncForPC(pc); fn != nil {
		name := fn.Name()
		where += " " + name[strings.LastIndex(name, ".")+1:]
	}
	return where
}

type checkpoint struct {
	err   error
	cause error
	where string
}

func (e *checkpoint) Error() string {
	var b strings.Builder
	b.WriteString(e.where)
	if e.err != nil {
		b.WriteString(": ")
		b.WriteString(e.err.Error())
	}

	if e.cause != nil {
		cause := e.cause.Error()
		if _, ok := e.cause.(*checkpoint); !ok {
			cause = "cause: " + cause
		}
		b.WriteString("\n\t")
		b.WriteString(strings.ReplaceAll(cause, "\n", "\n\t"))
	}

	return b.String()
}

func (e *checkpoint) Unwrap() error {
	if e.cause == nil {
		// From has no separate cause, the decorated error is the chain.
		return e.err
	}
	return e.cause
}

func (e *checkpoint) Is(target error) bool {
	return e.cause != nil && errors.Is(e.err, target)
}

func (e *checkpoint) As(target interface{}) bool {
	return e.cause != nil && errors.As(e.err, target)
}
