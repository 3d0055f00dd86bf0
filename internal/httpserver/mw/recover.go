package mw

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
)

// PanicHandler writes the response for a recovered panic.
type PanicHandler func(w http.ResponseWriter, r *http.Request, err error)

// Recover turns a panic in next into an error handed to onPanic.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection.
func Recover(onPanic PanicHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}
				onPanic(w, r, panicError(rec))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// recoveredPanic carries the panic value and the stack it was raised on.
type recoveredPanic struct {
	value any
	stack []byte
}

func panicError(v any) error {
	return &recoveredPanic{value: v, stack: debug.Stack()}
}

func (p *recoveredPanic) Error() string { return fmt.Sprintf("panic: %v", p.value) }

func (p *recoveredPanic) Unwrap() error {
	if err, ok := p.value.(error); ok {
		return err
	}
	return nil
}

// Format prints the stack with %+v.
func (p *recoveredPanic) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		_, _ = fmt.Fprintf(s, "%s\n%s", p.Error(), p.stack)
		return
	}
	_, _ = fmt.Fprint(s, p.Error())
}
