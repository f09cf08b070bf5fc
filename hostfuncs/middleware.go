package hostfuncs

import (
	"time"

	"go.uber.org/zap"
)

// Invocation performs one crossing into the host. native runs the bound
// entry point and stores its result in the caller's variables.
type Invocation func(op string, native func())

// Middleware is a function that wraps an Invocation to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion model).
//
// Example usage:
//
//	counting := func(next Invocation) Invocation {
//	    return func(op string, native func()) {
//	        calls[op]++
//	        next(op, native)
//	    }
//	}
type Middleware func(next Invocation) Invocation

// CallObserver receives one notification per completed host crossing.
type CallObserver interface {
	ObserveCall(op string, elapsed time.Duration)
}

// directInvocation is the innermost Invocation: it simply runs native.
func directInvocation(_ string, native func()) {
	native()
}

// chain wraps base with middlewares so that middlewares[0] is outermost.
func chain(base Invocation, middlewares []Middleware) Invocation {
	inv := base
	for i := len(middlewares) - 1; i >= 0; i-- {
		inv = middlewares[i](inv)
	}
	return inv
}

// PanicRecoveryMiddleware returns a middleware that catches Go panics raised
// while invoking a host operation. The caller keeps the default result it
// initialised before the call.
func PanicRecoveryMiddleware(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next Invocation) Invocation {
		return func(op string, native func()) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("host operation panicked",
						zap.String("op", op),
						zap.Any("panic", r),
					)
				}
			}()
			next(op, native)
		}
	}
}

// LoggingMiddleware returns a middleware that logs every host crossing at
// debug level.
func LoggingMiddleware(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next Invocation) Invocation {
		return func(op string, native func()) {
			if ce := logger.Check(zap.DebugLevel, "invoking host operation"); ce != nil {
				ce.Write(zap.String("op", op))
			}
			start := time.Now()
			next(op, native)
			if ce := logger.Check(zap.DebugLevel, "host operation returned"); ce != nil {
				ce.Write(zap.String("op", op), zap.Duration("elapsed", time.Since(start)))
			}
		}
	}
}

// MetricsMiddleware returns a middleware that reports each crossing to obs.
func MetricsMiddleware(obs CallObserver) Middleware {
	return func(next Invocation) Invocation {
		if obs == nil {
			return next
		}
		return func(op string, native func()) {
			start := time.Now()
			next(op, native)
			obs.ObserveCall(op, time.Since(start))
		}
	}
}
