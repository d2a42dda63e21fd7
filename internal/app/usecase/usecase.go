// Package usecase builds task delegates out of ordered phases:
//
//	uc, err := usecase.Execute("save-article", load).
//		Process(merge).
//		Persist(store).
//		OnError(composeArticleError).
//		WithIntrospection(introspector).
//		Build()
//
// Phases run in order. The first failure or panic in any phase stops the use
// case and is turned into a *domain.Error by the OnError composer. Every
// performance module sees Start before and End after each execution,
// whether it succeeds or not.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/jsamuelsen11/go-interactor/internal/app/interactor"
	"github.com/jsamuelsen11/go-interactor/internal/domain"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

// ErrNoExecutePhase is returned by Build when no execute function was given.
var ErrNoExecutePhase = errors.New("usecase: execute phase is required")

// ExecuteFunc produces the initial result.
type ExecuteFunc[R any] func(ctx context.Context) (R, error)

// ProcessFunc transforms the result of the previous phase.
type ProcessFunc[R any] func(ctx context.Context, r R) (R, error)

// PersistFunc stores the processed result.
type PersistFunc[R any] func(ctx context.Context, r R) error

// Builder assembles a UseCase.
type Builder[R any] struct {
	name    string
	execute ExecuteFunc[R]
	process []ProcessFunc[R]
	persist []PersistFunc[R]
	compose interactor.ErrorComposer
	modules []ports.PerformanceModule
}

// Execute starts a builder with the use case's first phase.
func Execute[R any](name string, fn ExecuteFunc[R]) *Builder[R] {
	return &Builder[R]{name: name, execute: fn}
}

// Process appends a transformation phase.
func (b *Builder[R]) Process(fn ProcessFunc[R]) *Builder[R] {
	b.process = append(b.process, fn)
	return b
}

// Persist appends a persistence phase. Persist phases run after every
// process phase.
func (b *Builder[R]) Persist(fn PersistFunc[R]) *Builder[R] {
	b.persist = append(b.persist, fn)
	return b
}

// OnError sets the composer applied to the first failure.
func (b *Builder[R]) OnError(fn interactor.ErrorComposer) *Builder[R] {
	b.compose = fn
	return b
}

// WithIntrospection adds performance modules.
func (b *Builder[R]) WithIntrospection(modules ...ports.PerformanceModule) *Builder[R] {
	b.modules = append(b.modules, modules...)
	return b
}

// Build validates the phases and returns the use case.
func (b *Builder[R]) Build() (*UseCase[R], error) {
	if b.execute == nil {
		return nil, ErrNoExecutePhase
	}
	compose := b.compose
	if compose == nil {
		compose = interactor.ComposeError
	}
	return &UseCase[R]{
		name:    b.name,
		execute: b.execute,
		process: append([]ProcessFunc[R](nil), b.process...),
		persist: append([]PersistFunc[R](nil), b.persist...),
		compose: compose,
		modules: append([]ports.PerformanceModule(nil), b.modules...),
	}, nil
}

// UseCase is an immutable, reusable ports.Delegate built from phases.
type UseCase[R any] struct {
	name    string
	execute ExecuteFunc[R]
	process []ProcessFunc[R]
	persist []PersistFunc[R]
	compose interactor.ErrorComposer
	modules []ports.PerformanceModule
}

var _ ports.Delegate[struct{}] = (*UseCase[struct{}])(nil)

// Name returns the use case name.
func (u *UseCase[R]) Name() string { return u.name }

// Execute implements ports.Delegate. A non-nil error is always a *domain.Error.
func (u *UseCase[R]) Execute(ctx context.Context) (R, error) {
	traceID := ulid.Make().String()
	for _, m := range u.modules {
		m.Start(ctx, traceID)
	}
	defer func() {
		for _, m := range u.modules {
			m.End(ctx, traceID)
		}
	}()

	result, err := u.run(ctx)
	if err != nil {
		var zero R
		derr := u.compose(err)
		if derr == nil {
			derr = domain.AsError(err)
		}
		return zero, derr
	}
	return result, nil
}

func (u *UseCase[R]) run(ctx context.Context) (result R, err error) {
	phase := "execute"
	defer func() {
		if rec := recover(); rec != nil {
			err = domain.NewError(domain.CategoryInternal, fmt.Sprintf("%s %s panicked: %v", u.name, phase, rec), nil)
		}
	}()

	if result, err = u.execute(ctx); err != nil {
		return result, fmt.Errorf("%s: %w", phase, err)
	}

	phase = "process"
	for _, fn := range u.process {
		if result, err = fn(ctx, result); err != nil {
			return result, fmt.Errorf("%s: %w", phase, err)
		}
	}

	phase = "persist"
	for _, fn := range u.persist {
		if err = fn(ctx, result); err != nil {
			return result, fmt.Errorf("%s: %w", phase, err)
		}
	}
	return result, nil
}
