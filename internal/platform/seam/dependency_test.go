package seam

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	perr "todoapi/internal/platform/errors"
	kit "todoapi/internal/platform/testkit"
)

type greeter interface{ Greet() string }

type greeterFunc func() string

func (f greeterFunc) Greet() string { return f() }

var (
	realGreeter  = greeterFunc(func() string { return "real" })
	standGreeter = greeterFunc(func() string { return "stand-in" })
)

func greet(t *testing.T, d *Dependency[greeter]) string {
	t.Helper()
	impl, err := d.Impl()
	if err != nil {
		t.Fatalf("Impl: %v", err)
	}
	return impl.Greet()
}

func TestImpl_UnsetModeUsesReal(t *testing.T) {
	d := New[greeter](NewEnv(ModeUnset), "greeter", realGreeter)
	if got := greet(t, d); got != "real" {
		t.Fatalf("got %q want real", got)
	}
}

func TestImpl_NilEnvUsesReal(t *testing.T) {
	d := New[greeter](nil, "greeter", realGreeter)
	if got := greet(t, d); got != "real" {
		t.Fatalf("got %q want real", got)
	}
}

func TestImpl_TestModeWithoutBehaviorFails(t *testing.T) {
	for _, mode := range []Mode{ModeUnit, ModeIntegration} {
		d := New[greeter](NewEnv(mode), "greeter", realGreeter)
		_, err := d.Impl()
		if !perr.IsCode(err, perr.ErrorCodeMisuse) {
			t.Fatalf("%s: expected misuse error, got %v", mode, err)
		}
		kit.MustContain(t, err.Error(), `No behavior was associated with the dependency "greeter"`)
		kit.MustPanic(t, func() { d.MustImpl() })
	}
}

func TestReplaceWith_UnitUsesStandIn(t *testing.T) {
	d := New[greeter](NewEnv(ModeUnit), "greeter", realGreeter)
	if err := d.ReplaceWith(context.Background(), standGreeter); err != nil {
		t.Fatalf("ReplaceWith: %v", err)
	}
	if got := greet(t, d); got != "stand-in" {
		t.Fatalf("got %q want stand-in", got)
	}
}

func TestReplaceWith_IntegrationUsesRealAndRunsHooks(t *testing.T) {
	d := New[greeter](NewEnv(ModeIntegration), "greeter", realGreeter)
	var ran atomic.Int32
	d.BeforeUsedInTests(func(context.Context) error { ran.Add(1); return nil })

	if err := d.ReplaceWith(context.Background(), standGreeter); err != nil {
		t.Fatalf("ReplaceWith: %v", err)
	}
	if got := greet(t, d); got != "real" {
		t.Fatalf("got %q want real", got)
	}
	if ran.Load() != 1 {
		t.Fatalf("hook ran %d times, want 1", ran.Load())
	}
	if r, ok := d.GetReplacement(); !ok || r.Greet() != "stand-in" {
		t.Fatalf("GetReplacement should still expose the stand-in")
	}
}

func TestReplaceWith_IntegrationForcedUsesStandInWithoutHooks(t *testing.T) {
	d := New[greeter](NewEnv(ModeIntegration), "greeter", realGreeter)
	var ran atomic.Int32
	d.BeforeUsedInTests(func(context.Context) error { ran.Add(1); return nil })

	if err := d.ReplaceWith(context.Background(), standGreeter, WithForce()); err != nil {
		t.Fatalf("ReplaceWith: %v", err)
	}
	if got := greet(t, d); got != "stand-in" {
		t.Fatalf("got %q want stand-in", got)
	}
	if ran.Load() != 0 {
		t.Fatalf("hooks must not run for a forced replacement")
	}
}

func TestReplaceWith_RequiresTestMode(t *testing.T) {
	d := New[greeter](NewEnv(ModeUnset), "greeter", realGreeter)
	err := d.ReplaceWith(context.Background(), standGreeter)
	if !perr.IsCode(err, perr.ErrorCodeMisuse) {
		t.Fatalf("expected misuse error, got %v", err)
	}
}

func TestReplaceWith_DoubleSetGuard(t *testing.T) {
	ctx := context.Background()
	d := New[greeter](NewEnv(ModeUnit), "greeter", realGreeter)
	if err := d.ReplaceWith(ctx, standGreeter); err != nil {
		t.Fatalf("first ReplaceWith: %v", err)
	}
	err := d.ReplaceWith(ctx, standGreeter)
	if !perr.IsCode(err, perr.ErrorCodeMisuse) {
		t.Fatalf("expected misuse error, got %v", err)
	}
	kit.MustContain(t, err.Error(), "Maybe you forgot to call reset() between tests?")

	if err := d.PermitUse(ctx); !perr.IsCode(err, perr.ErrorCodeMisuse) {
		t.Fatalf("PermitUse after ReplaceWith should fail, got %v", err)
	}

	d.Reset()
	if err := d.ReplaceWith(ctx, standGreeter); err != nil {
		t.Fatalf("ReplaceWith after Reset: %v", err)
	}
}

func TestPermitUse_RunsHooksThenUsesReal(t *testing.T) {
	d := New[greeter](NewEnv(ModeUnit), "greeter", realGreeter)
	var ran atomic.Int32
	d.BeforeUsedInTests(func(context.Context) error { ran.Add(1); return nil })
	d.BeforeUsedInTests(func(context.Context) error { ran.Add(1); return nil })

	if err := d.PermitUse(context.Background()); err != nil {
		t.Fatalf("PermitUse: %v", err)
	}
	if ran.Load() != 2 {
		t.Fatalf("hooks ran %d times, want 2", ran.Load())
	}
	if got := greet(t, d); got != "real" {
		t.Fatalf("got %q want real", got)
	}
	if _, ok := d.GetReplacement(); ok {
		t.Fatalf("PermitUse must not expose a replacement")
	}
}

func TestHooks_RunConcurrently(t *testing.T) {
	d := New[greeter](NewEnv(ModeUnit), "greeter", realGreeter)

	// each hook waits for the other, so serial execution would deadlock
	a, b := make(chan struct{}), make(chan struct{})
	d.BeforeUsedInTests(func(context.Context) error { close(a); <-b; return nil })
	d.BeforeUsedInTests(func(context.Context) error { close(b); <-a; return nil })

	done := make(chan error, 1)
	go func() { done <- d.PermitUse(context.Background()) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("PermitUse: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("hooks did not run concurrently")
	}
}

func TestHooks_ErrorAbortsBehaviorChange(t *testing.T) {
	d := New[greeter](NewEnv(ModeUnit), "greeter", realGreeter)
	boom := errors.New("boom")
	d.BeforeUsedInTests(func(context.Context) error { return boom })

	err := d.PermitUse(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected hook error, got %v", err)
	}
	if _, err := d.Impl(); !perr.IsCode(err, perr.ErrorCodeMisuse) {
		t.Fatalf("behavior must stay default after a failed hook, got %v", err)
	}
}

func TestEnvSetup_ResetsAllDependencies(t *testing.T) {
	ctx := context.Background()
	env := NewEnv(ModeUnit)
	d1 := New[greeter](env, "one", realGreeter)
	d2 := New[greeter](env, "two", realGreeter)
	if err := d1.ReplaceWith(ctx, standGreeter); err != nil {
		t.Fatal(err)
	}
	if err := d2.PermitUse(ctx); err != nil {
		t.Fatal(err)
	}

	env.Setup()

	for _, d := range []*Dependency[greeter]{d1, d2} {
		if _, err := d.Impl(); !perr.IsCode(err, perr.ErrorCodeMisuse) {
			t.Fatalf("%s: expected default behavior after Setup, got %v", d.Name(), err)
		}
		if _, ok := d.GetReplacement(); ok {
			t.Fatalf("%s: replacement should be cleared", d.Name())
		}
	}
}
