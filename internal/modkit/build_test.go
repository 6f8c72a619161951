package modkit

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	b := Build()

	if b.Name != "" {
		t.Fatalf("default Name = %q, want empty", b.Name)
	}
	if b.Observer != nil {
		t.Fatalf("default Observer non-nil")
	}
	if b.Production {
		t.Fatalf("default Production = true, want false")
	}
	if len(b.Mw) != 0 || len(b.Mounts) != 0 {
		t.Fatalf("default Mw/Mounts not empty: %d/%d", len(b.Mw), len(b.Mounts))
	}
}

func TestBuild_WithOptionsAndCopySemantics(t *testing.T) {
	t.Parallel()

	// helpers to compare funcs by pointer (program counter)
	fnPtr := func(f func(http.Handler) http.Handler) uintptr {
		return reflect.ValueOf(f).Pointer()
	}

	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return next }
	mid := []func(http.Handler) http.Handler{mwA, mwB}

	o := &countingObserver{}
	b := Build(
		WithName("todos"),
		WithMiddlewares(mid...),
		WithMounts(func(chi.Router) {}),
		WithObserver(o),
		WithProduction(true),
		nil,
	)

	if b.Name != "todos" {
		t.Fatalf("Name = %q, want %q", b.Name, "todos")
	}
	if b.Observer != o || !b.Production {
		t.Fatalf("observer/production not carried: %+v", b)
	}
	if len(b.Mw) != 2 || len(b.Mounts) != 1 {
		t.Fatalf("Mw/Mounts length = %d/%d, want 2/1", len(b.Mw), len(b.Mounts))
	}

	// mutate the original slice after Build; Built.Mw must not change
	mid[0] = func(next http.Handler) http.Handler { return next }
	if fnPtr(b.Mw[0]) != fnPtr(mwA) || fnPtr(b.Mw[1]) != fnPtr(mwB) {
		t.Fatalf("Built.Mw changed after source slice mutation")
	}
}

func TestRouterOptions_CopiesLiveWiring(t *testing.T) {
	t.Parallel()

	o := &countingObserver{}
	b := Build(WithProduction(true), WithObserver(o), WithMounts(func(chi.Router) {}))
	ro := RouterOptions[string](b)
	if !ro.Production || ro.Observer != o || len(ro.Mounts) != 1 {
		t.Fatalf("unexpected router options: %+v", ro)
	}
	if ro.DeriveTools != nil || ro.ProvideTools != nil {
		t.Fatalf("tools factories are the module's job")
	}
}

func TestBuild_MountsAreCopied(t *testing.T) {
	t.Parallel()

	var hits int
	mounts := []func(chi.Router){func(chi.Router) { hits++ }}
	b := Build(WithMounts(mounts...))

	mounts[0] = nil
	if len(b.Mounts) != 1 || b.Mounts[0] == nil {
		t.Fatalf("Built.Mounts changed after source slice mutation")
	}
	b.Mounts[0](chi.NewRouter())
	if hits != 1 {
		t.Fatalf("mount not invoked, hits = %d", hits)
	}
}
