// SPDX-License-Identifier: MPL-2.0

package lifecycle

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/gradlewire/gradlewire/pkg/autoconfig"
	"github.com/gradlewire/gradlewire/pkg/naming"
)

type stubHandle struct {
	module naming.ModuleContext
}

func (s stubHandle) ConfigurationNames() []string { return nil }
func (s stubHandle) AddDependency(string, autoconfig.Notation) error { return nil }
func (s stubHandle) Context() naming.ModuleContext { return s.module }
func (s stubHandle) BuildFile() string { return "" }

func TestBus_DeliversInOrder(t *testing.T) {
	t.Parallel()

	var calls []string
	record := func(name string) Observer {
		return ObserverFuncs{
			Discovered: func(context.Context, naming.ModuleContext) error {
				calls = append(calls, name+":discovered")
				return nil
			},
			Configured: func(context.Context, ModuleHandle) error {
				calls = append(calls, name+":configured")
				return nil
			},
		}
	}

	var bus Bus
	bus.Subscribe(record("a"), record("b"))
	bus.Subscribe(ObserverFuncs{})

	mc, err := naming.Derive("/repo/core", []string{"core"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := bus.ModuleDiscovered(ctx, mc); err != nil {
		t.Fatalf("ModuleDiscovered() error = %v", err)
	}
	if err := bus.ModuleConfigured(ctx, stubHandle{module: mc}); err != nil {
		t.Fatalf("ModuleConfigured() error = %v", err)
	}

	want := []string{"a:discovered", "b:discovered", "a:configured", "b:configured"}
	if !slices.Equal(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
	if bus.Len() != 3 {
		t.Errorf("Len() = %d, want 3", bus.Len())
	}
}

func TestBus_StopsOnError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	reached := false
	var bus Bus
	bus.Subscribe(
		ObserverFuncs{Configured: func(context.Context, ModuleHandle) error { return boom }},
		ObserverFuncs{Configured: func(context.Context, ModuleHandle) error { reached = true; return nil }},
	)

	mc := naming.DeriveRoot("/repo", "repo", nil)
	err := bus.ModuleConfigured(context.Background(), stubHandle{module: mc})
	if !errors.Is(err, boom) {
		t.Fatalf("ModuleConfigured() error = %v, want boom", err)
	}
	if reached {
		t.Error("observer after the failing one was called")
	}
}

func TestBus_Cancelled(t *testing.T) {
	t.Parallel()

	var bus Bus
	bus.Subscribe(ObserverFuncs{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := bus.ModuleDiscovered(ctx, naming.DeriveRoot("/repo", "repo", nil)); !errors.Is(err, context.Canceled) {
		t.Errorf("ModuleDiscovered() error = %v, want context.Canceled", err)
	}
}
