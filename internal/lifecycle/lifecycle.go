// SPDX-License-Identifier: MPL-2.0

// Package lifecycle defines the callbacks a build host fires while modules
// are discovered and configured, and a Bus that fans them out to observers.
package lifecycle

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/gradlewire/gradlewire/pkg/autoconfig"
	"github.com/gradlewire/gradlewire/pkg/naming"
)

type (
	// ModuleHandle is a configured module as exposed by the host.
	ModuleHandle interface {
		autoconfig.Target
		// Context returns the module's derived metadata.
		Context() naming.ModuleContext
		// BuildFile returns the absolute path of the build descriptor, or ""
		// for a root project without one.
		BuildFile() string
	}

	// Observer receives module lifecycle events.
	Observer interface {
		// OnModuleDiscovered runs once per module after it was included.
		OnModuleDiscovered(ctx context.Context, module naming.ModuleContext) error
		// OnModuleConfigured runs once per module after its configurations exist.
		OnModuleConfigured(ctx context.Context, module ModuleHandle) error
	}

	// ObserverFuncs adapts plain functions to Observer. Nil fields are no-ops.
	ObserverFuncs struct {
		Discovered func(ctx context.Context, module naming.ModuleContext) error
		Configured func(ctx context.Context, module ModuleHandle) error
	}

	// Bus delivers events to observers in subscription order. Delivery stops at
	// the first observer error.
	Bus struct {
		mu        sync.RWMutex
		observers []Observer
	}
)

// OnModuleDiscovered implements Observer.
func (f ObserverFuncs) OnModuleDiscovered(ctx context.Context, module naming.ModuleContext) error {
	if f.Discovered == nil {
		return nil
	}
	return f.Discovered(ctx, module)
}

// OnModuleConfigured implements Observer.
func (f ObserverFuncs) OnModuleConfigured(ctx context.Context, module ModuleHandle) error {
	if f.Configured == nil {
		return nil
	}
	return f.Configured(ctx, module)
}

// Subscribe adds observers after the existing ones.
func (b *Bus) Subscribe(observers ...Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, observers...)
}

// Len returns the number of observers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.observers)
}

// ModuleDiscovered publishes a discovery event.
func (b *Bus) ModuleDiscovered(ctx context.Context, module naming.ModuleContext) error {
	for _, o := range b.snapshot() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := o.OnModuleDiscovered(ctx, module); err != nil {
			return fmt.Errorf("module %s discovered: %w", module.ProjectPath(), err)
		}
	}
	return nil
}

// ModuleConfigured publishes a configuration event.
func (b *Bus) ModuleConfigured(ctx context.Context, module ModuleHandle) error {
	for _, o := range b.snapshot() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := o.OnModuleConfigured(ctx, module); err != nil {
			return fmt.Errorf("module %s configured: %w", module.Context().ProjectPath(), err)
		}
	}
	return nil
}

func (b *Bus) snapshot() []Observer {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.observers)
}
