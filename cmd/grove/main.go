// Package main is the entry point for grove.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/grove/cmd/grove/commands"
	"go.trai.ch/grove/internal/app"
	_ "go.trai.ch/grove/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, err
	}))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, provider ComponentProvider) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	lazy := &lazyApp{provider: provider, stdout: stdout}
	cli := commands.New(lazy)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	err := cli.Execute(ctx)
	if lazy.components != nil {
		if closeErr := lazy.components.App.Close(context.WithoutCancel(ctx)); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	if err == nil {
		return 0
	}

	if lazy.components != nil {
		lazy.components.Logger.Error(err)
	} else {
		// The logger is not available if initialization failed.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
	}
	return 1
}

// lazyApp resolves the application components on first use, so commands
// that need no project never open the node store.
type lazyApp struct {
	provider   ComponentProvider
	stdout     io.Writer
	components *app.Components

	verbose, json bool
}

func (l *lazyApp) resolve(ctx context.Context) (*app.App, error) {
	if l.components == nil {
		c, err := l.provider(ctx)
		if err != nil {
			return nil, err
		}
		l.components = c
		c.App.WithOutput(l.stdout).SetLogOptions(l.verbose, l.json)
	}
	return l.components.App, nil
}

func (l *lazyApp) SetLogOptions(verbose, json bool) {
	l.verbose, l.json = verbose, json
	if l.components != nil {
		l.components.App.SetLogOptions(verbose, json)
	}
}

func (l *lazyApp) Build(ctx context.Context, opts app.BuildOptions) error {
	a, err := l.resolve(ctx)
	if err != nil {
		return err
	}
	return a.Build(ctx, opts)
}

func (l *lazyApp) Develop(ctx context.Context, opts app.DevelopOptions) error {
	a, err := l.resolve(ctx)
	if err != nil {
		return err
	}
	return a.Develop(ctx, opts)
}

func (l *lazyApp) Nodes(ctx context.Context, typeName string) error {
	a, err := l.resolve(ctx)
	if err != nil {
		return err
	}
	return a.Nodes(ctx, typeName)
}

func (l *lazyApp) Clean(ctx context.Context, opts app.CleanOptions) error {
	a, err := l.resolve(ctx)
	if err != nil {
		return err
	}
	return a.Clean(ctx, opts)
}
