// Package cli wires flags, config, storage and vendors into the noteweaver commands.
package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/noteweaver/noteweaver/internal/i18n"
	debuglog "github.com/noteweaver/noteweaver/internal/log"
	"github.com/noteweaver/noteweaver/internal/plugins/db"
	"github.com/noteweaver/noteweaver/internal/util"
)

// Cli parses the command line and runs the selected command.
func Cli(version string) (err error) {
	var currentFlags *Flags
	if currentFlags, err = Init(); err != nil {
		return
	}
	return Run(context.Background(), currentFlags, version, os.Stdin, os.Stdout)
}

type app struct {
	flags    *Flags
	registry *PluginRegistry
	in       io.Reader
	out      io.Writer
}

// Run executes currentFlags against the config directory of the current user.
func Run(ctx context.Context, currentFlags *Flags, version string, in io.Reader, out io.Writer) (err error) {
	debuglog.SetLevel(debuglog.LevelFromInt(currentFlags.Debug))
	defer debuglog.Sync()

	if currentFlags.Version {
		_, err = io.WriteString(out, version+"\n")
		return
	}
	if _, err = i18n.Init(currentFlags.Language); err != nil {
		return
	}

	var configDir string
	if configDir, err = util.GetConfigDir(); err != nil {
		return
	}
	a := &app{flags: currentFlags, registry: NewPluginRegistry(configDir), in: in, out: out}

	// Commands that need neither storage nor a model.
	switch {
	case currentFlags.ListVendors:
		return a.listVendors()
	case currentFlags.ListModels:
		return a.listModels(ctx)
	case currentFlags.ListPrompts:
		return a.listPrompts()
	case currentFlags.ExportPrompt != "":
		return a.exportPrompt(currentFlags.ExportPrompt)
	case currentFlags.SetStepModel != "":
		return setStepModel(configDir, currentFlags.SetStepModel)
	case currentFlags.UnsetStepModel != "":
		return unsetStepModel(configDir, currentFlags.UnsetStepModel)
	case currentFlags.ListStepModels:
		return listStepModels(out, configDir)
	case currentFlags.Validate != "":
		return a.validate(currentFlags.Validate)
	}

	if !currentFlags.Serve && !currentFlags.Organize && currentFlags.Ask == "" &&
		currentFlags.NewSession == "" && !currentFlags.ListSessions && currentFlags.Import == "" {
		return errors.New(i18n.T("cli_nothing_to_do"))
	}

	var store db.Store
	if store, err = a.registry.OpenStore(currentFlags); err != nil {
		return
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	switch {
	case currentFlags.NewSession != "":
		return a.newSession(ctx, store, currentFlags.NewSession)
	case currentFlags.ListSessions:
		return a.listSessions(ctx, store)
	case currentFlags.Import != "":
		return a.importNote(ctx, store, currentFlags.Import)
	}

	gateway, err := a.registry.NewGateway(currentFlags)
	if err != nil {
		return err
	}
	pipeline := a.registry.NewPipeline(gateway, store, currentFlags)

	switch {
	case currentFlags.Serve:
		return a.serve(store, pipeline)
	case currentFlags.Organize:
		return a.organize(ctx, store, pipeline)
	default:
		return a.ask(ctx, store, pipeline)
	}
}
