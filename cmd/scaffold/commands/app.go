package commands

import (
	"context"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/tools/txtar"

	"github.com/origadmin/scaffold/internal/artifact"
	"github.com/origadmin/scaffold/internal/config"
	"github.com/origadmin/scaffold/internal/factory"
	"github.com/origadmin/scaffold/internal/fsys"
	"github.com/origadmin/scaffold/internal/generator"
	"github.com/origadmin/scaffold/internal/logger"
	"github.com/origadmin/scaffold/internal/naming"
	"github.com/origadmin/scaffold/internal/process"
	"github.com/origadmin/scaffold/internal/syntaxgen"
	"github.com/origadmin/scaffold/internal/template"
)

// dryRunRoot is the in-memory directory dry runs generate into.
const dryRunRoot = "out"

// state is shared by the commands of one tree and filled in by the root's
// PersistentPreRunE.
type state struct {
	viper      *viper.Viper
	configFile string
	cfg        *config.Config
}

// app wires the collaborators for one command invocation.
type app struct {
	cfg       *config.Config
	log       *zap.SugaredLogger
	factory   *factory.Factory
	templates *template.Engine
	syntax    *syntaxgen.Generator
}

func newApp(cfg *config.Config) (*app, error) {
	log := logger.Named("scaffold")
	conv := naming.NewConverter()

	tmpl, err := template.NewEngine(conv, cfg.Template.CacheSize)
	if err != nil {
		return nil, err
	}
	if err := tmpl.LoadOverrides(afero.NewOsFs(), cfg.Template.Dirs...); err != nil {
		return nil, err
	}
	gen, err := syntaxgen.New(syntaxgen.WithTemplates(tmpl), syntaxgen.WithLogger(log.Named("syntax")))
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:       cfg,
		log:       log,
		factory:   factory.New(conv, cfg.Naming),
		templates: tmpl,
		syntax:    gen,
	}, nil
}

// emit generates root into the configured output directory, or in memory
// followed by a txtar dump to out when dry-running.
func (a *app) emit(ctx context.Context, root artifact.Artifact, out io.Writer) error {
	if a.cfg.DryRun {
		return a.dryRun(ctx, root, out)
	}

	engine, err := generator.New(fsys.NewOS(a.cfg.Output), a.syntax, a.templates,
		generator.WithLogger(a.log.Named("generator")),
		generator.WithRunner(process.NewExecRunner(a.log.Named("process"))))
	if err != nil {
		return err
	}
	if err := engine.Generate(ctx, root, "."); err != nil {
		return err
	}
	pterm.Success.Printfln("generated %s into %s", root.ArtifactName(), a.cfg.Output)
	return nil
}

func (a *app) dryRun(ctx context.Context, root artifact.Artifact, out io.Writer) error {
	mem := fsys.NewMemory()
	runner := process.NewDryRunner(a.log.Named("process"))
	engine, err := generator.New(mem, a.syntax, a.templates,
		generator.WithLogger(a.log.Named("generator")),
		generator.WithRunner(runner))
	if err != nil {
		return err
	}
	if err := engine.Generate(ctx, root, dryRunRoot); err != nil {
		return err
	}

	archive, err := fsys.Snapshot(mem.Fs(), dryRunRoot)
	if err != nil {
		return err
	}
	if _, err := out.Write(txtar.Format(archive)); err != nil {
		return err
	}
	for _, cmd := range runner.Commands {
		pterm.Info.Printfln("would run: %s", cmd)
	}
	return nil
}
