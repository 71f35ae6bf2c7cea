package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/glossa/internal/presentation/graph"
	"github.com/aretw0/glossa/internal/presentation/report"
	"github.com/aretw0/glossa/internal/presentation/tui"
	"github.com/aretw0/glossa/internal/validator"
	"github.com/aretw0/glossa/pkg/domain"
)

// Output bundles where and how a command prints.
type Output struct {
	W        io.Writer
	Renderer tui.Renderer
}

func (o Output) markdown(md string) error {
	render := o.Renderer
	if render == nil {
		render = tui.Plain
	}
	out, err := render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(o.W, out)
	return err
}

// RunTrain trains both models once and prints the run report.
// The report is printed even when the run fails.
func RunTrain(ctx context.Context, env *Env, out Output) error {
	rep, err := env.Trainer.Train(ctx)
	if rep != nil {
		if perr := out.markdown(report.Run(rep)); perr != nil {
			env.Logger.Warn("Failed to print report", "err", perr)
		}
	}
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}
	return nil
}

// CompileOptions select what RunCompile prints.
type CompileOptions struct {
	Lang string
	// Pass is domain.ModelMain (default) or domain.ModelResolvers.
	Pass string
	// JSON prints one record per line instead of the summary.
	JSON bool
}

// RunCompile compiles one corpus without training. Records produced before a
// failure are still printed.
func RunCompile(ctx context.Context, env *Env, opts CompileOptions, out Output) error {
	var records []domain.Record
	var err error
	switch opts.Pass {
	case "", domain.ModelMain:
		opts.Pass = domain.ModelMain
		records, err = env.Trainer.Compile(ctx, opts.Lang)
	case domain.ModelResolvers:
		records, err = env.Trainer.CompileResolvers(ctx, opts.Lang)
	default:
		return fmt.Errorf("unknown pass %q (want %s or %s)", opts.Pass, domain.ModelMain, domain.ModelResolvers)
	}

	if opts.JSON {
		enc := json.NewEncoder(out.W)
		for _, r := range records {
			if encErr := enc.Encode(r); encErr != nil {
				return encErr
			}
		}
	} else if perr := out.markdown(report.Corpus(fmt.Sprintf("%s corpus (%s)", opts.Pass, opts.Lang), records)); perr != nil {
		return perr
	}

	if err != nil {
		return fmt.Errorf("compile %s: %w", opts.Lang, err)
	}
	return nil
}

// RunExpand prints every alternative of template. A truncated expansion is
// printed and reported as a warning, not an error.
func RunExpand(env *Env, template string, out Output) error {
	alts, err := env.Trainer.Expand(template)
	if err != nil {
		if !errors.Is(err, domain.ErrExpansionLimit) {
			return err
		}
		env.Logger.Warn("Expansion truncated", "err", err)
	}
	return out.markdown(report.Expansion(template, alts))
}

// RunValidate checks the project and prints every issue. It fails when at
// least one issue is blocking.
func RunValidate(ctx context.Context, env *Env, jsonMode bool, out Output) error {
	snap, err := env.Trainer.Snapshot(ctx)
	if err != nil {
		return err
	}
	res, err := validator.Validate(ctx, snap, env.Trainer.Languages(snap), env.Config.ExpansionLimit)
	if err != nil {
		return err
	}

	if jsonMode {
		enc := json.NewEncoder(out.W)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		for _, w := range res.Warnings() {
			fmt.Fprintf(out.W, "warning: %s\n", w)
		}
	}
	return res.Err()
}

// RunGraph prints the Mermaid diagram of lang.
func RunGraph(ctx context.Context, env *Env, lang string, out Output) error {
	snap, err := env.Trainer.Snapshot(ctx)
	if err != nil {
		return err
	}
	if lang == "" {
		langs := env.Trainer.Languages(snap)
		if len(langs) == 0 {
			return fmt.Errorf("no language configured")
		}
		lang = langs[0]
	}
	_, err = io.WriteString(out.W, graph.GenerateMermaid(snap, lang))
	return err
}
