package workspace

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Cyclone1070/runbar/internal/executor"
	"github.com/Cyclone1070/runbar/internal/project"
	"github.com/google/uuid"
)

// Runner executes a command spec.
type Runner interface {
	Run(ctx context.Context, spec executor.Spec) (*executor.Result, error)
}

// RunEvent reports the start, the live output and the end of an invoked action.
// Output events carry Chunk and are neither the first nor the last event.
type RunEvent struct {
	ID            string
	Project       string
	Command       string
	Configuration string
	File          string
	Argv          []string
	Started       time.Time
	Chunk         string // partial output while running
	Done          bool
	Result        *executor.Result // set when Done
	Err           error            // set when Done
}

// RunSink receives run events from background goroutines.
type RunSink func(RunEvent)

// Actions runs a project's manifest actions through the executor.
// Project commands take an empty context; single-file commands exactly one item.
type Actions struct {
	project *Project
	runner  Runner
	sink    func() RunSink
	ctx     context.Context
	logger  *slog.Logger

	mu    sync.RWMutex
	specs map[string]ActionSpec
}

// IsActionEnabled reports whether command has an action and ctx fits it.
func (a *Actions) IsActionEnabled(command string, ctx project.ActionContext) bool {
	if _, ok := a.spec(command); !ok {
		return false
	}
	if isSingleCommand(command) {
		return ctx.Len() == 1 && ctx.Items()[0] != nil
	}
	return ctx.Len() == 0
}

// InvokeAction starts command in the background. Progress is reported to the
// host's run sink. Disabled commands are ignored.
func (a *Actions) InvokeAction(command string, ctx project.ActionContext) {
	if !a.IsActionEnabled(command, ctx) {
		return
	}

	spec, ev := a.prepare(command, ctx)
	sink := a.sink()
	if sink != nil {
		sink(ev)
		spec.OnOutput = func(chunk string) {
			out := ev
			out.Chunk = chunk
			sink(out)
		}
	}

	go func() {
		res, err := a.runner.Run(a.ctx, spec)
		done := ev
		done.Done = true
		done.Result = res
		done.Err = err
		if err != nil {
			a.logger.Info("action failed", "id", ev.ID, "command", command, "project", ev.Project, "error", err)
		} else {
			a.logger.Info("action finished", "id", ev.ID, "command", command, "project", ev.Project, "exit", res.ExitCode)
		}
		if sink != nil {
			sink(done)
		}
	}()
}

// prepare expands the command template for the active configuration.
func (a *Actions) prepare(command string, ctx project.ActionContext) (executor.Spec, RunEvent) {
	action, _ := a.spec(command)
	conf, _ := a.project.provider.ActiveConfiguration().(*Configuration)

	file := ""
	if isSingleCommand(command) {
		file = ctx.Items()[0].Path()
	}

	var args []string
	env := os.Environ()
	confName := ""
	if conf != nil {
		args = conf.Args()
		env = append(env, conf.Environ()...)
		confName = conf.Name()
		env = append(env, "RUNBAR_CONFIGURATION="+confName)
	}
	for k, v := range action.Env {
		env = append(env, k+"="+v)
	}
	if file != "" {
		env = append(env, "RUNBAR_FILE="+file)
	}

	line := expandTemplate(action.Command, file, args)
	dir := a.project.root
	if action.Dir != "" {
		if filepath.IsAbs(action.Dir) {
			dir = action.Dir
		} else {
			dir = filepath.Join(a.project.root, action.Dir)
		}
	}

	spec := executor.Spec{
		Argv: []string{"sh", "-c", line},
		Dir:  dir,
		Env:  env,
	}
	ev := RunEvent{
		ID:            uuid.NewString(),
		Project:       a.project.name,
		Command:       command,
		Configuration: confName,
		File:          file,
		Argv:          spec.Argv,
		Started:       time.Now(),
	}
	return spec, ev
}

func (a *Actions) spec(command string) (ActionSpec, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	spec, ok := a.specs[command]
	return spec, ok
}

func (a *Actions) setSpecs(specs map[string]ActionSpec) {
	a.mu.Lock()
	a.specs = specs
	a.mu.Unlock()
}

// Commands returns the commands that have an action.
func (a *Actions) Commands() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	commands := make([]string, 0, len(a.specs))
	for cmd := range a.specs {
		commands = append(commands, cmd)
	}
	sort.Strings(commands)
	return commands
}

func isSingleCommand(command string) bool {
	return command == project.CommandRunSingle || command == project.CommandDebugSingle
}

// expandTemplate substitutes {{file}} and {{args}}, shell quoting each value.
func expandTemplate(tmpl, file string, args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = shellQuote(arg)
	}
	r := strings.NewReplacer(
		"{{file}}", shellQuote(file),
		"{{args}}", strings.Join(quoted, " "),
	)
	return r.Replace(tmpl)
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_./=:,+@%", r))
	}) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
