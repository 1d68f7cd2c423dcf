// Package launcher runs the start-up sequence: update, architecture check,
// file check, dependency install, launch. Each step gates the next.
package launcher

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/fbtool/launcher/internal/arch"
	"github.com/fbtool/launcher/internal/requirements"
	"github.com/fbtool/launcher/tui"
	"go.uber.org/zap"
)

type Stage int

const (
	StageUpdateCheck Stage = iota
	StageArchCheck
	StageRequirementsCheck
	StageDependencyInstall
	StageLaunch
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageUpdateCheck:
		return "update-check"
	case StageArchCheck:
		return "arch-check"
	case StageRequirementsCheck:
		return "requirements-check"
	case StageDependencyInstall:
		return "dependency-install"
	case StageLaunch:
		return "launch"
	case StageDone:
		return "done"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

const totalSteps = 5

type UpdateChecker interface {
	Check(ctx context.Context) bool
}

type ArchValidator interface {
	Check() arch.Report
}

type DependencyInstaller interface {
	Ensure(ctx context.Context) bool
}

type ToolLauncher interface {
	Run() bool
}

// Outcome describes how far a run got. Stage is the last stage entered.
type Outcome struct {
	Stage       Stage
	Aborted     bool
	Interrupted bool
	Panicked    bool
	Launched    bool
}

type Pipeline struct {
	// Updater may be nil to skip the update step.
	Updater   UpdateChecker
	Arch      ArchValidator
	Verify    func() requirements.Report
	Installer DependencyInstaller
	Tool      ToolLauncher

	ToolName string
	Artifact string
	Packages []string

	Out    io.Writer
	Logger *zap.Logger
	// Pause waits for the user to acknowledge output.
	Pause func()
	// OnPanic receives anything recovered from a step.
	OnPanic func(recovered any)
	// BeforeLaunch runs right before control passes to the tool, e.g. to
	// hand signal handling back to the runtime.
	BeforeLaunch func()
	// OnStage observes each stage as it is entered.
	OnStage func(Stage)
}

// Run executes the steps in order. It never panics and never returns an
// error; the outcome tells callers where it stopped.
func (p *Pipeline) Run(ctx context.Context) (out Outcome) {
	log := p.logger()

	defer func() {
		if r := recover(); r != nil {
			log.Error("unexpected panic", zap.Any("panic", r), zap.String("stage", out.Stage.String()), zap.ByteString("stack", debug.Stack()))
			if p.OnPanic != nil {
				p.OnPanic(r)
			}
			p.println("")
			p.println(tui.RenderFailure(fmt.Sprintf("Unexpected error: %v", r)))
			p.pause()
			out.Aborted = true
			out.Panicked = true
		}
	}()

	p.enter(&out, StageUpdateCheck)
	if p.Updater != nil {
		p.println(tui.RenderStep(1, totalSteps, "🔄", "Checking for updates..."))
		ok := p.Updater.Check(ctx)
		if ctx.Err() != nil {
			return p.interrupted(out)
		}
		if !ok {
			p.println(tui.RenderWarningSimple("Continuing with current version..."))
		}
		p.println("")
	}
	if ctx.Err() != nil {
		return p.interrupted(out)
	}

	p.enter(&out, StageArchCheck)
	p.println(tui.RenderStep(2, totalSteps, "🔍", "Checking device architecture..."))
	report := p.Arch.Check()
	log.Info("architecture checked",
		zap.String("machine", report.Machine),
		zap.Int("pointer_bits", report.PointerBits),
		zap.Bool("is_64bit", report.Is64Bit))
	p.printArch(report)
	if !report.Is64Bit {
		p.println("")
		p.println(tui.RenderUnsupportedDevice())
		p.pause()
		out.Aborted = true
		return out
	}
	p.println(tui.RenderSuccessSimple("Device is 64-bit, continuing..."))
	p.println("")

	p.enter(&out, StageRequirementsCheck)
	p.println(tui.RenderStep(3, totalSteps, "📁", "Checking required files..."))
	req := p.Verify()
	p.printRequirements(req)
	if !req.OK {
		log.Warn("required files missing", zap.Strings("missing", req.Missing()))
		p.println(tui.RenderFailure("Missing required files. Cannot continue."))
		p.pause()
		out.Aborted = true
		return out
	}
	p.println("")

	p.enter(&out, StageDependencyInstall)
	p.println(tui.RenderStep(4, totalSteps, "📦", "Installing required packages..."))
	installed := p.Installer.Ensure(ctx)
	if ctx.Err() != nil {
		return p.interrupted(out)
	}
	if !installed {
		p.println(tui.RenderWarningSimple("Some packages failed to install, but we can try to continue..."))
	}
	p.println("")

	p.enter(&out, StageLaunch)
	p.println(tui.RenderLaunchHeader(p.ToolName))
	if p.BeforeLaunch != nil {
		p.BeforeLaunch()
	}
	out.Launched = p.Tool.Run()
	if !out.Launched {
		p.println("")
		p.println(tui.RenderLaunchFailure(p.Artifact, p.Packages))
	}

	p.enter(&out, StageDone)
	p.pause()
	return out
}

func (p *Pipeline) printArch(r arch.Report) {
	p.println(tui.RenderInfo("Device architecture: " + r.Machine))
	if !r.MatchedName && r.MaxSize > 0 {
		p.println(tui.RenderInfo(fmt.Sprintf("Max addressable size: %d", r.MaxSize)))
	}
	if r.PointerChecked {
		p.println(tui.RenderInfo(fmt.Sprintf("Pointer size: %d-bit", r.PointerBits)))
	}
}

func (p *Pipeline) printRequirements(r requirements.Report) {
	for _, f := range r.Files {
		if f.Found {
			p.println(tui.RenderSuccessSimple("Found: " + f.Name))
		} else {
			p.println(tui.RenderFailure("Missing: " + f.Name))
		}
	}
	if r.Marker != "" && !r.MarkerPresent {
		p.println(tui.RenderWarningSimple(r.Marker + " not found (will be created)"))
	}
}

func (p *Pipeline) interrupted(out Outcome) Outcome {
	p.logger().Info("interrupted", zap.String("stage", out.Stage.String()))
	p.println("")
	p.println(tui.RenderWarningSimple("Tool interrupted by user"))
	out.Aborted = true
	out.Interrupted = true
	return out
}

func (p *Pipeline) enter(out *Outcome, s Stage) {
	out.Stage = s
	if p.OnStage != nil {
		p.OnStage(s)
	}
}

func (p *Pipeline) pause() {
	if p.Pause != nil {
		p.Pause()
	}
}

func (p *Pipeline) println(s string) {
	if p.Out == nil {
		return
	}
	fmt.Fprintln(p.Out, s)
}

func (p *Pipeline) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}
