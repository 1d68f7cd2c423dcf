package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const ruleWidth = 48

func rule(style lipgloss.Style) string {
	return style.Render(strings.Repeat("═", ruleWidth))
}

// RenderStep renders the header printed before each launcher step.
func RenderStep(n, total int, icon, title string) string {
	InitCommonStyles(os.Stdout)
	if n <= 0 {
		return PrimaryTitleStyle().Render(fmt.Sprintf("%s %s", icon, title))
	}
	return PrimaryTitleStyle().Render(fmt.Sprintf("[%d/%d] %s %s", n, total, icon, title))
}

// RenderBanner renders a titled block framed by double rules.
func RenderBanner(style lipgloss.Style, title string, lines ...string) string {
	InitCommonStyles(os.Stdout)
	var b strings.Builder
	b.WriteString(rule(style))
	b.WriteString("\n")
	b.WriteString(style.Render(title))
	b.WriteString("\n")
	b.WriteString(rule(style))
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	if len(lines) > 0 {
		b.WriteString(rule(style))
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderUnsupportedDevice() string {
	InitCommonStyles(os.Stdout)
	return RenderBanner(ErrorStyle(), "✗ UNSUPPORTED DEVICE",
		"This tool requires a 64-bit Android device.",
		"Your device appears to be 32-bit.",
		"Please use a 64-bit Android device.",
	)
}

// RenderLaunchFailure renders the troubleshooting block shown when the tool
// could not be started.
func RenderLaunchFailure(artifact string, packages []string) string {
	InitCommonStyles(os.Stdout)
	var b strings.Builder
	b.WriteString(RenderBanner(ErrorStyle(), "✗ TOOL FAILED TO START"))
	b.WriteString("\n")
	b.WriteString(WarningStyle().Render("Troubleshooting steps:"))
	b.WriteString("\n")
	steps := []string{
		"Make sure you have Python 3.12 installed",
		fmt.Sprintf("Check if '%s' exists and was built for this launcher", artifact),
		"Run: pip install " + strings.Join(packages, " "),
	}
	for i, s := range steps {
		b.WriteString(WarningStyle().Render(fmt.Sprintf("%d. %s", i+1, s)))
		b.WriteString("\n")
	}
	b.WriteString(rule(ErrorStyle()))
	return b.String()
}

func RenderLaunchHeader(name string) string {
	InitCommonStyles(os.Stdout)
	return PrimaryTitleStyle().Render("🚀 Starting "+name+"...") + "\n" + rule(PrimaryStyle())
}
