package status

import (
	"fmt"
	"strings"

	"github.com/NikitaCOEUR/firecomp/pkg/component"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
)

var (
	// Colors and styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	flagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render renders the status data to a string
func Render(data *Data) string {
	sections := []string{
		renderHeader(data),
		renderSettings(data),
		renderConfigHierarchy(data),
	}
	if data.Document != nil {
		sections = append(sections, renderDocument(data.Document))
	}
	return strings.Join(sections, "\n\n")
}

func renderHeader(data *Data) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📂 Current directory: ") + valueStyle.Render(data.CurrentDir) + "\n")
	b.WriteString(titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version))
	return b.String()
}

func renderSettings(data *Data) string {
	s := data.Settings
	var b strings.Builder
	b.WriteString(sectionStyle.Render("⚙️  Settings:") + "\n")

	name := s.Name
	if name == "" {
		name = subtleStyle.Render("(not set)")
	} else {
		name = valueStyle.Render(name)
	}
	b.WriteString("   " + keyStyle.Render("Program: ") + name + "\n")
	b.WriteString("   " + keyStyle.Render("Shell: ") + valueStyle.Render(data.Shell) +
		subtleStyle.Render(fmt.Sprintf(" (from %s)", data.ShellSource)) + "\n")
	b.WriteString("   " + keyStyle.Render("Depth: ") + valueStyle.Render(fmt.Sprint(s.Depth)) + "\n")
	b.WriteString("   " + keyStyle.Render("Verbose: ") + valueStyle.Render(fmt.Sprint(s.Verbose)))
	if len(s.DefaultOptions) > 0 {
		b.WriteString("\n   " + keyStyle.Render("Default options: ") + flagStyle.Render(strings.Join(s.DefaultOptions, " ")))
	}

	return b.String()
}

func renderConfigHierarchy(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📝 Configuration hierarchy:") + "\n")

	if len(data.ConfigFiles) == 0 {
		b.WriteString("   " + subtleStyle.Render("No configuration files found"))
		return b.String()
	}

	for i, path := range data.ConfigFiles {
		fmt.Fprintf(&b, "   %d. %s %s\n", i+1, valueStyle.Render(path), successStyle.Render("✓"))
	}
	if data.ConfigError != nil {
		b.WriteString("   " + errorStyle.Render("✗ "+data.ConfigError.Error()) + "\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func renderDocument(doc *DocumentInfo) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🌳 Document:") + "\n")
	b.WriteString("   " + keyStyle.Render("Path: ") + valueStyle.Render(doc.Path))

	if doc.Err != nil {
		b.WriteString("\n   " + errorStyle.Render("✗ "+doc.Err.Error()))
		return b.String()
	}

	b.WriteString(" " + subtleStyle.Render("("+doc.Format+")") + "\n")
	b.WriteString("   " + keyStyle.Render("Commands: ") + valueStyle.Render(strings.Join(doc.Commands, " ")) + "\n")
	b.WriteString("   " + keyStyle.Render("Paths: ") + valueStyle.Render(fmt.Sprint(doc.Paths)))
	return b.String()
}

// RenderTree draws command paths as a tree rooted at program. Paths must
// list every parent before its children, as completion.Builder does.
func RenderTree(program string, paths []component.Path) string {
	root := tree.Root(titleStyle.Render(program)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(subtleStyle)

	nodes := map[string]*tree.Tree{component.Path{}.Key(): root}
	for _, p := range paths {
		parent, ok := nodes[p.Parent().Key()]
		if !ok {
			continue
		}

		style := valueStyle
		if strings.HasPrefix(p.Last(), "--") {
			style = flagStyle
		}
		node := tree.Root(style.Render(p.Last())).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(subtleStyle)
		parent.Child(node)
		nodes[p.Key()] = node
	}

	return root.String()
}
