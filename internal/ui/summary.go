package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Endpoint is one access point printed in the final summary.
type Endpoint struct {
	Name string
	URL  string
	Note string
}

// Credential is one generated credential printed in the final summary.
type Credential struct {
	Name     string
	User     string
	Password string
}

// Summary is the operator-facing report printed after a successful run.
type Summary struct {
	Title       string
	Endpoints   []Endpoint
	Credentials []Credential
	Warnings    []string
}

// PrintSummary renders the summary to stdout.
func PrintSummary(s Summary) {
	FprintSummary(os.Stdout, s, isatty.IsTerminal(os.Stdout.Fd()))
}

// FprintSummary renders the summary to w, optionally colored.
func FprintSummary(w io.Writer, s Summary, colored bool) {
	render := func(style lipgloss.Style, text string) string {
		if !colored {
			return text
		}
		return style.Render(text)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, render(titleStyle, s.Title))

	if len(s.Endpoints) > 0 {
		fmt.Fprintln(w, render(sectionStyle, "Access endpoints"))
		for _, e := range s.Endpoints {
			if e.Note != "" {
				fmt.Fprintf(w, "  %-22s %s %s\n", e.Name, e.URL, render(dimStyle, "("+e.Note+")"))
				continue
			}
			fmt.Fprintf(w, "  %-22s %s\n", e.Name, e.URL)
		}
	}

	if len(s.Credentials) > 0 {
		fmt.Fprintln(w, render(sectionStyle, "Credentials"))
		for _, c := range s.Credentials {
			fmt.Fprintf(w, "  %-22s %s / %s\n", c.Name, c.User, c.Password)
		}
	}

	if len(s.Warnings) > 0 {
		fmt.Fprintln(w, render(sectionStyle, "Warnings"))
		for _, warning := range s.Warnings {
			fmt.Fprintf(w, "  %s %s\n", render(warnStyle, warnMark), warning)
		}
	}
}

// PrintFailureHints points the operator at diagnostic commands after a
// fatal step failure.
func PrintFailureHints(clusterName string) {
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "The environment was left as-is for inspection. Useful commands:")
	fmt.Fprintln(os.Stderr, "  docker ps --all")
	fmt.Fprintln(os.Stderr, "  kind get clusters")
	fmt.Fprintf(os.Stderr, "  kubectl --context kind-%s get pods --all-namespaces\n", clusterName)
}
