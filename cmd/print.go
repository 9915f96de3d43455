package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/sirupsen/logrus"
)

// printMarkdown prints md to stdout, styled for the terminal unless -raw.
func printMarkdown(md string) {
	if options.Raw {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err != nil {
		logrus.WithError(err).Debug("cannot create markdown renderer")
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		logrus.WithError(err).Debug("cannot render markdown")
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
