package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TimelordUK/lview/internal/config"
	"github.com/TimelordUK/lview/internal/ui"
)

// stringList collects a repeatable string flag
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	os.Exit(run())
}

func run() int {
	var includes, excludes stringList

	configPath := flag.String("config", "", "config file path (default $XDG_CONFIG_HOME/lview/config.toml)")
	debugPath := flag.String("debug", "", "write debug log to this file")
	wrap := flag.Bool("w", false, "start with word wrap on")
	output := flag.String("o", "", "export the filtered view to this file and exit")
	exportWrap := flag.Bool("wrap", false, "wrap exported lines")
	width := flag.Float64("width", 120, "export wrap width, in cells or pixels with -font-size")
	fontSize := flag.Float64("font-size", 0, "measure export text with a font of this size")
	numbers := flag.Bool("numbers", false, "prefix exported lines with their line number")
	flag.Var(&includes, "include", "include filter for export (repeatable)")
	flag.Var(&excludes, "exclude", "exclude filter for export (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lview [flags] [file]\n")
		fmt.Fprintf(os.Stderr, "       lview -o out.txt [-wrap] [-width N] [-font-size S] [-numbers] [-include P] [-exclude P] file\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *debugPath != "" {
		f, err := tea.LogToFile(*debugPath, "lview")
		if err != nil {
			fmt.Fprintf(os.Stderr, "lview: %v\n", err)
			return 1
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lview: %v\n", err)
		return 1
	}

	if *output != "" {
		if flag.NArg() < 1 {
			flag.Usage()
			return 1
		}
		opts := exportOptions{
			Input:    flag.Arg(0),
			Output:   *output,
			Wrap:     *exportWrap,
			Width:    *width,
			FontSize: *fontSize,
			Numbers:  *numbers,
			Includes: includes,
			Excludes: excludes,
		}
		if err := export(opts, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "lview: %v\n", err)
			return 1
		}
		return 0
	}

	if *wrap {
		cfg.Display.WrapLines = true
	}

	model, err := ui.NewModel(ui.ModelOptions{
		Filepath: flag.Arg(0),
		Config:   cfg,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "lview: %v\n", err)
		return 1
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "lview: %v\n", err)
		return 1
	}
	return 0
}
