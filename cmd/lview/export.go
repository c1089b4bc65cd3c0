package main

import (
	"fmt"
	"log"

	"github.com/TimelordUK/lview/internal/config"
	"github.com/TimelordUK/lview/internal/filter"
	"github.com/TimelordUK/lview/internal/layout"
	"github.com/TimelordUK/lview/internal/session"
)

// exportDPI makes one point one pixel
const exportDPI = 72

type exportOptions struct {
	Input    string
	Output   string
	Wrap     bool
	Width    float64
	FontSize float64
	Numbers  bool
	Includes []string
	Excludes []string
}

// export runs a session without a terminal: load, filter, lay out, save.
// With a font size the width is in pixels of the Go Regular face, else in
// terminal cells.
func export(opts exportOptions, cfg *config.Config) error {
	var m layout.Measurer = layout.CellMeasurer{}
	fontSize := cfg.Display.FontSize
	if opts.FontSize > 0 || cfg.Display.Measure == config.MeasureFace {
		fm, err := layout.NewFaceMeasurer(exportDPI)
		if err != nil {
			return fmt.Errorf("font: %w", err)
		}
		defer fm.Close()
		m = fm
		if opts.FontSize > 0 {
			fontSize = opts.FontSize
		}
	}

	s := session.New(session.Options{
		Measurer: m,
		FontSize: fontSize,
		Wrap:     opts.Wrap,
	})
	s.SetShowLineNumbers(false)
	s.SetViewport(opts.Width, 0)

	for _, fc := range cfg.Filters {
		kind, ok := filter.ParseKind(fc.Kind)
		if !ok {
			return fmt.Errorf("filter %q: unknown kind %q", fc.Pattern, fc.Kind)
		}
		s.AddFilterRule(filter.Rule{Kind: kind, Pattern: fc.Pattern, Enabled: fc.IsEnabled()})
	}
	for _, p := range opts.Includes {
		s.AddFilter(filter.Include, p)
	}
	for _, p := range opts.Excludes {
		s.AddFilter(filter.Exclude, p)
	}

	if err := s.LoadFile(opts.Input); err != nil {
		return err
	}
	s.Update()

	if err := s.SaveFile(opts.Output, opts.Numbers); err != nil {
		return err
	}
	log.Printf("exported %d of %d lines", len(s.FilteredLines()), s.TotalLines())
	return nil
}
