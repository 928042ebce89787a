package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

const noSlidesMessage = "No slides available to display."

// present runs a line-driven playback loop over s until q, Escape or end of
// input.
func present(s *simplepitch.Session, in io.Reader, w io.Writer) error {
	defer s.Close()

	view := s.View()
	if view.Empty() && (view.Mode == simplepitch.ModeFlat || len(view.Brands) == 0) {
		fmt.Fprintln(w, noSlidesMessage)
		return nil
	}
	render(w, view)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(w, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "n", "next":
			view = s.Apply(simplepitch.ActionNext)
		case "p", "prev", "previous":
			view = s.Apply(simplepitch.ActionPrevious)
		case "j", "jump":
			if len(fields) < 2 {
				fmt.Fprintln(w, "usage: j <brand index>")
				continue
			}
			i, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Fprintf(w, "invalid brand index %q\n", fields[1])
				continue
			}
			v, err := s.JumpToBrand(i)
			if err != nil {
				fmt.Fprintf(w, "cannot jump: %v\n", err)
				continue
			}
			view = v
		case "f", "fullscreen":
			view = s.ToggleFullscreen()
		case "q", "quit", "exit", simplepitch.KeyEscape:
			s.Apply(simplepitch.ActionClose)
			return nil
		default:
			view = s.HandleKey(fields[0])
		}
		render(w, view)
	}
}

func render(w io.Writer, v simplepitch.SessionView) {
	header := v.Title
	if v.Doctor != nil {
		header = fmt.Sprintf("%s for %s", header, v.Doctor.Name)
	}
	fmt.Fprintf(w, "[%s] %s\n", header, v.BrandName)

	if v.Mode == simplepitch.ModeHierarchical && len(v.Brands) > 0 {
		tabs := make([]string, 0, len(v.Brands))
		for _, b := range v.Brands {
			label := fmt.Sprintf("%d:%s", b.Index, b.Name)
			if b.Active {
				label = "*" + label
			}
			tabs = append(tabs, label)
		}
		fmt.Fprintf(w, "  brands: %s\n", strings.Join(tabs, "  "))
	}

	if !v.Position.HasSlide() {
		fmt.Fprintf(w, "  %s\n", noSlidesMessage)
		return
	}
	fmt.Fprintf(w, "  %d/%d  %s  %s\n", v.Position.Number, v.Position.Total, v.Position.Slide.Name, v.Position.Slide.URL)
	fmt.Fprintf(w, "  progress %3.0f%%  prev:%t next:%t\n", v.Progress*100, v.CanPrevious, v.CanNext)
}
