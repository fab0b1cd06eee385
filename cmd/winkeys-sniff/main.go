// winkeys-sniff shows the raw keyboard event stream in a small TUI
// and captures new shortcut chords interactively via stealing mode.
package main

import (
	"fmt"
	"os"

	cb "github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"winkeys/hook"
	"winkeys/manager"
)

const eventLines = 12

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	downStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	upStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	stealStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	chordStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// prog is set before the manager starts so callbacks running on the
// executor goroutine can post messages into the TUI.
var prog *tea.Program

type keyEventMsg hook.Event
type stealDoneMsg struct{}

type model struct {
	mgr      *manager.Manager
	events   []string
	stealing bool
	chord    string
	copied   bool
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "s":
			if !m.stealing {
				m.stealing = true
				m.chord = ""
				m.copied = false
				m.mgr.Steal(func() {
					prog.Send(stealDoneMsg{})
				})
			}
		}

	case keyEventMsg:
		ev := hook.Event(msg)
		line := upStyle.Render("up   " + ev.Key.Name())
		if ev.Kind == hook.KeyDown {
			line = downStyle.Render("down " + ev.Key.Name() + "  " + ev.State.String())
			if m.stealing {
				// Config-ready form, pasteable into winkeys.toml.
				m.chord = ev.State.Combo()
			}
		}
		m.events = append(m.events, line)
		if len(m.events) > eventLines {
			m.events = m.events[len(m.events)-eventLines:]
		}

	case stealDoneMsg:
		m.stealing = false
		if m.chord != "" {
			m.copied = cb.WriteAll(m.chord) == nil
		}
	}
	return m, nil
}

func (m model) View() string {
	s := titleStyle.Render("winkeys sniffer") + "\n\n"
	for _, line := range m.events {
		s += line + "\n"
	}
	s += "\n"
	if m.stealing {
		s += stealStyle.Render("STEALING - press a chord, Escape to finish") + "\n"
	} else if m.chord != "" {
		s += "captured " + chordStyle.Render(m.chord)
		if m.copied {
			s += helpStyle.Render("  (copied to clipboard)")
		}
		s += "\n"
	}
	s += helpStyle.Render("s: capture a chord  q: quit")
	return s
}

func main() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "winkeys-sniff needs a terminal")
		os.Exit(1)
	}

	h, err := hook.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	mgr := manager.Current()
	prog = tea.NewProgram(model{mgr: mgr}, tea.WithAltScreen())

	mgr.SetGlobalListener(func(ev hook.Event) {
		prog.Send(keyEventMsg(ev))
	})

	if err := mgr.Start(h); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer mgr.Stop()

	if _, err := prog.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	mgr.RemoveGlobalListener()
}
