package tui

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	updatePanicToast = "The shell hit an internal error and went back to the menu (see logs)"
	viewPanicText    = "libris could not draw this screen (see .libris/logs/libris.log)"
)

// safeModel keeps a panic in the shell from tearing down the terminal. An
// Update panic drops whatever form or result list was open and returns to
// the menu; a View panic renders a one-line notice instead.
type safeModel struct {
	m   model
	log *slog.Logger
}

func wrapSafe(m model, log *slog.Logger) safeModel {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return safeModel{m: m, log: log}
}

func (s safeModel) Init() tea.Cmd {
	return s.m.Init()
}

func (s safeModel) Update(msg tea.Msg) (tm tea.Model, cmd tea.Cmd) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		s.log.Error("tui.panic",
			"where", "update",
			"screen", int(s.m.scr),
			"action", int(s.m.act),
			"panic", fmt.Sprint(r),
			"stack", string(debug.Stack()),
		)

		s.m.scr = screenHome
		s.m.inputs = nil
		s.m.hint = ""
		s.m.results = nil
		s.m.toast = updatePanicToast
		s.m.toastErr = true
		tm, cmd = s, nil
	}()

	inner, c := s.m.Update(msg)
	switch v := inner.(type) {
	case model:
		s.m = v
	case safeModel:
		s = v
	}
	return s, c
}

func (s safeModel) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("tui.panic",
				"where", "view",
				"screen", int(s.m.scr),
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			out = viewPanicText
		}
	}()
	return s.m.View()
}

var _ tea.Model = safeModel{}
