package tui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"stbr_web/internal/feature/search/domain/entity"
)

// suggestionsMsg carries one full replacement of the suggestion list.
type suggestionsMsg struct {
	seq     uint64
	matches []entity.Match
}

// Renderer forwards the controller's renders into the bubbletea program.
//
// The controller calls Render with its lock held, possibly from inside
// Update, so Render never blocks: it stamps the list with a sequence number
// and sends it from a new goroutine. The model drops lists older than the
// newest one it has applied.
type Renderer struct {
	seq  atomic.Uint64
	send atomic.Pointer[func(tea.Msg)]
}

// NewRenderer creates a renderer that drops everything until Attach is called.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Attach sets where lists are delivered, typically (*tea.Program).Send.
func (r *Renderer) Attach(send func(tea.Msg)) {
	r.send.Store(&send)
}

// Render implements usecase.Renderer.
func (r *Renderer) Render(matches []entity.Match) {
	msg := suggestionsMsg{seq: r.seq.Add(1), matches: matches}
	send := r.send.Load()
	if send == nil {
		return
	}
	go (*send)(msg)
}
