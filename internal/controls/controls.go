// Package controls decides which draft control a viewer sees and turns
// clicks on that control into start/pause intents for the owning room.
package controls

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"

	"github.com/DoyleJ11/draft-room/internal/draft"
)

var ErrAffordanceHidden = errors.New("affordance not shown")

// View is the closed set of things the panel can render.
type View string

const (
	ViewWaiting  View = "waiting"
	ViewStart    View = "start"
	ViewPause    View = "pause"
	ViewComplete View = "complete"
)

// Intent is a zero-payload request sent to whoever owns the draft.
type Intent string

const (
	IntentStart Intent = "start"
	IntentPause Intent = "pause"
)

// Resolve maps a viewer role and an optional snapshot to a view. A nil
// snapshot means the draft hasn't been created yet, which shows the start
// button. Completion is checked before paused/running, so a snapshot that
// claims to be both complete and paused renders the badge.
func Resolve(isCommissioner bool, state *draft.Snapshot) View {
	if !isCommissioner {
		return ViewWaiting
	}
	if state == nil {
		return ViewStart
	}
	if state.IsComplete {
		return ViewComplete
	}
	if state.IsPaused {
		return ViewStart
	}
	return ViewPause
}

// Actions holds the form targets for the start and pause buttons.
type Actions struct {
	Start string
	Pause string
}

type Panel struct {
	isCommissioner bool
	state          *draft.Snapshot
	notify         func(Intent)
}

// NewPanel builds a panel for one render. notify may be nil, in which case
// intents are dropped.
func NewPanel(isCommissioner bool, state *draft.Snapshot, notify func(Intent)) *Panel {
	return &Panel{isCommissioner: isCommissioner, state: state, notify: notify}
}

func (p *Panel) View() View { return Resolve(p.isCommissioner, p.state) }

func (p *Panel) EmitStart() error { return p.emit(ViewStart, IntentStart) }

func (p *Panel) EmitPause() error { return p.emit(ViewPause, IntentPause) }

func (p *Panel) emit(shown View, intent Intent) error {
	if v := p.View(); v != shown {
		return fmt.Errorf("%s while view is %s: %w", intent, v, ErrAffordanceHidden)
	}
	if p.notify != nil {
		p.notify(intent)
	}
	return nil
}

//go:embed templates/controls.html
var templateFS embed.FS

var tmpl = template.Must(template.ParseFS(templateFS, "templates/controls.html"))

func (p *Panel) Render(w io.Writer, actions Actions) error {
	data := struct {
		View    View
		Actions Actions
	}{View: p.View(), Actions: actions}
	return tmpl.ExecuteTemplate(w, "controls", data)
}
