package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rgallery/internal/filter"
	statepkg "github.com/kk-code-lab/rgallery/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false when
// the event asks the app to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

// processKeyEvent dispatches to the handler of the topmost mode.
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		ih.actionChan <- statepkg.QuitAction{}
		return false
	}

	state := ih.state
	switch {
	case state != nil && state.DisclaimerVisible:
		return ih.processDisclaimerKey(ev)
	case state != nil && state.HelpVisible:
		return ih.processHelpKey(ev)
	case state != nil && state.SearchActive:
		return ih.processSearchKey(ev)
	case state != nil && state.Picker.Active:
		return ih.processPickerKey(ev)
	default:
		return ih.processBrowseKey(ev)
	}
}

func (ih *InputHandler) processDisclaimerKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.AcknowledgeDisclaimerAction{}
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			ih.actionChan <- statepkg.QuitAction{}
			return false
		}
	}
	return true
}

func (ih *InputHandler) processHelpKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.ToggleHelpAction{}
	case tcell.KeyRune:
		r := ev.Rune()
		if r == '?' || r == 'q' || r == 'Q' {
			ih.actionChan <- statepkg.ToggleHelpAction{}
		}
	}
	return true
}

func (ih *InputHandler) processSearchKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyEnter:
		ih.actionChan <- statepkg.SearchCommitAction{}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.SearchBackspaceAction{}
	case tcell.KeyCtrlU:
		ih.actionChan <- statepkg.SearchClearAction{}
	case tcell.KeyRune:
		ih.actionChan <- statepkg.SearchCharAction{Char: ev.Rune()}
	}
	return true
}

func (ih *InputHandler) processPickerKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.PickerCloseAction{}
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.PickerToggleAction{}
	case tcell.KeyUp:
		ih.actionChan <- statepkg.PickerMoveAction{Delta: -1}
	case tcell.KeyDown:
		ih.actionChan <- statepkg.PickerMoveAction{Delta: 1}
	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.PickerMoveAction{Delta: -10}
	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.PickerMoveAction{Delta: 10}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.PickerBackspaceAction{}
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case '+':
			ih.actionChan <- statepkg.PickerToggleAction{}
		case '-':
			ih.actionChan <- statepkg.PickerToggleAction{Exclude: true}
		default:
			ih.actionChan <- statepkg.PickerCharAction{Char: r}
		}
	}
	return true
}

func (ih *InputHandler) processBrowseKey(ev *tcell.EventKey) bool {
	previewOpen := ih.state != nil && ih.state.PreviewID != ""

	switch ev.Key() {
	case tcell.KeyEscape:
		if previewOpen {
			ih.actionChan <- statepkg.ClosePreviewAction{}
		}
		return true

	case tcell.KeyEnter:
		ih.actionChan <- statepkg.OpenPreviewAction{}
		return true

	case tcell.KeyLeft:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			ih.actionChan <- statepkg.GoToHistoryAction{Direction: "back"}
			return true
		}
		ih.actionChan <- statepkg.SelectPrevAction{}
		return true

	case tcell.KeyRight:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			ih.actionChan <- statepkg.GoToHistoryAction{Direction: "forward"}
			return true
		}
		ih.actionChan <- statepkg.SelectNextAction{}
		return true

	case tcell.KeyUp:
		ih.actionChan <- statepkg.SelectRowUpAction{}
		return true

	case tcell.KeyDown:
		ih.actionChan <- statepkg.SelectRowDownAction{}
		return true

	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.ScrollPageUpAction{}
		return true

	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.ScrollPageDownAction{}
		return true

	case tcell.KeyHome:
		ih.actionChan <- statepkg.SelectFirstAction{}
		return true

	case tcell.KeyEnd:
		ih.actionChan <- statepkg.SelectLastAction{}
		return true

	case tcell.KeyCtrlE:
		ih.actionChan <- statepkg.ScrollLinesAction{Delta: statepkg.WheelLines}
		return true

	case tcell.KeyCtrlY:
		ih.actionChan <- statepkg.ScrollLinesAction{Delta: -statepkg.WheelLines}
		return true

	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
		return true

	case tcell.KeyRune:
		return ih.processBrowseRune(ev.Rune())

	default:
		return true
	}
}

func (ih *InputHandler) processBrowseRune(r rune) bool {
	switch r {
	case 'q':
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case '?':
		ih.actionChan <- statepkg.ToggleHelpAction{}
	case '/':
		ih.actionChan <- statepkg.SearchStartAction{}
	case 'v':
		ih.actionChan <- statepkg.PickerOpenAction{Facet: filter.FacetVersion}
	case 'a':
		ih.actionChan <- statepkg.PickerOpenAction{Facet: filter.FacetAuthor}
	case 's':
		ih.actionChan <- statepkg.CycleSortAction{}
	case 'x':
		ih.actionChan <- statepkg.ClearFiltersAction{}
	case 'c':
		ih.actionChan <- statepkg.ToggleCompactAction{}
	case 'y':
		ih.actionChan <- statepkg.YankQueryAction{}
	case 'r':
		ih.actionChan <- statepkg.LoadCatalogAction{}
	case '[':
		ih.actionChan <- statepkg.GoToHistoryAction{Direction: "back"}
	case ']':
		ih.actionChan <- statepkg.GoToHistoryAction{Direction: "forward"}
	case 'h':
		ih.actionChan <- statepkg.SelectPrevAction{}
	case 'l':
		ih.actionChan <- statepkg.SelectNextAction{}
	case 'k':
		ih.actionChan <- statepkg.SelectRowUpAction{}
	case 'j':
		ih.actionChan <- statepkg.SelectRowDownAction{}
	case 'g':
		ih.actionChan <- statepkg.SelectFirstAction{}
	case 'G':
		ih.actionChan <- statepkg.SelectLastAction{}
	}
	return true
}
