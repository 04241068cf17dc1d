package navigator

import (
	"errors"
	"fmt"
	"strings"
)

// Position is a 1-based (line, column) cursor location.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// SelectionMode tags how the host selected text.
type SelectionMode int

const (
	SelectNone SelectionMode = iota
	SelectLinewise
	SelectCharwise
	SelectBlockwise
)

var selectionModeNames = map[SelectionMode]string{
	SelectNone:      "none",
	SelectLinewise:  "linewise",
	SelectCharwise:  "charwise",
	SelectBlockwise: "blockwise",
}

func (m SelectionMode) String() string {
	if s, ok := selectionModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("SelectionMode(%d)", int(m))
}

func (m SelectionMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *SelectionMode) UnmarshalText(b []byte) error {
	v, err := ParseSelectionMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseSelectionMode accepts the mode names and the vim visualmode() tags
// "", "V", "v" and CTRL-V.
func ParseSelectionMode(s string) (SelectionMode, error) {
	switch s {
	case "", "none":
		return SelectNone, nil
	case "V", "linewise", "line":
		return SelectLinewise, nil
	case "v", "charwise", "char":
		return SelectCharwise, nil
	case "\x16", "blockwise", "block":
		return SelectBlockwise, nil
	}
	return SelectNone, fmt.Errorf("%w: %q", ErrInvalidSelectionMode, s)
}

// Side names one end of a selection.
type Side int

const (
	SideStart Side = iota
	SideEnd
)

func (s Side) String() string {
	if s == SideEnd {
		return "end"
	}
	return "start"
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "", "start":
		*s = SideStart
	case "end":
		*s = SideEnd
	default:
		return fmt.Errorf("unknown selection side %q", string(b))
	}
	return nil
}

// Selection is an active selection: two endpoints and the one under the
// cursor.
type Selection struct {
	Mode   SelectionMode `json:"mode"`
	Start  Position      `json:"start"`
	End    Position      `json:"end"`
	Active Side          `json:"active"`
}

// Request is the cursor state a move starts from.
type Request struct {
	Cursor    Position   `json:"cursor"`
	Selection *Selection `json:"selection,omitempty"`
	Count     int        `json:"count,omitempty"`
}

// Outcome says what kind of result a move produced.
type Outcome int

const (
	NoTarget Outcome = iota
	MovedCursor
	Reselected
)

func (o Outcome) String() string {
	switch o {
	case MovedCursor:
		return "cursor"
	case Reselected:
		return "selection"
	default:
		return "no_target"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(b []byte) error {
	switch string(b) {
	case "no_target":
		*o = NoTarget
	case "cursor":
		*o = MovedCursor
	case "selection":
		*o = Reselected
	default:
		return fmt.Errorf("unknown outcome %q", string(b))
	}
	return nil
}

// LineRange is a whole-line selection. CursorAtStart asks the host to leave
// the cursor on Start rather than End after selecting.
type LineRange struct {
	Start         int  `json:"start"`
	End           int  `json:"end"`
	CursorAtStart bool `json:"cursor_at_start"`
}

// Result is the outcome of one move. Cursor is set for MovedCursor and
// Selection for Reselected. Heading is the start line of the heading the
// move resolved to, 0 when the move did not reach one.
type Result struct {
	Outcome   Outcome    `json:"outcome"`
	Cursor    *Position  `json:"cursor,omitempty"`
	Selection *LineRange `json:"selection,omitempty"`
	Heading   int        `json:"heading,omitempty"`
}

// Moved reports whether the host has anything to apply.
func (r Result) Moved() bool {
	return r.Outcome != NoTarget
}

// Op is a navigation operation.
type Op string

const (
	OpNext     Op = "next"
	OpPrevious Op = "previous"
	OpParent   Op = "parent"
)

var (
	// ErrInvalidSelectionMode is returned for selections the adapter cannot
	// express as whole lines.
	ErrInvalidSelectionMode = errors.New("invalid selection mode")
	// ErrUnknownOp is returned by ParseOp.
	ErrUnknownOp = errors.New("unknown navigation op")
)

// ParseOp converts a command name into an Op.
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "next":
		return OpNext, nil
	case "previous", "prev":
		return OpPrevious, nil
	case "parent", "up":
		return OpParent, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOp, s)
}

func normalizeCount(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
