// Package form is the boundary between the test driver and the live RSVP form.
//
// The Driver interface is what the test driver programs against; the
// browser-backed implementation in this package drives the real form in a
// headless browser. Tests for the driver logic supply a fake implementation
// instead, since the form's behavior is not part of this system.
package form

import "context"

// ChoiceGroup identifies one of the form's exclusive yes/no choices.
type ChoiceGroup string

const (
	ChoiceAttending ChoiceGroup = "attending"
	ChoiceTaxi      ChoiceGroup = "taxi"
)

// ChoiceState is the desired selection state of a ChoiceGroup.
type ChoiceState int

const (
	ChoiceNone ChoiceState = iota
	ChoiceYes
	ChoiceNo
)

// Driver mutates the form under test. Implementations must leave the form in
// its neutral state after Reset: all fields empty, default visibility, the
// success message hidden, and no inline error highlighting.
type Driver interface {
	// Reset returns the form to its neutral state.
	Reset(ctx context.Context) error

	// SetText writes a value into the text control for the named field.
	SetText(ctx context.Context, field string, value string) error

	// SelectChoice sets the selection state of an exclusive yes/no choice.
	// ChoiceNone deselects both options.
	SelectChoice(ctx context.Context, group ChoiceGroup, state ChoiceState) error

	// NotifyChange raises a bubbling change notification on the currently
	// selected option of the group, so that any conditional-field logic in
	// the form reacts. Assigning the selection state directly does not fire
	// the form's own listeners.
	NotifyChange(ctx context.Context, group ChoiceGroup) error

	// Submit invokes the form's native submission trigger, which runs the
	// form's validation and, if it passes, its submission logic.
	Submit(ctx context.Context) error

	// Close releases whatever resources back the driver. After Close, no
	// request interception from this driver outlives the run.
	Close() error
}

// TextFields lists the form's free-text fields in the order the driver
// populates them. GuestNames and Dietary come after the attending choice
// because the form reveals them conditionally.
var TextFields = []string{
	"name",
	"email",
	"guestnames",
	"dietary",
	"song",
	"advice",
	"funfact",
	"otherquestion",
}

// Selectors holds the CSS selectors for every element the harness touches.
type Selectors struct {
	Form           string
	SuccessMessage string
	Texts          map[string]string
	AttendingYes   string
	AttendingNo    string
	TaxiYes        string
	TaxiNo         string
}

// DefaultSelectors returns the selectors for the RSVP page's fixed element
// identifiers.
func DefaultSelectors() Selectors {
	return Selectors{
		Form:           "#rsvp-form",
		SuccessMessage: "#success-message",
		Texts: map[string]string{
			"name":          "#name",
			"email":         "#email",
			"guestnames":    "#guestnames",
			"dietary":       "#dietary",
			"song":          "#song",
			"advice":        "#advice",
			"funfact":       "#funfact",
			"otherquestion": "#otherquestion",
		},
		AttendingYes: "#attending-yes",
		AttendingNo:  "#attending-no",
		TaxiYes:      "#taxi-yes",
		TaxiNo:       "#taxi-no",
	}
}

func (s Selectors) choice(group ChoiceGroup, state ChoiceState) string {
	switch {
	case group == ChoiceAttending && state == ChoiceYes:
		return s.AttendingYes
	case group == ChoiceAttending && state == ChoiceNo:
		return s.AttendingNo
	case group == ChoiceTaxi && state == ChoiceYes:
		return s.TaxiYes
	case group == ChoiceTaxi && state == ChoiceNo:
		return s.TaxiNo
	}
	return ""
}

func (s Selectors) choicePair(group ChoiceGroup) (string, string) {
	if group == ChoiceTaxi {
		return s.TaxiYes, s.TaxiNo
	}
	return s.AttendingYes, s.AttendingNo
}
