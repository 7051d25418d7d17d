package validation

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "cricketcli/internal/errors"
)

// MenuChoice is a dashboard menu selection
type MenuChoice int

const (
	ChoiceManhattan MenuChoice = 1
	ChoiceWorm      MenuChoice = 2
	ChoiceRunRate   MenuChoice = 3
	ChoiceSummary   MenuChoice = 4
	ChoiceExit      MenuChoice = 5
	ChoiceDump      MenuChoice = 6
)

// NeedsInning reports whether the choice asks for an inning number
func (c MenuChoice) NeedsInning() bool {
	return c == ChoiceManhattan || c == ChoiceWorm || c == ChoiceRunRate
}

// String returns the menu label of the choice
func (c MenuChoice) String() string {
	switch c {
	case ChoiceManhattan:
		return "manhattan"
	case ChoiceWorm:
		return "worm"
	case ChoiceRunRate:
		return "runrate"
	case ChoiceSummary:
		return "summary"
	case ChoiceExit:
		return "exit"
	case ChoiceDump:
		return "dump"
	default:
		return fmt.Sprintf("choice(%d)", int(c))
	}
}

// ParseMenuChoice parses a menu selection. Non-integers and numbers outside 1-6 are rejected.
func ParseMenuChoice(input string) (MenuChoice, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, apperrors.NewAppValidationError("Invalid input. Please enter a number.").
			WithContext("input", input)
	}
	c := MenuChoice(n)
	if c < ChoiceManhattan || c > ChoiceDump {
		return 0, apperrors.NewAppValidationError(
			fmt.Sprintf("Invalid choice %d. Please enter a number from 1 to 6.", n)).
			WithContext("input", input)
	}
	return c, nil
}

// ParseInning parses an inning number, which must be 1 or 2
func ParseInning(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || (n != 1 && n != 2) {
		return 0, apperrors.NewAppValidationError("Invalid inning number. Please enter 1 or 2.").
			WithContext("input", input)
	}
	return n, nil
}

// ParseMatchNumber parses a non-negative match number
func ParseMatchNumber(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 0 {
		return 0, apperrors.NewAppValidationError("Invalid match number. Please enter a whole number.").
			WithContext("input", input)
	}
	return n, nil
}
