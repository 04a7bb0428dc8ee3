package conform

import (
	"fmt"
	"strings"

	"github.com/mj1618/a11y-conform/internal/platform"
)

// maxUnitSteps bounds every unit-by-unit loop so a backend that never reports
// the end of the document cannot hang a scenario.
const maxUnitSteps = 1 << 20

// UnitCountTable holds a count per text unit, indexed by platform.TextUnit.
type UnitCountTable [platform.NumTextUnits]int

// Negate returns the table with every count negated.
func (t UnitCountTable) Negate() UnitCountTable {
	var out UnitCountTable
	for i, n := range t {
		out[i] = -n
	}
	return out
}

func (t UnitCountTable) String() string {
	parts := make([]string, len(t))
	for i, n := range t {
		parts[i] = fmt.Sprintf("%s=%d", platform.TextUnit(i), n)
	}
	return strings.Join(parts, " ")
}

// CountAll counts the units of every granularity in doc by stepping a
// collapsed clone through the document one unit at a time. doc is not modified.
func CountAll(doc platform.TextRange) (UnitCountTable, error) {
	var counts UnitCountTable
	for _, unit := range platform.TextUnits {
		r := doc.Clone()
		if err := r.MoveEndpointByRange(platform.EndpointEnd, r, platform.EndpointStart); err != nil {
			return counts, fmt.Errorf("collapse range: %w", err)
		}
		n, err := countUnits(r, unit)
		if err != nil {
			return counts, err
		}
		counts[unit] = n
	}
	return counts, nil
}

func countUnits(r platform.TextRange, unit platform.TextUnit) (int, error) {
	for n := 0; n < maxUnitSteps; n++ {
		moved, err := r.Move(unit, 1)
		if err != nil {
			return 0, fmt.Errorf("count %s units: %w", unit, err)
		}
		if moved == 0 {
			return n, nil
		}
	}
	return 0, fmt.Errorf("count %s units: document end not reached after %d steps", unit, maxUnitSteps)
}

// CountMismatchError reports the units whose observed counts differ from the
// expected table in one navigation check.
type CountMismatchError struct {
	Check    string
	Expected UnitCountTable
	Observed UnitCountTable
}

func (e *CountMismatchError) Error() string {
	var diffs []string
	for i := range e.Expected {
		if e.Expected[i] != e.Observed[i] {
			diffs = append(diffs, fmt.Sprintf("%s: expected %d, got %d", platform.TextUnit(i), e.Expected[i], e.Observed[i]))
		}
	}
	return fmt.Sprintf("%s: %s", e.Check, strings.Join(diffs, "; "))
}

// compareCounts records a CountMismatchError on sc when observed differs from expected.
func compareCounts(sc *Context, check string, expected, observed UnitCountTable) {
	if observed == expected {
		sc.Comment("%s: %s", check, observed)
		return
	}
	sc.Record(&CountMismatchError{Check: check, Expected: expected, Observed: observed})
}
