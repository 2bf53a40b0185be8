package interp

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/vrtulka23/dpml/internal/node"
)

// TestMain wires go-snaps' cleanup hook, matching the teacher's snapshot
// test setup.
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	_ = v
}

// summarize renders a deterministic, sorted name=value dump of a finalized
// result list for snapshotting (spec §8's worked examples all assert on
// exactly this kind of flat view).
func summarize(nodes []node.Node) string {
	names := make([]string, len(nodes))
	byName := make(map[string]node.Node, len(nodes))
	for i, n := range nodes {
		names[i] = n.Name
		byName[n.Name] = n
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		n := byName[name]
		fmt.Fprintf(&sb, "%s = %s", name, summarizeValue(n.Value))
		if n.Units != "" {
			fmt.Fprintf(&sb, " %s", n.Units)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func summarizeValue(v node.Value) string {
	switch v.Kind() {
	case node.ValueNull:
		return "null"
	case node.ValueBool:
		return fmt.Sprintf("%v", v.BoolValue())
	case node.ValueInt:
		return fmt.Sprintf("%d", v.IntValue())
	case node.ValueFloat:
		return fmt.Sprintf("%g", v.FloatValue())
	case node.ValueString:
		return v.StringValue()
	case node.ValueArray:
		elems := v.ArrayElements()
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = summarizeValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return ""
	}
}

// TestScenarioSnapshots runs the three worked examples of spec §8 end to end
// and snapshots their flattened results, mirroring the teacher's
// snapshot-per-fixture pattern in fixture_test.go.
func TestScenarioSnapshots(t *testing.T) {
	scenarios := []struct {
		name string
		code string
	}{
		{
			name: "types_and_options",
			code: `coordinates int = 1
  = 1
  = 2
  = 3
assets str = none
  = house
  = car
`,
		},
		{
			name: "unit_aware_modification",
			code: `size float = 70 cm
size = 1 m
`,
		},
		{
			name: "conditional_nested_cases",
			code: `@case false
  flower str = rose
@else
  flower str = dandelion
  @case true
    color str = yellow
tree str = maple
`,
		},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			ip := NewFromText(fakeReader{}, sc.code)
			if err := ip.Initialize(); err != nil {
				t.Fatalf("Initialize(%s) error: %v", sc.name, err)
			}
			snaps.MatchSnapshot(t, summarize(ip.R))
		})
	}
}
