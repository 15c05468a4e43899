// Package version parses the host version string and builds the diagnostic
// identifier shown to extensions.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/modhooks/internal/log"
)

// BuildRevision is the engine's own revision, appended to the host version
// in Identifier.
const BuildRevision = 60

// ErrMalformed indicates a version string that is not four dot-separated
// integers.
var ErrMalformed = errors.New("malformed version")

// Info is a four-part host version.
type Info struct {
	Major    int `json:"major" yaml:"major"`
	Minor    int `json:"minor" yaml:"minor"`
	Revision int `json:"revision" yaml:"revision"`
	Package  int `json:"package" yaml:"package"`
}

// String returns "major.minor.revision.package".
func (v Info) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Revision, v.Package)
}

// IsZero reports whether v is the zero version.
func (v Info) IsZero() bool {
	return v == Info{}
}

// Compare returns -1, 0 or 1 as v is older than, equal to or newer than
// other.
func (v Info) Compare(other Info) int {
	a := [4]int{v.Major, v.Minor, v.Revision, v.Package}
	b := [4]int{other.Major, other.Minor, other.Revision, other.Package}
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Strict parses s, returning ErrMalformed when it is not exactly four
// dot-separated integers.
func Strict(s string) (Info, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 4 {
		return Info{}, fmt.Errorf("%w: %q has %d fields, want 4", ErrMalformed, s, len(parts))
	}
	var n [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return Info{}, fmt.Errorf("%w: %q: %w", ErrMalformed, s, err)
		}
		n[i] = v
	}
	return Info{Major: n[0], Minor: n[1], Revision: n[2], Package: n[3]}, nil
}

// Parse is Strict for startup use: a malformed string is reported to sink
// and the zero version is returned.
func Parse(s string, sink log.Sink) Info {
	v, err := Strict(s)
	if err != nil {
		if sink != nil {
			sink.Fault(log.FaultVersionParse, "could not parse host version", err, "version", s)
		}
		return Info{}
	}
	return v
}

// Identifier returns "<version>-<BuildRevision>".
func Identifier(v Info) string {
	return fmt.Sprintf("%s-%d", v, BuildRevision)
}
