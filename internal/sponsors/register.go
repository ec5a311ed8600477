package sponsors

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// LoadError indicates the sponsor register could not be loaded or parsed.
// It is fatal for the pipeline: without the register there is nothing to
// verify companies against.
type LoadError struct {
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("loading sponsor register: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("loading sponsor register: %s", e.Reason)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Entry is a single organisation from the register. Name is normalized at
// load time; the remaining columns are carried through uninterpreted.
type Entry struct {
	Name string
	Raw  []string
}

// Register is the in-memory sponsor register. It is loaded once per run and
// read-only afterwards.
type Register struct {
	entries []Entry
	names   []string
}

// Load parses the register CSV. The first record is treated as a header and
// the first column as the organisation name, whatever it is called: the
// government occasionally renames it. Rows with a blank name are skipped.
func Load(r io.Reader) (*Register, error) {
	reader := csv.NewReader(r)
	// The register is hand-maintained; tolerate ragged rows.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &LoadError{Reason: "malformed csv", Err: err}
	}

	if len(records) == 0 || len(records[0]) == 0 {
		return nil, &LoadError{Reason: "register csv has no name column"}
	}

	reg := &Register{}
	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}

		name := Normalize(record[0])
		if name == "" {
			continue
		}

		reg.entries = append(reg.entries, Entry{Name: name, Raw: record})
		reg.names = append(reg.names, name)
	}

	if len(reg.entries) == 0 {
		return nil, &LoadError{Reason: "register contains no organisation names"}
	}

	return reg, nil
}

func (r *Register) Len() int {
	return len(r.entries)
}

// Names returns the normalized organisation names in register order. The
// returned slice is shared and must not be modified.
func (r *Register) Names() []string {
	return r.names
}

// Normalize folds a company name to the form used for matching and cache
// keys: trimmed and lowercased. Legal suffixes ("Ltd", "LLP") are kept;
// fuzzy matching absorbs those differences and stripping them would change
// match outcomes.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
