//nolint:tagliatelle
package dichecker

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is returned when a log line is not valid JSON or does not have the expected shape.
	ErrMalformedInput = errors.New("no valid di-checker data found")
	// ErrUnsupportedMetadata is returned for bug entries that are neither DILocation nor DISubprogram.
	ErrUnsupportedMetadata = errors.New("only DILocation and DISubprogram are supported")
	// ErrMissingField is returned when a record or bug entry lacks a required field.
	ErrMissingField = errors.New("missing required field")
)

// Kind is the debug-info metadata kind a bug entry refers to.
type Kind int

const (
	KindLocation Kind = iota
	KindSubprogram
)

const (
	metadataLocation   = "DILocation"
	metadataSubprogram = "DISubprogram"
)

func (k Kind) String() string {
	switch k {
	case KindLocation:
		return metadataLocation
	case KindSubprogram:
		return metadataSubprogram
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a metadata tag to its Kind.
func ParseKind(metadata string) (Kind, error) {
	switch metadata {
	case metadataLocation:
		return KindLocation, nil
	case metadataSubprogram:
		return KindSubprogram, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedMetadata, metadata)
	}
}

// Record is a single line of a DI checker log. Nil File or Pass were absent.
type Record struct {
	File *string         `json:"file"`
	Pass *string         `json:"pass"`
	Bugs json.RawMessage `json:"bugs"`
}

// Entry is one raw bug entry, as emitted by the checker. Nil fields were absent.
type Entry struct {
	Action       *string `json:"action"`
	Metadata     *string `json:"metadata"`
	BasicBlock   *string `json:"bb-name"`
	FunctionName *string `json:"fn-name"`
	Instruction  *string `json:"instr"`
	Name         *string `json:"name"`
}

// Failure is either a LocationFailure or a SubprogramFailure.
type Failure interface {
	Kind() Kind
}

// LocationFailure is a dropped or corrupted DILocation attached to an instruction.
type LocationFailure struct {
	Action         string
	BasicBlockName string
	FunctionName   string
	Instruction    string
}

// Kind implements Failure.
func (LocationFailure) Kind() Kind { return KindLocation }

// SubprogramFailure is a dropped or corrupted DISubprogram attached to a function.
type SubprogramFailure struct {
	Action       string
	FunctionName string
}

// Kind implements Failure.
func (SubprogramFailure) Kind() Kind { return KindSubprogram }

// DecodeEntry turns a raw entry into its typed failure, checking the fields its kind requires.
func DecodeEntry(entry Entry) (Failure, error) {
	if entry.Metadata == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingField, "metadata")
	}

	kind, err := ParseKind(*entry.Metadata)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindLocation:
		if err := require(
			field{"action", entry.Action},
			field{"bb-name", entry.BasicBlock},
			field{"fn-name", entry.FunctionName},
			field{"instr", entry.Instruction},
		); err != nil {
			return nil, err
		}

		return LocationFailure{
			Action:         *entry.Action,
			BasicBlockName: *entry.BasicBlock,
			FunctionName:   *entry.FunctionName,
			Instruction:    *entry.Instruction,
		}, nil
	default:
		if err := require(
			field{"action", entry.Action},
			field{"name", entry.Name},
		); err != nil {
			return nil, err
		}

		return SubprogramFailure{
			Action:       *entry.Action,
			FunctionName: *entry.Name,
		}, nil
	}
}

type field struct {
	name  string
	value *string
}

func require(fields ...field) error {
	for _, f := range fields {
		if f.value == nil {
			return fmt.Errorf("%w: %q", ErrMissingField, f.name)
		}
	}

	return nil
}
