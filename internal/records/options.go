package records

import "fmt"

// Ragged selects how delimited rows with the wrong column count are handled.
type Ragged string

const (
	// RaggedStrict rejects the input with a *ParseError.
	RaggedStrict Ragged = "strict"
	// RaggedPad leaves missing trailing fields absent and drops extra cells.
	RaggedPad Ragged = "pad"
)

const (
	FormatAuto = "auto"
	FormatCSV  = "csv"
	FormatTSV  = "tsv"
	FormatJSON = "json"
)

type Options struct {
	Format    string
	Delimiter rune
	Ragged    Ragged
	// Repair runs JSON input through a repairer before decoding.
	Repair bool
}

func DefaultOptions() Options {
	return Options{
		Format: FormatAuto,
		Ragged: RaggedStrict,
	}
}

func ParseRagged(s string) (Ragged, error) {
	switch Ragged(s) {
	case "", RaggedStrict:
		return RaggedStrict, nil
	case RaggedPad:
		return RaggedPad, nil
	}
	return "", fmt.Errorf("unknown ragged policy: %s (want strict or pad)", s)
}
