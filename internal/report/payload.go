package report

import (
	"fmt"

	"fortio.org/safecast"

	"sniff/internal/driver"
	"sniff/internal/source"
	"sniff/internal/style"
)

// Payload is the machine-readable form of one verdict, shared by the JSON and
// msgpack encoders.
type Payload struct {
	Path      string          `json:"path" msgpack:"path"`
	Style     string          `json:"style" msgpack:"style"`
	Found     bool            `json:"found" msgpack:"found"`
	Settings  *style.Settings `json:"settings,omitempty" msgpack:"settings,omitempty"`
	Lines     uint32          `json:"lines" msgpack:"lines"`
	Truncated bool            `json:"truncated,omitempty" msgpack:"truncated,omitempty"`
	Error     string          `json:"error,omitempty" msgpack:"error,omitempty"`

	Explain *Explain `json:"explain,omitempty" msgpack:"explain,omitempty"`
}

// Explain carries the classifier diagnostics of one verdict.
type Explain struct {
	UsableLines       uint32            `json:"usable_lines" msgpack:"usable_lines"`
	Tally             map[string]uint32 `json:"tally" msgpack:"tally"`
	Scores            map[string]uint32 `json:"scores" msgpack:"scores"`
	MaxScore          uint32            `json:"max_score" msgpack:"max_score"`
	Cutoff            uint32            `json:"cutoff" msgpack:"cutoff"`
	ThresholdPermille uint32            `json:"threshold_permille" msgpack:"threshold_permille"`
	Contenders        []string          `json:"contenders" msgpack:"contenders"`
}

// NewPayload converts a driver result. Diagnostics are attached when explain
// is set.
func NewPayload(r driver.FileResult, table style.Table, explain bool) (Payload, error) {
	p := Payload{
		Path:      source.DisplayPath(r.Path),
		Style:     r.Result.Style.String(),
		Found:     r.Result.Found,
		Truncated: r.Flags.Has(source.FileTruncated),
	}
	if r.Err != nil {
		p.Style = style.None.String()
		p.Found = false
		p.Error = r.Err.Error()
		return p, nil
	}

	lines, err := count(r.Lines, "lines")
	if err != nil {
		return Payload{}, err
	}
	p.Lines = lines

	if settings, ok := r.Result.Settings(table); ok {
		p.Settings = &settings
	}
	if !explain {
		return p, nil
	}

	res := r.Result
	ex := &Explain{
		Tally:      make(map[string]uint32, len(res.Tally)),
		Scores:     make(map[string]uint32, len(res.Scores)),
		Contenders: make([]string, 0, len(res.Contenders)),
	}
	for run, n := range res.Tally {
		if ex.Tally[run], err = count(n, "tally"); err != nil {
			return Payload{}, err
		}
	}
	for k, n := range res.Scores {
		if ex.Scores[k.String()], err = count(n, "score"); err != nil {
			return Payload{}, err
		}
	}
	for _, k := range res.Contenders {
		ex.Contenders = append(ex.Contenders, k.String())
	}
	if ex.UsableLines, err = count(res.UsableLines, "usable lines"); err != nil {
		return Payload{}, err
	}
	if ex.MaxScore, err = count(res.MaxScore, "max score"); err != nil {
		return Payload{}, err
	}
	if ex.Cutoff, err = count(res.Cutoff(), "cutoff"); err != nil {
		return Payload{}, err
	}
	if ex.ThresholdPermille, err = count(res.ThresholdPermille, "threshold"); err != nil {
		return Payload{}, err
	}
	p.Explain = ex
	return p, nil
}

func count(n int, what string) (uint32, error) {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return 0, fmt.Errorf("%s out of range: %w", what, err)
	}
	return v, nil
}
