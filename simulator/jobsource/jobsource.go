// Package jobsource reads job descriptors from files, HTTP endpoints or an
// interactive prompt and turns them into validated domain.Jobs.
package jobsource

//go:generate mockgen -source=jobsource.go -package=jobsource -destination=jobsource_mock.go

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/domain"
)

// JobSource yields the complete job list of one simulation.
type JobSource interface {
	Jobs() ([]domain.Job, error)
}

const (
	CSVFormat  = "csv"
	JSONFormat = "json"
	YAMLFormat = "yaml"

	// StdinLocation selects the interactive prompt.
	StdinLocation = "-"
)

// InputError is returned for job input that can't be turned into jobs: a
// malformed row or document, or a descriptor rejected by domain.NewJob.
type InputError struct {
	Source string
	Row    int // 1-based, 0 when the error isn't tied to a row
	Err    error
}

func (e *InputError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s: row %d: %v", e.Source, e.Row, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *InputError) Cause() error {
	return e.Err
}

// jobRecord is the on-disk form of a job in JSON and YAML job files.
type jobRecord struct {
	ArrivalTime   int `json:"arrival_time" yaml:"arrival_time"`
	Cores         int `json:"cores" yaml:"cores"`
	Memory        int `json:"memory" yaml:"memory"`
	ExecutionTime int `json:"execution_time" yaml:"execution_time"`
}

// toJobs validates records in order, ids are assigned 1-based by position.
func toJobs(source string, records []jobRecord) ([]domain.Job, error) {
	jobs := make([]domain.Job, 0, len(records))
	for i, r := range records {
		job, err := domain.NewJob(i+1, r.ArrivalTime, r.Cores, r.Memory, r.ExecutionTime)
		if err != nil {
			return nil, &InputError{Source: source, Row: i + 1, Err: err}
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// FormatOf returns the job file format implied by the name's extension.
func FormatOf(name string) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return CSVFormat, nil
	case ".json":
		return JSONFormat, nil
	case ".yaml", ".yml":
		return YAMLFormat, nil
	}
	return "", fmt.Errorf("%s: unsupported job file extension, expected .csv, .json, .yaml or .yml", name)
}

// NewSource returns the parser for the given format reading from r.
func NewSource(format string, r io.Reader) (JobSource, error) {
	switch format {
	case CSVFormat:
		return NewCSVSource(r), nil
	case JSONFormat:
		return NewJSONSource(r), nil
	case YAMLFormat:
		return NewYAMLSource(r), nil
	}
	return nil, fmt.Errorf("unsupported job format %q", format)
}

// FromLocation picks a JobSource for loc: "-" prompts on stdin/stdout,
// http(s) URLs are fetched, anything else is a local file whose extension
// selects the format.
func FromLocation(loc string) (JobSource, error) {
	switch {
	case loc == StdinLocation:
		return NewPromptSource(os.Stdin, os.Stdout), nil
	case strings.HasPrefix(loc, "http://"), strings.HasPrefix(loc, "https://"):
		return NewHTTPSource(loc, MakePesterClient())
	}
	return NewFileSource(loc)
}

type fileSource struct {
	path   string
	format string
}

// NewFileSource reads jobs from a local file when Jobs is called.
func NewFileSource(path string) (JobSource, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, &InputError{Source: path, Err: err}
	}
	return &fileSource{path: path, format: format}, nil
}

func (s *fileSource) Jobs() ([]domain.Job, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't open job file")
	}
	defer f.Close()
	src, err := NewSource(s.format, f)
	if err != nil {
		return nil, err
	}
	jobs, err := src.Jobs()
	if ie, ok := err.(*InputError); ok {
		ie.Source = s.path
	}
	return jobs, err
}
