package jobsource

import (
	"encoding/json"
	"io"
	"io/ioutil"

	"gopkg.in/yaml.v2"

	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/domain"
)

type documentSource struct {
	format    string
	r         io.Reader
	unmarshal func([]byte, interface{}) error
}

// NewJSONSource reads a JSON list of
// {"arrival_time", "cores", "memory", "execution_time"} objects.
func NewJSONSource(r io.Reader) JobSource {
	return &documentSource{format: JSONFormat, r: r, unmarshal: json.Unmarshal}
}

// NewYAMLSource reads a YAML sequence with the same fields as NewJSONSource.
func NewYAMLSource(r io.Reader) JobSource {
	return &documentSource{format: YAMLFormat, r: r, unmarshal: yaml.UnmarshalStrict}
}

func (s *documentSource) Jobs() ([]domain.Job, error) {
	data, err := ioutil.ReadAll(s.r)
	if err != nil {
		return nil, &InputError{Source: s.format, Err: err}
	}
	records := []jobRecord{}
	if err := s.unmarshal(data, &records); err != nil {
		return nil, &InputError{Source: s.format, Err: err}
	}
	return toJobs(s.format, records)
}
