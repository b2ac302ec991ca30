// Package config holds the named simulator configurations and the loading of
// configuration overrides from JSON or YAML files.
package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/cluster"
)

const (
	CSVFormat  = "csv"
	JSONFormat = "json"
)

// SimulatorConfig is the complete configuration of a simulation. Sections left
// at their zero value take the "default" configuration's values.
type SimulatorConfig struct {
	Cluster cluster.Config `json:"Cluster" yaml:"Cluster"`
	Policy  PolicyConfig   `json:"Policy" yaml:"Policy"`
	Output  OutputConfig   `json:"Output" yaml:"Output"`
}

func (s SimulatorConfig) String() string {
	return fmt.Sprintf("\n%s\n%s\n%s", s.Cluster, s.Policy, s.Output)
}

// PolicyConfig names the queue and allocation policies used by a single run.
type PolicyConfig struct {
	QueuePolicy      string `json:"QueuePolicy" yaml:"QueuePolicy"`
	AllocationPolicy string `json:"AllocationPolicy" yaml:"AllocationPolicy"`
}

func (p PolicyConfig) String() string {
	return fmt.Sprintf("PolicyConfig: QueuePolicy: %s, AllocationPolicy: %s", p.QueuePolicy, p.AllocationPolicy)
}

// OutputConfig is where and how results are reported. Path "-" is stdout.
type OutputConfig struct {
	Format string `json:"Format" yaml:"Format"` // csv, json
	Path   string `json:"Path" yaml:"Path"`
}

func (o OutputConfig) String() string {
	return fmt.Sprintf("OutputConfig: Format: %s, Path: %s", o.Format, o.Path)
}

// Validate checks the parts of the config that can be checked without running
// a simulation. Policy names are checked by the engine.
func (s *SimulatorConfig) Validate() error {
	if err := s.Cluster.Validate(); err != nil {
		return err
	}
	switch s.Output.Format {
	case CSVFormat, JSONFormat:
	default:
		return fmt.Errorf("invalid output format %q, supported values are [%s %s]", s.Output.Format, CSVFormat, JSONFormat)
	}
	return nil
}

// Names lists the selectable configurations.
func Names() []string {
	keys := make([]string, 0, len(SimulatorConfigs))
	for k := range SimulatorConfigs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetConfig returns a copy of the selected configuration with its empty
// sections filled from the default configuration.
func GetConfig(configSelector string) (*SimulatorConfig, error) {
	selected, ok := SimulatorConfigs[configSelector]
	if !ok {
		return nil, fmt.Errorf("invalid configuration %s, supported values are %v", configSelector, Names())
	}
	config := selected
	config.fillFrom(defaultConfig)
	return &config, nil
}

// fillFrom uses base's values for every section of s that was not set.
func (s *SimulatorConfig) fillFrom(base SimulatorConfig) {
	if s.Cluster == (cluster.Config{}) {
		log.Debugf("using default Cluster config")
		s.Cluster = base.Cluster
	}
	if s.Policy == (PolicyConfig{}) {
		log.Debugf("using default Policy config")
		s.Policy = base.Policy
	}
	if s.Output == (OutputConfig{}) {
		log.Debugf("using default Output config")
		s.Output = base.Output
	}
}

// LoadConfigFile overrides fields of base with the non-zero fields found in a
// JSON (.json) or YAML (.yaml, .yml) file.
func LoadConfigFile(path string, base *SimulatorConfig) (*SimulatorConfig, error) {
	text, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't read config file %s", path)
	}
	overrides := SimulatorConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(text, &overrides)
	case ".yaml", ".yml":
		err = yaml.UnmarshalStrict(text, &overrides)
	default:
		return nil, fmt.Errorf("config file %s: unsupported extension, expected .json, .yaml or .yml", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't parse config file %s", path)
	}
	log.Infof("config file %s parsed to:%+v", path, overrides)

	config := *base
	config.override(overrides)
	return &config, nil
}

// override copies every non-zero field of o into s.
func (s *SimulatorConfig) override(o SimulatorConfig) {
	if o.Cluster.NodeCount != 0 {
		s.Cluster.NodeCount = o.Cluster.NodeCount
	}
	if o.Cluster.CoresPerNode != 0 {
		s.Cluster.CoresPerNode = o.Cluster.CoresPerNode
	}
	if o.Cluster.MemoryPerNode != 0 {
		s.Cluster.MemoryPerNode = o.Cluster.MemoryPerNode
	}
	if o.Policy.QueuePolicy != "" {
		s.Policy.QueuePolicy = o.Policy.QueuePolicy
	}
	if o.Policy.AllocationPolicy != "" {
		s.Policy.AllocationPolicy = o.Policy.AllocationPolicy
	}
	if o.Output.Format != "" {
		s.Output.Format = o.Output.Format
	}
	if o.Output.Path != "" {
		s.Output.Path = o.Output.Path
	}
}
