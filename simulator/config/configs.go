package config

import (
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/cluster"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/ordering"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/placement"
)

// SimulatorConfigs the map of available configurations
var SimulatorConfigs = map[string]SimulatorConfig{
	"default":     defaultConfig,
	"local.small": localSmall,
	"local.large": localLarge,
}

// defaultConfig the configuration values that are used for empty sections of a specific configuration
var defaultConfig = SimulatorConfig{
	cluster.DefaultConfig(),
	PolicyConfig{
		QueuePolicy:      ordering.FCFS,
		AllocationPolicy: placement.FirstFit.String(),
	},
	OutputConfig{
		Format: CSVFormat,
		Path:   "output.csv",
	},
}

// localSmall a two node pool for trying out job files by hand - !!! make sure this is added to SimulatorConfigs map above !!!
var localSmall = SimulatorConfig{
	cluster.Config{
		NodeCount:     2,
		CoresPerNode:  cluster.DefaultCoresPerNode,
		MemoryPerNode: cluster.DefaultMemoryPerNode,
	},
	PolicyConfig{},
	OutputConfig{
		Format: CSVFormat,
		Path:   "-",
	},
}

// localLarge a 1024 node pool of bigger nodes - !!! make sure this is added to SimulatorConfigs map above !!!
var localLarge = SimulatorConfig{
	cluster.Config{
		NodeCount:     1024,
		CoresPerNode:  64,
		MemoryPerNode: 256,
	},
	PolicyConfig{
		QueuePolicy:      ordering.SmallestJobFirst,
		AllocationPolicy: placement.BestFit.String(),
	},
	OutputConfig{},
}
