package stats

/*
This file defines all the metrics being collected.   As new metrics are added please follow this pattern.
*/

const (
	/************************* Simulation engine metrics **************************/
	/*
		the number of simulation runs started (one per queue/allocation policy pair)
	*/
	SimRunCounter = "simRunCounter"

	/*
		the number of runs rejected because a policy name was not recognized
	*/
	SimConfigErrorCounter = "simConfigErrorCounter"

	/*
		the number of jobs offered to placement
	*/
	SimJobsSubmittedCounter = "simJobsSubmittedCounter"

	/*
		the number of jobs that were placed on a node
	*/
	SimJobsPlacedCounter = "simJobsPlacedCounter"

	/*
		the number of jobs that had no eligible node and were dropped
	*/
	SimJobsDroppedCounter = "simJobsDroppedCounter"

	/*
		the cpu utilization of the last run, as a percentage of pool capacity
	*/
	SimCpuUsagePctGauge = "simCpuUsagePctGauge"

	/*
		the memory utilization of the last run, as a percentage of pool capacity
	*/
	SimMemoryUsagePctGauge = "simMemoryUsagePctGauge"

	/*
		the number of nodes with no cores or no memory left at the end of the last run
	*/
	SimNodesFullGauge = "simNodesFullGauge"

	/*
		the number of runs rejected because a job had a non-positive requirement or a reused id
	*/
	SimInvalidJobCounter = "simInvalidJobCounter"

	/*
		cores in use on each node at the end of a run, one observation per node
	*/
	SimNodeUsedCoresHistogram = "simNodeUsedCoresHistogram"

	/*
		memory (GB) in use on each node at the end of a run, one observation per node
	*/
	SimNodeUsedMemoryHistogram = "simNodeUsedMemoryHistogram"

	/*
		the amount of time it takes to order and place all jobs of a run
	*/
	SimRunLatency_ms = "simRunLatency_ms"

	/************************* Job input metrics **************************/
	/*
		the number of job descriptors read by a job source
	*/
	JobSourceJobsReadCounter = "jobSourceJobsReadCounter"

	/*
		the number of job descriptors rejected by a job source
	*/
	JobSourceInvalidJobCounter = "jobSourceInvalidJobCounter"
)
