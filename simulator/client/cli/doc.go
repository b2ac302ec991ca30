/*
Package cli provides the jobsim command line client. It reads a job list,
runs it through the simulation engine under one or all queue and allocation
policy pairs, and reports pool utilization as CSV or JSON.
*/
package cli
