package errors

type ExitCode int

const (
	// Unclassified failure
	GenericErrorExitCode ExitCode = 1

	// Unknown queue or allocation policy, or an invalid pool configuration
	ConfigurationErrorExitCode ExitCode = 64

	// Job descriptors could not be read or were rejected
	InputErrorExitCode ExitCode = 65

	// The report could not be written
	OutputErrorExitCode ExitCode = 74
)
