package zerobackend

// loggerField names the zerolog field carrying the resolving module
// identifier. It is handle identity, never record payload.
const loggerField = "logger"

const (
	errMsgNilService    = "Logging backend service is nil."
	errMsgNilConfig     = "Logging config is nil."
	errMsgAppCfgNotSet  = "Application config is not set."
	errMsgConfigInvalid = "Logging configuration is invalid."
	errMsgNoChannels    = "no logging channels enabled"
	errMsgUnknownLevel  = "unrecognized log level"
)
