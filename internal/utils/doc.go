// Package utils exposes reusable helpers consumed by the gitsense commands.
//
// It houses ConfigurationLoader, which layers embedded defaults, a YAML file,
// GITSENSE_ environment variables and bound flags through Viper, and
// LoggerFactory, which builds the diagnostic and console zap loggers.
package utils
