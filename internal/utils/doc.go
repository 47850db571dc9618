// Package utils exposes reusable helpers consumed by the graphene commands.
//
// ConfigurationLoader layers embedded defaults, an optional configuration
// file and GRAPHENE_ environment variables through Viper. LoggerFactory builds
// the diagnostic and console zap loggers, and FlushingWriter keeps console
// output visible while events stream.
package utils
