// Package logger provides leveled console logging for envseal commands.
//
// Verbosity is controlled by two persistent flags on the vault and config
// command groups:
//
//   - --verbose: info messages
//   - --debug: everything, including debug details and raw error causes
//
// Warnings and errors always reach stderr. Failures that the final spinner
// message already reports are logged with Debugf so they are not printed
// twice.
//
// # Log Methods
//
//	Logger.Infof()          // --verbose or --debug
//	Logger.Debugf()         // --debug
//	Logger.Warnf()          // always
//	Logger.Errorf()         // always
//	Logger.ErrorfAndReturn() // returns the message as an error, logged under --debug
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Sealed %s", path)
package logger
