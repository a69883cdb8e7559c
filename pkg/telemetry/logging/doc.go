// Package logging configures structured logging for the governance
// layer on top of log/slog.
//
// # Overview
//
// Components log through slog loggers tagged with a "component"
// attribute. This package turns a logging configuration (level, format,
// source annotation) into a configured *slog.Logger, and can install it
// as the process default so library code using slog.Default inherits
// it.
//
// # Usage
//
//	logger, err := logging.Setup(logging.Config{
//		Level:  "info",
//		Format: "json",
//	})
//	if err != nil {
//		return err
//	}
//	logger.Info("governor starting")
package logging
