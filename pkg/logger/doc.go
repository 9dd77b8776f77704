// Package logger builds *slog.Logger instances for formkit services and
// keeps attribute names consistent across packages.
//
//	log := logger.New(
//	    logger.WithEnvironment("development", "formkit"),
//	    logger.WithContextValue("request_id", requestIDKey),
//	)
//	log.DebugContext(ctx, "field state changed",
//	    logger.Form("signup"),
//	    logger.Field("email"),
//	    logger.Transition("clean", "invalid"),
//	)
//
// Components that accept a logger default to Nop, which discards records.
package logger
