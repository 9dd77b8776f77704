// Package httpserver runs the formkit HTTP server with graceful shutdown and
// exposes liveness and readiness handlers.
//
//	srv := httpserver.New(cfg, router, log)
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := srv.Run(ctx); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// ReadinessHandler takes named checks, e.g. the Healthcheck functions of the
// redis and pg packages.
package httpserver
