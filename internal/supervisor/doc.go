// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

/*
Package supervisor runs the server's long-lived services under a suture v4
supervisor tree.

	RootSupervisor ("producthunt")
	├── DataSupervisor ("data-layer")
	│   └── SessionCleanupService
	├── MessagingSupervisor ("messaging-layer")
	│   └── ProductEventsService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A failing service is restarted with exponential backoff inside its own layer.
Supervisor events are logged through sutureslog, which the server wires to
the zerolog bridge from the logging package.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewSessionCleanupService(authSvc, time.Minute))
	tree.AddMessagingService(services.NewProductEventsService(bus, events.DefaultRouterConfig()))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}
*/
package supervisor
