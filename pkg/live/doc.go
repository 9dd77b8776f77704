// Package live serves schema-defined forms to htmx and Datastar clients.
//
// A page load starts a session: the form is built from its definition, its
// snapshot is saved and the full form is rendered with inputs wired to the
// session endpoints. Change and blur events carry the field name and value;
// the server restores the session form from the store, applies the event,
// saves the new snapshot and answers with the re-rendered field wrapper.
// htmx receives HTML plus an HX-Trigger "formkit:validity" event, Datastar
// receives an element patch plus a "valid" signal.
//
//	reg, _ := live.NewRegistry(defs...)
//	srv := live.New(reg, formstore.NewMemoryStore(time.Hour),
//		live.WithLogger(log),
//		live.WithTransport(live.TransportDatastar),
//	)
//	router.Mount("/forms", srv.Routes())
package live
