// Package handler defines the contract every rambo command handler
// satisfies and the process-wide catalog handlers register into.
//
// A handler is a [Definition]: its dispatch identity (an explicit verb and
// noun, or a CamelCase Name such as "NewProject" that derives the key
// "new_project"), a [Kind] tag selecting between a single default action
// and a named family of actions, an argument [Schema], and the action
// entries themselves.
//
// Handler packages register their definitions from init under a location
// name, the same way database/sql drivers register:
//
//	func init() {
//	    handler.Register("commands", handler.Definition{
//	        Verb: "new", Noun: "project",
//	        Kind: handler.SingleAction,
//	        Schema: func(s *handler.Schema) {
//	            s.Positional("project_name", "the name of your cli application")
//	        },
//	        Action: newProject,
//	    })
//	}
//
// The location names listed in an application's entrypoint_paths select
// which registrations the discovery engine turns into a registry.
package handler
