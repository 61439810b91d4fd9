// Package supervisor runs the GraphQL introspection server without the
// proxy. The server inherits stdin and stdout; its stderr passes through a
// StartupFilter that hides the schema dump printed during startup.
package supervisor
