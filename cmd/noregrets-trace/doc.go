// Command noregrets-trace traces one run of a client program against a
// subject library, producing a model of every access path the client
// exercised.
/*

noregrets-trace loads a provider plugin (the subject library) and a
client plugin (the traced program) and runs the client with every
acquisition of the subject library mediated, recording the resulting
path tree to a model file.

Usage:

	noregrets-trace [flags] <provider.so> <client.so>

The provider plugin must export a top-level symbol "Provider" of type
hostbridge.Provider. The client plugin must export a top-level symbol
"Client" of type hostbridge.Client, unless -test-framework-mode is
given, in which case it must instead export "Program" of type
func(*hostbridge.Harness).

Exit status is 0 whenever tracing completes, regardless of whether the
client itself returned an error.

*/
package main
