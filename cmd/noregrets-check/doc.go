// Command noregrets-check replays a model against a (possibly new)
// build of the subject library and reports every access path whose
// observed type is no longer compatible with what was recorded (spec
// §6, §7).
/*

noregrets-check loads a model produced by noregrets-trace and a
provider plugin for the library build under test, replays the model
against it, and prints a report of any breaking changes found.

Usage:

	noregrets-check [flags] <model.json> <provider.so>

The provider plugin must export a top-level symbol "Provider" of type
hostbridge.Provider.

Exit status is always 0 when the replay itself completes: detected
incompatibilities are reported, not treated as a command failure (spec
§7). Only invalid arguments or a model/plugin that can't be loaded are
fatal.

*/
package main
