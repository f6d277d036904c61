// Package binary finds the prebuilt ic-wasm executable that belongs to the
// host platform.
//
// # Layout
//
// Every variant package ships its executable as <variant>/bin/ic-wasm (with an
// .exe suffix on Windows). Depending on how the launcher itself was installed,
// the variant lives in one of three places, tried in this order:
//
//  1. global sibling:  <launcher>/../../../<variant>/bin/<name>
//  2. local nested:    <launcher>/../node_modules/<variant>/bin/<name>
//  3. working dir:     <cwd>/node_modules/<variant>/bin/<name>
//
// where <launcher> is the directory holding the running launcher executable.
// The first candidate that exists and is not a directory wins. Searching has
// no side effects; nothing is downloaded or repaired here.
//
// # Usage
//
//	loc, _ := binary.DefaultLocator("")
//	r := binary.NewResolver(platform.Current(), loc, logger)
//	path, err := r.BinaryPath()
//	if err != nil {
//	    return err
//	}
//
// A Resolver searches at most once. Later calls return the same path or the
// same error.
package binary
