// Package consoleapp hosts command line applications whose options come
// from three sources: the command line, an optional response file and a
// persistent per-application store.
//
// A Console declares the internal options (--help, --response-file or
// @file, --genresponse), lets the Application declare its own, then applies
// the sources in order:
//
//  1. command line
//  2. response file, when --response-file is given
//  3. persistent store
//
// With the default PolicyOverride a value set explicitly by a later source
// replaces the earlier one. --help and --genresponse return before the
// Application runs. Failures are reported as single lines on stderr and
// Run returns ExitCodeError.
//
// Typical use:
//
//	func main() {
//		consoleapp.Main("mytool", "Does useful things", &myApp{},
//			consoleapp.WithStore(fileStore, "acme"))
//	}
package consoleapp
