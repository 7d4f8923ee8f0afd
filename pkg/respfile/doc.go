// Package respfile turns response files into command line tokens.
//
// A response file supplies option values as if they had been typed on the
// command line. It is line oriented:
//
//	# comments run from '#' to the end of the line
//	verbose                 # bare line: boolean switch   -> --verbose
//	output = result.txt     # key/value pair              -> --output=result.txt
//
//	[net]                   # group header, prefixes later keys
//	port = 8080             #                             -> --net.port=8080
//	ipv6                    #                             -> --net.ipv6
//	log.level = debug       # dotted keys are not prefixed -> --log.level=debug
//	proxy =                 # empty value: no token
//
// Parsing is deliberately forgiving: malformed lines become switches and
// the option schema decides later whether they are acceptable.
package respfile
