// Package demo is a sample console application used by the console-app
// tool. It declares options in the global, visible and run segments and
// reports the value and source of each resolved option.
package demo
