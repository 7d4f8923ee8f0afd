// Package template renders an option schema as usage text and as a
// response file template that the respfile parser reads back.
package template

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/tycho-core/console-app/pkg/schema"
)

// usageSegments lists the segments shown in usage text, in order.
var usageSegments = []schema.Segment{schema.SegmentRun, schema.SegmentGlobal, schema.SegmentInternal}

// configSegments lists the segments written to a template file.
var configSegments = []schema.Segment{schema.SegmentGlobal, schema.SegmentVisible, schema.SegmentRun}

// WriteUsage writes the description followed by the run, global and
// internal options, each under its segment caption. Empty segments are
// left out.
func WriteUsage(w io.Writer, description string, s *schema.Schema) error {
	bw := bufio.NewWriter(w)

	if description != "" {
		fmt.Fprintf(bw, "%s\n", description)
	}

	for _, seg := range usageSegments {
		if len(s.Descriptors(seg)) == 0 {
			continue
		}
		fmt.Fprintf(bw, "\n%s:\n", s.Caption(seg))
		fmt.Fprint(bw, s.FlagSet(seg.String(), seg).FlagUsages())
	}

	return bw.Flush()
}

// WriteConfigFile writes a response file template for app holding every
// global, visible and run option with its default. Options are grouped by
// the part of their name before the first dot; ungrouped options come first.
// Switches are written by presence and commented out when off by default.
func WriteConfigFile(w io.Writer, app string, s *schema.Schema) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s configuration file\n\n", app)

	groups := make(map[string][]schema.Descriptor)
	for _, d := range s.Descriptors(configSegments...) {
		groups[d.Group()] = append(groups[d.Group()], d)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, group := range names {
		if group != "" {
			fmt.Fprintf(bw, "[%s]\n", group)
		}
		for _, d := range groups[group] {
			writeOption(bw, d)
		}
	}

	return bw.Flush()
}

func writeOption(w io.Writer, d schema.Descriptor) {
	key := templateKey(d)

	if d.Kind() == schema.KindSwitch {
		writeComment(w, d.Description, ", uncomment option to enable")
		if !d.SwitchDefault() {
			fmt.Fprint(w, "#")
		}
		fmt.Fprintf(w, "%s\n\n", key)
		return
	}

	def, _ := d.DefaultString()
	writeComment(w, d.Description, "")
	fmt.Fprintf(w, "%s=%s\n\n", key, def)
}

// writeComment writes each line of text as a comment; suffix ends the last.
func writeComment(w io.Writer, text, suffix string) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if i == len(lines)-1 {
			line += suffix
		}
		fmt.Fprintf(w, "# %s\n", line)
	}
}

// templateKey returns the key written under the option's group header. A
// remainder that still contains a dot would not get the group prefix when
// parsed, so the full name is written instead.
func templateKey(d schema.Descriptor) string {
	key := d.Key()
	if d.Group() != "" && strings.Contains(key, ".") {
		return d.Name
	}
	return key
}
