// Package crashdump reads and extends crash and ANR report files.
//
// A report starts with a banner and a block of "Key: 'value'" header lines,
// followed by named sections:
//
//	<title>:
//	<body lines>
//	<blank line>
//
// The capture engine writes the header and the emergency section. Sections
// added afterwards are only ever appended.
package crashdump

import (
	"time"
)

// Banner is the first line of every report.
const Banner = "*** *** *** *** *** *** *** *** *** *** *** *** *** *** *** ***"

// Well-known section titles.
const (
	SectionEmergency = "emergency"
	// SectionStacktrace holds the managed-runtime stack of the crashing
	// goroutine. The label is what existing report readers look for.
	SectionStacktrace   = "java stacktrace"
	SectionMemoryInfo   = "memory info"
	SectionOtherThreads = "other threads"
)

// Kind is the type of fault a report describes.
type Kind string

const (
	KindNative  Kind = "native"
	KindANR     Kind = "anr"
	KindUnknown Kind = "unknown"
)

// Field is one header line.
type Field struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Section is a titled block of text.
type Section struct {
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}

// Report is a parsed report file.
type Report struct {
	// Path is the file the report was read from.
	Path string `json:"path" yaml:"path"`

	// Kind is derived from the file name.
	Kind Kind `json:"kind" yaml:"kind"`

	// Header holds the engine-written fields in file order.
	Header []Field `json:"header" yaml:"header"`

	// Emergency is the body of the emergency section.
	Emergency string `json:"emergency,omitempty" yaml:"emergency,omitempty"`

	// Sections are all other sections in file order.
	Sections []Section `json:"sections" yaml:"sections"`
}

// HeaderValue returns the value of the first header field named key.
func (r *Report) HeaderValue(key string) (string, bool) {
	for _, f := range r.Header {
		if f.Key == key {
			return f.Value, true
		}
	}

	return "", false
}

// Section returns the first section titled title.
func (r *Report) Section(title string) (Section, bool) {
	for _, s := range r.Sections {
		if s.Title == title {
			return s, true
		}
	}

	return Section{}, false
}

// Titles lists section titles in file order.
func (r *Report) Titles() []string {
	titles := make([]string, 0, len(r.Sections))
	for _, s := range r.Sections {
		titles = append(titles, s.Title)
	}

	return titles
}

// Summary provides a short summary for listing reports.
type Summary struct {
	// ID is the file name without the kind suffix.
	ID string `json:"id" yaml:"id"`

	Kind Kind `json:"kind" yaml:"kind"`

	// Timestamp is decoded from the file name. Zero when absent.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// Emergency is the first line of the emergency section, truncated.
	Emergency string `json:"emergency" yaml:"emergency"`

	// FilePath is the path to the report file.
	FilePath string `json:"file_path" yaml:"file_path"`

	// Size is the size of the report file in bytes.
	Size int64 `json:"size" yaml:"size"`

	// Sections lists section titles in file order.
	Sections []string `json:"sections" yaml:"sections"`
}
