// Package report decodes kernel fault reports from captured console text.
package report

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

const (
	headerPrefix  = "Kernel panic at "
	versionPrefix = "\tKernel version "
	statusHeader  = "---| App Status |---"
)

// Report is one decoded fault report.
type Report struct {
	File     string
	Line     int
	Message  string
	Version  string
	Fault    []string // Fault description of the first process
	Stats    []string // Statistics of every running process
	Complete bool     // The status section was reached
}

type state uint8

const (
	stateIdle state = iota
	stateMessage
	stateFault
	stateStats
)

// Decoder assembles reports from console lines fed one at a time. Lines
// outside a report are ignored.
type Decoder struct {
	state   state
	cur     *Report
	msg     []string
	reports []Report
}

// NewDecoder returns an empty decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed consumes one line. A trailing carriage return is dropped.
func (d *Decoder) Feed(line string) {
	line = strings.TrimSuffix(line, "\r")

	if strings.HasPrefix(line, headerPrefix) {
		d.Flush()
		d.start(line)
		return
	}

	switch d.state {
	case stateMessage:
		if strings.HasPrefix(line, versionPrefix) {
			d.cur.Message = unquote(strings.Join(d.msg, "\n"))
			d.cur.Version = strings.TrimPrefix(line, versionPrefix)
			d.msg = nil
			d.state = stateFault
			return
		}
		d.msg = append(d.msg, line)
	case stateFault:
		if line == statusHeader {
			d.cur.Fault = trimBlank(d.cur.Fault)
			d.cur.Complete = true
			d.state = stateStats
			return
		}
		d.cur.Fault = append(d.cur.Fault, line)
	case stateStats:
		d.cur.Stats = append(d.cur.Stats, line)
	}
}

func (d *Decoder) start(line string) {
	loc := strings.TrimSuffix(strings.TrimPrefix(line, headerPrefix), ":")
	r := &Report{File: loc}
	if i := strings.LastIndex(loc, ":"); i >= 0 {
		if n, err := strconv.Atoi(loc[i+1:]); err == nil {
			r.File = loc[:i]
			r.Line = n
		}
	}
	d.cur = r
	d.state = stateMessage
}

// Flush finishes the report in progress, if any.
func (d *Decoder) Flush() {
	if d.cur == nil {
		return
	}
	if d.state == stateMessage {
		d.cur.Message = unquote(strings.Join(d.msg, "\n"))
	}
	d.cur.Fault = trimBlank(d.cur.Fault)
	d.cur.Stats = trimBlank(d.cur.Stats)
	d.reports = append(d.reports, *d.cur)
	d.cur = nil
	d.msg = nil
	d.state = stateIdle
}

// InProgress reports whether a report header has been seen and not yet
// flushed.
func (d *Decoder) InProgress() bool {
	return d.cur != nil
}

// Reports returns the finished reports.
func (d *Decoder) Reports() []Report {
	return slices.Clone(d.reports)
}

// Parse decodes every report in r.
func Parse(r io.Reader) ([]Report, error) {
	d := NewDecoder()
	s := bufio.NewScanner(r)
	for s.Scan() {
		d.Feed(s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	d.Flush()
	return d.Reports(), nil
}

func unquote(s string) string {
	s = strings.TrimPrefix(s, "\t\"")
	return strings.TrimSuffix(s, "\"")
}

// trimBlank drops leading and trailing empty lines.
func trimBlank(lines []string) []string {
	nonBlank := func(s string) bool { return strings.TrimSpace(s) != "" }
	start := slices.IndexFunc(lines, nonBlank)
	if start < 0 {
		return nil
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
