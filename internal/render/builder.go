package render

import (
	"fmt"
	"strings"
)

// ReportBuilder provides a fluent interface for building formatted reports
type ReportBuilder struct {
	lines     []string
	separator string
	width     int
}

// NewReportBuilder creates a new report builder
func NewReportBuilder() *ReportBuilder {
	return &ReportBuilder{
		separator: "=",
		width:     40,
	}
}

// WithWidth sets the separator width
func (rb *ReportBuilder) WithWidth(width int) *ReportBuilder {
	rb.width = width
	return rb
}

// Header adds a header with separator
func (rb *ReportBuilder) Header(text string) *ReportBuilder {
	rb.lines = append(rb.lines, headerStyle.Render(text))
	rb.lines = append(rb.lines, strings.Repeat(rb.separator, rb.width))
	return rb
}

// Section adds a section header
func (rb *ReportBuilder) Section(title string) *ReportBuilder {
	rb.lines = append(rb.lines, "", title)
	return rb
}

// AddLine adds a single line
func (rb *ReportBuilder) AddLine(text string) *ReportBuilder {
	rb.lines = append(rb.lines, text)
	return rb
}

// AddBullet adds a bulleted line
func (rb *ReportBuilder) AddBullet(text string) *ReportBuilder {
	rb.lines = append(rb.lines, fmt.Sprintf("• %s", text))
	return rb
}

// AddKeyValue adds a key-value pair
func (rb *ReportBuilder) AddKeyValue(key, value string) *ReportBuilder {
	rb.lines = append(rb.lines, fmt.Sprintf("%s: %s", key, value))
	return rb
}

// AddIndented adds an indented line
func (rb *ReportBuilder) AddIndented(text string, level int) *ReportBuilder {
	rb.lines = append(rb.lines, strings.Repeat("  ", level)+text)
	return rb
}

// AddBlock adds multi-line text such as a rendered table, dropping a
// trailing newline.
func (rb *ReportBuilder) AddBlock(text string) *ReportBuilder {
	rb.lines = append(rb.lines, strings.Split(strings.TrimRight(text, "\n"), "\n")...)
	return rb
}

// Build returns the built report as a string
func (rb *ReportBuilder) Build() string {
	return strings.Join(rb.lines, "\n")
}
