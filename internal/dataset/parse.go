// Package dataset turns raw line-delimited conversation data into typed,
// validated records and aggregate snapshots.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vedanthq/SLMGen/internal/models"
	"github.com/vedanthq/SLMGen/schemas"
)

// MinExamples is the minimum number of valid records required to proceed
// with a fine-tuning run.
const MinExamples = 50

// maxReportedIssues bounds the per-line issue list in the parse result.
// Counts stay exact; only the detail list is truncated.
const maxReportedIssues = 25

// maxLineBytes caps a single record line. Longer lines are drained and
// rejected per line; they never abort the batch.
const maxLineBytes = 4 * 1024 * 1024

// ErrInsufficientData is returned when fewer than MinExamples valid records
// survive parsing.
var ErrInsufficientData = errors.New("insufficient training data")

// ValidationIssue describes why a single input line was rejected.
type ValidationIssue struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ParseResult is the outcome of one full parse pass. A malformed line never
// aborts the batch; it is recorded as an issue and skipped.
type ParseResult struct {
	Records      []models.Conversation
	ValidCount   int
	InvalidCount int
	Issues       []ValidationIssue
}

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// recordSchema is the compiled JSON Schema for one conversation record line.
var recordSchema *jsonschema.Schema

func init() {
	var schemaDoc any
	if err := json.Unmarshal([]byte(schemas.RecordSchemaJSON), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded record.schema.json: %v", err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.schema.json", schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add record schema resource: %v", err))
	}

	sch, err := compiler.Compile("record.schema.json")
	if err != nil {
		panic(fmt.Sprintf("failed to compile record schema: %v", err))
	}
	recordSchema = sch
}

// Parse reads line-delimited JSON conversation records from r. Gzip-compressed
// input is detected by magic bytes and decompressed transparently.
// Only I/O-level failures return an error; per-line validation failures are
// collected into the result.
func Parse(r io.Reader) (*ParseResult, error) {
	br := bufio.NewReader(r)

	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer zr.Close() //nolint:errcheck
		return parseLines(zr)
	}

	return parseLines(br)
}

func parseLines(r io.Reader) (*ParseResult, error) {
	result := &ParseResult{}
	br := bufio.NewReaderSize(r, 64*1024)

	lineNum := 0
	for {
		raw, tooLong, err := readLine(br)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		atEOF := errors.Is(err, io.EOF)
		if atEOF && len(raw) == 0 && !tooLong {
			break
		}
		lineNum++

		if tooLong {
			result.InvalidCount++
			if len(result.Issues) < maxReportedIssues {
				result.Issues = append(result.Issues, ValidationIssue{Line: lineNum, Reason: "line exceeds 4MB limit"})
			}
		} else if line := strings.TrimSpace(string(raw)); line != "" {
			record, reason := validateLine(line)
			if reason != "" {
				result.InvalidCount++
				if len(result.Issues) < maxReportedIssues {
					result.Issues = append(result.Issues, ValidationIssue{Line: lineNum, Reason: reason})
				}
			} else {
				result.Records = append(result.Records, record)
				result.ValidCount++
			}
		}

		if atEOF {
			break
		}
	}

	if result.InvalidCount > 0 {
		slog.Warn("parse pass found invalid lines",
			"valid", result.ValidCount, "invalid", result.InvalidCount)
	}

	return result, nil
}

// readLine returns the next line without its trailing newline. A line longer
// than maxLineBytes is drained rather than buffered and reported via tooLong,
// so one oversized line never aborts the batch. err is io.EOF on the final
// line.
func readLine(br *bufio.Reader) (line []byte, tooLong bool, err error) {
	var buf []byte
	for {
		frag, rerr := br.ReadSlice('\n')
		if !tooLong && len(frag) > 0 {
			buf = append(buf, frag...)
			if len(buf) > maxLineBytes {
				tooLong = true
				buf = nil
			}
		}
		if errors.Is(rerr, bufio.ErrBufferFull) {
			continue
		}
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			return nil, false, rerr
		}
		return bytes.TrimSuffix(buf, []byte("\n")), tooLong, rerr
	}
}

// validateLine checks a single input line. Rules are applied in order and the
// first failure wins: (a) the line is a JSON object with a non-empty messages
// array, (b) every message carries a role and non-empty content, (c) every
// role is one of system/user/assistant, (d) the record has at least one user
// and one assistant message. Rules a-c are enforced by the embedded schema.
func validateLine(line string) (models.Conversation, string) {
	var doc any
	if err := json.Unmarshal([]byte(line), &doc); err != nil {
		return models.Conversation{}, fmt.Sprintf("invalid JSON: %v", err)
	}

	if err := recordSchema.Validate(doc); err != nil {
		return models.Conversation{}, schemaReason(err)
	}

	var record models.Conversation
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		return models.Conversation{}, fmt.Sprintf("invalid record: %v", err)
	}

	hasUser, hasAssistant := false, false
	for _, m := range record.Messages {
		switch m.Role {
		case models.RoleUser:
			hasUser = true
		case models.RoleAssistant:
			hasAssistant = true
		}
	}
	if !hasUser {
		return models.Conversation{}, "must have at least one user message"
	}
	if !hasAssistant {
		return models.Conversation{}, "must have at least one assistant message"
	}

	return record, ""
}

// schemaReason extracts the first leaf cause from a schema validation error.
func schemaReason(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Sprintf("schema: %v", err)
	}
	leaf := firstLeaf(ve)
	loc := "/"
	if len(leaf.InstanceLocation) > 0 {
		loc = "/" + strings.Join(leaf.InstanceLocation, "/")
	}
	return fmt.Sprintf("%s: %s", loc, leaf.ErrorKind.LocalizedString(defaultPrinter))
}

func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
