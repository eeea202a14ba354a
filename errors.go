// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package docbridge

import (
	"errors"
	"fmt"
	"strings"
)

// Stage indicators attached to failed attempts so multi-stage failures
// stay attributable.
const (
	StageContentParsing = "content_parsing"
	StageArchiveOpening = "archive_opening"
	StageRendering      = "rendering"
	StageMetadata       = "metadata_extraction"
)

// UnsupportedFormatError is returned when no parser can handle the input format.
type UnsupportedFormatError struct {
	Extension string
	MIMEType  string
}

func (e *UnsupportedFormatError) Error() string {
	parts := []string{"unsupported format"}
	if e.Extension != "" {
		parts = append(parts, fmt.Sprintf("extension=%q", e.Extension))
	}
	if e.MIMEType != "" {
		parts = append(parts, fmt.Sprintf("mime=%q", e.MIMEType))
	}
	return strings.Join(parts, " ")
}

// FailedAttempt records a parser that accepted the input but failed,
// with the stage the failure happened in.
type FailedAttempt struct {
	Parser string
	Stage  string
	Err    error
}

// ConversionError is returned when at least one parser accepted the
// input but every attempt failed.
type ConversionError struct {
	Attempts []FailedAttempt
}

func (e *ConversionError) Error() string {
	if len(e.Attempts) == 0 {
		return "conversion failed"
	}
	var b strings.Builder
	b.WriteString("conversion failed after ")
	fmt.Fprintf(&b, "%d attempt(s):", len(e.Attempts))
	for _, a := range e.Attempts {
		stage := a.Stage
		if stage == "" {
			stage = StageContentParsing
		}
		fmt.Fprintf(&b, "\n  %s [%s]: %v", a.Parser, stage, a.Err)
	}
	return b.String()
}

func (e *ConversionError) Unwrap() error {
	if len(e.Attempts) > 0 {
		return e.Attempts[len(e.Attempts)-1].Err
	}
	return nil
}

// UnknownRendererError is returned by Render for an unregistered format.
type UnknownRendererError struct {
	Format string
}

func (e *UnknownRendererError) Error() string {
	return fmt.Sprintf("no renderer registered for format %q", e.Format)
}

// IsUnsupportedFormat reports whether the error is an UnsupportedFormatError.
func IsUnsupportedFormat(err error) bool {
	var target *UnsupportedFormatError
	return errors.As(err, &target)
}
