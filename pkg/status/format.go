// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/walteh/retext/pkg/search"
)

// 🎨 Display configuration
const (
	recordIndent = 4  // spaces to indent record entries
	pathWidth    = 45 // base width for file path
)

// 🎯 FormatRecord formats one replaced record for display.
func FormatRecord(rec *search.Match) string {
	var prefix string
	switch {
	case rec.Outcome == nil:
		prefix = color.HiBlackString("-")
	case rec.Outcome.Success:
		prefix = color.GreenString("✓")
	default:
		prefix = color.RedString("✗")
	}

	location := fmt.Sprintf("%s:%d", rec.Path, rec.LineNumber)
	line := fmt.Sprintf("%s%s %-*s",
		strings.Repeat(" ", recordIndent),
		prefix,
		pathWidth,
		location,
	)
	if rec.Outcome != nil && !rec.Outcome.Success {
		line += " " + color.RedString(rec.Outcome.Reason)
	}
	return line
}

// 🧾 FormatSummary formats the final counts line.
func FormatSummary(s Summary) string {
	return fmt.Sprintf("%s  %s  %s",
		color.GreenString("%d replaced", s.Successes),
		color.HiBlackString("%d ignored", s.Ignored),
		color.RedString("%d errors", s.ErrorCount()),
	)
}

// ⏳ FormatProgress formats a progress message with percentage.
func FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}
