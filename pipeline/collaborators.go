// SPDX-License-Identifier: EPL-2.0

package pipeline

import "github.com/ik5/chanfix/pairing"

// Prompts passed to the Confirmer at stage boundaries.
const (
	PromptHidden   = "archive hidden files?"
	PromptIdentify = "identify?"
	PromptConvert  = "convert dualmono?"
	PromptMerge    = "merge L/R?"
	PromptReorder  = "reorder?"
)

// Sink receives progress and log lines.
type Sink interface {
	Progress(desc string, n, total int)
	Log(line string)
}

// Confirmer answers the yes/no question asked before a stage runs.
type Confirmer interface {
	Ask(prompt string) bool
}

// Selector may narrow the work of a stage down to a subset chosen by the user.
type Selector interface {
	SelectDualmono(paths []string) []string
	SelectPairs(pairs []pairing.Pair) []pairing.Pair
}

// AlwaysYes confirms every prompt.
type AlwaysYes struct{}

func (AlwaysYes) Ask(string) bool { return true }

// Answers confirms the prompts mapped to true and refuses everything else.
type Answers map[string]bool

func (a Answers) Ask(prompt string) bool { return a[prompt] }

// SelectAll keeps every candidate.
type SelectAll struct{}

func (SelectAll) SelectDualmono(paths []string) []string          { return paths }
func (SelectAll) SelectPairs(pairs []pairing.Pair) []pairing.Pair { return pairs }

type nopSink struct{}

func (nopSink) Progress(string, int, int) {}
func (nopSink) Log(string)                {}
