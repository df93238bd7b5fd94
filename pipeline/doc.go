// SPDX-License-Identifier: EPL-2.0

// Package pipeline runs a repair pass over a session folder.
//
// Run takes a folder through its stages in order:
//
//	HIDDEN              archive dot files (only with hidden_files = "archive")
//	SCAN                list audio files, note the ones already labeled
//	CLASSIFY            classify and label unlabeled files; silent-channel files are fixed at once
//	RECONCILE_DUALMONO  convert dualmono files to mono
//	RECONCILE_LR        merge resolved left/right pairs into stereo files
//	REORDER             number files into category folders (optional)
//	DONE                report totals
//
// Every stage that changes files asks the Confirmer first, and a refusal only
// skips that stage. Work is strictly sequential. Presentation is left to the
// Sink, Confirmer and Selector collaborators.
package pipeline
