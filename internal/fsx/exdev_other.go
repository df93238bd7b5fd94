// SPDX-License-Identifier: EPL-2.0

//go:build !unix

package fsx

func isEXDEV(error) bool { return false }
