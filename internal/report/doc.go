// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

// Package report computes analytics reports over a loaded snapshot and
// exports them as timestamped JSON files for offline use.
package report
