// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

/*
Package services provides suture.Service wrappers for Storelens components.

Each wrapper translates a component's lifecycle into suture's context-aware
Serve method:

  - HTTPServerService runs an *http.Server and shuts it down gracefully when
    the supervisor stops
  - ReloadService loads the transaction snapshot on startup and refreshes it
    on a fixed interval

Wrappers implement fmt.Stringer so supervisor events name the service.
*/
package services
