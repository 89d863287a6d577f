// Package wealthsimple is a client for Wealthsimple's private web API, the
// one their own web application talks to. There is no public API; this
// package reproduces what a browser session does.
//
// The core functionalities include:
//   - Session Lifecycle: Bootstrapping the device and client identifiers by
//     scraping the login page and its bundled script, performing password
//     and refresh OAuth grants (including the one-time-passcode challenge),
//     and recognizing exactly when a token must be refreshed.
//   - GraphQL Access: Executing the fixed catalog of query documents with
//     variables, extracting nested results by dotted path, and following
//     pagination cursors sequentially.
//   - Descriptions: Augmenting raw account and activity records with the
//     stable human-readable descriptions shown in the application, through
//     an ordered first-match rule table.
//
// This package serves as the foundational logic for the `wsc` command-line
// tool. Sessions are serialized and restored by the caller; the package
// never touches storage itself.
package wealthsimple
