// Package pop3 is a client library for retrieving mail from POP3
// mailboxes. It is a sibling to github.com/zostay/go-email and
// github.com/zostay/go-addr and reuses their approach to header and
// content handling, but where go-email is concerned with messages at
// rest, this library is concerned with getting them off the server in
// the first place.
//
// The code is split according to the part of the job being done. The
// transport package provides the byte-stream collaborator: a line
// oriented connection that may be plaintext or TLS, selected when the
// connection is constructed. The client package implements the
// protocol session itself: it owns exactly one transport connection,
// issues commands, validates the status line of every reply, and
// frames multi-line responses that end with a lone "." line. The
// message package holds the per-mailbox-item record, which is created
// by listing the mailbox and then enriched in place by header-only
// (TOP) or full (RETR) retrieval. The message/header package parses
// raw header blocks, performing RFC 5322 unfolding, and the
// message/transfer package decodes quoted-printable and base64
// transfer encodings per RFC 2045.
//
// A session is strictly synchronous. Every command written is
// immediately followed by a blocking read of its reply, which is how
// the protocol itself works; there is no pipelining and no background
// machinery. Errors are sentinel values wrapped with context, so
// callers can test for the failure class with errors.Is while still
// seeing what the server actually said.
//
// The cmd/popfetch command is a small cobra front-end that fetches a
// mailbox into an mbox file using the mbox package. The test/replay
// tool replays canned server transcripts through a real client
// session, which is also how most of the client tests work.
package pop3
